// Copyright 2025 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0 B", FormatBytes(0))
	assert.Equal("999 B", FormatBytes(999))
	assert.Equal("1 KB", FormatBytes(1000))
	assert.Equal("1.05 MB", FormatBytes(1<<20))
	assert.Equal("1.07 GB", FormatBytes(1<<30))
}

func TestNativeEndian(t *testing.T) {
	assert.NotNil(t, NativeEndian)
}
