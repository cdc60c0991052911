// Copyright 2025 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package opcodedb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDb(t *testing.T) {
	assert := assert.New(t)

	db := DefaultDb()

	assert.Equal("INQUIRY", db.LookupOpcode(0x12))
	assert.Equal("READ CAPACITY(10)", db.LookupOpcode(0x25))
	assert.Equal("opcode 0xc0", db.LookupOpcode(0xc0))
}

func TestOpenOpcodeDb(t *testing.T) {
	assert := assert.New(t)

	dbFile := filepath.Join(t.TempDir(), "opcodes.yaml")
	contents := "0xc0: VENDOR DIAG IN\n0x12: INQUIRY (OVERRIDDEN)\n"
	require.NoError(t, os.WriteFile(dbFile, []byte(contents), 0644))

	db, err := OpenOpcodeDb(dbFile)
	require.NoError(t, err)

	// File entries layer over the defaults.
	assert.Equal("VENDOR DIAG IN", db.LookupOpcode(0xc0))
	assert.Equal("INQUIRY (OVERRIDDEN)", db.LookupOpcode(0x12))
	assert.Equal("TEST UNIT READY", db.LookupOpcode(0x00))

	_, err = OpenOpcodeDb(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(err)
}
