// Copyright 2025 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// SCSI command definitions and response parsing.

package scsi

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	// SCSI commands used by this package
	SCSI_TEST_UNIT_READY  = 0x00
	SCSI_REQUEST_SENSE    = 0x03
	SCSI_INQUIRY          = 0x12
	SCSI_MODE_SENSE_6     = 0x1a
	SCSI_READ_CAPACITY_10 = 0x25

	// Minimum length of standard INQUIRY response
	INQ_REPLY_LEN = 36
)

// SCSI CDB types
type CDB6 [6]byte
type CDB10 [10]byte
type CDB12 [12]byte
type CDB16 [16]byte

// InquiryCDB builds a standard INQUIRY command requesting alloclen response
// bytes.
func InquiryCDB(alloclen uint8) CDB6 {
	return CDB6{SCSI_INQUIRY, 0, 0, 0, alloclen, 0}
}

// TestUnitReadyCDB builds a TEST UNIT READY command.
func TestUnitReadyCDB() CDB6 {
	return CDB6{SCSI_TEST_UNIT_READY, 0, 0, 0, 0, 0}
}

// RequestSenseCDB builds a REQUEST SENSE command requesting alloclen bytes of
// sense data.
func RequestSenseCDB(alloclen uint8) CDB6 {
	return CDB6{SCSI_REQUEST_SENSE, 0, 0, 0, alloclen, 0}
}

// ReadCapacity10CDB builds a READ CAPACITY(10) command.
func ReadCapacity10CDB() CDB10 {
	return CDB10{SCSI_READ_CAPACITY_10}
}

// InquiryResponse is the first 36 bytes of a standard INQUIRY response
// (SPC-4, table 176).
type InquiryResponse struct {
	Peripheral   uint8 // peripheral qualifier | peripheral device type
	Removable    uint8
	Version      uint8
	RespDataFmt  uint8
	AddLength    uint8 // length of response minus 4
	Flags        [3]uint8
	VendorIdent  [8]byte
	ProductIdent [16]byte
	ProductRev   [4]byte
}

func (inq InquiryResponse) String() string {
	return fmt.Sprintf("%.8s %.16s %.4s",
		inq.VendorIdent, inq.ProductIdent, inq.ProductRev)
}

// PeripheralType returns the peripheral device type field, e.g. 0x00 for a
// direct access block device, 0x05 for CD/DVD.
func (inq InquiryResponse) PeripheralType() uint8 {
	return inq.Peripheral & 0x1f
}

// ParseInquiry decodes a standard INQUIRY response.
func ParseInquiry(buf []byte) (InquiryResponse, error) {
	var inq InquiryResponse

	if len(buf) < INQ_REPLY_LEN {
		return inq, fmt.Errorf("INQUIRY response truncated (%d bytes)", len(buf))
	}

	err := binary.Read(bytes.NewReader(buf), binary.BigEndian, &inq)
	return inq, err
}

// Capacity10 is the READ CAPACITY(10) response.
type Capacity10 struct {
	LastLBA  uint32 // LBA of the last logical block
	BlockLen uint32 // block length in bytes
}

// Bytes returns the device capacity in bytes.
func (c Capacity10) Bytes() uint64 {
	return (uint64(c.LastLBA) + 1) * uint64(c.BlockLen)
}

// ParseReadCapacity10 decodes a READ CAPACITY(10) response.
func ParseReadCapacity10(buf []byte) (Capacity10, error) {
	var rc Capacity10

	if len(buf) < 8 {
		return rc, fmt.Errorf("READ CAPACITY(10) response truncated (%d bytes)", len(buf))
	}

	err := binary.Read(bytes.NewReader(buf), binary.BigEndian, &rc)
	return rc, err
}
