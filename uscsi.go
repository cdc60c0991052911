// Copyright 2025 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package uscsi issues SCSI commands to devices through the Solaris/illumos
// USCSI(4I) generic passthrough ioctl.
//
// The package is a thin marshalling layer: each call builds the kernel's
// struct uscsi_cmd, submits it on an already-open device descriptor, and
// reports the residual byte counts or the raw OS error. Opening the device,
// composing CDBs and interpreting sense data are the caller's business.
package uscsi

// ioctl request codes from <sys/uscsi.h>
const (
	USCSIIOC     = 0x04 << 8
	USCSICMD     = USCSIIOC | 201 // submit a uscsi_cmd
	USCSIMAXXFER = USCSIIOC | 202 // query max transfer size
)

// Flags modify how the kernel driver executes a request. They may be OR'd
// together freely; no combination is validated. Values from <sys/uscsi.h>.
type Flags int32

const (
	USCSI_SILENT        Flags = 0x00000001 // no error messages
	USCSI_DIAGNOSE      Flags = 0x00000002 // treat failures as diagnostic
	USCSI_ISOLATE       Flags = 0x00000004 // isolate from normal commands
	USCSI_READ          Flags = 0x00000008 // transfer data from device
	USCSI_WRITE         Flags = 0x00000000 // transfer data to device (absence of USCSI_READ)
	USCSI_RESET         Flags = 0x00004000 // reset target
	USCSI_RESET_ALL     Flags = 0x00008000 // reset the whole bus
	USCSI_RQENABLE      Flags = 0x00010000 // enable request sense retrieval
	USCSI_RENEGOT       Flags = 0x00020000 // renegotiate wide/sync on next I/O
	USCSI_RESET_LUN     Flags = 0x00040000 // reset logical unit only
	USCSI_PATH_INSTANCE Flags = 0x00080000 // use uscsi_path_instance
)

// uscsiCmd mirrors struct uscsi_cmd in <sys/uscsi.h>. Field order, widths and
// padding must match the kernel ABI exactly; a mismatch is silent corruption,
// not an error the kernel can detect.
type uscsiCmd struct {
	flags         int32   // read, write, etc. see Flags
	status        int16   // resulting status
	timeout       int16   // command timeout, seconds
	cdb           uintptr // CDB to send to target
	bufaddr       uintptr // i/o source/destination
	buflen        uint    // size of i/o to take place
	resid         uint    // resid from i/o operation
	cdblen        uint8   // # of valid CDB bytes
	rqlen         uint8   // size of uscsi_rqbuf
	rqstatus      uint8   // status of request sense cmd
	rqresid       uint8   // resid of request sense cmd
	rqbuf         uintptr // request sense buffer
	path_instance uint    // hardware path of device
}
