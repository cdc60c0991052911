// Copyright 2025 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// USCSI command submission.

package uscsi

import (
	"runtime"
	"unsafe"

	"github.com/dswarbrick/uscsi/ioctl"
)

// doIoctl is the seam through which every request reaches the kernel. Tests
// interpose a fake here.
var doIoctl = ioctl.Ioctl

// command builds a uscsi_cmd and submits it to the device. bufaddr/buflen
// describe the data phase and are both zero when there is none. A non-empty
// sense buffer forces USCSI_RQENABLE so the driver fetches sense data on
// check condition.
//
// CDB length, sense length and timeout are narrowed to the widths of the
// kernel struct without validation, exactly as the driver ABI takes them: a
// CDB over 255 bytes or a timeout over 32767 seconds wraps silently, so
// staying within range is a caller obligation.
//
// On success it returns the data-phase and sense-phase residual byte counts.
// On failure the raw errno from the ioctl is returned and nothing else.
func command(fd uintptr, cdb []byte, bufaddr uintptr, buflen uint, sense []byte, flags Flags, timeout uint16) (uint, uint, error) {
	cmd := uscsiCmd{
		flags:   int32(flags),
		timeout: int16(timeout),
		bufaddr: bufaddr,
		buflen:  buflen,
		cdblen:  uint8(len(cdb)),
	}

	if len(cdb) > 0 {
		cmd.cdb = uintptr(unsafe.Pointer(&cdb[0]))
	}

	if len(sense) > 0 {
		cmd.flags |= int32(USCSI_RQENABLE)
		cmd.rqbuf = uintptr(unsafe.Pointer(&sense[0]))
		cmd.rqlen = uint8(len(sense))
	}

	err := doIoctl(fd, USCSICMD, uintptr(unsafe.Pointer(&cmd)))

	// The kernel reads and writes through the raw addresses embedded in cmd
	// for the whole blocking call; keep the backing slices live until it
	// returns.
	runtime.KeepAlive(cdb)
	runtime.KeepAlive(sense)

	if err != nil {
		return 0, 0, err
	}

	return cmd.resid, uint(cmd.rqresid), nil
}

// Read submits cdb to the device and transfers data from the device into
// data. USCSI_READ is forced on regardless of flags. The kernel writes into
// data during the call, so the buffer must not be touched concurrently.
// Returns the data and sense residual byte counts.
func Read(fd uintptr, cdb, data, sense []byte, flags Flags, timeout uint16) (uint, uint, error) {
	var addr uintptr
	if len(data) > 0 {
		addr = uintptr(unsafe.Pointer(&data[0]))
	}

	resid, rqresid, err := command(fd, cdb, addr, uint(len(data)), sense, flags|USCSI_READ, timeout)
	runtime.KeepAlive(data)

	return resid, rqresid, err
}

// Write submits cdb to the device, sending the contents of data to it.
// USCSI_READ is forced off regardless of flags (USCSI_WRITE is the absence
// of the read bit). The kernel only reads from data.
func Write(fd uintptr, cdb, data, sense []byte, flags Flags, timeout uint16) (uint, uint, error) {
	var addr uintptr
	if len(data) > 0 {
		addr = uintptr(unsafe.Pointer(&data[0]))
	}

	resid, rqresid, err := command(fd, cdb, addr, uint(len(data)), sense, (flags&^USCSI_READ)|USCSI_WRITE, timeout)
	runtime.KeepAlive(data)

	return resid, rqresid, err
}

// reset submits a bare descriptor carrying only the given reset flag. No
// CDB, no data phase, no sense retrieval.
func reset(fd uintptr, flags Flags) error {
	cmd := uscsiCmd{flags: int32(flags)}

	return doIoctl(fd, USCSICMD, uintptr(unsafe.Pointer(&cmd)))
}

// Reset resets the target device.
func Reset(fd uintptr) error {
	return reset(fd, USCSI_RESET)
}

// ResetAll resets the whole bus the device sits on.
func ResetAll(fd uintptr) error {
	return reset(fd, USCSI_RESET_ALL)
}

// ResetLun resets only the logical unit.
func ResetLun(fd uintptr) error {
	return reset(fd, USCSI_RESET_LUN)
}

// MaxXfer returns the maximum transfer size in bytes that the device path
// supports. The query is answered by the HBA driver itself and causes no
// device I/O.
func MaxXfer(fd uintptr) (uint64, error) {
	var val uint64

	if err := doIoctl(fd, USCSIMAXXFER, uintptr(unsafe.Pointer(&val))); err != nil {
		return 0, err
	}

	return val, nil
}
