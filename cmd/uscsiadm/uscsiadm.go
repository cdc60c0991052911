// Copyright 2025 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// USCSI passthrough reference tool. Issues simple SCSI commands to a device
// node via the uscsi library.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/dswarbrick/uscsi"
	"github.com/dswarbrick/uscsi/opcodedb"
	"github.com/dswarbrick/uscsi/scsi"
	"github.com/dswarbrick/uscsi/utils"
)

const senseLen = 20 // SENSE_LENGTH in <sys/scsi/generic/sense.h>

var (
	device  = flag.String("device", "", "raw device node to address, e.g., /dev/rdsk/c0t0d0s2")
	timeout = flag.Uint("timeout", 30, "command timeout in seconds")
	dbFile  = flag.String("opcodedb", "", "YAML opcode name database overlaying the built-in one")
	verbose = flag.Bool("v", false, "print the CDB and residuals for each command")

	cmdDb = opcodedb.DefaultDb()
)

func describeCDB(cdb []byte) {
	fmt.Printf("CDB [%s]: % x\n", cmdDb.LookupOpcode(cdb[0]), cdb)
}

func runRead(fd uintptr, cdb, data []byte) ([]byte, error) {
	if *verbose {
		describeCDB(cdb)
	}

	sense := make([]byte, senseLen)

	resid, rqresid, err := uscsi.Read(fd, cdb, data, sense, 0, uint16(*timeout))
	if err != nil {
		return nil, err
	}

	if *verbose {
		fmt.Printf("data resid: %d, sense resid: %d\n", resid, rqresid)
		if n := senseLen - int(rqresid); n > 0 && n <= senseLen {
			fmt.Printf("sense data:\n%s", hex.Dump(sense[:n]))
		}
	}

	return data[:uint(len(data))-resid], nil
}

func inquiry(fd uintptr) error {
	cdb := scsi.InquiryCDB(scsi.INQ_REPLY_LEN)

	buf, err := runRead(fd, cdb[:], make([]byte, scsi.INQ_REPLY_LEN))
	if err != nil {
		return err
	}

	inq, err := scsi.ParseInquiry(buf)
	if err != nil {
		return err
	}

	fmt.Printf("%s (peripheral type %#02x)\n", inq, inq.PeripheralType())
	return nil
}

func readCapacity(fd uintptr) error {
	cdb := scsi.ReadCapacity10CDB()

	buf, err := runRead(fd, cdb[:], make([]byte, 8))
	if err != nil {
		return err
	}

	rc, err := scsi.ParseReadCapacity10(buf)
	if err != nil {
		return err
	}

	fmt.Printf("%d blocks of %d bytes (%s)\n",
		uint64(rc.LastLBA)+1, rc.BlockLen, utils.FormatBytes(rc.Bytes()))
	return nil
}

func testUnitReady(fd uintptr) error {
	cdb := scsi.TestUnitReadyCDB()

	if _, err := runRead(fd, cdb[:], nil); err != nil {
		return err
	}

	fmt.Println("unit is ready")
	return nil
}

func maxXfer(fd uintptr) error {
	val, err := uscsi.MaxXfer(fd)
	if err != nil {
		return err
	}

	fmt.Printf("max transfer: %d bytes (%s)\n", val, utils.FormatBytes(val))
	return nil
}

func main() {
	fmt.Printf("uscsiadm built with %s on %s (%s)\n\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	flag.Parse()

	if *device == "" || flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s -device <node> [flags] inquiry|readcap|tur|maxxfer|reset\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	if *dbFile != "" {
		var err error
		if cmdDb, err = opcodedb.OpenOpcodeDb(*dbFile); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	if unix.Geteuid() != 0 {
		fmt.Println("Not running as root. Device access will probably fail.")
	}

	fd, err := unix.Open(*device, unix.O_RDWR, 0600)
	if err != nil {
		fmt.Printf("Cannot open device %s: %v\n", *device, err)
		os.Exit(1)
	}

	defer unix.Close(fd)

	switch action := flag.Arg(0); action {
	case "inquiry":
		err = inquiry(uintptr(fd))
	case "readcap":
		err = readCapacity(uintptr(fd))
	case "tur":
		err = testUnitReady(uintptr(fd))
	case "maxxfer":
		err = maxXfer(uintptr(fd))
	case "reset":
		err = uscsi.Reset(uintptr(fd))
	default:
		err = fmt.Errorf("unknown action %q", action)
	}

	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
