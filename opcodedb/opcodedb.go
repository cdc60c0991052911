// Copyright 2025 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package opcodedb maps SCSI operation codes to human-readable command names
// for CDB decoding. A YAML file can extend or override the compiled-in
// defaults, e.g. for vendor-specific opcodes:
//
//	0xc0: "VENDOR DIAG IN"
//	0xc1: "VENDOR DIAG OUT"
package opcodedb

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// OpcodeDb maps SCSI operation codes to command names.
type OpcodeDb struct {
	Opcodes map[uint8]string
}

// Opcode names from SPC-5 annex E, command set overlap. Not exhaustive; the
// commands initiators commonly issue.
var defaultOpcodes = map[uint8]string{
	0x00: "TEST UNIT READY",
	0x03: "REQUEST SENSE",
	0x04: "FORMAT UNIT",
	0x08: "READ(6)",
	0x0a: "WRITE(6)",
	0x12: "INQUIRY",
	0x15: "MODE SELECT(6)",
	0x16: "RESERVE(6)",
	0x17: "RELEASE(6)",
	0x1a: "MODE SENSE(6)",
	0x1b: "START STOP UNIT",
	0x1d: "SEND DIAGNOSTIC",
	0x25: "READ CAPACITY(10)",
	0x28: "READ(10)",
	0x2a: "WRITE(10)",
	0x2f: "VERIFY(10)",
	0x35: "SYNCHRONIZE CACHE(10)",
	0x3b: "WRITE BUFFER",
	0x3c: "READ BUFFER(10)",
	0x4d: "LOG SENSE",
	0x55: "MODE SELECT(10)",
	0x5a: "MODE SENSE(10)",
	0x85: "ATA PASS-THROUGH(16)",
	0x88: "READ(16)",
	0x8a: "WRITE(16)",
	0x9e: "SERVICE ACTION IN(16)",
	0xa0: "REPORT LUNS",
	0xa3: "MAINTENANCE IN",
	0xa8: "READ(12)",
	0xaa: "WRITE(12)",
}

// DefaultDb returns a database containing only the compiled-in opcode names.
func DefaultDb() OpcodeDb {
	db := OpcodeDb{Opcodes: make(map[uint8]string, len(defaultOpcodes))}

	for op, name := range defaultOpcodes {
		db.Opcodes[op] = name
	}

	return db
}

// OpenOpcodeDb loads opcode names from a YAML file, layered over the
// compiled-in defaults.
func OpenOpcodeDb(name string) (OpcodeDb, error) {
	db := DefaultDb()

	f, err := os.Open(name)
	if err != nil {
		return db, err
	}

	defer f.Close()

	overrides := make(map[uint8]string)

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&overrides); err != nil {
		return db, err
	}

	for op, cmdName := range overrides {
		db.Opcodes[op] = cmdName
	}

	return db, nil
}

// LookupOpcode returns the command name for an operation code, or a hex
// placeholder when the code is unknown.
func (db OpcodeDb) LookupOpcode(op uint8) string {
	if name, ok := db.Opcodes[op]; ok {
		return name
	}

	return fmt.Sprintf("opcode %#02x", op)
}
