// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classfile

import (
	"strings"
	"testing"
)

func TestDecodeBadMagic(t *testing.T) {
	_, err := ParseBytes([]byte{0xde, 0xad, 0xbe, 0xef})
	if err == nil {
		t.Fatalf("expected error for bad magic")
	}
	msg := err.Error()
	if !strings.Contains(msg, "0xcafebabe") || !strings.Contains(msg, "0xdeadbeef") {
		t.Errorf("error message %q should mention both magic values", msg)
	}
}

// minimalClassBytes builds the smallest legal class file this decoder
// accepts: no interfaces, fields, methods, or attributes, no
// super_class, and a five-slot constant pool holding the Utf8 and
// Class entries this_class needs, the Long whose slot reservation is
// under test (with its Null sentinel), and a Utf8 entry following it.
func minimalClassBytes() []byte {
	var b []byte
	put16 := func(v uint16) { b = append(b, byte(v>>8), byte(v)) }
	put32 := func(v uint32) { b = append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v)) }

	put32(ClassMagic)
	put16(0) // minor
	put16(65) // major

	// constant pool: #1 Utf8 "C" (class name), #2 Class -> #1,
	// #3 Long, #5 Utf8 "x" (the gap at #4 is the Long's Null sentinel).
	put16(6) // cp_count = 5 entries + 1
	b = append(b, 1, 0, 1, 'C')          // #1 Utf8 "C"
	b = append(b, 7, 0, 1)               // #2 Class -> #1
	b = append(b, 5, 0, 0, 0, 0, 0, 0, 0, 42) // #3 Long = 42
	b = append(b, 1, 0, 1, 'x')          // #5 Utf8 "x"

	put16(0x0020) // access_flags = ACC_SUPER
	put16(2)      // this_class = #2
	put16(0)      // super_class = 0 (none)
	put16(0)      // interfaces_count
	put16(0)      // fields_count
	put16(0)      // methods_count
	put16(0)      // attributes_count
	return b
}

func TestDecodeLongSlotReservation(t *testing.T) {
	cf, err := ParseBytes(minimalClassBytes())
	if err != nil {
		t.Fatalf("ParseBytes error: %v", err)
	}
	if got := cf.ConstantPool.Len(); got != 5 {
		t.Fatalf("ConstantPool.Len() = %d, want 5 (#1 Utf8, #2 Class, #3 Long, #4 Null sentinel, #5 Utf8)", got)
	}
	utf8, err := cf.ConstantPool.GetUtf8(5)
	if err != nil {
		t.Fatalf("GetUtf8(5) error: %v", err)
	}
	if utf8 != "x" {
		t.Errorf("GetUtf8(5) = %q, want %q", utf8, "x")
	}
}

func TestDecodeMinimalClassThisClassName(t *testing.T) {
	cf, err := ParseBytes(minimalClassBytes())
	if err != nil {
		t.Fatalf("ParseBytes error: %v", err)
	}
	name, err := cf.ConstantPool.GetClassName(cf.ThisClass)
	if err != nil {
		t.Fatalf("GetClassName error: %v", err)
	}
	if name != "C" {
		t.Errorf("this_class name = %q, want %q", name, "C")
	}
}

func TestFuzzRejectsGarbage(t *testing.T) {
	if Fuzz([]byte("not a class file")) != 0 {
		t.Errorf("Fuzz should return 0 for garbage input")
	}
}

func TestFuzzAcceptsMinimalClass(t *testing.T) {
	if Fuzz(minimalClassBytes()) != 1 {
		t.Errorf("Fuzz should return 1 for a well-formed minimal class")
	}
}
