// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constantpool

import (
	"testing"

	"github.com/javap-go/javap/reader"
)

// build assembles a constant pool byte stream from a sequence of
// already-encoded entries and returns a Pool decoded from it. cpCount
// is the count field a class file would carry (logical entries + 1).
func build(t *testing.T, cpCount uint16, raw []byte) *Pool {
	t.Helper()
	r := reader.New(raw, reader.BigEndian)
	pool, err := Decode(r, cpCount)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return pool
}

func utf8Entry(s string) []byte {
	b := []byte(s)
	out := []byte{byte(TagUtf8), byte(len(b) >> 8), byte(len(b))}
	return append(out, b...)
}

func classEntry(nameIndex uint16) []byte {
	return []byte{byte(TagClass), byte(nameIndex >> 8), byte(nameIndex)}
}

func nameAndTypeEntry(nameIndex, descIndex uint16) []byte {
	return []byte{byte(TagNameAndType), byte(nameIndex >> 8), byte(nameIndex), byte(descIndex >> 8), byte(descIndex)}
}

func methodrefEntry(classIndex, natIndex uint16) []byte {
	return []byte{byte(TagMethodref), byte(classIndex >> 8), byte(classIndex), byte(natIndex >> 8), byte(natIndex)}
}

func TestDecodeSimplePool(t *testing.T) {
	// #1 Utf8 "Main", #2 Utf8 "()V", #3 Class -> #1, #4 Utf8 "<init>",
	// #5 NameAndType(#4, #2)
	var raw []byte
	raw = append(raw, utf8Entry("Main")...)
	raw = append(raw, utf8Entry("()V")...)
	raw = append(raw, classEntry(1)...)
	raw = append(raw, utf8Entry("<init>")...)
	raw = append(raw, nameAndTypeEntry(4, 2)...)

	pool := build(t, 6, raw)

	if got := pool.Len(); got != 5 {
		t.Fatalf("Len() = %d, want 5", got)
	}

	name, err := pool.GetClassName(3)
	if err != nil {
		t.Fatalf("GetClassName(3) error: %v", err)
	}
	if name != "Main" {
		t.Errorf("GetClassName(3) = %q, want %q", name, "Main")
	}

	nt, err := pool.GetNameAndType(5)
	if err != nil {
		t.Fatalf("GetNameAndType(5) error: %v", err)
	}
	if want := "\"<init>\":()V"; nt != want {
		t.Errorf("GetNameAndType(5) = %q, want %q", nt, want)
	}
}

func TestDecodeLongTakesTwoSlots(t *testing.T) {
	// #1 Long, #3 Utf8 "x" (note the gap at #2, filled by a Null sentinel)
	var raw []byte
	raw = append(raw, byte(TagLong), 0, 0, 0, 0, 0, 0, 0, 42)
	raw = append(raw, utf8Entry("x")...)

	pool := build(t, 4, raw)

	if pool.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", pool.Len())
	}
	if _, ok := pool.Entries[0].(LongInfo); !ok {
		t.Fatalf("Entries[0] = %T, want LongInfo", pool.Entries[0])
	}
	if _, ok := pool.Entries[1].(Null); !ok {
		t.Fatalf("Entries[1] = %T, want Null", pool.Entries[1])
	}
	utf8, err := pool.GetUtf8(3)
	if err != nil {
		t.Fatalf("GetUtf8(3) error: %v", err)
	}
	if utf8 != "x" {
		t.Errorf("GetUtf8(3) = %q, want %q", utf8, "x")
	}
}

func TestGetMethodRef(t *testing.T) {
	var raw []byte
	raw = append(raw, utf8Entry("java/lang/Object")...) // #1
	raw = append(raw, classEntry(1)...)                  // #2
	raw = append(raw, utf8Entry("<init>")...)            // #3
	raw = append(raw, utf8Entry("()V")...)               // #4
	raw = append(raw, nameAndTypeEntry(3, 4)...)          // #5
	raw = append(raw, methodrefEntry(2, 5)...)            // #6

	pool := build(t, 7, raw)

	got, err := pool.GetMethodRef(6)
	if err != nil {
		t.Fatalf("GetMethodRef(6) error: %v", err)
	}
	want := "java/lang/Object.\"<init>\":()V"
	if got != want {
		t.Errorf("GetMethodRef(6) = %q, want %q", got, want)
	}
}

func TestEscapeUtf8(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"line\nbreak", "line\\nbreak"},
		{"it's", "it\\'s"},
		{"\x01", "\\u0001"},
		{"[Ljava/lang/String;", "\"[Ljava/lang/String;\""},
	}
	for _, tt := range tests {
		if got := EscapeUtf8(tt.in); got != tt.want {
			t.Errorf("EscapeUtf8(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrongVariant(t *testing.T) {
	raw := utf8Entry("not a class")
	pool := build(t, 2, raw)

	if _, err := pool.GetClassName(1); err == nil {
		t.Fatalf("GetClassName(1) on a Utf8 entry should fail")
	}
}

func TestParseReferenceKindRoundTrip(t *testing.T) {
	for b := uint8(1); b <= 9; b++ {
		kind, err := ParseReferenceKind(b)
		if err != nil {
			t.Fatalf("ParseReferenceKind(%d) error: %v", b, err)
		}
		if kind.JavaRepr() == "" {
			t.Errorf("JavaRepr() empty for kind %d", b)
		}
	}
	if _, err := ParseReferenceKind(0); err == nil {
		t.Fatalf("ParseReferenceKind(0) should fail")
	}
	if _, err := ParseReferenceKind(10); err == nil {
		t.Fatalf("ParseReferenceKind(10) should fail")
	}
}
