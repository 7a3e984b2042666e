// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/javap-go/javap/classfile"
)

// sampleClassBytes builds a small but complete class file:
//
//	public class Sample {
//	    private int count;
//	    public Sample() { super(); }
//	    public int get() { return 0; }
//	}
func sampleClassBytes() []byte {
	var b []byte
	put16 := func(v uint16) { b = append(b, byte(v>>8), byte(v)) }
	put32 := func(v uint32) { b = append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v)) }
	utf8 := func(s string) { b = append(b, 1); put16(uint16(len(s))); b = append(b, s...) }

	put32(0xCAFEBABE)
	put16(0) // minor
	put16(65) // major

	put16(14) // cp_count: 13 entries + 1
	utf8("Sample")                  // #1
	b = append(b, 7); put16(1)      // #2 Class -> #1
	utf8("java/lang/Object")        // #3
	b = append(b, 7); put16(3)      // #4 Class -> #3
	utf8("<init>")                  // #5
	utf8("()V")                     // #6
	b = append(b, 12); put16(5); put16(6) // #7 NameAndType #5:#6
	b = append(b, 10); put16(4); put16(7) // #8 Methodref #4.#7
	utf8("Code")                    // #9
	utf8("count")                   // #10
	utf8("I")                       // #11
	utf8("get")                     // #12
	utf8("()I")                     // #13

	put16(0x0021) // access_flags: PUBLIC | SUPER
	put16(2)      // this_class
	put16(4)      // super_class
	put16(0)      // interfaces_count

	put16(1) // fields_count
	put16(0x0002) // ACC_PRIVATE
	put16(10)     // name: count
	put16(11)     // descriptor: I
	put16(0)      // attributes_count

	put16(2) // methods_count

	// <init>()V
	put16(0x0001) // ACC_PUBLIC
	put16(5)      // name: <init>
	put16(6)      // descriptor: ()V
	put16(1)      // attributes_count
	put16(9)      // attribute name: Code
	put32(0)      // attribute_length, unused by this decoder
	put16(1)      // max_stack
	put16(1)      // max_locals
	code1 := []byte{0x2a, 0xb7, 0x00, 0x08, 0xb1} // aload_0; invokespecial #8; return
	put32(uint32(len(code1)))
	b = append(b, code1...)
	put16(0) // exception_table_count
	put16(0) // code attributes_count

	// get()I
	put16(0x0001) // ACC_PUBLIC
	put16(12)     // name: get
	put16(13)     // descriptor: ()I
	put16(1)      // attributes_count
	put16(9)      // attribute name: Code
	put32(0)
	put16(1) // max_stack
	put16(1) // max_locals
	code2 := []byte{0x03, 0xac} // iconst_0; ireturn
	put32(uint32(len(code2)))
	b = append(b, code2...)
	put16(0) // exception_table_count
	put16(0) // code attributes_count

	put16(0) // class attributes_count

	return b
}

func TestFprintSampleClass(t *testing.T) {
	cf, err := classfile.ParseBytes(sampleClassBytes())
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}

	var buf bytes.Buffer
	if err := Fprint(&buf, cf); err != nil {
		t.Fatalf("Fprint: %v", err)
	}
	out := buf.String()

	wantSubstrings := []string{
		"public class Sample\n",
		"#2 = Class",
		"#8 = Methodref",
		"private int count;",
		"descriptor: I",
		"public Sample();",
		"public int get();",
		"aload_0",
		"invokespecial #8",
		"Method java/lang/Object.\"<init>\":()V",
		"return",
		"iconst_0",
		"ireturn",
	}
	for _, want := range wantSubstrings {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\nfull output:\n%s", want, out)
		}
	}

	if strings.Contains(out, "extends") {
		t.Errorf("class extending java.lang.Object should omit an extends clause")
	}
}

func TestFprintInstructionLines(t *testing.T) {
	cf, err := classfile.ParseBytes(sampleClassBytes())
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}

	var method classfile.MethodInfo
	for _, m := range cf.Methods {
		name, _ := cf.ConstantPool.GetUtf8(m.NameIndex)
		if name == "get" {
			method = m
		}
	}
	if method.Attributes == nil {
		t.Fatalf("method get() not found")
	}

	var buf bytes.Buffer
	for _, attr := range method.Attributes {
		if attr.Name == "Code" {
			if err := printCode(&buf, cf, attr.Code, 1, computeWidths(cf.ConstantPool.Len())); err != nil {
				t.Fatalf("printCode: %v", err)
			}
		}
	}

	got := extractMnemonics(buf.String())
	want := []string{"iconst_0", "ireturn"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("instruction mnemonics mismatch (-want +got):\n%s", diff)
	}
}

// enumClassBytes builds a minimal enum class:
//
//	public final enum Color {
//	    private Color() { super(); }
//	}
//
// with a constructor descriptor carrying the two compiler-synthesized
// leading parameters (String name, int ordinal) javap hides.
func enumClassBytes() []byte {
	var b []byte
	put16 := func(v uint16) { b = append(b, byte(v>>8), byte(v)) }
	put32 := func(v uint32) { b = append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v)) }
	utf8 := func(s string) { b = append(b, 1); put16(uint16(len(s))); b = append(b, s...) }

	put32(0xCAFEBABE)
	put16(0)
	put16(65)

	put16(8) // cp_count: 7 entries + 1
	utf8("Color")                          // #1
	b = append(b, 7)
	put16(1) // #2 Class -> #1 (this_class)
	utf8("java/lang/Enum")                 // #3
	b = append(b, 7)
	put16(3) // #4 Class -> #3 (super_class)
	utf8("<init>")                         // #5
	utf8("(Ljava/lang/String;I)V")         // #6
	utf8("Code")                           // #7

	put16(0x4031) // access_flags: PUBLIC | FINAL | SUPER | ENUM
	put16(2)      // this_class
	put16(4)      // super_class
	put16(0)      // interfaces_count

	put16(0) // fields_count

	put16(1) // methods_count
	put16(0x0002) // ACC_PRIVATE
	put16(5)      // name: <init>
	put16(6)      // descriptor
	put16(1)      // attributes_count
	put16(7)      // attribute name: Code
	put32(0)
	put16(0) // max_stack
	put16(3) // max_locals
	code := []byte{0xb1} // return
	put32(uint32(len(code)))
	b = append(b, code...)
	put16(0) // exception_table_count
	put16(0) // code attributes_count

	put16(0) // class attributes_count

	return b
}

func TestFprintEnumClass(t *testing.T) {
	cf, err := classfile.ParseBytes(enumClassBytes())
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}

	var buf bytes.Buffer
	if err := Fprint(&buf, cf); err != nil {
		t.Fatalf("Fprint: %v", err)
	}
	out := buf.String()

	wantSubstrings := []string{
		"extends java.lang.Enum<Color>",
		"private Color();",
	}
	for _, want := range wantSubstrings {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\nfull output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "(Ljava/lang/String;I)V)") || strings.Contains(out, "String, int)") {
		t.Errorf("enum constructor should hide its synthesized name/ordinal parameters\nfull output:\n%s", out)
	}
}

// sameClassMethodRefBytes builds a class whose only invokestatic call
// targets a method on its own this_class, exercising the abbreviated
// "Method name:descriptor" comment form (no class prefix) from S8.
//
//	public class Sample2 {
//	    public static void foo() {}
//	    public static void bar() { foo(); }
//	}
func sameClassMethodRefBytes() []byte {
	var b []byte
	put16 := func(v uint16) { b = append(b, byte(v>>8), byte(v)) }
	put32 := func(v uint32) { b = append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v)) }
	utf8 := func(s string) { b = append(b, 1); put16(uint16(len(s))); b = append(b, s...) }

	put32(0xCAFEBABE)
	put16(0)
	put16(65)

	put16(11) // cp_count: 10 entries + 1
	utf8("Sample2")                   // #1
	b = append(b, 7)
	put16(1) // #2 Class -> #1 (this_class)
	utf8("java/lang/Object")          // #3
	b = append(b, 7)
	put16(3) // #4 Class -> #3 (super_class)
	utf8("foo")                       // #5
	utf8("()V")                       // #6
	b = append(b, 12)
	put16(5)
	put16(6) // #7 NameAndType #5:#6
	b = append(b, 10)
	put16(2)
	put16(7) // #8 Methodref #2.#7, class_index == this_class
	utf8("Code")                      // #9
	utf8("bar")                       // #10

	put16(0x0021) // access_flags: PUBLIC | SUPER
	put16(2)      // this_class
	put16(4)      // super_class
	put16(0)      // interfaces_count

	put16(0) // fields_count

	put16(2) // methods_count

	// public static void foo() {}
	put16(0x0009) // ACC_PUBLIC | ACC_STATIC
	put16(5)      // name: foo
	put16(6)      // descriptor: ()V
	put16(1)      // attributes_count
	put16(9)      // attribute name: Code
	put32(0)
	put16(0) // max_stack
	put16(0) // max_locals
	code1 := []byte{0xb1} // return
	put32(uint32(len(code1)))
	b = append(b, code1...)
	put16(0)
	put16(0)

	// public static void bar() { foo(); }
	put16(0x0009) // ACC_PUBLIC | ACC_STATIC
	put16(10)     // name: bar
	put16(6)      // descriptor: ()V
	put16(1)      // attributes_count
	put16(9)      // attribute name: Code
	put32(0)
	put16(1) // max_stack
	put16(0) // max_locals
	code2 := []byte{0xb8, 0x00, 0x08, 0xb1} // invokestatic #8; return
	put32(uint32(len(code2)))
	b = append(b, code2...)
	put16(0)
	put16(0)

	put16(0) // class attributes_count

	return b
}

func TestFprintSameClassMethodRef(t *testing.T) {
	cf, err := classfile.ParseBytes(sameClassMethodRefBytes())
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}

	var buf bytes.Buffer
	if err := Fprint(&buf, cf); err != nil {
		t.Fatalf("Fprint: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "// Method foo:()V") {
		t.Errorf("same-class invokestatic should abbreviate away the class prefix\nfull output:\n%s", out)
	}
	if strings.Contains(out, "Method Sample2.foo") {
		t.Errorf("same-class invokestatic should not carry a class prefix\nfull output:\n%s", out)
	}
}

// extractMnemonics pulls the first space-delimited token after each
// "N: " offset prefix out of a bytecode listing, e.g. "0: iconst_0" -> "iconst_0".
func extractMnemonics(listing string) []string {
	var out []string
	for _, line := range strings.Split(listing, "\n") {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, ": ")
		if idx < 0 {
			continue
		}
		rest := line[idx+2:]
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		out = append(out, fields[0])
	}
	return out
}
