// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package descriptor

import "testing"

func TestParseFieldDescriptor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"I", "int"},
		{"[[J", "long[][]"},
		{"Ljava/lang/Object;", "java.lang.Object"},
		{"Ljava/util/Map<Ljava/lang/String;Ljava/lang/Integer;>;", "java.util.Map<java.lang.String, java.lang.Integer>"},
	}
	for _, tt := range tests {
		fd, err := ParseFieldDescriptor(tt.in)
		if err != nil {
			t.Fatalf("ParseFieldDescriptor(%q) error: %v", tt.in, err)
		}
		if got := fd.Type.String(); got != tt.want {
			t.Errorf("ParseFieldDescriptor(%q).Type.String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	md, err := ParseMethodDescriptor("(Ljava/lang/String;IJ)V")
	if err != nil {
		t.Fatalf("ParseMethodDescriptor error: %v", err)
	}
	if got := md.Return.String(); got != "void" {
		t.Errorf("Return = %q, want void", got)
	}
	want := []string{"java.lang.String", "int", "long"}
	if len(md.Parameters) != len(want) {
		t.Fatalf("got %d parameters, want %d", len(md.Parameters), len(want))
	}
	for i, p := range md.Parameters {
		if got := p.String(); got != want[i] {
			t.Errorf("Parameters[%d] = %q, want %q", i, got, want[i])
		}
	}
}

func TestParseMethodDescriptorNoArgs(t *testing.T) {
	md, err := ParseMethodDescriptor("()V")
	if err != nil {
		t.Fatalf("ParseMethodDescriptor error: %v", err)
	}
	if len(md.Parameters) != 0 {
		t.Errorf("Parameters = %v, want empty", md.Parameters)
	}
}

func TestMalformedDescriptors(t *testing.T) {
	tests := []string{
		"",
		"X",
		"Ljava/lang/Object",
		"(I",
		"(I)V extra",
	}
	for _, in := range tests {
		if _, err := ParseFieldDescriptor(in); err == nil {
			if _, merr := ParseMethodDescriptor(in); merr == nil {
				t.Errorf("expected %q to fail parsing as either field or method descriptor", in)
			}
		}
	}
}

func TestGenericTypeArgsRenderedRecursively(t *testing.T) {
	fd, err := ParseFieldDescriptor("Ljava/util/List<Ljava/util/List<Ljava/lang/String;>;>;")
	if err != nil {
		t.Fatalf("ParseFieldDescriptor error: %v", err)
	}
	want := "java.util.List<java.util.List<java.lang.String>>"
	if got := fd.Type.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
