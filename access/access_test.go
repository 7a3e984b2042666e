// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package access

import (
	"reflect"
	"testing"
)

func TestParseRejectsBitsOutsideMask(t *testing.T) {
	if _, err := Parse(Field, 0x0100); err == nil {
		t.Fatalf("Parse(Field, 0x0100) should fail: ACC_NATIVE is not a field flag")
	}
}

func TestClassModifiers(t *testing.T) {
	flags, err := Parse(Class, 0x0001|0x0020|0x0400)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []string{"public", "abstract"}
	if got := flags.Modifiers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Modifiers() = %v, want %v", got, want)
	}
	if !flags.Has(0x0020) {
		t.Errorf("Has(ACC_SUPER) = false, want true")
	}
}

func TestMethodJavaReprs(t *testing.T) {
	flags, err := Parse(Method, 0x0001|0x0008|0x0400)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []string{"ACC_PUBLIC", "ACC_STATIC", "ACC_ABSTRACT"}
	if got := flags.JavaReprs(); !reflect.DeepEqual(got, want) {
		t.Errorf("JavaReprs() = %v, want %v", got, want)
	}
}

func TestEveryContextAcceptsZero(t *testing.T) {
	for _, ctx := range []Context{Class, InnerClass, Field, Method, MethodParameter, Module} {
		if _, err := Parse(ctx, 0); err != nil {
			t.Errorf("Parse(ctx, 0) failed: %v", err)
		}
	}
}
