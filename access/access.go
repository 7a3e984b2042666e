// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package access models the six context-specific access_flags
// enumerations a class file uses (class, inner class, field, method,
// method parameter, module). The same bit position means different
// things in different contexts, so each context gets its own flag
// table rather than one shared bitmask type.
package access

import (
	"errors"
	"fmt"
)

// ErrOutsideMask is returned when a flags value carries bits outside
// the mask a given context permits; the JVM spec treats that as a
// malformed class file.
var ErrOutsideMask = errors.New("access: flag bits outside context mask")

// Flag is a single access_flags bit, carrying both the spec token
// (ACC_PUBLIC) and the Java source modifier it prints as ("public";
// empty for flags with no source-level spelling).
type Flag struct {
	Bit         uint16
	JavaRepr    string
	ModifierRepr string
}

// Context enumerates the six places access_flags appears, each with
// its own bit mask and ordered flag table.
type Context struct {
	Mask  uint16
	Flags []Flag
}

var (
	Class = Context{
		Mask: 0xF631,
		Flags: []Flag{
			{0x0001, "ACC_PUBLIC", "public"},
			{0x0010, "ACC_FINAL", "final"},
			{0x0020, "ACC_SUPER", ""},
			{0x0200, "ACC_INTERFACE", "interface"},
			{0x0400, "ACC_ABSTRACT", "abstract"},
			{0x1000, "ACC_SYNTHETIC", ""},
			{0x2000, "ACC_ANNOTATION", ""},
			{0x4000, "ACC_ENUM", ""},
			{0x8000, "ACC_MODULE", ""},
		},
	}

	InnerClass = Context{
		Mask: 0x761F,
		Flags: []Flag{
			{0x0001, "ACC_PUBLIC", "public"},
			{0x0002, "ACC_PRIVATE", "private"},
			{0x0004, "ACC_PROTECTED", "protected"},
			{0x0008, "ACC_STATIC", "static"},
			{0x0010, "ACC_FINAL", "final"},
			{0x0200, "ACC_INTERFACE", "interface"},
			{0x0400, "ACC_ABSTRACT", "abstract"},
			{0x1000, "ACC_SYNTHETIC", ""},
			{0x2000, "ACC_ANNOTATION", ""},
			{0x4000, "ACC_ENUM", ""},
		},
	}

	Field = Context{
		Mask: 0x50DF,
		Flags: []Flag{
			{0x0001, "ACC_PUBLIC", "public"},
			{0x0002, "ACC_PRIVATE", "private"},
			{0x0004, "ACC_PROTECTED", "protected"},
			{0x0008, "ACC_STATIC", "static"},
			{0x0010, "ACC_FINAL", "final"},
			{0x0040, "ACC_VOLATILE", "volatile"},
			{0x0080, "ACC_TRANSIENT", "transient"},
			{0x1000, "ACC_SYNTHETIC", ""},
			{0x4000, "ACC_ENUM", ""},
		},
	}

	Method = Context{
		Mask: 0x1DFF,
		Flags: []Flag{
			{0x0001, "ACC_PUBLIC", "public"},
			{0x0002, "ACC_PRIVATE", "private"},
			{0x0004, "ACC_PROTECTED", "protected"},
			{0x0008, "ACC_STATIC", "static"},
			{0x0010, "ACC_FINAL", "final"},
			{0x0020, "ACC_SYNCHRONIZED", "synchronized"},
			{0x0040, "ACC_BRIDGE", ""},
			{0x0080, "ACC_VARARGS", ""},
			{0x0100, "ACC_NATIVE", "native"},
			{0x0400, "ACC_ABSTRACT", "abstract"},
			{0x0800, "ACC_STRICT", "strictfp"},
			{0x1000, "ACC_SYNTHETIC", ""},
		},
	}

	MethodParameter = Context{
		Mask: 0x9010,
		Flags: []Flag{
			{0x0010, "ACC_FINAL", "final"},
			{0x1000, "ACC_SYNTHETIC", ""},
			{0x8000, "ACC_MANDATED", ""},
		},
	}

	Module = Context{
		Mask: 0x9020,
		Flags: []Flag{
			{0x0020, "ACC_OPEN", ""},
			{0x1000, "ACC_SYNTHETIC", ""},
			{0x8000, "ACC_MANDATED", ""},
		},
	}
)

// Flags is a parsed access_flags value within a specific Context.
type Flags struct {
	ctx   Context
	value uint16
}

// Parse validates value against ctx's mask and returns the parsed
// Flags, or ErrOutsideMask if bits outside the mask are set.
func Parse(ctx Context, value uint16) (Flags, error) {
	if value&^ctx.Mask != 0 {
		return Flags{}, fmt.Errorf("%w: 0x%04x not in mask 0x%04x", ErrOutsideMask, value, ctx.Mask)
	}
	return Flags{ctx: ctx, value: value}, nil
}

// Raw returns the raw flags bitmask.
func (f Flags) Raw() uint16 { return f.value }

// Has reports whether the flag at bit is set.
func (f Flags) Has(bit uint16) bool { return f.value&bit != 0 }

// Set returns the ordered list of Flag values present in f.
func (f Flags) Set() []Flag {
	var out []Flag
	for _, fl := range f.ctx.Flags {
		if f.value&fl.Bit != 0 {
			out = append(out, fl)
		}
	}
	return out
}

// JavaReprs returns the java_repr tokens (ACC_PUBLIC, ...) of every set
// flag, in declaration order.
func (f Flags) JavaReprs() []string {
	set := f.Set()
	out := make([]string, len(set))
	for i, fl := range set {
		out[i] = fl.JavaRepr
	}
	return out
}

// Modifiers returns the non-empty Java source modifier keywords of
// every set flag, in declaration order.
func (f Flags) Modifiers() []string {
	var out []string
	for _, fl := range f.Set() {
		if fl.ModifierRepr != "" {
			out = append(out, fl.ModifierRepr)
		}
	}
	return out
}
