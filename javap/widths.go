// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package javap prints a decoded classfile.ClassFile as text matching
// the javap -v layout: fixed-width columns for the constant pool and
// bytecode listing, computed once per run from the pool's size so
// indices stay right-aligned regardless of how large the file is.
package javap

import "strings"

// widths are the column anchors the printer computes once at entry,
// derived from the constant pool's size, and threads into every
// sub-printer rather than hard-coding a pool-size assumption anywhere.
type widths struct {
	cpIndexWidth       int
	cpInfoStart        int
	cpCommentStart     int
	bytecodeCommentStart int
	bytecodeIndexWidth int
}

func computeWidths(cpSize int) widths {
	d := digits(cpSize)
	return widths{
		cpIndexWidth:          3 + d,
		cpInfoStart:           25 + d,
		cpCommentStart:        39 + d,
		bytecodeCommentStart:  46,
		bytecodeIndexWidth:    5,
	}
}

func digits(n int) int {
	if n < 1 {
		return 1
	}
	count := 0
	for n > 0 {
		count++
		n /= 10
	}
	return count
}

// padTo appends spaces to b until its length reaches col. If b is
// already at or past col, it appends nothing (columns never collide
// catastrophically; they just run together, matching javap's own
// behavior when a payload overflows its column).
func padTo(b *strings.Builder, col int) {
	for b.Len() < col {
		b.WriteByte(' ')
	}
}
