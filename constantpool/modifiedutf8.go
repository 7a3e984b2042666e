// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constantpool

// DecodeModifiedUTF8 decodes the JVM's modified UTF-8 encoding (JVM
// Spec SE 25 §4.4.7) into a Go string. It differs from standard UTF-8
// in three ways: the null character is encoded as two bytes (0xC0,
// 0x80) instead of one, supplementary characters are encoded as a
// surrogate pair of 3-byte sequences instead of a single 4-byte
// sequence, and no true 4-byte sequence is ever produced. A malformed
// or truncated byte is kept as the code point of the same value rather
// than rejected;
// class files that reach this point have already passed length
// validation, and the printer only ever needs a best-effort rendering.
func DecodeModifiedUTF8(b []byte) string {
	runes := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		b0 := b[i]
		switch {
		case b0&0x80 == 0:
			runes = append(runes, rune(b0))
			i++
		case b0&0xE0 == 0xC0 && i+1 < len(b):
			b1 := b[i+1]
			runes = append(runes, rune(b0&0x1F)<<6|rune(b1&0x3F))
			i += 2
		case b0&0xF0 == 0xE0 && i+2 < len(b):
			b1, b2 := b[i+1], b[i+2]
			high := rune(b0&0x0F)<<12 | rune(b1&0x3F)<<6 | rune(b2&0x3F)
			if isHighSurrogate(high) && i+5 < len(b) && b[i+3] == 0xED {
				b4, b5 := b[i+4], b[i+5]
				low := rune(b[i+3]&0x0F)<<12 | rune(b4&0x3F)<<6 | rune(b5&0x3F)
				if isLowSurrogate(low) {
					combined := 0x10000 + (high-0xD800)<<10 + (low - 0xDC00)
					runes = append(runes, combined)
					i += 6
					continue
				}
			}
			runes = append(runes, high)
			i += 3
		default:
			runes = append(runes, rune(b0))
			i++
		}
	}
	return string(runes)
}

func isHighSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDBFF }
func isLowSurrogate(r rune) bool  { return r >= 0xDC00 && r <= 0xDFFF }
