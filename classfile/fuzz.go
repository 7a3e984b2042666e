// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classfile

// Fuzz is the legacy go-fuzz entrypoint: it returns 1 when data
// decodes into a well-formed ClassFile (interesting for the corpus to
// keep) and 0 otherwise.
func Fuzz(data []byte) int {
	if _, err := ParseBytes(data); err != nil {
		return 0
	}
	return 1
}
