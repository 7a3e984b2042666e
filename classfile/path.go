// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classfile

import "path/filepath"

func absolutePath(path string) (string, error) {
	return filepath.Abs(path)
}
