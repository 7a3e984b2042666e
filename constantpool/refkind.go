// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constantpool

import (
	"errors"
	"fmt"
)

// ErrUnknownReferenceKind is returned for a MethodHandle reference_kind
// byte outside 1..=9.
var ErrUnknownReferenceKind = errors.New("constantpool: unknown reference_kind")

// ReferenceKind is the reference_kind byte of a CONSTANT_MethodHandle_info.
type ReferenceKind uint8

const (
	RefGetField         ReferenceKind = 1
	RefGetStatic        ReferenceKind = 2
	RefPutField         ReferenceKind = 3
	RefPutStatic        ReferenceKind = 4
	RefInvokeVirtual    ReferenceKind = 5
	RefInvokeStatic     ReferenceKind = 6
	RefInvokeSpecial    ReferenceKind = 7
	RefNewInvokeSpecial ReferenceKind = 8
	RefInvokeInterface  ReferenceKind = 9
)

// ParseReferenceKind validates and converts a raw reference_kind byte.
func ParseReferenceKind(b uint8) (ReferenceKind, error) {
	switch ReferenceKind(b) {
	case RefGetField, RefGetStatic, RefPutField, RefPutStatic,
		RefInvokeVirtual, RefInvokeStatic, RefInvokeSpecial,
		RefNewInvokeSpecial, RefInvokeInterface:
		return ReferenceKind(b), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownReferenceKind, b)
	}
}

// JavaRepr returns the spec token for the reference kind, e.g. REF_invokeStatic.
func (r ReferenceKind) JavaRepr() string {
	switch r {
	case RefGetField:
		return "REF_getField"
	case RefGetStatic:
		return "REF_getStatic"
	case RefPutField:
		return "REF_putField"
	case RefPutStatic:
		return "REF_putStatic"
	case RefInvokeVirtual:
		return "REF_invokeVirtual"
	case RefInvokeStatic:
		return "REF_invokeStatic"
	case RefInvokeSpecial:
		return "REF_invokeSpecial"
	case RefNewInvokeSpecial:
		return "REF_newInvokeSpecial"
	case RefInvokeInterface:
		return "REF_invokeInterface"
	default:
		return fmt.Sprintf("REF_unknown(%d)", uint8(r))
	}
}
