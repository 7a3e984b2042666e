// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"fmt"

	"github.com/javap-go/javap/reader"
)

// ErrReservedFrameType is returned for a StackMapTable frame_type byte
// in the 128..=246 reserved range.
var ErrReservedFrameType = errors.New("classfile: reserved stack map frame_type")

// ErrUnknownVerificationTag is returned for a verification_type_info
// tag outside 0..=8.
var ErrUnknownVerificationTag = errors.New("classfile: unknown verification type tag")

// VerificationKind is a verification_type_info tag. Tag values follow
// the JVM specification exactly: 3 is Double and 4 is Long. An earlier
// iteration of this decoder had these two swapped, matching a bug
// present in one variant of the tool this was ported from; that bug
// is not reproduced here.
type VerificationKind uint8

const (
	VerificationTop               VerificationKind = 0
	VerificationInteger           VerificationKind = 1
	VerificationFloat             VerificationKind = 2
	VerificationDouble            VerificationKind = 3
	VerificationLong              VerificationKind = 4
	VerificationNull              VerificationKind = 5
	VerificationUninitializedThis VerificationKind = 6
	VerificationObject            VerificationKind = 7
	VerificationUninitialized     VerificationKind = 8
)

// VerificationType is one verification_type_info entry. PoolIndex is
// meaningful only for VerificationObject (a Class pool index); Offset
// is meaningful only for VerificationUninitialized (a Code-relative
// bytecode offset of the corresponding `new`).
type VerificationType struct {
	Kind      VerificationKind
	PoolIndex uint16
	Offset    uint16
}

func decodeVerificationType(r *reader.Reader) (VerificationType, error) {
	tag, err := r.U8()
	if err != nil {
		return VerificationType{}, err
	}
	switch VerificationKind(tag) {
	case VerificationTop, VerificationInteger, VerificationFloat,
		VerificationDouble, VerificationLong, VerificationNull,
		VerificationUninitializedThis:
		return VerificationType{Kind: VerificationKind(tag)}, nil
	case VerificationObject:
		idx, err := r.U16()
		if err != nil {
			return VerificationType{}, err
		}
		return VerificationType{Kind: VerificationObject, PoolIndex: idx}, nil
	case VerificationUninitialized:
		off, err := r.U16()
		if err != nil {
			return VerificationType{}, err
		}
		return VerificationType{Kind: VerificationUninitialized, Offset: off}, nil
	default:
		return VerificationType{}, fmt.Errorf("%w: %d", ErrUnknownVerificationTag, tag)
	}
}

func decodeVerificationTypes(r *reader.Reader, count int) ([]VerificationType, error) {
	out := make([]VerificationType, count)
	for i := range out {
		vt, err := decodeVerificationType(r)
		if err != nil {
			return nil, err
		}
		out[i] = vt
	}
	return out, nil
}

// FrameKind discriminates the seven StackMapTable frame variants.
type FrameKind int

const (
	FrameSame FrameKind = iota
	FrameSameLocals1StackItem
	FrameSameLocals1StackItemExtended
	FrameChop
	FrameSameExtended
	FrameAppend
	FrameFull
)

// StackMapFrame is one entry of a StackMapTable attribute. Not every
// field is meaningful for every Kind.
type StackMapFrame struct {
	Kind            FrameKind
	FrameType       uint8
	OffsetDelta     uint16
	Stack           []VerificationType // SameLocals1StackItem(Extended): exactly one entry
	ChopCount       int                // FrameChop: number of locals removed (251 - frame_type)
	Locals          []VerificationType // FrameAppend, FrameFull
	FullStack       []VerificationType // FrameFull
}

func decodeStackMapFrame(r *reader.Reader) (StackMapFrame, error) {
	frameType, err := r.U8()
	if err != nil {
		return StackMapFrame{}, err
	}
	switch {
	case frameType <= 63:
		return StackMapFrame{Kind: FrameSame, FrameType: frameType, OffsetDelta: uint16(frameType)}, nil
	case frameType <= 127:
		vt, err := decodeVerificationType(r)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameSameLocals1StackItem,
			FrameType:   frameType,
			OffsetDelta: uint16(frameType) - 64,
			Stack:       []VerificationType{vt},
		}, nil
	case frameType <= 246:
		return StackMapFrame{}, fmt.Errorf("%w: %d", ErrReservedFrameType, frameType)
	case frameType == 247:
		offsetDelta, err := r.U16()
		if err != nil {
			return StackMapFrame{}, err
		}
		vt, err := decodeVerificationType(r)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameSameLocals1StackItemExtended,
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			Stack:       []VerificationType{vt},
		}, nil
	case frameType <= 250:
		offsetDelta, err := r.U16()
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameChop,
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			ChopCount:   251 - int(frameType),
		}, nil
	case frameType == 251:
		offsetDelta, err := r.U16()
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{Kind: FrameSameExtended, FrameType: frameType, OffsetDelta: offsetDelta}, nil
	case frameType <= 254:
		offsetDelta, err := r.U16()
		if err != nil {
			return StackMapFrame{}, err
		}
		locals, err := decodeVerificationTypes(r, int(frameType)-251)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameAppend,
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			Locals:      locals,
		}, nil
	default: // 255
		offsetDelta, err := r.U16()
		if err != nil {
			return StackMapFrame{}, err
		}
		nLocals, err := r.U16()
		if err != nil {
			return StackMapFrame{}, err
		}
		locals, err := decodeVerificationTypes(r, int(nLocals))
		if err != nil {
			return StackMapFrame{}, err
		}
		nStack, err := r.U16()
		if err != nil {
			return StackMapFrame{}, err
		}
		stack, err := decodeVerificationTypes(r, int(nStack))
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameFull,
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			Locals:      locals,
			FullStack:   stack,
		}, nil
	}
}
