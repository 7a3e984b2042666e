// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bytecode decodes the byte sub-stream of a Code attribute
// into a position-indexed ordered mapping from offset to instruction.
// It handles the JVM's variable-length instruction encoding, the
// padding tableswitch/lookupswitch require, and the short-form
// load/store opcodes that fold an operand into the opcode byte.
package bytecode

import (
	"errors"
	"fmt"

	"github.com/javap-go/javap/reader"
)

// ErrUnknownOpcode is returned when the decoder encounters an opcode
// byte outside the supported set.
var ErrUnknownOpcode = errors.New("bytecode: unknown opcode")

// Op identifies the semantic instruction variant. Short-form opcodes
// (aload_0, iload_1, ...) decode to the same Op as their generic
// counterpart; the folded index is carried in Instruction.Index.
type Op int

const (
	OpNop Op = iota
	OpAconstNull
	OpIconst
	OpLconst
	OpFconst
	OpDconst
	OpBipush
	OpSipush
	OpLdc
	OpLdcW
	OpLdc2W
	OpILoad
	OpLLoad
	OpFLoad
	OpDLoad
	OpALoad
	OpIALoad
	OpLALoad
	OpFALoad
	OpDALoad
	OpAALoad
	OpBALoad
	OpCALoad
	OpSALoad
	OpIStore
	OpLStore
	OpFStore
	OpDStore
	OpAStore
	OpIAStore
	OpLAStore
	OpFAStore
	OpDAStore
	OpAAStore
	OpBAStore
	OpCAStore
	OpSAStore
	OpPop
	OpPop2
	OpDup
	OpDupX1
	OpDupX2
	OpDup2
	OpSwap
	OpIAdd
	OpLAdd
	OpFAdd
	OpDAdd
	OpISub
	OpLSub
	OpFSub
	OpDSub
	OpIMul
	OpLMul
	OpFMul
	OpDMul
	OpIDiv
	OpLDiv
	OpFDiv
	OpDDiv
	OpIRem
	OpLRem
	OpFRem
	OpDRem
	OpINeg
	OpLNeg
	OpFNeg
	OpDNeg
	OpIShl
	OpLShl
	OpIShr
	OpLShr
	OpIUshr
	OpLUshr
	OpIAnd
	OpLAnd
	OpIOr
	OpLOr
	OpIXor
	OpLXor
	OpIinc
	OpI2L
	OpI2F
	OpI2D
	OpL2I
	OpL2F
	OpL2D
	OpF2I
	OpF2L
	OpF2D
	OpD2I
	OpD2L
	OpD2F
	OpI2B
	OpI2C
	OpI2S
	OpLCmp
	OpFCmpL
	OpFCmpG
	OpDCmpL
	OpDCmpG
	OpIfEq
	OpIfNe
	OpIfLt
	OpIfGe
	OpIfGt
	OpIfLe
	OpIfICmpEq
	OpIfICmpNe
	OpIfICmpLt
	OpIfICmpGe
	OpIfICmpGt
	OpIfICmpLe
	OpIfACmpEq
	OpIfACmpNe
	OpGoto
	OpIfNull
	OpIfNonNull
	OpTableSwitch
	OpLookupSwitch
	OpIReturn
	OpLReturn
	OpFReturn
	OpDReturn
	OpAReturn
	OpReturn
	OpGetStatic
	OpPutStatic
	OpGetField
	OpPutField
	OpInvokeVirtual
	OpInvokeSpecial
	OpInvokeStatic
	OpInvokeInterface
	OpInvokeDynamic
	OpNew
	OpNewArray
	OpANewArray
	OpArrayLength
	OpAThrow
	OpCheckCast
	OpInstanceOf
	OpMonitorEnter
	OpMonitorExit
	OpMultiANewArray
	OpGoto_W
	OpJsr_W
)

// SwitchCase is one (match, offset) pair in a lookupswitch, or one
// jump offset in a tableswitch (match is that entry's implied key).
type SwitchCase struct {
	Match  int32
	Offset int32
}

// Instruction is a single decoded opcode plus whatever operands it
// carries. Not every field is meaningful for every Op; unused fields
// are zero.
type Instruction struct {
	Op          Op
	Opcode      uint8
	Index       int   // local-variable or constant-pool index, or bipush/sipush immediate
	Offset      int32 // signed branch offset (relative) for branch instructions
	Count       int   // invokeinterface's count byte, or multianewarray's dimensions byte
	Default     int32 // tableswitch/lookupswitch default offset
	Low         int32 // tableswitch low
	High        int32 // tableswitch high
	TableTargets []int32 // tableswitch jump offsets, high-low+1 entries
	Cases       []SwitchCase // lookupswitch match/offset pairs
	ArrayType   uint8 // newarray's atype byte
}

// Code is the decoded instruction stream of a Code attribute: an
// ordered mapping from byte offset (relative to the Code block's
// origin) to the instruction starting there.
type Code struct {
	Order        []int32
	ByOffset     map[int32]Instruction
}

// At returns the instruction starting at offset, and whether one does.
// Callers that walk the listing in ascending order iterate Order.
func (c *Code) At(offset int32) (Instruction, bool) {
	instr, ok := c.ByOffset[offset]
	return instr, ok
}

// Decode reads code (the raw bytes of a Code attribute's code array)
// into an offset-keyed instruction stream. All multi-byte fields are
// big-endian; branch and iinc operands are sign-extended.
func Decode(code []byte) (*Code, error) {
	r := reader.New(code, reader.BigEndian)
	out := &Code{ByOffset: make(map[int32]Instruction)}
	for r.Remaining() > 0 {
		pos := int32(r.Pos())
		instr, err := decodeOne(r, pos)
		if err != nil {
			return nil, fmt.Errorf("at offset %d: %w", pos, err)
		}
		out.ByOffset[pos] = instr
		out.Order = append(out.Order, pos)
	}
	return out, nil
}

func decodeOne(r *reader.Reader, pos int32) (Instruction, error) {
	opcode, err := r.U8()
	if err != nil {
		return Instruction{}, err
	}
	instr := Instruction{Opcode: opcode}

	switch opcode {
	case 0x00:
		instr.Op = OpNop
	case 0x01:
		instr.Op = OpAconstNull
	case 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08:
		instr.Op, instr.Index = OpIconst, int(opcode)-0x03
	case 0x09, 0x0a:
		instr.Op, instr.Index = OpLconst, int(opcode)-0x09
	case 0x0b, 0x0c, 0x0d:
		instr.Op, instr.Index = OpFconst, int(opcode)-0x0b
	case 0x0e, 0x0f:
		instr.Op, instr.Index = OpDconst, int(opcode)-0x0e
	case 0x10:
		v, err := r.I8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpBipush, int(v)
	case 0x11:
		v, err := r.I16()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpSipush, int(v)
	case 0x12:
		idx, err := r.U8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpLdc, int(idx)
	case 0x13:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpLdcW, int(idx)
	case 0x14:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpLdc2W, int(idx)
	case 0x15:
		idx, err := r.U8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpILoad, int(idx)
	case 0x16:
		idx, err := r.U8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpLLoad, int(idx)
	case 0x17:
		idx, err := r.U8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpFLoad, int(idx)
	case 0x18:
		idx, err := r.U8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpDLoad, int(idx)
	case 0x19:
		idx, err := r.U8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpALoad, int(idx)
	case 0x1a, 0x1b, 0x1c, 0x1d:
		instr.Op, instr.Index = OpILoad, int(opcode)-0x1a
	case 0x1e, 0x1f, 0x20, 0x21:
		instr.Op, instr.Index = OpLLoad, int(opcode)-0x1e
	case 0x22, 0x23, 0x24, 0x25:
		instr.Op, instr.Index = OpFLoad, int(opcode)-0x22
	case 0x26, 0x27, 0x28, 0x29:
		instr.Op, instr.Index = OpDLoad, int(opcode)-0x26
	case 0x2a, 0x2b, 0x2c, 0x2d:
		instr.Op, instr.Index = OpALoad, int(opcode)-0x2a
	case 0x2e:
		instr.Op = OpIALoad
	case 0x2f:
		instr.Op = OpLALoad
	case 0x30:
		instr.Op = OpFALoad
	case 0x31:
		instr.Op = OpDALoad
	case 0x32:
		instr.Op = OpAALoad
	case 0x33:
		instr.Op = OpBALoad
	case 0x34:
		instr.Op = OpCALoad
	case 0x35:
		instr.Op = OpSALoad
	case 0x36:
		idx, err := r.U8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpIStore, int(idx)
	case 0x37:
		idx, err := r.U8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpLStore, int(idx)
	case 0x38:
		idx, err := r.U8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpFStore, int(idx)
	case 0x39:
		idx, err := r.U8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpDStore, int(idx)
	case 0x3a:
		idx, err := r.U8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpAStore, int(idx)
	case 0x3b, 0x3c, 0x3d, 0x3e:
		instr.Op, instr.Index = OpIStore, int(opcode)-0x3b
	case 0x3f, 0x40, 0x41, 0x42:
		instr.Op, instr.Index = OpLStore, int(opcode)-0x3f
	case 0x43, 0x44, 0x45, 0x46:
		instr.Op, instr.Index = OpFStore, int(opcode)-0x43
	case 0x47, 0x48, 0x49, 0x4a:
		instr.Op, instr.Index = OpDStore, int(opcode)-0x47
	case 0x4b, 0x4c, 0x4d, 0x4e:
		instr.Op, instr.Index = OpAStore, int(opcode)-0x4b
	case 0x4f:
		instr.Op = OpIAStore
	case 0x50:
		instr.Op = OpLAStore
	case 0x51:
		instr.Op = OpFAStore
	case 0x52:
		instr.Op = OpDAStore
	case 0x53:
		instr.Op = OpAAStore
	case 0x54:
		instr.Op = OpBAStore
	case 0x55:
		instr.Op = OpCAStore
	case 0x56:
		instr.Op = OpSAStore
	case 0x57:
		instr.Op = OpPop
	case 0x58:
		instr.Op = OpPop2
	case 0x59:
		instr.Op = OpDup
	case 0x5a:
		instr.Op = OpDupX1
	case 0x5b:
		instr.Op = OpDupX2
	case 0x5c:
		instr.Op = OpDup2
	case 0x5f:
		instr.Op = OpSwap
	case 0x60:
		instr.Op = OpIAdd
	case 0x61:
		instr.Op = OpLAdd
	case 0x62:
		instr.Op = OpFAdd
	case 0x63:
		instr.Op = OpDAdd
	case 0x64:
		instr.Op = OpISub
	case 0x65:
		instr.Op = OpLSub
	case 0x66:
		instr.Op = OpFSub
	case 0x67:
		instr.Op = OpDSub
	case 0x68:
		instr.Op = OpIMul
	case 0x69:
		instr.Op = OpLMul
	case 0x6a:
		instr.Op = OpFMul
	case 0x6b:
		instr.Op = OpDMul
	case 0x6c:
		instr.Op = OpIDiv
	case 0x6d:
		instr.Op = OpLDiv
	case 0x6e:
		instr.Op = OpFDiv
	case 0x6f:
		instr.Op = OpDDiv
	case 0x70:
		instr.Op = OpIRem
	case 0x71:
		instr.Op = OpLRem
	case 0x72:
		instr.Op = OpFRem
	case 0x73:
		instr.Op = OpDRem
	case 0x74:
		instr.Op = OpINeg
	case 0x75:
		instr.Op = OpLNeg
	case 0x76:
		instr.Op = OpFNeg
	case 0x77:
		instr.Op = OpDNeg
	case 0x78:
		instr.Op = OpIShl
	case 0x79:
		instr.Op = OpLShl
	case 0x7a:
		instr.Op = OpIShr
	case 0x7b:
		instr.Op = OpLShr
	case 0x7c:
		instr.Op = OpIUshr
	case 0x7d:
		instr.Op = OpLUshr
	case 0x7e:
		instr.Op = OpIAnd
	case 0x7f:
		instr.Op = OpLAnd
	case 0x80:
		instr.Op = OpIOr
	case 0x81:
		instr.Op = OpLOr
	case 0x82:
		instr.Op = OpIXor
	case 0x83:
		instr.Op = OpLXor
	case 0x84:
		idx, err := r.U8()
		if err != nil {
			return instr, err
		}
		delta, err := r.I8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index, instr.Offset = OpIinc, int(idx), int32(delta)
	case 0x85:
		instr.Op = OpI2L
	case 0x86:
		instr.Op = OpI2F
	case 0x87:
		instr.Op = OpI2D
	case 0x88:
		instr.Op = OpL2I
	case 0x89:
		instr.Op = OpL2F
	case 0x8a:
		instr.Op = OpL2D
	case 0x8b:
		instr.Op = OpF2I
	case 0x8c:
		instr.Op = OpF2L
	case 0x8d:
		instr.Op = OpF2D
	case 0x8e:
		instr.Op = OpD2I
	case 0x8f:
		instr.Op = OpD2L
	case 0x90:
		instr.Op = OpD2F
	case 0x91:
		instr.Op = OpI2B
	case 0x92:
		instr.Op = OpI2C
	case 0x93:
		instr.Op = OpI2S
	case 0x94:
		instr.Op = OpLCmp
	case 0x95:
		instr.Op = OpFCmpL
	case 0x96:
		instr.Op = OpFCmpG
	case 0x97:
		instr.Op = OpDCmpL
	case 0x98:
		instr.Op = OpDCmpG
	case 0x99, 0x9a, 0x9b, 0x9c, 0x9d, 0x9e:
		if err := decodeBranch(r, &instr); err != nil {
			return instr, err
		}
		instr.Op = []Op{OpIfEq, OpIfNe, OpIfLt, OpIfGe, OpIfGt, OpIfLe}[opcode-0x99]
	case 0x9f, 0xa0, 0xa1, 0xa2, 0xa3, 0xa4:
		if err := decodeBranch(r, &instr); err != nil {
			return instr, err
		}
		instr.Op = []Op{OpIfICmpEq, OpIfICmpNe, OpIfICmpLt, OpIfICmpGe, OpIfICmpGt, OpIfICmpLe}[opcode-0x9f]
	case 0xa5, 0xa6:
		if err := decodeBranch(r, &instr); err != nil {
			return instr, err
		}
		instr.Op = []Op{OpIfACmpEq, OpIfACmpNe}[opcode-0xa5]
	case 0xa7:
		if err := decodeBranch(r, &instr); err != nil {
			return instr, err
		}
		instr.Op = OpGoto
	case 0xaa:
		if err := decodeTableSwitch(r, &instr); err != nil {
			return instr, err
		}
		instr.Op = OpTableSwitch
	case 0xab:
		if err := decodeLookupSwitch(r, &instr); err != nil {
			return instr, err
		}
		instr.Op = OpLookupSwitch
	case 0xac:
		instr.Op = OpIReturn
	case 0xad:
		instr.Op = OpLReturn
	case 0xae:
		instr.Op = OpFReturn
	case 0xaf:
		instr.Op = OpDReturn
	case 0xb0:
		instr.Op = OpAReturn
	case 0xb1:
		instr.Op = OpReturn
	case 0xb2:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpGetStatic, int(idx)
	case 0xb3:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpPutStatic, int(idx)
	case 0xb4:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpGetField, int(idx)
	case 0xb5:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpPutField, int(idx)
	case 0xb6:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpInvokeVirtual, int(idx)
	case 0xb7:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpInvokeSpecial, int(idx)
	case 0xb8:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpInvokeStatic, int(idx)
	case 0xb9:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		count, err := r.U8()
		if err != nil {
			return instr, err
		}
		if err := r.Skip(1); err != nil {
			return instr, err
		}
		instr.Op, instr.Index, instr.Count = OpInvokeInterface, int(idx), int(count)
	case 0xba:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		if err := r.Skip(2); err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpInvokeDynamic, int(idx)
	case 0xbb:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpNew, int(idx)
	case 0xbc:
		atype, err := r.U8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.ArrayType = OpNewArray, atype
	case 0xbd:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpANewArray, int(idx)
	case 0xbe:
		instr.Op = OpArrayLength
	case 0xbf:
		instr.Op = OpAThrow
	case 0xc0:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpCheckCast, int(idx)
	case 0xc1:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index = OpInstanceOf, int(idx)
	case 0xc2:
		instr.Op = OpMonitorEnter
	case 0xc3:
		instr.Op = OpMonitorExit
	case 0xc4:
		if err := decodeWide(r, &instr); err != nil {
			return instr, err
		}
	case 0xc5:
		idx, err := r.U16()
		if err != nil {
			return instr, err
		}
		dims, err := r.U8()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Index, instr.Count = OpMultiANewArray, int(idx), int(dims)
	case 0xc6:
		if err := decodeBranch(r, &instr); err != nil {
			return instr, err
		}
		instr.Op = OpIfNull
	case 0xc7:
		if err := decodeBranch(r, &instr); err != nil {
			return instr, err
		}
		instr.Op = OpIfNonNull
	case 0xc8:
		off, err := r.I32()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Offset = OpGoto_W, off
	case 0xc9:
		off, err := r.I32()
		if err != nil {
			return instr, err
		}
		instr.Op, instr.Offset = OpJsr_W, off
	default:
		return instr, fmt.Errorf("%w: 0x%02x", ErrUnknownOpcode, opcode)
	}
	return instr, nil
}

func decodeBranch(r *reader.Reader, instr *Instruction) error {
	off, err := r.I16()
	if err != nil {
		return err
	}
	instr.Offset = int32(off)
	return nil
}

// decodeWide handles the 0xc4 prefix, which widens the index operand
// of a following *load/*store/iinc instruction to 16 bits. A widened
// ret is rejected as an unknown opcode.
func decodeWide(r *reader.Reader, instr *Instruction) error {
	sub, err := r.U8()
	if err != nil {
		return err
	}
	idx, err := r.U16()
	if err != nil {
		return err
	}
	instr.Index = int(idx)
	switch sub {
	case 0x15:
		instr.Op = OpILoad
	case 0x16:
		instr.Op = OpLLoad
	case 0x17:
		instr.Op = OpFLoad
	case 0x18:
		instr.Op = OpDLoad
	case 0x19:
		instr.Op = OpALoad
	case 0x36:
		instr.Op = OpIStore
	case 0x37:
		instr.Op = OpLStore
	case 0x38:
		instr.Op = OpFStore
	case 0x39:
		instr.Op = OpDStore
	case 0x3a:
		instr.Op = OpAStore
	case 0x84:
		delta, err := r.I16()
		if err != nil {
			return err
		}
		instr.Op, instr.Offset = OpIinc, int32(delta)
	default:
		return fmt.Errorf("%w: wide 0x%02x", ErrUnknownOpcode, sub)
	}
	return nil
}

// padTo4 skips zero bytes until r's position is a multiple of 4
// relative to the start of the Code block (r always begins decoding
// at that block's offset 0), as tableswitch/lookupswitch require.
func padTo4(r *reader.Reader) error {
	pos := int32(r.Pos())
	pad := (4 - pos%4) % 4
	return r.Skip(int(pad))
}

func decodeTableSwitch(r *reader.Reader, instr *Instruction) error {
	if err := padTo4(r); err != nil {
		return err
	}
	def, err := r.I32()
	if err != nil {
		return err
	}
	low, err := r.I32()
	if err != nil {
		return err
	}
	high, err := r.I32()
	if err != nil {
		return err
	}
	instr.Default, instr.Low, instr.High = def, low, high
	count := int(high-low) + 1
	if count < 0 {
		return fmt.Errorf("%w: tableswitch with high < low", ErrUnknownOpcode)
	}
	targets := make([]int32, count)
	for i := range targets {
		off, err := r.I32()
		if err != nil {
			return err
		}
		targets[i] = off
	}
	instr.TableTargets = targets
	return nil
}

func decodeLookupSwitch(r *reader.Reader, instr *Instruction) error {
	if err := padTo4(r); err != nil {
		return err
	}
	def, err := r.I32()
	if err != nil {
		return err
	}
	npairs, err := r.I32()
	if err != nil {
		return err
	}
	instr.Default = def
	cases := make([]SwitchCase, npairs)
	for i := range cases {
		match, err := r.I32()
		if err != nil {
			return err
		}
		offset, err := r.I32()
		if err != nil {
			return err
		}
		cases[i] = SwitchCase{Match: match, Offset: offset}
	}
	instr.Cases = cases
	return nil
}
