// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javap

import (
	"strconv"

	"github.com/javap-go/javap/bytecode"
)

// mnemonic returns the javap-style instruction name for an Op. Const
// short forms (iconst_m1, lconst_1, ...) are reconstructed here from
// the Op family plus its folded index; loads and stores return the
// bare family name (aload, istore, ...), and the "_N" suffix of their
// short forms is supplied as the operand by operandAndComment.
func mnemonic(instr bytecode.Instruction) string {
	switch instr.Op {
	case bytecode.OpNop:
		return "nop"
	case bytecode.OpAconstNull:
		return "aconst_null"
	case bytecode.OpIconst:
		return constName("iconst", instr.Index)
	case bytecode.OpLconst:
		return constName("lconst", instr.Index)
	case bytecode.OpFconst:
		return constName("fconst", instr.Index)
	case bytecode.OpDconst:
		return constName("dconst", instr.Index)
	case bytecode.OpBipush:
		return "bipush"
	case bytecode.OpSipush:
		return "sipush"
	case bytecode.OpLdc:
		return "ldc"
	case bytecode.OpLdcW:
		return "ldc_w"
	case bytecode.OpLdc2W:
		return "ldc2_w"
	case bytecode.OpILoad:
		return "iload"
	case bytecode.OpLLoad:
		return "lload"
	case bytecode.OpFLoad:
		return "fload"
	case bytecode.OpDLoad:
		return "dload"
	case bytecode.OpALoad:
		return "aload"
	case bytecode.OpIALoad:
		return "iaload"
	case bytecode.OpLALoad:
		return "laload"
	case bytecode.OpFALoad:
		return "faload"
	case bytecode.OpDALoad:
		return "daload"
	case bytecode.OpAALoad:
		return "aaload"
	case bytecode.OpBALoad:
		return "baload"
	case bytecode.OpCALoad:
		return "caload"
	case bytecode.OpSALoad:
		return "saload"
	case bytecode.OpIStore:
		return "istore"
	case bytecode.OpLStore:
		return "lstore"
	case bytecode.OpFStore:
		return "fstore"
	case bytecode.OpDStore:
		return "dstore"
	case bytecode.OpAStore:
		return "astore"
	case bytecode.OpIAStore:
		return "iastore"
	case bytecode.OpLAStore:
		return "lastore"
	case bytecode.OpFAStore:
		return "fastore"
	case bytecode.OpDAStore:
		return "dastore"
	case bytecode.OpAAStore:
		return "aastore"
	case bytecode.OpBAStore:
		return "bastore"
	case bytecode.OpCAStore:
		return "castore"
	case bytecode.OpSAStore:
		return "sastore"
	case bytecode.OpPop:
		return "pop"
	case bytecode.OpPop2:
		return "pop2"
	case bytecode.OpDup:
		return "dup"
	case bytecode.OpDupX1:
		return "dup_x1"
	case bytecode.OpDupX2:
		return "dup_x2"
	case bytecode.OpDup2:
		return "dup2"
	case bytecode.OpSwap:
		return "swap"
	case bytecode.OpIAdd:
		return "iadd"
	case bytecode.OpLAdd:
		return "ladd"
	case bytecode.OpFAdd:
		return "fadd"
	case bytecode.OpDAdd:
		return "dadd"
	case bytecode.OpISub:
		return "isub"
	case bytecode.OpLSub:
		return "lsub"
	case bytecode.OpFSub:
		return "fsub"
	case bytecode.OpDSub:
		return "dsub"
	case bytecode.OpIMul:
		return "imul"
	case bytecode.OpLMul:
		return "lmul"
	case bytecode.OpFMul:
		return "fmul"
	case bytecode.OpDMul:
		return "dmul"
	case bytecode.OpIDiv:
		return "idiv"
	case bytecode.OpLDiv:
		return "ldiv"
	case bytecode.OpFDiv:
		return "fdiv"
	case bytecode.OpDDiv:
		return "ddiv"
	case bytecode.OpIRem:
		return "irem"
	case bytecode.OpLRem:
		return "lrem"
	case bytecode.OpFRem:
		return "frem"
	case bytecode.OpDRem:
		return "drem"
	case bytecode.OpINeg:
		return "ineg"
	case bytecode.OpLNeg:
		return "lneg"
	case bytecode.OpFNeg:
		return "fneg"
	case bytecode.OpDNeg:
		return "dneg"
	case bytecode.OpIShl:
		return "ishl"
	case bytecode.OpLShl:
		return "lshl"
	case bytecode.OpIShr:
		return "ishr"
	case bytecode.OpLShr:
		return "lshr"
	case bytecode.OpIUshr:
		return "iushr"
	case bytecode.OpLUshr:
		return "lushr"
	case bytecode.OpIAnd:
		return "iand"
	case bytecode.OpLAnd:
		return "land"
	case bytecode.OpIOr:
		return "ior"
	case bytecode.OpLOr:
		return "lor"
	case bytecode.OpIXor:
		return "ixor"
	case bytecode.OpLXor:
		return "lxor"
	case bytecode.OpIinc:
		return "iinc"
	case bytecode.OpI2L:
		return "i2l"
	case bytecode.OpI2F:
		return "i2f"
	case bytecode.OpI2D:
		return "i2d"
	case bytecode.OpL2I:
		return "l2i"
	case bytecode.OpL2F:
		return "l2f"
	case bytecode.OpL2D:
		return "l2d"
	case bytecode.OpF2I:
		return "f2i"
	case bytecode.OpF2L:
		return "f2l"
	case bytecode.OpF2D:
		return "f2d"
	case bytecode.OpD2I:
		return "d2i"
	case bytecode.OpD2L:
		return "d2l"
	case bytecode.OpD2F:
		return "d2f"
	case bytecode.OpI2B:
		return "i2b"
	case bytecode.OpI2C:
		return "i2c"
	case bytecode.OpI2S:
		return "i2s"
	case bytecode.OpLCmp:
		return "lcmp"
	case bytecode.OpFCmpL:
		return "fcmpl"
	case bytecode.OpFCmpG:
		return "fcmpg"
	case bytecode.OpDCmpL:
		return "dcmpl"
	case bytecode.OpDCmpG:
		return "dcmpg"
	case bytecode.OpIfEq:
		return "ifeq"
	case bytecode.OpIfNe:
		return "ifne"
	case bytecode.OpIfLt:
		return "iflt"
	case bytecode.OpIfGe:
		return "ifge"
	case bytecode.OpIfGt:
		return "ifgt"
	case bytecode.OpIfLe:
		return "ifle"
	case bytecode.OpIfICmpEq:
		return "if_icmpeq"
	case bytecode.OpIfICmpNe:
		return "if_icmpne"
	case bytecode.OpIfICmpLt:
		return "if_icmplt"
	case bytecode.OpIfICmpGe:
		return "if_icmpge"
	case bytecode.OpIfICmpGt:
		return "if_icmpgt"
	case bytecode.OpIfICmpLe:
		return "if_icmple"
	case bytecode.OpIfACmpEq:
		return "if_acmpeq"
	case bytecode.OpIfACmpNe:
		return "if_acmpne"
	case bytecode.OpGoto:
		return "goto"
	case bytecode.OpIfNull:
		return "ifnull"
	case bytecode.OpIfNonNull:
		return "ifnonnull"
	case bytecode.OpTableSwitch:
		return "tableswitch"
	case bytecode.OpLookupSwitch:
		return "lookupswitch"
	case bytecode.OpIReturn:
		return "ireturn"
	case bytecode.OpLReturn:
		return "lreturn"
	case bytecode.OpFReturn:
		return "freturn"
	case bytecode.OpDReturn:
		return "dreturn"
	case bytecode.OpAReturn:
		return "areturn"
	case bytecode.OpReturn:
		return "return"
	case bytecode.OpGetStatic:
		return "getstatic"
	case bytecode.OpPutStatic:
		return "putstatic"
	case bytecode.OpGetField:
		return "getfield"
	case bytecode.OpPutField:
		return "putfield"
	case bytecode.OpInvokeVirtual:
		return "invokevirtual"
	case bytecode.OpInvokeSpecial:
		return "invokespecial"
	case bytecode.OpInvokeStatic:
		return "invokestatic"
	case bytecode.OpInvokeInterface:
		return "invokeinterface"
	case bytecode.OpInvokeDynamic:
		return "invokedynamic"
	case bytecode.OpNew:
		return "new"
	case bytecode.OpNewArray:
		return "newarray"
	case bytecode.OpANewArray:
		return "anewarray"
	case bytecode.OpArrayLength:
		return "arraylength"
	case bytecode.OpAThrow:
		return "athrow"
	case bytecode.OpCheckCast:
		return "checkcast"
	case bytecode.OpInstanceOf:
		return "instanceof"
	case bytecode.OpMonitorEnter:
		return "monitorenter"
	case bytecode.OpMonitorExit:
		return "monitorexit"
	case bytecode.OpMultiANewArray:
		return "multianewarray"
	case bytecode.OpGoto_W:
		return "goto_w"
	case bytecode.OpJsr_W:
		return "jsr_w"
	default:
		return "unknown"
	}
}

// constName reconstructs the short-form mnemonic (iconst_m1, iconst_0,
// lconst_1, ...) from the generic Op family and its folded index.
func constName(family string, index int) string {
	if index == -1 {
		return family + "_m1"
	}
	return family + "_" + strconv.Itoa(index)
}

// hasShortForm reports whether instr's immediate index was encoded via
// a dedicated short-form opcode (index <= 3 for loads/stores, or any
// const with an opcode-folded index), in which case the printer
// suffixes the mnemonic with "_N" instead of a padded operand column.
func hasShortForm(instr bytecode.Instruction) bool {
	switch instr.Op {
	case bytecode.OpIconst, bytecode.OpLconst, bytecode.OpFconst, bytecode.OpDconst:
		return true
	case bytecode.OpILoad, bytecode.OpLLoad, bytecode.OpFLoad, bytecode.OpDLoad, bytecode.OpALoad,
		bytecode.OpIStore, bytecode.OpLStore, bytecode.OpFStore, bytecode.OpDStore, bytecode.OpAStore:
		shortLoad := instr.Opcode >= 0x1a && instr.Opcode <= 0x2d
		shortStore := instr.Opcode >= 0x3b && instr.Opcode <= 0x4e
		return instr.Index >= 0 && instr.Index <= 3 && (shortLoad || shortStore)
	default:
		return false
	}
}
