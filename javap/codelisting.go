// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javap

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/javap-go/javap/bytecode"
	"github.com/javap-go/javap/classfile"
	"github.com/javap-go/javap/constantpool"
)

// printCode writes a Code attribute's bytecode listing, exception
// table, and recognized sub-attributes.
func printCode(w io.Writer, cf *classfile.ClassFile, code *classfile.CodeAttribute, argsSize int, wid widths) error {
	fmt.Fprintf(w, "    Code:\n")
	fmt.Fprintf(w, "      stack=%d, locals=%d, args_size=%d\n", code.MaxStack, code.MaxLocals, argsSize)

	offsets := append([]int32(nil), code.Code.Order...)
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	for _, off := range offsets {
		instr, ok := code.Code.At(off)
		if !ok {
			return fmt.Errorf("no instruction at offset %d", off)
		}
		if err := printInstruction(w, cf, off, instr, wid); err != nil {
			return fmt.Errorf("instruction at offset %d: %w", off, err)
		}
	}

	if len(code.ExceptionTable) > 0 {
		fmt.Fprintf(w, "      Exception table:\n")
		fmt.Fprintf(w, "         from    to  target type\n")
		for _, e := range code.ExceptionTable {
			catchType := "any"
			if e.CatchType != 0 {
				name, err := cf.ConstantPool.GetClassName(e.CatchType)
				if err != nil {
					return fmt.Errorf("exception table catch_type #%d: %w", e.CatchType, err)
				}
				catchType = "Class " + name
			}
			fmt.Fprintf(w, "         %5d %5d %5d   %s\n", e.StartPC, e.EndPC, e.HandlerPC, catchType)
		}
	}

	for _, sub := range code.Attributes {
		if err := printSubAttribute(w, cf, sub); err != nil {
			return err
		}
	}
	return nil
}

func printSubAttribute(w io.Writer, cf *classfile.ClassFile, attr classfile.Attribute) error {
	switch attr.Name {
	case "LineNumberTable":
		fmt.Fprintf(w, "      LineNumberTable:\n")
		for _, e := range attr.LineNumberTable {
			fmt.Fprintf(w, "        line %d: %d\n", e.Line, e.StartPC)
		}
	case "LocalVariableTable":
		fmt.Fprintf(w, "      LocalVariableTable:\n")
		fmt.Fprintf(w, "        Start  Length  Slot  Name   Signature\n")
		for _, e := range attr.LocalVariableTable {
			name, err := cf.ConstantPool.GetUtf8(e.NameIndex)
			if err != nil {
				return fmt.Errorf("LocalVariableTable name #%d: %w", e.NameIndex, err)
			}
			desc, err := cf.ConstantPool.GetUtf8(e.DescIndex)
			if err != nil {
				return fmt.Errorf("LocalVariableTable descriptor #%d: %w", e.DescIndex, err)
			}
			fmt.Fprintf(w, "        %5d  %6d  %4d  %s   %s\n", e.StartPC, e.Length, e.Index, name, desc)
		}
	case "StackMapTable":
		fmt.Fprintf(w, "      StackMapTable: number_of_entries = %d\n", len(attr.StackMapTable))
		for _, f := range attr.StackMapTable {
			printStackMapFrame(w, f)
		}
	}
	return nil
}

func printStackMapFrame(w io.Writer, f classfile.StackMapFrame) {
	switch f.Kind {
	case classfile.FrameSame:
		fmt.Fprintf(w, "        frame_type = %d /* same */\n", f.FrameType)
	case classfile.FrameSameLocals1StackItem:
		fmt.Fprintf(w, "        frame_type = %d /* same_locals_1_stack_item */\n", f.FrameType)
	case classfile.FrameSameLocals1StackItemExtended:
		fmt.Fprintf(w, "        frame_type = %d /* same_locals_1_stack_item_frame_extended */\n", f.FrameType)
	case classfile.FrameChop:
		fmt.Fprintf(w, "        frame_type = %d /* chop */\n", f.FrameType)
	case classfile.FrameSameExtended:
		fmt.Fprintf(w, "        frame_type = %d /* same_frame_extended */\n", f.FrameType)
	case classfile.FrameAppend:
		fmt.Fprintf(w, "        frame_type = %d /* append */\n", f.FrameType)
	case classfile.FrameFull:
		fmt.Fprintf(w, "        frame_type = %d /* full_frame */\n", f.FrameType)
	}
}

// printInstruction writes one bytecode listing line, including the
// multi-line form for tableswitch/lookupswitch.
func printInstruction(w io.Writer, cf *classfile.ClassFile, off int32, instr bytecode.Instruction, wid widths) error {
	var b strings.Builder
	b.WriteString("        ")
	offsetStr := fmt.Sprintf("%*d", wid.bytecodeIndexWidth, off)
	b.WriteString(offsetStr)
	b.WriteString(": ")
	b.WriteString(mnemonic(instr))

	switch instr.Op {
	case bytecode.OpTableSwitch:
		padTo(&b, wid.bytecodeCommentStart)
		fmt.Fprintf(&b, "{ // %d to %d\n", instr.Low, instr.High)
		for i, target := range instr.TableTargets {
			fmt.Fprintf(&b, "          %11d: %d\n", instr.Low+int32(i), off+target)
		}
		fmt.Fprintf(&b, "             default: %d\n", off+instr.Default)
		fmt.Fprintf(&b, "        }")
		io.WriteString(w, b.String()+"\n")
		return nil
	case bytecode.OpLookupSwitch:
		padTo(&b, wid.bytecodeCommentStart)
		fmt.Fprintf(&b, "{ // %d\n", len(instr.Cases))
		for _, c := range instr.Cases {
			fmt.Fprintf(&b, "          %11d: %d\n", c.Match, off+c.Offset)
		}
		fmt.Fprintf(&b, "             default: %d\n", off+instr.Default)
		fmt.Fprintf(&b, "        }")
		io.WriteString(w, b.String()+"\n")
		return nil
	}

	operand, comment, err := operandAndComment(cf, off, instr)
	if err != nil {
		return err
	}
	if operand != "" {
		if hasShortForm(instr) {
			b.WriteString(operand)
		} else {
			b.WriteByte(' ')
			b.WriteString(operand)
		}
	}
	if comment != "" {
		padTo(&b, wid.bytecodeCommentStart)
		b.WriteString("// ")
		b.WriteString(comment)
	}
	io.WriteString(w, b.String()+"\n")
	return nil
}

// operandAndComment renders an instruction's operand text (the part
// after the mnemonic) and, where applicable, the constant-pool-derived
// comment. A non-nil error means the instruction references a
// malformed constant-pool entry.
func operandAndComment(cf *classfile.ClassFile, off int32, instr bytecode.Instruction) (operand, comment string, err error) {
	switch instr.Op {
	case bytecode.OpIconst, bytecode.OpLconst, bytecode.OpFconst, bytecode.OpDconst:
		return "", "", nil
	case bytecode.OpBipush, bytecode.OpSipush:
		return strconv.Itoa(instr.Index), "", nil
	case bytecode.OpILoad, bytecode.OpLLoad, bytecode.OpFLoad, bytecode.OpDLoad, bytecode.OpALoad,
		bytecode.OpIStore, bytecode.OpLStore, bytecode.OpFStore, bytecode.OpDStore, bytecode.OpAStore:
		if hasShortForm(instr) {
			return "_" + strconv.Itoa(instr.Index), "", nil
		}
		return strconv.Itoa(instr.Index), "", nil
	case bytecode.OpIinc:
		return fmt.Sprintf("%d, %d", instr.Index, instr.Offset), "", nil
	case bytecode.OpLdc, bytecode.OpLdcW, bytecode.OpLdc2W:
		comment, err := ldcComment(cf, instr.Index)
		if err != nil {
			return "", "", err
		}
		return fmt.Sprintf("#%d", instr.Index), comment, nil
	case bytecode.OpGetStatic, bytecode.OpPutStatic, bytecode.OpGetField, bytecode.OpPutField:
		comment, err := refComment(cf, "Field", uint16(instr.Index))
		if err != nil {
			return "", "", err
		}
		return fmt.Sprintf("#%d", instr.Index), comment, nil
	case bytecode.OpInvokeVirtual, bytecode.OpInvokeSpecial, bytecode.OpInvokeStatic:
		comment, err := refComment(cf, "Method", uint16(instr.Index))
		if err != nil {
			return "", "", err
		}
		return fmt.Sprintf("#%d", instr.Index), comment, nil
	case bytecode.OpInvokeInterface:
		comment, err := refComment(cf, "InterfaceMethod", uint16(instr.Index))
		if err != nil {
			return "", "", err
		}
		return fmt.Sprintf("#%d,  %d", instr.Index, instr.Count), comment, nil
	case bytecode.OpInvokeDynamic:
		s, err := cf.ConstantPool.GetInvokeDynamic(uint16(instr.Index))
		if err != nil {
			return "", "", fmt.Errorf("invokedynamic #%d: %w", instr.Index, err)
		}
		return fmt.Sprintf("#%d", instr.Index), "InvokeDynamic " + s, nil
	case bytecode.OpNew, bytecode.OpANewArray, bytecode.OpCheckCast, bytecode.OpInstanceOf:
		comment, err := classComment(cf, uint16(instr.Index))
		if err != nil {
			return "", "", err
		}
		return fmt.Sprintf("#%d", instr.Index), comment, nil
	case bytecode.OpMultiANewArray:
		comment, err := classComment(cf, uint16(instr.Index))
		if err != nil {
			return "", "", err
		}
		return fmt.Sprintf("#%d,  %d", instr.Index, instr.Count), comment, nil
	case bytecode.OpNewArray:
		return arrayTypeName(instr.ArrayType), "", nil
	case bytecode.OpIfEq, bytecode.OpIfNe, bytecode.OpIfLt, bytecode.OpIfGe, bytecode.OpIfGt, bytecode.OpIfLe,
		bytecode.OpIfICmpEq, bytecode.OpIfICmpNe, bytecode.OpIfICmpLt, bytecode.OpIfICmpGe, bytecode.OpIfICmpGt, bytecode.OpIfICmpLe,
		bytecode.OpIfACmpEq, bytecode.OpIfACmpNe, bytecode.OpGoto, bytecode.OpIfNull, bytecode.OpIfNonNull:
		return strconv.Itoa(int(off + instr.Offset)), "", nil
	case bytecode.OpGoto_W, bytecode.OpJsr_W:
		return strconv.Itoa(int(off + instr.Offset)), "", nil
	default:
		return "", "", nil
	}
}

func classComment(cf *classfile.ClassFile, index uint16) (string, error) {
	name, err := cf.ConstantPool.GetClassName(index)
	if err != nil {
		return "", fmt.Errorf("class #%d: %w", index, err)
	}
	return "class " + name, nil
}

func ldcComment(cf *classfile.ClassFile, index int) (string, error) {
	entry, err := cf.ConstantPool.At(uint16(index))
	if err != nil {
		return "", fmt.Errorf("ldc #%d: %w", index, err)
	}
	switch e := entry.(type) {
	case constantpool.StringInfo:
		s, err := cf.ConstantPool.GetUtf8(e.StringIndex)
		if err != nil {
			return "", fmt.Errorf("ldc #%d: %w", index, err)
		}
		return "String " + s, nil
	case constantpool.ClassInfo:
		return classComment(cf, uint16(index))
	case constantpool.IntegerInfo:
		return fmt.Sprintf("int %d", e.Value), nil
	case constantpool.FloatInfo:
		return fmt.Sprintf("float %g", e.Value), nil
	case constantpool.LongInfo:
		return fmt.Sprintf("long %dl", e.Value), nil
	case constantpool.DoubleInfo:
		return fmt.Sprintf("double %g", e.Value), nil
	default:
		return "", fmt.Errorf("ldc #%d: %w", index, constantpool.ErrWrongVariant)
	}
}

// refComment resolves a Field/Method/InterfaceMethod constant-pool
// reference to its printed comment, abbreviating the class prefix
// away when it equals this_class (S8 in the behavioral scenarios).
func refComment(cf *classfile.ClassFile, kind string, index uint16) (string, error) {
	classIndex, natIndex, _, err := cf.ConstantPool.RefClassAndNameAndType(index)
	if err != nil {
		return "", fmt.Errorf("%s #%d: %w", kind, index, err)
	}
	nameAndType, err := cf.ConstantPool.GetNameAndType(natIndex)
	if err != nil {
		return "", fmt.Errorf("%s #%d: %w", kind, index, err)
	}
	if classIndex == cf.ThisClass {
		return kind + " " + nameAndType, nil
	}
	className, err := cf.ConstantPool.GetClassName(classIndex)
	if err != nil {
		return "", fmt.Errorf("%s #%d: %w", kind, index, err)
	}
	return kind + " " + className + "." + nameAndType, nil
}

var arrayTypeNames = map[uint8]string{
	4: "boolean", 5: "char", 6: "float", 7: "double",
	8: "byte", 9: "short", 10: "int", 11: "long",
}

func arrayTypeName(atype uint8) string {
	if name, ok := arrayTypeNames[atype]; ok {
		return name
	}
	return fmt.Sprintf("%d", atype)
}
