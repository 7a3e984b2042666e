// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"fmt"

	"github.com/javap-go/javap/bytecode"
	"github.com/javap-go/javap/constantpool"
	"github.com/javap-go/javap/reader"
)

// AttributeContext selects which attribute names are legal at a given
// nesting point. class-level, field-level, method-level, and the
// Code sub-context each accept their own set of attribute names;
// Signature is accepted at class, field and method level.
type AttributeContext int

const (
	ContextClass AttributeContext = iota
	ContextField
	ContextMethod
	ContextCode
)

// ErrUnknownAttribute is returned for an attribute name not in the
// current context's accepted set.
var ErrUnknownAttribute = errors.New("classfile: unknown or context-wrong attribute name")

var attributeNamesByContext = map[AttributeContext]map[string]bool{
	ContextClass: {
		"SourceFile": true, "InnerClasses": true, "BootstrapMethods": true,
		"Record": true, "Signature": true,
	},
	ContextField: {
		"Signature": true, "ConstantValue": true,
	},
	ContextMethod: {
		"Code": true, "MethodParameters": true, "Signature": true, "Exceptions": true,
	},
	ContextCode: {
		"LineNumberTable": true, "LocalVariableTable": true, "StackMapTable": true,
	},
}

// Attribute is the sum type of every attribute variant this decoder
// understands. Exactly one of the typed payload fields is populated,
// selected by Name.
type Attribute struct {
	Name string

	Code               *CodeAttribute
	LineNumberTable    []LineNumberEntry
	LocalVariableTable []LocalVariableEntry
	StackMapTable      []StackMapFrame
	SourceFile         uint16
	InnerClasses       []InnerClassEntry
	BootstrapMethods   []BootstrapMethodEntry
	MethodParameters   []MethodParameterEntry
	Signature          uint16
	Record             []RecordComponent
	ConstantValue      uint16
	Exceptions         []uint16
}

// CodeAttribute is the decoded payload of a Code attribute.
type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           *bytecode.Code
	CodeLength     uint32
	ExceptionTable []ExceptionTableEntry
	Attributes     []Attribute
}

type ExceptionTableEntry struct {
	StartPC, EndPC, HandlerPC uint16
	CatchType                 uint16
}

type LineNumberEntry struct {
	StartPC uint16
	Line    uint16
}

type LocalVariableEntry struct {
	StartPC, Length        uint16
	NameIndex, DescIndex   uint16
	Index                  uint16
}

type InnerClassEntry struct {
	InnerClassInfoIndex, OuterClassInfoIndex uint16
	InnerNameIndex                           uint16
	InnerAccessFlags                         uint16
}

type BootstrapMethodEntry struct {
	MethodRef uint16
	Args      []uint16
}

type MethodParameterEntry struct {
	NameIndex uint16
	AccessFlags uint16
}

type RecordComponent struct {
	NameIndex, DescriptorIndex uint16
	Attributes                 []Attribute
}

// decodeAttributes reads count attribute_info entries, dispatching
// each by its name (resolved through the pool) to the right subparser
// for ctx.
func decodeAttributes(r *reader.Reader, pool *constantpool.Pool, ctx AttributeContext, count uint16) ([]Attribute, error) {
	out := make([]Attribute, 0, count)
	for i := uint16(0); i < count; i++ {
		attr, err := decodeAttribute(r, pool, ctx)
		if err != nil {
			return nil, fmt.Errorf("attribute #%d: %w", i, err)
		}
		out = append(out, attr)
	}
	return out, nil
}

func decodeAttribute(r *reader.Reader, pool *constantpool.Pool, ctx AttributeContext) (Attribute, error) {
	nameIndex, err := r.U16()
	if err != nil {
		return Attribute{}, err
	}
	name, err := pool.GetUtf8(nameIndex)
	if err != nil {
		return Attribute{}, err
	}
	length, err := r.U32()
	if err != nil {
		return Attribute{}, err
	}
	if !attributeNamesByContext[ctx][name] {
		return Attribute{}, fmt.Errorf("%w: %q in context %d (length %d)", ErrUnknownAttribute, name, ctx, length)
	}

	switch name {
	case "Code":
		return decodeCodeAttribute(r, pool, name)
	case "LineNumberTable":
		return decodeLineNumberTable(r, name)
	case "LocalVariableTable":
		return decodeLocalVariableTable(r, name)
	case "StackMapTable":
		return decodeStackMapTableAttr(r, name)
	case "SourceFile":
		idx, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		return Attribute{Name: name, SourceFile: idx}, nil
	case "InnerClasses":
		return decodeInnerClasses(r, name)
	case "BootstrapMethods":
		return decodeBootstrapMethods(r, name)
	case "MethodParameters":
		return decodeMethodParameters(r, name)
	case "Signature":
		idx, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		return Attribute{Name: name, Signature: idx}, nil
	case "Record":
		return decodeRecord(r, pool, name)
	case "ConstantValue":
		idx, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		return Attribute{Name: name, ConstantValue: idx}, nil
	case "Exceptions":
		return decodeExceptions(r, name)
	default:
		return Attribute{}, fmt.Errorf("%w: %q has no decoder", ErrUnknownAttribute, name)
	}
}

func decodeCodeAttribute(r *reader.Reader, pool *constantpool.Pool, name string) (Attribute, error) {
	maxStack, err := r.U16()
	if err != nil {
		return Attribute{}, err
	}
	maxLocals, err := r.U16()
	if err != nil {
		return Attribute{}, err
	}
	codeLength, err := r.U32()
	if err != nil {
		return Attribute{}, err
	}
	codeBytes, err := r.Bytes(int(codeLength))
	if err != nil {
		return Attribute{}, err
	}
	decodedCode, err := bytecode.Decode(codeBytes)
	if err != nil {
		return Attribute{}, fmt.Errorf("Code.code: %w", err)
	}

	excCount, err := r.U16()
	if err != nil {
		return Attribute{}, err
	}
	excTable := make([]ExceptionTableEntry, excCount)
	for i := range excTable {
		startPC, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		endPC, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		handlerPC, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		catchType, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		excTable[i] = ExceptionTableEntry{StartPC: startPC, EndPC: endPC, HandlerPC: handlerPC, CatchType: catchType}
	}

	attrCount, err := r.U16()
	if err != nil {
		return Attribute{}, err
	}
	nested, err := decodeAttributes(r, pool, ContextCode, attrCount)
	if err != nil {
		return Attribute{}, err
	}

	return Attribute{
		Name: name,
		Code: &CodeAttribute{
			MaxStack:       maxStack,
			MaxLocals:      maxLocals,
			Code:           decodedCode,
			CodeLength:     codeLength,
			ExceptionTable: excTable,
			Attributes:     nested,
		},
	}, nil
}

func decodeLineNumberTable(r *reader.Reader, name string) (Attribute, error) {
	count, err := r.U16()
	if err != nil {
		return Attribute{}, err
	}
	out := make([]LineNumberEntry, count)
	for i := range out {
		startPC, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		line, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		out[i] = LineNumberEntry{StartPC: startPC, Line: line}
	}
	return Attribute{Name: name, LineNumberTable: out}, nil
}

func decodeLocalVariableTable(r *reader.Reader, name string) (Attribute, error) {
	count, err := r.U16()
	if err != nil {
		return Attribute{}, err
	}
	out := make([]LocalVariableEntry, count)
	for i := range out {
		startPC, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		length, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		nameIndex, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		descIndex, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		index, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		out[i] = LocalVariableEntry{StartPC: startPC, Length: length, NameIndex: nameIndex, DescIndex: descIndex, Index: index}
	}
	return Attribute{Name: name, LocalVariableTable: out}, nil
}

func decodeStackMapTableAttr(r *reader.Reader, name string) (Attribute, error) {
	count, err := r.U16()
	if err != nil {
		return Attribute{}, err
	}
	out := make([]StackMapFrame, count)
	for i := range out {
		f, err := decodeStackMapFrame(r)
		if err != nil {
			return Attribute{}, err
		}
		out[i] = f
	}
	return Attribute{Name: name, StackMapTable: out}, nil
}

func decodeInnerClasses(r *reader.Reader, name string) (Attribute, error) {
	count, err := r.U16()
	if err != nil {
		return Attribute{}, err
	}
	out := make([]InnerClassEntry, count)
	for i := range out {
		inner, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		outer, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		innerName, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		innerFlags, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		out[i] = InnerClassEntry{InnerClassInfoIndex: inner, OuterClassInfoIndex: outer, InnerNameIndex: innerName, InnerAccessFlags: innerFlags}
	}
	return Attribute{Name: name, InnerClasses: out}, nil
}

func decodeBootstrapMethods(r *reader.Reader, name string) (Attribute, error) {
	count, err := r.U16()
	if err != nil {
		return Attribute{}, err
	}
	out := make([]BootstrapMethodEntry, count)
	for i := range out {
		methodRef, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		argCount, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		args, err := r.U16Vec(int(argCount))
		if err != nil {
			return Attribute{}, err
		}
		out[i] = BootstrapMethodEntry{MethodRef: methodRef, Args: args}
	}
	return Attribute{Name: name, BootstrapMethods: out}, nil
}

func decodeMethodParameters(r *reader.Reader, name string) (Attribute, error) {
	count, err := r.U8()
	if err != nil {
		return Attribute{}, err
	}
	out := make([]MethodParameterEntry, count)
	for i := range out {
		nameIndex, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		flags, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		out[i] = MethodParameterEntry{NameIndex: nameIndex, AccessFlags: flags}
	}
	return Attribute{Name: name, MethodParameters: out}, nil
}

func decodeRecord(r *reader.Reader, pool *constantpool.Pool, name string) (Attribute, error) {
	count, err := r.U16()
	if err != nil {
		return Attribute{}, err
	}
	out := make([]RecordComponent, count)
	for i := range out {
		nameIndex, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		descIndex, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		attrCount, err := r.U16()
		if err != nil {
			return Attribute{}, err
		}
		// Record component attributes accept Signature, same as fields.
		attrs, err := decodeAttributes(r, pool, ContextField, attrCount)
		if err != nil {
			return Attribute{}, err
		}
		out[i] = RecordComponent{NameIndex: nameIndex, DescriptorIndex: descIndex, Attributes: attrs}
	}
	return Attribute{Name: name, Record: out}, nil
}

func decodeExceptions(r *reader.Reader, name string) (Attribute, error) {
	count, err := r.U16()
	if err != nil {
		return Attribute{}, err
	}
	idx, err := r.U16Vec(int(count))
	if err != nil {
		return Attribute{}, err
	}
	return Attribute{Name: name, Exceptions: idx}, nil
}
