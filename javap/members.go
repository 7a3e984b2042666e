// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javap

import (
	"fmt"
	"io"
	"strings"

	"github.com/javap-go/javap/classfile"
	"github.com/javap-go/javap/descriptor"
)

func printFields(w io.Writer, cf *classfile.ClassFile, wid widths) error {
	for _, f := range cf.Fields {
		if err := printField(w, cf, f, wid); err != nil {
			return err
		}
	}
	return nil
}

func printField(w io.Writer, cf *classfile.ClassFile, f classfile.FieldInfo, wid widths) error {
	name, err := cf.ConstantPool.GetUtf8(f.NameIndex)
	if err != nil {
		return fmt.Errorf("field name #%d: %w", f.NameIndex, err)
	}
	rawDesc, err := cf.ConstantPool.GetUtf8(f.DescriptorIndex)
	if err != nil {
		return fmt.Errorf("field %s descriptor #%d: %w", name, f.DescriptorIndex, err)
	}

	typeName := rawDesc
	if fd, err := descriptor.ParseFieldDescriptor(rawDesc); err == nil {
		typeName = fd.Type.String()
	}

	modifiers := strings.Join(f.AccessFlags.Modifiers(), " ")
	fmt.Fprintln(w)
	if modifiers != "" {
		fmt.Fprintf(w, "  %s %s %s;\n", modifiers, typeName, name)
	} else {
		fmt.Fprintf(w, "  %s %s;\n", typeName, name)
	}
	fmt.Fprintf(w, "    descriptor: %s\n", rawDesc)
	fmt.Fprintf(w, "    flags: (0x%04x) %s\n", f.AccessFlags.Raw(), strings.Join(f.AccessFlags.JavaReprs(), ", "))

	for _, attr := range f.Attributes {
		if err := printMemberAttribute(w, cf, attr, wid); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	return nil
}

func printMethods(w io.Writer, cf *classfile.ClassFile, wid widths) error {
	for _, m := range cf.Methods {
		if err := printMethod(w, cf, m, wid); err != nil {
			return err
		}
	}
	return nil
}

func printMethod(w io.Writer, cf *classfile.ClassFile, m classfile.MethodInfo, wid widths) error {
	name, err := cf.ConstantPool.GetUtf8(m.NameIndex)
	if err != nil {
		return fmt.Errorf("method name #%d: %w", m.NameIndex, err)
	}
	rawDesc, err := cf.ConstantPool.GetUtf8(m.DescriptorIndex)
	if err != nil {
		return fmt.Errorf("method %s descriptor #%d: %w", name, m.DescriptorIndex, err)
	}

	md, parseErr := descriptor.ParseMethodDescriptor(rawDesc)
	params := md.Parameters
	// Enum constructors carry two compiler-synthesized leading
	// parameters (name, ordinal) that javap omits from the signature.
	if name == "<init>" && cf.AccessFlags.Has(0x4000) && len(params) >= 2 {
		params = params[2:]
	}

	modifiers := strings.Join(m.AccessFlags.Modifiers(), " ")
	signature, err := methodSignature(cf, name, params, md, parseErr)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	if modifiers != "" {
		fmt.Fprintf(w, "  %s %s;\n", modifiers, signature)
	} else {
		fmt.Fprintf(w, "  %s;\n", signature)
	}
	fmt.Fprintf(w, "    descriptor: %s\n", rawDesc)
	fmt.Fprintf(w, "    flags: (0x%04x) %s\n", m.AccessFlags.Raw(), strings.Join(m.AccessFlags.JavaReprs(), ", "))

	argsSize := len(params)
	if !m.AccessFlags.Has(0x0008) { // ACC_STATIC
		argsSize++
	}

	for _, attr := range m.Attributes {
		if attr.Name == "Code" {
			if err := printCode(w, cf, attr.Code, argsSize, wid); err != nil {
				return fmt.Errorf("method %s: %w", name, err)
			}
			continue
		}
		if err := printMemberAttribute(w, cf, attr, wid); err != nil {
			return fmt.Errorf("method %s: %w", name, err)
		}
	}
	return nil
}

// methodSignature renders the "ReturnType name(params)" form, special
// casing the static/instance initializers that javap prints without a
// return type.
func methodSignature(cf *classfile.ClassFile, name string, params []descriptor.Type, md descriptor.MethodDescriptor, parseErr error) (string, error) {
	paramList := joinTypes(params)
	switch name {
	case "<clinit>":
		return "{}", nil
	case "<init>":
		thisName, err := cf.ConstantPool.GetClassName(cf.ThisClass)
		if err != nil {
			return "", fmt.Errorf("this_class #%d: %w", cf.ThisClass, err)
		}
		javaName := strings.ReplaceAll(thisName, "/", ".")
		if idx := strings.LastIndex(javaName, "."); idx >= 0 {
			javaName = javaName[idx+1:]
		}
		return fmt.Sprintf("%s(%s)", javaName, paramList), nil
	default:
		ret := "void"
		if parseErr == nil {
			ret = md.Return.String()
		}
		return fmt.Sprintf("%s %s(%s)", ret, name, paramList), nil
	}
}

func joinTypes(ts []descriptor.Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// printMemberAttribute handles field/method-level attributes other
// than Code (which has its own printer): ConstantValue, Signature,
// Exceptions, MethodParameters.
func printMemberAttribute(w io.Writer, cf *classfile.ClassFile, attr classfile.Attribute, wid widths) error {
	switch attr.Name {
	case "ConstantValue":
		comment, err := ldcComment(cf, int(attr.ConstantValue))
		if err != nil {
			return fmt.Errorf("ConstantValue #%d: %w", attr.ConstantValue, err)
		}
		fmt.Fprintf(w, "    ConstantValue: %s\n", comment)
	case "Signature":
		sig, err := cf.ConstantPool.GetUtf8(attr.Signature)
		if err != nil {
			return fmt.Errorf("Signature #%d: %w", attr.Signature, err)
		}
		fmt.Fprintf(w, "    Signature: #%d                          // %s\n", attr.Signature, sig)
	case "Exceptions":
		fmt.Fprintf(w, "    Exceptions:\n")
		for _, idx := range attr.Exceptions {
			name, err := cf.ConstantPool.GetClassName(idx)
			if err != nil {
				return fmt.Errorf("Exceptions #%d: %w", idx, err)
			}
			fmt.Fprintf(w, "      throws %s\n", strings.ReplaceAll(name, "/", "."))
		}
	case "MethodParameters":
		fmt.Fprintf(w, "    MethodParameters:\n")
		fmt.Fprintf(w, "      Name                           Flags\n")
		for _, p := range attr.MethodParameters {
			name := "<no name>"
			if p.NameIndex != 0 {
				var err error
				name, err = cf.ConstantPool.GetUtf8(p.NameIndex)
				if err != nil {
					return fmt.Errorf("MethodParameters name #%d: %w", p.NameIndex, err)
				}
			}
			fmt.Fprintf(w, "      %-30s  0x%04x\n", name, p.AccessFlags)
		}
	}
	return nil
}
