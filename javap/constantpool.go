// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javap

import (
	"fmt"
	"io"
	"strings"

	"github.com/javap-go/javap/constantpool"
)

func printConstantPool(w io.Writer, pool *constantpool.Pool, wid widths) error {
	fmt.Fprintln(w, "Constant pool:")
	for i, entry := range pool.Entries {
		if _, isNull := entry.(constantpool.Null); isNull {
			continue
		}
		index := uint16(i + 1)
		if err := printConstantPoolEntry(w, pool, index, entry, wid); err != nil {
			return fmt.Errorf("constant pool #%d: %w", index, err)
		}
	}
	return nil
}

func printConstantPoolEntry(w io.Writer, pool *constantpool.Pool, index uint16, entry constantpool.Entry, wid widths) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%*s ", wid.cpIndexWidth-1, fmt.Sprintf("#%d", index))
	b.WriteString("= ")

	tag, info, comment, err := entryTemplate(pool, entry)
	if err != nil {
		return err
	}
	b.WriteString(tag)
	if info != "" {
		padTo(&b, wid.cpInfoStart)
		b.WriteString(info)
	}
	// A String whose referenced Utf8 is empty still gets a bare "//".
	_, isString := entry.(constantpool.StringInfo)
	if comment != "" || isString {
		padTo(&b, wid.cpCommentStart)
		b.WriteString("//")
		if comment != "" {
			b.WriteString(" " + comment)
		}
	}
	io.WriteString(w, b.String()+"\n")
	return nil
}

// entryTemplate renders the Tag keyword, the raw info payload
// (indices such as "#3.#4"), and the resolved comment for one
// constant pool entry, per the variant-specific templates in the
// printing spec. A resolver failure here is a cross-entry type
// mismatch (e.g. Class.name_index not pointing to a Utf8 entry) or an
// out-of-range index, both fatal malformed-file conditions.
func entryTemplate(pool *constantpool.Pool, entry constantpool.Entry) (tag, info, comment string, err error) {
	switch e := entry.(type) {
	case constantpool.Utf8Info:
		s := constantpool.DecodeModifiedUTF8(e.Bytes)
		if strings.TrimSpace(s) == "" {
			return "Utf8", "", "", nil
		}
		return "Utf8", constantpool.EscapeUtf8(s), "", nil
	case constantpool.IntegerInfo:
		return "Integer", fmt.Sprintf("%d", e.Value), "", nil
	case constantpool.FloatInfo:
		return "Float", fmt.Sprintf("%gf", e.Value), "", nil
	case constantpool.LongInfo:
		return "Long", fmt.Sprintf("%dl", e.Value), "", nil
	case constantpool.DoubleInfo:
		return "Double", fmt.Sprintf("%gd", e.Value), "", nil
	case constantpool.StringInfo:
		s, err := pool.GetUtf8(e.StringIndex)
		if err != nil {
			return "", "", "", fmt.Errorf("String #%d: %w", e.StringIndex, err)
		}
		return "String", fmt.Sprintf("#%d", e.StringIndex), s, nil
	case constantpool.ClassInfo:
		name, err := pool.GetUtf8(e.NameIndex)
		if err != nil {
			return "", "", "", fmt.Errorf("Class #%d: %w", e.NameIndex, err)
		}
		return "Class", fmt.Sprintf("#%d", e.NameIndex), name, nil
	case constantpool.FieldrefInfo:
		return refTemplate(pool, "Fieldref", e.ClassIndex, e.NameAndTypeIndex)
	case constantpool.MethodrefInfo:
		return refTemplate(pool, "Methodref", e.ClassIndex, e.NameAndTypeIndex)
	case constantpool.InterfaceMethodrefInfo:
		return refTemplate(pool, "InterfaceMethodref", e.ClassIndex, e.NameAndTypeIndex)
	case constantpool.NameAndTypeInfo:
		return nameAndTypeTemplate(pool, e)
	case constantpool.MethodHandleInfo:
		comment, err := methodHandleComment(pool, e)
		if err != nil {
			return "", "", "", err
		}
		return "MethodHandle", fmt.Sprintf("%d:#%d", e.ReferenceKind, e.ReferenceIndex), comment, nil
	case constantpool.MethodTypeInfo:
		desc, err := pool.GetUtf8(e.DescriptorIndex)
		if err != nil {
			return "", "", "", fmt.Errorf("MethodType #%d: %w", e.DescriptorIndex, err)
		}
		return "MethodType", fmt.Sprintf("#%d", e.DescriptorIndex), desc, nil
	case constantpool.InvokeDynamicInfo:
		nt, err := pool.GetNameAndType(e.NameAndTypeIndex)
		if err != nil {
			return "", "", "", fmt.Errorf("InvokeDynamic #%d: %w", e.NameAndTypeIndex, err)
		}
		return "InvokeDynamic", fmt.Sprintf("#%d:#%d", e.BootstrapMethodAttrIndex, e.NameAndTypeIndex), nt, nil
	case constantpool.DynamicInfo:
		nt, err := pool.GetNameAndType(e.NameAndTypeIndex)
		if err != nil {
			return "", "", "", fmt.Errorf("Dynamic #%d: %w", e.NameAndTypeIndex, err)
		}
		return "Dynamic", fmt.Sprintf("#%d:#%d", e.BootstrapMethodAttrIndex, e.NameAndTypeIndex), nt, nil
	case constantpool.ModuleInfo:
		name, err := pool.GetUtf8(e.NameIndex)
		if err != nil {
			return "", "", "", fmt.Errorf("Module #%d: %w", e.NameIndex, err)
		}
		return "Module", fmt.Sprintf("#%d", e.NameIndex), name, nil
	case constantpool.PackageInfo:
		name, err := pool.GetUtf8(e.NameIndex)
		if err != nil {
			return "", "", "", fmt.Errorf("Package #%d: %w", e.NameIndex, err)
		}
		return "Package", fmt.Sprintf("#%d", e.NameIndex), name, nil
	default:
		return "Unknown", "", "", nil
	}
}

// methodHandleComment resolves the referenced field/method and
// prefixes it with the reference kind's REF_ token, e.g.
// "REF_invokeStatic Method Helper.bootstrap:...".
func methodHandleComment(pool *constantpool.Pool, e constantpool.MethodHandleInfo) (string, error) {
	classIndex, natIndex, kind, err := pool.RefClassAndNameAndType(e.ReferenceIndex)
	if err != nil {
		return "", fmt.Errorf("MethodHandle #%d: %w", e.ReferenceIndex, err)
	}
	className, err := pool.GetClassName(classIndex)
	if err != nil {
		return "", fmt.Errorf("MethodHandle #%d: %w", e.ReferenceIndex, err)
	}
	nameAndType, err := pool.GetNameAndType(natIndex)
	if err != nil {
		return "", fmt.Errorf("MethodHandle #%d: %w", e.ReferenceIndex, err)
	}
	return e.ReferenceKind.JavaRepr() + " " + kind + " " + className + "." + nameAndType, nil
}

func refTemplate(pool *constantpool.Pool, tagName string, classIndex, natIndex uint16) (tag, info, comment string, err error) {
	className, err := pool.GetClassName(classIndex)
	if err != nil {
		return "", "", "", fmt.Errorf("%s #%d.#%d: %w", tagName, classIndex, natIndex, err)
	}
	nameAndType, err := pool.GetNameAndType(natIndex)
	if err != nil {
		return "", "", "", fmt.Errorf("%s #%d.#%d: %w", tagName, classIndex, natIndex, err)
	}
	return tagName, fmt.Sprintf("#%d.#%d", classIndex, natIndex), className + "." + nameAndType, nil
}

func nameAndTypeTemplate(pool *constantpool.Pool, e constantpool.NameAndTypeInfo) (tag, info, comment string, err error) {
	s, err := resolveNameAndType(pool, e.NameIndex, e.DescriptorIndex)
	if err != nil {
		return "", "", "", fmt.Errorf("NameAndType #%d:#%d: %w", e.NameIndex, e.DescriptorIndex, err)
	}
	return "NameAndType", fmt.Sprintf("#%d:#%d", e.NameIndex, e.DescriptorIndex), s, nil
}

func resolveNameAndType(pool *constantpool.Pool, nameIndex, descIndex uint16) (string, error) {
	name, err := pool.GetUtf8(nameIndex)
	if err != nil {
		return "", err
	}
	desc, err := pool.GetUtf8(descIndex)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(name, "<") {
		return "\"" + name + "\":" + desc, nil
	}
	return name + ":" + desc, nil
}
