// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javap

import (
	"fmt"
	"io"
	"strings"

	"github.com/javap-go/javap/classfile"
)

var monthAbbrev = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

func printHeader(w io.Writer, cf *classfile.ClassFile) error {
	fmt.Fprintf(w, "Classfile %s\n", cf.AbsolutePath)

	t := cf.ModTime
	fmt.Fprintf(w, "  Last modified %s %d, %d; size %d bytes\n",
		monthAbbrev[t.Month()-1], t.Day(), t.Year(), cf.Size)
	fmt.Fprintf(w, "  SHA-256 checksum %s\n", cf.SHA256)

	sourceFile, ok, err := classSourceFile(cf)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(w, "  Compiled from %q\n", sourceFile)
	}

	thisName, err := cf.ConstantPool.GetClassName(cf.ThisClass)
	if err != nil {
		return fmt.Errorf("this_class #%d: %w", cf.ThisClass, err)
	}
	javaName := strings.ReplaceAll(thisName, "/", ".")

	kind := "class"
	if cf.AccessFlags.Has(0x0200) {
		kind = "interface"
	}
	modifiers := strings.Join(cf.AccessFlags.Modifiers(), " ")
	if modifiers != "" {
		fmt.Fprintf(w, "%s %s %s", modifiers, kind, javaName)
	} else {
		fmt.Fprintf(w, "%s %s", kind, javaName)
	}

	extends, ok, err := extendsClause(cf, javaName)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(w, " extends %s", extends)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  minor version: %d\n", cf.MinorVersion)
	fmt.Fprintf(w, "  major version: %d\n", cf.MajorVersion)
	fmt.Fprintf(w, "  flags: (0x%04x) %s\n", cf.AccessFlags.Raw(), strings.Join(cf.AccessFlags.JavaReprs(), ", "))

	fmt.Fprintf(w, "  this_class: #%-25d // %s\n", cf.ThisClass, thisName)
	if cf.SuperClass != 0 {
		superName, err := cf.ConstantPool.GetClassName(cf.SuperClass)
		if err != nil {
			return fmt.Errorf("super_class #%d: %w", cf.SuperClass, err)
		}
		fmt.Fprintf(w, "  super_class: #%-24d // %s\n", cf.SuperClass, superName)
	} else {
		fmt.Fprintf(w, "  super_class: #0\n")
	}
	fmt.Fprintf(w, "  interfaces: %d, fields: %d, methods: %d, attributes: %d\n",
		len(cf.Interfaces), len(cf.Fields), len(cf.Methods), len(cf.Attributes))
	return nil
}

// extendsClause returns the rendered "extends ..." clause (without the
// leading keyword), omitted entirely when the superclass is
// java.lang.Object, and special-cased for enums per S7.
func extendsClause(cf *classfile.ClassFile, thisName string) (clause string, ok bool, err error) {
	if cf.AccessFlags.Has(0x4000) { // ACC_ENUM
		return fmt.Sprintf("java.lang.Enum<%s>", thisName), true, nil
	}
	if cf.SuperClass == 0 {
		return "", false, nil
	}
	superName, err := cf.ConstantPool.GetClassName(cf.SuperClass)
	if err != nil {
		return "", false, fmt.Errorf("super_class #%d: %w", cf.SuperClass, err)
	}
	if superName == "java/lang/Object" {
		return "", false, nil
	}
	return strings.ReplaceAll(superName, "/", "."), true, nil
}

func classSourceFile(cf *classfile.ClassFile) (name string, ok bool, err error) {
	for _, a := range cf.Attributes {
		if a.Name == "SourceFile" {
			s, err := cf.ConstantPool.GetUtf8(a.SourceFile)
			if err != nil {
				return "", false, fmt.Errorf("SourceFile #%d: %w", a.SourceFile, err)
			}
			return s, true, nil
		}
	}
	return "", false, nil
}
