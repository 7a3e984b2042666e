// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javap

import (
	"fmt"
	"io"
	"strings"

	"github.com/javap-go/javap/access"
	"github.com/javap-go/javap/classfile"
)

// Fprint writes the full javap -v rendering of cf to w. A non-nil
// error means cf referenced a malformed constant-pool entry (a
// cross-entry type mismatch or out-of-range index) that only surfaces
// once the printer actually tries to resolve it; per the error
// propagation policy, this is fatal to the run and no partial output
// is guaranteed consistent.
func Fprint(w io.Writer, cf *classfile.ClassFile) error {
	wid := computeWidths(cf.ConstantPool.Len())

	if err := printHeader(w, cf); err != nil {
		return err
	}
	if err := printConstantPool(w, cf.ConstantPool, wid); err != nil {
		return err
	}
	fmt.Fprintln(w, "{")
	if err := printFields(w, cf, wid); err != nil {
		return err
	}
	if err := printMethods(w, cf, wid); err != nil {
		return err
	}
	fmt.Fprintln(w, "}")
	if err := printClassAttributes(w, cf, wid); err != nil {
		return err
	}

	return nil
}

// Print writes the javap -v rendering of cf to os.Stdout's equivalent
// io.Writer passed by the caller; kept distinct from Fprint only for
// symmetry with the rest of this package's Fprint-first convention.
func Print(w io.Writer, cf *classfile.ClassFile) error {
	return Fprint(w, cf)
}

func printClassAttributes(w io.Writer, cf *classfile.ClassFile, wid widths) error {
	for _, attr := range cf.Attributes {
		switch attr.Name {
		case "SourceFile":
			// Already surfaced in the header as "Compiled from".
		case "InnerClasses":
			if err := printInnerClasses(w, cf, attr); err != nil {
				return err
			}
		case "BootstrapMethods":
			if err := printBootstrapMethods(w, cf, attr); err != nil {
				return err
			}
		case "Record":
			if err := printRecord(w, cf, attr, wid); err != nil {
				return err
			}
		case "Signature":
			sig, err := cf.ConstantPool.GetUtf8(attr.Signature)
			if err != nil {
				return fmt.Errorf("Signature #%d: %w", attr.Signature, err)
			}
			fmt.Fprintf(w, "Signature: #%d                          // %s\n", attr.Signature, sig)
		}
	}
	return nil
}

func printInnerClasses(w io.Writer, cf *classfile.ClassFile, attr classfile.Attribute) error {
	fmt.Fprintln(w, "InnerClasses:")
	for _, e := range attr.InnerClasses {
		inner, err := cf.ConstantPool.GetClassName(e.InnerClassInfoIndex)
		if err != nil {
			return fmt.Errorf("InnerClasses inner_class_info #%d: %w", e.InnerClassInfoIndex, err)
		}
		modifiers := ""
		if flags, err := access.Parse(access.InnerClass, e.InnerAccessFlags); err == nil {
			modifiers = strings.Join(flags.Modifiers(), " ")
		}
		prefix := "  "
		if modifiers != "" {
			prefix = "  " + modifiers + " "
		}
		if e.InnerNameIndex != 0 {
			innerName, err := cf.ConstantPool.GetUtf8(e.InnerNameIndex)
			if err != nil {
				return fmt.Errorf("InnerClasses inner_name #%d: %w", e.InnerNameIndex, err)
			}
			fmt.Fprintf(w, "%s#%d; //%s=class %s\n", prefix, e.InnerClassInfoIndex, innerName, inner)
		} else {
			fmt.Fprintf(w, "%s#%d; // class %s\n", prefix, e.InnerClassInfoIndex, inner)
		}
	}
	return nil
}

func printBootstrapMethods(w io.Writer, cf *classfile.ClassFile, attr classfile.Attribute) error {
	fmt.Fprintln(w, "BootstrapMethods:")
	for i, e := range attr.BootstrapMethods {
		handle, err := cf.ConstantPool.At(e.MethodRef)
		if err != nil {
			return fmt.Errorf("BootstrapMethods method_ref #%d: %w", e.MethodRef, err)
		}
		_, _, methodComment, err := entryTemplate(cf.ConstantPool, handle)
		if err != nil {
			return fmt.Errorf("BootstrapMethods method_ref #%d: %w", e.MethodRef, err)
		}
		fmt.Fprintf(w, "  %d: #%d %s\n", i, e.MethodRef, methodComment)
		fmt.Fprintf(w, "    Method arguments:\n")
		for _, a := range e.Args {
			fmt.Fprintf(w, "      #%d\n", a)
		}
	}
	return nil
}

func printRecord(w io.Writer, cf *classfile.ClassFile, attr classfile.Attribute, wid widths) error {
	fmt.Fprintln(w, "Record:")
	for _, c := range attr.Record {
		name, err := cf.ConstantPool.GetUtf8(c.NameIndex)
		if err != nil {
			return fmt.Errorf("Record component name #%d: %w", c.NameIndex, err)
		}
		rawDesc, err := cf.ConstantPool.GetUtf8(c.DescriptorIndex)
		if err != nil {
			return fmt.Errorf("Record component %s descriptor #%d: %w", name, c.DescriptorIndex, err)
		}
		fmt.Fprintf(w, "  %s %s;\n", rawDesc, name)
		fmt.Fprintf(w, "    descriptor: %s\n", rawDesc)
		for _, a := range c.Attributes {
			if err := printMemberAttribute(w, cf, a, wid); err != nil {
				return fmt.Errorf("Record component %s: %w", name, err)
			}
		}
	}
	return nil
}
