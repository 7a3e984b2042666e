// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constantpool models the class file's constant pool: a
// tagged-variant table indexed from 1, plus the resolution helpers that
// walk it to produce the human-readable strings the printer needs
// (class names, method/field references, name+type pairs, UTF-8
// payloads, invokedynamic call-site names).
package constantpool

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/javap-go/javap/reader"
)

// Tag identifies the variant of a constant pool entry.
type Tag uint8

const (
	TagUtf8               Tag = 1
	TagInteger            Tag = 3
	TagFloat              Tag = 4
	TagLong               Tag = 5
	TagDouble             Tag = 6
	TagClass              Tag = 7
	TagString             Tag = 8
	TagFieldref           Tag = 9
	TagMethodref          Tag = 10
	TagInterfaceMethodref Tag = 11
	TagNameAndType        Tag = 12
	TagMethodHandle       Tag = 15
	TagMethodType         Tag = 16
	TagDynamic            Tag = 17
	TagInvokeDynamic      Tag = 18
	TagModule             Tag = 19
	TagPackage            Tag = 20
)

var (
	// ErrUnknownTag is returned for a constant pool tag byte outside the
	// enumerated set in spec §6.
	ErrUnknownTag = errors.New("constantpool: unknown tag")
	// ErrWrongVariant is returned when a resolver is asked to interpret
	// an entry as a variant it is not.
	ErrWrongVariant = errors.New("constantpool: entry is not the expected variant")
	// ErrIndexOutOfRange is returned for an index outside [1, len(pool)].
	ErrIndexOutOfRange = errors.New("constantpool: index out of range")
)

// Entry is the sum type of every constant pool variant. Implementations
// are value types so a type switch on Entry is exhaustive-checkable by
// the reader of the switch, matching spec.md §9's sum-types-over-
// inheritance guidance.
type Entry interface {
	tag() Tag
}

// Null occupies the slot immediately following a Long or Double entry;
// the JVM spec reserves two pool slots for 8-byte constants but only
// the first carries data.
type Null struct{}

func (Null) tag() Tag { return 0 }

type Utf8Info struct{ Bytes []byte }

func (Utf8Info) tag() Tag { return TagUtf8 }

type IntegerInfo struct{ Value int32 }

func (IntegerInfo) tag() Tag { return TagInteger }

type FloatInfo struct{ Value float32 }

func (FloatInfo) tag() Tag { return TagFloat }

type LongInfo struct{ Value int64 }

func (LongInfo) tag() Tag { return TagLong }

type DoubleInfo struct{ Value float64 }

func (DoubleInfo) tag() Tag { return TagDouble }

type StringInfo struct{ StringIndex uint16 }

func (StringInfo) tag() Tag { return TagString }

type ClassInfo struct{ NameIndex uint16 }

func (ClassInfo) tag() Tag { return TagClass }

type FieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (FieldrefInfo) tag() Tag { return TagFieldref }

type MethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (MethodrefInfo) tag() Tag { return TagMethodref }

type InterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (InterfaceMethodrefInfo) tag() Tag { return TagInterfaceMethodref }

type NameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (NameAndTypeInfo) tag() Tag { return TagNameAndType }

type MethodHandleInfo struct {
	ReferenceKind  ReferenceKind
	ReferenceIndex uint16
}

func (MethodHandleInfo) tag() Tag { return TagMethodHandle }

type MethodTypeInfo struct{ DescriptorIndex uint16 }

func (MethodTypeInfo) tag() Tag { return TagMethodType }

type DynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (DynamicInfo) tag() Tag { return TagDynamic }

type InvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (InvokeDynamicInfo) tag() Tag { return TagInvokeDynamic }

type ModuleInfo struct{ NameIndex uint16 }

func (ModuleInfo) tag() Tag { return TagModule }

type PackageInfo struct{ NameIndex uint16 }

func (PackageInfo) tag() Tag { return TagPackage }

// Pool is the 1-indexed constant pool table. Entries[0] corresponds to
// constant pool index #1.
type Pool struct {
	Entries []Entry
}

// Decode reads cpCount-1 logical entries from r, per spec.md §4.2: a
// Long or Double consumes two slots (the second is a Null sentinel)
// and counts twice against cpCount, so the pool always ends up with
// cpCount-1 slots.
func Decode(r *reader.Reader, cpCount uint16) (*Pool, error) {
	entries := make([]Entry, 0, cpCount)
	for logical := uint16(1); logical < cpCount; logical++ {
		entry, wide, err := decodeEntry(r)
		if err != nil {
			return nil, fmt.Errorf("constant pool entry #%d: %w", logical, err)
		}
		entries = append(entries, entry)
		if wide {
			entries = append(entries, Null{})
			logical++
		}
	}
	return &Pool{Entries: entries}, nil
}

// decodeEntry reads one tagged entry. wide reports whether the entry
// occupies two logical slots (Long, Double).
func decodeEntry(r *reader.Reader) (entry Entry, wide bool, err error) {
	tagByte, err := r.U8()
	if err != nil {
		return nil, false, err
	}
	switch Tag(tagByte) {
	case TagUtf8:
		length, err := r.U16()
		if err != nil {
			return nil, false, err
		}
		b, err := r.Bytes(int(length))
		if err != nil {
			return nil, false, err
		}
		return Utf8Info{Bytes: b}, false, nil
	case TagInteger:
		v, err := r.I32()
		if err != nil {
			return nil, false, err
		}
		return IntegerInfo{Value: v}, false, nil
	case TagFloat:
		v, err := r.U32()
		if err != nil {
			return nil, false, err
		}
		return FloatInfo{Value: math.Float32frombits(v)}, false, nil
	case TagLong:
		high, err := r.U32()
		if err != nil {
			return nil, false, err
		}
		low, err := r.U32()
		if err != nil {
			return nil, false, err
		}
		return LongInfo{Value: int64(uint64(high)<<32 | uint64(low))}, true, nil
	case TagDouble:
		high, err := r.U32()
		if err != nil {
			return nil, false, err
		}
		low, err := r.U32()
		if err != nil {
			return nil, false, err
		}
		return DoubleInfo{Value: math.Float64frombits(uint64(high)<<32 | uint64(low))}, true, nil
	case TagString:
		idx, err := r.U16()
		if err != nil {
			return nil, false, err
		}
		return StringInfo{StringIndex: idx}, false, nil
	case TagClass:
		idx, err := r.U16()
		if err != nil {
			return nil, false, err
		}
		return ClassInfo{NameIndex: idx}, false, nil
	case TagFieldref:
		ci, nti, err := readPair(r)
		if err != nil {
			return nil, false, err
		}
		return FieldrefInfo{ClassIndex: ci, NameAndTypeIndex: nti}, false, nil
	case TagMethodref:
		ci, nti, err := readPair(r)
		if err != nil {
			return nil, false, err
		}
		return MethodrefInfo{ClassIndex: ci, NameAndTypeIndex: nti}, false, nil
	case TagInterfaceMethodref:
		ci, nti, err := readPair(r)
		if err != nil {
			return nil, false, err
		}
		return InterfaceMethodrefInfo{ClassIndex: ci, NameAndTypeIndex: nti}, false, nil
	case TagNameAndType:
		ni, di, err := readPair(r)
		if err != nil {
			return nil, false, err
		}
		return NameAndTypeInfo{NameIndex: ni, DescriptorIndex: di}, false, nil
	case TagMethodHandle:
		kindByte, err := r.U8()
		if err != nil {
			return nil, false, err
		}
		kind, err := ParseReferenceKind(kindByte)
		if err != nil {
			return nil, false, err
		}
		idx, err := r.U16()
		if err != nil {
			return nil, false, err
		}
		return MethodHandleInfo{ReferenceKind: kind, ReferenceIndex: idx}, false, nil
	case TagMethodType:
		idx, err := r.U16()
		if err != nil {
			return nil, false, err
		}
		return MethodTypeInfo{DescriptorIndex: idx}, false, nil
	case TagDynamic:
		bi, nti, err := readPair(r)
		if err != nil {
			return nil, false, err
		}
		return DynamicInfo{BootstrapMethodAttrIndex: bi, NameAndTypeIndex: nti}, false, nil
	case TagInvokeDynamic:
		bi, nti, err := readPair(r)
		if err != nil {
			return nil, false, err
		}
		return InvokeDynamicInfo{BootstrapMethodAttrIndex: bi, NameAndTypeIndex: nti}, false, nil
	case TagModule:
		idx, err := r.U16()
		if err != nil {
			return nil, false, err
		}
		return ModuleInfo{NameIndex: idx}, false, nil
	case TagPackage:
		idx, err := r.U16()
		if err != nil {
			return nil, false, err
		}
		return PackageInfo{NameIndex: idx}, false, nil
	default:
		return nil, false, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, tagByte)
	}
}

func readPair(r *reader.Reader) (a, b uint16, err error) {
	a, err = r.U16()
	if err != nil {
		return 0, 0, err
	}
	b, err = r.U16()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// At returns the entry at 1-based index i.
func (p *Pool) At(i uint16) (Entry, error) {
	if i < 1 || int(i) > len(p.Entries) {
		return nil, fmt.Errorf("%w: #%d (pool has %d entries)", ErrIndexOutOfRange, i, len(p.Entries))
	}
	return p.Entries[i-1], nil
}

// Len returns the number of physical slots in the pool, including Null
// sentinels after Long/Double entries.
func (p *Pool) Len() int { return len(p.Entries) }

// Utf8Bytes returns the raw modified-UTF-8 bytes of the Utf8 entry at i.
func (p *Pool) Utf8Bytes(i uint16) ([]byte, error) {
	e, err := p.At(i)
	if err != nil {
		return nil, err
	}
	u, ok := e.(Utf8Info)
	if !ok {
		return nil, fmt.Errorf("%w: #%d expected Utf8, got %T", ErrWrongVariant, i, e)
	}
	return u.Bytes, nil
}

// EscapeUtf8 applies spec.md §4.2's printable substitutions to a
// decoded modified-UTF-8 string, wrapping the result in double quotes
// when it begins with '[' (an array descriptor).
func EscapeUtf8(s string) string {
	r := strings.NewReplacer("\n", "\\n", "'", "\\'", "", "\\u0001")
	escaped := r.Replace(s)
	if strings.HasPrefix(s, "[") {
		return "\"" + escaped + "\""
	}
	return escaped
}

// GetUtf8 returns the UTF-8 payload at i as a printable string, with
// the substitutions and array-descriptor quoting from spec.md §4.2.
func (p *Pool) GetUtf8(i uint16) (string, error) {
	b, err := p.Utf8Bytes(i)
	if err != nil {
		return "", err
	}
	return EscapeUtf8(DecodeModifiedUTF8(b)), nil
}

// GetClassName returns the UTF-8 at Class.name_index, preserving
// internal slash form; callers rewrite slashes to dots if they want
// Java source syntax.
func (p *Pool) GetClassName(i uint16) (string, error) {
	e, err := p.At(i)
	if err != nil {
		return "", err
	}
	c, ok := e.(ClassInfo)
	if !ok {
		return "", fmt.Errorf("%w: #%d expected Class, got %T", ErrWrongVariant, i, e)
	}
	b, err := p.Utf8Bytes(c.NameIndex)
	if err != nil {
		return "", err
	}
	return DecodeModifiedUTF8(b), nil
}

// GetNameAndType returns "name:descriptor", wrapping name in double
// quotes when it begins with '<' (constructor/class-initializer
// markers), per spec.md §4.2.
func (p *Pool) GetNameAndType(i uint16) (string, error) {
	e, err := p.At(i)
	if err != nil {
		return "", err
	}
	nt, ok := e.(NameAndTypeInfo)
	if !ok {
		return "", fmt.Errorf("%w: #%d expected NameAndType, got %T", ErrWrongVariant, i, e)
	}
	return p.nameAndTypeString(nt.NameIndex, nt.DescriptorIndex)
}

func (p *Pool) nameAndTypeString(nameIndex, descIndex uint16) (string, error) {
	nameBytes, err := p.Utf8Bytes(nameIndex)
	if err != nil {
		return "", err
	}
	name := DecodeModifiedUTF8(nameBytes)
	descBytes, err := p.Utf8Bytes(descIndex)
	if err != nil {
		return "", err
	}
	desc := DecodeModifiedUTF8(descBytes)
	if strings.HasPrefix(name, "<") {
		return "\"" + name + "\":" + desc, nil
	}
	return name + ":" + desc, nil
}

// refAndType resolves the class name and NameAndType string that back
// a FieldRef/MethodRef/InterfaceMethodRef entry.
func (p *Pool) refAndType(classIndex, natIndex uint16) (className, nameAndType string, err error) {
	className, err = p.GetClassName(classIndex)
	if err != nil {
		return "", "", err
	}
	nameAndType, err = p.GetNameAndType(natIndex)
	if err != nil {
		return "", "", err
	}
	return className, nameAndType, nil
}

// GetMethodRef returns "ClassName.name:descriptor" for a MethodRef or
// InterfaceMethodRef entry (both are accepted, since an invokeinterface
// call site validly points at an InterfaceMethodRef).
func (p *Pool) GetMethodRef(i uint16) (string, error) {
	e, err := p.At(i)
	if err != nil {
		return "", err
	}
	var classIndex, natIndex uint16
	switch m := e.(type) {
	case MethodrefInfo:
		classIndex, natIndex = m.ClassIndex, m.NameAndTypeIndex
	case InterfaceMethodrefInfo:
		classIndex, natIndex = m.ClassIndex, m.NameAndTypeIndex
	default:
		return "", fmt.Errorf("%w: #%d expected Methodref/InterfaceMethodref, got %T", ErrWrongVariant, i, e)
	}
	className, nameAndType, err := p.refAndType(classIndex, natIndex)
	if err != nil {
		return "", err
	}
	return className + "." + nameAndType, nil
}

// GetFieldRef returns "ClassName.name:descriptor" for a Fieldref entry.
func (p *Pool) GetFieldRef(i uint16) (string, error) {
	e, err := p.At(i)
	if err != nil {
		return "", err
	}
	f, ok := e.(FieldrefInfo)
	if !ok {
		return "", fmt.Errorf("%w: #%d expected Fieldref, got %T", ErrWrongVariant, i, e)
	}
	className, nameAndType, err := p.refAndType(f.ClassIndex, f.NameAndTypeIndex)
	if err != nil {
		return "", err
	}
	return className + "." + nameAndType, nil
}

// RefClassAndNameAndType exposes a method/field/interface-method ref's
// class_index and name_and_type_index without formatting, so callers
// (notably the printer) can decide how to abbreviate the class part
// themselves (e.g. drop it when it equals this_class).
func (p *Pool) RefClassAndNameAndType(i uint16) (classIndex, natIndex uint16, kind string, err error) {
	e, err := p.At(i)
	if err != nil {
		return 0, 0, "", err
	}
	switch r := e.(type) {
	case FieldrefInfo:
		return r.ClassIndex, r.NameAndTypeIndex, "Field", nil
	case MethodrefInfo:
		return r.ClassIndex, r.NameAndTypeIndex, "Method", nil
	case InterfaceMethodrefInfo:
		return r.ClassIndex, r.NameAndTypeIndex, "InterfaceMethod", nil
	default:
		return 0, 0, "", fmt.Errorf("%w: #%d expected a ref entry, got %T", ErrWrongVariant, i, e)
	}
}

// GetInvokeDynamic returns "#bootstrap:nameAndType" for an
// InvokeDynamic (or Dynamic) entry.
func (p *Pool) GetInvokeDynamic(i uint16) (string, error) {
	e, err := p.At(i)
	if err != nil {
		return "", err
	}
	var bootstrap, natIndex uint16
	switch d := e.(type) {
	case InvokeDynamicInfo:
		bootstrap, natIndex = d.BootstrapMethodAttrIndex, d.NameAndTypeIndex
	case DynamicInfo:
		bootstrap, natIndex = d.BootstrapMethodAttrIndex, d.NameAndTypeIndex
	default:
		return "", fmt.Errorf("%w: #%d expected InvokeDynamic/Dynamic, got %T", ErrWrongVariant, i, e)
	}
	nameAndType, err := p.GetNameAndType(natIndex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("#%d:%s", bootstrap, nameAndType), nil
}

// String returns the resolved CONSTANT_String_info payload.
func (p *Pool) String(i uint16) (string, error) {
	e, err := p.At(i)
	if err != nil {
		return "", err
	}
	s, ok := e.(StringInfo)
	if !ok {
		return "", fmt.Errorf("%w: #%d expected String, got %T", ErrWrongVariant, i, e)
	}
	return p.GetUtf8(s.StringIndex)
}
