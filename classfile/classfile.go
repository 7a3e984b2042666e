// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package classfile decodes a JVM .class file (JVM Specification SE 25
// §4) into an in-memory model: magic and version, constant pool,
// access flags, this/super class, interfaces, fields, methods, and
// class-level attributes. The decode is a single synchronous pass;
// the resulting ClassFile is immutable and has no further lifecycle.
package classfile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/javap-go/javap/access"
	"github.com/javap-go/javap/constantpool"
	"github.com/javap-go/javap/log"
	"github.com/javap-go/javap/reader"
)

// ClassMagic is the fixed four-byte signature every class file begins with.
const ClassMagic = 0xCAFEBABE

var (
	// ErrBadMagic is returned when the leading four bytes do not match
	// ClassMagic.
	ErrBadMagic = errors.New("classfile: bad magic")
)

// Options configures a decode run. It mirrors the shape of a typical
// parser options struct in this codebase's lineage: a Logger field
// that, when unset, defaults to a stderr logger filtered to
// LevelError. A caller-supplied Logger is used as given.
type Options struct {
	Logger log.Logger
}

// ClassFile is the fully decoded, immutable model of one .class file.
type ClassFile struct {
	AbsolutePath string
	ModTime      time.Time
	Size         int64
	SHA256       string

	MinorVersion uint16
	MajorVersion uint16

	ConstantPool *constantpool.Pool
	AccessFlags  access.Flags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []Attribute
}

// FieldInfo is one entry of the fields table.
type FieldInfo struct {
	AccessFlags     access.Flags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

// MethodInfo is one entry of the methods table.
type MethodInfo struct {
	AccessFlags     access.Flags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

// Parse reads and decodes the class file at path.
func Parse(path string, opts *Options) (*ClassFile, error) {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(log.LevelError))
	}
	helper := log.NewHelper(logger)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("classfile: stat %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("classfile: open %s: %w", path, err)
	}
	defer f.Close()

	// Memory map the file instead of a read/copy; class files are read
	// once, front to back, so this avoids the extra allocation for
	// large files without needing any special handling here. Fall back
	// to a plain read for inputs mmap.Map rejects (e.g. pipes, sockets,
	// zero-length files).
	var data []byte
	if info.Size() > 0 {
		if m, mmapErr := mmap.Map(f, mmap.RDONLY, 0); mmapErr == nil {
			defer m.Unmap()
			data = m
		} else {
			helper.Warnf("mmap %s failed, falling back to a full read: %v", path, mmapErr)
		}
	}
	if data == nil {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("classfile: read %s: %w", path, err)
		}
	}

	absPath := path
	if abs, err := absolutePath(path); err == nil {
		absPath = abs
	} else {
		helper.Warnf("could not resolve absolute path for %s: %v", path, err)
	}

	cf, err := decode(data)
	if err != nil {
		return nil, err
	}
	cf.AbsolutePath = absPath
	cf.ModTime = info.ModTime()
	cf.Size = info.Size()
	sum := sha256.Sum256(data)
	cf.SHA256 = hex.EncodeToString(sum[:])
	return cf, nil
}

// ParseBytes decodes an in-memory class file, for callers (tests,
// fuzzing) that don't have a filesystem path to report.
func ParseBytes(data []byte) (*ClassFile, error) {
	return decode(data)
}

func decode(data []byte) (*ClassFile, error) {
	r := reader.New(data, reader.BigEndian)

	magic, err := r.U32()
	if err != nil {
		return nil, fmt.Errorf("classfile: %w", err)
	}
	if magic != ClassMagic {
		return nil, fmt.Errorf("%w: want 0x%08x, got 0x%08x", ErrBadMagic, uint32(ClassMagic), magic)
	}

	minor, err := r.U16()
	if err != nil {
		return nil, err
	}
	major, err := r.U16()
	if err != nil {
		return nil, err
	}

	cpCount, err := r.U16()
	if err != nil {
		return nil, err
	}
	pool, err := constantpool.Decode(r, cpCount)
	if err != nil {
		return nil, err
	}

	rawFlags, err := r.U16()
	if err != nil {
		return nil, err
	}
	flags, err := access.Parse(access.Class, rawFlags)
	if err != nil {
		return nil, err
	}

	thisClass, err := r.U16()
	if err != nil {
		return nil, err
	}
	superClass, err := r.U16()
	if err != nil {
		return nil, err
	}

	ifaceCount, err := r.U16()
	if err != nil {
		return nil, err
	}
	interfaces, err := r.U16Vec(int(ifaceCount))
	if err != nil {
		return nil, err
	}

	fieldCount, err := r.U16()
	if err != nil {
		return nil, err
	}
	fields := make([]FieldInfo, fieldCount)
	for i := range fields {
		f, err := decodeFieldOrMethod(r, pool, access.Field, ContextField)
		if err != nil {
			return nil, fmt.Errorf("field #%d: %w", i, err)
		}
		fields[i] = FieldInfo(f)
	}

	methodCount, err := r.U16()
	if err != nil {
		return nil, err
	}
	methods := make([]MethodInfo, methodCount)
	for i := range methods {
		m, err := decodeFieldOrMethod(r, pool, access.Method, ContextMethod)
		if err != nil {
			return nil, fmt.Errorf("method #%d: %w", i, err)
		}
		methods[i] = MethodInfo(m)
	}

	classAttrCount, err := r.U16()
	if err != nil {
		return nil, err
	}
	classAttrs, err := decodeAttributes(r, pool, ContextClass, classAttrCount)
	if err != nil {
		return nil, err
	}

	return &ClassFile{
		MinorVersion: minor,
		MajorVersion: major,
		ConstantPool: pool,
		AccessFlags:  flags,
		ThisClass:    thisClass,
		SuperClass:   superClass,
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
		Attributes:   classAttrs,
	}, nil
}

// fieldOrMethodInfo is the shared shape decoded for both field_info
// and method_info entries (identical layout, different access-flag
// context and attribute context).
type fieldOrMethodInfo struct {
	AccessFlags     access.Flags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

func decodeFieldOrMethod(r *reader.Reader, pool *constantpool.Pool, flagCtx access.Context, attrCtx AttributeContext) (fieldOrMethodInfo, error) {
	rawFlags, err := r.U16()
	if err != nil {
		return fieldOrMethodInfo{}, err
	}
	flags, err := access.Parse(flagCtx, rawFlags)
	if err != nil {
		return fieldOrMethodInfo{}, err
	}
	nameIndex, err := r.U16()
	if err != nil {
		return fieldOrMethodInfo{}, err
	}
	descIndex, err := r.U16()
	if err != nil {
		return fieldOrMethodInfo{}, err
	}
	attrCount, err := r.U16()
	if err != nil {
		return fieldOrMethodInfo{}, err
	}
	attrs, err := decodeAttributes(r, pool, attrCtx, attrCount)
	if err != nil {
		return fieldOrMethodInfo{}, err
	}
	return fieldOrMethodInfo{AccessFlags: flags, NameIndex: nameIndex, DescriptorIndex: descIndex, Attributes: attrs}, nil
}
