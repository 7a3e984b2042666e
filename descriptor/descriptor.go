// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package descriptor implements a single-character-lookahead
// recursive-descent parser over JVM field and method descriptor
// strings, producing a typed AST that prints back in Java source
// syntax.
package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned for any descriptor string that does not
// match the grammar.
var ErrMalformed = errors.New("descriptor: malformed")

// Kind distinguishes the Type variants.
type Kind int

const (
	KindVoid Kind = iota
	KindByte
	KindChar
	KindDouble
	KindFloat
	KindInt
	KindLong
	KindShort
	KindBoolean
	KindArray
	KindObject
	KindGeneric
)

// Type is a node in the descriptor AST. Exactly one of the payload
// fields is meaningful, selected by Kind:
//   - KindArray:   Inner
//   - KindObject:  ClassName
//   - KindGeneric: ClassName, TypeArgs
//   - primitives/void: no payload
type Type struct {
	Kind      Kind
	Inner     *Type
	ClassName string
	TypeArgs  []Type
}

// FieldDescriptor is a single parsed field type.
type FieldDescriptor struct {
	Type Type
}

// MethodDescriptor is a parsed method signature: ordered parameter
// types plus a return type.
type MethodDescriptor struct {
	Parameters []Type
	Return     Type
}

// parser walks a descriptor string with one rune of lookahead.
type parser struct {
	s   string
	pos int
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.s) {
		return 0, false
	}
	return p.s[p.pos], true
}

func (p *parser) advance() byte {
	b := p.s[p.pos]
	p.pos++
	return b
}

func (p *parser) expect(b byte) error {
	c, ok := p.peek()
	if !ok || c != b {
		return fmt.Errorf("%w: expected %q at offset %d in %q", ErrMalformed, b, p.pos, p.s)
	}
	p.pos++
	return nil
}

// ParseFieldDescriptor parses a single field descriptor, e.g. "I",
// "[[J", "Ljava/lang/Object;".
func ParseFieldDescriptor(s string) (FieldDescriptor, error) {
	p := &parser{s: s}
	t, err := p.parseType()
	if err != nil {
		return FieldDescriptor{}, err
	}
	if p.pos != len(p.s) {
		return FieldDescriptor{}, fmt.Errorf("%w: trailing data after offset %d in %q", ErrMalformed, p.pos, s)
	}
	return FieldDescriptor{Type: t}, nil
}

// ParseMethodDescriptor parses "(<params>)<return>".
func ParseMethodDescriptor(s string) (MethodDescriptor, error) {
	p := &parser{s: s}
	if err := p.expect('('); err != nil {
		return MethodDescriptor{}, err
	}
	var params []Type
	for {
		c, ok := p.peek()
		if !ok {
			return MethodDescriptor{}, fmt.Errorf("%w: unterminated parameter list in %q", ErrMalformed, s)
		}
		if c == ')' {
			p.pos++
			break
		}
		t, err := p.parseType()
		if err != nil {
			return MethodDescriptor{}, err
		}
		params = append(params, t)
	}
	ret, err := p.parseType()
	if err != nil {
		return MethodDescriptor{}, err
	}
	if p.pos != len(p.s) {
		return MethodDescriptor{}, fmt.Errorf("%w: trailing data after offset %d in %q", ErrMalformed, p.pos, s)
	}
	return MethodDescriptor{Parameters: params, Return: ret}, nil
}

// parseType parses one field type (primitive, array, or object/generic).
func (p *parser) parseType() (Type, error) {
	c, ok := p.peek()
	if !ok {
		return Type{}, fmt.Errorf("%w: unexpected end of descriptor %q", ErrMalformed, p.s)
	}
	switch c {
	case 'V':
		p.pos++
		return Type{Kind: KindVoid}, nil
	case 'B':
		p.pos++
		return Type{Kind: KindByte}, nil
	case 'C':
		p.pos++
		return Type{Kind: KindChar}, nil
	case 'D':
		p.pos++
		return Type{Kind: KindDouble}, nil
	case 'F':
		p.pos++
		return Type{Kind: KindFloat}, nil
	case 'I':
		p.pos++
		return Type{Kind: KindInt}, nil
	case 'J':
		p.pos++
		return Type{Kind: KindLong}, nil
	case 'S':
		p.pos++
		return Type{Kind: KindShort}, nil
	case 'Z':
		p.pos++
		return Type{Kind: KindBoolean}, nil
	case '[':
		p.pos++
		inner, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: KindArray, Inner: &inner}, nil
	case 'L':
		p.pos++
		return p.parseObjectOrGeneric()
	default:
		return Type{}, fmt.Errorf("%w: unexpected character %q at offset %d in %q", ErrMalformed, c, p.pos, p.s)
	}
}

// parseObjectOrGeneric parses the body of "L...;" after the leading L
// has been consumed, distinguishing a plain object type from a generic
// instantiation by whether '<' appears before the terminating ';'.
func (p *parser) parseObjectOrGeneric() (Type, error) {
	start := p.pos
	for {
		c, ok := p.peek()
		if !ok {
			return Type{}, fmt.Errorf("%w: unterminated class name starting at offset %d in %q", ErrMalformed, start, p.s)
		}
		if c == ';' {
			name := internalToJava(p.s[start:p.pos])
			p.pos++
			return Type{Kind: KindObject, ClassName: name}, nil
		}
		if c == '<' {
			name := internalToJava(p.s[start:p.pos])
			p.pos++
			var args []Type
			for {
				c, ok := p.peek()
				if !ok {
					return Type{}, fmt.Errorf("%w: unterminated type argument list in %q", ErrMalformed, p.s)
				}
				if c == '>' {
					p.pos++
					break
				}
				arg, err := p.parseType()
				if err != nil {
					return Type{}, err
				}
				args = append(args, arg)
			}
			if err := p.expect(';'); err != nil {
				return Type{}, err
			}
			return Type{Kind: KindGeneric, ClassName: name, TypeArgs: args}, nil
		}
		p.pos++
	}
}

func internalToJava(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

// String renders t in Java source syntax: primitives lowercased,
// arrays with a "[]" suffix per dimension, generics as "<a, b>".
func (t Type) String() string {
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindByte:
		return "byte"
	case KindChar:
		return "char"
	case KindDouble:
		return "double"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindShort:
		return "short"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return t.Inner.String() + "[]"
	case KindObject:
		return t.ClassName
	case KindGeneric:
		parts := make([]string, len(t.TypeArgs))
		for i, arg := range t.TypeArgs {
			parts[i] = arg.String()
		}
		return t.ClassName + "<" + strings.Join(parts, ", ") + ">"
	default:
		return fmt.Sprintf("<unknown kind %d>", t.Kind)
	}
}

// ParameterList renders a method descriptor's parameter list as a
// comma-joined Java source type list (no surrounding parens), the form
// the printer composes into "methodName(paramTypes)".
func (m MethodDescriptor) ParameterList() string {
	parts := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
