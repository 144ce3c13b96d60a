// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse reads a type expression:
//
//   Integer, Float, String, Boolean, Void, Any
//   Array<T>, Map<T>
//   {a: T, var b: U}                 (var marks a read-write property)
//   {a: T | P}                       (P is the prototype object)
//   (A, B) -> R                      (function)
//   method(A) -> R                   (attached method)
//   method[Recv](A) -> R             (unattached method)
//   new(A) -> R, new[Proto](A) -> R  (constructor)
//   A & B                            (intersection)
//   T                                (any other identifier is a generic type-variable)
//
// Identifiers which name the same type-variable within one expression share a *Var.
func Parse(s string) (Type, error) {
	p := &typeParser{src: s, vars: make(map[string]*Var)}
	p.next()
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.tok != "" {
		return nil, p.errorf("unexpected %q", p.tok)
	}
	return t, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Type {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	src  string
	pos  int
	tok  string
	at   int
	vars map[string]*Var
}

func (p *typeParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("type %q at offset %d: %s", p.src, p.at, fmt.Sprintf(format, args...))
}

func (p *typeParser) next() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
	p.at = p.pos
	if p.pos >= len(p.src) {
		p.tok = ""
		return
	}
	c := p.src[p.pos]
	switch {
	case c == '-' && strings.HasPrefix(p.src[p.pos:], "->"):
		p.tok, p.pos = "->", p.pos+2
	case isIdentByte(c):
		start := p.pos
		for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
			p.pos++
		}
		p.tok = p.src[start:p.pos]
	default:
		p.tok, p.pos = string(c), p.pos+1
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *typeParser) expect(tok string) error {
	if p.tok != tok {
		if p.tok == "" {
			return p.errorf("expected %q, found end of input", tok)
		}
		return p.errorf("expected %q, found %q", tok, p.tok)
	}
	p.next()
	return nil
}

func (p *typeParser) parseType() (Type, error) {
	first, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok != "&" {
		return first, nil
	}
	members := []Type{first}
	for p.tok == "&" {
		p.next()
		m, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return &Intersection{Types: members}, nil
}

func (p *typeParser) parsePrimary() (Type, error) {
	switch tok := p.tok; tok {
	case "":
		return nil, p.errorf("unexpected end of input")

	case "(":
		params, ret, err := p.parseSignature()
		if err != nil {
			return nil, err
		}
		return &Function{Params: params, Return: ret}, nil

	case "method":
		p.next()
		var recv Type
		if p.tok == "[" {
			p.next()
			r, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			recv = r
		}
		params, ret, err := p.parseSignature()
		if err != nil {
			return nil, err
		}
		if recv != nil {
			return &UnattachedMethod{Receiver: recv, Params: params, Return: ret}, nil
		}
		return &AttachedMethod{Params: params, Return: ret}, nil

	case "new":
		p.next()
		var proto Type
		if p.tok == "[" {
			p.next()
			pt, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			proto = pt
		}
		params, ret, err := p.parseSignature()
		if err != nil {
			return nil, err
		}
		return &Constructor{Params: params, Return: ret, Proto: proto}, nil

	case "Array", "Map":
		p.next()
		if err := p.expect("<"); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		if tok == "Array" {
			return &Array{Elem: elem}, nil
		}
		return &Map{Elem: elem}, nil

	case "{":
		return p.parseObject()
	}

	for i, name := range primNames {
		if p.tok == name {
			p.next()
			return Prim(i), nil
		}
	}
	if !isIdentByte(p.tok[0]) {
		return nil, p.errorf("unexpected %q", p.tok)
	}
	name := p.tok
	p.next()
	v, ok := p.vars[name]
	if !ok {
		v = &Var{Name: name}
		p.vars[name] = v
	}
	return v, nil
}

func (p *typeParser) parseSignature() ([]Type, Type, error) {
	if err := p.expect("("); err != nil {
		return nil, nil, err
	}
	params := []Type{}
	for p.tok != ")" {
		if len(params) > 0 {
			if err := p.expect(","); err != nil {
				return nil, nil, err
			}
		}
		t, err := p.parseType()
		if err != nil {
			return nil, nil, err
		}
		params = append(params, t)
	}
	p.next()
	if err := p.expect("->"); err != nil {
		return nil, nil, err
	}
	ret, err := p.parsePrimary()
	if err != nil {
		return nil, nil, err
	}
	return params, ret, nil
}

func (p *typeParser) parseObject() (Type, error) {
	p.next()
	obj := &Object{Props: EmptyPropertyMap}
	for p.tok != "}" && p.tok != "|" {
		if obj.Props.Len() > 0 {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
		readOnly := true
		if p.tok == "var" {
			readOnly = false
			p.next()
		}
		if p.tok == "" || !isIdentByte(p.tok[0]) {
			return nil, p.errorf("expected property name, found %q", p.tok)
		}
		name := p.tok
		p.next()
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, dup := obj.Props.Get(name); dup {
			return nil, p.errorf("duplicate property %q", name)
		}
		obj.Props = obj.Props.Set(Property{Name: name, Type: t, ReadOnly: readOnly})
	}
	if p.tok == "|" {
		p.next()
		proto, err := p.parseType()
		if err != nil {
			return nil, err
		}
		obj.Proto = proto
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return obj, nil
}
