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

// Package term implements the terms over which typing constraints are expressed.
//
// A term denotes "the type of" some program entity. Leaf terms (declarations, expressions,
// literals, constants and variables) own a slot in an Arena. Derived terms (properties,
// elements, keys, parameters, returns, receivers, prototypes and operators) are lenses over
// a base term: reading one recomputes from the base's current type, and writing one rebuilds
// the base's type with the component replaced, then writes it through the base.
package term

import (
	"sort"

	"github.com/wdamron/protoinfer/types"
)

// Kind classifies terms.
type Kind uint8

const (
	NameDeclaration Kind = iota
	EnvironmentDeclaration
	Expression
	ObjectLiteral
	MapLiteral
	This
	TypeConstant
	TypeVariable
	TypeParam
	PropertyAccess
	Indexed
	Key
	FunctionParam
	FunctionReturn
	MethodReceiver
	Proto
	ProtoParent
	Operator
	UnaryOperator
)

var kindNames = [...]string{
	"NameDeclaration",
	"EnvironmentDeclaration",
	"Expression",
	"ObjectLiteral",
	"MapLiteral",
	"This",
	"TypeConstant",
	"TypeVariable",
	"TypeParam",
	"PropertyAccess",
	"Indexed",
	"Key",
	"FunctionParam",
	"FunctionReturn",
	"MethodReceiver",
	"Proto",
	"ProtoParent",
	"Operator",
	"UnaryOperator",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind"
}

// IsLeaf reports whether terms of kind k own a type slot.
func (k Kind) IsLeaf() bool { return k <= TypeParam }

// Term denotes the type of a program entity.
type Term interface {
	// Id is unique within the Factory which created the term.
	Id() int
	Kind() Kind
	// Type returns the current type of the term, or nil when it is not yet known.
	Type() types.Type
	// SetType refines the type of the term.
	SetType(t types.Type)
	String() string
	// Lines returns the sorted source lines of the syntax the term was reached from.
	Lines() []int
	// AddLine records a source line for the term. Line 0 is ignored.
	AddLine(line int)
}

// Derived is a term computed from a base term.
type Derived interface {
	Term
	Base() Term
}

type header struct {
	id    int
	kind  Kind
	lines []int
}

func (h *header) Id() int      { return h.id }
func (h *header) Kind() Kind   { return h.kind }
func (h *header) Lines() []int { return h.lines }

func (h *header) AddLine(line int) {
	if line <= 0 {
		return
	}
	i := sort.SearchInts(h.lines, line)
	if i < len(h.lines) && h.lines[i] == line {
		return
	}
	h.lines = append(h.lines, 0)
	copy(h.lines[i+1:], h.lines[i:])
	h.lines[i] = line
}
