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

package term

import (
	"github.com/wdamron/protoinfer/ast"
	"github.com/wdamron/protoinfer/types"
)

var _ Term = (*Leaf)(nil)

// Leaf is a term which owns a type slot: a declaration, an expression, a literal, `this`,
// a constant, a type-variable or a type-parameter.
type Leaf struct {
	header
	arena *Arena
	slot  Handle
	label string
	fixed bool
	// Node is the syntax the term is keyed by, or nil.
	Node ast.Node
	// Bindings lists the fresh type-variables substituted for the generic parameters of an
	// environment declaration.
	Bindings []Binding
}

// Binding pairs a generic parameter name with the type-variable substituted for it.
type Binding struct {
	Name string
	Var  *types.Var
}

// Slot returns the handle of the term's type slot.
func (t *Leaf) Slot() Handle { return t.slot }

func (t *Leaf) Type() types.Type { return t.arena.Get(t.slot) }

// SetType writes the term's slot. Writes to a TypeConstant are ignored.
func (t *Leaf) SetType(typ types.Type) {
	if t.fixed {
		return
	}
	t.arena.Set(t.slot, typ)
}

func (t *Leaf) String() string { return t.label }
