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

// Package constraint implements the typing constraints emitted over terms.
package constraint

import (
	"sort"
	"strings"

	"github.com/wdamron/protoinfer/term"
	"github.com/wdamron/protoinfer/types"
)

// Kind classifies constraints.
type Kind uint8

const (
	// Left and Right must resolve to identical types.
	TypeEquality Kind = iota
	// The type of Left must be assignable into a slot of the type of Right.
	SubType
	// The type of Left must be a fully-known value, not an abstract object shape.
	Concrete
	// The resolved callee of the return term Left must accept the arity of the term.
	CheckArity
)

func (k Kind) String() string {
	switch k {
	case TypeEquality:
		return "TypeEquality"
	case SubType:
		return "SubType"
	case Concrete:
		return "Concrete"
	case CheckArity:
		return "CheckArity"
	}
	return "Kind"
}

// Binary reports whether constraints of kind k relate two terms.
func (k Kind) Binary() bool { return k == TypeEquality || k == SubType }

// Assignment is a (possibly partial) mapping from terms to resolved types.
type Assignment interface {
	// TypeOf returns the resolved type of a term, or nil.
	TypeOf(t term.Term) types.Type
	// RequiredProperties returns the minimal sets of read-only and read-write property names
	// which the resolved type of a term must declare to be concrete.
	RequiredProperties(t term.Term) (readOnly, readWrite []string)
}

// Explanation is a human-readable account of an unmet constraint.
type Explanation struct {
	Message string
	// Notes describe structural differences between the types involved.
	Notes []string
}

func (e *Explanation) String() string {
	if len(e.Notes) == 0 {
		return e.Message
	}
	return e.Message + "\n  " + strings.Join(e.Notes, "\n  ")
}

// Explainer renders an explanation for an unmet constraint, given the assignment
// the solver arrived at.
type Explainer func(a Assignment) *Explanation

// Constraint is an obligation between two terms, or on a single term.
type Constraint struct {
	Kind  Kind
	Left  term.Term
	Right term.Term

	// Explainer is nil for unbreakable constraints, which are sound by construction.
	Explainer Explainer
	lines     []int
	index     int
}

// Lines returns the sorted source lines of the syntax responsible for the constraint.
func (c *Constraint) Lines() []int { return c.lines }

// Index returns the position of the constraint within its Set, in order of first insertion.
func (c *Constraint) Index() int { return c.index }

// Unbreakable reports whether the constraint carries no explainer.
func (c *Constraint) Unbreakable() bool { return c.Explainer == nil }

// Explain renders the explanation of the constraint under a. Failure of an unbreakable
// constraint is reported as an internal inconsistency.
func (c *Constraint) Explain(a Assignment) *Explanation {
	if c.Explainer == nil {
		return &Explanation{Message: "internal error: unbreakable constraint " + c.String() + " is not satisfied"}
	}
	return c.Explainer(a)
}

func (c *Constraint) String() string {
	if c.Kind.Binary() {
		return c.Kind.String() + "(" + c.Left.String() + ", " + c.Right.String() + ")"
	}
	return c.Kind.String() + "(" + c.Left.String() + ")"
}

func (c *Constraint) addLine(line int) {
	if line <= 0 {
		return
	}
	i := sort.SearchInts(c.lines, line)
	if i < len(c.lines) && c.lines[i] == line {
		return
	}
	c.lines = append(c.lines, 0)
	copy(c.lines[i+1:], c.lines[i:])
	c.lines[i] = line
}

type key struct {
	kind        Kind
	left, right term.Term
}

// Set is a collection of constraints, deduplicated by kind and operands.
type Set struct {
	byKey map[key]*Constraint
	all   []*Constraint
}

// NewSet creates an empty constraint set.
func NewSet() *Set { return &Set{byKey: make(map[key]*Constraint, 64)} }

// Add records a constraint. Adding a constraint which already exists merges the source
// line into it, and attaches the explainer only when the existing constraint has none.
// Right must be nil for unary kinds.
func (s *Set) Add(kind Kind, left, right term.Term, explain Explainer, line int) *Constraint {
	if kind.Binary() != (right != nil) {
		panic("constraint " + kind.String() + ": unexpected operand count")
	}
	k := key{kind, left, right}
	c, ok := s.byKey[k]
	if !ok {
		c = &Constraint{Kind: kind, Left: left, Right: right, index: len(s.all)}
		s.byKey[k] = c
		s.all = append(s.all, c)
	}
	if c.Explainer == nil {
		c.Explainer = explain
	}
	c.addLine(line)
	return c
}

// Equal records TypeEquality(l, r).
func (s *Set) Equal(l, r term.Term, explain Explainer, line int) *Constraint {
	return s.Add(TypeEquality, l, r, explain, line)
}

// Sub records SubType(sub, sup).
func (s *Set) Sub(sub, sup term.Term, explain Explainer, line int) *Constraint {
	return s.Add(SubType, sub, sup, explain, line)
}

// Concrete records Concrete(t).
func (s *Set) Concrete(t term.Term, explain Explainer, line int) *Constraint {
	return s.Add(Concrete, t, nil, explain, line)
}

// Arity records CheckArity(ret).
func (s *Set) Arity(ret term.Term, explain Explainer, line int) *Constraint {
	return s.Add(CheckArity, ret, nil, explain, line)
}

// Find returns the constraint with the given kind and operands, or nil.
func (s *Set) Find(kind Kind, left, right term.Term) *Constraint {
	return s.byKey[key{kind, left, right}]
}

// All returns every constraint in order of first insertion.
func (s *Set) All() []*Constraint { return s.all }

// Len returns the number of distinct constraints.
func (s *Set) Len() int { return len(s.all) }

// Involving returns the constraints which have t as an operand.
func (s *Set) Involving(t term.Term) []*Constraint {
	var out []*Constraint
	for _, c := range s.all {
		if c.Left == t || c.Right == t {
			out = append(out, c)
		}
	}
	return out
}
