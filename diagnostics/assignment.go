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

package diagnostics

import (
	"sort"

	"github.com/wdamron/protoinfer/constraint"
	"github.com/wdamron/protoinfer/term"
	"github.com/wdamron/protoinfer/types"
)

var (
	_ constraint.Assignment = (*CurrentAssignment)(nil)
	_ constraint.Assignment = (*MapAssignment)(nil)
)

// CurrentAssignment reads the current types of terms, as refined in place by a solver.
// The properties required of a term are those accessed through it: read-write when
// assigned through, read-only otherwise.
type CurrentAssignment struct {
	required map[term.Term]*requiredProps
}

type requiredProps struct {
	readOnly, readWrite []string
}

// NewCurrentAssignment indexes the property accesses of every term created by f.
func NewCurrentAssignment(f *term.Factory) *CurrentAssignment {
	a := &CurrentAssignment{required: make(map[term.Term]*requiredProps)}
	for _, t := range f.Terms() {
		p, ok := t.(*term.PropTerm)
		if !ok {
			continue
		}
		req := a.required[p.Base()]
		if req == nil {
			req = &requiredProps{}
			a.required[p.Base()] = req
		}
		if p.Written() {
			req.readWrite = append(req.readWrite, p.Name)
		} else {
			req.readOnly = append(req.readOnly, p.Name)
		}
	}
	for _, req := range a.required {
		sort.Strings(req.readOnly)
		sort.Strings(req.readWrite)
	}
	return a
}

func (a *CurrentAssignment) TypeOf(t term.Term) types.Type { return t.Type() }

func (a *CurrentAssignment) RequiredProperties(t term.Term) (readOnly, readWrite []string) {
	if req := a.required[t]; req != nil {
		return req.readOnly, req.readWrite
	}
	return nil, nil
}

// MapAssignment is an explicit assignment of types and required properties to terms.
// Terms missing from Types fall back to their current type.
type MapAssignment struct {
	Types     map[term.Term]types.Type
	ReadOnly  map[term.Term][]string
	ReadWrite map[term.Term][]string
}

func (a *MapAssignment) TypeOf(t term.Term) types.Type {
	if typ, ok := a.Types[t]; ok {
		return typ
	}
	return t.Type()
}

func (a *MapAssignment) RequiredProperties(t term.Term) (readOnly, readWrite []string) {
	return a.ReadOnly[t], a.ReadWrite[t]
}
