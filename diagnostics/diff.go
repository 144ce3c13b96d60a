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
	"strconv"

	"github.com/wdamron/protoinfer/types"
)

// Diff renders the structural differences between an expected type and the actual type
// found in its place. No notes are returned when the types are compatible.
func Diff(expected, actual types.Type) []string {
	var notes []string
	diff(expected, actual, "", &notes, 0)
	return notes
}

func diff(expected, actual types.Type, at string, notes *[]string, depth int) {
	if depth > 16 || types.Unknown(expected) || types.Unknown(actual) {
		return
	}
	switch e := expected.(type) {
	case *types.Object:
		a, ok := actual.(*types.Object)
		if !ok {
			break
		}
		e.Props.Range(func(p types.Property) bool {
			q, found := a.Lookup(p.Name)
			name := at + p.Name
			switch {
			case !found:
				*notes = append(*notes, "missing property '"+name+"'")
			case !p.ReadOnly && q.ReadOnly:
				*notes = append(*notes, "property '"+name+"' is read-only")
			case !p.ReadOnly && !types.Equal(p.Type, q.Type):
				*notes = append(*notes, "read-write property '"+name+"' has type "+types.TypeString(q.Type)+
					", expected exactly "+types.TypeString(p.Type))
			case !types.Assignable(q.Type, p.Type):
				_, wantObject := p.Type.(*types.Object)
				_, haveObject := q.Type.(*types.Object)
				if wantObject && haveObject {
					diff(p.Type, q.Type, name+".", notes, depth+1)
					break
				}
				*notes = append(*notes, "property '"+name+"' has type "+types.TypeString(q.Type)+
					", expected "+types.TypeString(p.Type))
			}
			return true
		})
		return

	case *types.Array, *types.Map:
		if actual.TypeName() != expected.TypeName() {
			break
		}
		ee, ae := elem(expected), elem(actual)
		if !types.Equal(ee, ae) {
			*notes = append(*notes, label(at, "element")+" has type "+types.TypeString(ae)+", expected "+types.TypeString(ee))
		}
		return

	case *types.Function, *types.AttachedMethod, *types.UnattachedMethod, *types.Constructor:
		if actual.TypeName() != expected.TypeName() {
			break
		}
		ep, er, _, _ := types.Signature(expected)
		ap, ar, _, _ := types.Signature(actual)
		if len(ep) != len(ap) {
			*notes = append(*notes, label(at, "function")+" takes "+strconv.Itoa(len(ap))+
				" parameters, expected "+strconv.Itoa(len(ep)))
			return
		}
		for i := range ep {
			if !types.Assignable(ep[i], ap[i]) {
				*notes = append(*notes, label(at, "parameter "+strconv.Itoa(i))+" has type "+types.TypeString(ap[i])+
					", expected "+types.TypeString(ep[i]))
			}
		}
		if !types.Assignable(ar, er) {
			*notes = append(*notes, label(at, "return")+" has type "+types.TypeString(ar)+", expected "+types.TypeString(er))
		}
		return

	case *types.Intersection:
		if _, ok := actual.(*types.Intersection); ok {
			break
		}
		if params, _, _, ok := types.Signature(actual); ok {
			if m, _ := types.SelectArity(e, len(params)); m != nil {
				diff(m, actual, at, notes, depth+1)
				return
			}
			*notes = append(*notes, "no overload of "+types.TypeString(e)+" takes "+strconv.Itoa(len(params))+" parameters")
			return
		}
	}
	if !types.Equal(expected, actual) {
		*notes = append(*notes, label(at, "value")+" has type "+types.TypeString(actual)+", expected "+types.TypeString(expected))
	}
}

func elem(t types.Type) types.Type {
	switch t := t.(type) {
	case *types.Array:
		return t.Elem
	case *types.Map:
		return t.Elem
	}
	return nil
}

func label(at, what string) string {
	if at == "" {
		return what
	}
	return what + " of '" + at[:len(at)-1] + "'"
}
