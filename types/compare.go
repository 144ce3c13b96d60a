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

// Equal reports whether a and b are structurally identical. Unknown types are only
// equal to themselves.
func Equal(a, b Type) bool { return equal(a, b, 0) }

func equal(a, b Type, depth int) bool {
	if depth > 64 {
		return true
	}
	switch a := a.(type) {
	case nil:
		return b == nil

	case Prim:
		bp, ok := b.(Prim)
		return ok && a == bp

	case *Var:
		bv, ok := b.(*Var)
		return ok && a.Id == bv.Id && a.Name == bv.Name

	case *Array:
		bt, ok := b.(*Array)
		return ok && equal(a.Elem, bt.Elem, depth+1)

	case *Map:
		bt, ok := b.(*Map)
		return ok && equal(a.Elem, bt.Elem, depth+1)

	case *Object:
		bt, ok := b.(*Object)
		if !ok || a.Props.Len() != bt.Props.Len() || !equal(a.Proto, bt.Proto, depth+1) {
			return false
		}
		same := true
		a.Props.Range(func(p Property) bool {
			q, ok := bt.Props.Get(p.Name)
			same = ok && p.ReadOnly == q.ReadOnly && equal(p.Type, q.Type, depth+1)
			return same
		})
		return same

	case *Function, *AttachedMethod, *UnattachedMethod, *Constructor:
		if a.TypeName() != typeName(b) {
			return false
		}
		ap, ar, arecv, _ := Signature(a)
		bp, br, brecv, _ := Signature(b)
		if !equalList(ap, bp, depth) || !equal(ar, br, depth+1) || !equal(arecv, brecv, depth+1) {
			return false
		}
		if ac, ok := a.(*Constructor); ok {
			return equal(ac.Proto, b.(*Constructor).Proto, depth+1)
		}
		return true

	case *Intersection:
		bt, ok := b.(*Intersection)
		return ok && equalList(a.Types, bt.Types, depth)
	}
	panic("unexpected type " + a.TypeName())
}

func equalList(a, b []Type, depth int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equal(a[i], b[i], depth+1) {
			return false
		}
	}
	return true
}

func typeName(t Type) string {
	if t == nil {
		return ""
	}
	return t.TypeName()
}

// Assignable reports whether a value of type sub may be stored in a slot of type sup.
// Unknown types are assignable in both directions. Read-only properties of sup are
// covariant; read-write properties of sup require an identical read-write property.
func Assignable(sub, sup Type) bool { return assignable(sub, sup, 0) }

func assignable(sub, sup Type, depth int) bool {
	if depth > 64 || Unknown(sub) || Unknown(sup) || sup == Any {
		return true
	}
	if si, ok := sub.(*Intersection); ok {
		for _, m := range si.Types {
			if assignable(m, sup, depth+1) {
				return true
			}
		}
		return false
	}
	switch sup := sup.(type) {
	case Prim:
		return sub == sup

	case *Array, *Map:
		return equal(sub, sup, depth)

	case *Object:
		so, ok := sub.(*Object)
		if !ok {
			return false
		}
		ok = true
		sup.Props.Range(func(want Property) bool {
			have, found := so.Lookup(want.Name)
			switch {
			case !found:
				ok = false
			case want.ReadOnly:
				ok = assignable(have.Type, want.Type, depth+1)
			default:
				ok = !have.ReadOnly && equal(have.Type, want.Type, depth+1)
			}
			return ok
		})
		return ok

	case *Function, *AttachedMethod, *UnattachedMethod, *Constructor:
		if typeName(sub) != sup.TypeName() {
			return false
		}
		sp, sr, _, _ := Signature(sub)
		pp, pr, _, _ := Signature(sup)
		if len(sp) != len(pp) {
			return false
		}
		for i := range sp {
			if !assignable(pp[i], sp[i], depth+1) {
				return false
			}
		}
		return assignable(sr, pr, depth+1)

	case *Intersection:
		for _, m := range sup.Types {
			if !assignable(sub, m, depth+1) {
				return false
			}
		}
		return true
	}
	panic("unexpected type " + sup.TypeName())
}
