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

// Package diagnostics renders explanations of unmet typing constraints.
package diagnostics

import (
	"strconv"

	"github.com/wdamron/protoinfer/constraint"
	"github.com/wdamron/protoinfer/term"
	"github.com/wdamron/protoinfer/types"
)

func typeOf(a constraint.Assignment, t term.Term) string { return types.TypeString(a.TypeOf(t)) }

// Mismatch explains a value whose type does not fit the type expected of it.
func Mismatch(message string, expected, actual term.Term) constraint.Explainer {
	return func(a constraint.Assignment) *constraint.Explanation {
		e, v := a.TypeOf(expected), a.TypeOf(actual)
		return &constraint.Explanation{
			Message: message + ": found " + types.TypeString(v) + ", expected " + types.TypeString(e),
			Notes:   Diff(e, v),
		}
	}
}

// Assignment explains a value which cannot be assigned to its target.
func Assignment(target string, slot, value term.Term) constraint.Explainer {
	return func(a constraint.Assignment) *constraint.Explanation {
		e, v := a.TypeOf(slot), a.TypeOf(value)
		return &constraint.Explanation{
			Message: "cannot assign " + types.TypeString(v) + " to " + target + " of type " + types.TypeString(e),
			Notes:   Diff(e, v),
		}
	}
}

// Argument explains an argument which does not fit a parameter of its callee.
func Argument(callee string, index int, param, arg term.Term) constraint.Explainer {
	return func(a constraint.Assignment) *constraint.Explanation {
		e, v := a.TypeOf(param), a.TypeOf(arg)
		return &constraint.Explanation{
			Message: "argument " + strconv.Itoa(index+1) + " of " + callee + " has type " + types.TypeString(v) +
				", expected " + types.TypeString(e),
			Notes: Diff(e, v),
		}
	}
}

// Return explains a returned value which does not fit the return type of its function.
func Return(fn string, ret, value term.Term) constraint.Explainer {
	return func(a constraint.Assignment) *constraint.Explanation {
		e, v := a.TypeOf(ret), a.TypeOf(value)
		return &constraint.Explanation{
			Message: fn + " returns " + types.TypeString(v) + ", expected " + types.TypeString(e),
			Notes:   Diff(e, v),
		}
	}
}

// NoProperty explains an access to a property of base which may not exist.
func NoProperty(base term.Term, name string) constraint.Explainer {
	return func(a constraint.Assignment) *constraint.Explanation {
		bt := a.TypeOf(base)
		if o, ok := bt.(*types.Object); ok {
			if p, found := o.Lookup(name); found {
				return &constraint.Explanation{
					Message: "property '" + name + "' of " + types.TypeString(bt) + " has conflicting uses",
					Notes:   []string{"property '" + name + "' has type " + types.TypeString(p.Type)},
				}
			}
		}
		return &constraint.Explanation{Message: "no property '" + name + "' on " + types.TypeString(bt)}
	}
}

// Operator explains operands which an operator cannot be applied to.
func Operator(op string, operands ...term.Term) constraint.Explainer {
	return func(a constraint.Assignment) *constraint.Explanation {
		msg := "operator " + op + " cannot be applied to "
		for i, t := range operands {
			if i > 0 {
				msg += " and "
			}
			msg += typeOf(a, t)
		}
		return &constraint.Explanation{Message: msg}
	}
}

// Arity explains a call whose argument count matches no signature of the callee.
func Arity(callee string, ret *term.ReturnTerm) constraint.Explainer {
	return func(a constraint.Assignment) *constraint.Explanation {
		ft := a.TypeOf(ret.Base())
		exp := &constraint.Explanation{
			Message: callee + " called with " + strconv.Itoa(ret.Arity) + " arguments, but has type " + types.TypeString(ft),
		}
		for _, m := range members(ft) {
			if params, _, _, ok := types.Signature(m); ok {
				exp.Notes = append(exp.Notes, "signature "+types.TypeString(m)+" takes "+strconv.Itoa(len(params))+" parameters")
			}
		}
		return exp
	}
}

func members(t types.Type) []types.Type {
	if i, ok := t.(*types.Intersection); ok {
		return i.Types
	}
	return []types.Type{t}
}

// Concreteness explains a value consumed before its object shape is fully known.
func Concreteness(what string, t term.Term) constraint.Explainer {
	return func(a constraint.Assignment) *constraint.Explanation {
		exp := &constraint.Explanation{Message: what + " of type " + typeOf(a, t) + " is not a concrete value"}
		o, _ := a.TypeOf(t).(*types.Object)
		readOnly, readWrite := a.RequiredProperties(t)
		for _, name := range readOnly {
			if o == nil {
				exp.Notes = append(exp.Notes, "missing property '"+name+"'")
			} else if _, found := o.Lookup(name); !found {
				exp.Notes = append(exp.Notes, "missing property '"+name+"'")
			}
		}
		for _, name := range readWrite {
			var p types.Property
			found := false
			if o != nil {
				p, found = o.Lookup(name)
			}
			switch {
			case !found:
				exp.Notes = append(exp.Notes, "missing read-write property '"+name+"'")
			case p.ReadOnly:
				exp.Notes = append(exp.Notes, "property '"+name+"' is read-only")
			}
		}
		return exp
	}
}

// Receiver explains a method called on an object it cannot be attached to.
func Receiver(method string, recv, obj term.Term) constraint.Explainer {
	return func(a constraint.Assignment) *constraint.Explanation {
		e, v := a.TypeOf(recv), a.TypeOf(obj)
		return &constraint.Explanation{
			Message: "method " + method + " requires a receiver of type " + types.TypeString(e) +
				", called on " + types.TypeString(v),
			Notes: Diff(e, v),
		}
	}
}

// New explains a `new` expression applied to a value which is not a constructor.
func New(callee string, t term.Term) constraint.Explainer {
	return func(a constraint.Assignment) *constraint.Explanation {
		return &constraint.Explanation{Message: callee + " is not a constructor: it has type " + typeOf(a, t)}
	}
}

// Branch explains a conditional branch whose type conflicts with the other branch.
func Branch(which string, result, branch term.Term) constraint.Explainer {
	return func(a constraint.Assignment) *constraint.Explanation {
		e, v := a.TypeOf(result), a.TypeOf(branch)
		return &constraint.Explanation{
			Message: which + " branch has type " + types.TypeString(v) + ", incompatible with " + types.TypeString(e),
			Notes:   Diff(e, v),
		}
	}
}
