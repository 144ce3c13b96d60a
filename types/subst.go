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
	"strconv"
	"strings"
)

// Subst replaces every occurrence of the type-variable v within t by r. Parts of t
// which do not contain v are shared with the result.
func Subst(t Type, v *Var, r Type) Type {
	switch t := t.(type) {
	case nil, Prim:
		return t

	case *Var:
		if t == v || (t.Id == v.Id && t.Name == v.Name) {
			return r
		}
		return t

	case *Array:
		return &Array{Elem: Subst(t.Elem, v, r)}

	case *Map:
		return &Map{Elem: Subst(t.Elem, v, r)}

	case *Object:
		return &Object{
			Props: t.Props.Map(func(pt Type) Type { return Subst(pt, v, r) }),
			Proto: Subst(t.Proto, v, r),
		}

	case *Function:
		return &Function{Params: substList(t.Params, v, r), Return: Subst(t.Return, v, r)}

	case *AttachedMethod:
		return &AttachedMethod{Params: substList(t.Params, v, r), Return: Subst(t.Return, v, r)}

	case *UnattachedMethod:
		return &UnattachedMethod{
			Receiver: Subst(t.Receiver, v, r),
			Params:   substList(t.Params, v, r),
			Return:   Subst(t.Return, v, r),
		}

	case *Constructor:
		return &Constructor{
			Params: substList(t.Params, v, r),
			Return: Subst(t.Return, v, r),
			Proto:  Subst(t.Proto, v, r),
		}

	case *Intersection:
		return &Intersection{Types: substList(t.Types, v, r)}
	}
	panic("unexpected type " + t.TypeName())
}

func substList(ts []Type, v *Var, r Type) []Type {
	if ts == nil {
		return nil
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = Subst(t, v, r)
	}
	return out
}

// GenericVars returns the named type-variables within t, in order of first occurrence.
func GenericVars(t Type) []*Var {
	var vars []*Var
	walkVars(t, func(v *Var) {
		if v.Name == "" {
			return
		}
		for _, existing := range vars {
			if existing.Name == v.Name {
				return
			}
		}
		vars = append(vars, v)
	}, 0)
	return vars
}

func walkVars(t Type, f func(*Var), depth int) {
	if depth > 64 {
		return
	}
	switch t := t.(type) {
	case *Var:
		f(t)
	case *Array:
		walkVars(t.Elem, f, depth+1)
	case *Map:
		walkVars(t.Elem, f, depth+1)
	case *Object:
		t.Props.Range(func(p Property) bool {
			walkVars(p.Type, f, depth+1)
			return true
		})
		walkVars(t.Proto, f, depth+1)
	case *Function, *AttachedMethod, *UnattachedMethod, *Constructor:
		params, ret, recv, _ := Signature(t)
		walkVars(recv, f, depth+1)
		for _, p := range params {
			walkVars(p, f, depth+1)
		}
		walkVars(ret, f, depth+1)
		if c, ok := t.(*Constructor); ok {
			walkVars(c.Proto, f, depth+1)
		}
	case *Intersection:
		for _, m := range t.Types {
			walkVars(m, f, depth+1)
		}
	}
}

// StepKind identifies one projection within a Path.
type StepKind uint8

const (
	StepParam StepKind = iota
	StepReturn
	StepReceiver
	StepElem
	StepKey
	StepProp
	StepProto
	StepParent
)

// Step is a single projection from a type into one of its components.
// Index and Arity apply to StepParam; Arity also applies to StepReturn and StepReceiver.
// Name applies to StepProp.
type Step struct {
	Kind  StepKind
	Index int
	Arity int
	Name  string
}

// Path is a sequence of projections leading from a type to one of its components.
type Path []Step

func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p {
		if i > 0 {
			sb.WriteByte('.')
		}
		switch s.Kind {
		case StepParam:
			sb.WriteString("param" + strconv.Itoa(s.Index) + "/" + strconv.Itoa(s.Arity))
		case StepReturn:
			sb.WriteString("return/" + strconv.Itoa(s.Arity))
		case StepReceiver:
			sb.WriteString("receiver/" + strconv.Itoa(s.Arity))
		case StepElem:
			sb.WriteString("elem")
		case StepKey:
			sb.WriteString("key")
		case StepProp:
			sb.WriteString(s.Name)
		case StepProto:
			sb.WriteString("prototype")
		case StepParent:
			sb.WriteString("parent")
		}
	}
	return sb.String()
}

// Occurrences lists the paths at which the type-variable v occurs within t.
func Occurrences(t Type, v *Var) []Path {
	var paths []Path
	occurrences(t, v, nil, &paths, 0)
	return paths
}

func occurrences(t Type, v *Var, prefix Path, paths *[]Path, depth int) {
	if depth > 64 {
		return
	}
	at := func(s Step) Path {
		p := make(Path, len(prefix)+1)
		copy(p, prefix)
		p[len(prefix)] = s
		return p
	}
	switch t := t.(type) {
	case *Var:
		if t == v || (t.Id == v.Id && t.Name == v.Name) {
			p := make(Path, len(prefix))
			copy(p, prefix)
			*paths = append(*paths, p)
		}

	case *Array:
		occurrences(t.Elem, v, at(Step{Kind: StepElem}), paths, depth+1)

	case *Map:
		occurrences(t.Elem, v, at(Step{Kind: StepElem}), paths, depth+1)

	case *Object:
		t.Props.Range(func(p Property) bool {
			occurrences(p.Type, v, at(Step{Kind: StepProp, Name: p.Name}), paths, depth+1)
			return true
		})
		occurrences(t.Proto, v, at(Step{Kind: StepParent}), paths, depth+1)

	case *Function, *AttachedMethod, *UnattachedMethod, *Constructor:
		params, ret, recv, _ := Signature(t)
		arity := len(params)
		if recv != nil {
			occurrences(recv, v, at(Step{Kind: StepReceiver, Arity: arity}), paths, depth+1)
		}
		for i, p := range params {
			occurrences(p, v, at(Step{Kind: StepParam, Index: i, Arity: arity}), paths, depth+1)
		}
		occurrences(ret, v, at(Step{Kind: StepReturn, Arity: arity}), paths, depth+1)
		if c, ok := t.(*Constructor); ok {
			occurrences(c.Proto, v, at(Step{Kind: StepProto}), paths, depth+1)
		}

	case *Intersection:
		// Members are distinguished by arity within each step.
		for _, m := range t.Types {
			occurrences(m, v, prefix, paths, depth+1)
		}
	}
}
