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
	"strconv"

	"github.com/wdamron/protoinfer/types"
)

var (
	_ Derived = (*PropTerm)(nil)
	_ Derived = (*IndexedTerm)(nil)
	_ Derived = (*KeyTerm)(nil)
	_ Derived = (*ParamTerm)(nil)
	_ Derived = (*ReturnTerm)(nil)
	_ Derived = (*ReceiverTerm)(nil)
	_ Derived = (*ProtoTerm)(nil)
	_ Derived = (*ParentTerm)(nil)
	_ Derived = (*OpTerm)(nil)
	_ Derived = (*UnaryTerm)(nil)
)

// PropTerm is the type of a named property of its base: `base.name`.
//
// Own properties of objects are found before properties along the prototype chain;
// members of arrays, maps and strings are found through the builtin environment.
// Unattached methods are attached when read.
type PropTerm struct {
	header
	base    Term
	env     *types.Env
	Name    string
	written bool
}

func (t *PropTerm) Base() Term { return t.base }

// Written reports whether the property has been assigned through.
func (t *PropTerm) Written() bool { return t.written }

func (t *PropTerm) Type() types.Type {
	switch bt := t.base.Type().(type) {
	case *types.Object:
		if p, ok := bt.Lookup(t.Name); ok {
			return types.Attach(p.Type)
		}
		return nil
	case nil, *types.Var:
		return nil
	default:
		if m, ok := t.env.Member(bt, t.Name); ok {
			return types.Attach(m)
		}
		return nil
	}
}

// SetType replaces the property within the base object. Writing to an unknown base
// creates an object with the single property. Builtin members are never replaced.
func (t *PropTerm) SetType(typ types.Type) {
	switch bt := t.base.Type().(type) {
	case *types.Object:
		t.base.SetType(setProperty(bt, t.Name, typ, t.written, 0))
	case nil, *types.Var:
		t.base.SetType(types.NewObject(types.Property{Name: t.Name, Type: typ, ReadOnly: !t.written}))
	}
}

func (t *PropTerm) String() string { return t.base.String() + "." + t.Name }

func setProperty(o *types.Object, name string, typ types.Type, written bool, depth int) *types.Object {
	if p, ok := o.Props.Get(name); ok {
		p.Type = detach(p.Type, typ)
		if written {
			p.ReadOnly = false
		}
		return o.WithProperty(p)
	}
	if proto, ok := o.Proto.(*types.Object); ok && depth < 64 {
		if _, found := proto.Lookup(name); found {
			return o.WithProto(setProperty(proto, name, typ, written, depth+1))
		}
	}
	return o.WithProperty(types.Property{Name: name, Type: typ, ReadOnly: !written})
}

// An attached method written back over an unattached method keeps its receiver.
func detach(prev, next types.Type) types.Type {
	u, ok := prev.(*types.UnattachedMethod)
	if !ok {
		return next
	}
	if m, ok := next.(*types.AttachedMethod); ok {
		return &types.UnattachedMethod{Receiver: u.Receiver, Params: m.Params, Return: m.Return}
	}
	return next
}

// IndexedTerm is the element type of its base: `base[]`.
type IndexedTerm struct {
	header
	base Term
}

func (t *IndexedTerm) Base() Term { return t.base }

func (t *IndexedTerm) Type() types.Type {
	switch bt := t.base.Type().(type) {
	case *types.Array:
		return bt.Elem
	case *types.Map:
		return bt.Elem
	case types.Prim:
		if bt == types.String {
			return types.String
		}
	}
	return nil
}

func (t *IndexedTerm) SetType(typ types.Type) {
	switch t.base.Type().(type) {
	case *types.Array:
		t.base.SetType(&types.Array{Elem: typ})
	case *types.Map:
		t.base.SetType(&types.Map{Elem: typ})
	}
}

func (t *IndexedTerm) String() string { return t.base.String() + "[]" }

// KeyTerm is the key type of its base: Integer for arrays and strings, String for maps.
type KeyTerm struct {
	header
	base Term
}

func (t *KeyTerm) Base() Term { return t.base }

func (t *KeyTerm) Type() types.Type {
	switch bt := t.base.Type().(type) {
	case *types.Array:
		return types.Integer
	case *types.Map:
		return types.String
	case types.Prim:
		if bt == types.String {
			return types.Integer
		}
	}
	return nil
}

// SetType decides the shape of an unknown base: an Integer key makes it an array,
// a String key makes it a map.
func (t *KeyTerm) SetType(typ types.Type) {
	if !types.Unknown(t.base.Type()) {
		return
	}
	switch typ {
	case types.Integer:
		t.base.SetType(&types.Array{})
	case types.String:
		t.base.SetType(&types.Map{})
	}
}

func (t *KeyTerm) String() string { return "key(" + t.base.String() + ")" }

// Select the member of fn's type which accepts arity parameters, along with a function
// which rebuilds fn's type with that member replaced.
func selectCallable(fn Term, arity int) (types.Type, func(types.Type) types.Type) {
	whole := fn.Type()
	m, idx := types.SelectArity(whole, arity)
	if m == nil {
		return nil, nil
	}
	if idx < 0 {
		return m, func(r types.Type) types.Type { return r }
	}
	inter := whole.(*types.Intersection)
	return m, func(r types.Type) types.Type { return inter.ReplaceMember(idx, r) }
}

// ParamTerm is the type of the i-th parameter of the member of fn which accepts
// arity parameters.
type ParamTerm struct {
	header
	fn    Term
	Index int
	Arity int
}

func (t *ParamTerm) Base() Term { return t.fn }

func (t *ParamTerm) Type() types.Type {
	m, _ := selectCallable(t.fn, t.Arity)
	params, _, _, _ := types.Signature(m)
	if t.Index < len(params) {
		return params[t.Index]
	}
	return nil
}

// SetType replaces the parameter within the selected member. Writing to an unknown
// function creates a plain function of the term's arity.
func (t *ParamTerm) SetType(typ types.Type) {
	m, rebuild := selectCallable(t.fn, t.Arity)
	if m == nil {
		if types.Unknown(t.fn.Type()) {
			params := make([]types.Type, t.Arity)
			params[t.Index] = typ
			t.fn.SetType(&types.Function{Params: params})
		}
		return
	}
	params, ret, recv, _ := types.Signature(m)
	t.fn.SetType(rebuild(types.WithSignature(m, types.ReplaceAt(params, t.Index, typ), ret, recv)))
}

func (t *ParamTerm) String() string {
	return "param(" + t.fn.String() + ", " + strconv.Itoa(t.Index) + "/" + strconv.Itoa(t.Arity) + ")"
}

// ReturnTerm is the return type of the member of fn which accepts arity parameters.
type ReturnTerm struct {
	header
	fn    Term
	Arity int
}

func (t *ReturnTerm) Base() Term { return t.fn }

func (t *ReturnTerm) Type() types.Type {
	m, _ := selectCallable(t.fn, t.Arity)
	_, ret, _, _ := types.Signature(m)
	return ret
}

func (t *ReturnTerm) SetType(typ types.Type) {
	m, rebuild := selectCallable(t.fn, t.Arity)
	if m == nil {
		if types.Unknown(t.fn.Type()) {
			t.fn.SetType(&types.Function{Params: make([]types.Type, t.Arity), Return: typ})
		}
		return
	}
	params, _, recv, _ := types.Signature(m)
	t.fn.SetType(rebuild(types.WithSignature(m, params, typ, recv)))
}

func (t *ReturnTerm) String() string {
	return "ret(" + t.fn.String() + "/" + strconv.Itoa(t.Arity) + ")"
}

// ReceiverTerm is the receiver type of the member of fn which accepts arity parameters.
// The receiver of an unattached method is explicit; the receiver of an attached method
// read through a property is the object it was read from.
type ReceiverTerm struct {
	header
	fn    Term
	Arity int
}

func (t *ReceiverTerm) Base() Term { return t.fn }

func (t *ReceiverTerm) Type() types.Type {
	m, _ := selectCallable(t.fn, t.Arity)
	switch m := m.(type) {
	case *types.UnattachedMethod:
		return m.Receiver
	case *types.AttachedMethod:
		if p, ok := t.fn.(*PropTerm); ok {
			return p.base.Type()
		}
	}
	return nil
}

func (t *ReceiverTerm) SetType(typ types.Type) {
	m, rebuild := selectCallable(t.fn, t.Arity)
	switch m := m.(type) {
	case *types.UnattachedMethod:
		t.fn.SetType(rebuild(&types.UnattachedMethod{Receiver: typ, Params: m.Params, Return: m.Return}))
	case nil:
		if types.Unknown(t.fn.Type()) {
			t.fn.SetType(&types.UnattachedMethod{Receiver: typ, Params: make([]types.Type, t.Arity)})
		}
	}
}

func (t *ReceiverTerm) String() string {
	return "recv(" + t.fn.String() + "/" + strconv.Itoa(t.Arity) + ")"
}

// ProtoTerm is the prototype object of a constructor.
type ProtoTerm struct {
	header
	ctor Term
}

func (t *ProtoTerm) Base() Term { return t.ctor }

func (t *ProtoTerm) Type() types.Type {
	if c, ok := t.ctor.Type().(*types.Constructor); ok {
		return c.Proto
	}
	return nil
}

func (t *ProtoTerm) SetType(typ types.Type) {
	switch c := t.ctor.Type().(type) {
	case *types.Constructor:
		t.ctor.SetType(&types.Constructor{Params: c.Params, Return: c.Return, Proto: typ})
	case nil, *types.Var:
		t.ctor.SetType(&types.Constructor{Proto: typ})
	}
}

func (t *ProtoTerm) String() string { return "proto(" + t.ctor.String() + ")" }

// ParentTerm is the prototype of an object: the parent along its prototype chain.
type ParentTerm struct {
	header
	obj Term
}

func (t *ParentTerm) Base() Term { return t.obj }

func (t *ParentTerm) Type() types.Type {
	if o, ok := t.obj.Type().(*types.Object); ok {
		return o.Proto
	}
	return nil
}

func (t *ParentTerm) SetType(typ types.Type) {
	switch o := t.obj.Type().(type) {
	case *types.Object:
		t.obj.SetType(o.WithProto(typ))
	case nil, *types.Var:
		t.obj.SetType(&types.Object{Proto: typ})
	}
}

func (t *ParentTerm) String() string { return "parent(" + t.obj.String() + ")" }

// OpTerm is the result type of a binary operator applied to two operands.
// Writes are ignored.
type OpTerm struct {
	header
	Op   string
	L, R Term
}

func (t *OpTerm) Base() Term             { return t.L }
func (t *OpTerm) Type() types.Type       { return BinaryResult(t.Op, t.L.Type(), t.R.Type()) }
func (t *OpTerm) SetType(typ types.Type) {}
func (t *OpTerm) String() string         { return "(" + t.L.String() + " " + t.Op + " " + t.R.String() + ")" }

// UnaryTerm is the result type of a unary operator applied to an operand.
// Writes are ignored.
type UnaryTerm struct {
	header
	Op string
	X  Term
}

func (t *UnaryTerm) Base() Term             { return t.X }
func (t *UnaryTerm) Type() types.Type       { return UnaryResult(t.Op, t.X.Type()) }
func (t *UnaryTerm) SetType(typ types.Type) {}
func (t *UnaryTerm) String() string         { return "(" + t.Op + " " + t.X.String() + ")" }

// BinaryResult computes the result type of a binary operator, or nil when the operand
// types do not yet determine it.
func BinaryResult(op string, l, r types.Type) types.Type {
	switch op {
	case "==", "!=", "===", "!==", "<", ">", "<=", ">=", "instanceof", "in":
		return types.Boolean
	case "&", "|", "^", "<<", ">>", ">>>":
		return types.Integer
	case "+":
		if l == types.String || r == types.String {
			return types.String
		}
		return arithmetic(l, r)
	case "-", "*", "%":
		return arithmetic(l, r)
	case "/":
		if types.IsNumeric(l) && types.IsNumeric(r) {
			return types.Float
		}
	}
	return nil
}

func arithmetic(l, r types.Type) types.Type {
	if !types.IsNumeric(l) || !types.IsNumeric(r) {
		return nil
	}
	if l == types.Float || r == types.Float {
		return types.Float
	}
	return types.Integer
}

// UnaryResult computes the result type of a unary operator, or nil when the operand
// type does not yet determine it.
func UnaryResult(op string, x types.Type) types.Type {
	switch op {
	case "!", "delete":
		return types.Boolean
	case "typeof":
		return types.String
	case "void":
		return types.Void
	case "~":
		return types.Integer
	case "-", "+", "++", "--":
		if types.IsNumeric(x) {
			return x
		}
	}
	return nil
}
