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

// Type is the base interface for all types. The set of implementations is closed:
// Prim, *Array, *Map, *Object, *Function, *AttachedMethod, *UnattachedMethod,
// *Constructor, *Intersection and *Var. A nil Type is a type which is not yet known.
type Type interface {
	TypeName() string
	isType()
}

var (
	_ Type = Prim(0)
	_ Type = (*Array)(nil)
	_ Type = (*Map)(nil)
	_ Type = (*Object)(nil)
	_ Type = (*Function)(nil)
	_ Type = (*AttachedMethod)(nil)
	_ Type = (*UnattachedMethod)(nil)
	_ Type = (*Constructor)(nil)
	_ Type = (*Intersection)(nil)
	_ Type = (*Var)(nil)
)

// Primitive type
type Prim uint8

const (
	Any Prim = iota
	Void
	Boolean
	Integer
	Float
	String
)

var primNames = [...]string{"Any", "Void", "Boolean", "Integer", "Float", "String"}

// Array type: `Array<T>`
type Array struct {
	Elem Type
}

// Homogeneous map type, keyed by strings: `Map<T>`
type Map struct {
	Elem Type
}

// Object type: `{a: T, var b: U}`. Proto is the prototype object, or nil.
type Object struct {
	Props PropertyMap
	Proto Type
}

// Plain function type: `(A, B) -> R`
type Function struct {
	Params []Type
	Return Type
}

// Method bound to the object it was read from: `method(A) -> R`
type AttachedMethod struct {
	Params []Type
	Return Type
}

// Method independent of any object, with an explicit receiver: `method[Recv](A) -> R`
type UnattachedMethod struct {
	Receiver Type
	Params   []Type
	Return   Type
}

// Constructor type: `new(A) -> R`. Return is the constructed object; Proto is the
// object assigned to the constructor's prototype property.
type Constructor struct {
	Params []Type
	Return Type
	Proto  Type
}

// Finite set of alternative signatures for one name: `A & B`
type Intersection struct {
	Types []Type
}

// Type-variable. Name is set for generic parameters of builtin declarations.
type Var struct {
	Id   int
	Name string
}

func (t Prim) TypeName() string {
	if int(t) < len(primNames) {
		return primNames[t]
	}
	return "Prim"
}
func (t *Array) TypeName() string            { return "Array" }
func (t *Map) TypeName() string              { return "Map" }
func (t *Object) TypeName() string           { return "Object" }
func (t *Function) TypeName() string         { return "Function" }
func (t *AttachedMethod) TypeName() string   { return "AttachedMethod" }
func (t *UnattachedMethod) TypeName() string { return "UnattachedMethod" }
func (t *Constructor) TypeName() string      { return "Constructor" }
func (t *Intersection) TypeName() string     { return "Intersection" }
func (t *Var) TypeName() string              { return "Var" }

func (Prim) isType()              {}
func (*Array) isType()            {}
func (*Map) isType()              {}
func (*Object) isType()           {}
func (*Function) isType()         {}
func (*AttachedMethod) isType()   {}
func (*UnattachedMethod) isType() {}
func (*Constructor) isType()      {}
func (*Intersection) isType()     {}
func (*Var) isType()              {}

// NewObject creates an object type from a list of properties.
func NewObject(props ...Property) *Object {
	m := EmptyPropertyMap
	for _, p := range props {
		m = m.Set(p)
	}
	return &Object{Props: m}
}

// Lookup finds a property on the object or along its prototype chain.
func (t *Object) Lookup(name string) (Property, bool) {
	seen := 0
	for o := t; o != nil && seen < 64; seen++ {
		if p, ok := o.Props.Get(name); ok {
			return p, true
		}
		next, _ := o.Proto.(*Object)
		o = next
	}
	return Property{}, false
}

// WithProperty returns a copy of the object with p set as an own property.
func (t *Object) WithProperty(p Property) *Object {
	return &Object{Props: t.Props.Set(p), Proto: t.Proto}
}

// WithProto returns a copy of the object with its prototype replaced.
func (t *Object) WithProto(proto Type) *Object {
	return &Object{Props: t.Props, Proto: proto}
}

// Unknown reports whether t is not yet known: nil or an unbound type-variable.
func Unknown(t Type) bool {
	switch t.(type) {
	case nil, *Var:
		return true
	}
	return false
}

// IsNumeric reports whether t is Integer or Float.
func IsNumeric(t Type) bool { return t == Integer || t == Float }

// IsMethod reports whether t is an attached or unattached method.
func IsMethod(t Type) bool {
	switch t.(type) {
	case *AttachedMethod, *UnattachedMethod:
		return true
	}
	return false
}

// IsCallable reports whether t may be called.
func IsCallable(t Type) bool {
	switch t := t.(type) {
	case *Function, *AttachedMethod, *UnattachedMethod, *Constructor:
		return true
	case *Intersection:
		for _, m := range t.Types {
			if !IsCallable(m) {
				return false
			}
		}
		return len(t.Types) > 0
	}
	return false
}

// Signature returns the parameters, return type and explicit receiver of a callable type.
func Signature(t Type) (params []Type, ret Type, recv Type, ok bool) {
	switch t := t.(type) {
	case *Function:
		return t.Params, t.Return, nil, true
	case *AttachedMethod:
		return t.Params, t.Return, nil, true
	case *UnattachedMethod:
		return t.Params, t.Return, t.Receiver, true
	case *Constructor:
		return t.Params, t.Return, nil, true
	}
	return nil, nil, nil, false
}

// WithSignature returns a copy of the callable type t with its parameters, return type
// and receiver replaced. The receiver is ignored unless t is an UnattachedMethod.
func WithSignature(t Type, params []Type, ret Type, recv Type) Type {
	switch t := t.(type) {
	case *Function:
		return &Function{Params: params, Return: ret}
	case *AttachedMethod:
		return &AttachedMethod{Params: params, Return: ret}
	case *UnattachedMethod:
		return &UnattachedMethod{Receiver: recv, Params: params, Return: ret}
	case *Constructor:
		return &Constructor{Params: params, Return: ret, Proto: t.Proto}
	}
	panic("not a callable type: " + t.TypeName())
}

// SelectArity returns the callable member of t which accepts exactly arity parameters.
// For an Intersection, the index of the selected member is also returned; otherwise
// the index is -1. A nil type is returned when no member matches.
func SelectArity(t Type, arity int) (Type, int) {
	switch t := t.(type) {
	case *Intersection:
		for i, m := range t.Types {
			if params, _, _, ok := Signature(m); ok && len(params) == arity {
				return m, i
			}
		}
		return nil, -1
	case nil:
		return nil, -1
	}
	if params, _, _, ok := Signature(t); ok && len(params) == arity {
		return t, -1
	}
	return nil, -1
}

// ReplaceMember returns a copy of the intersection with the member at index i replaced.
func (t *Intersection) ReplaceMember(i int, m Type) *Intersection {
	ts := make([]Type, len(t.Types))
	copy(ts, t.Types)
	ts[i] = m
	return &Intersection{Types: ts}
}

// Attach converts an unattached method read through an object into an attached method.
func Attach(t Type) Type {
	if m, ok := t.(*UnattachedMethod); ok {
		return &AttachedMethod{Params: m.Params, Return: m.Return}
	}
	return t
}

// ReplaceAt returns a copy of ts with the element at index i replaced.
func ReplaceAt(ts []Type, i int, t Type) []Type {
	out := make([]Type, len(ts))
	copy(out, ts)
	out[i] = t
	return out
}
