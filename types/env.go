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

// Builtin prototype names known to Env.
const (
	ArrayProto  = "Array"
	MapProto    = "Map"
	StringProto = "String"
)

// ElemVarName names the generic element type-variable within builtin prototypes.
const ElemVarName = "T"

// Env is the builtin environment: types of names bound outside the program, and
// member types of builtin values.
//
// Types within Globals may contain named type-variables; these are generic parameters
// which are substituted once per use. The Array and Map prototypes refer to their
// element type through the type-variable named ElemVarName.
type Env struct {
	Globals    map[string]Type
	Prototypes map[string]*Object
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{Globals: make(map[string]Type), Prototypes: make(map[string]*Object)}
}

// Add declares a global name.
func (e *Env) Add(name string, t Type) { e.Globals[name] = t }

// Lookup returns the declared type of a global name.
func (e *Env) Lookup(name string) (Type, bool) {
	if e == nil {
		return nil, false
	}
	t, ok := e.Globals[name]
	return t, ok
}

// ProtoName returns the name of the builtin prototype for a base type, if any.
func ProtoName(base Type) string {
	switch base.(type) {
	case *Array:
		return ArrayProto
	case *Map:
		return MapProto
	}
	if base == String {
		return StringProto
	}
	return ""
}

// Member returns the type of a member of a builtin value, with the element
// type-variable replaced by the element type of base.
func (e *Env) Member(base Type, name string) (Type, bool) {
	if e == nil {
		return nil, false
	}
	protoName := ProtoName(base)
	if protoName == "" {
		return nil, false
	}
	proto, ok := e.Prototypes[protoName]
	if !ok {
		return nil, false
	}
	prop, ok := proto.Lookup(name)
	if !ok {
		return nil, false
	}
	switch base := base.(type) {
	case *Array:
		return substElem(prop.Type, base.Elem), true
	case *Map:
		return substElem(prop.Type, base.Elem), true
	}
	return prop.Type, true
}

// GenericMember returns the declared type of a member of a builtin prototype, along with
// the element type-variable it refers to. Only members which refer to the element type
// are returned.
func (e *Env) GenericMember(protoName, name string) (Type, *Var, bool) {
	if e == nil {
		return nil, nil, false
	}
	proto, ok := e.Prototypes[protoName]
	if !ok {
		return nil, nil, false
	}
	prop, ok := proto.Lookup(name)
	if !ok {
		return nil, nil, false
	}
	for _, v := range GenericVars(prop.Type) {
		if v.Name == ElemVarName {
			return prop.Type, v, true
		}
	}
	return nil, nil, false
}

// GenericProtos returns the names of generic builtin prototypes which declare a member.
func (e *Env) GenericProtos(name string) []string {
	var names []string
	for _, protoName := range []string{ArrayProto, MapProto} {
		if _, _, ok := e.GenericMember(protoName, name); ok {
			names = append(names, protoName)
		}
	}
	return names
}

func substElem(t Type, elem Type) Type {
	for _, v := range GenericVars(t) {
		if v.Name == ElemVarName {
			t = Subst(t, v, elem)
		}
	}
	return t
}
