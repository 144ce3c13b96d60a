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
	"testing"
)

func TestParsePrintRoundTrip(t *testing.T) {
	for _, s := range []string{
		"Integer",
		"Array<Map<String>>",
		"{a: Integer, var b: Float}",
		"(Integer, String) -> Boolean",
		"method(T) -> Integer",
		"method[{x: Float}]() -> Void",
		"new(Float, Float) -> {var x: Float, var y: Float}",
		"new[{f: method() -> Void}]() -> {}",
		"(String) -> Integer & (String, Integer) -> Integer",
		"{a: Integer | {b: String}}",
		"(Integer) -> (Integer) -> Integer",
	} {
		ty, err := Parse(s)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if got := TypeString(ty); got != s {
			t.Fatalf("expected %s, found %s", s, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{"", "Array<", "{a Integer}", "(Integer", "{a: Integer, a: String}", "Integer)"} {
		if _, err := Parse(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestParseSharesVars(t *testing.T) {
	ty := MustParse("(T, Array<T>) -> T").(*Function)
	if ty.Params[0] != ty.Return || ty.Params[1].(*Array).Elem != ty.Return {
		t.Fatalf("expected a single shared type-variable")
	}
}

func TestPropertyMapPersistence(t *testing.T) {
	a := NewObject(Property{Name: "x", Type: Integer, ReadOnly: true})
	b := a.WithProperty(Property{Name: "y", Type: String})
	if a.Props.Len() != 1 || b.Props.Len() != 2 {
		t.Fatalf("expected the original object to be unchanged")
	}
	if names := b.Props.Names(); len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Fatalf("unexpected property order: %v", names)
	}
}

func TestLookupFollowsProto(t *testing.T) {
	proto := NewObject(Property{Name: "f", Type: MustParse("method[{}]() -> Void"), ReadOnly: true})
	obj := NewObject(Property{Name: "x", Type: Integer}).WithProto(proto)
	p, ok := obj.Lookup("f")
	if !ok || !IsMethod(p.Type) {
		t.Fatalf("expected inherited method")
	}
	if _, ok := obj.Lookup("g"); ok {
		t.Fatalf("unexpected property g")
	}
}

func TestSelectArity(t *testing.T) {
	ty := MustParse("(String) -> Integer & (String, Integer) -> Float")
	m, i := SelectArity(ty, 2)
	if i != 1 || TypeString(m) != "(String, Integer) -> Float" {
		t.Fatalf("selected %s at %d", TypeString(m), i)
	}
	if m, _ := SelectArity(ty, 3); m != nil {
		t.Fatalf("expected no member with arity 3")
	}
	if m, i := SelectArity(MustParse("() -> Void"), 0); m == nil || i != -1 {
		t.Fatalf("expected plain function to match")
	}
}

func TestSubstAndOccurrences(t *testing.T) {
	ty := MustParse("{push: method(T) -> Integer, pop: method() -> T, items: Array<T>}")
	v := GenericVars(ty)[0]
	paths := Occurrences(ty, v)
	var got []string
	for _, p := range paths {
		got = append(got, p.String())
	}
	want := []string{"items.elem", "pop.return/0", "push.param0/1"}
	if len(got) != len(want) {
		t.Fatalf("paths: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("paths: %v", got)
		}
	}
	substituted := Subst(ty, v, Float)
	if s := TypeString(substituted); s != "{items: Array<Float>, pop: method() -> Float, push: method(Float) -> Integer}" {
		t.Fatalf("substituted: %s", s)
	}
	if len(GenericVars(substituted)) != 0 {
		t.Fatalf("expected no remaining generic variables")
	}
}

func TestAssignable(t *testing.T) {
	cases := []struct {
		sub, sup string
		ok       bool
	}{
		{"Integer", "Integer", true},
		{"Integer", "Float", false},
		{"Integer", "Any", true},
		{"{a: Integer, b: String}", "{a: Integer}", true},
		{"{a: Integer}", "{a: Integer, b: String}", false},
		{"{var a: Integer}", "{var a: Integer}", true},
		{"{a: Integer}", "{var a: Integer}", false},
		{"{var a: {x: Integer, y: Integer}}", "{var a: {x: Integer}}", false},
		{"{a: {x: Integer, y: Integer}}", "{a: {x: Integer}}", true},
		{"(Integer) -> Void", "(Integer) -> Void", true},
		{"(Integer) -> Void", "(Integer, Integer) -> Void", false},
		{"(String) -> Integer & (Integer) -> Integer", "(Integer) -> Integer", true},
	}
	for _, c := range cases {
		if got := Assignable(MustParse(c.sub), MustParse(c.sup)); got != c.ok {
			t.Fatalf("Assignable(%s, %s) = %v", c.sub, c.sup, got)
		}
	}
}

func TestEnvMember(t *testing.T) {
	env := NewEnv()
	env.Prototypes[ArrayProto] = MustParse("{length: Integer, push: method(T) -> Integer}").(*Object)
	m, ok := env.Member(&Array{Elem: String}, "push")
	if !ok || TypeString(m) != "method(String) -> Integer" {
		t.Fatalf("member: %s", TypeString(m))
	}
	if _, ok := env.Member(&Map{Elem: String}, "push"); ok {
		t.Fatalf("unexpected map member")
	}
	if protos := env.GenericProtos("push"); len(protos) != 1 || protos[0] != ArrayProto {
		t.Fatalf("generic protos: %v", protos)
	}
	if protos := env.GenericProtos("length"); len(protos) != 0 {
		t.Fatalf("length is not generic: %v", protos)
	}
}
