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

package protoinfer

import (
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	. "github.com/wdamron/protoinfer/construct"

	"github.com/wdamron/protoinfer/ast"
	"github.com/wdamron/protoinfer/constraint"
	"github.com/wdamron/protoinfer/diagnostics"
	"github.com/wdamron/protoinfer/term"
	"github.com/wdamron/protoinfer/types"
)

func generate(t *testing.T, env *types.Env, body ...ast.Stmt) *Result {
	t.Helper()
	r, err := NewGenerator(env, nil).Generate(&ast.Program{Body: body})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func constraintStrings(r *Result) []string {
	var out []string
	for _, c := range r.Constraints.All() {
		out = append(out, c.String())
	}
	return out
}

func expectConstraints(t *testing.T, r *Result, want ...string) {
	t.Helper()
	have := make(map[string]bool)
	for _, s := range constraintStrings(r) {
		have[s] = true
	}
	for _, s := range want {
		if !have[s] {
			t.Fatalf("missing constraint %s in:\n%s", s, strings.Join(constraintStrings(r), "\n"))
		}
	}
}

func expectNoConstraint(t *testing.T, r *Result, substr string) {
	t.Helper()
	for _, s := range constraintStrings(r) {
		if strings.Contains(s, substr) {
			t.Fatalf("unexpected constraint %s", s)
		}
	}
}

// Find the terms on the left of equalities whose right operand prints as right.
func equatedTo(r *Result, kind term.Kind, right string) []term.Term {
	var ts []term.Term
	for _, c := range r.Constraints.All() {
		if c.Kind == constraint.TypeEquality && c.Left.Kind() == kind && c.Right.String() == right {
			ts = append(ts, c.Left)
		}
	}
	return ts
}

func TestCopyAndNullEquality(t *testing.T) {
	r := generate(t, nil,
		Var(1, "x", Num(1, "1")),
		Var(2, "y", Null(2)),
		Var(3, "z", Num(3, "2.5")),
	)
	expectConstraints(t, r,
		"TypeEquality(expr(Literal@1), const(Integer))",
		"SubType(expr(Literal@1), decl(x@1))",
		"Concrete(expr(Literal@1))",
		"TypeEquality(decl(y@2), expr(Literal@2))",
		"TypeEquality(expr(Literal@3), const(Float))",
	)
	expectNoConstraint(t, r, "SubType(expr(Literal@2)")
	expectNoConstraint(t, r, "Concrete(expr(Literal@2))")
}

func TestNameAndPropertyIdentity(t *testing.T) {
	ref2, ref3 := Ident(2, "o"), Ident(3, "o")
	lit := Object(1, Prop("a", Num(1, "1")))
	r := generate(t, nil,
		Var(1, "o", lit),
		Expr(2, Member(2, ref2, "a")),
		Expr(3, Member(3, ref3, "a")),
	)
	decl := r.Factory.FindOrCreateNameDeclaration(ref2)
	if decl != r.Factory.FindOrCreateNameDeclaration(ref3) {
		t.Fatalf("expected one term per declaration")
	}
	if lines := decl.Lines(); len(lines) != 3 || lines[0] != 1 || lines[2] != 3 {
		t.Fatalf("unexpected declaration lines: %v", lines)
	}
	if r.Factory.FindOrCreatePropertyAccess(decl, "a") != r.Factory.FindOrCreatePropertyAccess(decl, "a") {
		t.Fatalf("expected memoized property access")
	}
	count := 0
	for _, tm := range r.Terms() {
		if tm.String() == "decl(o@1).a" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected a single property access term, found %d", count)
	}
	expectConstraints(t, r,
		"SubType(expr(Literal@1), object(ObjectLit@1).a)",
		"SubType(object(ObjectLit@1), decl(o@1))",
		"TypeEquality(expr(Member@2), decl(o@1).a)",
		"TypeEquality(expr(Member@3), decl(o@1).a)",
	)
	obj, ok := r.TermOf(lit).Type().(*types.Object)
	if !ok {
		t.Fatalf("expected object literal type: %s", spew.Sdump(r.TermOf(lit).Type()))
	}
	if p, found := obj.Props.Get("a"); !found || !p.ReadOnly {
		t.Fatalf("expected read-only property a: %s", types.TypeString(obj))
	}
}

func TestParamsDistinctByArity(t *testing.T) {
	f := Func(1, "f", []string{"a"}, Return(1, Ident(1, "a")))
	callee := Ident(2, "f")
	r := generate(t, nil,
		FuncDecl(f),
		Expr(2, Call(2, callee, Num(2, "1"))),
		Expr(3, Call(3, Ident(3, "f"), Num(3, "1"), Num(3, "2"))),
	)
	expectConstraints(t, r,
		"TypeEquality(decl(f@1), expr(Function@1))",
		"TypeEquality(decl(a@1), param(expr(Function@1), 0/1))",
		"SubType(expr(Ident@1), ret(expr(Function@1)/1))",
		"TypeEquality(expr(Call@2), ret(decl(f@1)/1))",
		"CheckArity(ret(decl(f@1)/1))",
		"SubType(expr(Literal@2), param(decl(f@1), 0/1))",
		"CheckArity(ret(decl(f@1)/2))",
		"SubType(expr(Literal@3), param(decl(f@1), 0/2))",
		"SubType(expr(Literal@3), param(decl(f@1), 1/2))",
	)
	expectNoConstraint(t, r, "const(Void)")
	decl := r.Factory.FindOrCreateNameDeclaration(callee)
	if r.Factory.FindOrCreateFunctionParam(decl, 0, 1) == r.Factory.FindOrCreateFunctionParam(decl, 0, 2) {
		t.Fatalf("expected parameters of different arities to be distinct")
	}
	if _, ok := r.TermOf(f).Type().(*types.Function); !ok {
		t.Fatalf("expected plain function: %s", types.TypeString(r.TermOf(f).Type()))
	}
}

func TestVoidFunction(t *testing.T) {
	r := generate(t, nil, FuncDecl(Func(1, "f", nil)))
	expectConstraints(t, r, "TypeEquality(ret(expr(Function@1)/0), const(Void))")
}

func TestConstructorAndNew(t *testing.T) {
	// function Point(x, y) {
	//   this.x = x;
	//   this.y = y;
	// }
	// var p = new Point(1, 2);
	// p.z;
	fn := Func(1, "Point", []string{"x", "y"},
		Expr(2, Assign(2, Member(2, This(2), "x"), Ident(2, "x"))),
		Expr(3, Assign(3, Member(3, This(3), "y"), Ident(3, "y"))),
	)
	pRef := Ident(6, "p")
	read := Member(6, pRef, "z")
	r := generate(t, nil,
		FuncDecl(fn),
		Var(5, "p", New(5, Ident(5, "Point"), Num(5, "1"), Num(5, "2"))),
		Expr(6, read),
	)

	ctor, ok := r.TermOf(fn).Type().(*types.Constructor)
	if !ok || len(ctor.Params) != 2 {
		t.Fatalf("expected constructor: %s", types.TypeString(r.TermOf(fn).Type()))
	}
	obj := ctor.Return.(*types.Object)
	for _, name := range []string{"x", "y"} {
		if p, found := obj.Props.Get(name); !found || p.ReadOnly {
			t.Fatalf("expected read-write property %s: %s", name, types.TypeString(obj))
		}
	}

	expectConstraints(t, r,
		"TypeEquality(decl(Point@1), expr(Function@1))",
		"TypeEquality(this(Point@1), ret(expr(Function@1)/2))",
		"SubType(expr(Ident@2), this(Point@1).x)",
		"SubType(expr(Ident@3), this(Point@1).y)",
		"TypeEquality(expr(New@5), ret(decl(Point@1)/2))",
		"CheckArity(ret(decl(Point@1)/2))",
		"SubType(expr(New@5), decl(p@5))",
		"Concrete(expr(New@5))",
	)

	var shape term.Term
	for _, c := range r.Constraints.All() {
		if c.Kind == constraint.SubType && c.Left.String() == "decl(Point@1)" && c.Right.Kind() == term.TypeVariable {
			shape = c.Right
		}
	}
	if shape == nil {
		t.Fatalf("missing constructor shape:\n%s", strings.Join(constraintStrings(r), "\n"))
	}
	if c, ok := shape.Type().(*types.Constructor); !ok || len(c.Params) != 2 {
		t.Fatalf("unexpected constructor shape %s", types.TypeString(shape.Type()))
	}

	// A solver would find p to be {var x, var y}, without z.
	decl := r.Factory.FindOrCreateNameDeclaration(pRef)
	prop := r.Factory.FindOrCreatePropertyAccess(decl, "z")
	c := r.Constraints.Find(constraint.TypeEquality, r.TermOf(read), prop)
	if c == nil {
		t.Fatalf("missing property access constraint")
	}
	a := &diagnostics.MapAssignment{Types: map[term.Term]types.Type{
		decl: types.MustParse("{var x: Integer, var y: Integer}"),
	}}
	if msg := c.Explain(a).Message; msg != "no property 'z' on {var x: Integer, var y: Integer}" {
		t.Fatalf("unexpected explanation: %s", msg)
	}
	if lines := r.Lines(c); len(lines) != 1 || lines[0] != 6 {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestPrototypeAssignment(t *testing.T) {
	// function Point(x) { this.x = x; }
	// Point.prototype = { norm: function() { return this.x; } };
	// var p = new Point(1);
	// p.norm();
	fn := Func(1, "Point", []string{"x"},
		Expr(1, Assign(1, Member(1, This(1), "x"), Ident(1, "x"))))
	norm := Func(2, "", nil, Return(2, Member(2, This(2), "x")))
	r := generate(t, nil,
		FuncDecl(fn),
		Expr(2, Assign(2, Member(2, Ident(2, "Point"), "prototype"), Object(2, Prop("norm", norm)))),
		Var(3, "p", New(3, Ident(3, "Point"), Num(3, "1"))),
		Expr(4, Call(4, Member(4, Ident(4, "p"), "norm"))),
	)
	expectConstraints(t, r,
		"SubType(object(ObjectLit@2), proto(decl(Point@1)))",
		"TypeEquality(parent(ret(decl(Point@1)/1)), proto(decl(Point@1)))",
		"TypeEquality(this(function@2), recv(expr(Function@2)/0))",
		"Concrete(decl(p@3))",
		"TypeEquality(recv(decl(p@3).norm/0), decl(p@3))",
	)
	if _, ok := r.TermOf(norm).Type().(*types.UnattachedMethod); !ok {
		t.Fatalf("expected method: %s", types.TypeString(r.TermOf(norm).Type()))
	}
}

func TestPrototypePlacement(t *testing.T) {
	protoAssign := func(ln int) ast.Stmt {
		return Expr(ln, Assign(ln, Member(ln, Ident(ln, "Point"), "prototype"), Object(ln)))
	}

	_, err := NewGenerator(nil, nil).Generate(&ast.Program{Body: []ast.Stmt{
		FuncDecl(Func(1, "Point", nil)),
		Empty(2),
		protoAssign(3),
		protoAssign(4),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = NewGenerator(nil, nil).Generate(&ast.Program{Body: []ast.Stmt{
		FuncDecl(Func(1, "Point", nil)),
		Var(2, "a", Num(2, "1")),
		protoAssign(3),
	}})
	if err == nil || err.Error() != "line 3: prototype of Point must be assigned immediately after its declaration" {
		t.Fatalf("expected placement error, found %v", err)
	}
}

func TestMethodAndFunctionCalls(t *testing.T) {
	f := Func(1, "", nil, Return(1, Member(1, This(1), "x")))
	g := Func(1, "", []string{"y"}, Return(1, Ident(1, "y")))
	r := generate(t, nil,
		Var(1, "o", Object(1, Prop("f", f), Prop("g", g), Prop("x", Num(1, "1")))),
		Expr(2, Call(2, Member(2, Ident(2, "o"), "f"))),
		Expr(3, Call(3, Member(3, Ident(3, "o"), "g"), Num(3, "1"))),
	)
	expectConstraints(t, r,
		"Concrete(decl(o@1))",
		"TypeEquality(recv(decl(o@1).f/0), decl(o@1))",
		"SubType(expr(Literal@3), param(decl(o@1).g, 0/1))",
	)
	expectNoConstraint(t, r, "recv(decl(o@1).g")
}

func TestBuiltinGenerics(t *testing.T) {
	env := types.NewEnv()
	env.Add("print", types.MustParse("(T) -> Void"))
	env.Prototypes[types.ArrayProto] = types.MustParse("{push: method(T) -> Integer, length: Integer}").(*types.Object)

	arr := Array(1, Num(1, "1"))
	r := generate(t, env,
		Var(1, "a", arr),
		Expr(2, Call(2, Member(2, Ident(2, "a"), "push"), Num(2, "2"))),
		Expr(3, Call(3, Ident(3, "print"), Ident(3, "a"))),
		Expr(4, Call(4, Ident(4, "print"), Num(4, "1"))),
	)

	if _, ok := r.TermOf(arr).Type().(*types.Array); !ok {
		t.Fatalf("expected array literal type: %s", types.TypeString(r.TermOf(arr).Type()))
	}
	elems := equatedTo(r, term.TypeParam, "expr(ArrayLit@1)[]")
	if len(elems) != 1 {
		t.Fatalf("expected element type-parameter:\n%s", strings.Join(constraintStrings(r), "\n"))
	}
	if r.Constraints.Find(constraint.SubType, r.TermOf(arr.Elems[0]), elems[0]) == nil {
		t.Fatalf("expected element to be copied into the array")
	}

	indexed := equatedTo(r, term.TypeParam, "decl(a@1)[]")
	params := equatedTo(r, term.TypeParam, "param(decl(a@1).push, 0/1)")
	if len(indexed) != 1 || len(params) != 1 || indexed[0] != params[0] {
		t.Fatalf("expected one type-parameter relating elements to push:\n%s", strings.Join(constraintStrings(r), "\n"))
	}
	expectConstraints(t, r,
		"Concrete(decl(a@1))",
		"TypeEquality(recv(decl(a@1).push/1), decl(a@1))",
		"SubType(expr(Ident@3), param(env(print), 0/1))",
		"SubType(expr(Literal@4), param(env(print), 0/1))",
	)

	uses := 0
	for _, tm := range r.Terms() {
		if tm.Kind() == term.EnvironmentDeclaration {
			uses++
		}
	}
	if uses != 2 {
		t.Fatalf("expected one environment term per use, found %d", uses)
	}
	if n := len(equatedTo(r, term.TypeParam, "param(env(print), 0/1)")); n != 2 {
		t.Fatalf("expected one type-parameter per use, found %d", n)
	}
}

func TestMapLiterals(t *testing.T) {
	lit := Object(1, QuotedProp("a", Num(1, "1")), QuotedProp("b", Num(1, "2")))
	r := generate(t, nil, Var(1, "m", lit))
	tm := r.TermOf(lit)
	if tm.Kind() != term.MapLiteral {
		t.Fatalf("expected map literal, found %s", tm.Kind())
	}
	if _, ok := tm.Type().(*types.Map); !ok {
		t.Fatalf("expected map type: %s", types.TypeString(tm.Type()))
	}
	if len(equatedTo(r, term.TypeParam, "map(ObjectLit@1)[]")) != 1 {
		t.Fatalf("expected element type-parameter:\n%s", strings.Join(constraintStrings(r), "\n"))
	}
}

func TestOperators(t *testing.T) {
	// var i = 0;
	// i += 1;
	// i++;
	// var c = i ? 1 : 2.5;
	r := generate(t, nil,
		Var(1, "i", Num(1, "0")),
		Expr(2, AssignOp(2, "+=", Ident(2, "i"), Num(2, "1"))),
		Expr(3, Update(3, "++", Ident(3, "i"))),
		Var(4, "c", Cond(4, Ident(4, "i"), Num(4, "1"), Num(4, "2.5"))),
	)
	expectConstraints(t, r,
		"TypeEquality(decl(i@1), (decl(i@1) + expr(Literal@2)))",
		"TypeEquality(decl(i@1), (++ decl(i@1)))",
		"TypeEquality(expr(Update@3), decl(i@1))",
		"SubType(expr(Literal@4), expr(Conditional@4))",
		"SubType(expr(Conditional@4), decl(c@4))",
	)
}

func TestEqualityClasses(t *testing.T) {
	r := generate(t, nil,
		Var(1, "a", Null(1)),
		Expr(2, Ident(2, "a")),
	)
	classes := r.EqualityClasses()
	if len(classes) != 1 || len(classes[0]) != 3 {
		t.Fatalf("unexpected classes: %v", classes)
	}
	want := []string{"expr(Literal@1)", "decl(a@1)", "expr(Ident@2)"}
	for i, tm := range classes[0] {
		if tm.String() != want[i] {
			t.Fatalf("expected %s at %d, found %s", want[i], i, tm)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	env := types.NewEnv()
	env.Add("print", types.MustParse("(T) -> Void"))
	_, err := NewGenerator(env, nil).Generate(&ast.Program{Body: []ast.Stmt{
		Expr(4, Ident(4, "zz")),
		Return(2, Num(2, "1")),
		Expr(3, Assign(3, Ident(3, "print"), Num(3, "1"))),
		Expr(1, Regex(1, "/a/")),
		Expr(5, Ident(5, "undefined")),
		Expr(6, Object(6, QuotedProp("a", Num(6, "1")), Prop("b", Num(6, "2")))),
	}})
	var errs SyntaxErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected syntax errors, found %v", err)
	}
	want := []string{
		"line 1: regular expression literals are not supported",
		"line 2: return outside of a function",
		"line 3: cannot assign to builtin print",
		"line 4: unknown name zz",
		"line 6: object literal mixes quoted and unquoted keys",
	}
	if len(errs) != len(want) {
		t.Fatalf("unexpected errors: %v", err)
	}
	for i, e := range errs {
		if e.Error() != want[i] {
			t.Fatalf("expected %q, found %q", want[i], e.Error())
		}
	}
}

func TestGeneratorSingleUse(t *testing.T) {
	g := NewGenerator(nil, nil)
	if _, err := g.Generate(nil); err == nil || err.Error() != "Empty program" {
		t.Fatalf("expected empty program error, found %v", err)
	}
	if _, err := g.Generate(&ast.Program{}); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Generate(&ast.Program{}); err == nil || err.Error() != "Generator has already been used" {
		t.Fatalf("expected reuse error, found %v", err)
	}
}

func TestMissingChildrenAreSyntaxErrors(t *testing.T) {
	cases := []struct {
		stmt ast.Stmt
		want string
	}{
		{Expr(1, nil), "line 1: missing expression"},
		{Expr(2, Member(2, nil, "x")), "line 2: missing expression"},
		{Expr(3, Call(3, nil)), "line 3: missing expression"},
		{&ast.If{Pos: ast.Pos{Ln: 4}, Cons: Empty(4)}, "line 4: missing expression"},
		{Expr(5, Binary(5, "+", nil, Num(5, "1"))), "line 5: missing expression"},
		{Expr(6, Assign(6, nil, Num(6, "1"))), "line 6: missing assignment target"},
		{&ast.ForIn{Pos: ast.Pos{Ln: 7}, Right: Array(7), Body: Empty(7)}, "line 7: for-in without a target"},
	}
	for _, c := range cases {
		_, err := NewGenerator(nil, nil).Generate(Program(c.stmt))
		var errs SyntaxErrors
		if !errors.As(err, &errs) {
			t.Fatalf("expected syntax errors for %s, found %v", spew.Sdump(c.stmt), err)
		}
		if errs[0].Error() != c.want {
			t.Fatalf("expected %q, found %v", c.want, err)
		}
	}
}

func TestPrototypeOfNonConstructor(t *testing.T) {
	// function point() {}
	// point.prototype = {};
	_, err := NewGenerator(nil, nil).Generate(Program(
		FuncDecl(Func(1, "point", nil)),
		Expr(2, Assign(2, Member(2, Ident(2, "point"), "prototype"), Object(2))),
	))
	if err == nil || err.Error() != "line 2: cannot assign the prototype of point, which is not a constructor" {
		t.Fatalf("expected non-constructor error, found %v", err)
	}

	// function Point() {}
	// var o = {C: Point};
	// o.C.prototype = {};
	_, err = NewGenerator(nil, nil).Generate(Program(
		FuncDecl(Func(1, "Point", nil)),
		Var(2, "o", Object(2, Prop("C", Ident(2, "Point")))),
		Expr(3, Assign(3, Member(3, Member(3, Ident(3, "o"), "C"), "prototype"), Object(3))),
	))
	if err == nil || err.Error() != "line 3: prototype of o.C must be assigned through the name of its constructor" {
		t.Fatalf("expected indirect prototype error, found %v", err)
	}
}

func TestIndexedAssignment(t *testing.T) {
	// var a = [];
	// a[0] = 5;
	index, value := Num(2, "0"), Num(2, "5")
	index.Col, value.Col = 3, 8
	r := generate(t, nil,
		Var(1, "a", Array(1)),
		Expr(2, Assign(2, Index(2, Ident(2, "a"), index), value)),
	)
	expectConstraints(t, r,
		"TypeEquality(expr(Literal@2:3), key(decl(a@1)))",
		"SubType(expr(Literal@2:8), decl(a@1)[])",
		"Concrete(expr(Literal@2:8))",
	)
	expectNoConstraint(t, r, "SubType(expr(Literal@2:3)")
}

func TestLogicalOperands(t *testing.T) {
	// var a = 1;
	// var c = a || "b";
	a, b := Ident(2, "a"), Str(2, `"b"`)
	a.Col, b.Col = 9, 14
	r := generate(t, nil,
		Var(1, "a", Num(1, "1")),
		Var(2, "c", Logical(2, "||", a, b)),
	)
	expectConstraints(t, r,
		"SubType(expr(Ident@2:9), expr(Logical@2))",
		"SubType(expr(Literal@2:14), expr(Logical@2))",
		"SubType(expr(Logical@2), decl(c@2))",
	)
	expectNoConstraint(t, r, "TypeEquality(expr(Logical@2)")
}

func TestPrototypePropertyAssignment(t *testing.T) {
	// function C() {}
	// var a = 1;
	// C.prototype.p = 1;
	r := generate(t, nil,
		FuncDecl(Func(1, "C", nil)),
		Var(2, "a", Num(2, "1")),
		Expr(3, Assign(3, Member(3, Member(3, Ident(3, "C"), "prototype"), "p"), Num(3, "1"))),
	)
	expectConstraints(t, r,
		"SubType(expr(Literal@3), proto(decl(C@1)).p)",
		"TypeEquality(expr(Assign@3), proto(decl(C@1)).p)",
		"TypeEquality(parent(ret(decl(C@1)/0)), proto(decl(C@1)))",
	)
}
