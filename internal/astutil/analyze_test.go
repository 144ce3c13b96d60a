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

package astutil

import (
	"testing"

	"github.com/wdamron/protoinfer/ast"
)

func TestAnalyzeScopes(t *testing.T) {
	// var x = 1; var x = 2;
	// function f(x) { return x + y; }
	// try { } catch (e) { e; }
	// print(x);
	x1, x2 := &ast.Ident{Name: "x"}, &ast.Ident{Name: "x"}
	param := &ast.Ident{Name: "x"}
	inner := &ast.Ident{Name: "x"}
	y := &ast.Ident{Name: "y"}
	fname := &ast.Ident{Name: "f"}
	e, eRef := &ast.Ident{Name: "e"}, &ast.Ident{Name: "e"}
	outer := &ast.Ident{Name: "x"}
	printRef := &ast.Ident{Name: "print"}
	prog := &ast.Program{Body: []ast.Stmt{
		&ast.VarDecl{Decls: []*ast.VarDeclarator{{Id: x1, Init: &ast.Literal{Kind: ast.NumberLit, Raw: "1"}}}},
		&ast.VarDecl{Decls: []*ast.VarDeclarator{{Id: x2, Init: &ast.Literal{Kind: ast.NumberLit, Raw: "2"}}}},
		&ast.FuncDecl{Func: &ast.Function{Id: fname, Params: []*ast.Ident{param}, Body: &ast.Block{Body: []ast.Stmt{
			&ast.Return{Arg: &ast.Binary{Op: "+", L: inner, R: y}},
		}}}},
		&ast.Try{Block: &ast.Block{}, Param: e, Handler: &ast.Block{Body: []ast.Stmt{&ast.ExprStmt{X: eRef}}}},
		&ast.ExprStmt{X: &ast.Call{Callee: printRef, Args: []ast.Expr{outer}}},
	}}

	a := Analyze(prog)
	if a.FindDeclaration(x2) != x1 || a.FindDeclaration(x1) != x1 || a.FindDeclaration(outer) != x1 {
		t.Fatalf("expected re-declarations and references to resolve to the first declaration")
	}
	if a.FindDeclaration(inner) != param {
		t.Fatalf("expected the parameter to shadow the outer variable")
	}
	if a.FindDeclaration(fname) != fname {
		t.Fatalf("expected function declaration to resolve to itself")
	}
	if a.FindDeclaration(eRef) != e {
		t.Fatalf("expected catch parameter to be resolved within the handler")
	}
	if a.FindDeclaration(y) != nil || a.FindDeclaration(printRef) != nil {
		t.Fatalf("expected undeclared names to be unresolved")
	}
	if len(a.Unresolved) != 2 || a.Unresolved[0] != "y" || a.Unresolved[1] != "print" {
		t.Fatalf("unresolved: %v", a.Unresolved)
	}
	if a.IsGlobal("x") || !a.IsGlobal("print") || !a.IsGlobal("e") {
		t.Fatalf("unexpected global classification")
	}
}

func TestClassify(t *testing.T) {
	usesThis := &ast.Block{Body: []ast.Stmt{&ast.ExprStmt{X: &ast.Member{Object: &ast.This{}, Name: "x"}}}}
	nestedThis := &ast.Block{Body: []ast.Stmt{&ast.ExprStmt{X: &ast.Function{Body: usesThis}}}}
	cases := []struct {
		fn   *ast.Function
		kind FuncKind
	}{
		{&ast.Function{Id: &ast.Ident{Name: "Point"}, Body: usesThis}, Constructor},
		{&ast.Function{Id: &ast.Ident{Name: "Point"}, Body: &ast.Block{}}, Constructor},
		{&ast.Function{Id: &ast.Ident{Name: "area"}, Body: usesThis}, Method},
		{&ast.Function{Body: usesThis}, Method},
		{&ast.Function{Body: nestedThis}, PlainFunction},
		{&ast.Function{Id: &ast.Ident{Name: "f"}, Body: &ast.Block{}}, PlainFunction},
	}
	for i, c := range cases {
		if got := Classify(c.fn); got != c.kind {
			t.Fatalf("case %d: expected %s, found %s", i, c.kind, got)
		}
	}
}

func TestWrittenThisProperties(t *testing.T) {
	assign := func(name string) ast.Stmt {
		return &ast.ExprStmt{X: &ast.Assign{Op: "=", Target: &ast.Member{Object: &ast.This{}, Name: name}, Value: &ast.Ident{Name: name}}}
	}
	fn := &ast.Function{Id: &ast.Ident{Name: "Point"}, Body: &ast.Block{Body: []ast.Stmt{
		assign("y"), assign("x"), assign("y"),
		&ast.If{Test: &ast.Ident{Name: "c"}, Cons: assign("z")},
		&ast.ExprStmt{X: &ast.Function{Body: &ast.Block{Body: []ast.Stmt{assign("w")}}}},
	}}}
	names := WrittenThisProperties(fn)
	if len(names) != 3 || names[0] != "x" || names[1] != "y" || names[2] != "z" {
		t.Fatalf("written: %v", names)
	}
	if ReturnsValue(fn) {
		t.Fatalf("constructor does not return a value")
	}
}

func TestScanNames(t *testing.T) {
	method := &ast.Function{Body: &ast.Block{Body: []ast.Stmt{&ast.ExprStmt{X: &ast.This{}}}}}
	plain := &ast.Function{Body: &ast.Block{}}
	prog := &ast.Program{Body: []ast.Stmt{
		&ast.ExprStmt{X: &ast.ObjectLit{Props: []*ast.Property{
			{Key: "f", Value: method},
			{Key: "g", Value: plain},
			{Key: "h", Quoted: true, Value: method},
		}}},
		&ast.ExprStmt{X: &ast.Assign{Op: "=", Target: &ast.Member{Object: &ast.Ident{Name: "o"}, Name: "m"}, Value: method}},
	}}
	names := ScanNames(prog)
	if !names.Methods.Contains("f") || !names.Methods.Contains("m") || names.Methods.Contains("g") || names.Methods.Contains("h") {
		t.Fatalf("methods: %v", names.Methods)
	}
	if !names.Defined.Contains("g") || names.Defined.Contains("h") {
		t.Fatalf("defined: %v", names.Defined)
	}
}
