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

// Package construct provides shorthand constructors for types and syntax trees.
// Every syntax node is placed at a source line, which is the first argument of its
// constructor.
package construct

import (
	"github.com/wdamron/protoinfer/ast"
	"github.com/wdamron/protoinfer/types"
)

// Types

// Array type: `Array<T>`
func TArray(elem types.Type) *types.Array { return &types.Array{Elem: elem} }

// Map type: `Map<T>`
func TMap(elem types.Type) *types.Map { return &types.Map{Elem: elem} }

// Object type: `{a: T, var b: U}`
func TObject(props ...types.Property) *types.Object { return types.NewObject(props...) }

// Read-only property: `a: T`
func TProp(name string, t types.Type) types.Property {
	return types.Property{Name: name, Type: t, ReadOnly: true}
}

// Read-write property: `var a: T`
func TVarProp(name string, t types.Type) types.Property {
	return types.Property{Name: name, Type: t}
}

// Function type: `(A, B) -> R`
func TFunc(params []types.Type, ret types.Type) *types.Function {
	return &types.Function{Params: params, Return: ret}
}

// Function type: `(A) -> R`
func TFunc1(param types.Type, ret types.Type) *types.Function {
	return &types.Function{Params: []types.Type{param}, Return: ret}
}

// Attached method type: `method(A) -> R`
func TMethod(params []types.Type, ret types.Type) *types.AttachedMethod {
	return &types.AttachedMethod{Params: params, Return: ret}
}

// Unattached method type: `method[Recv](A) -> R`
func TUnattachedMethod(recv types.Type, params []types.Type, ret types.Type) *types.UnattachedMethod {
	return &types.UnattachedMethod{Receiver: recv, Params: params, Return: ret}
}

// Constructor type: `new[Proto](A) -> R`
func TConstructor(params []types.Type, ret, proto types.Type) *types.Constructor {
	return &types.Constructor{Params: params, Return: ret, Proto: proto}
}

// Overloaded type: `A & B`
func TIntersection(members ...types.Type) *types.Intersection {
	return &types.Intersection{Types: members}
}

// Expressions:

func at(line int) ast.Pos { return ast.Pos{Ln: line} }

// Identifier: `x`
func Ident(line int, name string) *ast.Ident { return &ast.Ident{Pos: at(line), Name: name} }

// Number: `1`, `1.5`
func Num(line int, raw string) *ast.Literal {
	return &ast.Literal{Pos: at(line), Kind: ast.NumberLit, Raw: raw}
}

// String: `"s"`
func Str(line int, raw string) *ast.Literal {
	return &ast.Literal{Pos: at(line), Kind: ast.StringLit, Raw: raw}
}

// Boolean: `true`
func Bool(line int, value bool) *ast.Literal {
	raw := "false"
	if value {
		raw = "true"
	}
	return &ast.Literal{Pos: at(line), Kind: ast.BoolLit, Raw: raw}
}

// Null: `null`
func Null(line int) *ast.Literal { return &ast.Literal{Pos: at(line), Kind: ast.NullLit, Raw: "null"} }

// Regular expression: `/re/`
func Regex(line int, raw string) *ast.Literal {
	return &ast.Literal{Pos: at(line), Kind: ast.RegExpLit, Raw: raw}
}

// Receiver: `this`
func This(line int) *ast.This { return &ast.This{Pos: at(line)} }

// Array literal: `[a, b]`
func Array(line int, elems ...ast.Expr) *ast.ArrayLit {
	return &ast.ArrayLit{Pos: at(line), Elems: elems}
}

// Object literal: `{a: 1, b: 2}` or `{"a": 1, "b": 2}`
func Object(line int, props ...*ast.Property) *ast.ObjectLit {
	for _, p := range props {
		if p.Ln == 0 {
			p.Ln = line
		}
	}
	return &ast.ObjectLit{Pos: at(line), Props: props}
}

// Unquoted property within an object literal: `a: 1`
func Prop(key string, value ast.Expr) *ast.Property {
	return &ast.Property{Key: key, Value: value}
}

// Quoted property within an object literal: `"a": 1`
func QuotedProp(key string, value ast.Expr) *ast.Property {
	return &ast.Property{Key: key, Quoted: true, Value: value}
}

// Function expression: `function f(x, y) { ... }`
func Func(line int, name string, params []string, body ...ast.Stmt) *ast.Function {
	fn := &ast.Function{Pos: at(line), Body: &ast.Block{Pos: at(line), Body: body}}
	if name != "" {
		fn.Id = Ident(line, name)
	}
	for _, p := range params {
		fn.Params = append(fn.Params, Ident(line, p))
	}
	return fn
}

// Property read: `o.a`
func Member(line int, object ast.Expr, name string) *ast.Member {
	return &ast.Member{Pos: at(line), Object: object, Name: name}
}

// Element read: `o[i]`
func Index(line int, object, index ast.Expr) *ast.Member {
	return &ast.Member{Pos: at(line), Object: object, Index: index, Computed: true}
}

// Call: `f(x)`
func Call(line int, callee ast.Expr, args ...ast.Expr) *ast.Call {
	return &ast.Call{Pos: at(line), Callee: callee, Args: args}
}

// Construction: `new C(x)`
func New(line int, callee ast.Expr, args ...ast.Expr) *ast.New {
	return &ast.New{Pos: at(line), Callee: callee, Args: args}
}

// Assignment: `a = b`
func Assign(line int, target, value ast.Expr) *ast.Assign {
	return &ast.Assign{Pos: at(line), Op: "=", Target: target, Value: value}
}

// Compound assignment: `a += b`
func AssignOp(line int, op string, target, value ast.Expr) *ast.Assign {
	return &ast.Assign{Pos: at(line), Op: op, Target: target, Value: value}
}

// Update: `a++`
func Update(line int, op string, target ast.Expr) *ast.Update {
	return &ast.Update{Pos: at(line), Op: op, X: target}
}

// Binary operator: `a + b`
func Binary(line int, op string, l, r ast.Expr) *ast.Binary {
	return &ast.Binary{Pos: at(line), Op: op, L: l, R: r}
}

// Logical operator: `a || b`
func Logical(line int, op string, l, r ast.Expr) *ast.Logical {
	return &ast.Logical{Pos: at(line), Op: op, L: l, R: r}
}

// Conditional: `c ? a : b`
func Cond(line int, test, cons, alt ast.Expr) *ast.Conditional {
	return &ast.Conditional{Pos: at(line), Test: test, Cons: cons, Alt: alt}
}

// Statements:

// Variable declaration: `var x = init`
func Var(line int, name string, init ast.Expr) *ast.VarDecl {
	return &ast.VarDecl{Pos: at(line), Decls: []*ast.VarDeclarator{{Pos: at(line), Id: Ident(line, name), Init: init}}}
}

// Function declaration: `function f(x) { ... }`
func FuncDecl(fn *ast.Function) *ast.FuncDecl { return &ast.FuncDecl{Pos: fn.Pos, Func: fn} }

// Expression statement: `e;`
func Expr(line int, x ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Pos: at(line), X: x} }

// Return: `return e` (or `return` when e is nil)
func Return(line int, x ast.Expr) *ast.Return { return &ast.Return{Pos: at(line), Arg: x} }

// Empty statement: `;`
func Empty(line int) *ast.Empty { return &ast.Empty{Pos: at(line)} }

// Program
func Program(body ...ast.Stmt) *ast.Program { return &ast.Program{Body: body} }
