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
	"github.com/wdamron/protoinfer/ast"
	"github.com/wdamron/protoinfer/diagnostics"
	"github.com/wdamron/protoinfer/term"
	"github.com/wdamron/protoinfer/types"
)

// genCall emits the constraints of a function or method call. The call's term is the
// return term of the callee, indexed by the number of arguments.
func (g *Generator) genCall(e *ast.Call) term.Term {
	f := g.factory
	name := ast.ExprString(e.Callee)
	arity := len(e.Args)

	g.genExpr(e.Callee)
	callee := g.storage(e.Callee)
	args := g.genArgs(e.Args)
	t := g.record(e, f.FindOrCreateExpression(e))

	if m, ok := e.Callee.(*ast.Member); ok && !m.Computed && m.Name != "prototype" {
		recv := g.storage(m.Object)
		if g.isMethod(recv, m.Name) {
			// Methods may not be dispatched on partially-known objects.
			g.concrete(recv, diagnostics.Concreteness("receiver of "+name, recv), e)
			mr := f.FindOrCreateMethodReceiver(callee, arity)
			g.equal(mr, recv, diagnostics.Receiver(name, mr, recv), e)
		}
	}
	g.genApply(e, name, callee, e.Args, args, t)
	return t
}

// genNew emits the constraints of a call to a constructor. The callee must be at least
// a constructor of the call's arity.
func (g *Generator) genNew(e *ast.New) term.Term {
	f := g.factory
	name := ast.ExprString(e.Callee)
	arity := len(e.Args)

	g.genExpr(e.Callee)
	callee := g.storage(e.Callee)
	args := g.genArgs(e.Args)
	t := g.record(e, f.FindOrCreateExpression(e))

	params := f.FreshVars(arity)
	shape := f.NewTypeVariable(&types.Constructor{Params: params, Return: f.FreshVar(), Proto: f.FreshVar()})
	g.subtype(callee, shape, diagnostics.New(name, callee), e)
	g.genApply(e, name, callee, e.Args, args, t)
	return t
}

func (g *Generator) genArgs(args []ast.Expr) []term.Term {
	ts := make([]term.Term, len(args))
	for i, a := range args {
		ts[i] = g.genExpr(a)
	}
	return ts
}

func (g *Generator) genApply(n ast.Node, name string, callee term.Term, argExprs []ast.Expr, args []term.Term, result term.Term) {
	f := g.factory
	arity := len(args)
	ret := f.FindOrCreateFunctionReturn(callee, arity)
	g.equal(result, ret, nil, n)
	g.cs.Arity(ret, diagnostics.Arity(name, ret), g.touch(n, ret))
	for i, a := range args {
		param := f.FindOrCreateFunctionParam(callee, i, arity)
		g.copyInto(a, param, argExprs[i], "argument "+ast.ExprString(argExprs[i]), diagnostics.Argument(name, i, param, a), argExprs[i])
	}
}

// isMethod decides whether a property read from recv is called as a method. The
// statically-known type of the receiver decides first; otherwise the property is a method
// when the program binds a method to that name, or a builtin declares a method of that
// name which the program does not redefine.
func (g *Generator) isMethod(recv term.Term, name string) bool {
	switch rt := recv.Type().(type) {
	case *types.Object:
		if p, ok := rt.Lookup(name); ok {
			return types.IsMethod(p.Type)
		}
	case nil, *types.Var:
	default:
		if m, ok := g.env.Member(rt, name); ok {
			return types.IsMethod(m)
		}
	}
	if g.names.Methods.Contains(name) {
		return true
	}
	if g.names.Defined.Contains(name) {
		return false
	}
	for _, proto := range g.env.Prototypes {
		if p, ok := proto.Lookup(name); ok && types.IsMethod(p.Type) {
			return true
		}
	}
	return false
}
