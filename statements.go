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
	"github.com/wdamron/protoinfer/internal/astutil"
	"github.com/wdamron/protoinfer/term"
)

func (g *Generator) genStmts(stmts []ast.Stmt) {
	for i, s := range stmts {
		if a, ctor := prototypeAssignment(s); a != nil {
			if g.validPrototypePosition(stmts, i, ctor) {
				g.protoOK[a] = true
			}
		}
		g.genStmt(s)
	}
}

func (g *Generator) genStmt(s ast.Stmt) {
	if s != nil {
		g.at(s)
	}
	switch s := s.(type) {
	case nil, *ast.Empty, *ast.Break, *ast.Continue:

	case *ast.VarDecl:
		g.genVarDecl(s)

	case *ast.FuncDecl:
		f := g.genFunction(s.Func)
		if s.Func.Id != nil {
			g.equal(g.factory.FindOrCreateNameDeclaration(s.Func.Id), f, nil, s)
		}

	case *ast.ExprStmt:
		g.genExpr(s.X)

	case *ast.Return:
		fr := g.frame()
		if fr == nil {
			g.errorf(s, "return outside of a function")
			return
		}
		if s.Arg == nil {
			return
		}
		v := g.genExpr(s.Arg)
		ret := g.factory.FindOrCreateFunctionReturn(fr.term, len(fr.fn.Params))
		name := funcName(fr.fn)
		g.copyInto(v, ret, s.Arg, "return value of "+name, diagnostics.Return(name, ret, v), s)

	case *ast.If:
		g.genExpr(s.Test)
		g.genStmt(s.Cons)
		g.genStmt(s.Alt)

	case *ast.Block:
		g.genStmts(s.Body)

	case *ast.For:
		switch init := s.Init.(type) {
		case nil:
		case *ast.VarDecl:
			g.genVarDecl(init)
		case ast.Expr:
			g.genExpr(init)
		default:
			g.errorf(s, "unsupported loop initializer %s", init.NodeName())
		}
		if s.Test != nil {
			g.genExpr(s.Test)
		}
		if s.Update != nil {
			g.genExpr(s.Update)
		}
		g.genStmt(s.Body)

	case *ast.ForIn:
		var key term.Term
		switch left := s.Left.(type) {
		case *ast.VarDecl:
			if len(left.Decls) != 1 || left.Decls[0].Init != nil {
				g.errorf(s, "for-in must declare a single variable without initializer")
				return
			}
			key = g.factory.FindOrCreateNameDeclaration(left.Decls[0].Id)
		case *ast.Ident:
			key = g.storage(left)
		case nil:
			g.errorf(s, "for-in without a target")
			return
		default:
			g.errorf(s, "unsupported for-in target %s", left.NodeName())
			return
		}
		g.genExpr(s.Right)
		keys := g.factory.FindOrCreateKey(g.storage(s.Right))
		g.equal(key, keys, diagnostics.Mismatch("for-in key", keys, key), s)
		g.genStmt(s.Body)

	case *ast.While:
		g.genExpr(s.Test)
		g.genStmt(s.Body)

	case *ast.DoWhile:
		g.genStmt(s.Body)
		g.genExpr(s.Test)

	case *ast.Throw:
		g.genExpr(s.Arg)

	case *ast.Try:
		g.genStmt(s.Block)
		if s.Handler != nil {
			g.genStmt(s.Handler)
		}
		if s.Finalizer != nil {
			g.genStmt(s.Finalizer)
		}

	case *ast.Switch:
		disc := g.genExpr(s.Disc)
		for _, c := range s.Cases {
			if c.Test != nil {
				label := g.genExpr(c.Test)
				g.equal(label, disc, diagnostics.Mismatch("case label", disc, label), c)
			}
			g.genStmts(c.Body)
		}

	case *ast.Unsupported:
		g.errorf(s, "unsupported syntax %s", s.Syntax)

	default:
		g.errorf(s, "unsupported statement %s", s.NodeName())
	}
}

func (g *Generator) genVarDecl(s *ast.VarDecl) {
	for _, d := range s.Decls {
		if d.Init == nil {
			continue
		}
		v := g.genExpr(d.Init)
		decl := g.factory.FindOrCreateNameDeclaration(d.Id)
		g.copyInto(v, decl, d.Init, "initializer of "+d.Id.Name, diagnostics.Assignment("variable "+d.Id.Name, decl, v), d)
	}
}

// Find a statement of the form `C.prototype = e`.
func prototypeAssignment(s ast.Stmt) (*ast.Assign, string) {
	es, ok := s.(*ast.ExprStmt)
	if !ok {
		return nil, ""
	}
	a, ok := es.X.(*ast.Assign)
	if !ok || a.Op != "=" {
		return nil, ""
	}
	m, ok := a.Target.(*ast.Member)
	if !ok || m.Computed || m.Name != "prototype" {
		return nil, ""
	}
	id, ok := m.Object.(*ast.Ident)
	if !ok {
		return nil, ""
	}
	return a, id.Name
}

// A prototype assignment must immediately follow the declaration of its constructor,
// or other prototype assignments to the same constructor. Empty statements are ignored.
func (g *Generator) validPrototypePosition(stmts []ast.Stmt, i int, ctor string) bool {
	for j := i - 1; j >= 0; j-- {
		switch s := stmts[j].(type) {
		case *ast.Empty:
			continue
		case *ast.FuncDecl:
			return s.Func.Name() == ctor && astutil.Classify(s.Func) == astutil.Constructor
		}
		if _, name := prototypeAssignment(stmts[j]); name == ctor {
			continue
		}
		return false
	}
	return false
}

func funcName(fn *ast.Function) string {
	if fn.Id == nil {
		return "function"
	}
	return fn.Id.Name
}
