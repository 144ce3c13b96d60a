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
	"github.com/wdamron/protoinfer/ast"
)

var _ ast.Resolver = (*Analysis)(nil)

// Analysis resolves every name occurrence within a program to its declaring occurrence.
//
// Variables and function declarations are hoisted to the enclosing function (or program)
// scope; the first declaring occurrence of a name within a scope is canonical, so
// re-declarations resolve to it. Parameters and the name of a function expression are
// scoped to the function; a catch parameter is scoped to its handler.
type Analysis struct {
	decls    map[*ast.Ident]*ast.Ident
	topLevel *scope
	// Unresolved lists names which are referenced but not declared, in order of first reference.
	Unresolved []string
}

type scope struct {
	parent *scope
	names  map[string]*ast.Ident
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]*ast.Ident)}
}

func (s *scope) declare(id *ast.Ident) *ast.Ident {
	if existing, ok := s.names[id.Name]; ok {
		return existing
	}
	s.names[id.Name] = id
	return id
}

func (s *scope) lookup(name string) *ast.Ident {
	for sc := s; sc != nil; sc = sc.parent {
		if id, ok := sc.names[name]; ok {
			return id
		}
	}
	return nil
}

// Analyze resolves names within a program.
func Analyze(p *ast.Program) *Analysis {
	a := &Analysis{decls: make(map[*ast.Ident]*ast.Ident, 64)}
	a.topLevel = newScope(nil)
	a.hoist(p, a.topLevel)
	a.resolveBody(p, a.topLevel)
	return a
}

// FindDeclaration returns the canonical declaring occurrence of id, or nil.
func (a *Analysis) FindDeclaration(id *ast.Ident) *ast.Ident { return a.decls[id] }

// IsGlobal reports whether name is not declared at the top level of the program.
func (a *Analysis) IsGlobal(name string) bool {
	_, declared := a.topLevel.names[name]
	return !declared
}

// Collect hoisted declarations of a function or program body, without entering nested functions.
func (a *Analysis) hoist(body ast.Node, sc *scope) {
	ast.Walk(body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.VarDeclarator:
			sc.declare(n.Id)
		case *ast.FuncDecl:
			if n.Func.Id != nil {
				sc.declare(n.Func.Id)
			}
		case *ast.Function:
			return n == body
		}
		return true
	})
}

func (a *Analysis) resolveBody(body ast.Node, sc *scope) {
	ast.Walk(body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncDecl:
			if n.Func.Id != nil {
				a.resolve(n.Func.Id, sc)
			}
			a.analyzeFunction(n.Func, sc, false)
			return false

		case *ast.Function:
			if n == body {
				return true
			}
			a.analyzeFunction(n, sc, true)
			return false

		case *ast.Try:
			a.resolveBody(n.Block, sc)
			if n.Handler != nil {
				handler := newScope(sc)
				if n.Param != nil {
					a.decls[n.Param] = handler.declare(n.Param)
				}
				a.resolveBody(n.Handler, handler)
			}
			if n.Finalizer != nil {
				a.resolveBody(n.Finalizer, sc)
			}
			return false

		case *ast.Ident:
			a.resolve(n, sc)
		}
		return true
	})
}

func (a *Analysis) analyzeFunction(fn *ast.Function, parent *scope, isExpr bool) {
	sc := newScope(parent)
	if isExpr && fn.Id != nil {
		a.decls[fn.Id] = sc.declare(fn.Id)
	}
	for _, p := range fn.Params {
		a.decls[p] = sc.declare(p)
	}
	if fn.Body == nil {
		return
	}
	a.hoist(fn.Body, sc)
	a.resolveBody(fn.Body, sc)
}

func (a *Analysis) resolve(id *ast.Ident, sc *scope) {
	if _, done := a.decls[id]; done {
		return
	}
	if decl := sc.lookup(id.Name); decl != nil {
		a.decls[id] = decl
		return
	}
	for _, name := range a.Unresolved {
		if name == id.Name {
			return
		}
	}
	a.Unresolved = append(a.Unresolved, id.Name)
}
