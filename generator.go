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

	"github.com/wdamron/protoinfer/ast"
	"github.com/wdamron/protoinfer/constraint"
	"github.com/wdamron/protoinfer/diagnostics"
	"github.com/wdamron/protoinfer/internal/astutil"
	"github.com/wdamron/protoinfer/term"
	"github.com/wdamron/protoinfer/types"
)

// Generator emits the typing constraints of one compilation unit.
//
// A generator is single-use: all of its tables live exactly as long as the generation of
// one program. A generator cannot be used concurrently.
type Generator struct {
	env      *types.Env
	resolver ast.Resolver
	used     bool

	factory *term.Factory
	cs      *constraint.Set
	names   astutil.Names
	terms   map[ast.Node]term.Term
	frames  []*frame
	// Constructors declared by function declarations, keyed by their declaring identifier.
	ctors map[*ast.Ident]*ast.Function
	// Prototype assignments whose position has been validated.
	protoOK map[*ast.Assign]bool
	// Line of the innermost statement or expression being generated.
	line int

	errs SyntaxErrors
}

type frame struct {
	fn   *ast.Function
	term term.Term
	kind astutil.FuncKind
}

// NewGenerator creates a generator which types builtin names through env, and resolves
// names through r. When r is nil, names are resolved lexically by the generator.
func NewGenerator(env *types.Env, r ast.Resolver) *Generator {
	if env == nil {
		env = types.NewEnv()
	}
	return &Generator{env: env, resolver: r}
}

// Generate emits the constraints of p. If p contains constructs which cannot be typed,
// all of them are reported through a SyntaxErrors error and no result is returned.
func Generate(p *ast.Program, env *types.Env) (*Result, error) {
	return NewGenerator(env, nil).Generate(p)
}

// Generate emits the constraints of p.
func (g *Generator) Generate(p *ast.Program) (*Result, error) {
	if p == nil {
		return nil, errors.New("Empty program")
	}
	if g.used {
		return nil, errors.New("Generator has already been used")
	}
	g.used = true
	if g.resolver == nil {
		g.resolver = astutil.Analyze(p)
	}
	g.factory = term.NewFactory(g.env, g.resolver)
	g.cs = constraint.NewSet()
	g.names = astutil.ScanNames(p)
	g.terms = make(map[ast.Node]term.Term, 64)
	g.ctors = make(map[*ast.Ident]*ast.Function)
	g.protoOK = make(map[*ast.Assign]bool)
	ast.Walk(p, func(n ast.Node) bool {
		if d, ok := n.(*ast.FuncDecl); ok && d.Func.Id != nil && astutil.Classify(d.Func) == astutil.Constructor {
			g.ctors[d.Func.Id] = d.Func
		}
		return true
	})

	g.genStmts(p.Body)

	if len(g.errs) > 0 {
		g.errs.Sort()
		return nil, g.errs
	}
	return &Result{Constraints: g.cs, Factory: g.factory, terms: g.terms}, nil
}

// errorf records a syntax error at the line of n, or at the current line when n is missing.
func (g *Generator) errorf(n ast.Node, format string, args ...interface{}) {
	line := g.line
	if n != nil {
		line = n.Line()
	}
	g.errs.Add(line, format, args...)
}

func (g *Generator) at(n ast.Node) {
	if ln := n.Line(); ln > 0 {
		g.line = ln
	}
}

func (g *Generator) frame() *frame {
	if len(g.frames) == 0 {
		return nil
	}
	return g.frames[len(g.frames)-1]
}

func (g *Generator) record(n ast.Node, t term.Term) term.Term {
	g.terms[n] = t
	return t
}

// Constraint helpers. Every term involved in a constraint records the line of the
// responsible syntax.

func (g *Generator) touch(n ast.Node, ts ...term.Term) int {
	line := g.line
	if n != nil {
		line = n.Line()
	}
	for _, t := range ts {
		t.AddLine(line)
	}
	return line
}

func (g *Generator) equal(l, r term.Term, explain constraint.Explainer, n ast.Node) {
	g.cs.Equal(l, r, explain, g.touch(n, l, r))
}

func (g *Generator) subtype(sub, sup term.Term, explain constraint.Explainer, n ast.Node) {
	g.cs.Sub(sub, sup, explain, g.touch(n, sub, sup))
}

func (g *Generator) concrete(t term.Term, explain constraint.Explainer, n ast.Node) {
	g.cs.Concrete(t, explain, g.touch(n, t))
}

// Copy the value of from into the slot to: the value must be concrete, and its type
// assignable into the slot. Null-producing values must match the slot exactly.
func (g *Generator) copyInto(from, to term.Term, value ast.Expr, what string, explain constraint.Explainer, n ast.Node) {
	if g.isNullish(value) {
		g.equal(to, from, explain, n)
		return
	}
	g.subtype(from, to, explain, n)
	g.concrete(from, diagnostics.Concreteness(what, from), n)
}

// Nullish values are `null`, `undefined` and `void` expressions.
func (g *Generator) isNullish(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Literal:
		return e.Kind == ast.NullLit
	case *ast.Ident:
		return e.Name == "undefined" && g.resolver.FindDeclaration(e) == nil
	case *ast.Unary:
		return e.Op == "void"
	}
	return false
}
