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
	"strings"

	"github.com/wdamron/protoinfer/ast"
	"github.com/wdamron/protoinfer/diagnostics"
	"github.com/wdamron/protoinfer/term"
	"github.com/wdamron/protoinfer/types"
)

// genExpr emits the constraints of an expression and returns its term. Every expression
// is visited at most once; revisits return the memoized term.
func (g *Generator) genExpr(e ast.Expr) term.Term {
	if e == nil {
		g.errorf(nil, "missing expression")
		return g.factory.NewTypeVariable(nil)
	}
	if t, ok := g.terms[e]; ok {
		return t
	}
	g.at(e)
	f := g.factory
	switch e := e.(type) {
	case *ast.Ident:
		return g.genIdent(e)

	case *ast.Literal:
		t := g.record(e, f.FindOrCreateExpression(e))
		var typ types.Type
		switch e.Kind {
		case ast.NullLit:
			return t
		case ast.BoolLit:
			typ = types.Boolean
		case ast.NumberLit:
			typ = types.Integer
			if e.IsFloat() {
				typ = types.Float
			}
		case ast.StringLit:
			typ = types.String
		default:
			g.errorf(e, "regular expression literals are not supported")
			return t
		}
		g.equal(t, f.FindOrCreateTypeConstant(typ), nil, e)
		return t

	case *ast.This:
		t := g.record(e, f.FindOrCreateExpression(e))
		if fr := g.frame(); fr != nil {
			g.equal(t, f.FindOrCreateThis(fr.fn), nil, e)
		} else {
			g.errorf(e, "this outside of a function")
		}
		return t

	case *ast.ArrayLit:
		t := g.record(e, f.FindOrCreateExpression(e))
		t.SetType(&types.Array{Elem: f.FreshVar()})
		elem := f.FindOrCreateTypeParam(e, types.ElemVarName)
		g.equal(elem, f.FindOrCreateIndexed(t), nil, e)
		for _, el := range e.Elems {
			v := g.genExpr(el)
			g.copyInto(v, elem, el, "array element", diagnostics.Mismatch("array element", elem, v), el)
		}
		return t

	case *ast.ObjectLit:
		return g.genObjectLit(e)

	case *ast.Function:
		t := g.genFunction(e)
		if e.Id != nil {
			g.equal(f.FindOrCreateNameDeclaration(e.Id), t, nil, e)
		}
		return t

	case *ast.Unary:
		x := g.genExpr(e.X)
		t := g.record(e, f.FindOrCreateExpression(e))
		if e.Op == "delete" {
			if _, ok := e.X.(*ast.Member); !ok {
				g.errorf(e, "delete of a non-property")
			}
		}
		g.equal(t, f.FindOrCreateUnaryOperator(e.Op, x), diagnostics.Operator(e.Op, x), e)
		return t

	case *ast.Update:
		t := g.record(e, f.FindOrCreateExpression(e))
		target := g.genTarget(e.X)
		if target == nil {
			return t
		}
		g.equal(target, f.FindOrCreateUnaryOperator(e.Op, target), diagnostics.Operator(e.Op, target), e)
		g.equal(t, target, nil, e)
		return t

	case *ast.Binary:
		l, r := g.genExpr(e.L), g.genExpr(e.R)
		t := g.record(e, f.FindOrCreateExpression(e))
		g.equal(t, f.FindOrCreateOperator(e.Op, l, r), diagnostics.Operator(e.Op, l, r), e)
		return t

	case *ast.Logical:
		l, r := g.genExpr(e.L), g.genExpr(e.R)
		t := g.record(e, f.FindOrCreateExpression(e))
		g.subtype(l, t, diagnostics.Branch("left", t, l), e)
		g.subtype(r, t, diagnostics.Branch("right", t, r), e)
		return t

	case *ast.Conditional:
		g.genExpr(e.Test)
		c, a := g.genExpr(e.Cons), g.genExpr(e.Alt)
		t := g.record(e, f.FindOrCreateExpression(e))
		g.subtype(c, t, diagnostics.Branch("consequent", t, c), e)
		g.subtype(a, t, diagnostics.Branch("alternate", t, a), e)
		return t

	case *ast.Assign:
		return g.genAssign(e)

	case *ast.Call:
		return g.genCall(e)

	case *ast.New:
		return g.genNew(e)

	case *ast.Member:
		return g.genMember(e)

	case *ast.Sequence:
		t := g.record(e, f.FindOrCreateExpression(e))
		var last term.Term
		for _, x := range e.Exprs {
			last = g.genExpr(x)
		}
		if last != nil {
			g.equal(t, last, nil, e)
		}
		return t

	case *ast.Unsupported:
		g.errorf(e, "unsupported syntax %s", e.Syntax)
		return g.record(e, f.FindOrCreateExpression(e))
	}
	g.errorf(e, "unsupported expression %s", e.NodeName())
	return g.record(e, f.FindOrCreateExpression(e))
}

func (g *Generator) genIdent(e *ast.Ident) term.Term {
	f := g.factory
	t := g.record(e, f.FindOrCreateExpression(e))
	if g.resolver.FindDeclaration(e) != nil {
		g.equal(t, f.FindOrCreateNameDeclaration(e), nil, e)
		return t
	}
	if _, ok := g.env.Lookup(e.Name); ok {
		g.equal(t, g.genEnvDecl(e), nil, e)
		return t
	}
	if e.Name != "undefined" {
		g.errorf(e, "unknown name %s", e.Name)
	}
	return t
}

func (g *Generator) genObjectLit(e *ast.ObjectLit) term.Term {
	f := g.factory
	quoted := 0
	for _, p := range e.Props {
		if p.Quoted {
			quoted++
		}
	}
	if quoted > 0 && quoted < len(e.Props) {
		g.errorf(e, "object literal mixes quoted and unquoted keys")
		return g.record(e, f.FindOrCreateExpression(e))
	}

	if quoted > 0 {
		m := f.FindOrCreateMapLiteral(e)
		g.record(e, m)
		m.SetType(&types.Map{Elem: f.FreshVar()})
		elem := f.FindOrCreateTypeParam(e, types.ElemVarName)
		g.equal(elem, f.FindOrCreateIndexed(m), nil, e)
		for _, p := range e.Props {
			v := g.genExpr(p.Value)
			g.copyInto(v, elem, p.Value, "value of \""+p.Key+"\"", diagnostics.Mismatch("value of \""+p.Key+"\"", elem, v), p)
		}
		return m
	}

	o := f.FindOrCreateObjectLiteral(e)
	g.record(e, o)
	props := make([]types.Property, 0, len(e.Props))
	for _, p := range e.Props {
		props = append(props, types.Property{Name: p.Key, Type: f.FreshVar(), ReadOnly: true})
	}
	o.SetType(types.NewObject(props...))
	for _, p := range e.Props {
		v := g.genExpr(p.Value)
		slot := f.FindOrCreatePropertyAccess(o, p.Key)
		g.copyInto(v, slot, p.Value, "property "+p.Key, diagnostics.Assignment("property "+p.Key, slot, v), p)
	}
	return o
}

func (g *Generator) genMember(e *ast.Member) term.Term {
	f := g.factory
	g.genExpr(e.Object)
	base := g.storage(e.Object)
	t := g.record(e, f.FindOrCreateExpression(e))
	switch {
	case e.Computed:
		index := g.genExpr(e.Index)
		key := f.FindOrCreateKey(base)
		g.equal(index, key, diagnostics.Mismatch("index of "+ast.ExprString(e.Object), key, index), e)
		g.equal(t, f.FindOrCreateIndexed(base), nil, e)
	case e.Name == "prototype":
		g.equal(t, f.FindOrCreateProto(base), nil, e)
	default:
		prop := f.FindOrCreatePropertyAccess(base, e.Name)
		g.equal(t, prop, diagnostics.NoProperty(base, e.Name), e)
		g.genMemberGenerics(e, base, prop)
	}
	return t
}

// storage returns the term of the location an expression reads from: the declaration of
// a name, the property of an object, the element of an array or map. Other expressions
// are their own storage.
func (g *Generator) storage(e ast.Expr) term.Term {
	f := g.factory
	switch e := e.(type) {
	case *ast.Ident:
		if g.resolver.FindDeclaration(e) != nil {
			return f.FindOrCreateNameDeclaration(e)
		}
		if _, ok := g.env.Lookup(e.Name); ok {
			return g.genEnvDecl(e)
		}
	case *ast.This:
		if fr := g.frame(); fr != nil {
			return f.FindOrCreateThis(fr.fn)
		}
	case *ast.Member:
		base := g.storage(e.Object)
		switch {
		case e.Computed:
			return f.FindOrCreateIndexed(base)
		case e.Name == "prototype":
			return f.FindOrCreateProto(base)
		default:
			return f.FindOrCreatePropertyAccess(base, e.Name)
		}
	}
	return g.genExpr(e)
}

// genTarget emits the constraints of an assignment target and returns the term of the
// location written to, or nil if the target is not assignable.
func (g *Generator) genTarget(e ast.Expr) term.Term {
	f := g.factory
	switch e := e.(type) {
	case nil:
		g.errorf(nil, "missing assignment target")
		return nil
	case *ast.Ident:
		if g.resolver.FindDeclaration(e) == nil {
			if _, ok := g.env.Lookup(e.Name); ok {
				g.errorf(e, "cannot assign to builtin %s", e.Name)
			} else {
				g.errorf(e, "unknown name %s", e.Name)
			}
			return nil
		}
		return g.record(e, f.FindOrCreateNameDeclaration(e))

	case *ast.Member:
		g.genExpr(e.Object)
		base := g.storage(e.Object)
		switch {
		case e.Computed:
			index := g.genExpr(e.Index)
			key := f.FindOrCreateKey(base)
			g.equal(index, key, diagnostics.Mismatch("index of "+ast.ExprString(e.Object), key, index), e)
			return g.record(e, f.FindOrCreateIndexed(base))
		case e.Name == "prototype":
			return g.record(e, f.FindOrCreateProto(base))
		}
		prop := f.FindOrCreatePropertyAccess(base, e.Name)
		f.MarkWritten(prop)
		if proto, ok := base.(*term.ProtoTerm); ok {
			g.linkPrototype(proto, e)
		}
		return g.record(e, prop)
	}
	g.errorf(e, "invalid assignment target %s", e.NodeName())
	return nil
}

func (g *Generator) genAssign(e *ast.Assign) term.Term {
	f := g.factory
	v := g.genExpr(e.Value)
	t := g.record(e, f.FindOrCreateExpression(e))

	if m, ok := e.Target.(*ast.Member); ok && !m.Computed && m.Name == "prototype" {
		id, ok := m.Object.(*ast.Ident)
		switch {
		case !ok:
			g.errorf(e, "prototype of %s must be assigned through the name of its constructor", ast.ExprString(m.Object))
			return t
		case !g.isConstructor(id):
			g.errorf(e, "cannot assign the prototype of %s, which is not a constructor", id.Name)
			return t
		case !g.protoOK[e]:
			g.errorf(e, "prototype of %s must be assigned immediately after its declaration", id.Name)
			return t
		}
	}
	target := g.genTarget(e.Target)
	if target == nil {
		return t
	}
	what := describeTarget(e.Target)
	if e.Op == "=" {
		if proto, ok := target.(*term.ProtoTerm); ok {
			g.linkPrototype(proto, e)
		}
		g.copyInto(v, target, e.Value, "value assigned to "+what, diagnostics.Assignment(what, target, v), e)
		g.equal(t, target, nil, e)
		return t
	}
	op := strings.TrimSuffix(e.Op, "=")
	result := f.FindOrCreateOperator(op, target, v)
	g.equal(target, result, diagnostics.Operator(op, target, v), e)
	g.equal(t, target, nil, e)
	return t
}

// isConstructor reports whether id resolves to a constructor declared by a function declaration.
func (g *Generator) isConstructor(id *ast.Ident) bool {
	decl := g.resolver.FindDeclaration(id)
	if decl == nil {
		return false
	}
	_, ok := g.ctors[decl]
	return ok
}

// linkPrototype makes the prototype of a constructor the parent of the objects it constructs.
func (g *Generator) linkPrototype(proto *term.ProtoTerm, n ast.Node) {
	decl, ok := proto.Base().(*term.Leaf)
	if !ok || decl.Kind() != term.NameDeclaration {
		return
	}
	id, _ := decl.Node.(*ast.Ident)
	fn, ok := g.ctors[id]
	if !ok {
		return
	}
	ret := g.factory.FindOrCreateFunctionReturn(decl, len(fn.Params))
	g.equal(g.factory.FindOrCreateProtoParent(ret), proto, nil, n)
}

func describeTarget(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Ident:
		return "variable " + e.Name
	case *ast.Member:
		if e.Computed {
			return "element of " + ast.ExprString(e.Object)
		}
		if e.Name == "prototype" {
			return "prototype of " + ast.ExprString(e.Object)
		}
		return "property " + e.Name
	}
	return ast.ExprString(e)
}
