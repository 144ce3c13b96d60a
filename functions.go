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
	"github.com/wdamron/protoinfer/internal/astutil"
	"github.com/wdamron/protoinfer/term"
	"github.com/wdamron/protoinfer/types"
)

// genFunction emits the constraints of a function and its body, and returns the term of
// its signature. Parameters start as fresh type-variables.
func (g *Generator) genFunction(fn *ast.Function) term.Term {
	if t, ok := g.terms[fn]; ok {
		return t
	}
	f := g.factory
	t := g.record(fn, f.FindOrCreateExpression(fn))
	kind := astutil.Classify(fn)
	arity := len(fn.Params)

	params := f.FreshVars(arity)
	switch kind {
	case astutil.PlainFunction:
		t.SetType(&types.Function{Params: params, Return: f.FreshVar()})
	case astutil.Method:
		t.SetType(&types.UnattachedMethod{Receiver: f.FreshVar(), Params: params, Return: f.FreshVar()})
	case astutil.Constructor:
		// The constructed object declares every property written through `this` in the body.
		written := astutil.WrittenThisProperties(fn)
		props := make([]types.Property, len(written))
		for i, name := range written {
			props[i] = types.Property{Name: name, Type: f.FreshVar()}
		}
		obj := types.NewObject(props...)
		obj.Proto = f.FreshVar()
		t.SetType(&types.Constructor{Params: params, Return: obj, Proto: f.FreshVar()})
	}

	for i, p := range fn.Params {
		g.equal(f.FindOrCreateNameDeclaration(p), f.FindOrCreateFunctionParam(t, i, arity), nil, p)
	}
	switch kind {
	case astutil.Method:
		g.equal(f.FindOrCreateThis(fn), f.FindOrCreateMethodReceiver(t, arity), nil, fn)
	case astutil.Constructor:
		g.equal(f.FindOrCreateThis(fn), f.FindOrCreateFunctionReturn(t, arity), nil, fn)
	}
	if kind != astutil.Constructor && !astutil.ReturnsValue(fn) {
		g.equal(f.FindOrCreateFunctionReturn(t, arity), f.FindOrCreateTypeConstant(types.Void), nil, fn)
	}

	if fn.Body != nil {
		g.frames = append(g.frames, &frame{fn: fn, term: t, kind: kind})
		g.genStmts(fn.Body.Body)
		g.frames = g.frames[:len(g.frames)-1]
	}
	return t
}
