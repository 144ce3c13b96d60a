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
	"github.com/wdamron/protoinfer/term"
	"github.com/wdamron/protoinfer/types"
)

// Builtins have no generic types. Instead, each use of a builtin with generic parameters
// substitutes fresh type-variables for them, and a single type-parameter term per use
// and generic parameter is equated to every position at which the parameter occurs.

// genEnvDecl returns the term of a builtin name at one use site, equating one
// type-parameter per generic parameter to each of its occurrences.
func (g *Generator) genEnvDecl(use *ast.Ident) term.Term {
	f := g.factory
	decl := f.FindOrCreateEnvironmentDeclaration(use.Name, use)
	if len(decl.Bindings) == 0 {
		return decl
	}
	declared := decl.Type()
	for _, b := range decl.Bindings {
		param := f.FindOrCreateTypeParam(use, b.Name)
		for _, path := range types.Occurrences(declared, b.Var) {
			g.equal(param, f.FindOrCreatePath(decl, path), nil, use)
		}
	}
	return decl
}

// genMemberGenerics equates the element type of a builtin array or map to every position
// at which the element type occurs within the type of one of its members.
func (g *Generator) genMemberGenerics(e *ast.Member, base term.Term, member term.Term) {
	protoName := types.ProtoName(base.Type())
	switch protoName {
	case types.ArrayProto, types.MapProto:
	case "":
		if !types.Unknown(base.Type()) || g.names.Defined.Contains(e.Name) {
			return
		}
		protos := g.env.GenericProtos(e.Name)
		if len(protos) != 1 {
			return
		}
		protoName = protos[0]
	default:
		return
	}
	declared, elem, ok := g.env.GenericMember(protoName, e.Name)
	if !ok {
		return
	}
	f := g.factory
	param := f.FindOrCreateTypeParam(e, types.ElemVarName)
	g.equal(param, f.FindOrCreateIndexed(base), nil, e)
	for _, path := range types.Occurrences(declared, elem) {
		g.equal(param, f.FindOrCreatePath(member, path), nil, e)
	}
}
