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

package term

import (
	"fmt"
	"strconv"

	"github.com/wdamron/protoinfer/ast"
	"github.com/wdamron/protoinfer/types"
)

// Factory creates and memoizes terms, so that every logical program entity maps to
// exactly one term. Keys combine the identity of syntax nodes with the identity of
// base terms and structural values (names, indexes and arities).
//
// Factory methods never return nil. A Factory is owned by a single generator and is not
// safe for concurrent use.
type Factory struct {
	Arena    Arena
	env      *types.Env
	resolver ast.Resolver
	terms    []Term
	vars     VarTracker

	decls    map[*ast.Ident]*Leaf
	envDecls map[envKey]*Leaf
	exprs    map[nodeKey]*Leaf
	this     map[*ast.Function]*Leaf
	consts   map[string]*Leaf
	params   map[paramKey]*Leaf

	props     map[propKey]*PropTerm
	indexed   map[Term]*IndexedTerm
	keys      map[Term]*KeyTerm
	fnParams  map[fnParamKey]*ParamTerm
	returns   map[arityKey]*ReturnTerm
	receivers map[arityKey]*ReceiverTerm
	protos    map[Term]*ProtoTerm
	parents   map[Term]*ParentTerm
	ops       map[opKey]*OpTerm
	unaryOps  map[unaryKey]*UnaryTerm
}

type envKey struct {
	name string
	use  ast.Node
}

type nodeKey struct {
	node ast.Node
	kind Kind
}

type paramKey struct {
	site ast.Node
	name string
}

type propKey struct {
	base Term
	name string
}

type fnParamKey struct {
	fn           Term
	index, arity int
}

type arityKey struct {
	fn    Term
	arity int
}

type opKey struct {
	op   string
	l, r Term
}

type unaryKey struct {
	op string
	x  Term
}

// NewFactory creates a factory which resolves names through r and builtin members
// through env.
func NewFactory(env *types.Env, r ast.Resolver) *Factory {
	return &Factory{
		env:       env,
		resolver:  r,
		decls:     make(map[*ast.Ident]*Leaf),
		envDecls:  make(map[envKey]*Leaf),
		exprs:     make(map[nodeKey]*Leaf),
		this:      make(map[*ast.Function]*Leaf),
		consts:    make(map[string]*Leaf),
		params:    make(map[paramKey]*Leaf),
		props:     make(map[propKey]*PropTerm),
		indexed:   make(map[Term]*IndexedTerm),
		keys:      make(map[Term]*KeyTerm),
		fnParams:  make(map[fnParamKey]*ParamTerm),
		returns:   make(map[arityKey]*ReturnTerm),
		receivers: make(map[arityKey]*ReceiverTerm),
		protos:    make(map[Term]*ProtoTerm),
		parents:   make(map[Term]*ParentTerm),
		ops:       make(map[opKey]*OpTerm),
		unaryOps:  make(map[unaryKey]*UnaryTerm),
	}
}

// Env returns the builtin environment of the factory.
func (f *Factory) Env() *types.Env { return f.env }

// Terms returns every term created by the factory, in order of creation.
// The index of each term within the list is its id.
func (f *Factory) Terms() []Term { return f.terms }

// Len returns the number of terms created by the factory.
func (f *Factory) Len() int { return len(f.terms) }

// FreshVar allocates an unbound type-variable.
func (f *Factory) FreshVar() *types.Var { return f.vars.New() }

// FreshVars allocates count unbound type-variables.
func (f *Factory) FreshVars(count int) []types.Type { return f.vars.NewList(count) }

// VarCount returns the number of type-variables allocated by the factory.
func (f *Factory) VarCount() int { return f.vars.Count() }

func (f *Factory) header(kind Kind) header {
	return header{id: len(f.terms), kind: kind}
}

func (f *Factory) newLeaf(kind Kind, label string, node ast.Node, t types.Type) *Leaf {
	leaf := &Leaf{header: f.header(kind), arena: &f.Arena, label: label, Node: node}
	leaf.slot = f.Arena.Alloc(t)
	f.terms = append(f.terms, leaf)
	if node != nil {
		leaf.AddLine(node.Line())
	}
	return leaf
}

func (f *Factory) add(t Term) { f.terms = append(f.terms, t) }

// FindOrCreateNameDeclaration returns the term of the canonical declaration which id
// resolves to. Every occurrence resolving to the same declaration shares one term.
// An occurrence which does not resolve is an invariant violation.
func (f *Factory) FindOrCreateNameDeclaration(id *ast.Ident) *Leaf {
	decl := f.resolver.FindDeclaration(id)
	if decl == nil {
		panic(fmt.Sprintf("no declaration for %q at line %d", id.Name, id.Line()))
	}
	if t, ok := f.decls[decl]; ok {
		t.AddLine(id.Line())
		return t
	}
	t := f.newLeaf(NameDeclaration, "decl("+decl.Name+"@"+strconv.Itoa(decl.Line())+")", decl, nil)
	t.AddLine(id.Line())
	f.decls[decl] = t
	return t
}

// FindOrCreateEnvironmentDeclaration returns the term of a builtin global name at one use
// site. Generic parameters of the declared type are replaced by fresh type-variables,
// which are listed in the term's Bindings. A name missing from the environment is an
// invariant violation.
func (f *Factory) FindOrCreateEnvironmentDeclaration(name string, use ast.Node) *Leaf {
	key := envKey{name, use}
	if t, ok := f.envDecls[key]; ok {
		return t
	}
	declared, ok := f.env.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("no environment declaration for %q", name))
	}
	var bindings []Binding
	for _, v := range types.GenericVars(declared) {
		fresh := f.FreshVar()
		declared = types.Subst(declared, v, fresh)
		bindings = append(bindings, Binding{Name: v.Name, Var: fresh})
	}
	t := f.newLeaf(EnvironmentDeclaration, "env("+name+")", use, declared)
	t.Bindings = bindings
	f.envDecls[key] = t
	return t
}

func (f *Factory) findOrCreateNode(kind Kind, n ast.Node, prefix string) *Leaf {
	key := nodeKey{n, kind}
	if t, ok := f.exprs[key]; ok {
		return t
	}
	t := f.newLeaf(kind, prefix+"("+n.NodeName()+"@"+position(n)+")", n, nil)
	f.exprs[key] = t
	return t
}

// The line of n, followed by its column when known.
func position(n ast.Node) string {
	if n.Column() == 0 {
		return strconv.Itoa(n.Line())
	}
	return strconv.Itoa(n.Line()) + ":" + strconv.Itoa(n.Column())
}

// FindOrCreateExpression returns the term of a syntax node which needs a type.
func (f *Factory) FindOrCreateExpression(n ast.Node) *Leaf {
	return f.findOrCreateNode(Expression, n, "expr")
}

// FindOrCreateObjectLiteral returns the term of an object literal with unquoted keys.
func (f *Factory) FindOrCreateObjectLiteral(n *ast.ObjectLit) *Leaf {
	return f.findOrCreateNode(ObjectLiteral, n, "object")
}

// FindOrCreateMapLiteral returns the term of an object literal with quoted keys.
func (f *Factory) FindOrCreateMapLiteral(n *ast.ObjectLit) *Leaf {
	return f.findOrCreateNode(MapLiteral, n, "map")
}

// FindOrCreateThis returns the term of `this` within a function.
func (f *Factory) FindOrCreateThis(fn *ast.Function) *Leaf {
	if t, ok := f.this[fn]; ok {
		return t
	}
	name := fn.Name()
	if name == "" {
		name = "function"
	}
	t := f.newLeaf(This, "this("+name+"@"+strconv.Itoa(fn.Line())+")", fn, nil)
	f.this[fn] = t
	return t
}

// FindOrCreateTypeConstant returns the term of a fixed type. Writes to the term are ignored.
func (f *Factory) FindOrCreateTypeConstant(typ types.Type) *Leaf {
	key := types.TypeString(typ)
	if t, ok := f.consts[key]; ok {
		return t
	}
	t := f.newLeaf(TypeConstant, "const("+key+")", nil, typ)
	t.fixed = true
	f.consts[key] = t
	return t
}

// NewTypeVariable creates a fresh term, distinct from every other term. When seed is nil,
// the term starts as a fresh type-variable.
func (f *Factory) NewTypeVariable(seed types.Type) *Leaf {
	if seed == nil {
		seed = f.FreshVar()
	}
	return f.newLeaf(TypeVariable, "tv#"+strconv.Itoa(len(f.terms)), nil, seed)
}

// FindOrCreateTypeParam returns the placeholder for the generic parameter name of a builtin
// at one use site.
func (f *Factory) FindOrCreateTypeParam(site ast.Node, name string) *Leaf {
	key := paramKey{site, name}
	if t, ok := f.params[key]; ok {
		return t
	}
	t := f.newLeaf(TypeParam, "tparam#"+strconv.Itoa(len(f.terms)), site, f.FreshVar())
	f.params[key] = t
	return t
}

// FindOrCreatePropertyAccess returns the term of property name of base.
func (f *Factory) FindOrCreatePropertyAccess(base Term, name string) *PropTerm {
	key := propKey{base, name}
	if t, ok := f.props[key]; ok {
		return t
	}
	t := &PropTerm{header: f.header(PropertyAccess), base: base, env: f.env, Name: name}
	f.props[key] = t
	f.add(t)
	return t
}

// MarkWritten records that a property has been assigned through. Properties created by
// writing through the term are then read-write.
func (f *Factory) MarkWritten(t *PropTerm) { t.written = true }

// FindOrCreateIndexed returns the term of the element type of base.
func (f *Factory) FindOrCreateIndexed(base Term) *IndexedTerm {
	if t, ok := f.indexed[base]; ok {
		return t
	}
	t := &IndexedTerm{header: f.header(Indexed), base: base}
	f.indexed[base] = t
	f.add(t)
	return t
}

// FindOrCreateKey returns the term of the key type of base.
func (f *Factory) FindOrCreateKey(base Term) *KeyTerm {
	if t, ok := f.keys[base]; ok {
		return t
	}
	t := &KeyTerm{header: f.header(Key), base: base}
	f.keys[base] = t
	f.add(t)
	return t
}

// FindOrCreateFunctionParam returns the term of parameter index of the member of fn which
// accepts arity parameters.
func (f *Factory) FindOrCreateFunctionParam(fn Term, index, arity int) *ParamTerm {
	if index < 0 || index >= arity {
		panic(fmt.Sprintf("parameter index %d out of range for arity %d", index, arity))
	}
	key := fnParamKey{fn, index, arity}
	if t, ok := f.fnParams[key]; ok {
		return t
	}
	t := &ParamTerm{header: f.header(FunctionParam), fn: fn, Index: index, Arity: arity}
	f.fnParams[key] = t
	f.add(t)
	return t
}

// FindOrCreateFunctionReturn returns the term of the return type of the member of fn which
// accepts arity parameters.
func (f *Factory) FindOrCreateFunctionReturn(fn Term, arity int) *ReturnTerm {
	key := arityKey{fn, arity}
	if t, ok := f.returns[key]; ok {
		return t
	}
	t := &ReturnTerm{header: f.header(FunctionReturn), fn: fn, Arity: arity}
	f.returns[key] = t
	f.add(t)
	return t
}

// FindOrCreateMethodReceiver returns the term of the receiver type of the member of fn which
// accepts arity parameters.
func (f *Factory) FindOrCreateMethodReceiver(fn Term, arity int) *ReceiverTerm {
	key := arityKey{fn, arity}
	if t, ok := f.receivers[key]; ok {
		return t
	}
	t := &ReceiverTerm{header: f.header(MethodReceiver), fn: fn, Arity: arity}
	f.receivers[key] = t
	f.add(t)
	return t
}

// FindOrCreateProto returns the term of the prototype object of a constructor.
func (f *Factory) FindOrCreateProto(ctor Term) *ProtoTerm {
	if t, ok := f.protos[ctor]; ok {
		return t
	}
	t := &ProtoTerm{header: f.header(Proto), ctor: ctor}
	f.protos[ctor] = t
	f.add(t)
	return t
}

// FindOrCreateProtoParent returns the term of the prototype of an object.
func (f *Factory) FindOrCreateProtoParent(obj Term) *ParentTerm {
	if t, ok := f.parents[obj]; ok {
		return t
	}
	t := &ParentTerm{header: f.header(ProtoParent), obj: obj}
	f.parents[obj] = t
	f.add(t)
	return t
}

// FindOrCreateOperator returns the term of the result of a binary operator.
func (f *Factory) FindOrCreateOperator(op string, l, r Term) *OpTerm {
	key := opKey{op, l, r}
	if t, ok := f.ops[key]; ok {
		return t
	}
	t := &OpTerm{header: f.header(Operator), Op: op, L: l, R: r}
	f.ops[key] = t
	f.add(t)
	return t
}

// FindOrCreateUnaryOperator returns the term of the result of a unary operator.
func (f *Factory) FindOrCreateUnaryOperator(op string, x Term) *UnaryTerm {
	key := unaryKey{op, x}
	if t, ok := f.unaryOps[key]; ok {
		return t
	}
	t := &UnaryTerm{header: f.header(UnaryOperator), Op: op, X: x}
	f.unaryOps[key] = t
	f.add(t)
	return t
}

// FindOrCreatePath returns the chain of derived terms which projects the component at
// path p out of t.
func (f *Factory) FindOrCreatePath(t Term, p types.Path) Term {
	for _, s := range p {
		switch s.Kind {
		case types.StepParam:
			t = f.FindOrCreateFunctionParam(t, s.Index, s.Arity)
		case types.StepReturn:
			t = f.FindOrCreateFunctionReturn(t, s.Arity)
		case types.StepReceiver:
			t = f.FindOrCreateMethodReceiver(t, s.Arity)
		case types.StepElem:
			t = f.FindOrCreateIndexed(t)
		case types.StepKey:
			t = f.FindOrCreateKey(t)
		case types.StepProp:
			t = f.FindOrCreatePropertyAccess(t, s.Name)
		case types.StepProto:
			t = f.FindOrCreateProto(t)
		case types.StepParent:
			t = f.FindOrCreateProtoParent(t)
		default:
			panic("unexpected path step")
		}
	}
	return t
}
