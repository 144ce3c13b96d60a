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

package ast

// Node is the base for all syntax nodes.
type Node interface {
	// Name of the syntax-type of the node.
	NodeName() string
	// Line returns the 1-based source line of the node, or 0 when unknown.
	Line() int
	// Column returns the 1-based source column of the node, or 0 when unknown.
	Column() int
}

// Expr is the base for all expressions.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the base for all statements.
type Stmt interface {
	Node
	stmtNode()
}

// Pos records the source position of a node.
type Pos struct {
	Ln, Col int
}

// Line returns the 1-based source line, or 0 when unknown.
func (p Pos) Line() int { return p.Ln }

// Column returns the 1-based source column, or 0 when unknown.
func (p Pos) Column() int { return p.Col }

var (
	_ Expr = (*Ident)(nil)
	_ Expr = (*Literal)(nil)
	_ Expr = (*This)(nil)
	_ Expr = (*ArrayLit)(nil)
	_ Expr = (*ObjectLit)(nil)
	_ Expr = (*Function)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*Update)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Logical)(nil)
	_ Expr = (*Assign)(nil)
	_ Expr = (*Conditional)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*New)(nil)
	_ Expr = (*Member)(nil)
	_ Expr = (*Sequence)(nil)
	_ Expr = (*Unsupported)(nil)
)

// Identifier: `x`
type Ident struct {
	Pos
	Name string
}

// "Ident"
func (e *Ident) NodeName() string { return "Ident" }

// LitKind classifies literal values.
type LitKind uint8

const (
	NullLit LitKind = iota
	BoolLit
	NumberLit
	StringLit
	RegExpLit
)

// Literal value: `null`, `true`, `1`, `1.5`, `"s"`, `/re/`
type Literal struct {
	Pos
	Kind LitKind
	// Raw is the source text of the literal.
	Raw string
}

// "Literal"
func (e *Literal) NodeName() string { return "Literal" }

// IsFloat reports whether a number literal is written with a fraction or exponent.
func (e *Literal) IsFloat() bool {
	if e.Kind != NumberLit {
		return false
	}
	if len(e.Raw) > 1 && e.Raw[0] == '0' && (e.Raw[1] == 'x' || e.Raw[1] == 'X') {
		return false
	}
	for i := 0; i < len(e.Raw); i++ {
		switch e.Raw[i] {
		case '.', 'e', 'E':
			return true
		}
	}
	return false
}

// `this`
type This struct {
	Pos
}

// "This"
func (e *This) NodeName() string { return "This" }

// Array literal: `[a, b]`
type ArrayLit struct {
	Pos
	Elems []Expr
}

// "ArrayLit"
func (e *ArrayLit) NodeName() string { return "ArrayLit" }

// Object or map literal: `{a: 1}` or `{"a": 1}`
type ObjectLit struct {
	Pos
	Props []*Property
}

// "ObjectLit"
func (e *ObjectLit) NodeName() string { return "ObjectLit" }

// Paired key and value within an object literal. Quoted is set for string-literal keys.
type Property struct {
	Pos
	Key    string
	Quoted bool
	Value  Expr
}

// "Property"
func (e *Property) NodeName() string { return "Property" }

// Function declaration or expression: `function f(x, y) { ... }`
type Function struct {
	Pos
	// Id is nil for anonymous function expressions.
	Id     *Ident
	Params []*Ident
	Body   *Block
}

// "Function"
func (e *Function) NodeName() string { return "Function" }

// Name returns the declared name of the function, or "".
func (e *Function) Name() string {
	if e.Id == nil {
		return ""
	}
	return e.Id.Name
}

// Unary operation: `!x`, `-x`, `typeof x`, `void x`, `delete o.p`
type Unary struct {
	Pos
	Op string
	X  Expr
}

// "Unary"
func (e *Unary) NodeName() string { return "Unary" }

// Increment or decrement: `x++`, `--x`
type Update struct {
	Pos
	Op     string
	Prefix bool
	X      Expr
}

// "Update"
func (e *Update) NodeName() string { return "Update" }

// Binary operation: `a + b`
type Binary struct {
	Pos
	Op   string
	L, R Expr
}

// "Binary"
func (e *Binary) NodeName() string { return "Binary" }

// Short-circuit operation: `a && b`, `a || b`
type Logical struct {
	Pos
	Op   string
	L, R Expr
}

// "Logical"
func (e *Logical) NodeName() string { return "Logical" }

// Assignment: `x = e`, `o.p = e`, `a[k] += e`
type Assign struct {
	Pos
	Op     string
	Target Expr
	Value  Expr
}

// "Assign"
func (e *Assign) NodeName() string { return "Assign" }

// Conditional expression: `c ? a : b`
type Conditional struct {
	Pos
	Test, Cons, Alt Expr
}

// "Conditional"
func (e *Conditional) NodeName() string { return "Conditional" }

// Application: `f(x)`, `o.m(x)`
type Call struct {
	Pos
	Callee Expr
	Args   []Expr
}

// "Call"
func (e *Call) NodeName() string { return "Call" }

// Construction: `new C(x)`
type New struct {
	Pos
	Callee Expr
	Args   []Expr
}

// "New"
func (e *New) NodeName() string { return "New" }

// Member access: `o.p` or `o[k]`. Name is set when the access is not computed;
// Index is set when it is.
type Member struct {
	Pos
	Object   Expr
	Name     string
	Index    Expr
	Computed bool
}

// "Member"
func (e *Member) NodeName() string { return "Member" }

// Comma expression: `a, b`
type Sequence struct {
	Pos
	Exprs []Expr
}

// "Sequence"
func (e *Sequence) NodeName() string { return "Sequence" }

// Unsupported is a placeholder for syntax which has no typing rule.
type Unsupported struct {
	Pos
	Syntax string
}

// Returns the syntax-type of the unsupported node.
func (e *Unsupported) NodeName() string { return e.Syntax }

func (*Ident) exprNode()       {}
func (*Literal) exprNode()     {}
func (*This) exprNode()        {}
func (*ArrayLit) exprNode()    {}
func (*ObjectLit) exprNode()   {}
func (*Function) exprNode()    {}
func (*Unary) exprNode()       {}
func (*Update) exprNode()      {}
func (*Binary) exprNode()      {}
func (*Logical) exprNode()     {}
func (*Assign) exprNode()      {}
func (*Conditional) exprNode() {}
func (*Call) exprNode()        {}
func (*New) exprNode()         {}
func (*Member) exprNode()      {}
func (*Sequence) exprNode()    {}
func (*Unsupported) exprNode() {}
func (*Unsupported) stmtNode() {}
