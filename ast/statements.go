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

var (
	_ Stmt = (*Program)(nil)
	_ Stmt = (*VarDecl)(nil)
	_ Stmt = (*FuncDecl)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*Return)(nil)
	_ Stmt = (*If)(nil)
	_ Stmt = (*Block)(nil)
	_ Stmt = (*For)(nil)
	_ Stmt = (*ForIn)(nil)
	_ Stmt = (*While)(nil)
	_ Stmt = (*DoWhile)(nil)
	_ Stmt = (*Break)(nil)
	_ Stmt = (*Continue)(nil)
	_ Stmt = (*Empty)(nil)
	_ Stmt = (*Throw)(nil)
	_ Stmt = (*Try)(nil)
	_ Stmt = (*Switch)(nil)
	_ Stmt = (*Unsupported)(nil)
)

// Compilation unit
type Program struct {
	Pos
	Body []Stmt
}

// "Program"
func (s *Program) NodeName() string { return "Program" }

// Variable declaration: `var a = 1, b`
type VarDecl struct {
	Pos
	Decls []*VarDeclarator
}

// "VarDecl"
func (s *VarDecl) NodeName() string { return "VarDecl" }

// Single binding within a variable declaration. Init is nil when absent.
type VarDeclarator struct {
	Pos
	Id   *Ident
	Init Expr
}

// "VarDeclarator"
func (s *VarDeclarator) NodeName() string { return "VarDeclarator" }

// Function declaration: `function f() {}`
type FuncDecl struct {
	Pos
	Func *Function
}

// "FuncDecl"
func (s *FuncDecl) NodeName() string { return "FuncDecl" }

// Expression statement: `f();`
type ExprStmt struct {
	Pos
	X Expr
}

// "ExprStmt"
func (s *ExprStmt) NodeName() string { return "ExprStmt" }

// Return statement. Arg is nil for a bare `return;`.
type Return struct {
	Pos
	Arg Expr
}

// "Return"
func (s *Return) NodeName() string { return "Return" }

// Conditional statement. Alt may be nil.
type If struct {
	Pos
	Test Expr
	Cons Stmt
	Alt  Stmt
}

// "If"
func (s *If) NodeName() string { return "If" }

// Block statement: `{ ... }`
type Block struct {
	Pos
	Body []Stmt
}

// "Block"
func (s *Block) NodeName() string { return "Block" }

// Loop: `for (init; test; update) body`. Init is a *VarDecl, an Expr or nil.
type For struct {
	Pos
	Init   Node
	Test   Expr
	Update Expr
	Body   Stmt
}

// "For"
func (s *For) NodeName() string { return "For" }

// Key iteration: `for (k in o) body`. Left is a *VarDecl or an Expr.
type ForIn struct {
	Pos
	Left  Node
	Right Expr
	Body  Stmt
}

// "ForIn"
func (s *ForIn) NodeName() string { return "ForIn" }

// Loop: `while (test) body`
type While struct {
	Pos
	Test Expr
	Body Stmt
}

// "While"
func (s *While) NodeName() string { return "While" }

// Loop: `do body while (test)`
type DoWhile struct {
	Pos
	Body Stmt
	Test Expr
}

// "DoWhile"
func (s *DoWhile) NodeName() string { return "DoWhile" }

// `break`
type Break struct {
	Pos
}

// "Break"
func (s *Break) NodeName() string { return "Break" }

// `continue`
type Continue struct {
	Pos
}

// "Continue"
func (s *Continue) NodeName() string { return "Continue" }

// Empty statement: `;`
type Empty struct {
	Pos
}

// "Empty"
func (s *Empty) NodeName() string { return "Empty" }

// `throw e`
type Throw struct {
	Pos
	Arg Expr
}

// "Throw"
func (s *Throw) NodeName() string { return "Throw" }

// `try { } catch (e) { } finally { }`. Param, Handler and Finalizer may be nil.
type Try struct {
	Pos
	Block     *Block
	Param     *Ident
	Handler   *Block
	Finalizer *Block
}

// "Try"
func (s *Try) NodeName() string { return "Try" }

// `switch (disc) { case a: ...; default: ... }`
type Switch struct {
	Pos
	Disc  Expr
	Cases []*SwitchCase
}

// "Switch"
func (s *Switch) NodeName() string { return "Switch" }

// Case clause; Test is nil for `default`.
type SwitchCase struct {
	Pos
	Test Expr
	Body []Stmt
}

// "SwitchCase"
func (s *SwitchCase) NodeName() string { return "SwitchCase" }

func (*Program) stmtNode()  {}
func (*VarDecl) stmtNode()  {}
func (*FuncDecl) stmtNode() {}
func (*ExprStmt) stmtNode() {}
func (*Return) stmtNode()   {}
func (*If) stmtNode()       {}
func (*Block) stmtNode()    {}
func (*For) stmtNode()      {}
func (*ForIn) stmtNode()    {}
func (*While) stmtNode()    {}
func (*DoWhile) stmtNode()  {}
func (*Break) stmtNode()    {}
func (*Continue) stmtNode() {}
func (*Empty) stmtNode()    {}
func (*Throw) stmtNode()    {}
func (*Try) stmtNode()      {}
func (*Switch) stmtNode()   {}

// Resolver is the name-resolution service for a program.
type Resolver interface {
	// FindDeclaration returns the declaring occurrence of the name referenced by id,
	// or nil if the name is not declared within the program. A declaring occurrence
	// resolves to itself.
	FindDeclaration(id *Ident) *Ident
	// IsGlobal reports whether the name is bound outside the program.
	IsGlobal(name string) bool
}
