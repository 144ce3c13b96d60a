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

// Walk traverses n in depth-first order. Children of a node are skipped when f returns false.
func Walk(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *Ident, *Literal, *This, *Break, *Continue, *Empty, *Unsupported:

	case *Program:
		walkStmts(n.Body, f)

	case *VarDecl:
		for _, d := range n.Decls {
			Walk(d, f)
		}

	case *VarDeclarator:
		Walk(n.Id, f)
		walkExpr(n.Init, f)

	case *FuncDecl:
		Walk(n.Func, f)

	case *Function:
		if n.Id != nil {
			Walk(n.Id, f)
		}
		for _, p := range n.Params {
			Walk(p, f)
		}
		if n.Body != nil {
			Walk(n.Body, f)
		}

	case *ExprStmt:
		walkExpr(n.X, f)

	case *Return:
		walkExpr(n.Arg, f)

	case *If:
		walkExpr(n.Test, f)
		walkStmt(n.Cons, f)
		walkStmt(n.Alt, f)

	case *Block:
		walkStmts(n.Body, f)

	case *For:
		Walk(n.Init, f)
		walkExpr(n.Test, f)
		walkExpr(n.Update, f)
		walkStmt(n.Body, f)

	case *ForIn:
		Walk(n.Left, f)
		walkExpr(n.Right, f)
		walkStmt(n.Body, f)

	case *While:
		walkExpr(n.Test, f)
		walkStmt(n.Body, f)

	case *DoWhile:
		walkStmt(n.Body, f)
		walkExpr(n.Test, f)

	case *Throw:
		walkExpr(n.Arg, f)

	case *Try:
		Walk(n.Block, f)
		if n.Param != nil {
			Walk(n.Param, f)
		}
		if n.Handler != nil {
			Walk(n.Handler, f)
		}
		if n.Finalizer != nil {
			Walk(n.Finalizer, f)
		}

	case *Switch:
		walkExpr(n.Disc, f)
		for _, c := range n.Cases {
			Walk(c, f)
		}

	case *SwitchCase:
		walkExpr(n.Test, f)
		walkStmts(n.Body, f)

	case *ArrayLit:
		for _, e := range n.Elems {
			walkExpr(e, f)
		}

	case *ObjectLit:
		for _, p := range n.Props {
			Walk(p, f)
		}

	case *Property:
		walkExpr(n.Value, f)

	case *Unary:
		walkExpr(n.X, f)

	case *Update:
		walkExpr(n.X, f)

	case *Binary:
		walkExpr(n.L, f)
		walkExpr(n.R, f)

	case *Logical:
		walkExpr(n.L, f)
		walkExpr(n.R, f)

	case *Assign:
		walkExpr(n.Target, f)
		walkExpr(n.Value, f)

	case *Conditional:
		walkExpr(n.Test, f)
		walkExpr(n.Cons, f)
		walkExpr(n.Alt, f)

	case *Call:
		walkExpr(n.Callee, f)
		for _, a := range n.Args {
			walkExpr(a, f)
		}

	case *New:
		walkExpr(n.Callee, f)
		for _, a := range n.Args {
			walkExpr(a, f)
		}

	case *Member:
		walkExpr(n.Object, f)
		walkExpr(n.Index, f)

	case *Sequence:
		for _, e := range n.Exprs {
			walkExpr(e, f)
		}

	default:
		panic("unknown node type: " + n.NodeName())
	}
}

func walkExpr(e Expr, f func(Node) bool) {
	if e != nil {
		Walk(e, f)
	}
}

func walkStmt(s Stmt, f func(Node) bool) {
	if s != nil {
		Walk(s, f)
	}
}

func walkStmts(ss []Stmt, f func(Node) bool) {
	for _, s := range ss {
		walkStmt(s, f)
	}
}
