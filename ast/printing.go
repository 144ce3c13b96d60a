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

import (
	"strconv"
	"strings"
)

// ExprString returns a compact source-like representation of an expression.
// Function bodies are elided.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, false, e)
	return sb.String()
}

func exprString(sb *strings.Builder, simple bool, e Expr) {
	switch et := e.(type) {
	case nil:

	case *Ident:
		sb.WriteString(et.Name)

	case *Literal:
		sb.WriteString(et.Raw)

	case *This:
		sb.WriteString("this")

	case *ArrayLit:
		sb.WriteByte('[')
		for i, el := range et.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, el)
		}
		sb.WriteByte(']')

	case *ObjectLit:
		sb.WriteByte('{')
		for i, p := range et.Props {
			if i > 0 {
				sb.WriteString(", ")
			}
			if p.Quoted {
				sb.WriteString(strconv.Quote(p.Key))
			} else {
				sb.WriteString(p.Key)
			}
			sb.WriteString(": ")
			exprString(sb, false, p.Value)
		}
		sb.WriteByte('}')

	case *Function:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("function")
		if et.Id != nil {
			sb.WriteByte(' ')
			sb.WriteString(et.Id.Name)
		}
		sb.WriteByte('(')
		for i, p := range et.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
		}
		sb.WriteString(") {...}")
		if simple {
			sb.WriteByte(')')
		}

	case *Unary:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString(et.Op)
		if len(et.Op) > 1 {
			sb.WriteByte(' ')
		}
		exprString(sb, true, et.X)
		if simple {
			sb.WriteByte(')')
		}

	case *Update:
		if et.Prefix {
			sb.WriteString(et.Op)
			exprString(sb, true, et.X)
		} else {
			exprString(sb, true, et.X)
			sb.WriteString(et.Op)
		}

	case *Binary:
		binaryString(sb, simple, et.Op, et.L, et.R)

	case *Logical:
		binaryString(sb, simple, et.Op, et.L, et.R)

	case *Assign:
		binaryString(sb, simple, et.Op, et.Target, et.Value)

	case *Conditional:
		if simple {
			sb.WriteByte('(')
		}
		exprString(sb, true, et.Test)
		sb.WriteString(" ? ")
		exprString(sb, true, et.Cons)
		sb.WriteString(" : ")
		exprString(sb, true, et.Alt)
		if simple {
			sb.WriteByte(')')
		}

	case *Call:
		exprString(sb, true, et.Callee)
		argsString(sb, et.Args)

	case *New:
		sb.WriteString("new ")
		exprString(sb, true, et.Callee)
		argsString(sb, et.Args)

	case *Member:
		exprString(sb, true, et.Object)
		if et.Computed {
			sb.WriteByte('[')
			exprString(sb, false, et.Index)
			sb.WriteByte(']')
		} else {
			sb.WriteByte('.')
			sb.WriteString(et.Name)
		}

	case *Sequence:
		sb.WriteByte('(')
		for i, x := range et.Exprs {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, x)
		}
		sb.WriteByte(')')

	case *Unsupported:
		sb.WriteString("<" + et.Syntax + ">")
	}
}

func binaryString(sb *strings.Builder, simple bool, op string, l, r Expr) {
	if simple {
		sb.WriteByte('(')
	}
	exprString(sb, true, l)
	sb.WriteByte(' ')
	sb.WriteString(op)
	sb.WriteByte(' ')
	exprString(sb, true, r)
	if simple {
		sb.WriteByte(')')
	}
}

func argsString(sb *strings.Builder, args []Expr) {
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		exprString(sb, false, a)
	}
	sb.WriteByte(')')
}
