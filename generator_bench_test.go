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

package protoinfer_test

import (
	"strconv"
	"testing"

	. "github.com/wdamron/protoinfer"
	. "github.com/wdamron/protoinfer/construct"

	"github.com/wdamron/protoinfer/ast"
	"github.com/wdamron/protoinfer/types"
)

// function Point(x, y) { this.x = x; this.y = y; }
// Point.prototype = { norm: function() { return this.x * this.x + this.y * this.y; } };
// var p0 = new Point(0, 1); p0.norm();
// ...
func pointProgram(uses int) *ast.Program {
	this := func() ast.Expr { return This(1) }
	sq := func(name string) ast.Expr { return Binary(2, "*", Member(2, this(), name), Member(2, this(), name)) }
	body := []ast.Stmt{
		FuncDecl(Func(1, "Point", []string{"x", "y"},
			Expr(1, Assign(1, Member(1, this(), "x"), Ident(1, "x"))),
			Expr(1, Assign(1, Member(1, this(), "y"), Ident(1, "y"))),
		)),
		Expr(2, Assign(2, Member(2, Ident(2, "Point"), "prototype"), Object(2,
			Prop("norm", Func(2, "", nil, Return(2, Binary(2, "+", sq("x"), sq("y"))))),
		))),
	}
	for i := 0; i < uses; i++ {
		ln := 3 + 2*i
		name := "p" + strconv.Itoa(i)
		body = append(body,
			Var(ln, name, New(ln, Ident(ln, "Point"), Num(ln, strconv.Itoa(i)), Num(ln, "1.5"))),
			Expr(ln+1, Call(ln+1, Ident(ln+1, "print"), Call(ln+1, Member(ln+1, Ident(ln+1, name), "norm")))),
		)
	}
	return Program(body...)
}

func BenchmarkGeneratePoints(b *testing.B) {
	env := types.NewEnv()
	env.Add("print", TFunc1(&types.Var{Name: "T"}, types.Void))
	prog := pointProgram(100)

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		r, err := Generate(prog, env)
		if err != nil || r.Constraints.Len() == 0 {
			b.Fatal(err)
		}
	}
}

func BenchmarkEqualityClasses(b *testing.B) {
	env := types.NewEnv()
	env.Add("print", TFunc1(&types.Var{Name: "T"}, types.Void))
	r, err := Generate(pointProgram(100), env)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		if len(r.EqualityClasses()) == 0 {
			b.Fatal("no equality classes")
		}
	}
}
