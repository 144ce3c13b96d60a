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
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

const pointJSON = `{
  "type": "Program",
  "loc": {"start": {"line": 1, "column": 0}},
  "body": [
    {"type": "FunctionDeclaration", "loc": {"start": {"line": 1}},
     "id": {"type": "Identifier", "name": "Point", "loc": {"start": {"line": 1}}},
     "params": [{"type": "Identifier", "name": "x"}],
     "body": {"type": "BlockStatement", "body": [
       {"type": "ExpressionStatement", "loc": {"start": {"line": 2}},
        "expression": {"type": "AssignmentExpression", "operator": "=", "loc": {"start": {"line": 2}},
          "left": {"type": "MemberExpression", "computed": false,
            "object": {"type": "ThisExpression"},
            "property": {"type": "Identifier", "name": "x"}},
          "right": {"type": "Identifier", "name": "x"}}}
     ]}},
    {"type": "VariableDeclaration", "kind": "var", "loc": {"start": {"line": 4}},
     "declarations": [
       {"type": "VariableDeclarator",
        "id": {"type": "Identifier", "name": "m"},
        "init": {"type": "ObjectExpression", "properties": [
          {"type": "Property", "kind": "init", "computed": false,
           "key": {"type": "Literal", "value": "a", "raw": "\"a\""},
           "value": {"type": "Literal", "value": 1.5, "raw": "1.5"}},
          {"type": "Property", "kind": "init", "computed": false,
           "key": {"type": "Literal", "value": "b", "raw": "\"b\""},
           "value": {"type": "Literal", "value": null, "raw": "null"}}
        ]}}
     ]},
    {"type": "LabeledStatement", "loc": {"start": {"line": 5}}}
  ]
}`

func TestDecodeESTree(t *testing.T) {
	prog, err := Decode([]byte(pointJSON))
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Body) != 3 {
		t.Fatalf("unexpected body: %s", spew.Sdump(prog.Body))
	}
	fd, ok := prog.Body[0].(*FuncDecl)
	if !ok || fd.Func.Name() != "Point" || len(fd.Func.Params) != 1 || fd.Line() != 1 {
		t.Fatalf("unexpected function: %s", spew.Sdump(prog.Body[0]))
	}
	assign := fd.Func.Body.Body[0].(*ExprStmt).X.(*Assign)
	if s := ExprString(assign); s != "this.x = x" {
		t.Fatalf("assign: %s", s)
	}
	if assign.Line() != 2 {
		t.Fatalf("expected line 2, found %d", assign.Line())
	}

	vd := prog.Body[1].(*VarDecl)
	obj := vd.Decls[0].Init.(*ObjectLit)
	if !obj.Props[0].Quoted || obj.Props[0].Key != "a" {
		t.Fatalf("expected quoted key: %s", spew.Sdump(obj.Props[0]))
	}
	if lit := obj.Props[0].Value.(*Literal); lit.Kind != NumberLit || !lit.IsFloat() {
		t.Fatalf("expected float literal: %s", spew.Sdump(lit))
	}
	if lit := obj.Props[1].Value.(*Literal); lit.Kind != NullLit {
		t.Fatalf("expected null literal: %s", spew.Sdump(lit))
	}
	if s := ExprString(obj); s != `{"a": 1.5, "b": null}` {
		t.Fatalf("object: %s", s)
	}

	if u, ok := prog.Body[2].(*Unsupported); !ok || u.NodeName() != "LabeledStatement" || u.Line() != 5 {
		t.Fatalf("expected unsupported statement: %s", spew.Sdump(prog.Body[2]))
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, src := range []string{
		`[1, 2]`,
		`{"type": "Identifier", "name": "x"}`,
		`{"type": "Program", "body": [{"name": "x"}]}`,
		`{"type": "Program", "body": [{"type": "VariableDeclaration", "declarations": [{"type": "VariableDeclarator", "id": {"type": "ThisExpression"}}]}]}`,
	} {
		if _, err := Decode([]byte(src)); err == nil {
			t.Fatalf("expected error for %s", src)
		}
	}
}

func TestWalk(t *testing.T) {
	x := &Ident{Name: "x"}
	expr := &Call{
		Callee: &Member{Object: &Ident{Name: "o"}, Name: "f"},
		Args:   []Expr{x, &Binary{Op: "+", L: &Literal{Kind: NumberLit, Raw: "1"}, R: x}},
	}
	count := 0
	Walk(expr, func(n Node) bool {
		if _, ok := n.(*Ident); ok {
			count++
		}
		return true
	})
	if count != 3 {
		t.Fatalf("expected 3 identifiers, found %d", count)
	}
	if s := ExprString(expr); s != "o.f(x, 1 + x)" {
		t.Fatalf("expr: %s", s)
	}

	fn := &Function{Body: &Block{Body: []Stmt{&Return{Arg: &This{}}}}}
	visited := false
	Walk(&ExprStmt{X: fn}, func(n Node) bool {
		if _, ok := n.(*This); ok {
			visited = true
		}
		_, isFunc := n.(*Function)
		return !isFunc
	})
	if visited {
		t.Fatalf("expected function body to be skipped")
	}
}

func TestDecodeMissingChildren(t *testing.T) {
	stmt := func(s string) string { return `{type: Program, body: [` + s + `]}` }
	expr := func(s string) string { return stmt(`{type: ExpressionStatement, expression: ` + s + `}`) }
	x := `{type: Identifier, name: x}`
	cases := []struct {
		src, want string
	}{
		{stmt(`{type: ExpressionStatement, loc: {start: {line: 3}}}`), "decode ESTree: line 3: missing expression of ExpressionStatement"},
		{stmt(`{type: IfStatement, loc: {start: {line: 4}}, consequent: {type: EmptyStatement}}`), "decode ESTree: line 4: missing test of IfStatement"},
		{stmt(`{type: ForInStatement, right: ` + x + `, body: {type: BlockStatement, body: []}}`), "missing left of ForInStatement"},
		{stmt(`{type: ForInStatement, left: ` + x + `, body: {type: BlockStatement, body: []}}`), "missing right of ForInStatement"},
		{stmt(`{type: WhileStatement, body: {type: EmptyStatement}}`), "missing test of WhileStatement"},
		{stmt(`{type: ThrowStatement}`), "missing argument of ThrowStatement"},
		{expr(`{type: MemberExpression, computed: false, property: ` + x + `}`), "missing object of MemberExpression"},
		{expr(`{type: MemberExpression, computed: false, object: ` + x + `}`), "missing property of MemberExpression"},
		{expr(`{type: MemberExpression, computed: true, object: ` + x + `}`), "missing property of MemberExpression"},
		{expr(`{type: CallExpression, arguments: []}`), "missing callee of CallExpression"},
		{expr(`{type: NewExpression, arguments: []}`), "missing callee of NewExpression"},
		{expr(`{type: BinaryExpression, operator: "+", left: ` + x + `}`), "missing right of BinaryExpression"},
		{expr(`{type: LogicalExpression, operator: "||", right: ` + x + `}`), "missing left of LogicalExpression"},
		{expr(`{type: AssignmentExpression, operator: "=", right: ` + x + `}`), "missing left of AssignmentExpression"},
		{expr(`{type: UnaryExpression, operator: "-"}`), "missing argument of UnaryExpression"},
		{expr(`{type: UpdateExpression, operator: "++"}`), "missing argument of UpdateExpression"},
		{expr(`{type: ConditionalExpression, test: ` + x + `, consequent: ` + x + `}`), "missing alternate of ConditionalExpression"},
		{expr(`{type: Identifier, loc: {start: {line: 7}}}`), "decode ESTree: line 7: missing name of Identifier"},
	}
	for _, c := range cases {
		_, err := Decode([]byte(c.src))
		if err == nil || !strings.Contains(err.Error(), c.want) {
			t.Fatalf("expected %q for %s, found %v", c.want, c.src, err)
		}
	}
}

func TestDecodeColumns(t *testing.T) {
	prog, err := Decode([]byte(`{type: Program, body: [
  {type: ExpressionStatement, loc: {start: {line: 2, column: 0}},
   expression: {type: Identifier, name: x, loc: {start: {line: 2, column: 4}}}}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := prog.Body[0].(*ExprStmt)
	if s.Line() != 2 || s.Column() != 1 {
		t.Fatalf("statement position: %d:%d", s.Line(), s.Column())
	}
	if id := s.X.(*Ident); id.Line() != 2 || id.Column() != 5 {
		t.Fatalf("identifier position: %d:%d", id.Line(), id.Column())
	}
	if id := (&Ident{Pos: Pos{Ln: 3}, Name: "y"}); id.Column() != 0 {
		t.Fatalf("expected unknown column")
	}
}
