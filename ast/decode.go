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
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Decode reads an ESTree syntax tree, as produced by JavaScript parsers such as acorn or
// esprima with location tracking enabled. The document may be written as JSON or YAML.
//
// Node types without a typing rule are decoded as *Unsupported, so that every structural
// problem can be reported by a single generation pass.
func Decode(data []byte) (*Program, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode ESTree: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, errors.New("decode ESTree: empty document")
		}
		root = root.Content[0]
	}
	d := decoder{}
	n, err := d.node(root)
	if err != nil {
		return nil, err
	}
	p, ok := n.(*Program)
	if !ok {
		return nil, fmt.Errorf("decode ESTree: expected Program, found %s", n.NodeName())
	}
	return p, nil
}

type decoder struct{}

func field(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			v := n.Content[i+1]
			if v.Kind == yaml.ScalarNode && v.Tag == "!!null" && key != "value" {
				return nil
			}
			return v
		}
	}
	return nil
}

func str(n *yaml.Node, key string) string {
	if v := field(n, key); v != nil && v.Kind == yaml.ScalarNode {
		return v.Value
	}
	return ""
}

func boolean(n *yaml.Node, key string) bool { return str(n, key) == "true" }

// column returns the 1-based column of n; ESTree columns are 0-based.
func column(n *yaml.Node) int {
	if c := field(field(field(n, "loc"), "start"), "column"); c != nil {
		if v, err := strconv.Atoi(c.Value); err == nil {
			return v + 1
		}
	}
	return 0
}

func line(n *yaml.Node) int {
	if l := field(field(field(n, "loc"), "start"), "line"); l != nil {
		if v, err := strconv.Atoi(l.Value); err == nil {
			return v
		}
	}
	return 0
}

func posOf(n *yaml.Node) Pos { return Pos{Ln: line(n), Col: column(n)} }

func (d decoder) node(n *yaml.Node) (Node, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode ESTree: line %d: expected node, found %s", n.Line, n.ShortTag())
	}
	typ := str(n, "type")
	pos := posOf(n)
	switch typ {
	case "Program":
		body, err := d.stmts(field(n, "body"))
		return &Program{Pos: pos, Body: body}, err

	case "VariableDeclaration":
		var decls []*VarDeclarator
		for _, dn := range list(field(n, "declarations")) {
			id, err := d.ident(field(dn, "id"))
			if err != nil {
				return nil, err
			}
			init, err := d.expr(field(dn, "init"))
			if err != nil {
				return nil, err
			}
			decls = append(decls, &VarDeclarator{Pos: posOf(dn), Id: id, Init: init})
		}
		return &VarDecl{Pos: pos, Decls: decls}, nil

	case "FunctionDeclaration":
		fn, err := d.function(n, pos)
		if err != nil {
			return nil, err
		}
		return &FuncDecl{Pos: pos, Func: fn}, nil

	case "FunctionExpression":
		return d.function(n, pos)

	case "ExpressionStatement":
		x, err := d.need(n, "expression")
		return &ExprStmt{Pos: pos, X: x}, err

	case "ReturnStatement":
		arg, err := d.expr(field(n, "argument"))
		return &Return{Pos: pos, Arg: arg}, err

	case "IfStatement":
		test, err := d.need(n, "test")
		if err != nil {
			return nil, err
		}
		cons, err := d.stmt(field(n, "consequent"))
		if err != nil {
			return nil, err
		}
		alt, err := d.stmt(field(n, "alternate"))
		return &If{Pos: pos, Test: test, Cons: cons, Alt: alt}, err

	case "BlockStatement":
		return d.block(n)

	case "ForStatement":
		init, err := d.node(field(n, "init"))
		if err != nil {
			return nil, err
		}
		test, err := d.expr(field(n, "test"))
		if err != nil {
			return nil, err
		}
		update, err := d.expr(field(n, "update"))
		if err != nil {
			return nil, err
		}
		body, err := d.stmt(field(n, "body"))
		return &For{Pos: pos, Init: init, Test: test, Update: update, Body: body}, err

	case "ForInStatement":
		left, err := d.node(field(n, "left"))
		if err == nil && left == nil {
			err = missing(n, "left")
		}
		if err != nil {
			return nil, err
		}
		right, err := d.need(n, "right")
		if err != nil {
			return nil, err
		}
		body, err := d.stmt(field(n, "body"))
		return &ForIn{Pos: pos, Left: left, Right: right, Body: body}, err

	case "WhileStatement", "DoWhileStatement":
		test, err := d.need(n, "test")
		if err != nil {
			return nil, err
		}
		body, err := d.stmt(field(n, "body"))
		if typ == "WhileStatement" {
			return &While{Pos: pos, Test: test, Body: body}, err
		}
		return &DoWhile{Pos: pos, Body: body, Test: test}, err

	case "BreakStatement", "ContinueStatement":
		if field(n, "label") != nil {
			return &Unsupported{Pos: pos, Syntax: "Labeled" + typ}, nil
		}
		if typ == "BreakStatement" {
			return &Break{Pos: pos}, nil
		}
		return &Continue{Pos: pos}, nil

	case "EmptyStatement":
		return &Empty{Pos: pos}, nil

	case "ThrowStatement":
		arg, err := d.need(n, "argument")
		return &Throw{Pos: pos, Arg: arg}, err

	case "TryStatement":
		return d.try(n, pos)

	case "SwitchStatement":
		disc, err := d.need(n, "discriminant")
		if err != nil {
			return nil, err
		}
		s := &Switch{Pos: pos, Disc: disc}
		for _, cn := range list(field(n, "cases")) {
			test, err := d.expr(field(cn, "test"))
			if err != nil {
				return nil, err
			}
			body, err := d.stmts(field(cn, "consequent"))
			if err != nil {
				return nil, err
			}
			s.Cases = append(s.Cases, &SwitchCase{Pos: posOf(cn), Test: test, Body: body})
		}
		return s, nil

	case "Identifier":
		name := str(n, "name")
		if name == "" {
			return nil, missing(n, "name")
		}
		return &Ident{Pos: pos, Name: name}, nil

	case "Literal":
		return literal(n, pos), nil

	case "ThisExpression":
		return &This{Pos: pos}, nil

	case "ArrayExpression":
		elems, err := d.exprs(field(n, "elements"))
		return &ArrayLit{Pos: pos, Elems: elems}, err

	case "ObjectExpression":
		return d.object(n, pos)

	case "UnaryExpression":
		x, err := d.need(n, "argument")
		return &Unary{Pos: pos, Op: str(n, "operator"), X: x}, err

	case "UpdateExpression":
		x, err := d.need(n, "argument")
		return &Update{Pos: pos, Op: str(n, "operator"), Prefix: boolean(n, "prefix"), X: x}, err

	case "BinaryExpression", "LogicalExpression", "AssignmentExpression":
		l, err := d.need(n, "left")
		if err != nil {
			return nil, err
		}
		r, err := d.need(n, "right")
		if err != nil {
			return nil, err
		}
		op := str(n, "operator")
		switch typ {
		case "BinaryExpression":
			return &Binary{Pos: pos, Op: op, L: l, R: r}, nil
		case "LogicalExpression":
			return &Logical{Pos: pos, Op: op, L: l, R: r}, nil
		}
		return &Assign{Pos: pos, Op: op, Target: l, Value: r}, nil

	case "ConditionalExpression":
		test, err := d.need(n, "test")
		if err != nil {
			return nil, err
		}
		cons, err := d.need(n, "consequent")
		if err != nil {
			return nil, err
		}
		alt, err := d.need(n, "alternate")
		return &Conditional{Pos: pos, Test: test, Cons: cons, Alt: alt}, err

	case "CallExpression", "NewExpression":
		callee, err := d.need(n, "callee")
		if err != nil {
			return nil, err
		}
		args, err := d.exprs(field(n, "arguments"))
		if typ == "NewExpression" {
			return &New{Pos: pos, Callee: callee, Args: args}, err
		}
		return &Call{Pos: pos, Callee: callee, Args: args}, err

	case "MemberExpression":
		obj, err := d.need(n, "object")
		if err != nil {
			return nil, err
		}
		if boolean(n, "computed") {
			index, err := d.need(n, "property")
			return &Member{Pos: pos, Object: obj, Index: index, Computed: true}, err
		}
		name := str(field(n, "property"), "name")
		if name == "" {
			return nil, missing(n, "property")
		}
		return &Member{Pos: pos, Object: obj, Name: name}, nil

	case "SequenceExpression":
		xs, err := d.exprs(field(n, "expressions"))
		return &Sequence{Pos: pos, Exprs: xs}, err

	case "":
		return nil, fmt.Errorf("decode ESTree: line %d: node without type", n.Line)
	}
	return &Unsupported{Pos: pos, Syntax: typ}, nil
}

func list(n *yaml.Node) []*yaml.Node {
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	return n.Content
}

func (d decoder) expr(n *yaml.Node) (Expr, error) {
	node, err := d.node(n)
	if err != nil || node == nil {
		return nil, err
	}
	e, ok := node.(Expr)
	if !ok {
		return nil, fmt.Errorf("decode ESTree: line %d: expected expression, found %s", n.Line, node.NodeName())
	}
	return e, nil
}

// need decodes the required child expression of n named key.
func (d decoder) need(n *yaml.Node, key string) (Expr, error) {
	e, err := d.expr(field(n, key))
	if err == nil && e == nil {
		err = missing(n, key)
	}
	return e, err
}

func missing(n *yaml.Node, key string) error {
	ln := line(n)
	if ln == 0 {
		ln = n.Line
	}
	return fmt.Errorf("decode ESTree: line %d: missing %s of %s", ln, key, str(n, "type"))
}

func (d decoder) stmt(n *yaml.Node) (Stmt, error) {
	node, err := d.node(n)
	if err != nil || node == nil {
		return nil, err
	}
	s, ok := node.(Stmt)
	if !ok {
		return nil, fmt.Errorf("decode ESTree: line %d: expected statement, found %s", n.Line, node.NodeName())
	}
	return s, nil
}

func (d decoder) exprs(n *yaml.Node) ([]Expr, error) {
	var out []Expr
	for _, en := range list(n) {
		if en.Kind == yaml.ScalarNode {
			// Elided array element: `[a, , b]`
			out = append(out, &Unsupported{Pos: Pos{Ln: en.Line}, Syntax: "ArrayHole"})
			continue
		}
		e, err := d.expr(en)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (d decoder) stmts(n *yaml.Node) ([]Stmt, error) {
	var out []Stmt
	for _, sn := range list(n) {
		s, err := d.stmt(sn)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (d decoder) ident(n *yaml.Node) (*Ident, error) {
	node, err := d.node(n)
	if err != nil {
		return nil, err
	}
	id, ok := node.(*Ident)
	if !ok {
		if n == nil {
			return nil, errors.New("decode ESTree: missing identifier")
		}
		return nil, fmt.Errorf("decode ESTree: line %d: expected identifier", n.Line)
	}
	return id, nil
}

func (d decoder) block(n *yaml.Node) (*Block, error) {
	body, err := d.stmts(field(n, "body"))
	return &Block{Pos: posOf(n), Body: body}, err
}

func (d decoder) function(n *yaml.Node, pos Pos) (*Function, error) {
	fn := &Function{Pos: pos}
	if idn := field(n, "id"); idn != nil {
		id, err := d.ident(idn)
		if err != nil {
			return nil, err
		}
		fn.Id = id
	}
	for _, pn := range list(field(n, "params")) {
		p, err := d.ident(pn)
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, p)
	}
	body, err := d.block(field(n, "body"))
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

func (d decoder) try(n *yaml.Node, pos Pos) (*Try, error) {
	block, err := d.block(field(n, "block"))
	if err != nil {
		return nil, err
	}
	t := &Try{Pos: pos, Block: block}
	if h := field(n, "handler"); h != nil {
		if pn := field(h, "param"); pn != nil {
			if t.Param, err = d.ident(pn); err != nil {
				return nil, err
			}
		}
		if t.Handler, err = d.block(field(h, "body")); err != nil {
			return nil, err
		}
	}
	if f := field(n, "finalizer"); f != nil {
		if t.Finalizer, err = d.block(f); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (d decoder) object(n *yaml.Node, pos Pos) (Expr, error) {
	obj := &ObjectLit{Pos: pos}
	for _, pn := range list(field(n, "properties")) {
		if boolean(pn, "computed") || (str(pn, "kind") != "" && str(pn, "kind") != "init") {
			return &Unsupported{Pos: posOf(pn), Syntax: "ComputedOrAccessorProperty"}, nil
		}
		prop := &Property{Pos: posOf(pn)}
		key := field(pn, "key")
		switch str(key, "type") {
		case "Identifier":
			prop.Key = str(key, "name")
		case "Literal":
			prop.Key, prop.Quoted = str(key, "value"), true
		default:
			return nil, fmt.Errorf("decode ESTree: line %d: unexpected property key", line(pn))
		}
		value, err := d.expr(field(pn, "value"))
		if err != nil {
			return nil, err
		}
		prop.Value = value
		obj.Props = append(obj.Props, prop)
	}
	return obj, nil
}

func literal(n *yaml.Node, pos Pos) *Literal {
	lit := &Literal{Pos: pos, Raw: str(n, "raw")}
	if field(n, "regex") != nil {
		lit.Kind = RegExpLit
		return lit
	}
	v := field(n, "value")
	switch {
	case v == nil || v.Tag == "!!null":
		lit.Kind = NullLit
		if lit.Raw == "" {
			lit.Raw = "null"
		}
	case v.Tag == "!!bool":
		lit.Kind = BoolLit
	case v.Tag == "!!int" || v.Tag == "!!float":
		lit.Kind = NumberLit
	default:
		lit.Kind = StringLit
		if lit.Raw == "" {
			lit.Raw = strconv.Quote(v.Value)
		}
	}
	if lit.Raw == "" && v != nil {
		lit.Raw = v.Value
	}
	return lit
}
