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

package types

import (
	"strconv"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} {
		return &typePrinter{}
	},
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	p.sb.Reset()
	p.depth = 0
	printerPool.Put(p)
}

type typePrinter struct {
	sb    strings.Builder
	depth int
}

// TypeString returns a string representation of a Type, in the syntax accepted by Parse.
// Types which are not yet known are printed as `?`.
func TypeString(t Type) string {
	p := newTypePrinter()
	typeString(p, t)
	s := p.sb.String()
	p.Release()
	return s
}

func getUnboundVarName(id int) string { return "'_" + strconv.Itoa(id) }

func typeString(p *typePrinter, t Type) {
	if p.depth > 32 {
		p.sb.WriteString("...")
		return
	}
	p.depth++
	defer func() { p.depth-- }()

	switch t := t.(type) {
	case nil:
		p.sb.WriteByte('?')

	case Prim:
		p.sb.WriteString(t.TypeName())

	case *Var:
		if t.Name != "" {
			p.sb.WriteString(t.Name)
			return
		}
		p.sb.WriteString(getUnboundVarName(t.Id))

	case *Array:
		p.sb.WriteString("Array<")
		typeString(p, t.Elem)
		p.sb.WriteByte('>')

	case *Map:
		p.sb.WriteString("Map<")
		typeString(p, t.Elem)
		p.sb.WriteByte('>')

	case *Object:
		p.sb.WriteByte('{')
		i := 0
		t.Props.Range(func(prop Property) bool {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			if !prop.ReadOnly {
				p.sb.WriteString("var ")
			}
			p.sb.WriteString(prop.Name)
			p.sb.WriteString(": ")
			typeString(p, prop.Type)
			i++
			return true
		})
		if t.Proto != nil {
			p.sb.WriteString(" | ")
			typeString(p, t.Proto)
		}
		p.sb.WriteByte('}')

	case *Function:
		paramsString(p, t.Params, t.Return)

	case *AttachedMethod:
		p.sb.WriteString("method")
		paramsString(p, t.Params, t.Return)

	case *UnattachedMethod:
		p.sb.WriteString("method[")
		typeString(p, t.Receiver)
		p.sb.WriteByte(']')
		paramsString(p, t.Params, t.Return)

	case *Constructor:
		p.sb.WriteString("new")
		if t.Proto != nil {
			p.sb.WriteByte('[')
			typeString(p, t.Proto)
			p.sb.WriteByte(']')
		}
		paramsString(p, t.Params, t.Return)

	case *Intersection:
		for i, m := range t.Types {
			if i > 0 {
				p.sb.WriteString(" & ")
			}
			typeString(p, m)
		}

	default:
		panic("unexpected type " + t.TypeName())
	}
}

func paramsString(p *typePrinter, params []Type, ret Type) {
	p.sb.WriteByte('(')
	for i, param := range params {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		typeString(p, param)
	}
	p.sb.WriteString(") -> ")
	typeString(p, ret)
}
