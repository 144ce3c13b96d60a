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

package astutil

import (
	"sort"
	"unicode"
	"unicode/utf8"

	set "github.com/hashicorp/go-set/v2"

	"github.com/wdamron/protoinfer/ast"
)

// FuncKind is the structural classification of a function.
type FuncKind uint8

const (
	PlainFunction FuncKind = iota
	Method
	Constructor
)

func (k FuncKind) String() string {
	switch k {
	case Method:
		return "method"
	case Constructor:
		return "constructor"
	}
	return "function"
}

// Classify a function: a capitalized name marks a constructor; otherwise a reference to
// `this` within the body marks a method.
func Classify(fn *ast.Function) FuncKind {
	if IsConstructorName(fn.Name()) {
		return Constructor
	}
	if RefersToThis(fn) {
		return Method
	}
	return PlainFunction
}

// IsConstructorName reports whether the first letter of name is upper-case.
func IsConstructorName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// Walk the body of fn without entering nested functions.
func walkBody(fn *ast.Function, f func(ast.Node) bool) {
	if fn.Body == nil {
		return
	}
	ast.Walk(fn.Body, func(n ast.Node) bool {
		if _, nested := n.(*ast.Function); nested {
			return false
		}
		return f(n)
	})
}

// RefersToThis reports whether the body of fn uses `this`, outside of nested functions.
func RefersToThis(fn *ast.Function) bool {
	found := false
	walkBody(fn, func(n ast.Node) bool {
		if _, ok := n.(*ast.This); ok {
			found = true
		}
		return !found
	})
	return found
}

// ReturnsValue reports whether the body of fn contains a `return` with an argument,
// outside of nested functions.
func ReturnsValue(fn *ast.Function) bool {
	found := false
	walkBody(fn, func(n ast.Node) bool {
		if r, ok := n.(*ast.Return); ok && r.Arg != nil {
			found = true
		}
		return !found
	})
	return found
}

// WrittenThisProperties returns the sorted names of properties assigned directly through
// `this.<name> = ...` within the body of fn. The scan is syntactic, not flow-sensitive.
func WrittenThisProperties(fn *ast.Function) []string {
	names := set.New[string](8)
	walkBody(fn, func(n ast.Node) bool {
		if a, ok := n.(*ast.Assign); ok {
			if m, ok := a.Target.(*ast.Member); ok && !m.Computed {
				if _, ok := m.Object.(*ast.This); ok {
					names.Insert(m.Name)
				}
			}
		}
		return true
	})
	return sorted(names)
}

// Names collects syntactic facts about property names across a program.
type Names struct {
	// Methods contains property names which are bound to method-classified functions,
	// in object literals or through assignment.
	Methods *set.Set[string]
	// Defined contains property names which the program defines, in object literals
	// or through assignment.
	Defined *set.Set[string]
}

// ScanNames collects property names across a program.
func ScanNames(p *ast.Program) Names {
	names := Names{Methods: set.New[string](16), Defined: set.New[string](32)}
	ast.Walk(p, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.ObjectLit:
			for _, prop := range n.Props {
				if prop.Quoted {
					continue
				}
				names.Defined.Insert(prop.Key)
				if fn, ok := prop.Value.(*ast.Function); ok && Classify(fn) == Method {
					names.Methods.Insert(prop.Key)
				}
			}
		case *ast.Assign:
			m, ok := n.Target.(*ast.Member)
			if !ok || m.Computed || m.Name == "prototype" {
				break
			}
			names.Defined.Insert(m.Name)
			if fn, ok := n.Value.(*ast.Function); ok && Classify(fn) == Method {
				names.Methods.Insert(m.Name)
			}
		}
		return true
	})
	return names
}

func sorted(s *set.Set[string]) []string {
	out := s.Slice()
	sort.Strings(out)
	return out
}
