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

package protoinfer

import (
	"github.com/wdamron/protoinfer/ast"
	"github.com/wdamron/protoinfer/constraint"
	"github.com/wdamron/protoinfer/diagnostics"
	"github.com/wdamron/protoinfer/internal/util"
	"github.com/wdamron/protoinfer/term"
)

// Result is the constraint set of a program together with the term graph it is
// expressed over. A solver refines the types of terms in place.
type Result struct {
	Constraints *constraint.Set
	Factory     *term.Factory
	terms       map[ast.Node]term.Term
}

// Terms returns every term, in order of creation.
func (r *Result) Terms() []term.Term { return r.Factory.Terms() }

// TermOf returns the term of a syntax node, or nil if the node was not typed.
func (r *Result) TermOf(n ast.Node) term.Term { return r.terms[n] }

// Lines returns the source lines of the syntax responsible for a constraint.
func (r *Result) Lines(c *constraint.Constraint) []int { return c.Lines() }

// EqualityClasses returns the groups of terms which are transitively related by
// TypeEquality constraints. Singleton groups are omitted. Groups are ordered by the
// id of their first term, and terms within each group by id.
func (r *Result) EqualityClasses() [][]term.Term {
	all := r.Factory.Terms()
	g := util.NewGraph(len(all))
	for _, c := range r.Constraints.All() {
		if c.Kind == constraint.TypeEquality {
			g.AddUndirectedEdge(c.Left.Id(), c.Right.Id())
		}
	}
	g.Compact()
	comps := g.Components()
	classes := make([][]term.Term, len(comps))
	for i, comp := range comps {
		class := make([]term.Term, len(comp))
		for j, id := range comp {
			class[j] = all[id]
		}
		classes[i] = class
	}
	return classes
}

// Explain evaluates every constraint under a, and explains the unmet ones.
func (r *Result) Explain(a constraint.Assignment) []diagnostics.Report {
	return diagnostics.Check(r.Constraints.All(), a)
}

// CurrentAssignment reads the types of terms as refined by a solver.
func (r *Result) CurrentAssignment() *diagnostics.CurrentAssignment {
	return diagnostics.NewCurrentAssignment(r.Factory)
}
