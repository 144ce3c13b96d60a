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

package diagnostics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/wdamron/protoinfer/constraint"
	"github.com/wdamron/protoinfer/term"
	"github.com/wdamron/protoinfer/types"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorDim   = "\033[2m"
)

// Report is the explanation of one unmet constraint.
type Report struct {
	Constraint  *constraint.Constraint
	Lines       []int
	Explanation *constraint.Explanation
}

// Holds reports whether c is met under a. Constraints over types which are not yet
// known are considered met.
func Holds(c *constraint.Constraint, a constraint.Assignment) bool {
	switch c.Kind {
	case constraint.TypeEquality:
		l, r := a.TypeOf(c.Left), a.TypeOf(c.Right)
		return types.Unknown(l) || types.Unknown(r) || types.Equal(l, r)

	case constraint.SubType:
		return types.Assignable(a.TypeOf(c.Left), a.TypeOf(c.Right))

	case constraint.Concrete:
		t := a.TypeOf(c.Left)
		if types.Unknown(t) {
			return true
		}
		o, isObject := t.(*types.Object)
		if !isObject {
			return true
		}
		readOnly, readWrite := a.RequiredProperties(c.Left)
		for _, name := range readOnly {
			if _, found := o.Lookup(name); !found {
				return false
			}
		}
		for _, name := range readWrite {
			if p, found := o.Lookup(name); !found || p.ReadOnly {
				return false
			}
		}
		return true

	case constraint.CheckArity:
		ret, ok := c.Left.(*term.ReturnTerm)
		if !ok {
			return true
		}
		ft := a.TypeOf(ret.Base())
		if types.Unknown(ft) {
			return true
		}
		m, _ := types.SelectArity(ft, ret.Arity)
		return m != nil
	}
	panic("unexpected constraint kind " + c.Kind.String())
}

// Check evaluates every constraint under a, and returns reports for the unmet ones
// ordered by source line.
func Check(cs []*constraint.Constraint, a constraint.Assignment) []Report {
	var reports []Report
	for _, c := range cs {
		if Holds(c, a) {
			continue
		}
		reports = append(reports, Report{Constraint: c, Lines: c.Lines(), Explanation: c.Explain(a)})
	}
	sort.SliceStable(reports, func(i, j int) bool { return firstLine(reports[i]) < firstLine(reports[j]) })
	return reports
}

func firstLine(r Report) int {
	if len(r.Lines) == 0 {
		return 0
	}
	return r.Lines[0]
}

func (r Report) String() string { return r.format(false) }

func (r Report) format(color bool) string {
	var sb strings.Builder
	if len(r.Lines) > 0 {
		sb.WriteString("line ")
		for i, ln := range r.Lines {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(ln))
		}
		sb.WriteString(": ")
	}
	if color {
		sb.WriteString(colorRed + "type error" + colorReset + ": ")
	} else {
		sb.WriteString("type error: ")
	}
	sb.WriteString(r.Explanation.Message)
	for _, note := range r.Explanation.Notes {
		sb.WriteString("\n    ")
		if color {
			sb.WriteString(colorDim + note + colorReset)
		} else {
			sb.WriteString(note)
		}
	}
	return sb.String()
}

// Format renders reports one per paragraph, optionally with ANSI colors.
func Format(reports []Report, color bool) string {
	var sb strings.Builder
	for _, r := range reports {
		sb.WriteString(r.format(color))
		sb.WriteByte('\n')
	}
	return sb.String()
}
