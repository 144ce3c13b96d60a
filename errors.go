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
	"fmt"
	"sort"
	"strings"
)

// SyntaxError reports a construct which cannot be typed.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e SyntaxError) Error() string {
	if e.Line <= 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// SyntaxErrors lists every construct within a program which cannot be typed.
type SyntaxErrors []SyntaxError

// Add an error at a source line.
func (errs *SyntaxErrors) Add(line int, format string, args ...interface{}) {
	*errs = append(*errs, SyntaxError{Line: line, Msg: fmt.Sprintf(format, args...)})
}

// Sort errors by source line, preserving the order of errors on the same line.
func (errs SyntaxErrors) Sort() {
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Line < errs[j].Line })
}

func (errs SyntaxErrors) Error() string {
	switch len(errs) {
	case 0:
		return "no syntax errors"
	case 1:
		return errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d syntax errors:\n%s", len(errs), strings.Join(msgs, "\n"))
}
