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

package term

import (
	"github.com/wdamron/protoinfer/types"
)

// VarTracker allocates type-variables in blocks and counts allocations.
type VarTracker struct {
	NextId int
	count  int
	block  []types.Var
}

// New allocates an unbound type-variable with the next id.
func (vt *VarTracker) New() *types.Var {
	if len(vt.block) == 0 {
		vt.block = make([]types.Var, 32)
	}
	tv := &vt.block[0]
	vt.block = vt.block[1:]
	vt.NextId++
	tv.Id = vt.NextId
	vt.count++
	return tv
}

// NewList allocates count unbound type-variables.
func (vt *VarTracker) NewList(count int) []types.Type {
	vars := make([]types.Type, count)
	for i := range vars {
		vars[i] = vt.New()
	}
	return vars
}

// Count returns the number of type-variables allocated.
func (vt *VarTracker) Count() int { return vt.count }
