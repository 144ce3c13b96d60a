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

// Handle indexes a slot within an Arena.
type Handle int32

// Arena owns the type slots of all leaf terms. Terms hold handles rather than types;
// every change to a leaf term's type is an explicit write through its handle.
type Arena struct {
	slots []types.Type
}

// Alloc allocates a slot holding t.
func (a *Arena) Alloc(t types.Type) Handle {
	if a.slots == nil {
		a.slots = make([]types.Type, 0, 64)
	}
	a.slots = append(a.slots, t)
	return Handle(len(a.slots) - 1)
}

// Get the type held in the slot.
func (a *Arena) Get(h Handle) types.Type { return a.slots[h] }

// Set the type held in the slot.
func (a *Arena) Set(h Handle, t types.Type) { a.slots[h] = t }

// Len returns the number of allocated slots.
func (a *Arena) Len() int { return len(a.slots) }

// Snapshot copies the current type of every slot.
func (a *Arena) Snapshot() []types.Type {
	out := make([]types.Type, len(a.slots))
	copy(out, a.slots)
	return out
}

// Restore resets every slot to a previous snapshot. Slots allocated after the
// snapshot was taken are left unchanged.
func (a *Arena) Restore(snapshot []types.Type) {
	copy(a.slots, snapshot)
}
