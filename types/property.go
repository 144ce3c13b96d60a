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
	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)

// EmptyPropertyMap contains no properties.
var EmptyPropertyMap = PropertyMap{emptyMap}

// Property of an object type. Read-only properties are covariant; read-write
// properties are invariant.
type Property struct {
	Name     string
	Type     Type
	ReadOnly bool
}

// PropertyMap contains immutable mappings from names to properties, sorted by name.
// The zero value is an empty map.
type PropertyMap struct {
	m *immutable.SortedMap
}

// Get the number of properties in the map.
func (m PropertyMap) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Get the property with the given name.
func (m PropertyMap) Get(name string) (Property, bool) {
	if m.m == nil {
		return Property{}, false
	}
	v, ok := m.m.Get(name)
	if !ok {
		return Property{}, false
	}
	return v.(Property), true
}

// Set returns a new map containing p, without mutating the existing map.
func (m PropertyMap) Set(p Property) PropertyMap {
	imm := m.m
	if imm == nil {
		imm = emptyMap
	}
	return PropertyMap{imm.Set(p.Name, p)}
}

// Delete returns a new map without the named property.
func (m PropertyMap) Delete(name string) PropertyMap {
	if m.m == nil {
		return m
	}
	return PropertyMap{m.m.Delete(name)}
}

// Iterate over properties in the map, sorted by name.
// If f returns false, iteration will be stopped.
func (m PropertyMap) Range(f func(Property) bool) {
	if m.m == nil {
		return
	}
	iter := m.m.Iterator()
	for !iter.Done() {
		_, v := iter.Next()
		if !f(v.(Property)) {
			return
		}
	}
}

// Names returns the sorted property names.
func (m PropertyMap) Names() []string {
	names := make([]string, 0, m.Len())
	m.Range(func(p Property) bool {
		names = append(names, p.Name)
		return true
	})
	return names
}

// Map applies f to the type of every property.
func (m PropertyMap) Map(f func(Type) Type) PropertyMap {
	out := m
	m.Range(func(p Property) bool {
		p.Type = f(p.Type)
		out = out.Set(p)
		return true
	})
	return out
}
