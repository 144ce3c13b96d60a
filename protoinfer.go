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

// Package protoinfer generates typing constraints for programs of a dynamically-typed,
// prototype-based scripting language.
//
// A single traversal of a program emits, for every expression, declaration, assignment,
// call and property access, constraints over a shared graph of terms (see package term).
// The constraints (see package constraint) are solved elsewhere: the generator never
// unifies or searches. Constructs which cannot be typed are reported as SyntaxErrors,
// and no constraints are produced for a program which contains any of them.
//
// Functions are classified syntactically: a function whose name begins with an upper-case
// letter is a constructor; otherwise a function which refers to `this` is a method.
// Object literals with unquoted keys are objects, and those with quoted keys are maps.
// Builtin generic types are instantiated per use through type-parameter terms.
package protoinfer
