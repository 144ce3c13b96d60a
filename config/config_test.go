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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wdamron/protoinfer/types"
)

func TestDefault(t *testing.T) {
	env, err := Default().Env()
	if err != nil {
		t.Fatal(err)
	}
	printType, ok := env.Lookup("print")
	if !ok {
		t.Fatalf("expected print to be declared")
	}
	if vars := types.GenericVars(printType); len(vars) != 1 || vars[0].Name != "T" {
		t.Fatalf("expected print to be generic in T: %s", types.TypeString(printType))
	}
	push, ok := env.Member(&types.Array{Elem: types.Float}, "push")
	if !ok || types.TypeString(push) != "method(Float) -> Integer" {
		t.Fatalf("unexpected Array.push: %v", push)
	}
	length, ok := env.Member(types.String, "length")
	if !ok || length != types.Integer {
		t.Fatalf("unexpected String.length: %v", length)
	}
	if protos := env.GenericProtos("get"); len(protos) != 1 || protos[0] != types.MapProto {
		t.Fatalf("unexpected generic prototypes for get: %v", protos)
	}
}

func TestParseReadWriteMembers(t *testing.T) {
	cfg, err := Parse([]byte(`
prototypes:
  Array:
    var length: Integer
    first: method() -> T
`), "test.yaml")
	if err != nil {
		t.Fatal(err)
	}
	env, err := cfg.Env()
	if err != nil {
		t.Fatal(err)
	}
	p, ok := env.Prototypes[types.ArrayProto].Lookup("length")
	if !ok || p.ReadOnly || p.Type != types.Integer {
		t.Fatalf("unexpected length: %+v", p)
	}
	if p, ok := env.Prototypes[types.ArrayProto].Lookup("first"); !ok || !p.ReadOnly {
		t.Fatalf("unexpected first: %+v", p)
	}
}

func TestParseErrors(t *testing.T) {
	for _, c := range []struct{ src, msg string }{
		{"globals: [", "parsing bad.yaml"},
		{"globals:\n  f: (Integer -> Void\n", "global f"},
		{"prototypes:\n  Set:\n    has: method(T) -> Boolean\n", `unknown prototype "Set"`},
		{"prototypes:\n  String:\n    at: method(Integer) -> T\n", "cannot be generic"},
	} {
		_, err := Parse([]byte(c.src), "bad.yaml")
		if err == nil || !strings.Contains(err.Error(), c.msg) {
			t.Fatalf("expected error containing %q for %q, found %v", c.msg, c.src, err)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte("globals:\n  now: () -> Integer\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Globals["now"] != "() -> Integer" {
		t.Fatalf("unexpected globals: %v", cfg.Globals)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "reading config") {
		t.Fatalf("expected read error, found %v", err)
	}
}
