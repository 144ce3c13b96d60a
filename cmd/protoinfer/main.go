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

// Command protoinfer prints the typing constraints of a program.
//
// The program is read as an ESTree syntax tree, in JSON or YAML, from the named file or
// from standard input:
//
//	acorn --ecma5 --locations prog.js | protoinfer
//	protoinfer -config env.yaml -classes prog.json
//
// Syntax errors are printed one per line and exit with status 1.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"

	"github.com/wdamron/protoinfer"
	"github.com/wdamron/protoinfer/ast"
	"github.com/wdamron/protoinfer/config"
	"github.com/wdamron/protoinfer/diagnostics"
)

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	configPath := flag.String("config", "", "builtin environment `file` (YAML); the embedded default when empty")
	color := flag.String("color", "auto", "colorize diagnostics: auto, always or never")
	dump := flag.Bool("dump", false, "dump the decoded syntax tree")
	classes := flag.Bool("classes", false, "print classes of terms related by type equalities")
	check := flag.Bool("check", false, "check the constraints against the current types of terms")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	env, err := cfg.Env()
	if err != nil {
		log.Fatal(err)
	}

	src, err := readInput(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	prog, err := ast.Decode(src)
	if err != nil {
		log.Fatal(err)
	}
	if *dump {
		spew.Fdump(os.Stderr, prog)
	}

	r, err := protoinfer.Generate(prog, env)
	if err != nil {
		var errs protoinfer.SyntaxErrors
		if errors.As(err, &errs) {
			for _, e := range errs {
				log.Print(e)
			}
			os.Exit(1)
		}
		log.Fatal(err)
	}

	out := os.Stdout
	for _, c := range r.Constraints.All() {
		fmt.Fprintf(out, "%s\t%s\n", c, formatLines(c.Lines()))
	}
	if *classes {
		fmt.Fprintln(out)
		for _, class := range r.EqualityClasses() {
			names := make([]string, len(class))
			for i, t := range class {
				names[i] = t.String()
			}
			fmt.Fprintf(out, "{%s}\n", strings.Join(names, ", "))
		}
	}
	if *check {
		reports := r.Explain(r.CurrentAssignment())
		fmt.Fprint(os.Stderr, diagnostics.Format(reports, useColor(*color)))
		if len(reports) > 0 {
			os.Exit(1)
		}
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func formatLines(lines []int) string {
	if len(lines) == 0 {
		return "-"
	}
	parts := make([]string, len(lines))
	for i, ln := range lines {
		parts[i] = fmt.Sprint(ln)
	}
	return "line " + strings.Join(parts, ",")
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
