// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package expr recovers the source text of the arguments passed at a call
// site, so that assertion diagnostics can quote the expressions a test wrote
// (e.g. "p != nil") and not only their values.
//
// Go has no compile-time stringification of expressions. Instead, the source
// file named by the call site's runtime location is parsed and the call
// expression enclosing that line is located. When the source file is not
// readable at run time (e.g. a test binary copied to another machine),
// Operands reports false and callers fall back to printing values only.
package expr

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"
	"sync"

	"golang.org/x/tools/go/ast/astutil"
)

type parsedFile struct {
	fset *token.FileSet
	file *ast.File
	src  []byte
	err  error
}

var (
	cacheMu sync.Mutex
	cache   = make(map[string]*parsedFile)
)

func load(path string) *parsedFile {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if p, ok := cache[path]; ok {
		return p
	}
	p := &parsedFile{fset: token.NewFileSet()}
	p.src, p.err = os.ReadFile(path)
	if p.err == nil {
		p.file, p.err = parser.ParseFile(p.fset, path, p.src, parser.SkipObjectResolution)
	}
	cache[path] = p
	return p
}

// calleeName returns the name a call expression invokes, e.g. "ExpectEq" for
// s.ExpectEq(...) and "f" for f[int](...).
func calleeName(fun ast.Expr) string {
	switch f := astutil.Unparen(fun).(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	case *ast.IndexExpr:
		return calleeName(f.X)
	case *ast.IndexListExpr:
		return calleeName(f.X)
	}
	return ""
}

// Operands returns the source text of each argument of the call to a function
// or method named fn that spans line of the Go source file at path.
// If several such calls span the line, the innermost one is used.
// Outer parentheses are dropped and multi-line arguments are folded onto one
// line.
func Operands(path string, line int, fn string) ([]string, bool) {
	p := load(path)
	if p.err != nil {
		return nil, false
	}

	var best *ast.CallExpr
	ast.Inspect(p.file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || calleeName(call.Fun) != fn {
			return true
		}
		start, end := p.fset.Position(call.Pos()).Line, p.fset.Position(call.End()).Line
		if line < start || line > end {
			return true
		}
		if best == nil || call.End()-call.Pos() < best.End()-best.Pos() {
			best = call
		}
		return true
	})
	if best == nil {
		return nil, false
	}

	args := make([]string, len(best.Args))
	for i, a := range best.Args {
		a = astutil.Unparen(a)
		text := string(p.src[p.fset.Position(a.Pos()).Offset:p.fset.Position(a.End()).Offset])
		if strings.ContainsRune(text, '\n') {
			text = strings.Join(strings.Fields(text), " ")
		}
		args[i] = text
	}
	return args, true
}
