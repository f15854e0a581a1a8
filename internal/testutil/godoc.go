package testutil

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

// RequireDocumentedConsts fails t for every exported constant in the Go
// source file at path that has neither its own doc comment nor a single-spec
// declaration doc.
func RequireDocumentedConsts(t testing.TB, path string) {
	t.Helper()

	f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
		return
	}

	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}

		for _, spec := range gen.Specs {
			vs := spec.(*ast.ValueSpec)
			if vs.Doc != nil || (len(gen.Specs) == 1 && gen.Doc != nil) {
				continue
			}

			for _, name := range vs.Names {
				if name.IsExported() {
					t.Errorf("%s: exported constant %s has no doc comment", path, name.Name)
				}
			}
		}
	}
}
