package compiler

import (
	"fmt"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// undeclaredGlobals reports the free variables of the inputs that neither an
// input nor the externs declare. All inputs of a job share one global scope.
func undeclaredGlobals(externs *Externs, inputs []Source) []Diagnostic {
	type parsed struct {
		name  string
		scope js.Scope
	}
	var (
		diags    []Diagnostic
		scopes   = make([]parsed, 0, len(inputs))
		declared = make(map[string]struct{})
	)
	for _, in := range inputs {
		tree, err := js.Parse(parse.NewInputString(in.Code), js.Options{})
		if err != nil {
			diags = append(diags, Diagnostic{
				SourceName:  in.Name,
				Description: fmt.Sprintf("undeclared global analysis skipped: %s", err),
			})
			continue
		}
		for _, v := range tree.BlockStmt.Scope.Declared {
			declared[string(v.Data)] = struct{}{}
		}
		scopes = append(scopes, parsed{name: in.Name, scope: tree.BlockStmt.Scope})
	}

	for _, p := range scopes {
		seen := make(map[string]struct{})
		for _, v := range p.scope.Undeclared {
			name := string(v.Data)
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			if _, ok := declared[name]; ok || externs.Has(name) {
				continue
			}
			diags = append(diags, Diagnostic{
				SourceName:  p.name,
				Description: fmt.Sprintf("variable %s is undeclared and not provided by any extern", name),
			})
		}
	}
	return diags
}
