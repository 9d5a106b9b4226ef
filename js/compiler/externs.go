package compiler

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
)

//go:embed externs/*.js
var defaultExterns embed.FS

// Externs is the set of global names provided by the runtime environment.
type Externs struct {
	sources []Source
	names   map[string]struct{}
}

// DefaultExterns returns the bundled environment declarations in a stable
// order.
func DefaultExterns() ([]Source, error) {
	entries, err := fs.ReadDir(defaultExterns, "externs")
	if err != nil {
		return nil, fmt.Errorf("couldn't list the default externs: %w", err)
	}
	sources := make([]Source, 0, len(entries))
	for _, entry := range entries {
		name := path.Join("externs", entry.Name())
		data, err := defaultExterns.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("couldn't read the default extern %s: %w", name, err)
		}
		sources = append(sources, Source{Name: entry.Name(), Code: string(data)})
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })
	return sources, nil
}

// LoadExterns parses the given declarations and collects every top-level
// name they introduce.
func LoadExterns(sources []Source) (*Externs, error) {
	e := &Externs{sources: sources, names: make(map[string]struct{})}
	for _, src := range sources {
		prog, err := parser.ParseFile(nil, src.Name, src.Code, 0)
		if err != nil {
			return nil, fmt.Errorf("couldn't parse extern %s: %w", src.Name, err)
		}
		for _, stmt := range prog.Body {
			for _, name := range declaredNames(stmt) {
				e.names[name] = struct{}{}
			}
		}
	}
	return e, nil
}

// Len returns the number of extern sources.
func (e *Externs) Len() int {
	if e == nil {
		return 0
	}
	return len(e.sources)
}

// Sources returns the extern sources the set was loaded from.
func (e *Externs) Sources() []Source {
	if e == nil {
		return nil
	}
	return e.sources
}

// Has reports whether name is declared by the externs.
func (e *Externs) Has(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.names[name]
	return ok
}

func declaredNames(stmt ast.Statement) []string {
	var names []string
	bindings := func(list []*ast.Binding) {
		for _, b := range list {
			if id, ok := b.Target.(*ast.Identifier); ok {
				names = append(names, id.Name.String())
			}
		}
	}
	switch s := stmt.(type) {
	case *ast.VariableStatement:
		bindings(s.List)
	case *ast.LexicalDeclaration:
		bindings(s.List)
	case *ast.FunctionDeclaration:
		if s.Function != nil && s.Function.Name != nil {
			names = append(names, s.Function.Name.Name.String())
		}
	case *ast.ClassDeclaration:
		if s.Class != nil && s.Class.Name != nil {
			names = append(names, s.Class.Name.Name.String())
		}
	}
	return names
}
