// Package modules turns the reflection tree of a TypeScript project into the
// module records shown on the documentation site.
//
// Every module is named after the import alias of its source file. Exports
// that are re-exported from another module are traced back to the module
// that declares them, so a symbol is documented once, under its origin.
package modules

import (
	"fmt"
	"strings"

	docerrors "github.com/conneroisu/docsite/internal/errors"
	"github.com/conneroisu/docsite/internal/typedoc"
)

// AliasResolver maps a source file to its import alias.
type AliasResolver interface {
	AliasOf(filePath string) (string, bool)
}

// Module is one documented source module.
type Module struct {
	Name string
	Src  string
	Decl *typedoc.Reflection
}

// ExportSource is the declaration an export ultimately refers to.
type ExportSource struct {
	Name      string
	Module    *Module
	Decl      *typedoc.Reflection
	IsDefault bool
}

// ModuleExport is one exported name of a module.
type ModuleExport struct {
	Name   string
	Kind   SourceKind
	Decl   *typedoc.Reflection
	Source ExportSource
}

// Set holds the modules of a project in reflection group order.
type Set struct {
	aliases AliasResolver
	order   []string
	byName  map[string]*Module
}

// Load builds the module set from the reflections of the given group
// (usually "Modules").
func Load(project *typedoc.Project, aliases AliasResolver, group string) (*Set, error) {
	decls, err := project.Group(group)
	if err != nil {
		return nil, err
	}

	set := &Set{
		aliases: aliases,
		byName:  make(map[string]*Module, len(decls)),
	}

	for _, decl := range decls {
		src := decl.FileName()
		if src == "" {
			return nil, docerrors.NewReflectionError(docerrors.ErrCodeReflectionInvalid,
				fmt.Sprintf("module %q has no source file", decl.Name), nil)
		}

		name, ok := aliases.AliasOf(src)
		if !ok {
			return nil, docerrors.NewAliasError(docerrors.ErrCodeModuleNotFound,
				"no alias for module source "+src).WithFile(src)
		}

		set.put(&Module{Name: name, Src: src, Decl: decl})
	}

	return set, nil
}

// put inserts m, keeping the original position when the name repeats.
func (s *Set) put(m *Module) {
	if _, exists := s.byName[m.Name]; !exists {
		s.order = append(s.order, m.Name)
	}
	s.byName[m.Name] = m
}

// Get returns the module with the given name.
func (s *Set) Get(name string) (*Module, bool) {
	m, ok := s.byName[name]
	return m, ok
}

// Len returns the number of modules.
func (s *Set) Len() int {
	return len(s.order)
}

// Names returns module names in insertion order.
func (s *Set) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// All returns the modules in insertion order.
func (s *Set) All() []*Module {
	all := make([]*Module, 0, len(s.order))
	for _, name := range s.order {
		all = append(all, s.byName[name])
	}
	return all
}

// ExportSource resolves decl to the declaration it exports. Unless shallow,
// references are followed for as long as they point at a member of another
// module.
func (s *Set) ExportSource(decl *typedoc.Reflection, shallow bool) (ExportSource, error) {
	d := decl
	for !shallow &&
		d.Target != nil &&
		d.Target.Parent != nil &&
		d.Target.Parent.Kind == typedoc.KindModule {
		d = d.Target
	}

	if d.Parent == nil {
		return ExportSource{}, docerrors.NewReflectionError(docerrors.ErrCodeReflectionInvalid,
			fmt.Sprintf("export %q has no parent module", d.Name), nil)
	}

	src := d.Parent.FileName()
	moduleName, ok := s.aliases.AliasOf(src)
	if !ok {
		return ExportSource{}, docerrors.NewAliasError(docerrors.ErrCodeModuleNotFound,
			fmt.Sprintf("no alias for source of export %q", d.Name)).WithFile(src)
	}
	module, ok := s.byName[moduleName]
	if !ok {
		return ExportSource{}, docerrors.NewAliasError(docerrors.ErrCodeModuleNotFound,
			fmt.Sprintf("export %q belongs to unknown module %s", d.Name, moduleName)).WithFile(src)
	}

	isDefault := d.Name == "default"
	name := d.Name
	if isDefault {
		name = module.Name[strings.LastIndex(module.Name, "/")+1:]
	}

	return ExportSource{
		Name:      name,
		Module:    module,
		Decl:      d,
		IsDefault: isDefault,
	}, nil
}

// Exports lists the exports of m. The name is the one m exports it under;
// kind and source come from the original declaration.
func (s *Set) Exports(m *Module) ([]ModuleExport, error) {
	if len(m.Decl.Children) == 0 {
		return []ModuleExport{}, nil
	}

	exports := make([]ModuleExport, 0, len(m.Decl.Children))
	for _, decl := range m.Decl.Children {
		source, err := s.ExportSource(decl, false)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", m.Name, err)
		}
		shallow, err := s.ExportSource(decl, true)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", m.Name, err)
		}

		exports = append(exports, ModuleExport{
			Name:   shallow.Name,
			Kind:   GetSourceKind(source),
			Decl:   decl,
			Source: source,
		})
	}

	return exports, nil
}

// Fresh returns, in insertion order, the modules that export at least one
// declaration no earlier module already exports.
func (s *Set) Fresh() ([]*Module, error) {
	seen := make(map[*typedoc.Reflection]bool)
	var fresh []*Module

	for _, name := range s.order {
		m := s.byName[name]

		var newDecls []*typedoc.Reflection
		for _, child := range m.Decl.Children {
			source, err := s.ExportSource(child, false)
			if err != nil {
				return nil, fmt.Errorf("module %s: %w", m.Name, err)
			}
			if !seen[source.Decl] {
				newDecls = append(newDecls, source.Decl)
			}
		}

		if len(newDecls) == 0 {
			continue
		}

		fresh = append(fresh, m)
		for _, d := range newDecls {
			seen[d] = true
		}
	}

	return fresh, nil
}
