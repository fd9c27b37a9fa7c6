// Package typedoc models the JSON project file written by `typedoc --json`.
//
// Only the parts needed to build the module pages are decoded: names, kinds,
// flags, sources, children, groups and the targets of reference reflections.
// After decoding, every reflection is linked to its parent and references are
// linked to the reflection they point at.
package typedoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	docerrors "github.com/conneroisu/docsite/internal/errors"
)

// Kind mirrors TypeDoc's ReflectionKind bit values.
type Kind int

const (
	KindProject              Kind = 0x1
	KindModule               Kind = 0x2
	KindNamespace            Kind = 0x4
	KindEnum                 Kind = 0x8
	KindEnumMember           Kind = 0x10
	KindVariable             Kind = 0x20
	KindFunction             Kind = 0x40
	KindClass                Kind = 0x80
	KindInterface            Kind = 0x100
	KindConstructor          Kind = 0x200
	KindProperty             Kind = 0x400
	KindMethod               Kind = 0x800
	KindCallSignature        Kind = 0x1000
	KindIndexSignature       Kind = 0x2000
	KindConstructorSignature Kind = 0x4000
	KindParameter            Kind = 0x8000
	KindTypeLiteral          Kind = 0x10000
	KindTypeParameter        Kind = 0x20000
	KindAccessor             Kind = 0x40000
	KindGetSignature         Kind = 0x80000
	KindSetSignature         Kind = 0x100000
	KindTypeAlias            Kind = 0x200000
	KindReference            Kind = 0x400000

	KindFunctionOrMethod = KindFunction | KindMethod
)

var kindNames = map[Kind]string{
	KindProject:              "project",
	KindModule:               "module",
	KindNamespace:            "namespace",
	KindEnum:                 "enum",
	KindEnumMember:           "enum member",
	KindVariable:             "variable",
	KindFunction:             "function",
	KindClass:                "class",
	KindInterface:            "interface",
	KindConstructor:          "constructor",
	KindProperty:             "property",
	KindMethod:               "method",
	KindCallSignature:        "call signature",
	KindIndexSignature:       "index signature",
	KindConstructorSignature: "constructor signature",
	KindParameter:            "parameter",
	KindTypeLiteral:          "type literal",
	KindTypeParameter:        "type parameter",
	KindAccessor:             "accessor",
	KindGetSignature:         "get signature",
	KindSetSignature:         "set signature",
	KindTypeAlias:            "type alias",
	KindReference:            "reference",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Flags holds the reflection flags that matter for display.
type Flags struct {
	IsConst    bool `json:"isConst,omitempty"`
	IsExternal bool `json:"isExternal,omitempty"`
	IsPrivate  bool `json:"isPrivate,omitempty"`
	IsReadonly bool `json:"isReadonly,omitempty"`
}

// Source is a declaration site.
type Source struct {
	FileName  string `json:"fileName"`
	Line      int    `json:"line"`
	Character int    `json:"character"`
	URL       string `json:"url,omitempty"`
}

// Group is a titled list of child reflection ids.
type Group struct {
	Title    string `json:"title"`
	Children []int  `json:"children"`
}

// Reflection is a node of the project tree.
type Reflection struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Kind      Kind            `json:"kind"`
	Flags     Flags           `json:"flags"`
	Sources   []Source        `json:"sources,omitempty"`
	Children  []*Reflection   `json:"children,omitempty"`
	Groups    []Group         `json:"groups,omitempty"`
	RawTarget json.RawMessage `json:"target,omitempty"`

	Parent *Reflection `json:"-"`
	Target *Reflection `json:"-"`
}

// FileName returns the first source file of r, or "" when unknown.
func (r *Reflection) FileName() string {
	if r == nil || len(r.Sources) == 0 {
		return ""
	}
	return r.Sources[0].FileName
}

// Project is the root reflection with an id index.
type Project struct {
	Reflection
	byID map[int]*Reflection
}

// Load reads a TypeDoc JSON project file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, docerrors.NewIOError(docerrors.ErrCodeFileNotFound, "cannot read reflection tree", err).
			WithFile(path)
	}

	project, err := Parse(data)
	if err != nil {
		return nil, docerrors.NewReflectionError(docerrors.ErrCodeReflectionInvalid, "invalid reflection tree", err).
			WithFile(path)
	}

	return project, nil
}

// Parse decodes and links a TypeDoc JSON project.
func Parse(data []byte) (*Project, error) {
	var project Project
	if err := json.Unmarshal(data, &project.Reflection); err != nil {
		return nil, err
	}
	if project.Kind != KindProject {
		return nil, fmt.Errorf("root reflection has kind %s, want project", project.Kind)
	}

	project.byID = make(map[int]*Reflection)
	if err := project.index(&project.Reflection, nil); err != nil {
		return nil, err
	}
	project.resolveTargets()

	return &project, nil
}

func (p *Project) index(r, parent *Reflection) error {
	if _, dup := p.byID[r.ID]; dup {
		return fmt.Errorf("duplicate reflection id %d (%s)", r.ID, r.Name)
	}
	p.byID[r.ID] = r
	r.Parent = parent

	for _, child := range r.Children {
		if child == nil {
			return fmt.Errorf("null child in reflection %d", r.ID)
		}
		if err := p.index(child, r); err != nil {
			return err
		}
	}
	return nil
}

func (p *Project) resolveTargets() {
	for _, r := range p.byID {
		raw := bytes.TrimSpace(r.RawTarget)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}

		var id int
		if err := json.Unmarshal(raw, &id); err != nil {
			// Targets in other shapes (symbol references to external
			// packages) have nothing to link to.
			continue
		}
		// Unknown ids point outside the documented project.
		r.Target, _ = p.Get(id)
	}
}

// Get returns the reflection with the given id.
func (p *Project) Get(id int) (*Reflection, bool) {
	r, ok := p.byID[id]
	return r, ok
}

// Group returns the reflections listed by the top-level group with the
// given title, in group order.
func (p *Project) Group(title string) ([]*Reflection, error) {
	for _, g := range p.Groups {
		if g.Title != title {
			continue
		}

		refls := make([]*Reflection, 0, len(g.Children))
		for _, id := range g.Children {
			r, ok := p.Get(id)
			if !ok {
				return nil, docerrors.NewReflectionError(docerrors.ErrCodeReflectionInvalid,
					fmt.Sprintf("group %q references unknown id %d", title, id), nil)
			}
			refls = append(refls, r)
		}
		return refls, nil
	}

	return nil, docerrors.NewReflectionError(docerrors.ErrCodeReflectionInvalid,
		fmt.Sprintf("project has no %q group", title), nil)
}
