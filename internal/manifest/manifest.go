package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is a parsed typeset manifest: named type declarations plus
// match scenarios. It is the fixture format consumed by the inspector
// CLI and by fixture-driven tests; the language proper has no concrete
// syntax, so manifests are the only textual input this repo reads.
type Manifest struct {
	Types     []Decl     `yaml:"types"`
	Scenarios []Scenario `yaml:"scenarios,omitempty"`
}

// Decl declares one named type. Exactly one of Record, Tag, Compose
// must be set.
type Decl struct {
	Name    string             `yaml:"name"`
	Record  map[string]TypeRef `yaml:"record,omitempty"`
	Tag     []string           `yaml:"tag,omitempty"`
	Compose *Compose           `yaml:"compose,omitempty"`
}

// Compose is an unevaluated composition of two type references.
type Compose struct {
	Left  TypeRef `yaml:"left"`
	Op    string  `yaml:"op"` // "&" or "|"
	Right TypeRef `yaml:"right"`
}

// TypeRef references a type: either by name (declared or primitive,
// written as a plain scalar) or as an inline record/tag shape.
type TypeRef struct {
	Name   string             `yaml:"name,omitempty"`
	Record map[string]TypeRef `yaml:"record,omitempty"`
	Tag    []string           `yaml:"tag,omitempty"`
}

// UnmarshalYAML lets a plain scalar stand for a by-name reference, so
// members can be written as `a: int32` instead of `a: { name: int32 }`.
func (r *TypeRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.Name = node.Value
		return nil
	}
	type plain TypeRef
	return node.Decode((*plain)(r))
}

// Scenario is one match expression to resolve: a subject value, the
// ordered arm list, and optionally the closed set of possible subject
// types enabling the static checks.
type Scenario struct {
	Name    string    `yaml:"name"`
	Subject ValueSpec `yaml:"subject"`
	Arms    []ArmSpec `yaml:"arms"`
	Closed  []TypeRef `yaml:"closed,omitempty"`
}

// ArmSpec is one match arm. Exactly one of Type, Shape, Value must be
// set. Comparison patterns carry opaque evaluator callbacks and cannot
// appear in a manifest.
type ArmSpec struct {
	Type  *TypeRef           `yaml:"type,omitempty"`
	Shape map[string]TypeRef `yaml:"shape,omitempty"`
	Value *ValueTest         `yaml:"value,omitempty"`
	Bind  string             `yaml:"bind,omitempty"`
}

// ValueTest tests a member path against a literal.
type ValueTest struct {
	Path   string `yaml:"path"` // dot-separated member path, "" for the subject
	Equals any    `yaml:"equals"`
}

// ValueSpec describes a subject value. Exactly one variant is set;
// Type optionally picks the primitive width for numbers (defaults:
// int32, float64).
type ValueSpec struct {
	Int    *int64               `yaml:"int,omitempty"`
	Float  *float64             `yaml:"float,omitempty"`
	Str    *string              `yaml:"str,omitempty"`
	Bool   *bool                `yaml:"bool,omitempty"`
	Tag    string               `yaml:"tag,omitempty"`
	Record map[string]ValueSpec `yaml:"record,omitempty"`
	Type   string               `yaml:"type,omitempty"`
}

// Load reads and parses a typeset manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses manifest content from bytes. The path argument is used
// only for error messages.
func Parse(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := m.validate(path); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate(path string) error {
	seen := make(map[string]bool)
	for i, d := range m.Types {
		if d.Name == "" {
			return fmt.Errorf("%s: types[%d]: name is required", path, i)
		}
		if seen[d.Name] {
			return fmt.Errorf("%s: types[%d]: duplicate type name %q", path, i, d.Name)
		}
		seen[d.Name] = true
		if countSet(d.Record != nil, len(d.Tag) > 0, d.Compose != nil) != 1 {
			return fmt.Errorf("%s: type %q: exactly one of record, tag, compose is required", path, d.Name)
		}
		if d.Compose != nil && d.Compose.Op != "&" && d.Compose.Op != "|" {
			return fmt.Errorf("%s: type %q: op must be & or |, got %q", path, d.Name, d.Compose.Op)
		}
	}
	for i, s := range m.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("%s: scenarios[%d]: name is required", path, i)
		}
		if len(s.Arms) == 0 {
			return fmt.Errorf("%s: scenario %q: at least one arm is required", path, s.Name)
		}
		for j, a := range s.Arms {
			if countSet(a.Type != nil, a.Shape != nil, a.Value != nil) != 1 {
				return fmt.Errorf("%s: scenario %q: arms[%d]: exactly one of type, shape, value is required", path, s.Name, j)
			}
		}
	}
	return nil
}

func countSet(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
