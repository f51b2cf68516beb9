// Package manifest declares descriptors in a YAML document, for native
// extensions whose front end is not a Go program.
//
// Example:
//
//	classes:
//	  - name: Point
//	    module: geo
//	    getters:
//	      - {name: x, type: float}
//	methods:
//	  - class: geo.Point
//	    methods:
//	      - name: __new__
//	        kind: new
//	        params:
//	          - {name: x, type: float}
//	functions:
//	  - name: dist
//	    module: geo
//	    params:
//	      - {name: a, type: {class: geo.Point}}
//	    returns: float
package manifest

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/teranos/stubgen/errors"
)

// Manifest is the decoded document.
type Manifest struct {
	Classes      []Class       `yaml:"classes"`
	ComplexEnums []ComplexEnum `yaml:"complex_enums"`
	Enums        []Enum        `yaml:"enums"`
	Functions    []Function    `yaml:"functions"`
	Variables    []Variable    `yaml:"variables"`
	Modules      []ModuleDoc   `yaml:"modules"`
	Methods      []Methods     `yaml:"methods"`
}

// Deprecated marks a declaration as deprecated.
type Deprecated struct {
	Since string `yaml:"since"`
	Note  string `yaml:"note"`
}

// Default is the default value of a parameter, attribute or variable.
// Exactly one of the fields is set.
type Default struct {
	// Python is literal Python text, used verbatim.
	Python string `yaml:"python"`
	// Value is a YAML value converted to Python literal syntax.
	Value yaml.Node `yaml:"value"`
}

// Member is an attribute, getter or setter.
type Member struct {
	Name       string      `yaml:"name"`
	Type       *TypeExpr   `yaml:"type"`
	Doc        string      `yaml:"doc"`
	Default    *Default    `yaml:"default"`
	Deprecated *Deprecated `yaml:"deprecated"`
	Abstract   bool        `yaml:"abstract"`
}

// Param is a callable parameter.
type Param struct {
	Name    string    `yaml:"name"`
	Kind    string    `yaml:"kind"`
	Type    *TypeExpr `yaml:"type"`
	Default *Default  `yaml:"default"`
}

// TypeIgnore is either `all` or a list of rule names.
type TypeIgnore struct {
	Rules []string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TypeIgnore) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value != "all" && node.Value != "true" {
			return errors.NewInvalidManifestf("line %d: type_ignore must be all or a list of rules", node.Line)
		}
		t.Rules = nil
		return nil
	case yaml.SequenceNode:
		return node.Decode(&t.Rules)
	default:
		return errors.NewInvalidManifestf("line %d: type_ignore must be all or a list of rules", node.Line)
	}
}

// Method is one method alternative.
type Method struct {
	Name       string      `yaml:"name"`
	Kind       string      `yaml:"kind"`
	Params     []Param     `yaml:"params"`
	Returns    *TypeExpr   `yaml:"returns"`
	Doc        string      `yaml:"doc"`
	Async      bool        `yaml:"async"`
	Deprecated *Deprecated `yaml:"deprecated"`
	TypeIgnore *TypeIgnore `yaml:"type_ignore"`
	Abstract   bool        `yaml:"abstract"`
}

// Class declares the shape of a class.
type Class struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Module  string      `yaml:"module"`
	Bases   []*TypeExpr `yaml:"bases"`
	Doc     string      `yaml:"doc"`
	Getters []Member    `yaml:"getters"`
	Setters []Member    `yaml:"setters"`
}

// Variant is one variant of a complex enum.
type Variant struct {
	Name    string   `yaml:"name"`
	Form    string   `yaml:"form"`
	Fields  []Member `yaml:"fields"`
	Params  []Param  `yaml:"params"`
	Mapping bool     `yaml:"mapping"`
	Doc     string   `yaml:"doc"`
}

// ComplexEnum declares a tagged enum.
type ComplexEnum struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Module   string    `yaml:"module"`
	Variants []Variant `yaml:"variants"`
	Doc      string    `yaml:"doc"`
}

// EnumVariant is one member of a simple enum.
type EnumVariant struct {
	Name string `yaml:"name"`
	Doc  string `yaml:"doc"`
}

// Enum declares a simple enum.
type Enum struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	Module   string        `yaml:"module"`
	Variants []EnumVariant `yaml:"variants"`
	Doc      string        `yaml:"doc"`
}

// Function declares a module-level function. Repeating a name declares an
// overload.
type Function struct {
	Name       string      `yaml:"name"`
	Module     string      `yaml:"module"`
	Params     []Param     `yaml:"params"`
	Returns    *TypeExpr   `yaml:"returns"`
	Doc        string      `yaml:"doc"`
	Async      bool        `yaml:"async"`
	Deprecated *Deprecated `yaml:"deprecated"`
	TypeIgnore *TypeIgnore `yaml:"type_ignore"`
}

// Variable declares a module-level variable.
type Variable struct {
	Name    string    `yaml:"name"`
	Module  string    `yaml:"module"`
	Type    *TypeExpr `yaml:"type"`
	Default *Default  `yaml:"default"`
}

// ModuleDoc sets a module docstring.
type ModuleDoc struct {
	Module string `yaml:"module"`
	Doc    string `yaml:"doc"`
}

// Methods adds behavior to the class or enum with identity key Class.
type Methods struct {
	Class   string   `yaml:"class"`
	Attrs   []Member `yaml:"attrs"`
	Getters []Member `yaml:"getters"`
	Setters []Member `yaml:"setters"`
	Methods []Method `yaml:"methods"`
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse manifest %s", path)
	}
	return m, nil
}

// Parse decodes a manifest document. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, errors.Mark(err, errors.ErrInvalidManifest)
	}
	return &m, nil
}
