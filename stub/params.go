package stub

import (
	"strings"

	"github.com/teranos/stubgen/descriptor"
	"github.com/teranos/stubgen/typeinfo"
)

// Parameter is a resolved callable parameter. Its default stays deferred
// until the signature is rendered.
type Parameter struct {
	Name    string
	Kind    descriptor.ParameterKind
	Type    typeinfo.TypeInfo
	Default descriptor.DefaultRenderer
}

func (p Parameter) String() string {
	var prefix string
	switch p.Kind {
	case descriptor.VarPositional:
		prefix = "*"
	case descriptor.VarKeyword:
		prefix = "**"
	}
	s := prefix + p.Name + ": " + p.Type.Name
	if p.Default != nil && p.Kind != descriptor.VarPositional && p.Kind != descriptor.VarKeyword {
		s += " = " + p.Default()
	}
	return s
}

// Parameters groups parameters by how they may be passed, keeping
// declaration order within each group.
type Parameters struct {
	PositionalOnly      []Parameter
	PositionalOrKeyword []Parameter
	VarPositional       *Parameter
	KeywordOnly         []Parameter
	VarKeyword          *Parameter
}

func newParameters(params []descriptor.Parameter) Parameters {
	var ps Parameters
	for _, d := range params {
		p := Parameter{Name: d.Name, Kind: d.Kind, Type: d.ResolveType(), Default: d.Default}
		ps.add(p)
	}
	return ps
}

func (ps *Parameters) add(p Parameter) {
	switch p.Kind {
	case descriptor.PositionalOnly:
		ps.PositionalOnly = append(ps.PositionalOnly, p)
	case descriptor.PositionalOrKeyword:
		ps.PositionalOrKeyword = append(ps.PositionalOrKeyword, p)
	case descriptor.VarPositional:
		ps.VarPositional = &p
	case descriptor.KeywordOnly:
		ps.KeywordOnly = append(ps.KeywordOnly, p)
	case descriptor.VarKeyword:
		ps.VarKeyword = &p
	}
}

// IsEmpty reports whether there are no parameters at all.
func (ps Parameters) IsEmpty() bool {
	return len(ps.PositionalOnly) == 0 && len(ps.PositionalOrKeyword) == 0 &&
		ps.VarPositional == nil && len(ps.KeywordOnly) == 0 && ps.VarKeyword == nil
}

// Imports collects the imports of every parameter type.
func (ps Parameters) Imports() typeinfo.ImportSet {
	imports := typeinfo.ImportSet{}
	ps.each(func(p Parameter) { imports.Merge(p.Type.Imports) })
	return imports
}

func (ps Parameters) each(fn func(Parameter)) {
	for _, p := range ps.PositionalOnly {
		fn(p)
	}
	for _, p := range ps.PositionalOrKeyword {
		fn(p)
	}
	if ps.VarPositional != nil {
		fn(*ps.VarPositional)
	}
	for _, p := range ps.KeywordOnly {
		fn(p)
	}
	if ps.VarKeyword != nil {
		fn(*ps.VarKeyword)
	}
}

// String renders the parameter list in Python grammar order, with the
// / and * separators where they are required.
func (ps Parameters) String() string {
	var parts []string
	for _, p := range ps.PositionalOnly {
		parts = append(parts, p.String())
	}
	if len(ps.PositionalOnly) > 0 {
		parts = append(parts, "/")
	}
	for _, p := range ps.PositionalOrKeyword {
		parts = append(parts, p.String())
	}
	switch {
	case ps.VarPositional != nil:
		parts = append(parts, ps.VarPositional.String())
	case len(ps.KeywordOnly) > 0:
		parts = append(parts, "*")
	}
	for _, p := range ps.KeywordOnly {
		parts = append(parts, p.String())
	}
	if ps.VarKeyword != nil {
		parts = append(parts, ps.VarKeyword.String())
	}
	return strings.Join(parts, ", ")
}
