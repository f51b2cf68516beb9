package stub

import (
	"maps"
	"slices"
	"strings"

	"github.com/teranos/stubgen/descriptor"
	"github.com/teranos/stubgen/typeinfo"
)

// Header opens every generated file.
const Header = "# Code generated by stubgen. DO NOT EDIT.\n# ruff: noqa: E501, F401\n"

// RenderConfig carries the decisions made once per generation run.
type RenderConfig struct {
	SelfImport typeinfo.SelfImportStrategy
}

func (m *Module) imports() typeinfo.ImportSet {
	imports := typeinfo.ImportSet{}
	for _, v := range m.Variables {
		imports.Merge(v.Type.Imports)
	}
	for _, group := range m.Functions {
		if len(group) > 1 {
			imports.Add(typeinfo.ImportModule("typing"))
		}
		for _, f := range group {
			imports.Merge(f.imports())
		}
	}
	for _, c := range m.Classes {
		imports.Merge(c.imports())
	}
	for _, e := range m.Enums {
		imports.Merge(e.imports())
	}
	return imports
}

// importLines resolves the module's imports into header lines. Imports of
// names declared in this module are dropped.
func (m *Module) importLines(cfg RenderConfig) []string {
	var plain []string
	from := make(map[string][]string)
	for _, ref := range m.imports().Sorted() {
		mod := ref.Module.Resolve(m.DefaultModuleName, cfg.SelfImport)
		if mod == m.Name {
			continue
		}
		if ref.Name == "" {
			plain = append(plain, mod)
			continue
		}
		from[mod] = append(from[mod], ref.Name)
	}

	var lines []string
	for _, mod := range slices.Compact(slices.Sorted(slices.Values(plain))) {
		lines = append(lines, "import "+mod)
	}
	for _, mod := range slices.Sorted(maps.Keys(from)) {
		names := slices.Compact(slices.Sorted(slices.Values(from[mod])))
		lines = append(lines, "from "+mod+" import "+strings.Join(names, ", "))
	}
	for _, sub := range slices.Sorted(maps.Keys(m.Submodules)) {
		lines = append(lines, "from . import "+sub)
	}
	return lines
}

// Render returns the stub text of the module. The output depends only on
// the module's content, never on map iteration order.
func (m *Module) Render(cfg RenderConfig) string {
	var sb strings.Builder
	sb.WriteString(Header)
	if m.Doc != "" {
		sb.WriteString("\n")
		writeDocstring(&sb, m.Doc, "")
	}
	if lines := m.importLines(cfg); len(lines) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n")
	}

	var decls []string
	for _, name := range slices.Sorted(maps.Keys(m.Variables)) {
		v := m.Variables[name]
		line := v.Name + ": " + v.Type.Name
		if v.Default != "" {
			line += " = " + v.Default
		}
		decls = append(decls, line+"\n")
	}
	for _, name := range slices.Sorted(maps.Keys(m.Functions)) {
		var buf strings.Builder
		writeFunctions(&buf, m.Functions[name], "")
		decls = append(decls, buf.String())
	}
	for _, c := range sortedByKey(m.Classes) {
		var buf strings.Builder
		writeClass(&buf, c, "")
		decls = append(decls, buf.String())
	}
	for _, e := range sortedByKey(m.Enums) {
		var buf strings.Builder
		writeEnum(&buf, e, "")
		decls = append(decls, buf.String())
	}
	for _, d := range decls {
		sb.WriteString("\n")
		sb.WriteString(d)
	}
	return sb.String()
}

// sortedByKey orders classes and enums by identity key.
func sortedByKey[T any](defs map[descriptor.TypeID]T) []T {
	keys := slices.Sorted(maps.Keys(defs))
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, defs[k])
	}
	return out
}
