package stub

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/teranos/stubgen/descriptor"
	"github.com/teranos/stubgen/typeinfo"
)

func (m *MemberDef) imports() typeinfo.ImportSet {
	imports := m.Type.Imports.Clone()
	if m.Deprecated != nil {
		imports.Add(typeinfo.ImportModule("typing_extensions"))
	}
	if m.IsAbstract {
		imports.Add(typeinfo.ImportModule("abc"))
	}
	return imports
}

func (b *Body) imports() typeinfo.ImportSet {
	imports := typeinfo.ImportSet{}
	for _, a := range b.Attrs {
		imports.Merge(a.Type.Imports)
	}
	for _, gs := range b.GetterSetters {
		switch {
		case gs.Getter == nil && gs.Setter != nil:
			// rendered as a plain attribute
			imports.Merge(gs.Setter.Type.Imports)
		case gs.Getter != nil:
			imports.Merge(gs.Getter.imports())
			if gs.Setter != nil {
				imports.Merge(gs.Setter.imports())
			}
		}
	}
	for _, group := range b.Methods {
		if len(group) > 1 {
			imports.Add(typeinfo.ImportModule("typing"))
		}
		for _, m := range group {
			imports.Merge(m.imports())
		}
	}
	return imports
}

func (c *ClassDef) imports() typeinfo.ImportSet {
	imports := c.Body.imports()
	for _, base := range c.Bases {
		imports.Merge(base.Imports)
	}
	if c.Body.IsAbstract {
		imports.Add(typeinfo.ImportModule("abc"))
	}
	for _, v := range c.Variants {
		imports.Merge(v.imports())
	}
	return imports
}

func (e *EnumDef) imports() typeinfo.ImportSet {
	imports := e.Body.imports()
	imports.Add(typeinfo.ImportModule("enum"))
	return imports
}

func writeAttr(sb *strings.Builder, a *MemberDef, indent string) {
	sb.WriteString(indent + a.Name + ": " + a.Type.Name)
	if a.Default != "" {
		sb.WriteString(" = " + a.Default)
	}
	sb.WriteString("\n")
	if a.Doc != "" {
		writeDocstring(sb, a.Doc, indent)
	}
}

func writeAccessor(sb *strings.Builder, decorator string, m *MemberDef, params, ret, indent string) {
	if m.Deprecated != nil {
		fmt.Fprintf(sb, "%s@typing_extensions.deprecated(%q)\n", indent, m.Deprecated.Message())
	}
	sb.WriteString(indent + decorator + "\n")
	if m.IsAbstract {
		sb.WriteString(indent + "@abc.abstractmethod\n")
	}
	fmt.Fprintf(sb, "%sdef %s(%s) -> %s:", indent, m.Name, params, ret)
	if m.Doc == "" {
		sb.WriteString(" ...\n")
		return
	}
	sb.WriteString("\n")
	writeDocstring(sb, m.Doc, indent+indentUnit)
}

// writeProperty renders a getter as @property and a setter as
// @name.setter. A setter without a getter has no property to attach to and
// is rendered as a plain annotated attribute, dropping its decorators.
func writeProperty(sb *strings.Builder, gs *GetterSetter, indent string) {
	if gs.Getter == nil {
		if gs.Setter != nil {
			writeAttr(sb, gs.Setter, indent)
		}
		return
	}
	g := gs.Getter
	writeAccessor(sb, "@property", g, "self", g.Type.Name, indent)
	if s := gs.Setter; s != nil {
		writeAccessor(sb, "@"+s.Name+".setter", s, "self, value: "+s.Type.Name, "None", indent)
	}
}

// writeBody renders attributes, properties and methods, each sorted by
// name. It reports whether anything was written.
func writeBody(sb *strings.Builder, b *Body, indent string) bool {
	for _, a := range sortedAttrs(b.Attrs) {
		writeAttr(sb, a, indent)
	}
	for _, name := range slices.Sorted(maps.Keys(b.GetterSetters)) {
		writeProperty(sb, b.GetterSetters[name], indent)
	}
	for _, name := range slices.Sorted(maps.Keys(b.Methods)) {
		writeMethods(sb, b.Methods[name], indent)
	}
	return !b.empty()
}

// sortedAttrs orders attributes by name, then by rendered type for
// attributes sharing a name.
func sortedAttrs(attrs []*MemberDef) []*MemberDef {
	return slices.SortedStableFunc(slices.Values(attrs), func(a, b *MemberDef) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Type.Name, b.Type.Name)
	})
}

func classHeader(name string, bases []string) string {
	if len(bases) == 0 {
		return "class " + name + ":\n"
	}
	return "class " + name + "(" + strings.Join(bases, ", ") + "):\n"
}

func writeClass(sb *strings.Builder, c *ClassDef, indent string) {
	bases := make([]string, 0, len(c.Bases)+1)
	for _, b := range c.Bases {
		bases = append(bases, b.Name)
	}
	if c.Body.IsAbstract {
		bases = append(bases, "abc.ABC")
	}
	sb.WriteString(indent + classHeader(c.Name, bases))

	inner := indent + indentUnit
	wrote := c.Doc != ""
	if wrote {
		writeDocstring(sb, c.Doc, inner)
	}
	if writeBody(sb, &c.Body, inner) {
		wrote = true
	}
	for _, v := range c.Variants {
		if wrote {
			sb.WriteString("\n")
		}
		writeVariant(sb, c.Name, v, inner)
		wrote = true
	}
	if !wrote {
		sb.WriteString(inner + "...\n")
	}
}

func writeVariant(sb *strings.Builder, enumName string, v *VariantDef, indent string) {
	sb.WriteString(indent + classHeader(v.Name, []string{enumName}))
	inner := indent + indentUnit
	wrote := v.Doc != ""
	if wrote {
		writeDocstring(sb, v.Doc, inner)
	}
	body := v.body()
	if writeBody(sb, &body, inner) {
		wrote = true
	}
	if !wrote {
		sb.WriteString(inner + "...\n")
	}
}

func writeEnum(sb *strings.Builder, e *EnumDef, indent string) {
	sb.WriteString(indent + classHeader(e.Name, []string{"enum.Enum"}))
	inner := indent + indentUnit
	wrote := e.Doc != ""
	if wrote {
		writeDocstring(sb, e.Doc, inner)
	}
	for _, v := range e.Variants {
		writeEnumVariant(sb, v, inner)
		wrote = true
	}
	if writeBody(sb, &e.Body, inner) {
		wrote = true
	}
	if !wrote {
		sb.WriteString(inner + "...\n")
	}
}

func writeEnumVariant(sb *strings.Builder, v descriptor.EnumVariant, indent string) {
	sb.WriteString(indent + v.Name + " = ...\n")
	if v.Doc != "" {
		writeDocstring(sb, v.Doc, indent)
	}
}
