package stub

import (
	"fmt"
	"strings"

	"github.com/teranos/stubgen/descriptor"
	"github.com/teranos/stubgen/typeinfo"
)

// signature is what functions and methods have in common when rendered.
type signature struct {
	name       string
	receiver   string
	params     Parameters
	ret        typeinfo.TypeInfo
	doc        string
	isAsync    bool
	deprecated *descriptor.DeprecatedInfo
	ignore     *descriptor.IgnoreTarget
	decorators []string
}

// writeSignature renders the decorators, the def line and either the
// docstring or the empty body. The type: ignore comment follows the colon
// when a docstring comes next, and follows the ... otherwise.
func writeSignature(sb *strings.Builder, s signature, overloaded bool, indent string) {
	if s.deprecated != nil {
		fmt.Fprintf(sb, "%s@typing_extensions.deprecated(%q)\n", indent, s.deprecated.Message())
	}
	if overloaded {
		sb.WriteString(indent + "@typing.overload\n")
	}
	for _, d := range s.decorators {
		sb.WriteString(indent + d + "\n")
	}

	params := s.params.String()
	switch {
	case s.receiver != "" && params != "":
		params = s.receiver + ", " + params
	case s.receiver != "":
		params = s.receiver
	}
	async := ""
	if s.isAsync {
		async = "async "
	}
	fmt.Fprintf(sb, "%s%sdef %s(%s) -> %s:", indent, async, s.name, params, s.ret.Name)

	comment := ignoreComment(s.ignore, s.name)
	if s.doc == "" {
		sb.WriteString(" ..." + comment + "\n")
		return
	}
	sb.WriteString(comment + "\n")
	writeDocstring(sb, s.doc, indent+indentUnit)
}

func (f *FunctionDef) signature() signature {
	return signature{
		name:       f.Name,
		params:     f.Parameters,
		ret:        f.Return,
		doc:        f.Doc,
		isAsync:    f.IsAsync,
		deprecated: f.Deprecated,
		ignore:     f.TypeIgnore,
	}
}

func (f *FunctionDef) imports() typeinfo.ImportSet {
	imports := f.Return.Imports.Clone()
	imports.Merge(f.Parameters.Imports())
	if f.Deprecated != nil {
		imports.Add(typeinfo.ImportModule("typing_extensions"))
	}
	return imports
}

func (m *MethodDef) signature() signature {
	s := signature{
		name:       m.Name,
		params:     m.Parameters,
		ret:        m.Return,
		doc:        m.Doc,
		isAsync:    m.IsAsync,
		deprecated: m.Deprecated,
		ignore:     m.TypeIgnore,
	}
	switch m.Kind {
	case descriptor.MethodInstance:
		s.receiver = "self"
	case descriptor.MethodStatic:
		s.decorators = append(s.decorators, "@staticmethod")
	case descriptor.MethodClass:
		s.receiver = "cls"
		s.decorators = append(s.decorators, "@classmethod")
	case descriptor.MethodNew:
		s.receiver = "cls"
	}
	if m.IsAbstract {
		s.decorators = append(s.decorators, "@abc.abstractmethod")
	}
	return s
}

func (m *MethodDef) imports() typeinfo.ImportSet {
	imports := m.Return.Imports.Clone()
	imports.Merge(m.Parameters.Imports())
	if m.Deprecated != nil {
		imports.Add(typeinfo.ImportModule("typing_extensions"))
	}
	if m.IsAbstract {
		imports.Add(typeinfo.ImportModule("abc"))
	}
	return imports
}

// writeFunctions renders one group of alternatives sharing a name.
func writeFunctions(sb *strings.Builder, group []*FunctionDef, indent string) {
	for _, f := range group {
		writeSignature(sb, f.signature(), len(group) > 1, indent)
	}
}

func writeMethods(sb *strings.Builder, group []*MethodDef, indent string) {
	for _, m := range group {
		writeSignature(sb, m.signature(), len(group) > 1, indent)
	}
}
