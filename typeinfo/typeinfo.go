// Package typeinfo models how a type is printed in a Python stub file,
// together with the imports that printing requires.
package typeinfo

import (
	"regexp"
	"slices"
	"strings"
)

// TypeInfo is the printed text of a type plus the imports it needs.
type TypeInfo struct {
	Name    string
	Imports ImportSet
}

// String returns the printed text.
func (t TypeInfo) String() string {
	return t.Name
}

// StubType pairs the type accepted in parameter position with the type
// reported in return and attribute position.
type StubType struct {
	Input  TypeInfo
	Output TypeInfo
}

// Same uses t for both positions.
func Same(t TypeInfo) StubType {
	return StubType{Input: t, Output: t}
}

// Builtin is a type that needs no import, like int or str.
func Builtin(name string) TypeInfo {
	return TypeInfo{Name: name, Imports: ImportSet{}}
}

// None is the None type.
func None() TypeInfo {
	return Builtin("None")
}

// Any is typing.Any.
func Any() TypeInfo {
	return TypeInfo{Name: "typing.Any", Imports: NewImportSet(ImportModule("typing"))}
}

// Override is caller supplied literal text with explicit imports.
func Override(text string, imports ...ImportRef) TypeInfo {
	return TypeInfo{Name: text, Imports: NewImportSet(imports...)}
}

// LocallyDefined is a type declared by the project itself. It prints as its
// bare name and imports that name from the declaring module; the import is
// dropped when the reference is rendered inside that module.
func LocallyDefined(name string, module ModuleRef) TypeInfo {
	return TypeInfo{Name: name, Imports: NewImportSet(ImportName(module, name))}
}

// Self is the enclosing type as a return type. It always prints as Self;
// whether Self comes from typing or typing_extensions is chosen per run.
func Self() TypeInfo {
	return TypeInfo{Name: "Self", Imports: NewImportSet(ImportName(ModuleRef{self: true}, "Self"))}
}

// IsSelf reports whether t is exactly the Self type.
func (t TypeInfo) IsSelf() bool {
	return t.Name == "Self" && len(t.Imports) == 1 && t.Imports.Has(ImportName(ModuleRef{self: true}, "Self"))
}

func compose(text string, parts ...TypeInfo) TypeInfo {
	imports := ImportSet{}
	for _, p := range parts {
		imports.Merge(p.Imports)
	}
	return TypeInfo{Name: text, Imports: imports}
}

func join(parts []TypeInfo, sep string) string {
	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = p.Name
	}
	return strings.Join(names, sep)
}

// List is list[T].
func List(elem TypeInfo) TypeInfo {
	return compose("list["+elem.Name+"]", elem)
}

// Set is set[T].
func Set(elem TypeInfo) TypeInfo {
	return compose("set["+elem.Name+"]", elem)
}

// Dict is dict[K, V].
func Dict(key, value TypeInfo) TypeInfo {
	return compose("dict["+key.Name+", "+value.Name+"]", key, value)
}

// Tuple is tuple[A, B, ...]; an empty tuple prints as tuple[()].
func Tuple(elems ...TypeInfo) TypeInfo {
	if len(elems) == 0 {
		return Builtin("tuple[()]")
	}
	return compose("tuple["+join(elems, ", ")+"]", elems...)
}

// VarTuple is tuple[T, ...].
func VarTuple(elem TypeInfo) TypeInfo {
	return compose("tuple["+elem.Name+", ...]", elem)
}

// Optional is T | None.
func Optional(t TypeInfo) TypeInfo {
	return compose(t.Name+" | None", t)
}

// Sequence is typing.Sequence[T].
func Sequence(elem TypeInfo) TypeInfo {
	t := compose("typing.Sequence["+elem.Name+"]", elem)
	t.Imports.Add(ImportModule("typing"))
	return t
}

// Mapping is typing.Mapping[K, V].
func Mapping(key, value TypeInfo) TypeInfo {
	t := compose("typing.Mapping["+key.Name+", "+value.Name+"]", key, value)
	t.Imports.Add(ImportModule("typing"))
	return t
}

// Callable is typing.Callable[[A, B], R].
func Callable(args []TypeInfo, ret TypeInfo) TypeInfo {
	t := compose("typing.Callable[["+join(args, ", ")+"], "+ret.Name+"]", append(slices.Clone(args), ret)...)
	t.Imports.Add(ImportModule("typing"))
	return t
}

// BitOr is a | b.
func BitOr(a, b TypeInfo) TypeInfo {
	return compose(a.Name+" | "+b.Name, a, b)
}

// Union left folds terms with |. It returns false for an empty list.
func Union(terms ...TypeInfo) (TypeInfo, bool) {
	if len(terms) == 0 {
		return TypeInfo{}, false
	}
	acc := terms[0]
	for _, t := range terms[1:] {
		acc = BitOr(acc, t)
	}
	return acc, true
}

var dottedName = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)+`)

// FromText parses free-form type text. Known builtin names resolve through the
// builtin table; otherwise every dotted reference such as collections.abc.Sequence
// contributes an import of its module part.
func FromText(text string) TypeInfo {
	text = strings.TrimSpace(text)
	if t, ok := Lookup(text); ok {
		return t
	}
	if text == "Self" {
		return Self()
	}
	t := Builtin(text)
	for _, ref := range dottedName.FindAllString(text, -1) {
		i := strings.LastIndex(ref, ".")
		t.Imports.Add(ImportModule(ref[:i]))
	}
	return t
}
