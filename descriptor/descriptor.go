// Package descriptor defines the records that describe native declarations
// for stub generation, and the registry that collects them.
//
// Shape descriptors (Class, ComplexEnum, Enum, Function, Variable, ModuleDoc)
// name a declaration and its target module. A Methods descriptor carries the
// behavior of a class or enum and only knows the identity key it belongs to;
// the stub builder joins the two by that key.
package descriptor

import (
	"github.com/teranos/stubgen/typeinfo"
)

// TypeFunc resolves a type lazily. It is called while the stub is built,
// after every descriptor has been registered.
type TypeFunc func() typeinfo.TypeInfo

// Static returns a TypeFunc that always yields t.
func Static(t typeinfo.TypeInfo) TypeFunc {
	return func() typeinfo.TypeInfo { return t }
}

// Text returns a TypeFunc for free-form type text, see typeinfo.FromText.
func Text(text string) TypeFunc {
	return func() typeinfo.TypeInfo { return typeinfo.FromText(text) }
}

func resolve(f TypeFunc) typeinfo.TypeInfo {
	if f == nil {
		return typeinfo.None()
	}
	return f()
}

// Parameter describes one callable parameter.
type Parameter struct {
	Name    string
	Kind    ParameterKind
	Type    TypeFunc
	Default DefaultRenderer
}

// Member describes an attribute, getter or setter.
type Member struct {
	Name       string
	Type       TypeFunc
	Doc        string
	Default    DefaultRenderer
	Deprecated *DeprecatedInfo
	IsAbstract bool
}

// Method describes one method. Several methods with the same name are
// overload alternatives.
type Method struct {
	Name       string
	Parameters []Parameter
	Return     TypeFunc
	Doc        string
	Kind       MethodKind
	IsAsync    bool
	Deprecated *DeprecatedInfo
	TypeIgnore *IgnoreTarget
	IsAbstract bool
}

// Class describes the data shape of a class.
type Class struct {
	ID     TypeID
	Name   string
	Module string // empty for the default module
	Bases  []TypeFunc
	Doc    string

	// Field accessors declared together with the shape.
	Getters []Member
	Setters []Member
}

// Variant describes one variant of a complex enum.
type Variant struct {
	Name              string
	Form              VariantForm
	Fields            []Member
	ConstructorParams []Parameter
	IsMapping         bool
	Doc               string
}

// ComplexEnum describes a tagged enum whose variants carry payloads.
type ComplexEnum struct {
	ID       TypeID
	Name     string
	Module   string
	Variants []Variant
	Doc      string
}

// EnumVariant is one member of a simple enum.
type EnumVariant struct {
	Name string
	Doc  string
}

// Enum describes a simple enum.
type Enum struct {
	ID       TypeID
	Name     string
	Module   string
	Variants []EnumVariant
	Doc      string
}

// Function describes a module-level function.
type Function struct {
	Name       string
	Module     string
	Parameters []Parameter
	Return     TypeFunc
	Doc        string
	IsAsync    bool
	Deprecated *DeprecatedInfo
	TypeIgnore *IgnoreTarget
}

// Variable describes a module-level variable.
type Variable struct {
	Name    string
	Module  string
	Type    TypeFunc
	Default DefaultRenderer
}

// ModuleDoc supplies a module docstring.
type ModuleDoc struct {
	Module string
	Doc    func() string
}

// Methods carries the behavior of the class or enum identified by ID.
type Methods struct {
	ID      TypeID
	Attrs   []Member
	Getters []Member
	Setters []Member
	Methods []Method
}

// ResolveType evaluates the member's type.
func (m Member) ResolveType() typeinfo.TypeInfo { return resolve(m.Type) }

// ResolveType evaluates the parameter's type.
func (p Parameter) ResolveType() typeinfo.TypeInfo { return resolve(p.Type) }

// ResolveReturn evaluates the method's return type.
func (m Method) ResolveReturn() typeinfo.TypeInfo { return resolve(m.Return) }

// ResolveReturn evaluates the function's return type.
func (f Function) ResolveReturn() typeinfo.TypeInfo { return resolve(f.Return) }

// ResolveType evaluates the variable's type.
func (v Variable) ResolveType() typeinfo.TypeInfo { return resolve(v.Type) }

func moduleRef(module string) typeinfo.ModuleRef {
	if module == "" {
		return typeinfo.DefaultModule()
	}
	return typeinfo.Module(module)
}

// StubType is how the class is referenced from other declarations.
func (c Class) StubType() typeinfo.StubType {
	return typeinfo.Same(typeinfo.LocallyDefined(c.Name, moduleRef(c.Module)))
}

// StubType is how the enum is referenced from other declarations.
func (e Enum) StubType() typeinfo.StubType {
	return typeinfo.Same(typeinfo.LocallyDefined(e.Name, moduleRef(e.Module)))
}

// StubType is the union of what each variant accepts. A tuple variant with
// exactly one constructor parameter contributes that parameter's type, so the
// variant is compatible with its inner value; every other variant contributes
// EnumName.VariantName. An enum without variants is referenced by name.
func (e ComplexEnum) StubType() typeinfo.StubType {
	terms := make([]typeinfo.TypeInfo, 0, len(e.Variants))
	for _, v := range e.Variants {
		terms = append(terms, e.unionTerm(v))
	}
	union, ok := typeinfo.Union(terms...)
	if !ok {
		return typeinfo.Same(typeinfo.LocallyDefined(e.Name, moduleRef(e.Module)))
	}
	return typeinfo.Same(union)
}

func (e ComplexEnum) unionTerm(v Variant) typeinfo.TypeInfo {
	if v.Form == Tuple && len(v.ConstructorParams) == 1 {
		return v.ConstructorParams[0].ResolveType()
	}
	return typeinfo.TypeInfo{
		Name:    e.Name + "." + v.Name,
		Imports: typeinfo.NewImportSet(typeinfo.ImportName(moduleRef(e.Module), e.Name)),
	}
}
