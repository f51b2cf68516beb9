// Package stub builds the in-memory module tree from registered descriptors
// and renders it as Python stub (.pyi) text.
package stub

import (
	"github.com/teranos/stubgen/descriptor"
	"github.com/teranos/stubgen/typeinfo"
)

// MemberDef is an attribute, getter or setter.
type MemberDef struct {
	Name       string
	Type       typeinfo.TypeInfo
	Doc        string
	Default    string // rendered default, empty when absent
	Deprecated *descriptor.DeprecatedInfo
	IsAbstract bool
}

// MethodDef is one alternative of a method overload group.
type MethodDef struct {
	Name       string
	Parameters Parameters
	Return     typeinfo.TypeInfo
	Doc        string
	Kind       descriptor.MethodKind
	IsAsync    bool
	Deprecated *descriptor.DeprecatedInfo
	TypeIgnore *descriptor.IgnoreTarget
	IsAbstract bool
}

// FunctionDef is one alternative of a module-level function.
type FunctionDef struct {
	Name       string
	Parameters Parameters
	Return     typeinfo.TypeInfo
	Doc        string
	IsAsync    bool
	Deprecated *descriptor.DeprecatedInfo
	TypeIgnore *descriptor.IgnoreTarget
}

// VariableDef is a module-level variable.
type VariableDef struct {
	Name    string
	Type    typeinfo.TypeInfo
	Default string
}

// GetterSetter pairs the accessors of one property. Either side may be nil.
type GetterSetter struct {
	Getter *MemberDef
	Setter *MemberDef
}

// Body holds the members shared by classes and enums.
type Body struct {
	Attrs         []*MemberDef
	GetterSetters map[string]*GetterSetter
	Methods       map[string][]*MethodDef
	IsAbstract    bool
}

func newBody() Body {
	return Body{
		GetterSetters: make(map[string]*GetterSetter),
		Methods:       make(map[string][]*MethodDef),
	}
}

func (b *Body) pair(name string) *GetterSetter {
	gs, ok := b.GetterSetters[name]
	if !ok {
		gs = &GetterSetter{}
		b.GetterSetters[name] = gs
	}
	return gs
}

func (b *Body) addGetter(m *MemberDef) {
	b.pair(m.Name).Getter = m
	if m.IsAbstract {
		b.IsAbstract = true
	}
}

func (b *Body) addSetter(m *MemberDef) {
	b.pair(m.Name).Setter = m
	if m.IsAbstract {
		b.IsAbstract = true
	}
}

func (b *Body) addMethod(m *MethodDef) {
	b.Methods[m.Name] = append(b.Methods[m.Name], m)
	if m.IsAbstract {
		b.IsAbstract = true
	}
}

func (b *Body) empty() bool {
	return len(b.Attrs) == 0 && len(b.GetterSetters) == 0 && len(b.Methods) == 0
}

// VariantDef is one variant of a complex enum, rendered as a nested class.
type VariantDef struct {
	Name              string
	Form              descriptor.VariantForm
	Fields            []*MemberDef
	ConstructorParams Parameters
	IsMapping         bool
	Doc               string
}

// ClassDef is a class or, when IsComplexEnum is set, a complex enum.
type ClassDef struct {
	ID            descriptor.TypeID
	Name          string
	Module        string
	Bases         []typeinfo.TypeInfo
	Doc           string
	Body          Body
	Variants      []*VariantDef
	IsComplexEnum bool
}

// EnumDef is a simple enum.
type EnumDef struct {
	ID       descriptor.TypeID
	Name     string
	Module   string
	Doc      string
	Variants []descriptor.EnumVariant
	Body     Body
}

// Module is the content of one stub file.
type Module struct {
	Name              string
	DefaultModuleName string
	Doc               string
	Classes           map[descriptor.TypeID]*ClassDef
	Enums             map[descriptor.TypeID]*EnumDef
	Functions         map[string][]*FunctionDef
	Variables         map[string]*VariableDef
	Submodules        map[string]struct{}
}

func newModule(name, defaultModule string) *Module {
	return &Module{
		Name:              name,
		DefaultModuleName: defaultModule,
		Classes:           make(map[descriptor.TypeID]*ClassDef),
		Enums:             make(map[descriptor.TypeID]*EnumDef),
		Functions:         make(map[string][]*FunctionDef),
		Variables:         make(map[string]*VariableDef),
		Submodules:        make(map[string]struct{}),
	}
}

// StubInfo is the finished module tree of one build.
type StubInfo struct {
	Modules    map[string]*Module
	PythonRoot string
	jobs       int
}
