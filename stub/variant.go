package stub

import (
	"github.com/teranos/stubgen/descriptor"
	"github.com/teranos/stubgen/typeinfo"
)

// synthesizedMethods returns the members every variant class gets: a
// constructor, plus the sequence protocol for tuple variants. Mapping
// variants get nothing.
func (v *VariantDef) synthesizedMethods() map[string][]*MethodDef {
	methods := make(map[string][]*MethodDef)
	if v.IsMapping {
		return methods
	}
	methods["__new__"] = []*MethodDef{{
		Name:       "__new__",
		Parameters: v.ConstructorParams,
		Return:     typeinfo.Self(),
		Kind:       descriptor.MethodNew,
	}}
	if v.Form == descriptor.Tuple {
		methods["__len__"] = []*MethodDef{{
			Name:   "__len__",
			Return: typeinfo.Builtin("int"),
			Kind:   descriptor.MethodInstance,
		}}
		methods["__getitem__"] = []*MethodDef{{
			Name: "__getitem__",
			Parameters: Parameters{PositionalOrKeyword: []Parameter{{
				Name: "key",
				Kind: descriptor.PositionalOrKeyword,
				Type: typeinfo.Builtin("int"),
			}}},
			Return: typeinfo.Any(),
			Kind:   descriptor.MethodInstance,
		}}
	}
	return methods
}

// body assembles the variant class body: fields as read-only properties and
// the synthesized methods.
func (v *VariantDef) body() Body {
	b := newBody()
	for _, f := range v.Fields {
		b.pair(f.Name).Getter = f
	}
	b.Methods = v.synthesizedMethods()
	return b
}

func (v *VariantDef) imports() typeinfo.ImportSet {
	b := v.body()
	return b.imports()
}
