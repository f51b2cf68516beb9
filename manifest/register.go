package manifest

import (
	"github.com/teranos/stubgen/descriptor"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/typeinfo"
)

// Register converts every entry into descriptors and adds them to reg.
// Type references are resolved lazily through reg, so entries may refer to
// classes declared anywhere in the document, or by other sources.
func (m *Manifest) Register(reg *descriptor.Registry) error {
	c := converter{reg: reg}

	for _, cls := range m.Classes {
		d, err := c.class(cls)
		if err != nil {
			return err
		}
		reg.RegisterClass(d)
	}
	for _, e := range m.ComplexEnums {
		d, err := c.complexEnum(e)
		if err != nil {
			return err
		}
		reg.RegisterComplexEnum(d)
	}
	for _, e := range m.Enums {
		if e.Name == "" {
			return errors.NewInvalidManifestf("enum without a name")
		}
		d := descriptor.Enum{ID: shapeID(e.ID, e.Module, e.Name), Name: e.Name, Module: e.Module, Doc: e.Doc}
		for _, v := range e.Variants {
			d.Variants = append(d.Variants, descriptor.EnumVariant{Name: v.Name, Doc: v.Doc})
		}
		reg.RegisterEnum(d)
	}
	for _, f := range m.Functions {
		d, err := c.function(f)
		if err != nil {
			return err
		}
		reg.RegisterFunction(d)
	}
	for _, v := range m.Variables {
		if v.Name == "" || v.Type == nil {
			return errors.NewInvalidManifestf("variable %q needs a name and a type", v.Name)
		}
		if err := checkIdent("variable", v.Name); err != nil {
			return err
		}
		d := descriptor.Variable{Name: v.Name, Module: v.Module, Type: v.Type.typeFunc(reg, false)}
		if v.Default != nil {
			def, err := v.Default.renderer()
			if err != nil {
				return errors.Wrapf(err, "variable %s", v.Name)
			}
			d.Default = def
		}
		reg.RegisterVariable(d)
	}
	for _, d := range m.Modules {
		doc := d.Doc
		reg.RegisterModuleDoc(descriptor.ModuleDoc{Module: d.Module, Doc: func() string { return doc }})
	}
	for _, ms := range m.Methods {
		d, err := c.methods(ms)
		if err != nil {
			return err
		}
		reg.RegisterMethods(d)
	}
	return nil
}

func shapeID(id, module, name string) descriptor.TypeID {
	if id != "" {
		return descriptor.TypeID(id)
	}
	return descriptor.ManifestID(module, name)
}

func (d *Default) renderer() (descriptor.DefaultRenderer, error) {
	hasValue := d.Value.Kind != 0
	switch {
	case d.Python != "" && hasValue:
		return nil, errors.NewInvalidManifestf("default sets both python and value")
	case d.Python != "":
		return descriptor.RawDefault(d.Python), nil
	case hasValue:
		var v any
		if err := d.Value.Decode(&v); err != nil {
			return nil, errors.Mark(err, errors.ErrInvalidManifest)
		}
		return descriptor.PyLiteral(v), nil
	default:
		return descriptor.Ellipsis(), nil
	}
}

// checkIdent rejects names that would make the stub a syntax error.
func checkIdent(what, name string) error {
	if typeinfo.IsKeyword(name) {
		return errors.WithHintf(
			errors.NewInvalidManifestf("%s %q is a Python keyword", what, name),
			"rename it, for example to %s_", name)
	}
	return nil
}

func deprecated(d *Deprecated) *descriptor.DeprecatedInfo {
	if d == nil {
		return nil
	}
	return &descriptor.DeprecatedInfo{Since: d.Since, Note: d.Note}
}

func typeIgnore(t *TypeIgnore) *descriptor.IgnoreTarget {
	if t == nil {
		return nil
	}
	return descriptor.IgnoreRules(t.Rules...)
}

type converter struct {
	reg *descriptor.Registry
}

func (c converter) member(m Member) (descriptor.Member, error) {
	if m.Name == "" || m.Type == nil {
		return descriptor.Member{}, errors.NewInvalidManifestf("member %q needs a name and a type", m.Name)
	}
	if err := checkIdent("member", m.Name); err != nil {
		return descriptor.Member{}, err
	}
	d := descriptor.Member{
		Name:       m.Name,
		Type:       m.Type.typeFunc(c.reg, false),
		Doc:        m.Doc,
		Deprecated: deprecated(m.Deprecated),
		IsAbstract: m.Abstract,
	}
	if m.Default != nil {
		def, err := m.Default.renderer()
		if err != nil {
			return d, errors.Wrapf(err, "member %s", m.Name)
		}
		d.Default = def
	}
	return d, nil
}

func (c converter) members(ms []Member) ([]descriptor.Member, error) {
	out := make([]descriptor.Member, 0, len(ms))
	for _, m := range ms {
		d, err := c.member(m)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (c converter) params(ps []Param) ([]descriptor.Parameter, error) {
	out := make([]descriptor.Parameter, 0, len(ps))
	for _, p := range ps {
		kind, ok := descriptor.ParseParameterKind(p.Kind)
		if !ok {
			return nil, errors.NewInvalidManifestf("parameter %s: unknown kind %q", p.Name, p.Kind)
		}
		if p.Name == "" || p.Type == nil {
			return nil, errors.NewInvalidManifestf("parameter %q needs a name and a type", p.Name)
		}
		if err := checkIdent("parameter", p.Name); err != nil {
			return nil, err
		}
		d := descriptor.Parameter{Name: p.Name, Kind: kind, Type: p.Type.typeFunc(c.reg, true)}
		if p.Default != nil {
			def, err := p.Default.renderer()
			if err != nil {
				return nil, errors.Wrapf(err, "parameter %s", p.Name)
			}
			d.Default = def
		}
		out = append(out, d)
	}
	return out, nil
}

func (c converter) class(cls Class) (descriptor.Class, error) {
	if cls.Name == "" {
		return descriptor.Class{}, errors.NewInvalidManifestf("class without a name")
	}
	d := descriptor.Class{
		ID:     shapeID(cls.ID, cls.Module, cls.Name),
		Name:   cls.Name,
		Module: cls.Module,
		Doc:    cls.Doc,
	}
	for _, b := range cls.Bases {
		if base := b.typeFunc(c.reg, false); base != nil {
			d.Bases = append(d.Bases, base)
		}
	}
	var err error
	if d.Getters, err = c.members(cls.Getters); err != nil {
		return d, errors.Wrapf(err, "class %s", cls.Name)
	}
	if d.Setters, err = c.members(cls.Setters); err != nil {
		return d, errors.Wrapf(err, "class %s", cls.Name)
	}
	return d, nil
}

func (c converter) complexEnum(e ComplexEnum) (descriptor.ComplexEnum, error) {
	if e.Name == "" {
		return descriptor.ComplexEnum{}, errors.NewInvalidManifestf("complex enum without a name")
	}
	d := descriptor.ComplexEnum{
		ID:     shapeID(e.ID, e.Module, e.Name),
		Name:   e.Name,
		Module: e.Module,
		Doc:    e.Doc,
	}
	for _, v := range e.Variants {
		form, ok := descriptor.ParseVariantForm(v.Form)
		if !ok {
			return d, errors.NewInvalidManifestf("%s.%s: unknown variant form %q", e.Name, v.Name, v.Form)
		}
		fields, err := c.members(v.Fields)
		if err != nil {
			return d, errors.Wrapf(err, "%s.%s", e.Name, v.Name)
		}
		params, err := c.params(v.Params)
		if err != nil {
			return d, errors.Wrapf(err, "%s.%s", e.Name, v.Name)
		}
		d.Variants = append(d.Variants, descriptor.Variant{
			Name:              v.Name,
			Form:              form,
			Fields:            fields,
			ConstructorParams: params,
			IsMapping:         v.Mapping,
			Doc:               v.Doc,
		})
	}
	return d, nil
}

func (c converter) function(f Function) (descriptor.Function, error) {
	if f.Name == "" {
		return descriptor.Function{}, errors.NewInvalidManifestf("function without a name")
	}
	params, err := c.params(f.Params)
	if err != nil {
		return descriptor.Function{}, errors.Wrapf(err, "function %s", f.Name)
	}
	return descriptor.Function{
		Name:       f.Name,
		Module:     f.Module,
		Parameters: params,
		Return:     f.Returns.typeFunc(c.reg, false),
		Doc:        f.Doc,
		IsAsync:    f.Async,
		Deprecated: deprecated(f.Deprecated),
		TypeIgnore: typeIgnore(f.TypeIgnore),
	}, nil
}

func (c converter) methods(ms Methods) (descriptor.Methods, error) {
	if ms.Class == "" {
		return descriptor.Methods{}, errors.NewInvalidManifestf("methods block without a class")
	}
	d := descriptor.Methods{ID: descriptor.TypeID(ms.Class)}
	var err error
	if d.Attrs, err = c.members(ms.Attrs); err != nil {
		return d, errors.Wrapf(err, "methods of %s", ms.Class)
	}
	if d.Getters, err = c.members(ms.Getters); err != nil {
		return d, errors.Wrapf(err, "methods of %s", ms.Class)
	}
	if d.Setters, err = c.members(ms.Setters); err != nil {
		return d, errors.Wrapf(err, "methods of %s", ms.Class)
	}
	for _, m := range ms.Methods {
		kind, ok := descriptor.ParseMethodKind(m.Kind)
		if !ok {
			return d, errors.NewInvalidManifestf("%s.%s: unknown method kind %q", ms.Class, m.Name, m.Kind)
		}
		params, err := c.params(m.Params)
		if err != nil {
			return d, errors.Wrapf(err, "%s.%s", ms.Class, m.Name)
		}
		d.Methods = append(d.Methods, descriptor.Method{
			Name:       m.Name,
			Parameters: params,
			Return:     m.Returns.typeFunc(c.reg, false),
			Doc:        m.Doc,
			Kind:       kind,
			IsAsync:    m.Async,
			Deprecated: deprecated(m.Deprecated),
			TypeIgnore: typeIgnore(m.TypeIgnore),
			IsAbstract: m.Abstract,
		})
	}
	return d, nil
}
