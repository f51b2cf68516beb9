package stub

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/stubgen/descriptor"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
	"github.com/teranos/stubgen/typeinfo"
)

// Options configures a build.
type Options struct {
	// DefaultModule receives every descriptor that names no module.
	DefaultModule string
	// PythonRoot is the directory stub files are written under.
	PythonRoot string
	// Jobs bounds concurrent file writes; values below 1 mean 1.
	Jobs int
}

type builder struct {
	defaultModule string
	modules       map[string]*Module
	shapes        map[descriptor.TypeID]string
	log           *zap.SugaredLogger
}

// Build merges the descriptors in reg into a module tree.
//
// Shapes are inserted first, then every methods block is joined to its
// class or enum by identity key across all modules. A methods block
// without a shape fails the build with errors.ErrUnregisteredType.
func Build(reg *descriptor.Registry, opts Options) (*StubInfo, error) {
	if opts.DefaultModule == "" {
		return nil, errors.WithHint(
			errors.NewInvalidDescriptorf("default module name is empty"),
			"set project.module or [tool.maturin] module-name")
	}
	b := &builder{
		defaultModule: opts.DefaultModule,
		modules:       make(map[string]*Module),
		shapes:        make(map[descriptor.TypeID]string),
		log:           logger.ComponentLogger("stub.builder"),
	}

	snap := reg.Snapshot()
	sortFunctions(snap.Functions)

	for _, c := range snap.Classes {
		if err := b.addClass(c); err != nil {
			return nil, err
		}
	}
	for _, e := range snap.ComplexEnums {
		if err := b.addComplexEnum(e); err != nil {
			return nil, err
		}
	}
	for _, e := range snap.Enums {
		if err := b.addEnum(e); err != nil {
			return nil, err
		}
	}
	for _, f := range snap.Functions {
		b.addFunction(f)
	}
	for _, v := range snap.Variables {
		if err := b.addVariable(v); err != nil {
			return nil, err
		}
	}
	for _, d := range snap.ModuleDocs {
		b.addModuleDoc(d)
	}
	for _, m := range snap.Methods {
		if err := b.addMethods(m); err != nil {
			return nil, err
		}
	}
	b.registerSubmodules()

	b.log.Debugw("Built module tree",
		logger.FieldCount, len(b.modules),
		"descriptors", reg.Len())

	return &StubInfo{
		Modules:    b.modules,
		PythonRoot: opts.PythonRoot,
		jobs:       max(opts.Jobs, 1),
	}, nil
}

// Overloads registered from unrelated sites arrive in no particular order;
// sorting by (module, name) is stable, so alternatives of one name keep
// their relative order.
func sortFunctions(fs []descriptor.Function) {
	slices.SortStableFunc(fs, func(a, b descriptor.Function) int {
		if c := cmp.Compare(a.Module, b.Module); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

func (b *builder) module(name string) *Module {
	if name == "" {
		name = b.defaultModule
	}
	m, ok := b.modules[name]
	if !ok {
		m = newModule(name, b.defaultModule)
		b.modules[name] = m
	}
	return m
}

func (b *builder) claim(id descriptor.TypeID, name string) error {
	if id == "" {
		return errors.NewInvalidDescriptorf("%s has no identity key", name)
	}
	if prev, ok := b.shapes[id]; ok {
		return errors.NewDuplicatef("%s and %s both registered as %s", prev, name, id)
	}
	b.shapes[id] = name
	return nil
}

func memberDef(m descriptor.Member) *MemberDef {
	def := &MemberDef{
		Name:       m.Name,
		Type:       m.ResolveType(),
		Doc:        m.Doc,
		Deprecated: m.Deprecated,
		IsAbstract: m.IsAbstract,
	}
	if m.Default != nil {
		def.Default = m.Default()
	}
	return def
}

func methodDef(m descriptor.Method) *MethodDef {
	ret := m.ResolveReturn()
	if m.Kind == descriptor.MethodNew {
		ret = typeinfo.Self()
	}
	return &MethodDef{
		Name:       m.Name,
		Parameters: newParameters(m.Parameters),
		Return:     ret,
		Doc:        m.Doc,
		Kind:       m.Kind,
		IsAsync:    m.IsAsync,
		Deprecated: m.Deprecated,
		TypeIgnore: m.TypeIgnore,
		IsAbstract: m.IsAbstract,
	}
}

func (b *builder) addClass(c descriptor.Class) error {
	if err := b.claim(c.ID, c.Name); err != nil {
		return err
	}
	mod := b.module(c.Module)
	def := &ClassDef{
		ID:     c.ID,
		Name:   c.Name,
		Module: mod.Name,
		Doc:    c.Doc,
		Body:   newBody(),
	}
	for _, base := range c.Bases {
		if base != nil {
			def.Bases = append(def.Bases, base())
		}
	}
	for _, g := range c.Getters {
		def.Body.addGetter(memberDef(g))
	}
	for _, s := range c.Setters {
		def.Body.addSetter(memberDef(s))
	}
	mod.Classes[c.ID] = def
	return nil
}

func (b *builder) addComplexEnum(e descriptor.ComplexEnum) error {
	if err := b.claim(e.ID, e.Name); err != nil {
		return err
	}
	mod := b.module(e.Module)
	def := &ClassDef{
		ID:            e.ID,
		Name:          e.Name,
		Module:        mod.Name,
		Doc:           e.Doc,
		Body:          newBody(),
		IsComplexEnum: true,
	}
	for _, v := range e.Variants {
		vd := &VariantDef{
			Name:              v.Name,
			Form:              v.Form,
			ConstructorParams: newParameters(v.ConstructorParams),
			IsMapping:         v.IsMapping,
			Doc:               v.Doc,
		}
		for _, f := range v.Fields {
			vd.Fields = append(vd.Fields, memberDef(f))
		}
		def.Variants = append(def.Variants, vd)
	}
	mod.Classes[e.ID] = def
	return nil
}

func (b *builder) addEnum(e descriptor.Enum) error {
	if err := b.claim(e.ID, e.Name); err != nil {
		return err
	}
	mod := b.module(e.Module)
	mod.Enums[e.ID] = &EnumDef{
		ID:       e.ID,
		Name:     e.Name,
		Module:   mod.Name,
		Doc:      e.Doc,
		Variants: slices.Clone(e.Variants),
		Body:     newBody(),
	}
	return nil
}

func (b *builder) addFunction(f descriptor.Function) {
	mod := b.module(f.Module)
	ret := f.ResolveReturn()
	if ret.IsSelf() {
		b.log.Warnw("Self returned outside a class",
			logger.FieldModule, mod.Name,
			"function", f.Name)
	}
	mod.Functions[f.Name] = append(mod.Functions[f.Name], &FunctionDef{
		Name:       f.Name,
		Parameters: newParameters(f.Parameters),
		Return:     ret,
		Doc:        f.Doc,
		IsAsync:    f.IsAsync,
		Deprecated: f.Deprecated,
		TypeIgnore: f.TypeIgnore,
	})
}

func (b *builder) addVariable(v descriptor.Variable) error {
	mod := b.module(v.Module)
	if _, ok := mod.Variables[v.Name]; ok {
		return errors.NewDuplicatef("variable %s.%s registered twice", mod.Name, v.Name)
	}
	def := &VariableDef{Name: v.Name, Type: v.ResolveType()}
	if v.Default != nil {
		def.Default = v.Default()
	}
	mod.Variables[v.Name] = def
	return nil
}

func (b *builder) addModuleDoc(d descriptor.ModuleDoc) {
	if d.Doc == nil {
		return
	}
	b.module(d.Module).Doc = d.Doc()
}

// body finds the class or enum body with identity id in any module.
func (b *builder) body(id descriptor.TypeID) (*Body, bool) {
	for _, name := range slices.Sorted(maps.Keys(b.modules)) {
		mod := b.modules[name]
		if c, ok := mod.Classes[id]; ok {
			return &c.Body, true
		}
		if e, ok := mod.Enums[id]; ok {
			return &e.Body, true
		}
	}
	return nil, false
}

func (b *builder) addMethods(m descriptor.Methods) error {
	body, ok := b.body(m.ID)
	if !ok {
		return errors.WithHint(
			errors.Wrap(errors.ErrUnregisteredType, string(m.ID)),
			"register the class or enum shape for this type before building")
	}
	// attributes take no decorators
	for _, a := range m.Attrs {
		attr := memberDef(a)
		attr.IsAbstract = false
		attr.Deprecated = nil
		body.Attrs = append(body.Attrs, attr)
	}
	for _, g := range m.Getters {
		body.addGetter(memberDef(g))
	}
	for _, s := range m.Setters {
		body.addSetter(memberDef(s))
	}
	for _, md := range m.Methods {
		body.addMethod(methodDef(md))
	}
	b.log.Debugw("Merged methods block",
		logger.FieldTypeID, string(m.ID),
		logger.FieldCount, len(m.Attrs)+len(m.Getters)+len(m.Setters)+len(m.Methods))
	return nil
}

// registerSubmodules adds, for every dotted module name, its last segment to
// the parent module. Parents that were never registered are not created.
func (b *builder) registerSubmodules() {
	for name := range b.modules {
		i := strings.LastIndex(name, ".")
		if i < 0 {
			continue
		}
		if parent, ok := b.modules[name[:i]]; ok {
			parent.Submodules[name[i+1:]] = struct{}{}
		}
	}
}
