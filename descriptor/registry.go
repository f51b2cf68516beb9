package descriptor

import (
	"reflect"
	"sync"

	"github.com/teranos/stubgen/logger"
	"github.com/teranos/stubgen/typeinfo"
)

// Registry collects descriptors. It is append-only: registration order
// carries no meaning and nothing is ever removed.
type Registry struct {
	mu           sync.RWMutex
	classes      []Class
	complexEnums []ComplexEnum
	enums        []Enum
	functions    []Function
	variables    []Variable
	moduleDocs   []ModuleDoc
	methods      []Methods
	types        map[TypeID]typeinfo.StubType
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[TypeID]typeinfo.StubType)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry that init functions register into.
func Default() *Registry {
	return defaultRegistry
}

// RegisterClass adds a class shape.
func (r *Registry) RegisterClass(c Class) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes = append(r.classes, c)
}

// RegisterComplexEnum adds a complex enum shape.
func (r *Registry) RegisterComplexEnum(e ComplexEnum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.complexEnums = append(r.complexEnums, e)
}

// RegisterEnum adds a simple enum shape.
func (r *Registry) RegisterEnum(e Enum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enums = append(r.enums, e)
}

// RegisterFunction adds a module-level function. Functions sharing a name
// and module are overloads.
func (r *Registry) RegisterFunction(f Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions = append(r.functions, f)
}

// RegisterVariable adds a module-level variable.
func (r *Registry) RegisterVariable(v Variable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variables = append(r.variables, v)
}

// RegisterModuleDoc adds a module docstring.
func (r *Registry) RegisterModuleDoc(d ModuleDoc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moduleDocs = append(r.moduleDocs, d)
}

// RegisterMethods adds the behavior of a class or enum.
func (r *Registry) RegisterMethods(m Methods) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods = append(r.methods, m)
}

// RegisterType maps an identity key to explicit stub text, for native types
// that are not declared as classes or enums.
func (r *Registry) RegisterType(id TypeID, st typeinfo.StubType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[id] = st
}

// Snapshot is a point-in-time copy of everything registered.
type Snapshot struct {
	Classes      []Class
	ComplexEnums []ComplexEnum
	Enums        []Enum
	Functions    []Function
	Variables    []Variable
	ModuleDocs   []ModuleDoc
	Methods      []Methods
}

// Snapshot copies the registered descriptors.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot{
		Classes:      append([]Class(nil), r.classes...),
		ComplexEnums: append([]ComplexEnum(nil), r.complexEnums...),
		Enums:        append([]Enum(nil), r.enums...),
		Functions:    append([]Function(nil), r.functions...),
		Variables:    append([]Variable(nil), r.variables...),
		ModuleDocs:   append([]ModuleDoc(nil), r.moduleDocs...),
		Methods:      append([]Methods(nil), r.methods...),
	}
}

// Len returns the total number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classes) + len(r.complexEnums) + len(r.enums) + len(r.functions) +
		len(r.variables) + len(r.moduleDocs) + len(r.methods)
}

// StubTypeOf returns how the type with identity id is referenced, if it is
// known to the registry.
func (r *Registry) StubTypeOf(id TypeID) (typeinfo.StubType, bool) {
	// Copy under the lock: resolving a complex enum union calls back into
	// the registry for its variant payload types.
	r.mu.RLock()
	st, explicit := r.types[id]
	var resolver func() typeinfo.StubType
	if !explicit {
		resolver = r.findLocked(id)
	}
	r.mu.RUnlock()

	switch {
	case explicit:
		return st, true
	case resolver != nil:
		return resolver(), true
	default:
		return typeinfo.StubType{}, false
	}
}

func (r *Registry) findLocked(id TypeID) func() typeinfo.StubType {
	for _, c := range r.classes {
		if c.ID == id {
			return c.StubType
		}
	}
	for _, e := range r.complexEnums {
		if e.ID == id {
			return e.StubType
		}
	}
	for _, e := range r.enums {
		if e.ID == id {
			return e.StubType
		}
	}
	return nil
}

// Converter resolves Go types, mapping registered ones to their stub names.
func (r *Registry) Converter() typeinfo.Converter {
	return typeinfo.Converter{Lookup: func(t reflect.Type) (typeinfo.StubType, bool) {
		if t.Name() == "" {
			return typeinfo.StubType{}, false
		}
		return r.StubTypeOf(TypeIDFor(t))
	}}
}

// Input resolves t lazily in parameter position.
func (r *Registry) Input(t reflect.Type) TypeFunc {
	return func() typeinfo.TypeInfo { return r.Converter().Convert(t).Input }
}

// Output resolves t lazily in return and attribute position.
func (r *Registry) Output(t reflect.Type) TypeFunc {
	return func() typeinfo.TypeInfo { return r.Converter().Convert(t).Output }
}

// InputOf is Input for the Go type T.
func InputOf[T any](r *Registry) TypeFunc {
	return r.Input(reflect.TypeFor[T]())
}

// OutputOf is Output for the Go type T.
func OutputOf[T any](r *Registry) TypeFunc {
	return r.Output(reflect.TypeFor[T]())
}

// RefInput resolves a registered identity key lazily in parameter position.
func (r *Registry) RefInput(id TypeID) TypeFunc {
	return func() typeinfo.TypeInfo { return r.ref(id).Input }
}

// RefOutput resolves a registered identity key lazily in return position.
func (r *Registry) RefOutput(id TypeID) TypeFunc {
	return func() typeinfo.TypeInfo { return r.ref(id).Output }
}

func (r *Registry) ref(id TypeID) typeinfo.StubType {
	if st, ok := r.StubTypeOf(id); ok {
		return st
	}
	logger.Warnw("Reference to unregistered type, using typing.Any",
		logger.FieldTypeID, string(id))
	return typeinfo.Same(typeinfo.Any())
}
