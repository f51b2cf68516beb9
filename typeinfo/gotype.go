package typeinfo

import (
	"reflect"
)

// Converter resolves Go types structurally, the way the builtin table and
// container helpers compose. Named types are offered to Lookup first so a
// registry can map its own classes and enums.
type Converter struct {
	Lookup func(reflect.Type) (StubType, bool)
}

var (
	byteSlice = reflect.TypeFor[[]byte]()
	errorType = reflect.TypeFor[error]()
)

// Convert returns the stub type for t.
func (c Converter) Convert(t reflect.Type) StubType {
	if t == nil {
		return Same(None())
	}
	if st, ok := c.lookup(t); ok {
		return st
	}
	if t.Name() != "" && t.PkgPath() != "" {
		if ti, ok := Lookup(t.String()); ok {
			return Same(ti)
		}
	}
	if t == byteSlice {
		return Same(Builtin("bytes"))
	}
	if t == errorType {
		return Same(Builtin("Exception"))
	}

	switch t.Kind() {
	case reflect.Pointer:
		// pointers to registered types are the type itself, otherwise nullable
		if st, ok := c.lookup(t.Elem()); ok {
			return st
		}
		return c.each(c.Convert(t.Elem()), Optional)
	case reflect.Slice:
		return c.each(c.Convert(t.Elem()), List)
	case reflect.Array:
		return c.each(c.Convert(t.Elem()), VarTuple)
	case reflect.Map:
		if t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0 {
			return c.each(c.Convert(t.Key()), Set)
		}
		k, v := c.Convert(t.Key()), c.Convert(t.Elem())
		return StubType{Input: Dict(k.Input, v.Input), Output: Dict(k.Output, v.Output)}
	case reflect.Interface, reflect.Struct, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return Same(Any())
	}

	if ti, ok := Lookup(t.Kind().String()); ok {
		return Same(ti)
	}
	return Same(Any())
}

func (c Converter) lookup(t reflect.Type) (StubType, bool) {
	if c.Lookup == nil {
		return StubType{}, false
	}
	return c.Lookup(t)
}

func (c Converter) each(st StubType, wrap func(TypeInfo) TypeInfo) StubType {
	return StubType{Input: wrap(st.Input), Output: wrap(st.Output)}
}
