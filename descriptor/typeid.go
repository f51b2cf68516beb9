package descriptor

import (
	"reflect"
)

// TypeID is the identity key shared by a type's shape descriptor and its
// methods descriptors.
type TypeID string

// TypeIDOf returns the identity key of the Go type T.
// Pointer types share the key of their element type.
func TypeIDOf[T any]() TypeID {
	return TypeIDFor(reflect.TypeFor[T]())
}

// TypeIDFor returns the identity key of t.
func TypeIDFor(t reflect.Type) TypeID {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return TypeID(t.String())
	}
	return TypeID(t.PkgPath() + "." + t.Name())
}

// ManifestID is the identity key of a type declared without a Go type,
// such as in a descriptor manifest.
func ManifestID(module, name string) TypeID {
	if module == "" {
		return TypeID(name)
	}
	return TypeID(module + "." + name)
}
