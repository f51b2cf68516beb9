package typeinfo

import (
	"cmp"
	"maps"
	"slices"
)

// ModuleRef names the module an import is taken from. The zero value refers
// to the project's default module, which is only known once a build starts.
type ModuleRef struct {
	Name string
	self bool
}

// Module returns a reference to an explicitly named module.
func Module(name string) ModuleRef {
	return ModuleRef{Name: name}
}

// DefaultModule returns a reference to the project's default module.
func DefaultModule() ModuleRef {
	return ModuleRef{}
}

// IsDefault reports whether the reference points at the default module.
func (m ModuleRef) IsDefault() bool {
	return m.Name == "" && !m.self
}

// Resolve returns the concrete module name for this reference.
func (m ModuleRef) Resolve(defaultModule string, strategy SelfImportStrategy) string {
	switch {
	case m.self:
		return strategy.Module()
	case m.IsDefault():
		return defaultModule
	default:
		return m.Name
	}
}

// ImportRef is a single name a piece of type text depends on.
// An empty Name means "import <module>", otherwise "from <module> import <Name>".
type ImportRef struct {
	Module ModuleRef
	Name   string
}

// ImportModule returns `import <name>`.
func ImportModule(name string) ImportRef {
	return ImportRef{Module: Module(name)}
}

// ImportName returns `from <module> import <name>`.
func ImportName(module ModuleRef, name string) ImportRef {
	return ImportRef{Module: module, Name: name}
}

// ImportSet is an unordered set of imports.
type ImportSet map[ImportRef]struct{}

// NewImportSet creates a set holding refs.
func NewImportSet(refs ...ImportRef) ImportSet {
	s := make(ImportSet, len(refs))
	s.Add(refs...)
	return s
}

// Add inserts refs into the set.
func (s ImportSet) Add(refs ...ImportRef) {
	for _, r := range refs {
		s[r] = struct{}{}
	}
}

// Merge inserts every import of other into the set.
func (s ImportSet) Merge(other ImportSet) {
	for r := range other {
		s[r] = struct{}{}
	}
}

// Clone returns an independent copy. Cloning a nil set yields an empty set.
func (s ImportSet) Clone() ImportSet {
	out := make(ImportSet, len(s))
	maps.Copy(out, s)
	return out
}

// Has reports whether ref is in the set.
func (s ImportSet) Has(ref ImportRef) bool {
	_, ok := s[ref]
	return ok
}

// Sorted returns the imports ordered by module then name.
func (s ImportSet) Sorted() []ImportRef {
	refs := slices.Collect(maps.Keys(s))
	slices.SortFunc(refs, func(a, b ImportRef) int {
		if c := cmp.Compare(a.Module.Name, b.Module.Name); c != 0 {
			return c
		}
		if a.Module.self != b.Module.self {
			if a.Module.self {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return refs
}
