package manifest

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teranos/stubgen/descriptor"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/typeinfo"
)

// resolver builds a type once the registry is complete. input selects the
// parameter-position text of registered types.
type resolver func(r *descriptor.Registry, input bool) typeinfo.TypeInfo

// TypeExpr is a type written in a manifest.
//
// A scalar is type text: a builtin name like int, or Python text such as
// os.PathLike[str] whose dotted names become imports. A mapping has exactly
// one key:
//
//	class: geo.Point            # identity key of a declared class or enum
//	list: T | set: T | optional: T | sequence: T
//	dict: [K, V] | mapping: [K, V] | tuple: [A, B] | union: [A, B]
//	callable: {args: [A], returns: R}
//	override: {text: "...", imports: ["os", "collections.abc:Sequence"]}
//	self: true
type TypeExpr struct {
	resolve resolver
}

func (e *TypeExpr) typeFunc(r *descriptor.Registry, input bool) descriptor.TypeFunc {
	if e == nil || e.resolve == nil {
		return nil
	}
	resolve := e.resolve
	return func() typeinfo.TypeInfo { return resolve(r, input) }
}

// at resolves the expression. A null entry in a list resolves to typing.Any.
func (e TypeExpr) at(r *descriptor.Registry, input bool) typeinfo.TypeInfo {
	if e.resolve == nil {
		return typeinfo.Any()
	}
	return e.resolve(r, input)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *TypeExpr) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		text := node.Value
		if strings.TrimSpace(text) == "" {
			return errors.NewInvalidManifestf("line %d: empty type", node.Line)
		}
		e.resolve = func(*descriptor.Registry, bool) typeinfo.TypeInfo { return typeinfo.FromText(text) }
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return errors.NewInvalidManifestf("line %d: type mapping needs exactly one key", node.Line)
		}
		return e.fromMapping(node.Content[0].Value, node.Content[1])
	default:
		return errors.NewInvalidManifestf("line %d: type must be a scalar or a mapping", node.Line)
	}
}

func (e *TypeExpr) fromMapping(key string, value *yaml.Node) error {
	switch key {
	case "class":
		id := descriptor.TypeID(value.Value)
		e.resolve = func(r *descriptor.Registry, input bool) typeinfo.TypeInfo {
			if input {
				return r.RefInput(id)()
			}
			return r.RefOutput(id)()
		}
	case "self":
		var self bool
		if err := value.Decode(&self); err != nil || !self {
			return errors.NewInvalidManifestf("line %d: self must be true", value.Line)
		}
		e.resolve = func(*descriptor.Registry, bool) typeinfo.TypeInfo { return typeinfo.Self() }
	case "list", "set", "optional", "sequence":
		var inner TypeExpr
		if err := value.Decode(&inner); err != nil {
			return err
		}
		wrap := map[string]func(typeinfo.TypeInfo) typeinfo.TypeInfo{
			"list":     typeinfo.List,
			"set":      typeinfo.Set,
			"optional": typeinfo.Optional,
			"sequence": typeinfo.Sequence,
		}[key]
		e.resolve = func(r *descriptor.Registry, input bool) typeinfo.TypeInfo {
			return wrap(inner.at(r, input))
		}
	case "dict", "mapping":
		kv, err := decodeList(value, 2)
		if err != nil {
			return err
		}
		pair := typeinfo.Dict
		if key == "mapping" {
			pair = typeinfo.Mapping
		}
		e.resolve = func(r *descriptor.Registry, input bool) typeinfo.TypeInfo {
			return pair(kv[0].at(r, input), kv[1].at(r, input))
		}
	case "tuple":
		elems, err := decodeList(value, -1)
		if err != nil {
			return err
		}
		e.resolve = func(r *descriptor.Registry, input bool) typeinfo.TypeInfo {
			return typeinfo.Tuple(resolveAll(elems, r, input)...)
		}
	case "union":
		terms, err := decodeList(value, -1)
		if err != nil {
			return err
		}
		if len(terms) == 0 {
			return errors.NewInvalidManifestf("line %d: union needs at least one term", value.Line)
		}
		e.resolve = func(r *descriptor.Registry, input bool) typeinfo.TypeInfo {
			u, _ := typeinfo.Union(resolveAll(terms, r, input)...)
			return u
		}
	case "callable":
		var c struct {
			Args    []TypeExpr `yaml:"args"`
			Returns *TypeExpr  `yaml:"returns"`
		}
		if err := value.Decode(&c); err != nil {
			return err
		}
		e.resolve = func(r *descriptor.Registry, input bool) typeinfo.TypeInfo {
			ret := typeinfo.None()
			if c.Returns != nil {
				ret = c.Returns.at(r, input)
			}
			return typeinfo.Callable(resolveAll(c.Args, r, input), ret)
		}
	case "override":
		var o struct {
			Text    string   `yaml:"text"`
			Imports []string `yaml:"imports"`
		}
		if err := value.Decode(&o); err != nil {
			return err
		}
		if o.Text == "" {
			return errors.NewInvalidManifestf("line %d: override needs text", value.Line)
		}
		refs := make([]typeinfo.ImportRef, 0, len(o.Imports))
		for _, imp := range o.Imports {
			refs = append(refs, parseImport(imp))
		}
		t := typeinfo.Override(o.Text, refs...)
		e.resolve = func(*descriptor.Registry, bool) typeinfo.TypeInfo { return t }
	default:
		return errors.NewInvalidManifestf("line %d: unknown type form %q", value.Line, key)
	}
	return nil
}

func decodeList(node *yaml.Node, want int) ([]TypeExpr, error) {
	var list []TypeExpr
	if err := node.Decode(&list); err != nil {
		return nil, err
	}
	if want >= 0 && len(list) != want {
		return nil, errors.NewInvalidManifestf("line %d: expected %d types, got %d", node.Line, want, len(list))
	}
	return list, nil
}

func resolveAll(exprs []TypeExpr, r *descriptor.Registry, input bool) []typeinfo.TypeInfo {
	out := make([]typeinfo.TypeInfo, len(exprs))
	for i, e := range exprs {
		out[i] = e.at(r, input)
	}
	return out
}

// parseImport reads "module" as import module and "module:Name" as
// from module import Name.
func parseImport(s string) typeinfo.ImportRef {
	if mod, name, ok := strings.Cut(s, ":"); ok {
		return typeinfo.ImportName(typeinfo.Module(mod), name)
	}
	return typeinfo.ImportModule(s)
}
