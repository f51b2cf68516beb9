package descriptor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/stubgen/typeinfo"
)

type shape struct{}

type widget struct{}

func shapeEnum(variants ...Variant) ComplexEnum {
	return ComplexEnum{
		ID:       TypeIDOf[shape](),
		Name:     "Shape",
		Module:   "geometry",
		Variants: variants,
	}
}

func TestComplexEnumUnion(t *testing.T) {
	circle := Variant{
		Name:              "circle",
		Form:              Tuple,
		ConstructorParams: []Parameter{{Name: "_0", Type: Static(typeinfo.Builtin("float"))}},
	}
	center := Variant{Name: "center", Form: Unit}
	pair := Variant{
		Name: "pair",
		Form: Tuple,
		ConstructorParams: []Parameter{
			{Name: "_0", Type: Static(typeinfo.Builtin("int"))},
			{Name: "_1", Type: Static(typeinfo.Builtin("int"))},
		},
	}
	rect := Variant{
		Name:              "rect",
		Form:              Struct,
		ConstructorParams: []Parameter{{Name: "width", Type: Static(typeinfo.Builtin("float"))}},
	}

	tests := []struct {
		name     string
		enum     ComplexEnum
		want     string
		imported bool
	}{
		{"single field tuple collapses to payload", shapeEnum(circle), "float", false},
		{"unit variant is qualified", shapeEnum(center), "Shape.center", true},
		{"multi field tuple is qualified", shapeEnum(pair), "Shape.pair", true},
		{"single field struct is qualified", shapeEnum(rect), "Shape.rect", true},
		{"left fold across variants", shapeEnum(circle, center, pair), "float | Shape.center | Shape.pair", true},
		{"no variants falls back to the name", shapeEnum(), "Shape", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := tt.enum.StubType()
			assert.Equal(t, tt.want, st.Input.Name)
			assert.Equal(t, st.Input.Name, st.Output.Name)
			assert.Equal(t, tt.imported, st.Output.Imports.Has(typeinfo.ImportName(typeinfo.Module("geometry"), "Shape")))
		})
	}
}

func TestRegistryStubTypeOf(t *testing.T) {
	r := NewRegistry()
	r.RegisterClass(Class{ID: TypeIDOf[widget](), Name: "Widget"})
	r.RegisterComplexEnum(shapeEnum(Variant{
		Name:              "boxed",
		Form:              Tuple,
		ConstructorParams: []Parameter{{Name: "_0", Type: InputOf[*widget](r)}},
	}))
	r.RegisterType("native.Path", typeinfo.StubType{
		Input:  typeinfo.Override("str | os.PathLike[str]", typeinfo.ImportModule("os")),
		Output: typeinfo.Builtin("str"),
	})

	st, ok := r.StubTypeOf(TypeIDOf[widget]())
	require.True(t, ok)
	assert.Equal(t, "Widget", st.Output.Name)
	assert.True(t, st.Output.Imports.Has(typeinfo.ImportName(typeinfo.DefaultModule(), "Widget")))

	st, ok = r.StubTypeOf(TypeIDOf[shape]())
	require.True(t, ok)
	assert.Equal(t, "Widget", st.Input.Name, "payload resolves through the registry")

	st, ok = r.StubTypeOf("native.Path")
	require.True(t, ok)
	assert.Equal(t, "str | os.PathLike[str]", st.Input.Name)
	assert.Equal(t, "str", st.Output.Name)

	_, ok = r.StubTypeOf("missing")
	assert.False(t, ok)
	assert.Equal(t, "typing.Any", r.RefOutput("missing")().Name)

	assert.Equal(t, "list[Widget]", OutputOf[[]widget](r)().Name)
	assert.Equal(t, "dict[str, Widget | None]", OutputOf[map[string]**widget](r)().Name)
}

func TestRegistryConcurrentRegistration(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.RegisterFunction(Function{Name: "f"})
			r.RegisterVariable(Variable{Name: "v"})
		}()
	}
	wg.Wait()

	snap := r.Snapshot()
	assert.Len(t, snap.Functions, 50)
	assert.Len(t, snap.Variables, 50)
	assert.Equal(t, 100, r.Len())
}

func TestSnapshotIsIndependent(t *testing.T) {
	r := NewRegistry()
	r.RegisterEnum(Enum{Name: "Color"})
	snap := r.Snapshot()
	r.RegisterEnum(Enum{Name: "Size"})

	assert.Len(t, snap.Enums, 1)
	assert.Len(t, r.Snapshot().Enums, 2)
}

func TestTypeID(t *testing.T) {
	assert.Equal(t, TypeID("github.com/teranos/stubgen/descriptor.widget"), TypeIDOf[widget]())
	assert.Equal(t, TypeIDOf[widget](), TypeIDOf[*widget]())
	assert.Equal(t, TypeID("[]int"), TypeIDOf[[]int]())
	assert.Equal(t, TypeID("pkg.sub.Widget"), ManifestID("pkg.sub", "Widget"))
	assert.Equal(t, TypeID("Widget"), ManifestID("", "Widget"))
}

func TestDeprecatedMessage(t *testing.T) {
	assert.Equal(t, "[Since 1.2] use g", DeprecatedInfo{Since: "1.2", Note: "use g"}.Message())
	assert.Equal(t, "[Since 1.2]", DeprecatedInfo{Since: "1.2"}.Message())
	assert.Equal(t, "use g", DeprecatedInfo{Note: "use g"}.Message())
}

func TestParseKinds(t *testing.T) {
	for _, k := range []ParameterKind{PositionalOrKeyword, PositionalOnly, KeywordOnly, VarPositional, VarKeyword} {
		got, ok := ParseParameterKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	for _, k := range []MethodKind{MethodInstance, MethodStatic, MethodClass, MethodNew} {
		got, ok := ParseMethodKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	for _, f := range []VariantForm{Unit, Tuple, Struct} {
		got, ok := ParseVariantForm(f.String())
		assert.True(t, ok)
		assert.Equal(t, f, got)
	}
	_, ok := ParseMethodKind("abstract")
	assert.False(t, ok)
}
