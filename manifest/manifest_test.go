package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/stubgen/descriptor"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/stub"
	"github.com/teranos/stubgen/typeinfo"
)

const geoManifest = `
modules:
  - module: geo
    doc: Geometry.
classes:
  - name: Point
    module: geo
    doc: A point.
    getters:
      - {name: x, type: float}
complex_enums:
  - name: Shape
    module: geo
    variants:
      - name: circle
        form: tuple
        fields: [{name: _0, type: float}]
        params: [{name: _0, type: float}]
      - name: center
enums:
  - name: Color
    module: geo.palette
    variants:
      - {name: RED, doc: Red.}
      - {name: BLUE}
methods:
  - class: geo.Point
    methods:
      - name: __new__
        kind: new
        params:
          - {name: x, type: float}
          - {name: y, type: float, default: {value: 0.0}}
      - name: nearest
        params:
          - name: others
            type: {list: {class: geo.Point}}
        returns: {optional: {class: geo.Point}}
        type_ignore: [override]
functions:
  - name: dist
    module: geo
    params:
      - {name: a, kind: positional_only, type: {class: geo.Point}}
      - {name: b, kind: positional_only, type: {class: geo.Point}}
    returns: float
  - name: describe
    module: geo
    params:
      - {name: s, type: {class: geo.Shape}}
    returns: str
    deprecated: {since: "1.0", note: use repr}
  - name: walk
    module: geo
    params:
      - name: root
        type: {override: {text: "str | os.PathLike[str]", imports: [os]}}
      - {name: options, kind: kwargs, type: typing.Any}
    returns: {callable: {args: [int], returns: {self: true}}}
    async: true
variables:
  - name: ORIGIN
    module: geo
    type: {class: geo.Point}
  - name: UNITS
    module: geo
    type: {tuple: [str, str]}
    default: {python: "('m', 'cm')"}
`

func registerManifest(t *testing.T, doc string) *descriptor.Registry {
	t.Helper()
	m, err := Parse([]byte(doc))
	require.NoError(t, err)
	reg := descriptor.NewRegistry()
	require.NoError(t, m.Register(reg))
	return reg
}

func TestRegisterAndRender(t *testing.T) {
	reg := registerManifest(t, geoManifest)
	info, err := stub.Build(reg, stub.Options{DefaultModule: "geo"})
	require.NoError(t, err)

	geo := info.Modules["geo"].Render(stub.RenderConfig{SelfImport: typeinfo.SelfFromTypingExtensions})
	assert.Contains(t, geo, "r\"\"\"\nGeometry.\n\"\"\"\n")
	assert.Contains(t, geo, "import os\nimport typing\nimport typing_extensions\nfrom typing_extensions import Self\n")
	assert.Contains(t, geo, "ORIGIN: Point\n")
	assert.Contains(t, geo, "UNITS: tuple[str, str] = ('m', 'cm')\n")
	assert.Contains(t, geo, "def dist(a: Point, b: Point, /) -> float: ...\n")
	assert.Contains(t, geo, "@typing_extensions.deprecated(\"[Since 1.0] use repr\")\ndef describe(s: float | Shape.center) -> str: ...\n")
	assert.Contains(t, geo, "async def walk(root: str | os.PathLike[str], **options: typing.Any) -> typing.Callable[[int], Self]: ...\n")
	assert.Contains(t, geo, "    def __new__(cls, x: float, y: float = 0.0) -> Self: ...\n")
	assert.Contains(t, geo, "    def nearest(self, others: list[Point]) -> Point | None: ...  # type: ignore[override]\n")
	assert.Contains(t, geo, "class Shape:\n    class circle(Shape):\n")

	palette := info.Modules["geo.palette"].Render(stub.RenderConfig{})
	assert.Contains(t, palette, "class Color(enum.Enum):\n    RED = ...\n    r\"\"\"\n    Red.\n    \"\"\"\n    BLUE = ...\n")
	assert.Contains(t, info.Modules["geo"].Submodules, "palette")
}

func TestRegisterCustomIDs(t *testing.T) {
	reg := registerManifest(t, `
classes:
  - {id: native.Widget, name: Widget}
methods:
  - class: native.Widget
    attrs: [{name: size, type: int, default: {value: 3}}]
`)
	st, ok := reg.StubTypeOf("native.Widget")
	require.True(t, ok)
	assert.Equal(t, "Widget", st.Output.Name)

	snap := reg.Snapshot()
	require.Len(t, snap.Methods, 1)
	assert.Equal(t, "3", snap.Methods[0].Attrs[0].Default())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown top level key", "widgets: []\n"},
		{"unknown type form", "variables: [{name: X, type: {frozenset: int}}]\n"},
		{"two keys in a type", "variables: [{name: X, type: {list: int, set: int}}]\n"},
		{"dict arity", "variables: [{name: X, type: {dict: [str]}}]\n"},
		{"empty union", "variables: [{name: X, type: {union: []}}]\n"},
		{"bad type_ignore", "functions: [{name: f, type_ignore: some}]\n"},
		{"override without text", "variables: [{name: X, type: {override: {imports: [os]}}}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidManifest), "got %v", err)
		})
	}
}

func TestRegisterErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown parameter kind", "functions: [{name: f, params: [{name: a, kind: spread, type: int}]}]\n"},
		{"unknown method kind", "methods: [{class: X, methods: [{name: m, kind: virtual}]}]\n"},
		{"unknown variant form", "complex_enums: [{name: E, variants: [{name: v, form: record}]}]\n"},
		{"member without type", "classes: [{name: C, getters: [{name: x}]}]\n"},
		{"variable without type", "variables: [{name: X}]\n"},
		{"methods without class", "methods: [{methods: [{name: m}]}]\n"},
		{"conflicting default", "variables: [{name: X, type: int, default: {python: '1', value: 1}}]\n"},
		{"keyword parameter", "functions: [{name: f, params: [{name: from, type: int}]}]\n"},
		{"keyword variable", "variables: [{name: None, type: int}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			err = m.Register(descriptor.NewRegistry())
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidManifest), "got %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stubgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(geoManifest), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Functions, 3)
	assert.Len(t, m.Variables, 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	m, err = Load(empty)
	require.NoError(t, err)
	assert.Empty(t, m.Classes)
}
