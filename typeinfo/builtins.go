package typeinfo

// builtinTable maps native type names to Python type text.
// Entries with a module need that module imported.
var builtinTable = map[string]struct {
	text   string
	module string
}{
	// Go primitives
	"bool":       {text: "bool"},
	"int":        {text: "int"},
	"int8":       {text: "int"},
	"int16":      {text: "int"},
	"int32":      {text: "int"},
	"int64":      {text: "int"},
	"uint":       {text: "int"},
	"uint8":      {text: "int"},
	"uint16":     {text: "int"},
	"uint32":     {text: "int"},
	"uint64":     {text: "int"},
	"uintptr":    {text: "int"},
	"byte":       {text: "int"},
	"rune":       {text: "int"},
	"float32":    {text: "float"},
	"float64":    {text: "float"},
	"complex64":  {text: "complex"},
	"complex128": {text: "complex"},
	"string":     {text: "str"},
	"[]byte":     {text: "bytes"},
	"error":      {text: "Exception"},
	"any":        {text: "typing.Any", module: "typing"},

	// Standard library types with a natural Python analogue
	"time.Time":     {text: "datetime.datetime", module: "datetime"},
	"time.Duration": {text: "datetime.timedelta", module: "datetime"},

	// Python builtins, so manifests can spell types the Python way
	"str":        {text: "str"},
	"float":      {text: "float"},
	"complex":    {text: "complex"},
	"bytes":      {text: "bytes"},
	"bytearray":  {text: "bytearray"},
	"object":     {text: "object"},
	"None":       {text: "None"},
	"Any":        {text: "typing.Any", module: "typing"},
	"typing.Any": {text: "typing.Any", module: "typing"},
}

// Lookup resolves a native or builtin type name through the fixed table.
func Lookup(name string) (TypeInfo, bool) {
	entry, ok := builtinTable[name]
	if !ok {
		return TypeInfo{}, false
	}
	if entry.module == "" {
		return Builtin(entry.text), true
	}
	return Override(entry.text, ImportModule(entry.module)), true
}
