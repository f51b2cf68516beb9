package descriptor

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// DefaultRenderer produces the Python text of a default value.
// It is only invoked when the stub is rendered.
type DefaultRenderer func() string

// RawDefault passes text through unchanged.
func RawDefault(text string) DefaultRenderer {
	return func() string { return text }
}

// Ellipsis renders a default as ..., for values that have no literal form.
func Ellipsis() DefaultRenderer {
	return RawDefault("...")
}

// PyLiteral converts a Go value to Python literal syntax when rendered.
func PyLiteral(v any) DefaultRenderer {
	return func() string { return pyLiteral(reflect.ValueOf(v)) }
}

func pyLiteral(v reflect.Value) string {
	if !v.IsValid() {
		return "None"
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return "None"
		}
		return pyLiteral(v.Elem())
	case reflect.Bool:
		if v.Bool() {
			return "True"
		}
		return "False"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return pyFloat(v.Float(), v.Type().Bits())
	case reflect.String:
		return pyString(v.String())
	case reflect.Slice:
		if v.IsNil() {
			return "None"
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return pyBytes(v.Bytes())
		}
		return "[" + elems(v) + "]"
	case reflect.Array:
		if v.Len() == 1 {
			return "(" + elems(v) + ",)"
		}
		return "(" + elems(v) + ")"
	case reflect.Map:
		if v.IsNil() {
			return "None"
		}
		keys := v.MapKeys()
		entries := make([]string, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, pyLiteral(k)+": "+pyLiteral(v.MapIndex(k)))
		}
		slices.SortFunc(entries, cmp.Compare)
		return "{" + strings.Join(entries, ", ") + "}"
	default:
		return "..."
	}
}

func elems(v reflect.Value) string {
	parts := make([]string, v.Len())
	for i := range parts {
		parts[i] = pyLiteral(v.Index(i))
	}
	return strings.Join(parts, ", ")
}

func pyFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return `float("inf")`
	case math.IsInf(f, -1):
		return `float("-inf")`
	case math.IsNaN(f):
		return `float("nan")`
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

func quoteFor(hasSingle, hasDouble bool) byte {
	if hasSingle && !hasDouble {
		return '"'
	}
	return '\''
}

// pyString quotes s the way Python's repr does for plain strings.
func pyString(s string) string {
	quote := quoteFor(strings.ContainsRune(s, '\''), strings.ContainsRune(s, '"'))
	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(quote):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// pyBytes renders a bytes literal. Only printable ASCII is written as is.
func pyBytes(data []byte) string {
	quote := quoteFor(bytes.IndexByte(data, '\'') >= 0, bytes.IndexByte(data, '"') >= 0)
	var b strings.Builder
	b.WriteString("b")
	b.WriteByte(quote)
	for _, c := range data {
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == quote:
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
