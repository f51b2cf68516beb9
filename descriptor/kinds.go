package descriptor

import "fmt"

// ParameterKind is how a callable parameter may be passed.
type ParameterKind int

const (
	PositionalOrKeyword ParameterKind = iota
	PositionalOnly
	KeywordOnly
	VarPositional
	VarKeyword
)

func (k ParameterKind) String() string {
	switch k {
	case PositionalOrKeyword:
		return "positional_or_keyword"
	case PositionalOnly:
		return "positional_only"
	case KeywordOnly:
		return "keyword_only"
	case VarPositional:
		return "var_positional"
	case VarKeyword:
		return "var_keyword"
	default:
		return fmt.Sprintf("ParameterKind(%d)", int(k))
	}
}

// ParseParameterKind parses the names produced by String.
func ParseParameterKind(s string) (ParameterKind, bool) {
	switch s {
	case "", "positional_or_keyword":
		return PositionalOrKeyword, true
	case "positional_only":
		return PositionalOnly, true
	case "keyword_only":
		return KeywordOnly, true
	case "var_positional", "args":
		return VarPositional, true
	case "var_keyword", "kwargs":
		return VarKeyword, true
	default:
		return 0, false
	}
}

// MethodKind is the receiver form of a method.
type MethodKind int

const (
	// MethodInstance methods receive self.
	MethodInstance MethodKind = iota
	// MethodStatic methods receive nothing.
	MethodStatic
	// MethodClass methods receive cls and are decorated with @classmethod.
	MethodClass
	// MethodNew is the constructor: it receives cls, is never decorated and
	// returns Self.
	MethodNew
)

func (k MethodKind) String() string {
	switch k {
	case MethodInstance:
		return "instance"
	case MethodStatic:
		return "static"
	case MethodClass:
		return "class"
	case MethodNew:
		return "new"
	default:
		return fmt.Sprintf("MethodKind(%d)", int(k))
	}
}

// ParseMethodKind parses the names produced by String.
func ParseMethodKind(s string) (MethodKind, bool) {
	switch s {
	case "", "instance":
		return MethodInstance, true
	case "static":
		return MethodStatic, true
	case "class":
		return MethodClass, true
	case "new":
		return MethodNew, true
	default:
		return 0, false
	}
}

// VariantForm is the payload shape of a complex enum variant.
type VariantForm int

const (
	Unit VariantForm = iota
	Tuple
	Struct
)

func (f VariantForm) String() string {
	switch f {
	case Unit:
		return "unit"
	case Tuple:
		return "tuple"
	case Struct:
		return "struct"
	default:
		return fmt.Sprintf("VariantForm(%d)", int(f))
	}
}

// ParseVariantForm parses the names produced by String.
func ParseVariantForm(s string) (VariantForm, bool) {
	switch s {
	case "", "unit":
		return Unit, true
	case "tuple":
		return Tuple, true
	case "struct":
		return Struct, true
	default:
		return 0, false
	}
}

// DeprecatedInfo marks an item as deprecated.
type DeprecatedInfo struct {
	Since string
	Note  string
}

// Message is the text passed to the deprecation decorator.
func (d DeprecatedInfo) Message() string {
	switch {
	case d.Since != "" && d.Note != "":
		return fmt.Sprintf("[Since %s] %s", d.Since, d.Note)
	case d.Since != "":
		return fmt.Sprintf("[Since %s]", d.Since)
	default:
		return d.Note
	}
}

// IgnoreTarget selects which type checker diagnostics to suppress on a line.
// An empty rule list suppresses everything.
type IgnoreTarget struct {
	Rules []string
}

// IgnoreAll suppresses every diagnostic.
func IgnoreAll() *IgnoreTarget {
	return &IgnoreTarget{}
}

// IgnoreRules suppresses only the named diagnostics.
func IgnoreRules(rules ...string) *IgnoreTarget {
	return &IgnoreTarget{Rules: rules}
}
