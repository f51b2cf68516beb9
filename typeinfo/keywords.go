package typeinfo

// keywords are the reserved words of Python 3. Soft keywords (match, case,
// type, _) are valid identifiers and are not listed.
var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// IsKeyword reports whether name is a reserved word and so cannot be used
// as a parameter, attribute or variable name in a stub.
func IsKeyword(name string) bool {
	return keywords[name]
}
