package stub

import (
	"strings"
)

const indentUnit = "    "

// writeDocstring writes a raw docstring block at the given indent. Blank
// lines carry no trailing whitespace.
func writeDocstring(sb *strings.Builder, doc, indent string) {
	doc = strings.Trim(doc, "\n")
	sb.WriteString(indent + `r"""` + "\n")
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimRight(line, " \t")
		if line != "" {
			sb.WriteString(indent + line)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(indent + `"""` + "\n")
}
