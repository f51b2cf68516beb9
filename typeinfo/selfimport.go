package typeinfo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SelfImportStrategy selects the module Self is imported from.
type SelfImportStrategy int

const (
	// SelfFromTyping imports Self from typing (Python 3.11 and later).
	SelfFromTyping SelfImportStrategy = iota
	// SelfFromTypingExtensions imports Self from typing_extensions.
	SelfFromTypingExtensions
)

// Module returns the module Self is imported from.
func (s SelfImportStrategy) Module() string {
	switch s {
	case SelfFromTypingExtensions:
		return "typing_extensions"
	default:
		return "typing"
	}
}

func (s SelfImportStrategy) String() string {
	return s.Module() + ".Self"
}

// PythonVersion is a major.minor Python version.
type PythonVersion struct {
	Major uint64
	Minor uint64
}

func (v PythonVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

func (v PythonVersion) semver() *semver.Version {
	return semver.New(v.Major, v.Minor, 0, "", "")
}

// selfInTyping holds from the first Python release whose typing module has Self.
var selfInTyping = mustConstraint(">= 3.11")

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}

// ParseMinimumVersion extracts the effective minimum Python version from a
// requires-python specifier such as ">=3.8, <3.12". Tokens are separated by
// commas or spaces; only >=, == and ~= tokens count, and the largest of them
// wins. Tokens that do not parse are skipped.
func ParseMinimumVersion(spec string) (PythonVersion, bool) {
	var minimum *semver.Version
	for _, token := range strings.FieldsFunc(spec, func(r rune) bool { return r == ',' || r == ' ' }) {
		token = strings.TrimSpace(token)

		var rest string
		switch {
		case strings.HasPrefix(token, ">="):
			rest = token[2:]
		case strings.HasPrefix(token, "=="):
			rest = token[2:]
		case strings.HasPrefix(token, "~="):
			rest = token[2:]
		default:
			continue
		}

		v, ok := parseVersionFragment(rest)
		if !ok {
			continue
		}
		if candidate := v.semver(); minimum == nil || candidate.GreaterThan(minimum) {
			minimum = candidate
		}
	}
	if minimum == nil {
		return PythonVersion{}, false
	}
	return PythonVersion{Major: minimum.Major(), Minor: minimum.Minor()}, true
}

func parseVersionFragment(fragment string) (PythonVersion, bool) {
	cleaned := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(fragment), "="))
	cleaned = strings.TrimLeft(cleaned, "v")
	for strings.HasSuffix(cleaned, ".*") {
		cleaned = strings.TrimSuffix(cleaned, ".*")
	}
	cleaned = strings.TrimRight(cleaned, "*")

	majorPart, minorPart, _ := strings.Cut(cleaned, ".")
	major, err := strconv.ParseUint(majorPart, 10, 8)
	if err != nil {
		return PythonVersion{}, false
	}

	minorPart = strings.TrimSpace(minorPart)
	if i := strings.IndexFunc(minorPart, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		minorPart = minorPart[:i]
	}
	var minor uint64
	if minorPart != "" {
		if minor, err = strconv.ParseUint(minorPart, 10, 8); err != nil {
			return PythonVersion{}, false
		}
	}
	return PythonVersion{Major: major, Minor: minor}, true
}

// StrategyFor picks the Self import for a requires-python specifier.
// With no usable constraint the newer typing import is used.
func StrategyFor(requiresPython string) SelfImportStrategy {
	v, ok := ParseMinimumVersion(requiresPython)
	if !ok || selfInTyping.Check(v.semver()) {
		return SelfFromTyping
	}
	return SelfFromTypingExtensions
}
