package stub

import (
	"strings"

	"github.com/teranos/stubgen/descriptor"
	"github.com/teranos/stubgen/logger"
)

// knownRules are the diagnostic codes of mypy and pyright.
var knownRules = map[string]bool{
	// mypy
	"attr-defined": true, "union-attr": true, "name-defined": true, "used-before-def": true,
	"call-arg": true, "arg-type": true, "call-overload": true, "valid-type": true,
	"var-annotated": true, "override": true, "return": true, "return-value": true,
	"assignment": true, "method-assign": true, "type-var": true, "operator": true,
	"index": true, "list-item": true, "dict-item": true, "typeddict-item": true,
	"typeddict-unknown-key": true, "has-type": true, "import": true, "import-not-found": true,
	"import-untyped": true, "no-redef": true, "func-returns-value": true, "abstract": true,
	"type-abstract": true, "safe-super": true, "valid-newtype": true, "exit-return": true,
	"name-match": true, "literal-required": true, "no-overload-impl": true,
	"unused-coroutine": true, "top-level-await": true, "await-not-async": true,
	"assert-type": true, "truthy-function": true, "str-format": true, "str-bytes-safe": true,
	"annotation-unchecked": true, "syntax": true, "misc": true, "overload-overlap": true,
	"no-untyped-def": true, "no-any-return": true, "no-any-unimported": true,
	"redundant-cast": true, "unused-ignore": true, "explicit-override": true,
	// pyright
	"reportAttributeAccessIssue": true, "reportArgumentType": true, "reportAssignmentType": true,
	"reportCallIssue": true, "reportGeneralTypeIssues": true, "reportIncompatibleMethodOverride": true,
	"reportIncompatibleVariableOverride": true, "reportIndexIssue": true, "reportInvalidTypeForm": true,
	"reportMissingImports": true, "reportMissingModuleSource": true, "reportNoOverloadImplementation": true,
	"reportOperatorIssue": true, "reportOptionalMemberAccess": true, "reportOverlappingOverload": true,
	"reportPossiblyUnbound": true, "reportRedeclaration": true, "reportReturnType": true,
	"reportSelfClsParameterName": true, "reportTypeCommentUsage": true, "reportUndefinedVariable": true,
	"reportUnusedCoroutine": true, "reportUnusedExpression": true, "reportInvalidTypeVarUse": true,
	"reportUnknownParameterType": true, "reportUnknownVariableType": true, "reportUnknownMemberType": true,
	"reportUnknownArgumentType": true, "reportMissingParameterType": true, "reportPrivateUsage": true,
	"reportDeprecated": true, "reportInvalidStubStatement": true, "reportUnsupportedDunderAll": true,
}

// ignoreComment renders the trailing type: ignore comment, or "" without a
// target. Unknown rule names are kept as given.
func ignoreComment(target *descriptor.IgnoreTarget, owner string) string {
	if target == nil {
		return ""
	}
	if len(target.Rules) == 0 {
		return "  # type: ignore"
	}
	for _, r := range target.Rules {
		if !knownRules[r] {
			logger.Warnw("Unknown rule name in type ignore",
				logger.FieldRule, r,
				"callable", owner)
		}
	}
	return "  # type: ignore[" + strings.Join(target.Rules, ",") + "]"
}
