// Package checks holds the built-in lints.
package checks

import (
	"rillint/internal/diag"
	"rillint/internal/lint"
)

var (
	SuspiciousAssignmentFormatting = &lint.Lint{
		Name:    "suspicious_assignment_formatting",
		Code:    diag.LintSuspiciousAssignmentFormatting,
		Default: lint.Warn,
		Group:   lint.GroupSuspicious,
		Summary: "suspicious formatting of `*=`, `-=` or `!=`",
	}
	SuspiciousUnaryOpFormatting = &lint.Lint{
		Name:    "suspicious_unary_op_formatting",
		Code:    diag.LintSuspiciousUnaryOpFormatting,
		Default: lint.Warn,
		Group:   lint.GroupSuspicious,
		Summary: "suspicious formatting of unary `-` or `!` on the right of a binary operator",
	}
	SuspiciousElseFormatting = &lint.Lint{
		Name:    "suspicious_else_formatting",
		Code:    diag.LintSuspiciousElseFormatting,
		Default: lint.Warn,
		Group:   lint.GroupSuspicious,
		Summary: "suspicious formatting of `else`",
	}
	PossibleMissingComma = &lint.Lint{
		Name:    "possible_missing_comma",
		Code:    diag.LintPossibleMissingComma,
		Default: lint.Deny,
		Group:   lint.GroupCorrectness,
		Summary: "possible missing comma in a list",
	}
	NeedlessContinue = &lint.Lint{
		Name:    "needless_continue",
		Code:    diag.LintNeedlessContinue,
		Default: lint.Allow,
		Group:   lint.GroupPedantic,
		Summary: "`continue` as the last thing a loop body does",
	}
	OverflowCheckConditional = &lint.Lint{
		Name:    "overflow_check_conditional",
		Code:    diag.LintOverflowCheckConditional,
		Default: lint.Warn,
		Group:   lint.GroupComplexity,
		Summary: "overflow checks inspired by C which are likely to panic",
	}
	EmptyStructsWithBrackets = &lint.Lint{
		Name:    "empty_structs_with_brackets",
		Code:    diag.LintEmptyStructsWithBrackets,
		Default: lint.Allow,
		Group:   lint.GroupRestriction,
		Summary: "struct declarations with empty brackets",
	}
	EmptyEnumVariantsWithBrackets = &lint.Lint{
		Name:    "empty_enum_variants_with_brackets",
		Code:    diag.LintEmptyEnumVariantsWithBrackets,
		Default: lint.Allow,
		Group:   lint.GroupRestriction,
		Summary: "enum variants with empty brackets",
	}
	ManualStringNew = &lint.Lint{
		Name:    "manual_string_new",
		Code:    diag.LintManualStringNew,
		Default: lint.Allow,
		Group:   lint.GroupPedantic,
		Summary: "empty String is being created manually",
	}
	IterNthZero = &lint.Lint{
		Name:    "iter_nth_zero",
		Code:    diag.LintIterNthZero,
		Default: lint.Warn,
		Group:   lint.GroupStyle,
		Summary: "`.nth(0)` on an iterator where `.next()` does the same",
	}
	OrThenUnwrap = &lint.Lint{
		Name:    "or_then_unwrap",
		Code:    diag.LintOrThenUnwrap,
		Default: lint.Warn,
		Group:   lint.GroupComplexity,
		Summary: "`.or(Some(x)).unwrap()` where `.unwrap_or(x)` would do",
	}
	ManualOkOr = &lint.Lint{
		Name:    "manual_ok_or",
		Code:    diag.LintManualOkOr,
		Default: lint.Allow,
		Group:   lint.GroupPedantic,
		Summary: "`map_or(Err(e), Ok)` reimplementing `ok_or`",
	}
	UnnecessaryLazyEvaluations = &lint.Lint{
		Name:    "unnecessary_lazy_evaluations",
		Code:    diag.LintUnnecessaryLazyEvaluations,
		Default: lint.Warn,
		Group:   lint.GroupStyle,
		Summary: "closures that only return a cheap value",
	}
	BoolComparison = &lint.Lint{
		Name:    "bool_comparison",
		Code:    diag.LintBoolComparison,
		Default: lint.Warn,
		Group:   lint.GroupComplexity,
		Summary: "comparing a boolean with `true` or `false`",
	}
	DetectGenerated = &lint.Lint{
		Name:    "detect_generated",
		Code:    diag.LintDetectGenerated,
		Default: lint.Allow,
		Group:   lint.GroupInternal,
		Summary: "reports every node the provenance engine thinks was generated",
	}
)

// All returns one instance of every built-in check in run order.
func All() []lint.Check {
	return []lint.Check{
		Formatting{},
		NeedlessContinueCheck{},
		OverflowCheck{},
		EmptyWithBrackets{},
		ManualStringNewCheck{},
		Methods{},
		BoolComparisonCheck{},
		DetectGeneratedCheck{},
	}
}

// Registry returns a registry of every built-in check.
func Registry() *lint.Registry {
	return lint.NewRegistry(All()...)
}
