package diag

import (
	"errors"
	"fmt"

	"rillint/internal/source"
)

// FixKind is a coarse classification of a fix.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactor
	FixKindRefactorRewrite
	FixKindSourceAction
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactor:
		return "refactor"
	case FixKindRefactorRewrite:
		return "refactor.rewrite"
	case FixKindSourceAction:
		return "source"
	}
	return "unknown"
}

// FixApplicability is the confidence that applying a fix preserves meaning.
// Ordered from most to least trustworthy.
type FixApplicability uint8

const (
	// FixApplicabilityAlwaysSafe can be applied without review.
	FixApplicabilityAlwaysSafe FixApplicability = iota
	// FixApplicabilitySafeWithHeuristics is probably right but not guaranteed.
	FixApplicabilitySafeWithHeuristics
	// FixApplicabilityManualReview may be incorrect; a human must look.
	FixApplicabilityManualReview
	// FixApplicabilityHasPlaceholders contains placeholder text such as `(..)`.
	FixApplicabilityHasPlaceholders
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	case FixApplicabilityHasPlaceholders:
		return "has-placeholders"
	}
	return "unknown"
}

// Weaker returns the less trustworthy of a and b.
func (a FixApplicability) Weaker(b FixApplicability) FixApplicability {
	return max(a, b)
}

// TextEdit replaces the text under Span with NewText. OldText, when set, is a
// guard checked before applying.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixBuildContext is handed to lazy fix builders.
type FixBuildContext struct {
	FileSet *source.FileSet
}

// FixThunk builds a fix on demand.
type FixThunk interface {
	BuildFix(ctx FixBuildContext) (Fix, error)
}

// FixThunkFunc adapts a function to FixThunk.
type FixThunkFunc func(ctx FixBuildContext) (Fix, error)

func (f FixThunkFunc) BuildFix(ctx FixBuildContext) (Fix, error) { return f(ctx) }

// Fix is a suggested correction attached to a diagnostic.
type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	// RequiresAll marks fixes that only make sense applied together with the
	// rest of the run.
	RequiresAll bool
	Edits       []TextEdit
	Thunk       FixThunk
}

var errThunkEmpty = errors.New("fix thunk produced no edits")

// Resolve returns the fix with its edits materialised.
func (f Fix) Resolve(ctx FixBuildContext) (Fix, error) {
	if f.Thunk == nil {
		return f, nil
	}
	built, err := f.Thunk.BuildFix(ctx)
	if err != nil {
		return Fix{}, fmt.Errorf("fix %q: %w", f.Title, err)
	}
	if len(built.Edits) == 0 {
		return Fix{}, fmt.Errorf("fix %q: %w", f.Title, errThunkEmpty)
	}
	if built.ID == "" {
		built.ID = f.ID
	}
	if built.Title == "" {
		built.Title = f.Title
	}
	built.Thunk = nil
	return built, nil
}

// MaterializeFixes resolves every fix, failing on the first broken thunk.
func MaterializeFixes(ctx FixBuildContext, fixes []Fix) ([]Fix, error) {
	out := make([]Fix, 0, len(fixes))
	for _, f := range fixes {
		r, err := f.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// WithFixSuggestion attaches a fully configured fix.
func (d Diagnostic) WithFixSuggestion(f Fix) Diagnostic {
	d.Fixes = append(d.Fixes, f)
	return d
}
