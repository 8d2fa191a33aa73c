// Package fix applies the suggestions attached to diagnostics to files on
// disk. Selection is deterministic: candidates are ordered by position, then
// by the order the producers emitted them.
package fix

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"rillint/internal/diag"
	"rillint/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies one fix: the first always-safe one, or failing
	// that the first one at all. Preferred suggestions sort first.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every always-safe fix that does not overlap an
	// earlier one.
	ApplyModeAll
	// ApplyModeID applies the fix with ApplyOptions.TargetID.
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

func (r *ApplyResult) skip(f diag.Fix, reason string) {
	r.Skipped = append(r.Skipped, SkippedFix{ID: f.ID, Title: f.Title, Reason: reason})
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply selects fixes from diagnostics according to opts, applies them and
// writes the changed files. A fix is applied whole or not at all.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
	}
	if fs == nil {
		return result, errors.New("fix: FileSet is nil")
	}

	candidates := gatherCandidates(diag.FixBuildContext{FileSet: fs}, diagnostics, result)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	slices.SortStableFunc(candidates, compareCandidates)

	selected := selectCandidates(candidates, opts, result)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	ws := newWorkspace(fs)
	for _, cand := range selected {
		n, err := ws.stage(cand.fix.Edits)
		if err != nil {
			result.skip(cand.fix, err.Error())
			continue
		}
		result.Applied = append(result.Applied, AppliedFix{
			ID:            cand.fix.ID,
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.fix.Applicability,
			PrimaryPath:   ws.path(cand.diag.Primary.File, "auto"),
			EditCount:     n,
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	changes, err := ws.flush()
	result.FileChanges = append(result.FileChanges, changes...)
	if err != nil {
		return result, err
	}
	return result, nil
}

// gatherCandidates resolves the fixes of every diagnostic. Fixes without an
// ID get one from the diagnostic; a repeated ID keeps its first owner.
func gatherCandidates(ctx diag.FixBuildContext, diagnostics []diag.Diagnostic, result *ApplyResult) []candidate {
	var cands []candidate
	seen := make(map[string]bool)
	for _, d := range diagnostics {
		if len(d.Fixes) == 0 {
			continue
		}
		resolved, err := diag.MaterializeFixes(ctx, d.Fixes)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFix{
				Title:  d.Message,
				Reason: fmt.Sprintf("failed to build fixes: %v", err),
			})
			continue
		}
		for idx, f := range resolved {
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
			}
			switch {
			case len(f.Edits) == 0:
				result.skip(f, "fix has no edits")
				continue
			case seen[f.ID]:
				result.skip(f, "duplicate fix id")
				continue
			}
			seen[f.ID] = true
			cands = append(cands, candidate{diag: d, fix: f, order: len(cands)})
		}
	}
	return cands
}

// compareCandidates orders by file and primary span, then keeps emission
// order; preferred suggestions of one diagnostic are already emitted first.
func compareCandidates(a, b candidate) int {
	pa, pb := a.diag.Primary, b.diag.Primary
	return cmp.Or(
		cmp.Compare(pa.File, pb.File),
		cmp.Compare(pa.Start, pb.Start),
		cmp.Compare(pa.End, pb.End),
		cmp.Compare(a.order, b.order),
	)
}

func selectCandidates(candidates []candidate, opts ApplyOptions, result *ApplyResult) []candidate {
	switch opts.Mode {
	case ApplyModeID:
		i := slices.IndexFunc(candidates, func(c candidate) bool { return c.fix.ID == opts.TargetID })
		if i < 0 {
			result.Skipped = append(result.Skipped, SkippedFix{ID: opts.TargetID, Reason: "fix id not found"})
			return nil
		}
		if candidates[i].fix.RequiresAll {
			result.skip(candidates[i].fix, "fix requires all fixes to be applied")
			return nil
		}
		return candidates[i : i+1]

	case ApplyModeAll:
		var selected []candidate
		for _, cand := range candidates {
			if cand.fix.Applicability != diag.FixApplicabilityAlwaysSafe {
				result.skip(cand.fix, "applicability is "+cand.fix.Applicability.String())
				continue
			}
			selected = append(selected, cand)
		}
		return selected

	case ApplyModeOnce:
		var fallback []candidate
		for _, cand := range candidates {
			if cand.fix.RequiresAll {
				result.skip(cand.fix, "fix requires all fixes to be applied")
				continue
			}
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				return []candidate{cand}
			}
			if fallback == nil {
				fallback = []candidate{cand}
			}
		}
		return fallback
	}
	return nil
}
