package fix

import (
	"fmt"

	"rillint/internal/diag"
	"rillint/internal/source"
)

// MakeFixID builds a stable identifier from the diagnostic code and the span
// the fix targets, so `rillint fix --id` survives re-runs.
func MakeFixID(code diag.Code, span source.Span) string {
	return fmt.Sprintf("%s-%d-%d-%d", code.ID(), span.File, span.Start, span.End)
}

// MakeLintFixID is MakeFixID for lint suggestions; idx separates several
// suggestions on the same span.
func MakeLintFixID(lint string, span source.Span, idx int) string {
	return fmt.Sprintf("%s-%d-%d-%d-%d", lint, span.File, span.Start, span.End, idx)
}
