package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// Phase names reported by Check.
const (
	PhaseLoad  = "load"
	PhaseParse = "lex+parse"
	PhaseLint  = "lint"
	PhaseCache = "cache"
)

// PhaseEvent describes a phase boundary of one file. File is empty for
// run-wide phases such as loading.
type PhaseEvent struct {
	File    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	// Cached is set on the end of a file served from the disk cache.
	Cached bool
	Err    error
}

// PhaseObserver receives phase events emitted during Check. It may be called
// from several goroutines at once.
type PhaseObserver func(PhaseEvent)

func (o PhaseObserver) emit(ev PhaseEvent) {
	if o != nil {
		o(ev)
	}
}
