package pipeline

import "time"

// Stage is a step of a run as shown to the user.
type Stage string

const (
	StageLoad  Stage = "load"
	StageParse Stage = "parse" // lexing, macro expansion and parsing
	StageLint  Stage = "lint"
	StageFix   Stage = "fix"
)

// Stages lists every stage in run order.
var Stages = []Stage{StageLoad, StageParse, StageLint, StageFix}

// Status is the state of a file, or of the run, within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	// StatusCached means the result came from the disk cache.
	StatusCached Status = "cached"
	StatusDone   Status = "done"
	StatusError  Status = "error"
)

// Event reports progress of one file, or of the whole run when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	// Findings is set on the final event of a file.
	Findings int
}

// ProgressSink consumes progress events. OnEvent may be called from
// several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink sends every event to Ch; a nil Ch drops them. The send blocks,
// so the reader must drain Ch until the run returns.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

// Timings maps a stage to its cumulative duration. Parse and lint time is
// summed over files, so on a parallel run it can exceed wall time.
type Timings map[Stage]time.Duration

// Set records dur for stage, replacing any earlier value.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if *t == nil {
		*t = make(Timings, len(Stages))
	}
	(*t)[stage] = dur
}

// Has reports whether stage ran.
func (t Timings) Has(stage Stage) bool {
	_, ok := t[stage]
	return ok
}

// Each calls fn for the recorded stages in run order.
func (t Timings) Each(fn func(Stage, time.Duration)) {
	for _, stage := range Stages {
		if dur, ok := t[stage]; ok {
			fn(stage, dur)
		}
	}
}
