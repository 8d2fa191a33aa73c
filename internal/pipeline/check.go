package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"rillint/internal/driver"
	"rillint/internal/fix"
)

// CheckRequest configures a check run.
type CheckRequest struct {
	Paths []string
	// Driver holds the lint options; its Observer is replaced.
	Driver   driver.Options
	Progress ProgressSink
}

// CheckResult captures the driver result and stage timings.
type CheckResult struct {
	Driver  *driver.Result
	Files   []string
	Timings Timings
}

// Files lists the display names of the files a request will check.
func (req *CheckRequest) Files() ([]string, error) {
	paths, err := driver.ListFiles(req.Paths, req.Driver.Exclude)
	if err != nil {
		return nil, err
	}
	return NormalizeProgressFiles(paths, req.Driver.BaseDir), nil
}

// Check lists, parses and lints the requested files, reporting progress
// per file.
func Check(ctx context.Context, req *CheckRequest) (CheckResult, error) {
	var result CheckResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, errors.New("missing check request")
	}
	if len(req.Paths) == 0 {
		return result, errors.New("missing paths")
	}

	files, err := req.Files()
	if err != nil {
		emitStage(req.Progress, nil, StageLoad, StatusError, err, 0)
		return result, err
	}
	result.Files = files
	emitQueued(req.Progress, files)

	phase := &phaseObserver{sink: req.Progress, base: absBase(req.Driver.BaseDir)}
	opts := req.Driver
	opts.Observer = phase.OnPhase

	start := time.Now()
	res, err := driver.Check(ctx, req.Paths, opts)
	if err != nil {
		emitStage(req.Progress, files, StageLint, StatusError, err, time.Since(start))
		return result, err
	}
	result.Driver = res

	for _, f := range res.Files {
		status := StatusDone
		if f.Bag.HasErrors() {
			status = StatusError
		}
		if f.Cached {
			status = StatusCached
		}
		if req.Progress != nil {
			req.Progress.OnEvent(Event{File: phase.display(f.Path), Stage: StageLint, Status: status, Findings: f.Bag.Len()})
		}
	}
	phase.record(&result.Timings)
	emitStage(req.Progress, nil, StageLint, StatusDone, nil, time.Since(start))
	return result, nil
}

// FixRequest configures a fix run: a check followed by applying suggestions.
type FixRequest struct {
	Check CheckRequest
	Apply fix.ApplyOptions
}

// FixResult holds the check that produced the fixes and what was applied.
type FixResult struct {
	CheckResult
	Applied *fix.ApplyResult
}

// Fix checks the requested files and applies the selected suggestions to
// disk. fix.ErrNoFixes is returned when nothing applied.
func Fix(ctx context.Context, req *FixRequest) (FixResult, error) {
	var result FixResult
	if req == nil {
		return result, errors.New("missing fix request")
	}
	checked, err := Check(ctx, &req.Check)
	result.CheckResult = checked
	if err != nil {
		return result, err
	}

	emitStage(req.Check.Progress, nil, StageFix, StatusWorking, nil, 0)
	start := time.Now()
	applied, err := fix.Apply(checked.Driver.FileSet, checked.Driver.Bag.Items(), req.Apply)
	result.Applied = applied
	result.Timings.Set(StageFix, time.Since(start))
	if err != nil && !errors.Is(err, fix.ErrNoFixes) {
		err = fmt.Errorf("apply fixes: %w", err)
		emitStage(req.Check.Progress, nil, StageFix, StatusError, err, time.Since(start))
		return result, err
	}
	emitStage(req.Check.Progress, nil, StageFix, StatusDone, nil, time.Since(start))
	return result, err
}

// phaseObserver bridges driver phase events to progress events. Driver
// workers call it concurrently.
type phaseObserver struct {
	sink ProgressSink
	base string

	mu    sync.Mutex
	total map[Stage]time.Duration
}

// OnPhase updates the progress UI based on driver phase events.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	if p == nil {
		return
	}
	stage := stageOf(ev.Name)
	if ev.Status == driver.PhaseEnd {
		p.mu.Lock()
		if p.total == nil {
			p.total = make(map[Stage]time.Duration)
		}
		p.total[stage] += ev.Elapsed
		p.mu.Unlock()
	}
	if p.sink == nil || ev.Status != driver.PhaseStart {
		return
	}
	if ev.File == "" {
		p.sink.OnEvent(Event{Stage: stage, Status: StatusWorking})
		return
	}
	p.sink.OnEvent(Event{File: p.display(ev.File), Stage: stage, Status: StatusWorking})
}

func (p *phaseObserver) display(path string) string {
	return displayPath(path, p.base)
}

func (p *phaseObserver) record(t *Timings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for stage, dur := range p.total {
		t.Set(stage, dur)
	}
}

func stageOf(phase string) Stage {
	switch phase {
	case driver.PhaseLoad:
		return StageLoad
	case driver.PhaseParse:
		return StageParse
	default:
		return StageLint
	}
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageLoad, Status: StatusQueued})
	}
}

func emitStage(sink ProgressSink, files []string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	}
}
