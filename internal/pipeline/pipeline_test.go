package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"go.followtheprocess.codes/test"
	"go.uber.org/goleak"

	"rillint/internal/driver"
	"rillint/internal/fix"
	"rillint/internal/lint/checks"
	"rillint/internal/pipeline"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu     sync.Mutex
	events []pipeline.Event
}

func (r *recorder) OnEvent(ev pipeline.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) final(file string) (pipeline.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].File == file {
			return r.events[i], true
		}
	}
	return pipeline.Event{}, false
}

const boolSrc = "fn f(a: bool) {\n    if a == true {}\n}\n"

func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	test.Ok(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	test.Ok(t, os.WriteFile(filepath.Join(dir, "src", "a.rl"), []byte(boolSrc), 0o644))
	test.Ok(t, os.WriteFile(filepath.Join(dir, "src", "b.rl"), []byte("fn g( {\n"), 0o644))
	return dir
}

func TestNormalizeProgressFiles(t *testing.T) {
	got := pipeline.NormalizeProgressFiles([]string{"/p/src/b.rl", "/p/src/a.rl", "/p/src/a.rl", ""}, "/p")
	test.EqualFunc(t, got, []string{"src/a.rl", "src/b.rl"}, slices.Equal)
}

func TestCheckProgress(t *testing.T) {
	dir := project(t)
	rec := &recorder{}
	req := &pipeline.CheckRequest{
		Paths:    []string{dir},
		Driver:   driver.Options{Registry: checks.Registry(), BaseDir: dir},
		Progress: rec,
	}

	res, err := pipeline.Check(context.Background(), req)
	test.Ok(t, err)
	test.EqualFunc(t, res.Files, []string{"src/a.rl", "src/b.rl"}, slices.Equal)

	ev, ok := rec.final("src/a.rl")
	test.True(t, ok)
	test.Equal(t, ev.Status, pipeline.StatusDone)
	test.Equal(t, ev.Findings, 1)

	ev, ok = rec.final("src/b.rl")
	test.True(t, ok)
	test.Equal(t, ev.Status, pipeline.StatusError)

	test.True(t, res.Timings.Has(pipeline.StageParse))
	test.True(t, res.Timings.Has(pipeline.StageLint))
}

func TestCheckMissingRequest(t *testing.T) {
	_, err := pipeline.Check(context.Background(), nil)
	test.Err(t, err)
	_, err = pipeline.Check(context.Background(), &pipeline.CheckRequest{})
	test.Err(t, err)
}

func TestFixWritesFiles(t *testing.T) {
	dir := project(t)
	req := &pipeline.FixRequest{
		Check: pipeline.CheckRequest{
			Paths:  []string{filepath.Join(dir, "src", "a.rl")},
			Driver: driver.Options{Registry: checks.Registry()},
		},
		Apply: fix.ApplyOptions{Mode: fix.ApplyModeAll},
	}

	res, err := pipeline.Fix(context.Background(), req)
	test.Ok(t, err)
	test.Equal(t, len(res.Applied.Applied), 1)
	test.True(t, res.Timings.Has(pipeline.StageFix))

	got, err := os.ReadFile(filepath.Join(dir, "src", "a.rl"))
	test.Ok(t, err)
	test.Equal(t, string(got), "fn f(a: bool) {\n    if a {}\n}\n")

	// второй прогон: чинить нечего
	_, err = pipeline.Fix(context.Background(), req)
	test.True(t, errors.Is(err, fix.ErrNoFixes), test.Context("got %v", err))
}
