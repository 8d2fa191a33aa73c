package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rillint/internal/pipeline"
	"rillint/internal/ui"
)

type checkOutcome struct {
	result pipeline.CheckResult
	err    error
}

type fixOutcome struct {
	result pipeline.FixResult
	err    error
}

func runCheckWithUI(ctx context.Context, title string, files []string, req *pipeline.CheckRequest) (pipeline.CheckResult, error) {
	if req == nil {
		return pipeline.CheckResult{}, fmt.Errorf("missing check request")
	}
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.Check(ctx, &reqCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := runProgress(title, files, events)
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

func runFixWithUI(ctx context.Context, title string, files []string, req *pipeline.FixRequest) (pipeline.FixResult, error) {
	if req == nil {
		return pipeline.FixResult{}, fmt.Errorf("missing fix request")
	}
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan fixOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Check.Progress = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.Fix(ctx, &reqCopy)
		outcomeCh <- fixOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := runProgress(title, files, events)
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

// runProgress shows the progress model until events is closed. Events left
// after the user quits are drained so the producer never blocks.
func runProgress(title string, files []string, events chan pipeline.Event) error {
	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, err := program.Run()
	for range events {
	}
	return err
}
