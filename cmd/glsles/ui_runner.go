package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"glsles/internal/driver"
	"glsles/internal/ui"
)

type dirOutcome struct {
	report *driver.DirReport
	err    error
}

// analyzeDirWithUI runs AnalyzeDir while a Bubble Tea program renders its
// progress events on stderr.
func analyzeDirWithUI(ctx context.Context, title string, dirs []string, opts driver.DirOptions) (*driver.DirReport, error) {
	files, err := driver.ListShaderFiles(dirs, opts.Extensions)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		report, err := driver.AnalyzeDir(ctx, dirs, optsCopy)
		outcomeCh <- dirOutcome{report: report, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// программа могла выйти по ctrl+c раньше: дочитываем события, чтобы горутина не встала
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
