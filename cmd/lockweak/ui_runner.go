package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lockweak/internal/driver"
	"lockweak/internal/ui"
)

type expandOutcome struct {
	result *driver.Result
	err    error
}

// runExpandDirWithUI runs ExpandDir in the background and renders its events.
func runExpandDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan expandOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.ExpandDir(ctx, dir, optsCopy)
		outcomeCh <- expandOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// после Quit (или Ctrl+C) модель канал не читает, дочитываем сами, иначе воркеры встанут
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
