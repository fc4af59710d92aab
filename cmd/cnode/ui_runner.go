package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cbridge/internal/driver"
	"cbridge/internal/ui"
)

type parseOutcome struct {
	results []*driver.ParseResult
	err     error
}

// parseAllWithUI runs driver.ParseAll while a Bubble Tea program renders
// its progress events. The program ends when ParseAll closes the channel.
func parseAllWithUI(ctx context.Context, title string, files []string, opts driver.Options, batch driver.BatchOptions) ([]*driver.ParseResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan parseOutcome, 1)

	go func() {
		batch.Sink = driver.ChannelSink{Ch: events}
		res, err := driver.ParseAll(ctx, files, opts, batch)
		outcomeCh <- parseOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// программа больше не читает канал; дочитываем, чтобы воркеры не встали
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil && ctx.Err() == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
