package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/garrett-1/portfolio/internal/platform/clock"
	"github.com/garrett-1/portfolio/internal/portfolio"
	"github.com/garrett-1/portfolio/internal/reveal"
)

type Options struct {
	Window         int
	RevealInterval time.Duration
	Scheduler      clock.Scheduler
	// ProgramOptions are appended to the defaults (context, alt screen).
	ProgramOptions []tea.ProgramOption
}

// Run starts one reveal engine per headline line and blocks until the
// program exits. Engines are cancelled on the way out.
func Run(ctx context.Context, content *portfolio.Content, opts Options) error {
	m, err := New(content, opts.Window)
	if err != nil {
		return err
	}

	progOpts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts.ProgramOptions...)
	p := tea.NewProgram(m, progOpts...)

	// Empty lines emit at Start, and Send blocks until the event loop runs,
	// so engines start beside p.Run.
	started := make(chan []*reveal.Engine, 1)
	go func() {
		started <- startEngines(p, content.Profile.Headline, opts)
	}()

	_, err = p.Run()
	for _, e := range <-started {
		e.Cancel()
	}
	if err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func startEngines(p *tea.Program, lines []portfolio.Line, opts Options) []*reveal.Engine {
	engines := make([]*reveal.Engine, 0, len(lines))
	for i, line := range lines {
		engines = append(engines, reveal.Start(line.Text, line.Delay,
			reveal.WithInterval(opts.RevealInterval),
			reveal.WithScheduler(opts.Scheduler),
			reveal.WithObserver(func(ev reveal.Event) { p.Send(RevealMsg(i, ev)) }),
		))
	}
	return engines
}
