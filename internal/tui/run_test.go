package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrett-1/portfolio/internal/platform/clock"
	"github.com/garrett-1/portfolio/internal/portfolio"
)

func TestRunCancelsEnginesOnQuit(t *testing.T) {
	content := testContent()
	// An empty line emits at Start, before the event loop reads messages.
	content.Profile.Headline = append(content.Profile.Headline, portfolio.Line{Text: ""})
	sched := clock.NewManual(time.Unix(0, 0))

	errc := make(chan error, 1)
	go func() {
		errc <- Run(context.Background(), content, Options{
			Window:    3,
			Scheduler: sched,
			ProgramOptions: []tea.ProgramOption{
				tea.WithInput(strings.NewReader("q")),
				tea.WithOutput(io.Discard),
				tea.WithoutRenderer(),
			},
		})
	}()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
	assert.Equal(t, 0, sched.Pending())
}

func TestRunRejectsBadWindow(t *testing.T) {
	err := Run(context.Background(), testContent(), Options{Window: 0})
	assert.Error(t, err)
}
