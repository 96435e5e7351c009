package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrett-1/portfolio/internal/carousel"
	"github.com/garrett-1/portfolio/internal/platform/clock"
	"github.com/garrett-1/portfolio/internal/portfolio"
)

func experiences(titles ...string) []portfolio.Experience {
	out := make([]portfolio.Experience, 0, len(titles))
	for _, title := range titles {
		out = append(out, portfolio.Experience{Title: title})
	}
	return out
}

func titles(v carousel.View[portfolio.Experience]) []string {
	out := make([]string, 0, len(v.Items))
	for _, exp := range v.Items {
		out = append(out, exp.Title)
	}
	return out
}

func newStore(t *testing.T, m *clock.Manual) *Store {
	t.Helper()
	s, err := NewStore(experiences("A", "B", "C", "D"), 3, time.Minute, WithClock(m))
	require.NoError(t, err)
	return s
}

func TestNewStoreRejectsBadWindow(t *testing.T) {
	_, err := NewStore(experiences("A"), 0, time.Minute)
	assert.ErrorIs(t, err, carousel.ErrInvalidConfiguration)
}

func TestSessionsAreIndependent(t *testing.T) {
	s := newStore(t, clock.NewManual(time.Unix(0, 0)))

	first, err := s.Create()
	require.NoError(t, err)
	second, err := s.Create()
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, s.Len())

	assert.True(t, first.Advance())
	assert.Equal(t, []string{"B", "C", "D"}, titles(first.Experience()))
	assert.Equal(t, []string{"A", "B", "C"}, titles(second.Experience()))

	assert.False(t, first.Advance())
	assert.True(t, first.Retreat())
	assert.False(t, first.Retreat())
}

func TestGet(t *testing.T) {
	s := newStore(t, clock.NewManual(time.Unix(0, 0)))
	sess, err := s.Create()
	require.NoError(t, err)

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSection(t *testing.T) {
	s := newStore(t, clock.NewManual(time.Unix(0, 0)))
	sess, err := s.Create()
	require.NoError(t, err)

	assert.Equal(t, portfolio.SectionHome, sess.Section())
	require.NoError(t, sess.SetSection("projects"))
	assert.Equal(t, portfolio.SectionProjects, sess.Section())

	assert.ErrorIs(t, sess.SetSection("admin"), ErrUnknownSection)
	assert.Equal(t, portfolio.SectionProjects, sess.Section())
}

func TestExpiry(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	s := newStore(t, m)

	idle, err := s.Create()
	require.NoError(t, err)
	active, err := s.Create()
	require.NoError(t, err)

	m.Advance(40 * time.Second)
	_, err = s.Get(active.ID)
	require.NoError(t, err)

	m.Advance(30 * time.Second)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	_, err = s.Get(idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(active.ID)
	assert.NoError(t, err)
}

func TestGetEvictsExpiredSession(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	s := newStore(t, m)
	sess, err := s.Create()
	require.NoError(t, err)

	m.Advance(2 * time.Minute)
	_, err = s.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestRunStopsWithContext(t *testing.T) {
	s := newStore(t, clock.NewManual(time.Unix(0, 0)))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunSweepsExpiredSessions(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	s := newStore(t, m)
	_, err := s.Create()
	require.NoError(t, err)
	m.Advance(2 * time.Minute)
	require.Equal(t, 1, s.Len())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx, time.Second)

	// Run arms its timer asynchronously, so keep the clock moving.
	require.Eventually(t, func() bool {
		m.Advance(time.Second)
		return s.Len() == 0
	}, 5*time.Second, time.Millisecond)
}

func TestLimitEvictsLeastRecentlySeen(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	s, err := NewStore(experiences("A", "B", "C"), 3, time.Minute, WithClock(m), WithLimit(2))
	require.NoError(t, err)

	oldest, err := s.Create()
	require.NoError(t, err)
	m.Advance(time.Second)
	recent, err := s.Create()
	require.NoError(t, err)
	m.Advance(time.Second)

	newest, err := s.Create()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	_, err = s.Get(oldest.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(recent.ID)
	assert.NoError(t, err)
	_, err = s.Get(newest.ID)
	assert.NoError(t, err)
}

func TestLimitPrefersExpiredSessions(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	s, err := NewStore(experiences("A", "B", "C"), 3, time.Minute, WithClock(m), WithLimit(2))
	require.NoError(t, err)

	expired, err := s.Create()
	require.NoError(t, err)
	m.Advance(2 * time.Minute)
	live, err := s.Create()
	require.NoError(t, err)

	_, err = s.Create()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	_, err = s.Get(live.ID)
	assert.NoError(t, err)
	_, err = s.Get(expired.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
