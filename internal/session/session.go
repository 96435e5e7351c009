// Package session keeps per-page view state: the experience carousel and the
// highlighted navigation section. A session lives as long as the page that
// created it keeps talking to the server; nothing is persisted.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/garrett-1/portfolio/internal/carousel"
	"github.com/garrett-1/portfolio/internal/logging"
	"github.com/garrett-1/portfolio/internal/platform/clock"
	"github.com/garrett-1/portfolio/internal/portfolio"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// ErrUnknownSection is returned by SetSection for names outside
// portfolio.Sections.
var ErrUnknownSection = errors.New("unknown section")

// Session is the state owned by one rendered page.
type Session struct {
	ID string

	experience *carousel.Carousel[portfolio.Experience]

	mu       sync.Mutex
	section  portfolio.Section
	lastSeen time.Time
}

func (s *Session) Advance() bool {
	return s.experience.Advance()
}

func (s *Session) Retreat() bool {
	return s.experience.Retreat()
}

// Experience returns the current carousel view.
func (s *Session) Experience() carousel.View[portfolio.Experience] {
	return s.experience.View()
}

func (s *Session) Section() portfolio.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.section
}

// SetSection marks name as the active navigation section.
func (s *Session) SetSection(name string) error {
	sec, ok := portfolio.ParseSection(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.section = sec
	return nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Store holds live sessions in memory.
type Store struct {
	experiences []portfolio.Experience
	window      int
	ttl         time.Duration
	limit       int
	clock       clock.Clock
	sched       clock.Scheduler
	logger      *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// Option configures the Store.
type Option func(*Store)

// WithClock replaces the system clock. A clock that is also a
// clock.Scheduler paces Run too.
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		s.clock = c
		if sched, ok := c.(clock.Scheduler); ok {
			s.sched = sched
		}
	}
}

// WithLimit caps the number of live sessions. Zero means no cap.
func WithLimit(n int) Option {
	return func(s *Store) {
		s.limit = max(n, 0)
	}
}

// WithLogger configures a logger for eviction events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore returns a Store whose sessions page experiences through a window
// of the given size. Sessions idle for longer than ttl are evicted by Sweep.
func NewStore(experiences []portfolio.Experience, window int, ttl time.Duration, opts ...Option) (*Store, error) {
	if _, err := carousel.New(experiences, window); err != nil {
		return nil, err
	}
	s := &Store{
		experiences: experiences,
		window:      window,
		ttl:         ttl,
		clock:       clock.System{},
		sched:       clock.System{},
		logger:      logging.NewNop(),
		sessions:    make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create starts a session at the first experience window with the home
// section active. A full store first drops expired sessions, then the least
// recently seen one.
func (s *Store) Create() (*Session, error) {
	exp, err := carousel.New(s.experiences, s.window)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	sess := &Session{
		ID:         uuid.NewString(),
		experience: exp,
		section:    portfolio.SectionHome,
		lastSeen:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.limit > 0 && len(s.sessions) >= s.limit {
		s.makeRoomLocked(now)
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns a live session and refreshes its idle timer.
func (s *Store) Get(id string) (*Session, error) {
	now := s.clock.Now()

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok && sess.idleSince(now) > s.ttl {
		delete(s.sessions, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	sess.touch(now)
	return sess, nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts idle sessions and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(now)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, every time.Duration) {
	due := make(chan struct{}, 1)
	wake := func() {
		select {
		case due <- struct{}{}:
		default:
		}
	}

	timer := s.sched.AfterFunc(every, wake)
	defer func() { timer.Stop() }()
	for {
		select {
		case <-ctx.Done():
			return
		case <-due:
			s.Sweep()
			timer = s.sched.AfterFunc(every, wake)
		}
	}
}

func (s *Store) sweepLocked(now time.Time) int {
	removed := 0
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("evicted idle sessions", "count", removed, "remaining", len(s.sessions))
	}
	return removed
}

func (s *Store) makeRoomLocked(now time.Time) {
	s.sweepLocked(now)
	if len(s.sessions) < s.limit {
		return
	}
	var (
		oldestID string
		oldest   time.Duration
	)
	for id, sess := range s.sessions {
		if idle := sess.idleSince(now); oldestID == "" || idle > oldest {
			oldestID, oldest = id, idle
		}
	}
	delete(s.sessions, oldestID)
	s.logger.Debug("session limit reached, evicted least recently seen", "limit", s.limit, "idle", oldest)
}
