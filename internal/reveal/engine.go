// Package reveal implements the typewriter effect: a fixed text revealed
// one character at a time on a timer, after an optional start delay.
//
// A character is a grapheme cluster, so "é" written as e + combining accent
// or a flag emoji is revealed as a single unit.
package reveal

import (
	"sync"
	"time"

	"github.com/rivo/uniseg"

	"github.com/garrett-1/portfolio/internal/platform/clock"
)

// DefaultInterval is the pause between two revealed characters.
const DefaultInterval = 50 * time.Millisecond

// State is the lifecycle position of an Engine.
type State int

const (
	// Pending means the start delay has not elapsed yet.
	Pending State = iota
	// Revealing means at least one tick ran and characters remain.
	Revealing
	// Done means the whole text is revealed. Terminal.
	Done
	// Cancelled means Cancel was called before Done. Terminal and inert.
	Cancelled
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Revealing:
		return "revealing"
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Event is the observable output of a tick.
type Event struct {
	// Text is the revealed prefix of the source.
	Text     string
	Revealed int
	Total    int
	// Done is set on the event that completes the reveal.
	Done bool
}

// Option configures an Engine at Start.
type Option func(*Engine)

// WithInterval overrides DefaultInterval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithScheduler sets the timer source. Defaults to clock.System.
func WithScheduler(s clock.Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.sched = s
		}
	}
}

// WithObserver registers fn before the first event can be emitted.
func WithObserver(fn func(Event)) Option {
	return func(e *Engine) {
		e.addObserverLocked(fn)
	}
}

type observer struct {
	id int
	fn func(Event)
}

// Engine reveals one source text. It is never reset; start a new Engine for
// a new text.
//
// Observers are called with the engine locked, in registration order. They
// must not call back into the same Engine.
type Engine struct {
	mu       sync.Mutex
	source   string
	ends     []int // byte offset just past each grapheme cluster
	revealed int
	delay    time.Duration
	interval time.Duration
	sched    clock.Scheduler
	timer    clock.Timer
	state    State

	observers []observer
	nextID    int
	done      chan struct{}
}

// Start creates an Engine for source and schedules its first tick after
// delay. A negative delay is treated as zero. An empty source is Done
// immediately and emits a single terminal event.
func Start(source string, delay time.Duration, opts ...Option) *Engine {
	e := &Engine{
		source:   source,
		ends:     boundaries(source),
		delay:    max(delay, 0),
		interval: DefaultInterval,
		sched:    clock.System{},
		done:     make(chan struct{}),
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, opt := range opts {
		opt(e)
	}

	if len(e.ends) == 0 {
		e.finishLocked(Event{Done: true})
		return e
	}

	e.timer = e.sched.AfterFunc(e.delay, e.fire)
	return e
}

// Units returns how many reveal units text has; a started Engine emits
// exactly that many events (one, for an empty text).
func Units(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// Tick reveals the next character. It reports whether state changed; ticks
// on a Done or Cancelled engine are no-ops.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickLocked()
}

// Cancel stops the engine. Once it returns no tick mutates state or emits,
// including a timer callback that was already in flight. Safe to call any
// number of times, and on a Done engine.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTimerLocked()
	if e.state == Done || e.state == Cancelled {
		return
	}
	e.state = Cancelled
	close(e.done)
}

// Subscribe registers fn for subsequent events and returns a function that
// removes it.
func (e *Engine) Subscribe(fn func(Event)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.addObserverLocked(fn)

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, o := range e.observers {
			if o.id == id {
				e.observers = append(e.observers[:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

// Done is closed once the engine is Done or Cancelled.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Text is the revealed prefix, empty before the first tick.
func (e *Engine) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.textLocked()
}

// Revealed counts the units shown so far. It never decreases.
func (e *Engine) Revealed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revealed
}

// Len is the number of reveal units in the source.
func (e *Engine) Len() int {
	return len(e.ends)
}

// Source is the full text being revealed.
func (e *Engine) Source() string {
	return e.source
}

// Delay is the wait before the first tick, clamped to zero.
func (e *Engine) Delay() time.Duration {
	return e.delay
}

// State reports where the engine is in its lifecycle.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// fire is the scheduled callback. It ticks and, while characters remain,
// schedules the next tick.
func (e *Engine) fire() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.timer = nil
	if !e.tickLocked() {
		return
	}
	if e.state == Revealing {
		e.timer = e.sched.AfterFunc(e.interval, e.fire)
	}
}

func (e *Engine) tickLocked() bool {
	if e.state == Done || e.state == Cancelled {
		return false
	}

	e.state = Revealing
	e.revealed++
	ev := Event{
		Text:     e.textLocked(),
		Revealed: e.revealed,
		Total:    len(e.ends),
	}
	if e.revealed < len(e.ends) {
		e.notifyLocked(ev)
		return true
	}

	e.stopTimerLocked()
	ev.Done = true
	e.finishLocked(ev)
	return true
}

// finishLocked emits the terminal event before closing done, so a reader
// woken by Done has already seen every event.
func (e *Engine) finishLocked(ev Event) {
	e.state = Done
	e.notifyLocked(ev)
	close(e.done)
}

func (e *Engine) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) textLocked() string {
	if e.revealed == 0 {
		return ""
	}
	return e.source[:e.ends[e.revealed-1]]
}

func (e *Engine) addObserverLocked(fn func(Event)) int {
	e.nextID++
	e.observers = append(e.observers, observer{id: e.nextID, fn: fn})
	return e.nextID
}

func (e *Engine) notifyLocked(ev Event) {
	for _, o := range e.observers {
		o.fn(ev)
	}
}

func boundaries(s string) []int {
	var ends []int
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		_, to := g.Positions()
		ends = append(ends, to)
	}
	return ends
}
