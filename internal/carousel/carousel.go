// Package carousel exposes a fixed-size sliding window over an ordered list,
// paged one item at a time.
//
// Paging saturates at both ends: Advance stops once the last item is inside
// the window, Retreat stops at the first item. Neither is an error.
package carousel

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrInvalidConfiguration is returned by New for a non-positive window size.
var ErrInvalidConfiguration = errors.New("invalid carousel configuration")

// View is a snapshot of the carousel used by view layers.
type View[T any] struct {
	Items      []T
	Start      int
	Total      int
	WindowSize int
	CanAdvance bool
	CanRetreat bool
}

// Carousel is safe for concurrent use.
type Carousel[T any] struct {
	mu    sync.Mutex
	items []T
	size  int
	start int

	subs   []subscriber[T]
	nextID int
}

type subscriber[T any] struct {
	id int
	fn func(View[T])
}

// New returns a carousel showing items[0:windowSize].
func New[T any](items []T, windowSize int) (*Carousel[T], error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidConfiguration, windowSize)
	}
	return &Carousel[T]{
		items: slices.Clone(items),
		size:  windowSize,
	}, nil
}

// Window returns the visible items, clipped at the end of the list.
func (c *Carousel[T]) Window() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.windowLocked()
}

// Advance moves the window forward by one item if the last item is not yet
// visible. It reports whether the window moved.
func (c *Carousel[T]) Advance() bool {
	c.mu.Lock()
	if !c.canAdvanceLocked() {
		c.mu.Unlock()
		return false
	}
	c.start++
	c.notifyUnlock()
	return true
}

// Retreat moves the window back by one item unless it is at the start. It
// reports whether the window moved.
func (c *Carousel[T]) Retreat() bool {
	c.mu.Lock()
	if !c.canRetreatLocked() {
		c.mu.Unlock()
		return false
	}
	c.start--
	c.notifyUnlock()
	return true
}

func (c *Carousel[T]) CanAdvance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canAdvanceLocked()
}

func (c *Carousel[T]) CanRetreat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canRetreatLocked()
}

// Start is the index of the first visible item.
func (c *Carousel[T]) Start() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.start
}

func (c *Carousel[T]) Len() int {
	return len(c.items)
}

func (c *Carousel[T]) WindowSize() int {
	return c.size
}

func (c *Carousel[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Subscribe registers fn to be called with the new view each time the window
// moves. Calls happen outside the carousel lock.
func (c *Carousel[T]) Subscribe(fn func(View[T])) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.subs = slices.DeleteFunc(c.subs, func(s subscriber[T]) bool { return s.id == id })
	}
}

func (c *Carousel[T]) canAdvanceLocked() bool {
	return c.start+c.size < len(c.items)
}

func (c *Carousel[T]) canRetreatLocked() bool {
	return c.start > 0
}

func (c *Carousel[T]) windowLocked() []T {
	end := min(c.start+c.size, len(c.items))
	return slices.Clone(c.items[c.start:end])
}

func (c *Carousel[T]) viewLocked() View[T] {
	return View[T]{
		Items:      c.windowLocked(),
		Start:      c.start,
		Total:      len(c.items),
		WindowSize: c.size,
		CanAdvance: c.canAdvanceLocked(),
		CanRetreat: c.canRetreatLocked(),
	}
}

// notifyUnlock snapshots the view and subscribers, releases the lock and
// then calls the subscribers.
func (c *Carousel[T]) notifyUnlock() {
	view := c.viewLocked()
	subs := slices.Clone(c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(view)
	}
}
