// Package theme holds the light/dark display preference as an explicit
// context object: initialised once, then changed only through Toggle or Set.
package theme

import (
	"fmt"
	"sync"
)

// Mode is a display theme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode returns the mode named by s and whether it is valid.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), true
	}
	return "", false
}

// Context is the theme state shared by the components of one reader.
type Context struct {
	mu          sync.RWMutex
	mode        Mode
	subscribers map[int]func(Mode)
	nextID      int
}

// Init creates a context from a persisted preference, falling back to the
// OS preference when the persisted value is missing or invalid.
func Init(persisted string, prefersDark bool) *Context {
	mode, ok := ParseMode(persisted)
	if !ok {
		mode = Light
		if prefersDark {
			mode = Dark
		}
	}
	return &Context{mode: mode, subscribers: make(map[int]func(Mode))}
}

// Mode returns the current theme.
func (c *Context) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// Toggle flips between light and dark and notifies subscribers.
func (c *Context) Toggle() Mode {
	c.mu.Lock()
	next := Dark
	if c.mode == Dark {
		next = Light
	}
	c.mode = next
	subs := c.snapshotSubscribers()
	c.mu.Unlock()

	notify(subs, next)
	return next
}

// Set switches to mode, notifying subscribers when it changes.
func (c *Context) Set(mode Mode) error {
	if _, ok := ParseMode(string(mode)); !ok {
		return fmt.Errorf("unknown theme %q", mode)
	}

	c.mu.Lock()
	if c.mode == mode {
		c.mu.Unlock()
		return nil
	}
	c.mode = mode
	subs := c.snapshotSubscribers()
	c.mu.Unlock()

	notify(subs, mode)
	return nil
}

// Subscribe registers fn to be called after every change. The returned
// function removes the subscription.
func (c *Context) Subscribe(fn func(Mode)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// snapshotSubscribers must be called with mu held.
func (c *Context) snapshotSubscribers() []func(Mode) {
	subs := make([]func(Mode), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(Mode), mode Mode) {
	for _, fn := range subs {
		fn(mode)
	}
}
