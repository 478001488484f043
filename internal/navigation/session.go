// Package navigation tracks the per-session UI state of a docs reader: the
// mobile sidebar, the search overlay and the search query.
package navigation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrAlreadyMounted is returned when Mount is called on a session whose
// key listener is still attached.
var ErrAlreadyMounted = errors.New("navigation session already mounted")

// KeyEvent is a key press delivered to the session. When Applied is set,
// the listener closes it once the event has been handled.
type KeyEvent struct {
	Key     string
	Meta    bool
	Ctrl    bool
	Applied chan struct{}
}

const (
	searchKey = "k"
	escapeKey = "Escape"
)

// State is a point-in-time copy of the session state.
type State struct {
	Path        string `json:"path"`
	SidebarOpen bool   `json:"sidebar_open"`
	SearchOpen  bool   `json:"search_open"`
	Query       string `json:"query"`
}

// Session holds navigation state for one reader. All methods are safe for
// concurrent use.
type Session struct {
	mu     sync.Mutex
	state  State
	logger *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession creates a closed session. A nil logger discards output.
func NewSession(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{logger: logger}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HandleKey applies a key press. Modifier+K toggles the search overlay and
// Escape closes it. Reports whether the event changed anything it listens for.
func (s *Session) HandleKey(ev KeyEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case (ev.Meta || ev.Ctrl) && ev.Key == searchKey:
		s.state.SearchOpen = !s.state.SearchOpen
		return true
	case ev.Key == escapeKey:
		s.state.SearchOpen = false
		return true
	}
	return false
}

// Navigate records a route change. It always closes the sidebar and the
// search overlay; the query text is kept.
func (s *Session) Navigate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Path = path
	s.state.SidebarOpen = false
	s.state.SearchOpen = false
}

// ToggleSidebar flips the mobile sidebar.
func (s *Session) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SidebarOpen = !s.state.SidebarOpen
}

// SetSidebarOpen opens or closes the mobile sidebar.
func (s *Session) SetSidebarOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SidebarOpen = open
}

// SetSearchOpen opens or closes the search overlay.
func (s *Session) SetSearchOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SearchOpen = open
}

// SetQuery replaces the search query text.
func (s *Session) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query = q
}

// Mounted reports whether a key listener is attached.
func (s *Session) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done != nil
}

// Mount attaches the single key listener, feeding events to HandleKey until
// ctx is done, events is closed or Unmount is called. A listener whose
// channel closes stays mounted until Unmount.
func (s *Session) Mount(ctx context.Context, events <-chan KeyEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != nil {
		return ErrAlreadyMounted
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go s.listen(ctx, events, done)

	s.logger.Debug("Navigation listener mounted")
	return nil
}

// Unmount detaches the key listener and waits for it to exit. It is a no-op
// when nothing is mounted.
func (s *Session) Unmount() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
	s.logger.Debug("Navigation listener unmounted")
}

func (s *Session) listen(ctx context.Context, events <-chan KeyEvent, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.HandleKey(ev)
			if ev.Applied != nil {
				close(ev.Applied)
			}
		}
	}
}
