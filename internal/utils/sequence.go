package utils

import "sync"

// Sequence hands out monotonically increasing request tokens so a view can
// drop responses that were overtaken by a newer request, or that arrive after
// the view was closed.
type Sequence struct {
	mu      sync.Mutex
	current uint64
	closed  bool
}

// Begin starts a new request and invalidates every earlier one.
func (s *Sequence) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current++
	return s.current
}

// IsCurrent reports whether the response for token may still be applied.
func (s *Sequence) IsCurrent(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && token == s.current
}

// Apply runs fn only if token is still current. The check and fn run under
// the same lock, so a concurrent Begin cannot slip in between.
func (s *Sequence) Apply(token uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || token != s.current {
		return false
	}
	fn()
	return true
}

// Close discards everything in flight; later Begin calls stay stale.
func (s *Sequence) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
