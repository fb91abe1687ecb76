package web

import "sync"

// NavRecorder captures the session manager's navigation side effects so the
// handler that triggered the transition can issue the matching HTTP redirect.
type NavRecorder struct {
	mu     sync.Mutex
	target string
}

func NewNavRecorder() *NavRecorder {
	return &NavRecorder{}
}

// Navigate satisfies session.Navigator.
func (n *NavRecorder) Navigate(target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.target = target
}

// Consume returns the last recorded target, or fallback when none was
// recorded, and resets the recorder.
func (n *NavRecorder) Consume(fallback string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	t := n.target
	n.target = ""
	if t == "" {
		return fallback
	}
	return t
}
