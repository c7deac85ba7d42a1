package edit

import "sync"

// Guard is the system-wide edit-mode lock. It is held while a paragraph edit
// session is anywhere outside the idle state; navigation, tab-mode and
// highlight-mode collaborators check it and refuse their own transitions
// while it is held.
type Guard struct {
	mu     sync.Mutex
	locked bool
	reason string
}

func NewGuard() *Guard {
	return &Guard{}
}

// Locked reports whether the guard is held, and why.
func (g *Guard) Locked() (bool, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.locked, g.reason
}

// TryLock acquires the guard. It returns false if the guard is already held.
func (g *Guard) TryLock(reason string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.locked {
		return false
	}
	g.locked = true
	g.reason = reason
	return true
}

// Unlock releases the guard.
func (g *Guard) Unlock() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.locked = false
	g.reason = ""
}
