//go:build !ios && !android && (amd64 || arm64)

package z3go

import "sync"

// gate tracks native calls in flight on a session. Entering never blocks on
// a pending close: once close has begun, enter fails at once, so a call made
// from inside another call (a Kind.Check calling Context.Err, say) cannot
// wait on the close that is waiting on it.
type gate struct {
	mu     sync.Mutex
	cond   sync.Cond
	active int
	closed bool // set when close begins
	ended  bool // set once active has drained after close
}

func (g *gate) init() {
	g.cond.L = &g.mu
}

// enter admits a call on an open session.
func (g *gate) enter() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.active++
	return true
}

// enterDraining also admits a call while close is waiting for in-flight
// calls to finish. Interrupt uses it to reach work that close is blocked on.
func (g *gate) enterDraining() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ended {
		return false
	}
	g.active++
	return true
}

func (g *gate) leave() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active--
	if g.active == 0 && g.closed {
		g.cond.Broadcast()
	}
}

func (g *gate) isClosed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}

// close stops new calls and waits for in-flight ones. It reports whether
// this was the first call.
func (g *gate) close() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	first := !g.closed
	g.closed = true
	for g.active > 0 {
		g.cond.Wait()
	}
	g.ended = true
	return first
}
