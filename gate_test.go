//go:build !ios && !android && (amd64 || arm64)

package z3go

import (
	"testing"
	"time"
)

func newGate() *gate {
	g := &gate{}
	g.init()
	return g
}

func TestGateCloseWaitsForCalls(t *testing.T) {
	g := newGate()
	if !g.enter() {
		t.Fatal("enter on open gate failed")
	}

	done := make(chan bool)
	go func() { done <- g.close() }()

	for !g.isClosed() {
		time.Sleep(time.Millisecond)
	}
	if g.enter() {
		t.Fatal("enter succeeded after close began")
	}
	if !g.enterDraining() {
		t.Fatal("enterDraining refused while close was draining")
	}
	g.leave()

	select {
	case <-done:
		t.Fatal("close returned with a call in flight")
	case <-time.After(10 * time.Millisecond):
	}

	g.leave()
	select {
	case first := <-done:
		if !first {
			t.Error("first close reported false")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("close did not return after the last call left")
	}

	if g.enterDraining() {
		t.Error("enterDraining succeeded after close finished")
	}
	if g.close() {
		t.Error("second close reported true")
	}
}
