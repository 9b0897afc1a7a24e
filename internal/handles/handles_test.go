package handles

import (
	"errors"
	"sync"
	"testing"
)

func TestRegisterAndLookup(t *testing.T) {
	type testData struct {
		Name  string
		Value int
	}

	tbl := NewTable[*testData]()
	data := &testData{Name: "test", Value: 42}
	id, err := tbl.Register(data)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if id == 0 {
		t.Error("Register should return non-zero id")
	}

	got, ok := tbl.Lookup(id)
	if !ok {
		t.Fatal("Lookup should find the registered value")
	}
	if got.Name != "test" || got.Value != 42 {
		t.Errorf("Lookup returned wrong data: %+v", got)
	}
}

func TestUnregister(t *testing.T) {
	tbl := NewTable[string]()
	id, _ := tbl.Register("test string")

	v, ok := tbl.Unregister(id)
	if !ok || v != "test string" {
		t.Errorf("Unregister = (%q, %v), want (test string, true)", v, ok)
	}

	if _, ok := tbl.Lookup(id); ok {
		t.Error("Expected no value after Unregister")
	}

	// Second removal is observed as a miss.
	if _, ok := tbl.Unregister(id); ok {
		t.Error("second Unregister should report false")
	}
}

func TestLookupNonExistent(t *testing.T) {
	tbl := NewTable[int]()
	if _, ok := tbl.Lookup(999999); ok {
		t.Error("Lookup of non-existent id should miss")
	}
}

func TestCloseDrainsAndRejects(t *testing.T) {
	tbl := NewTable[int]()
	for i := 0; i < 5; i++ {
		if _, err := tbl.Register(i); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	drained := tbl.Close()
	if len(drained) != 5 {
		t.Errorf("Close returned %d entries, want 5", len(drained))
	}
	if tbl.Count() != 0 {
		t.Errorf("Count after Close = %d, want 0", tbl.Count())
	}
	if !tbl.Closed() {
		t.Error("Closed should be true after Close")
	}

	if _, err := tbl.Register(6); !errors.Is(err, ErrClosed) {
		t.Errorf("Register after Close error = %v, want ErrClosed", err)
	}
	if again := tbl.Close(); again != nil {
		t.Errorf("second Close returned %v, want nil", again)
	}
}

func TestPrune(t *testing.T) {
	tbl := NewTable[int]()
	for i := 0; i < 10; i++ {
		tbl.Register(i)
	}

	n := tbl.Prune(func(v int) bool { return v%2 == 0 })
	if n != 5 {
		t.Errorf("Prune removed %d, want 5", n)
	}
	if tbl.Count() != 5 {
		t.Errorf("Count after Prune = %d, want 5", tbl.Count())
	}
}

func TestConcurrentAccess(t *testing.T) {
	const numGoroutines = 100
	const numOps = 100

	tbl := NewTable[*struct{ ID, Seq int }]()

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOps; j++ {
				data := &struct{ ID, Seq int }{id, j}
				h, err := tbl.Register(data)
				if err != nil {
					t.Errorf("Register failed: %v", err)
					return
				}
				if _, ok := tbl.Lookup(h); !ok {
					t.Errorf("Lookup missed id %d", h)
				}
				tbl.Unregister(h)
			}
		}(i)
	}

	wg.Wait()

	if tbl.Count() != 0 {
		t.Errorf("Count = %d after all unregistered, want 0", tbl.Count())
	}
}

func TestIDsAreUnique(t *testing.T) {
	tbl := NewTable[int]()
	ids := make(map[uintptr]bool)

	for i := 0; i < 1000; i++ {
		h, _ := tbl.Register(i)
		if ids[h] {
			t.Errorf("id %d was returned twice", h)
		}
		ids[h] = true
	}
}
