package queue

import (
	"sync"
	"testing"
)

// scheduled mirrors how the render loop stages timed commands.
type scheduled struct {
	tick int
	name string
}

func TestQueue_New(t *testing.T) {
	q := New[scheduled]()
	if q == nil {
		t.Fatal("expected non-nil queue")
	}
	if !q.Empty() {
		t.Error("expected empty queue")
	}
	if q.Len() != 0 {
		t.Errorf("expected length 0, got %d", q.Len())
	}
}

func TestQueue_PushAndLen(t *testing.T) {
	q := New[scheduled]()

	q.Push(scheduled{tick: 10, name: "select_stop"})
	if q.Len() != 1 {
		t.Errorf("expected length 1, got %d", q.Len())
	}

	q.Push(scheduled{tick: 20, name: "wheel"}, scheduled{tick: 30, name: "return_overview"})
	if q.Len() != 3 {
		t.Errorf("expected length 3, got %d", q.Len())
	}
}

func TestQueue_Peek(t *testing.T) {
	q := New[scheduled]()

	if _, ok := q.Peek(); ok {
		t.Error("expected no head on empty queue")
	}

	q.Push(scheduled{tick: 10, name: "select_stop"}, scheduled{tick: 20, name: "wheel"})

	head, ok := q.Peek()
	if !ok || head.tick != 10 {
		t.Errorf("expected head {10, select_stop}, got %+v (ok=%v)", head, ok)
	}
	// peeking does not consume
	if q.Len() != 2 {
		t.Errorf("expected length 2 after peek, got %d", q.Len())
	}
	again, _ := q.Peek()
	if again.tick != 10 {
		t.Errorf("expected same head on repeat peek, got %+v", again)
	}
}

func TestQueue_Pop(t *testing.T) {
	q := New[scheduled]()

	if _, ok := q.Pop(); ok {
		t.Error("expected pop on empty queue to report no item")
	}

	q.Push(scheduled{tick: 10, name: "select_stop"}, scheduled{tick: 20, name: "wheel"})

	first, ok := q.Pop()
	if !ok || first.tick != 10 || first.name != "select_stop" {
		t.Errorf("expected {10, select_stop}, got %+v (ok=%v)", first, ok)
	}
	second, ok := q.Pop()
	if !ok || second.tick != 20 {
		t.Errorf("expected {20, wheel}, got %+v (ok=%v)", second, ok)
	}
	if !q.Empty() {
		t.Error("expected empty queue after draining pops")
	}
}

func TestQueue_Drain(t *testing.T) {
	q := New[scheduled]()
	q.Push(
		scheduled{tick: 10, name: "select_stop"},
		scheduled{tick: 20, name: "wheel"},
		scheduled{tick: 30, name: "return_overview"},
	)

	out := q.Drain()

	if len(out) != 3 {
		t.Fatalf("expected 3 items, got %d", len(out))
	}
	if out[0].tick != 10 || out[1].tick != 20 || out[2].tick != 30 {
		t.Errorf("unexpected order: %+v", out)
	}
	if !q.Empty() {
		t.Error("expected empty queue after drain")
	}
}

func TestQueue_ConcurrentPush(t *testing.T) {
	q := New[scheduled]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(tick int) {
			defer wg.Done()
			q.Push(scheduled{tick: tick, name: "wheel"})
		}(i)
	}
	wg.Wait()

	if q.Len() != 100 {
		t.Errorf("expected 100 items, got %d", q.Len())
	}
}

func TestQueue_ConcurrentPop(t *testing.T) {
	q := New[scheduled]()
	for i := 0; i < 100; i++ {
		q.Push(scheduled{tick: i})
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Pop()
		}()
	}
	wg.Wait()

	if q.Len() != 50 {
		t.Errorf("expected 50 items after pops, got %d", q.Len())
	}
}

func TestQueue_ConcurrentDrain(t *testing.T) {
	q := New[scheduled]()
	for i := 0; i < 100; i++ {
		q.Push(scheduled{tick: i})
	}

	var wg sync.WaitGroup
	results := make(chan []scheduled, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- q.Drain()
		}()
	}
	wg.Wait()
	close(results)

	// every item lands in exactly one drain
	total := 0
	for r := range results {
		total += len(r)
	}
	if total != 100 {
		t.Errorf("expected total 100 items, got %d", total)
	}
}

func TestQueue_StringType(t *testing.T) {
	q := New[string]()
	q.Push("pointer_down", "pointer_up")

	first, ok := q.Pop()
	if !ok || first != "pointer_down" {
		t.Errorf("expected 'pointer_down', got '%s' (ok=%v)", first, ok)
	}
}
