package runtime

import "testing"

func TestQueuePushPopFIFO(t *testing.T) {
	q := NewQueue[int](4)
	for i := 1; i <= 3; i++ {
		if !q.Push(i) {
			t.Fatalf("push %d failed", i)
		}
	}
	for i := 1; i <= 3; i++ {
		v, ok := q.Pop()
		if !ok || v != i {
			t.Fatalf("pop: got (%v, %v), want (%d, true)", v, ok, i)
		}
	}
}

func TestQueuePushFailsWhenFull(t *testing.T) {
	q := NewQueue[int](2)
	if !q.Push(1) || !q.Push(2) {
		t.Fatal("expected first two pushes to succeed")
	}
	if q.Push(3) {
		t.Fatal("expected push into full queue to fail")
	}
}

func TestQueuePopFalseWhenEmpty(t *testing.T) {
	q := NewQueue[int](2)
	if _, ok := q.Pop(); ok {
		t.Fatal("expected pop from empty queue to report false")
	}
}

func TestQueueLenTracksOccupancy(t *testing.T) {
	q := NewQueue[int](4)
	q.Push(1)
	q.Push(2)
	if got := q.Len(); got != 2 {
		t.Fatalf("got len %d, want 2", got)
	}
	q.Pop()
	if got := q.Len(); got != 1 {
		t.Fatalf("got len %d, want 1", got)
	}
}

func TestQueueWrapsAroundRingBuffer(t *testing.T) {
	q := NewQueue[int](3)
	q.Push(1)
	q.Push(2)
	q.Pop()
	q.Push(3)
	q.Push(4)
	for _, want := range []int{2, 3, 4} {
		v, ok := q.Pop()
		if !ok || v != want {
			t.Fatalf("got (%v, %v), want (%d, true)", v, ok, want)
		}
	}
}
