package collection

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestDeque_FIFO(t *testing.T) {
	d := New[string](0)
	d.PushBack("a")
	d.PushBack("b")
	d.PushBack("c")

	if d.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", d.Len())
	}
	if v, ok := d.PeekFront(); !ok || v != "a" {
		t.Fatalf("PeekFront: got %q %v", v, ok)
	}
	if d.Len() != 3 {
		t.Fatalf("PeekFront must not consume, Len=%d", d.Len())
	}
	for _, want := range []string{"a", "b", "c"} {
		v, ok := d.PopFront()
		if !ok || v != want {
			t.Fatalf("PopFront: got %q %v, want %q", v, ok, want)
		}
	}
	if _, ok := d.PopFront(); ok {
		t.Fatal("PopFront on empty deque should report false")
	}
	if _, ok := d.PeekFront(); ok {
		t.Fatal("PeekFront on empty deque should report false")
	}
}

func TestDeque_ZeroValueAndNil(t *testing.T) {
	var d Deque[int]
	d.PushBack(1)
	if v, _ := d.PopFront(); v != 1 {
		t.Fatalf("zero value deque: got %d", v)
	}

	var nilDeque *Deque[int]
	if nilDeque.Len() != 0 {
		t.Error("nil deque Len should be 0")
	}
	if _, ok := nilDeque.PeekFront(); ok {
		t.Error("nil deque PeekFront should report false")
	}
	if len(nilDeque.Slice()) != 0 {
		t.Error("nil deque Slice should be empty")
	}
}

func TestDeque_InterleavedCompaction(t *testing.T) {
	d := New[int](4)
	var pushed []int
	for round := 0; round < 200; round++ {
		d.PushBack(round)
		d.PushBack(round + 1000)
		pushed = append(pushed, round, round+1000)

		v, ok := d.PopFront()
		if !ok || v != pushed[round] {
			t.Fatalf("PopFront round %d: got %d %v, want %d", round, v, ok, pushed[round])
		}
	}
	if d.Len() != 200 {
		t.Fatalf("Len: got %d, want 200", d.Len())
	}
	if got := d.Slice(); !slices.Equal(got, pushed[200:]) {
		t.Fatalf("remaining order broken after compaction: %v", got[:10])
	}
}

func TestDeque_AllAndSlice(t *testing.T) {
	d := From(1, 2, 3)
	d.PopFront()

	var seen []int
	for v := range d.All() {
		seen = append(seen, v)
	}
	if !slices.Equal(seen, []int{2, 3}) {
		t.Fatalf("All: got %v", seen)
	}
	s := d.Slice()
	s[0] = 99
	if v, _ := d.PeekFront(); v != 2 {
		t.Fatal("Slice must return a copy")
	}
}

func TestDeque_MarshalJSON(t *testing.T) {
	d := From("x", "y")
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["x","y"]` {
		t.Fatalf("json: got %s", data)
	}
	empty, _ := json.Marshal(New[string](0))
	if string(empty) != `[]` {
		t.Fatalf("empty json: got %s", empty)
	}
}
