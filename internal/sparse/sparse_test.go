package sparse

import "testing"

func TestSetBasic(t *testing.T) {
	s := New(8)

	if !s.IsEmpty() {
		t.Error("new set should be empty")
	}
	if s.Contains(0) {
		t.Error("empty set should not contain 0")
	}

	s.Insert(5)
	if !s.Contains(5) {
		t.Error("set should contain 5 after insert")
	}
	s.Insert(5) // duplicate is a no-op
	if s.Size() != 1 {
		t.Errorf("size should be 1, got %d", s.Size())
	}

	s.Insert(10)
	s.Insert(3)
	s.Insert(7)
	if s.Size() != 4 {
		t.Errorf("size should be 4, got %d", s.Size())
	}

	s.Clear()
	if !s.IsEmpty() || s.Contains(5) {
		t.Error("clear should empty the set")
	}
}

func TestSetGrowsBeyondInitialCapacity(t *testing.T) {
	s := New(2)
	s.Insert(100)
	if !s.Contains(100) {
		t.Error("set should grow to accommodate large values")
	}
	if s.Contains(99) {
		t.Error("unrelated value should not be reported as contained")
	}
}

func TestSetRemove(t *testing.T) {
	s := New(16)
	for _, v := range []uint32{1, 2, 3, 4, 5} {
		s.Insert(v)
	}
	s.Remove(3)
	if s.Contains(3) {
		t.Error("3 should have been removed")
	}
	if s.Size() != 4 {
		t.Errorf("size should be 4 after remove, got %d", s.Size())
	}
	for _, v := range []uint32{1, 2, 4, 5} {
		if !s.Contains(v) {
			t.Errorf("%d should still be present after removing 3", v)
		}
	}

	s.Remove(999) // removing an absent value is a no-op
	if s.Size() != 4 {
		t.Errorf("removing an absent value should not change size, got %d", s.Size())
	}
}

func TestSetSortedIsDeterministic(t *testing.T) {
	s := New(16)
	for _, v := range []uint32{9, 1, 5, 3, 7} {
		s.Insert(v)
	}
	want := []uint32{1, 3, 5, 7, 9}
	got := s.Sorted()
	if len(got) != len(want) {
		t.Fatalf("Sorted() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sorted() = %v, want %v", got, want)
		}
	}

	// Cache must be invalidated by mutation.
	s.Remove(5)
	got = s.Sorted()
	want = []uint32{1, 3, 7, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sorted() after Remove = %v, want %v", got, want)
		}
	}
}

func TestSetIter(t *testing.T) {
	s := New(16)
	for _, v := range []uint32{2, 4, 6} {
		s.Insert(v)
	}
	seen := map[uint32]bool{}
	s.Iter(func(v uint32) { seen[v] = true })
	for _, v := range []uint32{2, 4, 6} {
		if !seen[v] {
			t.Errorf("Iter missed value %d", v)
		}
	}
	if len(seen) != 3 {
		t.Errorf("Iter visited %d values, want 3", len(seen))
	}
}
