// Package sparse provides a sparse set data structure for efficient
// membership testing and deterministic ordered iteration over the
// small dense state-id spaces used by the dts package.
//
// A sparse set supports O(1) insertion, deletion, and membership
// testing while maintaining a dense list of elements; here it tracks
// live state ids during reachability sweeps and trimming. Set grows
// its backing array on demand, since the learning core's state count
// is not known upfront.
package sparse

// Set is a set of uint32 values that supports O(1) insert/remove/
// contains and deterministic ascending iteration via Sorted.
type Set struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32 // the actual values
	size   uint32
	sorted []uint32 // cache of dense sorted ascending; nil when stale
}

// New creates an empty Set. Capacity is a hint for the initial
// backing array size; Set grows automatically beyond it.
func New(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// grow extends the sparse array so value is addressable.
func (s *Set) grow(value uint32) {
	if value < uint32(len(s.sparse)) {
		return
	}
	next := make([]uint32, value+1)
	copy(next, s.sparse)
	s.sparse = next
}

// Insert adds a value to the set. If the value is already present,
// this is a no-op.
func (s *Set) Insert(value uint32) {
	if s.Contains(value) {
		return
	}
	s.grow(value)
	s.dense = append(s.dense, value)
	s.sparse[value] = s.size
	s.size++
	s.sorted = nil
}

// Contains returns true if the value is in the set.
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Remove removes a value from the set. If the value is not present,
// this is a no-op.
func (s *Set) Remove(value uint32) {
	if !s.Contains(value) {
		return
	}
	idx := s.sparse[value]
	lastValue := s.dense[s.size-1]
	s.dense[idx] = lastValue
	s.sparse[lastValue] = idx
	s.size--
	s.dense = s.dense[:s.size]
	s.sorted = nil
}

// Clear removes all elements from the set in O(1) time.
func (s *Set) Clear() {
	s.size = 0
	s.dense = s.dense[:0]
	s.sorted = nil
}

// Size returns the number of elements in the set.
func (s *Set) Size() int { return int(s.size) }

// IsEmpty returns true if the set contains no elements.
func (s *Set) IsEmpty() bool { return s.size == 0 }

// Values returns a slice of all values in unspecified order. The
// returned slice is valid until the next mutation.
func (s *Set) Values() []uint32 { return s.dense[:s.size] }

// Iter calls f for each value in the set, in unspecified order.
func (s *Set) Iter(f func(uint32)) {
	for i := uint32(0); i < s.size; i++ {
		f(s.dense[i])
	}
}

// Sorted returns the elements in ascending order. The result is
// cached until the next Insert/Remove/Clear.
func (s *Set) Sorted() []uint32 {
	if s.sorted != nil {
		return s.sorted
	}
	out := make([]uint32, s.size)
	copy(out, s.dense[:s.size])
	insertionSort(out)
	s.sorted = out
	return out
}

// insertionSort sorts small slices without pulling in sort.Slice's
// interface-dispatch overhead; state sets are typically tiny.
func insertionSort(vs []uint32) {
	for i := 1; i < len(vs); i++ {
		v := vs[i]
		j := i - 1
		for j >= 0 && vs[j] > v {
			vs[j+1] = vs[j]
			j--
		}
		vs[j+1] = v
	}
}
