package seam

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// IDSet is an unordered set of mesh component ids.
type IDSet[T ~int32] map[T]struct{}

func NewIDSet[T ~int32](ids ...T) IDSet[T] {
	set := make(IDSet[T], len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (set IDSet[T]) Add(ids ...T) {
	for _, id := range ids {
		set[id] = struct{}{}
	}
}

func (set IDSet[T]) Has(id T) bool {
	_, ok := set[id]
	return ok
}

func (set IDSet[T]) Len() int {
	return len(set)
}

func (set IDSet[T]) Clone() IDSet[T] {
	out := make(IDSet[T], len(set))
	for id := range set {
		out[id] = struct{}{}
	}
	return out
}

// Union adds every id of other to set and returns set.
func (set IDSet[T]) Union(other IDSet[T]) IDSet[T] {
	for id := range other {
		set[id] = struct{}{}
	}
	return set
}

// Minus returns a new set holding the ids of set that are not in other.
func (set IDSet[T]) Minus(other IDSet[T]) IDSet[T] {
	out := make(IDSet[T], len(set))
	for id := range set {
		if !other.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Intersect returns a new set holding the ids in both set and other.
func (set IDSet[T]) Intersect(other IDSet[T]) IDSet[T] {
	if len(other) < len(set) {
		set, other = other, set
	}
	out := make(IDSet[T])
	for id := range set {
		if other.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

func (set IDSet[T]) Equal(other IDSet[T]) bool {
	if len(set) != len(other) {
		return false
	}
	for id := range set {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Sorted returns the ids of this set in ascending order.
func (set IDSet[T]) Sorted() []T {
	ts := treeset.NewWith(func(a, b interface{}) int {
		return utils.Int32Comparator(int32(a.(T)), int32(b.(T)))
	})
	for id := range set {
		ts.Add(id)
	}
	out := make([]T, 0, len(set))
	for _, v := range ts.Values() {
		out = append(out, v.(T))
	}
	return out
}

// Min returns the smallest id in this set and false if the set is empty.
func (set IDSet[T]) Min() (T, bool) {
	var lo T
	found := false
	for id := range set {
		if !found || id < lo {
			lo, found = id, true
		}
	}
	return lo, found
}
