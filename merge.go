// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

import "container/heap"

// Merge builds a new filter sized for logNSlots/quotientBits holding
// every entry of a and b, with counts summed where both filters saw
// the same hash. a and b must share a HashMode (spec §4.10).
func Merge(a, b *Filter, logNSlots, quotientBits uint64) (*Filter, error) {
	return MergeMany([]*Filter{a, b}, logNSlots, quotientBits)
}

// MergeMany is Merge generalized to any number of filters, merged in
// a single k-way pass ordered by ascending hash via container/heap
// (Go's stand-in for the k-way iterator merge the format was
// originally built on).
func MergeMany(filters []*Filter, logNSlots, quotientBits uint64) (*Filter, error) {
	if len(filters) == 0 {
		return newEmptyFilter(logNSlots, quotientBits, HashFast, nil), nil
	}

	mode := filters[0].hashMode
	for _, f := range filters[1:] {
		if f.hashMode != mode {
			return nil, ErrClass.Wrap(ErrModeMismatch)
		}
	}

	out := newEmptyFilter(logNSlots, quotientBits, mode, filters[0].hashFn)

	mh := make(mergeHeap, 0, len(filters))
	for _, f := range filters {
		it := f.Iterator()
		if it.Next() {
			mh = append(mh, it)
		}
	}
	heap.Init(&mh)

	for mh.Len() > 0 {
		it := mh[0]
		out.InsertByHash(it.Hash(), it.Count())
		if it.Next() {
			heap.Fix(&mh, 0)
		} else {
			heap.Pop(&mh)
		}
	}

	return out, nil
}

// mergeHeap is a container/heap of Iterators, ordered by the hash of
// their current entry, used to drive a k-way merge.
type mergeHeap []*Iterator

func (h mergeHeap) Len() int            { return len(h) }
func (h mergeHeap) Less(i, j int) bool  { return h[i].Hash() < h[j].Hash() }
func (h mergeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x interface{}) { *h = append(*h, x.(*Iterator)) }
func (h *mergeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
