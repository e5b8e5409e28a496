// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

import "fmt"

// errOutOfSlots is the value findFirstEmptySlot panics with when the
// search for empty slots runs past the end of the backing store. The XN = N + 10*sqrt(N) padding makes
// this astronomically unlikely for well distributed hashes, but
// spec.md's design notes call for a clean failure over a raw index
// panic on block access, so the search below is bounds-checked
// explicitly.
var errOutOfSlots = fmt.Errorf("cqf: ran out of empty slots past capacity")

// findFirstEmptySlot advances from the given index until it finds a
// slot with offsetLowerBound == 0, i.e. a slot that is genuinely
// empty (spec §4.3).
func (f *Filter) findFirstEmptySlot(from uint64) uint64 {
	for {
		t := f.offsetLowerBound(from)
		if t == 0 {
			return from
		}
		from += t
		if from >= f.xnslots {
			panic(errOutOfSlots)
		}
	}
}

// findNEmptySlots returns the first n empty slot indices at or after
// from, in ascending order.
func (f *Filter) findNEmptySlots(from uint64, n int) []uint64 {
	out := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		e := f.findFirstEmptySlot(from)
		out = append(out, e)
		from = e + 1
	}
	return out
}
