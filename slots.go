// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

import "fmt"

// Filter is a Counting Quotient Filter: an approximate membership
// structure that records, for every hashed key, an exact integer
// count of how many times it was inserted.
type Filter struct {
	blocks []block

	logNSlots uint64 // log2N, the nominal slot count's log base two
	nslots    uint64 // N = 1 << logNSlots
	xnslots   uint64 // XN, the padded total slot capacity
	nblocks   uint64 // ceil(XN / 64)

	quotientBits  uint64 // p
	remainderBits uint64 // r = 64 - p

	noccupiedSlots uint64
	entries        uint64

	hashMode HashMode
	hashFn   HashFn
}

func (f *Filter) getBlock(idx uint64) *block {
	if idx >= f.nblocks {
		panic(fmt.Sprintf("cqf: tried getting block at idx %d, we only have %d blocks", idx, f.nblocks))
	}
	return &f.blocks[idx]
}

func (f *Filter) isOccupied(index uint64) bool {
	return f.getBlock(index / 64).isOccupied(uint(index % 64))
}

func (f *Filter) setOccupied(index uint64, val bool) {
	f.getBlock(index / 64).setOccupied(uint(index%64), val)
}

func (f *Filter) isRunend(index uint64) bool {
	return f.getBlock(index / 64).isRunend(uint(index % 64))
}

func (f *Filter) setRunend(index uint64, val bool) {
	f.getBlock(index / 64).setRunend(uint(index%64), val)
}

func (f *Filter) isCount(index uint64) bool {
	return f.getBlock(index / 64).isCount(uint(index % 64))
}

func (f *Filter) setCount(index uint64, val bool) {
	f.getBlock(index / 64).setCount(uint(index%64), val)
}

func (f *Filter) getSlot(index uint64) uint64 {
	return f.getBlock(index / 64).getSlot(uint(index % 64))
}

func (f *Filter) setSlot(index uint64, val uint64) {
	f.getBlock(index/64).setSlot(uint(index%64), val)
}

// mightBeEmpty reports whether index is neither occupied nor a
// runend; it is the cheap precondition check used before trusting
// run_end(index) == index to mean "truly empty" (spec §4.5 Case A).
func (f *Filter) mightBeEmpty(index uint64) bool {
	b := f.getBlock(index / 64)
	slot := uint(index % 64)
	return !b.isOccupied(slot) && !b.isRunend(slot)
}

func (f *Filter) offsetLowerBound(index uint64) uint64 {
	return f.getBlock(index / 64).offsetLowerBound(index % 64)
}

// Len reports the number of logical entries recorded, i.e. the
// number of distinct (quotient, remainder) pairs currently stored
// (not the sum of their counts, and not noccupiedSlots, which counts
// physical slots and so double-counts any entry using the 2-slot
// counted form).
func (f *Filter) Len() uint64 {
	return f.entries
}

// LoadFactor reports noccupiedSlots / XN.
func (f *Filter) LoadFactor() float64 {
	return float64(f.noccupiedSlots) / float64(f.xnslots)
}
