// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

// Iterator walks every entry of a Filter in ascending slot order,
// i.e. ascending quotient then ascending remainder within a run
// (spec §4.8). The zero value is not usable; construct one with
// Filter.Iterator.
type Iterator struct {
	f        *Filter
	position uint64
	run      uint64
	first    bool
	done     bool

	remainder uint64
	count     uint64
}

// Iterator returns a new Iterator positioned before the first entry.
// A Filter with no recorded entries yields an Iterator whose Next
// always returns false.
func (f *Filter) Iterator() *Iterator {
	if f.noccupiedSlots == 0 {
		return &Iterator{f: f, done: true}
	}

	position := uint64(0)
	if !f.isOccupied(0) {
		blockIdx := uint64(0)
		idx := bitselect(f.getBlock(0).occupieds, 0)
		if idx == 64 {
			for idx == 64 && blockIdx < f.nblocks-1 {
				blockIdx++
				idx = bitselect(f.getBlock(blockIdx).occupieds, 0)
			}
		}
		position = blockIdx*64 + uint64(idx)
	}

	run := position
	if position != 0 {
		position = f.runEnd(position-1) + 1
	}

	return &Iterator{f: f, position: position, run: run, first: true}
}

// Next advances the iterator and reports whether it landed on an
// entry. Call Hash/Key/Count only after Next returns true.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	if it.first {
		it.first = false
	} else if !it.movePosition() {
		it.done = true
		return false
	}

	it.remainder, it.count, _ = it.f.decodeCounter(it.position)
	return true
}

// Hash returns the raw hash of the current entry.
func (it *Iterator) Hash() uint64 {
	return it.f.buildHash(it.run, it.remainder)
}

// Key returns the key that produced the current entry's hash, when
// the filter was built with HashInvertible and no custom HashFn.
func (it *Iterator) Key() (uint64, bool) {
	return it.f.InvertHash(it.Hash())
}

// Count returns the current entry's recorded multiplicity.
func (it *Iterator) Count() uint64 {
	return it.count
}

// movePosition walks to the next occupied slot, crossing into the
// next run (and, if needed, the next occupied block) when the
// current slot is a runend.
func (it *Iterator) movePosition() bool {
	f := it.f
	if it.position >= f.xnslots {
		return false
	}

	_, _, end := f.decodeCounter(it.position)
	it.position = end

	if !f.isRunend(it.position) {
		it.position++
		return it.position < f.xnslots
	}

	blockIdx := it.run / 64
	rank := bitrank(f.getBlock(blockIdx).occupieds, uint(it.run%64))
	nextRun := bitselect(f.getBlock(blockIdx).occupieds, rank)

	if nextRun == 64 {
		rank = 0
		for nextRun == 64 && blockIdx < f.nblocks-1 {
			blockIdx++
			nextRun = bitselect(f.getBlock(blockIdx).occupieds, rank)
		}
	}

	if blockIdx == f.nblocks {
		it.run = f.xnslots
		it.position = f.xnslots
		return false
	}

	it.run = blockIdx*64 + uint64(nextRun)
	it.position++
	if it.position < it.run {
		it.position = it.run
	}

	return it.position < f.xnslots
}
