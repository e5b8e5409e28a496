// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

// Insert hashes key with the filter's configured HashFn and records
// count more occurrences of it, bumping its recorded count by count.
func (f *Filter) Insert(key uint64, count uint64) {
	f.InsertByHash(f.calcHash(key), count)
}

// InsertByHash records count additional occurrences of a raw 64 bit
// hash value. It is the operation every other mutator (Insert,
// growth, merge) ultimately funnels through.
func (f *Filter) InsertByHash(hash uint64, count uint64) {
	f.checkAndResize()

	quotient, remainder := f.splitHash(hash)
	runendIndex := f.runEnd(quotient)

	// Case A: the home slot might be empty, and run_end agrees it is.
	if f.mightBeEmpty(quotient) && runendIndex == quotient {
		f.setRunend(quotient, true)
		f.setSlot(quotient, remainder)
		f.setOccupied(quotient, true)
		f.noccupiedSlots++
		f.entries++
		if count > 1 {
			f.InsertByHash(hash, count-1)
		}
		return
	}

	runstartIndex := uint64(0)
	if quotient > 0 {
		runstartIndex = f.runEnd(quotient-1) + 1
	}

	if !f.isOccupied(quotient) {
		// Case B: the quotient isn't occupied yet, but its home slot
		// is in use by an earlier, shifted run. Insert a new singleton
		// run just past the last occupied run.
		f.insertAndShift(0, quotient, remainder, count, runstartIndex, 0)
		f.entries++
	} else {
		// Case C: quotient already owns a run; walk it in increasing
		// remainder order to find where ours belongs.
		currentRemainder, currentCount, currentEnd := f.decodeCounter(runstartIndex)
		for currentRemainder < remainder && !f.isRunend(currentEnd) {
			runstartIndex = currentEnd + 1
			currentRemainder, currentCount, currentEnd = f.decodeCounter(runstartIndex)
		}

		switch {
		case currentRemainder < remainder:
			// fell off the end of the run without finding it
			f.insertAndShift(1, quotient, remainder, count, currentEnd+1, 0)
			f.entries++
		case currentRemainder == remainder:
			// collision: bump the existing counter
			op := uint64(2)
			if f.isRunend(currentEnd) {
				op = 1
			}
			f.insertAndShift(op, quotient, remainder, currentCount+count, runstartIndex, currentEnd-runstartIndex+1)
		default:
			// insert before the current entry
			f.insertAndShift(2, quotient, remainder, count, runstartIndex, 0)
			f.entries++
		}
	}

	f.setOccupied(quotient, true)
}

// insertAndShift writes (remainder, count) at insertIndex, first
// making room by shifting ninserts = (singleton-or-counted slots
// needed) - noverwrites slots rightward, then repairs the runend bits
// per the operation table in spec §4.5.
func (f *Filter) insertAndShift(operation, quotient, remainder, count, insertIndex, noverwrites uint64) {
	wanted := uint64(1)
	if count != 1 {
		wanted = 2
	}
	ninserts := wanted - noverwrites

	if ninserts > 0 {
		switch ninserts {
		case 1:
			empty := f.findFirstEmptySlot(insertIndex)
			f.shiftRemainders(insertIndex, empty-1, 1)
			f.shiftRunends(insertIndex, empty-1, 1)
			f.shiftCounts(insertIndex, empty-1, 1)
			f.bumpOffsets(quotient, []uint64{empty}, ninserts)
		case 2:
			empties := f.findNEmptySlots(insertIndex, 2)
			first, second := empties[0], empties[1]
			f.shiftRemainders(first+1, second-1, 1)
			f.shiftRunends(first+1, second-1, 1)
			f.shiftCounts(first+1, second-1, 1)
			f.shiftRemainders(insertIndex, first-1, 2)
			f.shiftRunends(insertIndex, first-1, 2)
			f.shiftCounts(insertIndex, first-1, 2)
			f.bumpOffsets(quotient, []uint64{first, second}, ninserts)
		default:
			panic("cqf: unexpected number of inserts")
		}

		switch operation {
		case 0:
			if count == 1 {
				f.setRunend(insertIndex, true)
			} else {
				f.setRunend(insertIndex, false)
				f.setRunend(insertIndex+1, true)
			}
		case 1:
			if noverwrites == 0 {
				f.setRunend(insertIndex-1, false)
			}
			if count == 1 {
				f.setRunend(insertIndex, true)
			} else {
				f.setRunend(insertIndex, false)
				f.setRunend(insertIndex+1, true)
			}
		case 2:
			f.setRunend(insertIndex, false)
			if count != 1 {
				f.setRunend(insertIndex+1, false)
			}
		default:
			panic("cqf: invalid insert operation")
		}
	}

	f.setSlot(insertIndex, remainder)
	if count != 1 {
		f.setCount(insertIndex+1, true)
		f.setSlot(insertIndex+1, count)
	}
	f.noccupiedSlots += ninserts
}

// bumpOffsets increments the offset of every block strictly past
// quotient's block and at or before the block holding the last
// discovered empty slot, by however many of those empties land at or
// past that block (spec §4.5 "Block-offset adjustment").
func (f *Filter) bumpOffsets(quotient uint64, empties []uint64, ninserts uint64) {
	last := empties[len(empties)-1]
	npreceding := uint64(0)
	for i := quotient/64 + 1; i <= last/64; i++ {
		for npreceding < ninserts && empties[npreceding]/64 < i {
			npreceding++
		}
		f.getBlock(i).offset += uint16(ninserts - npreceding)
	}
}
