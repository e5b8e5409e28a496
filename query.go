// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

// Query hashes key and returns its recorded multiplicity, or 0 if it
// has never been inserted.
func (f *Filter) Query(key uint64) uint64 {
	return f.QueryByHash(f.calcHash(key))
}

// QueryByHash returns the recorded multiplicity for a raw hash value,
// or 0 if absent. There are no false negatives: any hash that was
// ever inserted will be found (spec §4.6, property P1).
func (f *Filter) QueryByHash(hash uint64) uint64 {
	quotient, remainder := f.splitHash(hash)
	if !f.isOccupied(quotient) {
		return 0
	}

	runstartIndex := uint64(0)
	if quotient > 0 {
		runstartIndex = f.runEnd(quotient-1) + 1
	}
	if runstartIndex < quotient {
		runstartIndex = quotient
	}

	for {
		currentRemainder, currentCount, currentEnd := f.decodeCounter(runstartIndex)
		if currentRemainder == remainder {
			return currentCount
		}
		if f.isRunend(currentEnd) {
			break
		}
		runstartIndex = currentEnd + 1
	}
	return 0
}
