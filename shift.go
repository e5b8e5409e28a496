// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

// shiftRemainders copies the remainder at each of insertIndex..=to to
// position i+distance, working from the top down so no value is
// overwritten before it has been read (spec §4.4). A range where to
// is below insertIndex is empty and shifts nothing.
func (f *Filter) shiftRemainders(insertIndex, to, distance uint64) {
	if to < insertIndex {
		return
	}
	for i := to; ; i-- {
		f.setSlot(i+distance, f.getSlot(i))
		if i == insertIndex {
			break
		}
	}
}

func (f *Filter) shiftRunends(insertIndex, to, distance uint64) {
	if to < insertIndex {
		return
	}
	for i := to; ; i-- {
		f.setRunend(i+distance, f.isRunend(i))
		if i == insertIndex {
			break
		}
	}
}

func (f *Filter) shiftCounts(insertIndex, to, distance uint64) {
	if to < insertIndex {
		return
	}
	for i := to; ; i-- {
		f.setCount(i+distance, f.isCount(i))
		if i == insertIndex {
			break
		}
	}
}
