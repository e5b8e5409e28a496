// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

// decodeCounter reads slot[index] and, when the next slot holds an
// explicit multiplicity (its count bit is set), the counter that
// follows it. It returns the remainder, the recorded count and the
// index of the last slot the entry occupies (spec §3 "Counter
// encoding", §4.7).
func (f *Filter) decodeCounter(index uint64) (remainder, count, end uint64) {
	remainder = f.getSlot(index)

	if f.isRunend(index) || !f.isCount(index+1) {
		return remainder, 1, index
	}
	return remainder, f.getSlot(index + 1), index + 1
}
