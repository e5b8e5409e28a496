// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

// maxLoadFactor is the occupancy fraction of XN slots past which a
// Filter automatically grows by one quotient bit (spec §4.9, property
// P7). Growth keeps remainder collisions rare without wasting memory
// on slack that will never be used.
const maxLoadFactor = 0.95

// checkAndResize grows the filter by one quotient bit whenever its
// load factor has crossed maxLoadFactor. It's called before every
// mutating operation, same as the upstream implementation it's
// ported from.
func (f *Filter) checkAndResize() {
	if f.LoadFactor() >= maxLoadFactor {
		f.resize(f.logNSlots+1, f.quotientBits+1)
	}
}

// resize rebuilds the filter at a larger logNSlots/quotientBits,
// reinserting every entry under the new split. Apart from ReadFrom,
// it's the only place a Filter's block array is replaced wholesale
// after Build.
func (f *Filter) resize(logNSlots, quotientBits uint64) {
	grown := newEmptyFilter(logNSlots, quotientBits, f.hashMode, f.hashFn)

	it := f.Iterator()
	for it.Next() {
		grown.InsertByHash(it.Hash(), it.Count())
	}

	*f = *grown
}
