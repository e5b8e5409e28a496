// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zeebo/pcg"
)

func TestIteratorVisitsEveryInsertedKey(t *testing.T) {
	f := newTestFilter(t, 256, HashInvertible)

	wanted := map[uint64]uint64{}
	for i := 0; i < 100; i++ {
		k := pcg.Uint64() % (1 << 20)
		wanted[k] += uint64(i%3 + 1)
		f.Insert(k, uint64(i%3+1))
	}

	got := map[uint64]uint64{}
	it := f.Iterator()
	n := 0
	for it.Next() {
		n++
		key, ok := it.Key()
		assert.True(t, ok)
		got[key] += it.Count()
	}

	assert.Equal(t, len(wanted), n)
	assert.Equal(t, wanted, got)
}

// TestIteratorHashesAreMonotone checks property P4: since
// every entry owns a distinct (quotient, remainder) pair, the hashes
// built from them during iteration must be strictly increasing, never
// merely non-decreasing.
func TestIteratorHashesAreMonotone(t *testing.T) {
	f := newTestFilter(t, 256, HashFast)
	for i := uint64(0); i < 150; i++ {
		f.Insert(i*7+1, 1)
	}

	it := f.Iterator()
	last := uint64(0)
	first := true
	for it.Next() {
		h := it.Hash()
		if !first {
			assert.Less(t, last, h)
		}
		last = h
		first = false
	}
	assert.False(t, first, "iterator produced no entries")
}

func TestIteratorOnEmptyFilter(t *testing.T) {
	f := newTestFilter(t, 64, HashFast)
	it := f.Iterator()
	assert.False(t, it.Next())
}
