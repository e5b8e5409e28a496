// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeCounterSingleton(t *testing.T) {
	f := newEmptyFilter(minLogNSlots, minLogNSlots, HashFast, nil)
	f.setSlot(0, 77)
	f.setRunend(0, true)

	remainder, count, end := f.decodeCounter(0)
	assert.Equal(t, uint64(77), remainder)
	assert.Equal(t, uint64(1), count)
	assert.Equal(t, uint64(0), end)
}

func TestDecodeCounterExplicitCount(t *testing.T) {
	f := newEmptyFilter(minLogNSlots, minLogNSlots, HashFast, nil)
	f.setSlot(0, 77)
	f.setSlot(1, 9)
	f.setCount(1, true)
	f.setRunend(1, true)

	remainder, count, end := f.decodeCounter(0)
	assert.Equal(t, uint64(77), remainder)
	assert.Equal(t, uint64(9), count)
	assert.Equal(t, uint64(1), end)
}

func TestDecodeCounterNotRunendButNoCountFollows(t *testing.T) {
	f := newEmptyFilter(minLogNSlots, minLogNSlots, HashFast, nil)
	f.setSlot(0, 5)
	// slot 0 isn't a runend, but slot 1 isn't flagged as a count either,
	// so this is still a bare singleton.
	remainder, count, end := f.decodeCounter(0)
	assert.Equal(t, uint64(5), remainder)
	assert.Equal(t, uint64(1), count)
	assert.Equal(t, uint64(0), end)
}
