// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmask(t *testing.T) {
	assert.Equal(t, uint64(0), bitmask(0))
	assert.Equal(t, uint64(0b111), bitmask(3))
	assert.Equal(t, ^uint64(0), bitmask(64))
}

func TestBitrank(t *testing.T) {
	val := uint64(0b1011)
	assert.Equal(t, uint(1), bitrank(val, 0))
	assert.Equal(t, uint(2), bitrank(val, 1))
	assert.Equal(t, uint(2), bitrank(val, 2))
	assert.Equal(t, uint(3), bitrank(val, 3))
	assert.Equal(t, uint(3), bitrank(val, 63))
}

func TestPopcntv(t *testing.T) {
	val := uint64(0xff)
	assert.Equal(t, uint(8), popcntv(val, 0))
	assert.Equal(t, uint(4), popcntv(val, 4))
	assert.Equal(t, uint(8), popcntv(val, 64))
}

func TestPdep(t *testing.T) {
	assert.Equal(t, uint64(0), pdep(0b111, 0))
	assert.Equal(t, uint64(0), pdep(0, 0b111))
	assert.Equal(t, uint64(0b1001), pdep(0b101, 0b1011))
	assert.Equal(t, uint64(0b1011), pdep(0b111, 0b1011))
}

func TestBitselect(t *testing.T) {
	val := uint64(0b1010_0100)
	assert.Equal(t, uint(2), bitselect(val, 0))
	assert.Equal(t, uint(5), bitselect(val, 1))
	assert.Equal(t, uint(7), bitselect(val, 2))
	assert.Equal(t, uint(64), bitselect(val, 3))
}

func TestBitselectv(t *testing.T) {
	val := uint64(0b1010_0100)
	// ignoring the low 3 bits hides the set bit at position 2
	assert.Equal(t, uint(5), bitselectv(val, 3, 0))
	assert.Equal(t, uint(7), bitselectv(val, 3, 1))
}

func TestBitPrimitivesAgreeWithMathBits(t *testing.T) {
	val := uint64(0xdeadbeefcafebabe)
	assert.Equal(t, uint(bits.OnesCount64(val)), popcntv(val, 0))
}
