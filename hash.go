// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

import (
	"encoding/binary"

	murmur "github.com/aviddiviner/go-murmur"
)

// HashFn maps a key to a 64 bit hash. Filter only ever stores and
// compares hashes, never keys, so a collision in HashFn is a
// collision in the filter (spec §3 "Hashing").
type HashFn func(key uint64) uint64

// HashMode selects how a Filter's default HashFn behaves, and whether
// InvertHash can recover the original key from a stored hash. It's
// sized explicitly (rather than plain int) so it serializes with a
// fixed width.
type HashMode uint8

const (
	// HashFast hashes with a one-way murmur mix. It is cheaper and
	// distributes better, but InvertHash always returns false.
	HashFast HashMode = iota
	// HashInvertible hashes with a bijective multiply-xor-shift mixer,
	// so every hash can be unmixed back to its key by InvertHash. Use
	// this when the filter needs to enumerate the keys it holds.
	HashInvertible
)

func (m HashMode) String() string {
	switch m {
	case HashInvertible:
		return "invertible"
	default:
		return "fast"
	}
}

func fastHash(key uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	return murmur.MurmurHash64A(buf[:], 0)
}

// invertibleHash runs Thomas Wang's 64 bit multiply-xor-shift mixer.
// Every step is reversible, so invertibleUnhash below recovers key
// exactly from invertibleHash(key).
func invertibleHash(key uint64) uint64 {
	key = ^key + (key << 21)
	key ^= key >> 24
	key = (key + (key << 3)) + (key << 8)
	key ^= key >> 14
	key = (key + (key << 2)) + (key << 4)
	key ^= key >> 28
	key += key << 31
	return key
}

// invertibleUnhash undoes invertibleHash step by step, in reverse
// order, using modular inverses of the odd multipliers for the two
// steps that aren't self-inverse shifts.
func invertibleUnhash(hash uint64) uint64 {
	key := hash

	// undo key += key << 31
	tmp := key - (key << 31)
	key -= tmp << 31

	// undo key ^= key >> 28
	tmp = key ^ key>>28
	key ^= tmp >> 28

	// undo key = (key + key<<2) + key<<4, i.e. key *= 21
	key *= 14933078535860113213

	// undo key ^= key >> 14 (not self-inverse at this shift width, so
	// iterate the xor-shift enough times to converge)
	tmp = key ^ key>>14
	tmp = key ^ tmp>>14
	tmp = key ^ tmp>>14
	key ^= tmp >> 14

	// undo key = (key + key<<3) + key<<8, i.e. key *= 265
	key *= 15244667743933553977

	// undo key ^= key >> 24
	tmp = key ^ key>>24
	key ^= tmp >> 24

	// undo key = ^key + key<<21
	tmp = ^key
	tmp = ^(key - tmp<<21)
	tmp = ^(key - tmp<<21)
	key = ^(key - tmp<<21)

	return key
}

// calcHash runs f's configured HashFn, falling back to the mode's
// default when none was set explicitly.
func (f *Filter) calcHash(key uint64) uint64 {
	if f.hashFn != nil {
		return f.hashFn(key)
	}
	switch f.hashMode {
	case HashInvertible:
		return invertibleHash(key)
	default:
		return fastHash(key)
	}
}

// InvertHash recovers the key that produced hash, when the filter
// was built with HashInvertible and no custom HashFn override. It is
// the basis for Iterator's Key() method (spec §4.8).
func (f *Filter) InvertHash(hash uint64) (uint64, bool) {
	if f.hashFn != nil || f.hashMode != HashInvertible {
		return 0, false
	}
	return invertibleUnhash(hash), true
}

// splitHash divides a 64 bit hash into its quotient (the block/slot
// address) and remainder (the value actually stored in a slot), per
// the filter's configured quotientBits/remainderBits split.
func (f *Filter) splitHash(hash uint64) (quotient, remainder uint64) {
	quotient = (hash >> f.remainderBits) & bitmask(f.quotientBits)
	remainder = hash & bitmask(f.remainderBits)
	return quotient, remainder
}

// buildHash is splitHash's inverse: it reassembles a hash from a
// quotient and remainder, used by Iterator to recover each entry's
// original hash for InvertHash.
func (f *Filter) buildHash(quotient, remainder uint64) uint64 {
	return (quotient << f.remainderBits) | remainder
}
