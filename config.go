// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/zeebo/errs"
)

// ErrClass wraps every error this package returns, so callers can
// recognize a CQF-specific failure with errs.Is without caring about
// the exact error variable underneath.
var ErrClass = errs.Class("cqf")

// ErrInvalidConfig is returned by Build when a Config describes an
// impossible filter (too small, or a quotient of 64 bits or more).
var ErrInvalidConfig = errs.New("invalid configuration")

// minLogNSlots is the smallest logNSlots Build will accept, matching
// the external contract's log2N range of [1, 63].
const minLogNSlots = 1

// Config controls how Build sizes and hashes a new Filter.
type Config struct {
	// LogNSlots is log2 of the nominal slot count N = 1<<LogNSlots.
	// Ignored when ExpectedEntries is non-zero.
	LogNSlots uint64

	// ExpectedEntries, when non-zero, auto-sizes LogNSlots so the
	// filter starts below its growth threshold for that many entries,
	// instead of requiring LogNSlots to be set explicitly.
	ExpectedEntries uint64

	// HashMode selects the default HashFn and whether InvertHash can
	// recover keys. Ignored when HashFn is set.
	HashMode HashMode

	// HashFn overrides the default hash for HashMode. It is not
	// serialized: a Filter loaded with ReadFrom hashes keys with its
	// HashMode's default.
	HashFn HashFn
}

// logNSlotsFor returns the smallest logNSlots whose nominal capacity,
// scaled by maxLoadFactor, covers n entries.
func logNSlotsFor(n uint64) uint64 {
	log := uint64(minLogNSlots)
	for (float64(uint64(1)<<log) * maxLoadFactor) < float64(n) {
		log++
	}
	return log
}

// Build constructs an empty Filter from c. The quotient starts out
// equal to LogNSlots, i.e. p == log2(N); growth subsequently keeps
// that invariant by incrementing both together.
func (c *Config) Build() (*Filter, error) {
	logNSlots := c.LogNSlots
	if c.ExpectedEntries > 0 {
		logNSlots = logNSlotsFor(c.ExpectedEntries)
	}
	if logNSlots < minLogNSlots || logNSlots >= bitsPerWord {
		return nil, ErrClass.Wrap(ErrInvalidConfig)
	}

	return newEmptyFilter(logNSlots, logNSlots, c.HashMode, c.HashFn), nil
}

// newEmptyFilter allocates a filter with nblocks = ceil(xnslots/64)
// zeroed blocks, per the XN = N + 10*sqrt(N) padding rule. It's shared
// by Build, resize and the merge constructors.
func newEmptyFilter(logNSlots, quotientBits uint64, hashMode HashMode, hashFn HashFn) *Filter {
	nslots := uint64(1) << logNSlots
	xnslots := nslots + uint64(10*math.Sqrt(float64(nslots)))
	nblocks := (xnslots + 63) / 64

	return &Filter{
		blocks:        make([]block, nblocks),
		logNSlots:     logNSlots,
		nslots:        nslots,
		xnslots:       xnslots,
		nblocks:       nblocks,
		quotientBits:  quotientBits,
		remainderBits: bitsPerWord - quotientBits,
		hashMode:      hashMode,
		hashFn:        hashFn,
	}
}

// BytesRequired reports the approximate in-memory size of the
// filter's block array.
func (f *Filter) BytesRequired() uint64 {
	return f.nblocks * uint64(unsafe.Sizeof(block{}))
}

// ExplainIndent prints a summary of the filter's sizing to stdout,
// each line prefixed with indent.
func (f *Filter) ExplainIndent(indent string) {
	fmt.Printf("%s%2d bits configured for quotient (%d nominal slots)\n", indent, f.quotientBits, f.nslots)
	fmt.Printf("%s%2d bits for remainder\n", indent, f.remainderBits)
	fmt.Printf("%s%d padded slots across %d blocks\n", indent, f.xnslots, f.nblocks)
	fmt.Printf("%shash mode: %s\n", indent, f.hashMode)
	fmt.Printf("%s%d entries, load factor %.4f\n", indent, f.entries, f.LoadFactor())
	fmt.Printf("%s   %s storage size\n", indent, humanBytes(f.BytesRequired()))
}

// Explain prints a summary of the filter's sizing to stdout.
func (f *Filter) Explain() {
	f.ExplainIndent("")
}

// DebugDump prints a textual representation of the filter to stdout,
// adapted from the teacher's flat-bitmap dump to the block layout: a
// summary line and, when full is set, one line per live slot showing
// its occupied/runend/count flags and remainder, with runs of empty
// slots collapsed.
func (f *Filter) DebugDump(full bool) {
	fmt.Printf("\ncqf is %d slots (%d padded) across %d blocks, %d entries, load factor %.4f\n",
		f.nslots, f.xnslots, f.nblocks, f.entries, f.LoadFactor())

	if !full {
		return
	}

	fmt.Printf("   index  O R C remainder\n")
	skipped := 0
	for i := uint64(0); i < f.xnslots; i++ {
		o, r, c := f.isOccupied(i), f.isRunend(i), f.isCount(i)
		if !o && !r && !c && f.getSlot(i) == 0 {
			skipped++
			continue
		}
		if skipped > 0 {
			fmt.Printf("          ...\n")
			skipped = 0
		}
		fmt.Printf("%8d  %s %s %s %d\n", i, flagChar(o), flagChar(r), flagChar(c), f.getSlot(i))
	}
	if skipped > 0 {
		fmt.Printf("          ...\n")
	}
}

func flagChar(set bool) string {
	if set {
		return "1"
	}
	return "."
}
