// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

import (
	"encoding/binary"
	"io"
)

// formatVersion is bumped any time the on-disk layout changes
// incompatibly.
const formatVersion = uint64(1)

// header describes a serialized Filter. It precedes the raw block
// array in the stream written by WriteTo.
type header struct {
	Version        uint64
	LogNSlots      uint64
	NSlots         uint64
	XNSlots        uint64
	NBlocks        uint64
	QuotientBits   uint64
	RemainderBits  uint64
	NOccupiedSlots uint64
	Entries        uint64
	HashMode       HashMode
}

// WriteTo serializes f to stream: a fixed header followed by the raw
// block array.
//
// WARNING: like the format it's adapted from, the block array is
// written with its native memory layout for speed, which is not
// portable across architectures or endianness. Use the same binary
// on both ends of a round trip.
func (f *Filter) WriteTo(stream io.Writer) (n int64, err error) {
	h := header{
		Version:        formatVersion,
		LogNSlots:      f.logNSlots,
		NSlots:         f.nslots,
		XNSlots:        f.xnslots,
		NBlocks:        f.nblocks,
		QuotientBits:   f.quotientBits,
		RemainderBits:  f.remainderBits,
		NOccupiedSlots: f.noccupiedSlots,
		Entries:        f.entries,
		HashMode:       f.hashMode,
	}
	if err = binary.Write(stream, binary.LittleEndian, h); err != nil {
		return n, ErrClass.Wrap(err)
	}
	n += int64(binary.Size(h))

	if isLittleEndian {
		nw, err := stream.Write(unsafeBlocksToBytes(f.blocks))
		n += int64(nw)
		if err != nil {
			return n, ErrClass.Wrap(err)
		}
		return n, nil
	}

	for i := range f.blocks {
		if err = binary.Write(stream, binary.LittleEndian, &f.blocks[i]); err != nil {
			return n, ErrClass.Wrap(err)
		}
		n += int64(binary.Size(f.blocks[i]))
	}
	return n, nil
}

// ReadFrom replaces f's contents with a filter read back from stream.
// ReadFrom only restores HashMode: a custom HashFn the filter was
// built with is not restored, Filter has no method to attach one
// afterward, and the loaded filter hashes with HashMode's default.
func (f *Filter) ReadFrom(stream io.Reader) (n int64, err error) {
	var h header
	if err = binary.Read(stream, binary.LittleEndian, &h); err != nil {
		return n, ErrClass.Wrap(err)
	}
	n += int64(binary.Size(h))
	if h.Version != formatVersion {
		return n, ErrClass.Wrap(ErrCorrupt)
	}

	blocks := make([]block, h.NBlocks)
	if isLittleEndian {
		nr, err := io.ReadFull(stream, unsafeBlocksToBytes(blocks))
		n += int64(nr)
		if err != nil {
			return n, ErrClass.Wrap(err)
		}
	} else {
		for i := range blocks {
			if err = binary.Read(stream, binary.LittleEndian, &blocks[i]); err != nil {
				return n, ErrClass.Wrap(err)
			}
			n += int64(binary.Size(blocks[i]))
		}
	}

	*f = Filter{
		blocks:         blocks,
		logNSlots:      h.LogNSlots,
		nslots:         h.NSlots,
		xnslots:        h.XNSlots,
		nblocks:        h.NBlocks,
		quotientBits:   h.QuotientBits,
		remainderBits:  h.RemainderBits,
		noccupiedSlots: h.NOccupiedSlots,
		entries:        h.Entries,
		hashMode:       h.HashMode,
	}
	return n, nil
}
