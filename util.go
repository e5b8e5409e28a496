// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

import (
	"fmt"
	"unsafe"
)

var isLittleEndian bool

func init() {
	buf := []byte{0x1, 0x0}
	val := (*uint16)(unsafe.Pointer(unsafe.SliceData(buf)))
	isLittleEndian = *val == uint16(1)
}

// unsafeBlocksToBytes reinterprets a block slice as its raw backing
// bytes, with no copy. As WriteTo's doc warns, this is
// only safe for round trips on the same architecture and endianness.
func unsafeBlocksToBytes(blocks []block) []byte {
	data := (*byte)(unsafe.Pointer(unsafe.SliceData(blocks)))
	return unsafe.Slice(data, len(blocks)*int(unsafe.Sizeof(block{})))
}

func humanBytes(bytes uint64) string {
	v := float64(bytes)
	suffix := "bytes"
	if v > 1024 {
		v /= 1024.
		suffix = "KB"
		if v > 1024. {
			suffix = "MB"
			v /= 1024.0
			if v > 1024. {
				suffix = "GB"
				v /= 1024.
			}
		}
	}
	switch {
	case v < 10:
		return fmt.Sprintf("%0.2f %s", v, suffix)
	case v < 100:
		return fmt.Sprintf("%0.1f %s", v, suffix)
	default:
		return fmt.Sprintf("%0.0f %s", v, suffix)
	}
}
