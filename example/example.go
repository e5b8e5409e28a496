// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package main

import (
	"bytes"
	"fmt"

	"github.com/colinmarc/cqf"
)

func main() {
	// helper routines let you size a filter correctly ahead of time
	fmt.Printf("Example of analyzing size requirements:\n")
	conf := cqf.Config{ExpectedEntries: 1000000000}
	filter, err := conf.Build()
	if err != nil {
		panic(err)
	}
	filter.ExplainIndent("  ")

	fmt.Printf("\nExample of loading and using a small filter:\n")
	counts := map[string]uint64{
		"red": 3, "yellow": 1, "orange": 5, "blue": 2,
	}

	small := cqf.Config{ExpectedEntries: uint64(len(counts))}
	qf, err := small.Build()
	if err != nil {
		panic(err)
	}

	keyOf := func(s string) uint64 {
		var h uint64
		for _, b := range []byte(s) {
			h = h*31 + uint64(b)
		}
		return h
	}

	for color, n := range counts {
		qf.Insert(keyOf(color), n)
	}

	for _, color := range []string{
		"red", "orange", "yellow", "green", "blue", "indigo", "violet",
	} {
		fmt.Printf("%s: count %d\n", color, qf.Query(keyOf(color)))
	}

	// Serialize the filter and report its size
	buf := bytes.NewBuffer(nil)
	if _, err := qf.WriteTo(buf); err != nil {
		panic(err)
	}
	fmt.Printf("filter serializes into %d bytes\n", buf.Len())

	// With HashInvertible, entries can be enumerated back to their keys
	fmt.Printf("\nExample of invertible hashing:\n")
	inv := cqf.Config{ExpectedEntries: 16, HashMode: cqf.HashInvertible}
	iqf, err := inv.Build()
	if err != nil {
		panic(err)
	}
	for i := uint64(0); i < 8; i++ {
		iqf.Insert(i, i+1)
	}

	it := iqf.Iterator()
	for it.Next() {
		key, _ := it.Key()
		fmt.Printf("key %d: count %d\n", key, it.Count())
	}
}
