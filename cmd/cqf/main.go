// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/colinmarc/cqf"
	"github.com/urfave/cli/v2"
)

func hashModeFlag(c *cli.Context) cqf.HashMode {
	if c.String("mode") == "invertible" {
		return cqf.HashInvertible
	}
	return cqf.HashFast
}

func openFilter(path string) (*cqf.Filter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	filter := &cqf.Filter{}
	if _, err := filter.ReadFrom(bufio.NewReader(f)); err != nil {
		return nil, err
	}
	return filter, nil
}

func main() {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "build a CQF from a newline-delimited list of \"key count\" pairs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"out", "o"},
						Value:   "cqf.bin",
						Usage:   "name of the file to write the filter to",
					},
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"in", "i"},
						Usage:   "file to read from (default is stdin)",
					},
					&cli.Uint64Flag{
						Name:  "log-nslots",
						Value: 16,
						Usage: "log2 of the nominal slot count",
					},
					&cli.StringFlag{
						Name:  "mode",
						Value: "fast",
						Usage: "hash mode: fast or invertible",
					},
				},
				Action: func(c *cli.Context) error {
					output := c.String("output")
					if _, err := os.Stat(output); !os.IsNotExist(err) {
						return fmt.Errorf("refusing to over-write existing file: %s", output)
					}

					var reader io.Reader = os.Stdin
					if c.IsSet("input") {
						in, err := os.Open(c.String("input"))
						if err != nil {
							return err
						}
						defer in.Close()
						reader = in
					}

					config := cqf.Config{LogNSlots: c.Uint64("log-nslots"), HashMode: hashModeFlag(c)}
					filter, err := config.Build()
					if err != nil {
						return fmt.Errorf("build: %w", err)
					}

					start := time.Now()
					scanner := bufio.NewScanner(reader)
					for scanner.Scan() {
						fields := strings.Fields(scanner.Text())
						if len(fields) == 0 {
							continue
						}
						key, err := strconv.ParseUint(fields[0], 10, 64)
						if err != nil {
							return fmt.Errorf("build: invalid key %q: %w", fields[0], err)
						}
						count := uint64(1)
						if len(fields) > 1 {
							if count, err = strconv.ParseUint(fields[1], 10, 64); err != nil {
								return fmt.Errorf("build: invalid count %q: %w", fields[1], err)
							}
						}
						filter.Insert(key, count)
					}
					if err := scanner.Err(); err != nil {
						return err
					}
					log.Printf("built filter with %d entries in %s", filter.Len(), time.Since(start))

					out, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("build: error opening %s: %w", output, err)
					}
					defer out.Close()

					n, err := filter.WriteTo(out)
					if err != nil {
						return fmt.Errorf("build: error writing filter: %w", err)
					}
					log.Printf("wrote %d bytes to %s", n, output)
					filter.Explain()
					return nil
				},
			},
			{
				Name:  "query",
				Usage: "look up a key's recorded count in a filter",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"in", "i"},
						Usage:   "file containing the filter",
					},
				},
				Action: func(c *cli.Context) error {
					filter, err := openFilter(c.String("input"))
					if err != nil {
						return fmt.Errorf("query: can't read input file: %w", err)
					}
					key, err := strconv.ParseUint(c.Args().First(), 10, 64)
					if err != nil {
						return fmt.Errorf("query: invalid key %q: %w", c.Args().First(), err)
					}
					fmt.Printf("%d: %d\n", key, filter.Query(key))
					return nil
				},
			},
			{
				Name:  "merge",
				Usage: "merge two or more filters into one",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"out", "o"},
						Value:   "merged.bin",
						Usage:   "name of the file to write the merged filter to",
					},
					&cli.Uint64Flag{
						Name:  "log-nslots",
						Value: 17,
						Usage: "log2 of the nominal slot count for the merged filter",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return fmt.Errorf("merge: need at least two filters to merge")
					}
					filters := make([]*cqf.Filter, 0, c.NArg())
					for _, path := range c.Args().Slice() {
						f, err := openFilter(path)
						if err != nil {
							return fmt.Errorf("merge: can't read %s: %w", path, err)
						}
						filters = append(filters, f)
					}
					logNSlots := c.Uint64("log-nslots")
					merged, err := cqf.MergeMany(filters, logNSlots, logNSlots)
					if err != nil {
						return fmt.Errorf("merge: %w", err)
					}

					out, err := os.Create(c.String("output"))
					if err != nil {
						return fmt.Errorf("merge: error opening %s: %w", c.String("output"), err)
					}
					defer out.Close()
					if _, err := merged.WriteTo(out); err != nil {
						return fmt.Errorf("merge: error writing filter: %w", err)
					}
					merged.Explain()
					return nil
				},
			},
			{
				Name:  "describe",
				Usage: "print a summary of a filter's sizing and load",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"in", "i"},
						Usage:   "file containing the filter",
					},
					&cli.BoolFlag{
						Name:  "full",
						Usage: "also dump every live slot",
					},
				},
				Action: func(c *cli.Context) error {
					filter, err := openFilter(c.String("input"))
					if err != nil {
						return fmt.Errorf("describe: can't read input file: %w", err)
					}
					filter.Explain()
					if c.Bool("full") {
						filter.DebugDump(true)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
