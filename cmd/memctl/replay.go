package main

import (
	"fmt"
	"os"

	"github.com/heapkit/heapkit/mem"
	"github.com/heapkit/heapkit/mem/alloc"
	"github.com/heapkit/heapkit/mem/trace"
	"github.com/spf13/cobra"
)

var (
	replayVerify    bool
	replayCheckFill bool
	replayMmap      bool
	replayLimit     int
	replayConfig    string
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().BoolVar(&replayVerify, "verify", false, "Run the full invariant sweep after every operation")
	cmd.Flags().BoolVar(&replayCheckFill, "check-fill", false, "Stamp and re-check payload fill patterns")
	cmd.Flags().BoolVar(&replayMmap, "mmap", false, "Back the region with an anonymous memory mapping")
	cmd.Flags().IntVar(&replayLimit, "limit", 256<<20, "Maximum region size in bytes (0 = unlimited)")
	cmd.Flags().StringVar(&replayConfig, "config", "standard", "Allocator configuration (standard, compact, largechunk)")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay an allocation trace and report utilization",
		Long: `The replay command parses a trace script, drives every operation
against a fresh allocator, and prints the replay summary and the
allocator's utilization report.

Example:
  memctl replay workload.trace
  memctl replay workload.trace --verify --check-fill
  memctl replay workload.trace --mmap --config largechunk`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

func runReplay(args []string) error {
	tracePath := args[0]

	cfg, err := configByName(replayConfig)
	if err != nil {
		return err
	}

	printVerbose("Parsing trace: %s\n", tracePath)
	f, err := os.Open(tracePath)
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	ops, err := trace.Parse(f)
	if err != nil {
		return err
	}
	printVerbose("Parsed %d operations\n", len(ops))

	var p mem.Provider
	if replayMmap {
		limit := replayLimit
		if limit <= 0 {
			// The mapping needs a concrete reservation size.
			limit = 1 << 30
		}
		mp, err := mem.NewMmapProvider(limit)
		if err != nil {
			return err
		}
		defer mp.Close()
		p = mp
	} else {
		p = mem.NewSliceProvider(replayLimit)
	}

	a, err := alloc.New(mem.NewRegion(p), &cfg)
	if err != nil {
		return err
	}

	res, err := trace.Replay(a, ops, trace.Options{
		CheckFill: replayCheckFill,
		Verify:    replayVerify,
	})
	if err != nil {
		return err
	}

	printInfo("Replayed %d ops (%d allocs, %d resizes, %d frees)\n",
		res.Ops, res.Allocs, res.Resizes, res.Frees)
	printInfo("Peak live:        %d bytes\n", res.PeakLive)
	printInfo("Peak utilization: %.1f%%\n\n", res.Utilization*100)
	if !quiet {
		a.Report(os.Stdout)
	}
	return nil
}

func configByName(name string) (alloc.Config, error) {
	switch name {
	case "standard":
		return alloc.ConfigStandard, nil
	case "compact":
		return alloc.ConfigCompact, nil
	case "largechunk":
		return alloc.ConfigLargeChunk, nil
	default:
		return alloc.Config{}, fmt.Errorf("unknown config %q (want standard, compact, or largechunk)", name)
	}
}
