package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
)

// Generates synthetic allocation traces for memctl replay. The workload
// ramps up to a target population of live slots, churns with a mix of
// frees, reallocations, and resizes, then drains everything, which is
// roughly the shape of a long-running server's heap.

var (
	outputFile = flag.String("output", "", "Output trace file (stdout if not specified)")
	opCount    = flag.Int("ops", 10000, "Number of churn operations to generate")
	population = flag.Int("population", 256, "Target number of live slots")
	maxSize    = flag.Int("max-size", 4096, "Maximum allocation size in bytes")
	resizePct  = flag.Int("resize-pct", 10, "Percentage of churn ops that are resizes")
	seed       = flag.Int64("seed", 1, "Random seed")
)

func main() {
	flag.Parse()

	out := os.Stdout
	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	defer w.Flush()

	rng := rand.New(rand.NewSource(*seed))
	size := func() int { return 1 + rng.Intn(*maxSize) }

	fmt.Fprintf(w, "# synthetic workload: ops=%d population=%d max-size=%d seed=%d\n",
		*opCount, *population, *maxSize, *seed)

	// Ramp up to the target population.
	live := make([]int, 0, *population)
	nextSlot := 0
	for len(live) < *population {
		fmt.Fprintf(w, "a %d %d\n", nextSlot, size())
		live = append(live, nextSlot)
		nextSlot++
	}

	// Churn at steady state.
	for i := 0; i < *opCount; i++ {
		j := rng.Intn(len(live))
		if rng.Intn(100) < *resizePct {
			fmt.Fprintf(w, "r %d %d\n", live[j], size())
			continue
		}
		fmt.Fprintf(w, "f %d\n", live[j])
		fmt.Fprintf(w, "a %d %d\n", nextSlot, size())
		live[j] = nextSlot
		nextSlot++
	}

	// Drain.
	for _, slot := range live {
		fmt.Fprintf(w, "f %d\n", slot)
	}
}
