package alloc

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report writes a human-readable utilization and fragmentation summary.
// Numbers are printed with digit grouping for readability of large
// regions.
func (a *Allocator) Report(w io.Writer) {
	p := message.NewPrinter(language.English)
	s := a.stats
	regionSize := a.r.Size()

	live := a.LiveBytes()
	var utilization float64
	if regionSize > 0 {
		utilization = float64(live) / float64(regionSize) * 100
	}

	p.Fprintf(w, "Region size:      %d bytes\n", regionSize)
	p.Fprintf(w, "Live bytes:       %d (%.1f%% of region)\n", live, utilization)
	p.Fprintf(w, "Extensions:       %d (%d bytes)\n", s.ExtendCalls, s.ExtendBytes)
	p.Fprintf(w, "Allocations:      %d (%d fast, %d grew)\n",
		s.AllocCalls, s.AllocFastPath, s.AllocSlowPath)
	p.Fprintf(w, "Frees:            %d\n", s.FreeCalls)
	p.Fprintf(w, "Resizes:          %d (%d grew in place, %d shrank in place)\n",
		s.ResizeCalls, s.GrowInPlace, s.ShrinkInPlace)
	p.Fprintf(w, "Splits:           %d\n", s.SplitCount)
	p.Fprintf(w, "Coalesces:        %d forward, %d backward\n",
		s.CoalesceForward, s.CoalesceBackward)

	counts := a.freeCountByClass()
	total := 0
	for _, c := range counts {
		total += c
	}
	p.Fprintf(w, "Free blocks:      %d\n", total)
	for sc, c := range counts {
		if c == 0 {
			continue
		}
		p.Fprintf(w, "  class %2d:       %d\n", sc, c)
	}
}
