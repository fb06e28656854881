package trace

import (
	"fmt"

	"github.com/heapkit/heapkit/mem/alloc"
	"github.com/heapkit/heapkit/mem/verify"
)

// Options controls replay strictness.
type Options struct {
	// CheckFill stamps every payload with a slot-derived byte pattern and
	// re-verifies it before each mutation of the slot, catching block
	// overlap that structural checks alone would miss.
	CheckFill bool

	// Verify runs the full structural invariant sweep after every
	// operation. Expensive; meant for regression traces, not measurement.
	Verify bool
}

// Result summarizes a completed replay.
type Result struct {
	Ops     int
	Allocs  int
	Resizes int
	Frees   int

	// PeakLive is the high-water mark of requested bytes across the
	// trace; Utilization is that peak against the final region size, the
	// standard figure of merit for placement policy.
	PeakLive    int64
	FinalLive   int64
	RegionSize  int
	Utilization float64
}

type slot struct {
	ref  alloc.Ref
	size int
}

// Replay drives ops against a. The allocator is left in the trace's
// final state so callers can inspect or report on it. An operation
// error aborts the replay and is returned wrapped with its line number.
func Replay(a *alloc.Allocator, ops []Op, opts Options) (*Result, error) {
	slots := make(map[int]slot)
	res := &Result{Ops: len(ops)}
	var live int64

	for _, op := range ops {
		if err := step(a, slots, op, opts, res, &live); err != nil {
			return nil, err
		}
		if opts.Verify {
			if err := verify.AllInvariants(a.Region().Bytes()); err != nil {
				return nil, fmt.Errorf("trace: line %d: invariant violated after %c %d: %w",
					op.Line, op.Kind, op.Slot, err)
			}
		}
	}

	res.FinalLive = live
	res.RegionSize = a.Region().Size()
	if res.RegionSize > 0 {
		res.Utilization = float64(res.PeakLive) / float64(res.RegionSize)
	}
	return res, nil
}

func step(a *alloc.Allocator, slots map[int]slot, op Op, opts Options, res *Result, live *int64) error {
	switch op.Kind {
	case OpAlloc:
		if _, ok := slots[op.Slot]; ok {
			return fmt.Errorf("trace: line %d: slot %d already allocated", op.Line, op.Slot)
		}
		ref, payload, err := a.Allocate(op.Size)
		if err != nil {
			return fmt.Errorf("trace: line %d: alloc %d bytes: %w", op.Line, op.Size, err)
		}
		if opts.CheckFill {
			stampFill(payload[:op.Size], op.Slot)
		}
		slots[op.Slot] = slot{ref: ref, size: op.Size}
		res.Allocs++
		*live += int64(op.Size)

	case OpResize:
		s, ok := slots[op.Slot]
		if !ok {
			return fmt.Errorf("trace: line %d: resize of empty slot %d", op.Line, op.Slot)
		}
		if opts.CheckFill {
			if err := checkFill(a, s, op); err != nil {
				return err
			}
		}
		ref, payload, err := a.Resize(s.ref, op.Size)
		if err != nil {
			return fmt.Errorf("trace: line %d: resize slot %d to %d bytes: %w", op.Line, op.Slot, op.Size, err)
		}
		if opts.CheckFill {
			stampFill(payload[:op.Size], op.Slot)
		}
		slots[op.Slot] = slot{ref: ref, size: op.Size}
		res.Resizes++
		*live += int64(op.Size - s.size)

	case OpFree:
		s, ok := slots[op.Slot]
		if !ok {
			return fmt.Errorf("trace: line %d: free of empty slot %d", op.Line, op.Slot)
		}
		if opts.CheckFill {
			if err := checkFill(a, s, op); err != nil {
				return err
			}
		}
		if err := a.Free(s.ref); err != nil {
			return fmt.Errorf("trace: line %d: free slot %d: %w", op.Line, op.Slot, err)
		}
		delete(slots, op.Slot)
		res.Frees++
		*live -= int64(s.size)
	}

	if *live > res.PeakLive {
		res.PeakLive = *live
	}
	return nil
}

// fillByte derives a slot's stamp byte; zero is avoided so a stamp is
// never mistaken for untouched memory.
func fillByte(slot int) byte {
	b := byte(slot)
	if b == 0 {
		b = 0xFF
	}
	return b
}

func stampFill(p []byte, slot int) {
	b := fillByte(slot)
	for i := range p {
		p[i] = b
	}
}

func checkFill(a *alloc.Allocator, s slot, op Op) error {
	data := a.Region().Bytes()
	want := fillByte(op.Slot)
	for i := 0; i < s.size; i++ {
		if got := data[int(s.ref)+i]; got != want {
			return fmt.Errorf("trace: line %d: slot %d payload corrupted at byte %d (got %#02x, want %#02x)",
				op.Line, op.Slot, i, got, want)
		}
	}
	return nil
}
