package alloc

import "github.com/heapkit/heapkit/internal/format"

// Config defines the allocator's placement policy knobs.
// Different configurations trade search cost against fragmentation.
type Config struct {
	// Name for this configuration (for benchmarking).
	Name string

	// ClassCount is the number of segregated free-list size classes.
	// Classification saturates at the last class.
	ClassCount int

	// ChunkSize is the minimum region growth increment. Extensions round
	// the request up to at least this many bytes to amortize provider
	// calls.
	ChunkSize int
}

// Predefined configurations.
var (
	// ConfigStandard matches the classic layout: 17 classes, 4KB chunks.
	ConfigStandard = Config{
		Name:       "Standard",
		ClassCount: format.ClassCount,
		ChunkSize:  format.ChunkSize,
	}

	// ConfigCompact uses fewer classes and small chunks; suited to tests
	// and tiny regions where growth granularity matters more than search
	// cost.
	ConfigCompact = Config{
		Name:       "Compact",
		ClassCount: 8,
		ChunkSize:  512,
	}

	// ConfigLargeChunk grows in 64KB steps for workloads dominated by big
	// allocations.
	ConfigLargeChunk = Config{
		Name:       "LargeChunk",
		ClassCount: format.ClassCount,
		ChunkSize:  1 << 16,
	}

	// DefaultConfig is used when New receives a nil config.
	DefaultConfig = ConfigStandard
)

// validate reports whether the configuration is usable.
func (c Config) validate() error {
	if c.ClassCount < 2 || c.ChunkSize < format.MinBlockSize || c.ChunkSize%format.DWordSize != 0 {
		return ErrBadRequest
	}
	return nil
}
