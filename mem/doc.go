// Package mem owns the managed memory region and the raw-memory provider
// boundary consumed by the allocator.
//
// # Region
//
// A Region is a single contiguous, growable byte span. It knows nothing
// about blocks or free lists; it only tracks the span's bounds and asks its
// Provider for more bytes when extended. Growth is monotonic: the region
// never shrinks and offsets handed out earlier stay valid across extensions.
//
// # Providers
//
// The Provider interface is the only boundary crossing out of the allocator
// core: "grow the span by n bytes, or report that no more memory is
// available". Two implementations are included:
//
//   - SliceProvider: portable, backed by an ordinary byte slice. An optional
//     byte limit makes exhaustion deterministic for tests.
//   - MmapProvider (unix): reserves a fixed anonymous mapping up front and
//     commits pages with mprotect as the region grows, so the backing memory
//     never relocates. On other platforms the constructor falls back to a
//     slice-backed provider.
//
// # Thread safety
//
// Regions and providers are not thread-safe. Callers must serialize access
// externally.
package mem
