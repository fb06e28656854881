package alloc

// Ref identifies a block by the byte offset of its payload within the
// managed region. The zero value never names a block.
type Ref = uint32

// NoRef is the "no block" sentinel. Resize treats it like a fresh
// allocation; no operation ever returns it together with a nil error
// except Resize(ref, 0), which behaves as Free.
const NoRef Ref = 0
