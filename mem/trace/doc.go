// Package trace parses and replays allocation trace scripts.
//
// A trace is a line-oriented text format describing a sequence of
// allocator operations against numbered slots:
//
//	# comment
//	a <slot> <bytes>    allocate <bytes> into slot
//	r <slot> <bytes>    resize slot to <bytes>
//	f <slot>            free slot
//
// Replay drives the operations against a live allocator, tracking the
// slot-to-reference mapping and optionally stamping and re-checking
// payload fill patterns to detect block overlap. Traces are the main
// vehicle for regression-testing placement policy and for measuring
// utilization of real workloads.
package trace
