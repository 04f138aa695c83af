package toml

import "github.com/tomlkit-go/tomlcore/unstable"

// Allocate controls when Parse copies scalar content out of the input
// buffer versus returning a slice that borrows it directly.
type Allocate uint8

const (
	// AllocateIfNeeded returns borrowed slices into the input when a
	// string or key is a single contiguous span with no escapes, and
	// copies only when fragmentation or escape decoding requires it.
	AllocateIfNeeded Allocate = iota
	// AllocateAlways copies every scalar, so the result never borrows
	// from the input buffer and the caller is free to discard or mutate
	// it immediately after Parse returns.
	AllocateAlways
)

// Diagnostics tracks a scanner's running position in the document, for
// callers that want it updated incrementally (e.g. to report progress
// over a very large input) rather than only at the point of failure.
type Diagnostics = unstable.Diagnostics

// Options configures Parse, per spec.md §6.
type Options struct {
	// MaxValueLen bounds the length of any single string/key/number
	// lexeme; exceeding it fails the parse with ValueTooLong. Zero means
	// "no limit beyond len(data)".
	MaxValueLen int

	// Allocate selects the borrow/copy policy for scalar content.
	// Defaults to AllocateIfNeeded.
	Allocate Allocate

	// Diagnostics, if non-nil, is updated in place as the scanner
	// advances through the document instead of a fresh one being
	// allocated internally.
	Diagnostics *Diagnostics
}
