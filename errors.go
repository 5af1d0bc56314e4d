package mergefs

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBackends is returned when an operation is attempted against an
	// empty registry. It is distinct from every backend failing, so callers
	// can tell misconfiguration apart from genuine operation failure.
	ErrNoBackends = errors.New("no backends attached")

	// ErrNotReadable is returned when a read-direction operation hits a
	// backend attached without the readable capability.
	ErrNotReadable = errors.New("backend not readable")

	// ErrNotWritable is returned when a write-direction operation hits a
	// backend attached without the writable capability.
	ErrNotWritable = errors.New("backend not writable")

	// ErrUnsupported is returned when the underlying backend does not
	// implement the requested operation.
	ErrUnsupported = errors.New("operation not supported by backend")

	// ErrOperationFailed is returned when a non-empty registry has no entry
	// eligible for the requested access mode.
	ErrOperationFailed = errors.New("operation failed")

	// ErrUnwatchFile is always returned by UnwatchFile. Per-backend watches
	// cannot be mapped back to a logical watch request safely; stop watching
	// through the mechanism WatchFile itself provides.
	ErrUnwatchFile = errors.New("unwatchFile is not supported, unregister through WatchFile instead")
)

// Error records one failed backend attempt during resolution. When the
// dispatcher falls back to the next backend, the previous attempt's failure
// is linked through Prev, so the terminal error carries the complete,
// time-ordered attempt history.
type Error struct {
	Op   string
	Path string
	Err  error

	// Prev is the failure of the backend attempted immediately before this
	// one in the same resolution, or nil for the first attempt.
	Prev *Error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause, making the error transparent to
// errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Chain returns every attempt that failed during the resolution this error
// terminated, in attempt order (first attempted backend first). The receiver
// is always the last element.
func (e *Error) Chain() []*Error {
	var chain []*Error
	for cur := e; cur != nil; cur = cur.Prev {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// link wraps err as an *Error for the given operation and attaches the
// previous attempt's failure. The chain is built lazily: a resolution that
// succeeds on its first attempt never allocates one.
func link(op, path string, err error, prev *Error) *Error {
	e, ok := err.(*Error)
	if !ok {
		e = &Error{Op: op, Path: path, Err: err}
	}
	e.Prev = prev
	return e
}
