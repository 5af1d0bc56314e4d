/*
Package mergefs presents multiple independently-implemented filesystem
backends as a single composite filesystem.

# Overview

A composite filesystem holds an ordered list of backends. Callers issue one
filesystem operation and mergefs decides, per operation kind, how to resolve
it: single-target operations (open, read, stat, write, remove, ...) try
backends in priority order until one succeeds, while aggregate operations
(directory listing, watching) query every eligible backend and merge the
results into one deterministic view.

Each backend carries independent readable/writable capability flags, so a
backend can participate read-only, write-only, or be disabled for one
direction while still serving the other.

# Priority

Backends are attached with Attach; the most-recently-attached backend has
the highest priority and is tried first by every resolution algorithm. The
list is append-only and priority is purely positional.

	u := mergefs.New().
	    Attach(archive, mergefs.ReadOnly()).  // lowest priority
	    Attach(cacheFS).                      // higher
	    Attach(scratch)                       // highest, tried first

# Fallback and the error chain

Single-target operations surface only the terminal failure, but that
failure carries the complete history of every backend attempted before it:

	_, err := u.Stat("/missing")
	var me *mergefs.Error
	if errors.As(err, &me) {
	    for _, attempt := range me.Chain() {
	        fmt.Println(attempt) // in attempt order
	    }
	}

An operation against an empty registry fails with ErrNoBackends, distinct
from the same operation failing on every attached backend, so
misconfiguration is always distinguishable from genuine failure.

# Directory merging

ReadDir visits every readable backend in priority order and merges the
per-name entries into one sorted, deduplicated listing. On a name collision
the highest-priority backend's entry wins. Individual backend failures are
suppressed once any backend has contributed data; a failure is surfaced
only if no backend contributed anything.

# Calling conventions

Three surfaces share one ordering and error-chaining policy:

	u.Stat("/f")                                  // blocking
	u.Async().Stat("/f", func(os.FileInfo, error) {...}) // callback
	info, err := u.Promises().Stat("/f").Await()  // promise

Only the suspension mechanism differs; for the same inputs all three
produce the same result and the same chain. The asynchronous surfaces run
each logical call on one goroutine with strictly sequential backend
attempts.

# Backends

Any value with a Stat method can be attached. The adapter probes the
optional capability interfaces (OpenFileBackend, ReadDirBackend,
WatchBackend, ...) once at attach time; operations a backend does not
provide fail deterministically with ErrUnsupported, and operations whose
direction is disabled by the attach flags fail with ErrNotReadable or
ErrNotWritable. absfs filesystems satisfy the interfaces directly, and
FromAfero adapts any afero.Fs.

# Streams

CreateReadStream and CreateWriteStream return the live stream together
with the backend that produced it, so identity checks against the serving
backend keep working without any process-global state:

	s, err := u.CreateReadStream("/data.bin")
	if err == nil && s.Backend() == cacheFS {
	    // served from cache
	}

# Watching

Watch fans out to every readable backend and returns one composite handle;
backends whose watch attempt fails are silently excluded, so starting a
watch never fails. Closing the composite broadcasts to every live
per-backend handle. UnwatchFile is not supported and always returns
ErrUnwatchFile.

# Limitations

  - No caching of results across calls.
  - No transactional semantics or atomicity across backends.
  - No cancellation or timeout: a hung backend call hangs the logical
    operation.
  - Rename and other multi-path operations resolve within a single
    backend; data is never copied between backends.
*/
package mergefs
