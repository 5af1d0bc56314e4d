// Package mergefs presents multiple independently-implemented filesystem
// backends as a single composite filesystem with ordered fallback and
// merged directory listings.
package mergefs

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// FS is a composite filesystem over an ordered list of backends.
//
// Backends are attached with Attach; the most-recently-attached backend has
// the highest priority and is tried first by every resolution algorithm.
// The entry list is append-only: there is no detach, and priority is purely
// positional.
type FS struct {
	mu      sync.RWMutex
	entries []*adapter
	log     zerolog.Logger
}

// Option is a functional option for configuring FS.
type Option func(*FS)

// WithLogger injects a logger used to trace per-backend attempts and
// fallbacks. Without it the filesystem is silent.
func WithLogger(log zerolog.Logger) Option {
	return func(u *FS) {
		u.log = log
	}
}

// New creates an empty composite filesystem.
func New(opts ...Option) *FS {
	u := &FS{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Name returns the name of the filesystem.
func (u *FS) Name() string {
	return "MergeFS"
}

// AttachOption configures the capability flags of one attached backend.
type AttachOption func(*attachConfig)

type attachConfig struct {
	readable bool
	writable bool
}

// ReadOnly attaches the backend for the read direction only.
func ReadOnly() AttachOption {
	return func(c *attachConfig) {
		c.readable = true
		c.writable = false
	}
}

// WriteOnly attaches the backend for the write direction only.
func WriteOnly() AttachOption {
	return func(c *attachConfig) {
		c.readable = false
		c.writable = true
	}
}

// WithReadable sets the readable capability flag (default true).
func WithReadable(v bool) AttachOption {
	return func(c *attachConfig) {
		c.readable = v
	}
}

// WithWritable sets the writable capability flag (default true).
func WithWritable(v bool) AttachOption {
	return func(c *attachConfig) {
		c.writable = v
	}
}

// Attach registers a backend at the highest priority position and returns
// the receiver for fluent chaining. The backend's operation table is
// normalized once, here, not per call: operations the backend does not
// implement become ErrUnsupported stubs, and operations whose direction is
// disabled by the flags become ErrNotReadable/ErrNotWritable stubs.
func (u *FS) Attach(backend Backend, opts ...AttachOption) *FS {
	cfg := attachConfig{readable: true, writable: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	a := wrap(backend, cfg.readable, cfg.writable)

	u.mu.Lock()
	u.entries = append(u.entries, a)
	n := len(u.entries)
	u.mu.Unlock()

	u.log.Debug().
		Int("priority", n-1).
		Bool("readable", cfg.readable).
		Bool("writable", cfg.writable).
		Msg("backend attached")
	return u
}

// Len returns the number of attached backends.
func (u *FS) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.entries)
}

// snapshot returns the current entry list. The list is append-only and
// Attach swaps the slice header under the lock, so the returned slice is
// safe to iterate without holding it.
func (u *FS) snapshot() []*adapter {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.entries
}

// cleanPath normalizes a path to an absolute, slash-rooted form.
func cleanPath(path string) string {
	cleaned := filepath.Clean(path)
	if !filepath.IsAbs(cleaned) && !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	return cleaned
}
