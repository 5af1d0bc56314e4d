package mergefs

import (
	"os"
)

// WatchHandle is one live per-backend watch.
type WatchHandle interface {
	Close() error
}

// Watcher is the composite handle returned by Watch. Operations broadcast
// to every live per-backend handle; return values from the per-backend
// handles are discarded.
type Watcher struct {
	handles []WatchHandle
}

// Len returns the number of live per-backend watches behind the composite.
func (w *Watcher) Len() int { return len(w.handles) }

// Close stops every per-backend watch. Broadcast is fire-and-forget:
// per-handle errors are discarded and Close always returns nil.
func (w *Watcher) Close() error {
	for _, h := range w.handles {
		h.Close()
	}
	return nil
}

// Watch starts a watch on every readable entry and returns one composite
// handle over the per-backend watches that started successfully. Entries
// whose watch attempt fails are silently excluded from the broadcast; a
// backend that cannot watch never fails the aggregate. With zero live
// watches the composite still exists and broadcasts to nothing.
func (u *FS) Watch(name string) *Watcher {
	name = cleanPath(name)

	w := &Watcher{}
	entries := u.snapshot()
	for i := len(entries) - 1; i >= 0; i-- {
		a := entries[i]
		if !a.readable || a.watch == nil {
			continue
		}
		h, err := a.watch(name)
		if err != nil || h == nil {
			u.log.Trace().
				Str("op", "watch").
				Str("path", name).
				Int("priority", i).
				Err(err).
				Msg("backend watch dropped")
			continue
		}
		w.handles = append(w.handles, h)
	}
	return w
}

// WatchFile registers the listener with every readable entry that supports
// it. The fan-out is best-effort: per-entry failures are dropped and
// nothing is returned.
func (u *FS) WatchFile(name string, listener func(os.FileInfo)) {
	name = cleanPath(name)

	entries := u.snapshot()
	for i := len(entries) - 1; i >= 0; i-- {
		a := entries[i]
		if !a.readable || a.watchFile == nil {
			continue
		}
		if err := a.watchFile(name, listener); err != nil {
			u.log.Trace().
				Str("op", "watchfile").
				Str("path", name).
				Int("priority", i).
				Err(err).
				Msg("backend watchFile dropped")
		}
	}
}

// UnwatchFile always fails: per-backend watches are not tracked well
// enough to reverse a logical watch request safely. Unregister through the
// mechanism WatchFile itself provides.
func (u *FS) UnwatchFile(name string) error {
	return opError("unwatchfile", cleanPath(name), ErrUnwatchFile)
}
