package mergefs

import (
	"os"

	"github.com/absfs/absfs"
)

// openNeeds maps an open flag word onto the capability flags the entry must
// carry. Append mode needs both directions; any flag that can mutate the
// file needs writable; a plain read-only open needs readable.
func openNeeds(flag int) (readable, writable bool) {
	switch {
	case flag&os.O_APPEND != 0:
		return true, true
	case flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC) != 0:
		return false, true
	default:
		return true, false
	}
}

// Open opens a file for reading. Opening a directory returns a handle whose
// Readdir walks the merged composite listing.
func (u *FS) Open(name string) (absfs.File, error) {
	return u.OpenFile(name, os.O_RDONLY, 0)
}

// Create creates a file in the highest-priority writable backend.
func (u *FS) Create(name string) (absfs.File, error) {
	return u.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
}

// OpenFile opens a file by path and flags across the registry. Entries
// whose capability flags do not satisfy the access mode are skipped without
// being attempted and do not contribute to the error chain. The remaining
// entries go through the ordered fallback.
//
// A non-empty registry whose entries were all filtered out fails with
// ErrOperationFailed; ErrNoBackends is reserved for an empty registry.
func (u *FS) OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error) {
	name = cleanPath(name)

	entries := u.snapshot()
	if len(entries) == 0 {
		return nil, opError("open", name, ErrNoBackends)
	}

	needRead, needWrite := openNeeds(flag)

	var prev *Error
	attempted := false
	for i := len(entries) - 1; i >= 0; i-- {
		a := entries[i]
		if (needRead && !a.readable) || (needWrite && !a.writable) {
			continue
		}
		attempted = true

		f, err := a.open(name, flag, perm)
		if err == nil {
			if !needWrite {
				if info, statErr := a.stat(name); statErr == nil && info.IsDir() {
					f.Close()
					return newMergeDir(u, name), nil
				}
			}
			return f, nil
		}
		u.log.Trace().
			Str("op", "open").
			Str("path", name).
			Int("priority", i).
			Err(err).
			Msg("backend attempt failed")
		prev = link("open", name, err, prev)
	}

	if !attempted {
		return nil, opError("open", name, ErrOperationFailed)
	}
	return nil, prev
}

// open attempts an open on one adapter.
func (a *adapter) open(name string, flag int, perm os.FileMode) (absfs.File, error) {
	if a.openFile == nil {
		return nil, opError("open", name, ErrUnsupported)
	}
	return a.openFile(name, flag, perm)
}
