package mergefs

import (
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/absfs/absfs"
)

// Backend is the minimal contract a backend filesystem must satisfy to be
// attached. Everything beyond Stat is optional: the adapter probes the
// capability interfaces below once, at attach time, and any operation the
// backend does not provide becomes a deterministic ErrUnsupported failure.
type Backend interface {
	Stat(name string) (os.FileInfo, error)
}

// Optional capability interfaces. A backend advertises an operation simply
// by implementing the corresponding method; absfs and afero filesystems
// satisfy most of these as-is.
type (
	// OpenFileBackend opens files. Backends that provide it also get
	// synthesized ReadFile, WriteFile, ReadDir and stream support unless
	// they implement those capabilities directly.
	OpenFileBackend interface {
		OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error)
	}

	// LstatBackend stats without following symlinks.
	LstatBackend interface {
		Lstat(name string) (os.FileInfo, error)
	}

	// ReadDirBackend lists a directory.
	ReadDirBackend interface {
		ReadDir(name string) ([]fs.DirEntry, error)
	}

	// ReadFileBackend reads a whole file.
	ReadFileBackend interface {
		ReadFile(name string) ([]byte, error)
	}

	// WriteFileBackend writes a whole file.
	WriteFileBackend interface {
		WriteFile(name string, data []byte, perm os.FileMode) error
	}

	// RemoveBackend deletes a file or empty directory.
	RemoveBackend interface {
		Remove(name string) error
	}

	// RemoveAllBackend deletes a path and all children.
	RemoveAllBackend interface {
		RemoveAll(name string) error
	}

	// MkdirBackend creates a directory.
	MkdirBackend interface {
		Mkdir(name string, perm os.FileMode) error
	}

	// MkdirAllBackend creates a directory and all parents.
	MkdirAllBackend interface {
		MkdirAll(name string, perm os.FileMode) error
	}

	// RenameBackend renames a file or directory.
	RenameBackend interface {
		Rename(oldname, newname string) error
	}

	// TruncateBackend changes the size of a file.
	TruncateBackend interface {
		Truncate(name string, size int64) error
	}

	// ChmodBackend changes file permissions.
	ChmodBackend interface {
		Chmod(name string, mode os.FileMode) error
	}

	// ChownBackend changes file ownership.
	ChownBackend interface {
		Chown(name string, uid, gid int) error
	}

	// ChtimesBackend changes file access and modification times.
	ChtimesBackend interface {
		Chtimes(name string, atime, mtime time.Time) error
	}

	// SymlinkBackend creates symbolic links.
	SymlinkBackend interface {
		Symlink(oldname, newname string) error
	}

	// ReadlinkBackend reads the destination of a symbolic link.
	ReadlinkBackend interface {
		Readlink(name string) (string, error)
	}

	// ExistsBackend answers existence checks directly. Backends without it
	// are probed with Stat instead.
	ExistsBackend interface {
		Exists(name string) (bool, error)
	}

	// StreamBackend constructs live byte streams.
	StreamBackend interface {
		CreateReadStream(name string) (io.ReadCloser, error)
		CreateWriteStream(name string) (io.WriteCloser, error)
	}

	// WatchBackend starts a watch on a path and returns a live handle.
	WatchBackend interface {
		Watch(name string) (WatchHandle, error)
	}

	// WatchFileBackend registers a listener for changes to a file.
	WatchFileBackend interface {
		WatchFile(name string, listener func(os.FileInfo)) error
	}
)

// adapter is one attached backend with its normalized operation table.
// The table is built once by wrap; resolution code calls the bound
// functions without re-checking capabilities.
type adapter struct {
	backend  Backend
	readable bool
	writable bool

	// Generic single-target table. Always non-nil: missing or denied
	// operations are bound to failing stubs.
	stat     func(string) (os.FileInfo, error)
	lstat    func(string) (os.FileInfo, error)
	readFile func(string) ([]byte, error)
	readlink func(string) (string, error)

	writeFile func(string, []byte, os.FileMode) error
	remove    func(string) error
	removeAll func(string) error
	mkdir     func(string, os.FileMode) error
	mkdirAll  func(string, os.FileMode) error
	rename    func(string, string) error
	truncate  func(string, int64) error
	chmod     func(string, os.FileMode) error
	chown     func(string, int, int) error
	chtimes   func(string, time.Time, time.Time) error
	symlink   func(string, string) error

	// Special-cased operations whose fallback or merge policy differs from
	// the generic split. Nil means unavailable; their resolvers do their
	// own capability gating.
	openFile    func(string, int, os.FileMode) (absfs.File, error)
	readDir     func(string) ([]fs.DirEntry, error)
	readStream  func(string) (io.ReadCloser, error)
	writeStream func(string) (io.WriteCloser, error)
	exists      func(string) (bool, error)
	watch       func(string) (WatchHandle, error)
	watchFile   func(string, func(os.FileInfo)) error
}

// opError builds a single-attempt failure value.
func opError(op, path string, cause error) *Error {
	return &Error{Op: op, Path: path, Err: cause}
}

// failInfo returns a stub for a path -> (T, error) operation.
func failPath1[T any](op string, cause error) func(string) (T, error) {
	return func(name string) (T, error) {
		var zero T
		return zero, opError(op, name, cause)
	}
}

// failPath returns a stub for a path -> error operation.
func failPath(op string, cause error) func(string) error {
	return func(name string) error {
		return opError(op, name, cause)
	}
}

// failMode returns a stub for a (path, mode) -> error operation.
func failMode(op string, cause error) func(string, os.FileMode) error {
	return func(name string, _ os.FileMode) error {
		return opError(op, name, cause)
	}
}

// failPair returns a stub for a (path, path) -> error operation.
func failPair(op string, cause error) func(string, string) error {
	return func(oldname, _ string) error {
		return opError(op, oldname, cause)
	}
}

// wrap normalizes a raw backend into a capability-gated adapter. This is a
// build step at registration, not a per-request check.
func wrap(b Backend, readable, writable bool) *adapter {
	a := &adapter{backend: b, readable: readable, writable: writable}
	a.bindSpecial(b)
	a.bindRead(b, readable)
	a.bindWrite(b, writable)
	return a
}

// bindSpecial probes the operations handled outside the generic tables.
func (a *adapter) bindSpecial(b Backend) {
	open, hasOpen := b.(OpenFileBackend)
	if hasOpen {
		a.openFile = open.OpenFile
	}

	if r, ok := b.(ReadDirBackend); ok {
		a.readDir = r.ReadDir
	} else if hasOpen {
		a.readDir = func(name string) ([]fs.DirEntry, error) {
			dir, err := open.OpenFile(name, os.O_RDONLY, 0)
			if err != nil {
				return nil, err
			}
			infos, err := dir.Readdir(-1)
			dir.Close()
			if err != nil {
				return nil, err
			}
			entries := make([]fs.DirEntry, len(infos))
			for i, info := range infos {
				entries[i] = fs.FileInfoToDirEntry(info)
			}
			return entries, nil
		}
	}

	if s, ok := b.(StreamBackend); ok {
		a.readStream = s.CreateReadStream
		a.writeStream = s.CreateWriteStream
	} else if hasOpen {
		a.readStream = func(name string) (io.ReadCloser, error) {
			return open.OpenFile(name, os.O_RDONLY, 0)
		}
		a.writeStream = func(name string) (io.WriteCloser, error) {
			return open.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
		}
	}

	if e, ok := b.(ExistsBackend); ok {
		a.exists = e.Exists
	}
	if w, ok := b.(WatchBackend); ok {
		a.watch = w.Watch
	}
	if w, ok := b.(WatchFileBackend); ok {
		a.watchFile = w.WatchFile
	}
}

// bindRead builds the read-direction half of the generic table.
func (a *adapter) bindRead(b Backend, readable bool) {
	if !readable {
		a.stat = failPath1[os.FileInfo]("stat", ErrNotReadable)
		a.lstat = failPath1[os.FileInfo]("lstat", ErrNotReadable)
		a.readFile = failPath1[[]byte]("readfile", ErrNotReadable)
		a.readlink = failPath1[string]("readlink", ErrNotReadable)
		return
	}

	a.stat = b.Stat

	if l, ok := b.(LstatBackend); ok {
		a.lstat = l.Lstat
	} else {
		// Fall back to Stat when Lstat is not available.
		a.lstat = b.Stat
	}

	if r, ok := b.(ReadFileBackend); ok {
		a.readFile = r.ReadFile
	} else if a.openFile != nil {
		open := a.openFile
		a.readFile = func(name string) ([]byte, error) {
			f, err := open(name, os.O_RDONLY, 0)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			return io.ReadAll(f)
		}
	} else {
		a.readFile = failPath1[[]byte]("readfile", ErrUnsupported)
	}

	if r, ok := b.(ReadlinkBackend); ok {
		a.readlink = r.Readlink
	} else {
		a.readlink = failPath1[string]("readlink", ErrUnsupported)
	}
}

// bindWrite builds the write-direction half of the generic table.
func (a *adapter) bindWrite(b Backend, writable bool) {
	if !writable {
		a.writeFile = func(name string, _ []byte, _ os.FileMode) error {
			return opError("writefile", name, ErrNotWritable)
		}
		a.remove = failPath("remove", ErrNotWritable)
		a.removeAll = failPath("removeall", ErrNotWritable)
		a.mkdir = failMode("mkdir", ErrNotWritable)
		a.mkdirAll = failMode("mkdirall", ErrNotWritable)
		a.chmod = failMode("chmod", ErrNotWritable)
		a.rename = failPair("rename", ErrNotWritable)
		a.symlink = failPair("symlink", ErrNotWritable)
		a.truncate = func(name string, _ int64) error {
			return opError("truncate", name, ErrNotWritable)
		}
		a.chown = func(name string, _, _ int) error {
			return opError("chown", name, ErrNotWritable)
		}
		a.chtimes = func(name string, _, _ time.Time) error {
			return opError("chtimes", name, ErrNotWritable)
		}
		return
	}

	if w, ok := b.(WriteFileBackend); ok {
		a.writeFile = w.WriteFile
	} else if a.openFile != nil {
		open := a.openFile
		a.writeFile = func(name string, data []byte, perm os.FileMode) error {
			f, err := open(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
			if err != nil {
				return err
			}
			defer f.Close()
			_, err = f.Write(data)
			return err
		}
	} else {
		a.writeFile = func(name string, _ []byte, _ os.FileMode) error {
			return opError("writefile", name, ErrUnsupported)
		}
	}

	if r, ok := b.(RemoveBackend); ok {
		a.remove = r.Remove
	} else {
		a.remove = failPath("remove", ErrUnsupported)
	}

	if r, ok := b.(RemoveAllBackend); ok {
		a.removeAll = r.RemoveAll
	} else {
		a.removeAll = failPath("removeall", ErrUnsupported)
	}

	if m, ok := b.(MkdirBackend); ok {
		a.mkdir = m.Mkdir
	} else {
		a.mkdir = failMode("mkdir", ErrUnsupported)
	}

	if m, ok := b.(MkdirAllBackend); ok {
		a.mkdirAll = m.MkdirAll
	} else {
		a.mkdirAll = failMode("mkdirall", ErrUnsupported)
	}

	if r, ok := b.(RenameBackend); ok {
		a.rename = r.Rename
	} else {
		a.rename = failPair("rename", ErrUnsupported)
	}

	if t, ok := b.(TruncateBackend); ok {
		a.truncate = t.Truncate
	} else {
		a.truncate = func(name string, _ int64) error {
			return opError("truncate", name, ErrUnsupported)
		}
	}

	if c, ok := b.(ChmodBackend); ok {
		a.chmod = c.Chmod
	} else {
		a.chmod = failMode("chmod", ErrUnsupported)
	}

	if c, ok := b.(ChownBackend); ok {
		a.chown = c.Chown
	} else {
		a.chown = func(name string, _, _ int) error {
			return opError("chown", name, ErrUnsupported)
		}
	}

	if c, ok := b.(ChtimesBackend); ok {
		a.chtimes = c.Chtimes
	} else {
		a.chtimes = func(name string, _, _ time.Time) error {
			return opError("chtimes", name, ErrUnsupported)
		}
	}

	if s, ok := b.(SymlinkBackend); ok {
		a.symlink = s.Symlink
	} else {
		a.symlink = failPair("symlink", ErrUnsupported)
	}
}
