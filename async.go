package mergefs

import (
	"io/fs"
	"os"
	"time"

	"github.com/absfs/absfs"
)

// AsyncFS is the callback-style surface of a composite filesystem. Every
// operation takes a trailing callback invoked exactly once, either with the
// first success or with the terminal failure carrying the full attempt
// chain. Each call runs the same sequential fallback loop as the blocking
// surface on a single goroutine; backend attempts are never issued
// concurrently for one logical call, so results and chains are identical
// across the calling conventions.
type AsyncFS struct {
	u *FS
}

// Async returns the callback-style view of the filesystem.
func (u *FS) Async() *AsyncFS {
	return &AsyncFS{u: u}
}

// Open resolves an open through the ordered fallback.
func (a *AsyncFS) Open(name string, cb func(absfs.File, error)) {
	go func() { cb(a.u.Open(name)) }()
}

// OpenFile resolves an open with explicit flags.
func (a *AsyncFS) OpenFile(name string, flag int, perm os.FileMode, cb func(absfs.File, error)) {
	go func() { cb(a.u.OpenFile(name, flag, perm)) }()
}

// Stat resolves a stat through the ordered fallback.
func (a *AsyncFS) Stat(name string, cb func(os.FileInfo, error)) {
	go func() { cb(a.u.Stat(name)) }()
}

// Lstat resolves an lstat through the ordered fallback.
func (a *AsyncFS) Lstat(name string, cb func(os.FileInfo, error)) {
	go func() { cb(a.u.Lstat(name)) }()
}

// ReadFile reads a whole file.
func (a *AsyncFS) ReadFile(name string, cb func([]byte, error)) {
	go func() { cb(a.u.ReadFile(name)) }()
}

// WriteFile writes a whole file.
func (a *AsyncFS) WriteFile(name string, data []byte, perm os.FileMode, cb func(error)) {
	go func() { cb(a.u.WriteFile(name, data, perm)) }()
}

// Readlink reads a symlink destination.
func (a *AsyncFS) Readlink(name string, cb func(string, error)) {
	go func() { cb(a.u.Readlink(name)) }()
}

// Remove deletes a file or empty directory.
func (a *AsyncFS) Remove(name string, cb func(error)) {
	go func() { cb(a.u.Remove(name)) }()
}

// RemoveAll removes a path and all children.
func (a *AsyncFS) RemoveAll(name string, cb func(error)) {
	go func() { cb(a.u.RemoveAll(name)) }()
}

// Mkdir creates a directory.
func (a *AsyncFS) Mkdir(name string, perm os.FileMode, cb func(error)) {
	go func() { cb(a.u.Mkdir(name, perm)) }()
}

// MkdirAll creates a directory and all parents.
func (a *AsyncFS) MkdirAll(name string, perm os.FileMode, cb func(error)) {
	go func() { cb(a.u.MkdirAll(name, perm)) }()
}

// Rename renames a file or directory.
func (a *AsyncFS) Rename(oldname, newname string, cb func(error)) {
	go func() { cb(a.u.Rename(oldname, newname)) }()
}

// Truncate changes the size of a file.
func (a *AsyncFS) Truncate(name string, size int64, cb func(error)) {
	go func() { cb(a.u.Truncate(name, size)) }()
}

// Chmod changes file permissions.
func (a *AsyncFS) Chmod(name string, mode os.FileMode, cb func(error)) {
	go func() { cb(a.u.Chmod(name, mode)) }()
}

// Chtimes changes file access and modification times.
func (a *AsyncFS) Chtimes(name string, atime, mtime time.Time, cb func(error)) {
	go func() { cb(a.u.Chtimes(name, atime, mtime)) }()
}

// ReadDir produces the merged composite listing, not a single-target
// result.
func (a *AsyncFS) ReadDir(name string, cb func([]fs.DirEntry, error)) {
	go func() { cb(a.u.ReadDir(name)) }()
}

// Exists reports whether any readable entry has the path.
func (a *AsyncFS) Exists(name string, cb func(bool)) {
	go func() { cb(a.u.Exists(name)) }()
}
