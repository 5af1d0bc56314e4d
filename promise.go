package mergefs

import (
	"io/fs"
	"os"
	"time"

	"github.com/absfs/absfs"
)

// Future is the result of a promise-style operation. Await blocks until the
// operation completes and returns its outcome; it may be called any number
// of times.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// newFuture runs fn on its own goroutine and resolves the future with its
// outcome.
func newFuture[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		f.val, f.err = fn()
		close(f.done)
	}()
	return f
}

// Await blocks until the operation completes.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.val, f.err
}

// Done returns a channel closed when the operation completes.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// voidFuture adapts an error-only operation into a Future.
func voidFuture(fn func() error) *Future[struct{}] {
	return newFuture(func() (struct{}, error) {
		return struct{}{}, fn()
	})
}

// PromiseFS is the promise-style surface of a composite filesystem. Each
// operation returns a Future resolved by the same sequential fallback loop
// as the blocking surface, so results and attempt chains are identical
// across the calling conventions. ReadDir is the merging variant, as in
// the other two surfaces.
type PromiseFS struct {
	u *FS
}

// Promises returns the promise-style view of the filesystem.
func (u *FS) Promises() *PromiseFS {
	return &PromiseFS{u: u}
}

// Open resolves an open through the ordered fallback.
func (p *PromiseFS) Open(name string) *Future[absfs.File] {
	return newFuture(func() (absfs.File, error) { return p.u.Open(name) })
}

// OpenFile resolves an open with explicit flags.
func (p *PromiseFS) OpenFile(name string, flag int, perm os.FileMode) *Future[absfs.File] {
	return newFuture(func() (absfs.File, error) { return p.u.OpenFile(name, flag, perm) })
}

// Stat resolves a stat through the ordered fallback.
func (p *PromiseFS) Stat(name string) *Future[os.FileInfo] {
	return newFuture(func() (os.FileInfo, error) { return p.u.Stat(name) })
}

// Lstat resolves an lstat through the ordered fallback.
func (p *PromiseFS) Lstat(name string) *Future[os.FileInfo] {
	return newFuture(func() (os.FileInfo, error) { return p.u.Lstat(name) })
}

// ReadFile reads a whole file.
func (p *PromiseFS) ReadFile(name string) *Future[[]byte] {
	return newFuture(func() ([]byte, error) { return p.u.ReadFile(name) })
}

// WriteFile writes a whole file.
func (p *PromiseFS) WriteFile(name string, data []byte, perm os.FileMode) *Future[struct{}] {
	return voidFuture(func() error { return p.u.WriteFile(name, data, perm) })
}

// Readlink reads a symlink destination.
func (p *PromiseFS) Readlink(name string) *Future[string] {
	return newFuture(func() (string, error) { return p.u.Readlink(name) })
}

// Remove deletes a file or empty directory.
func (p *PromiseFS) Remove(name string) *Future[struct{}] {
	return voidFuture(func() error { return p.u.Remove(name) })
}

// RemoveAll removes a path and all children.
func (p *PromiseFS) RemoveAll(name string) *Future[struct{}] {
	return voidFuture(func() error { return p.u.RemoveAll(name) })
}

// Mkdir creates a directory.
func (p *PromiseFS) Mkdir(name string, perm os.FileMode) *Future[struct{}] {
	return voidFuture(func() error { return p.u.Mkdir(name, perm) })
}

// MkdirAll creates a directory and all parents.
func (p *PromiseFS) MkdirAll(name string, perm os.FileMode) *Future[struct{}] {
	return voidFuture(func() error { return p.u.MkdirAll(name, perm) })
}

// Rename renames a file or directory.
func (p *PromiseFS) Rename(oldname, newname string) *Future[struct{}] {
	return voidFuture(func() error { return p.u.Rename(oldname, newname) })
}

// Truncate changes the size of a file.
func (p *PromiseFS) Truncate(name string, size int64) *Future[struct{}] {
	return voidFuture(func() error { return p.u.Truncate(name, size) })
}

// Chmod changes file permissions.
func (p *PromiseFS) Chmod(name string, mode os.FileMode) *Future[struct{}] {
	return voidFuture(func() error { return p.u.Chmod(name, mode) })
}

// Chtimes changes file access and modification times.
func (p *PromiseFS) Chtimes(name string, atime, mtime time.Time) *Future[struct{}] {
	return voidFuture(func() error { return p.u.Chtimes(name, atime, mtime) })
}

// ReadDir produces the merged composite listing.
func (p *PromiseFS) ReadDir(name string) *Future[[]fs.DirEntry] {
	return newFuture(func() ([]fs.DirEntry, error) { return p.u.ReadDir(name) })
}

// Exists reports whether any readable entry has the path.
func (p *PromiseFS) Exists(name string) *Future[bool] {
	return newFuture(func() (bool, error) { return p.u.Exists(name), nil })
}
