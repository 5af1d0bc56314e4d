package mergefs

import (
	"io/fs"
	"os"
	"time"

	"github.com/absfs/absfs"
)

// filerAdapter wraps FS to implement absfs.Filer with correct types.
type filerAdapter struct {
	u *FS
}

// Ensure filerAdapter implements absfs.Filer interface at compile time
var _ absfs.Filer = (*filerAdapter)(nil)

// FileSystem returns an absfs.FileSystem view of the composite. The
// returned FileSystem maintains its own working directory state and
// provides the full absfs.FileSystem interface including convenience
// methods like Open, Create, MkdirAll and RemoveAll, all resolved through
// the composite's fallback and merge policies.
//
// Example:
//
//	u := mergefs.New().
//	    Attach(base, mergefs.ReadOnly()).
//	    Attach(overlay)
//
//	fs := u.FileSystem()
//	fs.Chdir("/app")
//	file, err := fs.Open("config.yml")
func (u *FS) FileSystem() absfs.FileSystem {
	return absfs.ExtendFiler(&filerAdapter{u: u})
}

// Sub returns an io/fs filesystem rooted at the given directory, resolved
// across all backends.
func (u *FS) Sub(dir string) (fs.FS, error) {
	dir = cleanPath(dir)
	return absfs.FilerToFS(&filerAdapter{u: u}, dir)
}

// OpenFile implements absfs.Filer
func (a *filerAdapter) OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error) {
	return a.u.OpenFile(name, flag, perm)
}

// Mkdir implements absfs.Filer
func (a *filerAdapter) Mkdir(name string, perm os.FileMode) error {
	return a.u.Mkdir(name, perm)
}

// Remove implements absfs.Filer
func (a *filerAdapter) Remove(name string) error {
	return a.u.Remove(name)
}

// Rename implements absfs.Filer
func (a *filerAdapter) Rename(oldpath, newpath string) error {
	return a.u.Rename(oldpath, newpath)
}

// Stat implements absfs.Filer
func (a *filerAdapter) Stat(name string) (os.FileInfo, error) {
	return a.u.Stat(name)
}

// Chmod implements absfs.Filer
func (a *filerAdapter) Chmod(name string, mode os.FileMode) error {
	return a.u.Chmod(name, mode)
}

// Chtimes implements absfs.Filer
func (a *filerAdapter) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return a.u.Chtimes(name, atime, mtime)
}

// Chown implements absfs.Filer
func (a *filerAdapter) Chown(name string, uid, gid int) error {
	return a.u.Chown(name, uid, gid)
}

// Truncate changes the size of the named file
func (a *filerAdapter) Truncate(name string, size int64) error {
	return a.u.Truncate(name, size)
}

// Separator returns the path separator (always forward slash for virtual paths)
func (a *filerAdapter) Separator() uint8 {
	return '/'
}

// ListSeparator returns the path list separator (always colon for virtual paths)
func (a *filerAdapter) ListSeparator() uint8 {
	return ':'
}
