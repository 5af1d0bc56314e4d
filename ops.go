package mergefs

import (
	"os"
	"time"
)

// Generic single-target operations. Each resolves through the ordered
// fallback dispatcher: backends are tried from highest to lowest priority
// and the first success wins.

// Stat returns file info from the first backend that can provide it.
func (u *FS) Stat(name string) (os.FileInfo, error) {
	name = cleanPath(name)
	return resolve1(u, "stat", name, func(a *adapter) (os.FileInfo, error) {
		return a.stat(name)
	})
}

// Lstat returns file info without following symlinks.
func (u *FS) Lstat(name string) (os.FileInfo, error) {
	name = cleanPath(name)
	return resolve1(u, "lstat", name, func(a *adapter) (os.FileInfo, error) {
		return a.lstat(name)
	})
}

// ReadFile reads the named file from the first backend that has it.
func (u *FS) ReadFile(name string) ([]byte, error) {
	name = cleanPath(name)
	return resolve1(u, "readfile", name, func(a *adapter) ([]byte, error) {
		return a.readFile(name)
	})
}

// Readlink returns the destination of a symlink.
func (u *FS) Readlink(name string) (string, error) {
	name = cleanPath(name)
	return resolve1(u, "readlink", name, func(a *adapter) (string, error) {
		return a.readlink(name)
	})
}

// WriteFile writes data to the first writable backend that accepts it.
func (u *FS) WriteFile(name string, data []byte, perm os.FileMode) error {
	name = cleanPath(name)
	return resolve(u, "writefile", name, func(a *adapter) error {
		return a.writeFile(name, data, perm)
	})
}

// Remove deletes a file or empty directory.
func (u *FS) Remove(name string) error {
	name = cleanPath(name)
	return resolve(u, "remove", name, func(a *adapter) error {
		return a.remove(name)
	})
}

// RemoveAll removes a path and all children.
func (u *FS) RemoveAll(name string) error {
	name = cleanPath(name)
	return resolve(u, "removeall", name, func(a *adapter) error {
		return a.removeAll(name)
	})
}

// Mkdir creates a directory.
func (u *FS) Mkdir(name string, perm os.FileMode) error {
	name = cleanPath(name)
	return resolve(u, "mkdir", name, func(a *adapter) error {
		return a.mkdir(name, perm)
	})
}

// MkdirAll creates a directory and all parent directories.
func (u *FS) MkdirAll(name string, perm os.FileMode) error {
	name = cleanPath(name)
	return resolve(u, "mkdirall", name, func(a *adapter) error {
		return a.mkdirAll(name, perm)
	})
}

// Rename renames a file or directory within one backend.
func (u *FS) Rename(oldname, newname string) error {
	oldname = cleanPath(oldname)
	newname = cleanPath(newname)
	return resolve(u, "rename", oldname, func(a *adapter) error {
		return a.rename(oldname, newname)
	})
}

// Truncate changes the size of the named file.
func (u *FS) Truncate(name string, size int64) error {
	name = cleanPath(name)
	return resolve(u, "truncate", name, func(a *adapter) error {
		return a.truncate(name, size)
	})
}

// Chmod changes file permissions.
func (u *FS) Chmod(name string, mode os.FileMode) error {
	name = cleanPath(name)
	return resolve(u, "chmod", name, func(a *adapter) error {
		return a.chmod(name, mode)
	})
}

// Chown changes file ownership.
func (u *FS) Chown(name string, uid, gid int) error {
	name = cleanPath(name)
	return resolve(u, "chown", name, func(a *adapter) error {
		return a.chown(name, uid, gid)
	})
}

// Chtimes changes file access and modification times.
func (u *FS) Chtimes(name string, atime, mtime time.Time) error {
	name = cleanPath(name)
	return resolve(u, "chtimes", name, func(a *adapter) error {
		return a.chtimes(name, atime, mtime)
	})
}

// Symlink creates a symbolic link.
func (u *FS) Symlink(oldname, newname string) error {
	newname = cleanPath(newname)
	return resolve(u, "symlink", newname, func(a *adapter) error {
		return a.symlink(oldname, newname)
	})
}
