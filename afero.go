package mergefs

import (
	"io/fs"
	"os"
	"time"

	"github.com/absfs/absfs"
	"github.com/spf13/afero"
)

// aferoBackend adapts an afero.Fs into a Backend.
type aferoBackend struct {
	fs afero.Fs
}

// FromAfero wraps an afero filesystem so it can be attached as a backend.
// The wrapper advertises the full operation set afero provides, including
// a direct existence check via afero.Exists.
func FromAfero(afs afero.Fs) Backend {
	return &aferoBackend{fs: afs}
}

func (b *aferoBackend) Stat(name string) (os.FileInfo, error) {
	return b.fs.Stat(name)
}

func (b *aferoBackend) OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error) {
	f, err := b.fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (b *aferoBackend) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(b.fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}

func (b *aferoBackend) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(b.fs, name)
}

func (b *aferoBackend) WriteFile(name string, data []byte, perm os.FileMode) error {
	return afero.WriteFile(b.fs, name, data, perm)
}

func (b *aferoBackend) Exists(name string) (bool, error) {
	return afero.Exists(b.fs, name)
}

func (b *aferoBackend) Mkdir(name string, perm os.FileMode) error {
	return b.fs.Mkdir(name, perm)
}

func (b *aferoBackend) MkdirAll(name string, perm os.FileMode) error {
	return b.fs.MkdirAll(name, perm)
}

func (b *aferoBackend) Remove(name string) error {
	return b.fs.Remove(name)
}

func (b *aferoBackend) RemoveAll(name string) error {
	return b.fs.RemoveAll(name)
}

func (b *aferoBackend) Rename(oldname, newname string) error {
	return b.fs.Rename(oldname, newname)
}

func (b *aferoBackend) Chmod(name string, mode os.FileMode) error {
	return b.fs.Chmod(name, mode)
}

func (b *aferoBackend) Chown(name string, uid, gid int) error {
	return b.fs.Chown(name, uid, gid)
}

func (b *aferoBackend) Chtimes(name string, atime, mtime time.Time) error {
	return b.fs.Chtimes(name, atime, mtime)
}
