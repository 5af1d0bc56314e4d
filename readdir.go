package mergefs

import (
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
)

// ReadDir produces one composite directory listing for a path. Unlike the
// single-target dispatcher it does not stop at first success: every
// readable entry is visited in priority order and its items are merged into
// a name-keyed set. On a name collision the highest-priority backend's
// entry wins. The composite is returned sorted by name, deduplicated.
//
// A failing entry is skipped; its failure is recorded in the chain only
// while the accumulated result is still empty, and surfaced only when the
// last visited entry fails with the result still empty. A non-empty partial
// result masks subsequent failures.
func (u *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	name = cleanPath(name)

	entries := u.snapshot()
	if len(entries) == 0 {
		return nil, opError("readdir", name, ErrNoBackends)
	}

	merged := make(map[string]fs.DirEntry)
	var prev *Error
	lastFailed := false

	for i := len(entries) - 1; i >= 0; i-- {
		a := entries[i]
		if !a.readable {
			continue
		}

		list, err := a.list(name)
		if err != nil {
			lastFailed = true
			if len(merged) == 0 {
				prev = link("readdir", name, err, prev)
			}
			u.log.Trace().
				Str("op", "readdir").
				Str("path", name).
				Int("priority", i).
				Err(err).
				Msg("backend listing failed")
			continue
		}
		lastFailed = false

		for _, e := range list {
			if _, ok := merged[e.Name()]; !ok {
				merged[e.Name()] = e
			}
		}
	}

	if len(merged) == 0 && lastFailed && prev != nil {
		return nil, prev
	}

	result := make([]fs.DirEntry, 0, len(merged))
	for _, e := range merged {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result, nil
}

// list attempts a directory listing on one adapter.
func (a *adapter) list(name string) ([]fs.DirEntry, error) {
	if a.readDir == nil {
		return nil, opError("readdir", name, ErrUnsupported)
	}
	return a.readDir(name)
}

// mergeDir implements absfs.File for directories opened through the
// composite, walking the merged listing instead of any single backend's.
type mergeDir struct {
	u       *FS
	path    string
	entries []os.FileInfo
	offset  int
	closed  bool
}

func newMergeDir(u *FS, path string) *mergeDir {
	return &mergeDir{u: u, path: path}
}

// load materializes the merged listing on first use.
func (d *mergeDir) load() error {
	list, err := d.u.ReadDir(d.path)
	if err != nil {
		return err
	}
	infos := make([]os.FileInfo, 0, len(list))
	for _, e := range list {
		info, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	d.entries = infos
	return nil
}

// Close closes the directory.
func (d *mergeDir) Close() error {
	d.closed = true
	return nil
}

// Read is not supported for directories.
func (d *mergeDir) Read(p []byte) (n int, err error) {
	return 0, os.ErrInvalid
}

// ReadAt is not supported for directories.
func (d *mergeDir) ReadAt(p []byte, off int64) (n int, err error) {
	return 0, os.ErrInvalid
}

// Seek seeks to an offset in the directory listing.
func (d *mergeDir) Seek(offset int64, whence int) (int64, error) {
	if d.closed {
		return 0, os.ErrClosed
	}

	switch whence {
	case io.SeekStart:
		d.offset = int(offset)
	case io.SeekCurrent:
		d.offset += int(offset)
	case io.SeekEnd:
		if d.entries == nil {
			if err := d.load(); err != nil {
				return 0, err
			}
		}
		d.offset = len(d.entries) + int(offset)
	}

	if d.offset < 0 {
		d.offset = 0
	}

	return int64(d.offset), nil
}

// Write is not supported for directories.
func (d *mergeDir) Write(p []byte) (n int, err error) {
	return 0, os.ErrInvalid
}

// WriteAt is not supported for directories.
func (d *mergeDir) WriteAt(p []byte, off int64) (n int, err error) {
	return 0, os.ErrInvalid
}

// Name returns the base name of the directory.
func (d *mergeDir) Name() string {
	return path.Base(d.path)
}

// Readdir reads entries from the merged composite listing.
func (d *mergeDir) Readdir(count int) ([]os.FileInfo, error) {
	if d.closed {
		return nil, os.ErrClosed
	}

	if d.entries == nil {
		if err := d.load(); err != nil {
			return nil, err
		}
	}

	if d.offset >= len(d.entries) {
		if count > 0 {
			return nil, io.EOF
		}
		return nil, nil
	}

	var end int
	if count <= 0 {
		end = len(d.entries)
	} else {
		end = d.offset + count
		if end > len(d.entries) {
			end = len(d.entries)
		}
	}

	result := d.entries[d.offset:end]
	d.offset = end

	if count > 0 && len(result) == 0 {
		return nil, io.EOF
	}

	return result, nil
}

// Readdirnames reads directory entry names.
func (d *mergeDir) Readdirnames(count int) ([]string, error) {
	infos, err := d.Readdir(count)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}

	return names, nil
}

// Stat returns the FileInfo for the directory.
func (d *mergeDir) Stat() (os.FileInfo, error) {
	if d.closed {
		return nil, os.ErrClosed
	}
	return d.u.Stat(d.path)
}

// Sync is a no-op for directories.
func (d *mergeDir) Sync() error {
	return nil
}

// Truncate is not supported for directories.
func (d *mergeDir) Truncate(size int64) error {
	return os.ErrInvalid
}

// WriteString is not supported for directories.
func (d *mergeDir) WriteString(s string) (ret int, err error) {
	return 0, os.ErrInvalid
}
