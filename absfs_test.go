package mergefs

import (
	"io"
	"io/fs"
	"testing"
)

// TestFileSystemView exercises the absfs.FileSystem view of a composite.
func TestFileSystemView(t *testing.T) {
	base := mustNewMemFS()
	writeFile(base, "/app/config.yml", []byte("key: value"), 0644)

	u := New().Attach(base)
	vfs := u.FileSystem()

	f, err := vfs.Open("/app/config.yml")
	if err != nil {
		t.Fatalf("failed to open through the view: %v", err)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if string(data) != "key: value" {
		t.Errorf("expected 'key: value', got '%s'", string(data))
	}

	// Relative resolution through the view's working directory.
	if err := vfs.Chdir("/app"); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	if _, err := vfs.Stat("config.yml"); err != nil {
		t.Errorf("relative stat should resolve against the working directory: %v", err)
	}
}

// TestFileSystemViewWrites routes mutations back through the composite's
// fallback.
func TestFileSystemViewWrites(t *testing.T) {
	writable := mustNewMemFS()
	frozen := mustNewMemFS()

	u := New().
		Attach(writable).
		Attach(frozen, ReadOnly())

	vfs := u.FileSystem()

	f, err := vfs.Create("/new.txt")
	if err != nil {
		t.Fatalf("failed to create through the view: %v", err)
	}
	f.Write([]byte("x"))
	f.Close()

	if _, err := writable.Stat("/new.txt"); err != nil {
		t.Error("create should land in the writable backend")
	}
	if _, err := frozen.Stat("/new.txt"); err == nil {
		t.Error("create must not touch the read-only backend")
	}
}

// TestSub roots an io/fs view at a composite subdirectory.
func TestSub(t *testing.T) {
	a := mustNewMemFS()
	b := mustNewMemFS()
	writeFile(a, "/static/css/site.css", []byte("body{}"), 0644)
	writeFile(b, "/static/index.html", []byte("<html>"), 0644)

	u := New().Attach(a).Attach(b)

	sub, err := u.Sub("/static")
	if err != nil {
		t.Fatalf("failed to create sub filesystem: %v", err)
	}

	data, err := fs.ReadFile(sub, "index.html")
	if err != nil {
		t.Fatalf("failed to read through sub: %v", err)
	}
	if string(data) != "<html>" {
		t.Errorf("expected '<html>', got '%s'", string(data))
	}
}
