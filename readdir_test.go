package mergefs

import (
	"errors"
	"testing"
)

// TestReadDirMerge merges listings from multiple backends, deduplicated
// and sorted.
func TestReadDirMerge(t *testing.T) {
	a := mustNewMemFS() // lower priority
	b := mustNewMemFS() // higher priority

	writeFile(a, "/dir/a.txt", []byte("1"), 0644)
	writeFile(a, "/dir/b.txt", []byte("2"), 0644)
	writeFile(b, "/dir/b.txt", []byte("22"), 0644)
	writeFile(b, "/dir/c.txt", []byte("3"), 0644)

	u := New().Attach(a).Attach(b)

	entries, err := u.ReadDir("/dir")
	if err != nil {
		t.Fatalf("failed to read directory: %v", err)
	}

	want := []string{"a.txt", "b.txt", "c.txt"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, name := range want {
		if entries[i].Name() != name {
			t.Errorf("entry %d: expected %q, got %q", i, name, entries[i].Name())
		}
	}
}

// TestReadDirPrecedence pins the collision rule: the highest-priority
// backend's entry represents a name present in several backends.
func TestReadDirPrecedence(t *testing.T) {
	low := mustNewMemFS()
	high := mustNewMemFS()

	writeFile(low, "/dir/shared.txt", []byte("low content, longer"), 0644)
	writeFile(high, "/dir/shared.txt", []byte("hi"), 0644)

	u := New().Attach(low).Attach(high)

	entries, err := u.ReadDir("/dir")
	if err != nil {
		t.Fatalf("failed to read directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	info, err := entries[0].Info()
	if err != nil {
		t.Fatalf("failed to get entry info: %v", err)
	}
	if info.Size() != 2 {
		t.Errorf("expected the highest-priority entry (size 2), got size %d", info.Size())
	}
}

// TestReadDirPartialFailureMasked checks that one failing backend is
// suppressed once another contributed data.
func TestReadDirPartialFailureMasked(t *testing.T) {
	good := mustNewMemFS()
	writeFile(good, "/dir/file.txt", []byte("x"), 0644)

	u := New().
		Attach(&brokenBackend{err: errors.New("backend down")}).
		Attach(good)

	entries, err := u.ReadDir("/dir")
	if err != nil {
		t.Fatalf("partial failure should be masked, got %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
}

// TestReadDirAllFail surfaces the chained failure when nothing contributed.
func TestReadDirAllFail(t *testing.T) {
	u := New().
		Attach(&brokenBackend{err: errors.New("one")}).
		Attach(&brokenBackend{err: errors.New("two")})

	_, err := u.ReadDir("/dir")
	if err == nil {
		t.Fatal("expected failure when every backend fails")
	}

	var me *Error
	if !errors.As(err, &me) {
		t.Fatalf("expected *mergefs.Error, got %T", err)
	}
	if got := len(me.Chain()); got != 2 {
		t.Errorf("expected chain of 2, got %d", got)
	}
}

// TestReadDirEmptyRegistry keeps misconfiguration distinguishable.
func TestReadDirEmptyRegistry(t *testing.T) {
	_, err := New().ReadDir("/dir")
	if !errors.Is(err, ErrNoBackends) {
		t.Errorf("expected ErrNoBackends, got %v", err)
	}
}

// TestReadDirLastSuccessMasksEarlierFailures returns an empty listing when
// the last visited entry succeeds with nothing, even though earlier entries
// failed.
func TestReadDirLastSuccessMasksEarlierFailures(t *testing.T) {
	empty := mustNewMemFS()
	empty.Mkdir("/dir", 0755)

	// The broken backend has the higher priority, so it is visited first;
	// the empty-but-successful one is visited last.
	u := New().
		Attach(empty).
		Attach(&brokenBackend{err: errors.New("backend down")})

	entries, err := u.ReadDir("/dir")
	if err != nil {
		t.Fatalf("a successful final entry should mask earlier failures, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty listing, got %d entries", len(entries))
	}
}

// TestReadDirLastFailureSurfaces surfaces the failure when the result is
// still empty and the last visited entry failed.
func TestReadDirLastFailureSurfaces(t *testing.T) {
	empty := mustNewMemFS()
	empty.Mkdir("/dir", 0755)

	// Visit order: empty success first (higher priority), broken last.
	u := New().
		Attach(&brokenBackend{err: errors.New("backend down")}).
		Attach(empty)

	if _, err := u.ReadDir("/dir"); err == nil {
		t.Error("expected the trailing failure to surface over an empty result")
	}
}

// TestReadDirSkipsWriteOnly excludes write-only backends from listings.
func TestReadDirSkipsWriteOnly(t *testing.T) {
	hidden := mustNewMemFS()
	writeFile(hidden, "/dir/secret.txt", []byte("x"), 0644)

	visible := mustNewMemFS()
	writeFile(visible, "/dir/public.txt", []byte("y"), 0644)

	u := New().
		Attach(visible).
		Attach(hidden, WriteOnly())

	entries, err := u.ReadDir("/dir")
	if err != nil {
		t.Fatalf("failed to read directory: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "public.txt" {
		t.Errorf("write-only backend content must not appear, got %v", entries)
	}
}
