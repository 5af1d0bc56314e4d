package mergefs

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncReadFile(t *testing.T) {
	base := mustNewMemFS()
	writeFile(base, "/f.txt", []byte("async"), 0644)

	u := New().Attach(base)

	done := make(chan struct{})
	u.Async().ReadFile("/f.txt", func(data []byte, err error) {
		defer close(done)
		assert.NoError(t, err)
		assert.Equal(t, "async", string(data))
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("callback was never invoked")
	}
}

func TestAsyncCallbackOnce(t *testing.T) {
	u := New().
		Attach(&brokenBackend{err: errors.New("one")}).
		Attach(&brokenBackend{err: errors.New("two")})

	calls := make(chan error, 4)
	u.Async().Stat("/x", func(_ os.FileInfo, err error) {
		calls <- err
	})

	select {
	case err := <-calls:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("callback was never invoked")
	}

	// No second invocation.
	select {
	case <-calls:
		t.Fatal("callback invoked more than once")
	case <-time.After(50 * time.Millisecond):
	}
}

// TestAsyncChainParity checks that the callback surface produces the same
// attempt chain as the blocking surface.
func TestAsyncChainParity(t *testing.T) {
	e1 := errors.New("backend one down")
	e2 := errors.New("backend two down")

	u := New().
		Attach(&brokenBackend{err: e1}).
		Attach(&brokenBackend{err: e2})

	_, blockErr := u.Stat("/x")

	done := make(chan error, 1)
	u.Async().Stat("/x", func(_ os.FileInfo, err error) { done <- err })

	var asyncErr error
	select {
	case asyncErr = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("callback was never invoked")
	}

	var bme, ame *Error
	require.ErrorAs(t, blockErr, &bme)
	require.ErrorAs(t, asyncErr, &ame)

	bchain, achain := bme.Chain(), ame.Chain()
	require.Equal(t, len(bchain), len(achain))
	for i := range bchain {
		assert.ErrorIs(t, achain[i].Err, bchain[i].Err)
		assert.Equal(t, bchain[i].Op, achain[i].Op)
	}
}

func TestAsyncWriteAndExists(t *testing.T) {
	u := New().Attach(mustNewMemFS())

	written := make(chan error, 1)
	u.Async().WriteFile("/out.txt", []byte("x"), 0644, func(err error) {
		written <- err
	})
	select {
	case err := <-written:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("write callback was never invoked")
	}

	found := make(chan bool, 1)
	u.Async().Exists("/out.txt", func(ok bool) { found <- ok })
	select {
	case ok := <-found:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("exists callback was never invoked")
	}
}

func TestAsyncReadDirMerges(t *testing.T) {
	a := mustNewMemFS()
	b := mustNewMemFS()
	writeFile(a, "/dir/a.txt", []byte("1"), 0644)
	writeFile(b, "/dir/b.txt", []byte("2"), 0644)

	u := New().Attach(a).Attach(b)

	done := make(chan struct{})
	u.Async().ReadDir("/dir", func(entries []os.DirEntry, err error) {
		defer close(done)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "a.txt", entries[0].Name())
		assert.Equal(t, "b.txt", entries[1].Name())
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("callback was never invoked")
	}
}
