package mergefs

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFromAferoBasic round-trips a file through an afero-backed composite.
func TestFromAferoBasic(t *testing.T) {
	u := New().Attach(FromAfero(afero.NewMemMapFs()))

	require.NoError(t, u.WriteFile("/hello.txt", []byte("afero"), 0644))

	data, err := u.ReadFile("/hello.txt")
	require.NoError(t, err)
	assert.Equal(t, "afero", string(data))

	assert.True(t, u.Exists("/hello.txt"))
	assert.False(t, u.Exists("/missing.txt"))
}

// TestMixedEcosystemMerge merges a memfs backend with an afero backend in
// one composite.
func TestMixedEcosystemMerge(t *testing.T) {
	amem := afero.NewMemMapFs()
	require.NoError(t, amem.MkdirAll("/dir", 0755))
	require.NoError(t, afero.WriteFile(amem, "/dir/from-afero.txt", []byte("a"), 0644))

	mem := mustNewMemFS()
	require.NoError(t, writeFile(mem, "/dir/from-memfs.txt", []byte("m"), 0644))

	u := New().
		Attach(FromAfero(amem)).
		Attach(mem)

	entries, err := u.ReadDir("/dir")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "from-afero.txt", entries[0].Name())
	assert.Equal(t, "from-memfs.txt", entries[1].Name())

	// Reads fall through across ecosystems.
	data, err := u.ReadFile("/dir/from-afero.txt")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

// TestFromAferoReadOnlyOverlay keeps the afero layer frozen under a
// writable memfs layer.
func TestFromAferoReadOnlyOverlay(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/config.yml", []byte("defaults"), 0644))

	scratch := mustNewMemFS()

	u := New().
		Attach(FromAfero(base), ReadOnly()).
		Attach(scratch)

	// Write lands in scratch, not the frozen afero base.
	require.NoError(t, u.WriteFile("/config.yml", []byte("override"), 0644))

	data, err := u.ReadFile("/config.yml")
	require.NoError(t, err)
	assert.Equal(t, "override", string(data))

	baseData, err := afero.ReadFile(base, "/config.yml")
	require.NoError(t, err)
	assert.Equal(t, "defaults", string(baseData))
}

// TestFromAferoStream binds a stream to the afero backend.
func TestFromAferoStream(t *testing.T) {
	afs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(afs, "/data.bin", []byte("stream"), 0644))

	backend := FromAfero(afs)
	u := New().Attach(backend)

	s, err := u.CreateReadStream("/data.bin")
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, backend, s.Backend())
}
