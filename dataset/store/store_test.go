package store

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/setintersect/dataset"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "pairs/a.bin", []byte("hello")))
	require.NoError(t, s.Put(ctx, "pairs/b.bin", []byte("world!")))
	require.NoError(t, s.Put(ctx, "other/c.bin", []byte("x")))

	blob, err := s.Open(ctx, "pairs/b.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(6), blob.Size())

	p := make([]byte, 3)
	n, err := blob.ReadAt(p, 2)
	require.NoError(t, err)
	assert.Equal(t, "rld", string(p[:n]))
	require.NoError(t, blob.Close())

	data, err := ReadAll(ctx, s, "pairs/a.bin")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	names, err := s.List(ctx, "pairs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"pairs/a.bin", "pairs/b.bin"}, names)

	// Overwrite replaces content.
	require.NoError(t, s.Put(ctx, "pairs/a.bin", []byte("bye")))
	data, err = ReadAll(ctx, s, "pairs/a.bin")
	require.NoError(t, err)
	assert.Equal(t, "bye", string(data))
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	testStore(t, NewLocalStore(t.TempDir()))
}

// A datafile written through a store must read back identically.
func TestStoreDatafileRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	sets := [][]uint32{{1, 3, 5, 7, 9, 100}, {3, 4, 5, 9, 50, 100}}
	var buf bytes.Buffer
	require.NoError(t, dataset.WriteSets(&buf, sets, dataset.CompressionLZ4))
	require.NoError(t, s.Put(ctx, "pair.bin", buf.Bytes()))

	data, err := ReadAll(ctx, s, "pair.bin")
	require.NoError(t, err)

	got, err := dataset.ReadSets(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, sets, got)
}
