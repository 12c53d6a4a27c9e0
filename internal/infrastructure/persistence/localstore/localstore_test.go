package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexnotes/storefront-service/internal/domain/cart"
)

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	store := NewStore(path)

	lines := []cart.Line{
		{ProductID: "tax-law-notes", Quantity: 2},
		{ProductID: "contracts-notes", Quantity: 1},
	}

	require.NoError(t, store.Save(lines))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, lines, loaded)
}

func TestStore_LoadMissingFileIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"))

	lines, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, lines)
}

func TestStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	store := NewStore(path)

	require.NoError(t, store.Save([]cart.Line{{ProductID: "a", Quantity: 1}}))
	require.NoError(t, store.Save([]cart.Line{{ProductID: "b", Quantity: 3}}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "b", loaded[0].ProductID)
}

func TestStore_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "cart.json"))

	require.NoError(t, store.Save([]cart.Line{{ProductID: "a", Quantity: 1}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cart.json", entries[0].Name())
}
