package use_cases

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

func newTestLibrary(repo *fakePurchaseRepo, cache *fakeEntitlementCache) *LibraryUseCase {
	return NewLibraryUseCase(repo, cache, logger.NewWithOutput(io.Discard))
}

func TestGetOwnedProducts_ServedFromCache(t *testing.T) {
	repo := newFakePurchaseRepo()
	cache := newFakeEntitlementCache()
	cache.sets["user-1"] = map[string]bool{"tax-law-notes": true}
	uc := newTestLibrary(repo, cache)

	ids, err := uc.GetOwnedProducts(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tax-law-notes"}, ids)
}

func TestGetOwnedProducts_ColdCacheRebuildsFromStorage(t *testing.T) {
	repo := newFakePurchaseRepo()
	repo.rows[pairKey("user-1", "tax-law-notes")] = true
	repo.rows[pairKey("user-1", "contracts-notes")] = true
	repo.rows[pairKey("user-2", "other-notes")] = true
	cache := newFakeEntitlementCache()
	uc := newTestLibrary(repo, cache)

	ids, err := uc.GetOwnedProducts(context.Background(), "user-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tax-law-notes", "contracts-notes"}, ids)

	// Cache warmed for the next read.
	assert.True(t, cache.sets["user-1"]["tax-law-notes"])
	assert.True(t, cache.sets["user-1"]["contracts-notes"])
	assert.False(t, cache.sets["user-1"]["other-notes"])
}

func TestGetOwnedProducts_NothingOwned(t *testing.T) {
	uc := newTestLibrary(newFakePurchaseRepo(), newFakeEntitlementCache())

	ids, err := uc.GetOwnedProducts(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGetOwnedProducts_CacheFailureFallsBackToStorage(t *testing.T) {
	repo := newFakePurchaseRepo()
	repo.rows[pairKey("user-1", "tax-law-notes")] = true
	cache := newFakeEntitlementCache()
	cache.getErr = errors.New("redis down")
	uc := newTestLibrary(repo, cache)

	ids, err := uc.GetOwnedProducts(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tax-law-notes"}, ids)
}
