package use_cases

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexnotes/storefront-service/internal/domain/catalog"
	domainErrors "github.com/lexnotes/storefront-service/internal/domain/errors"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

type fakeCatalog struct {
	products map[string]*catalog.Product
}

func (f *fakeCatalog) GetProductByID(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domainErrors.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeCatalog) GetProducts(_ context.Context, _, _ int) ([]*catalog.Product, error) {
	return nil, nil
}

func (f *fakeCatalog) CreateProduct(_ context.Context, _ *catalog.Product) error {
	return nil
}

type fakeSigner struct {
	lastKey string
	lastTTL time.Duration
}

func (f *fakeSigner) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	f.lastKey = key
	f.lastTTL = ttl
	return "https://assets.example.com/" + key + "?sig=abc", nil
}

func newTestDownload(repo *fakePurchaseRepo, cat *fakeCatalog, signer *fakeSigner) *DownloadUseCase {
	return NewDownloadUseCase(cat, repo, signer, logger.NewWithOutput(io.Discard), 5*time.Minute, time.Hour)
}

func TestGetDownloadURL_RequiresPurchase(t *testing.T) {
	repo := newFakePurchaseRepo()
	cat := &fakeCatalog{products: map[string]*catalog.Product{
		"tax-law-notes": {ID: "tax-law-notes", AssetKey: "assets/tax-law.pdf"},
	}}
	signer := &fakeSigner{}
	uc := newTestDownload(repo, cat, signer)

	_, err := uc.GetDownloadURL(context.Background(), "user-1", "tax-law-notes")
	assert.ErrorIs(t, err, domainErrors.ErrEntitlementDenied)

	repo.rows[pairKey("user-1", "tax-law-notes")] = true

	url, err := uc.GetDownloadURL(context.Background(), "user-1", "tax-law-notes")
	require.NoError(t, err)
	assert.Contains(t, url, "assets/tax-law.pdf")
	assert.Equal(t, 5*time.Minute, signer.lastTTL)
}

func TestGetDownloadURL_EntitlementIsPerUser(t *testing.T) {
	repo := newFakePurchaseRepo()
	repo.rows[pairKey("user-1", "tax-law-notes")] = true
	cat := &fakeCatalog{products: map[string]*catalog.Product{
		"tax-law-notes": {ID: "tax-law-notes", AssetKey: "assets/tax-law.pdf"},
	}}
	uc := newTestDownload(repo, cat, &fakeSigner{})

	_, err := uc.GetDownloadURL(context.Background(), "user-2", "tax-law-notes")
	assert.ErrorIs(t, err, domainErrors.ErrEntitlementDenied)
}

func TestGetPreviewURL_NoEntitlementNeeded(t *testing.T) {
	repo := newFakePurchaseRepo()
	cat := &fakeCatalog{products: map[string]*catalog.Product{
		"tax-law-notes": {
			ID:              "tax-law-notes",
			AssetKey:        "assets/tax-law.pdf",
			PreviewAssetKey: "previews/tax-law.pdf",
		},
	}}
	signer := &fakeSigner{}
	uc := newTestDownload(repo, cat, signer)

	url, err := uc.GetPreviewURL(context.Background(), "tax-law-notes")
	require.NoError(t, err)
	assert.Contains(t, url, "previews/tax-law.pdf")
	assert.Equal(t, time.Hour, signer.lastTTL)
}

func TestGetPreviewURL_NoPreviewAsset(t *testing.T) {
	repo := newFakePurchaseRepo()
	cat := &fakeCatalog{products: map[string]*catalog.Product{
		"tax-law-notes": {ID: "tax-law-notes", AssetKey: "assets/tax-law.pdf"},
	}}
	uc := newTestDownload(repo, cat, &fakeSigner{})

	_, err := uc.GetPreviewURL(context.Background(), "tax-law-notes")
	assert.ErrorIs(t, err, domainErrors.ErrPreviewUnavailable)
}

func TestGetDownloadURL_UnknownProduct(t *testing.T) {
	repo := newFakePurchaseRepo()
	repo.rows[pairKey("user-1", "missing")] = true
	uc := newTestDownload(repo, &fakeCatalog{products: map[string]*catalog.Product{}}, &fakeSigner{})

	_, err := uc.GetDownloadURL(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, domainErrors.ErrProductNotFound)
}
