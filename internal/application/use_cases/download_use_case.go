package use_cases

import (
	"context"
	"time"

	"github.com/lexnotes/storefront-service/internal/application/ports"
	"github.com/lexnotes/storefront-service/internal/domain/errors"
	"github.com/lexnotes/storefront-service/internal/infrastructure/monitoring"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

type DownloadUseCase struct {
	catalog   ports.CatalogRepository
	purchases ports.PurchaseRepository
	signer    ports.AssetSigner
	log       *logger.Logger

	downloadTTL time.Duration
	previewTTL  time.Duration
}

func NewDownloadUseCase(
	catalog ports.CatalogRepository,
	purchases ports.PurchaseRepository,
	signer ports.AssetSigner,
	log *logger.Logger,
	downloadTTL, previewTTL time.Duration,
) *DownloadUseCase {
	return &DownloadUseCase{
		catalog:     catalog,
		purchases:   purchases,
		signer:      signer,
		log:         log,
		downloadTTL: downloadTTL,
		previewTTL:  previewTTL,
	}
}

// GetDownloadURL produces a fresh time-limited URL for the product's primary
// asset, only when a purchase record exists for the exact (user, product)
// pair.
func (uc *DownloadUseCase) GetDownloadURL(ctx context.Context, userID, productID string) (string, error) {
	entitled, err := uc.purchases.HasPurchase(ctx, userID, productID)
	if err != nil {
		uc.log.Error("Failed to check entitlement", "error", err, "user_id", userID, "product_id", productID)
		return "", err
	}
	if !entitled {
		monitoring.RecordDownloadDenied()
		return "", errors.ErrEntitlementDenied
	}

	product, err := uc.catalog.GetProductByID(ctx, productID)
	if err != nil {
		return "", errors.ErrProductNotFound
	}

	url, err := uc.signer.SignedURL(ctx, product.AssetKey, uc.downloadTTL)
	if err != nil {
		uc.log.Error("Failed to sign asset URL", "error", err, "product_id", productID)
		return "", err
	}

	monitoring.RecordDownloadIssued()
	return url, nil
}

// GetPreviewURL requires no entitlement: previews are public.
func (uc *DownloadUseCase) GetPreviewURL(ctx context.Context, productID string) (string, error) {
	product, err := uc.catalog.GetProductByID(ctx, productID)
	if err != nil {
		return "", errors.ErrProductNotFound
	}

	if product.PreviewAssetKey == "" {
		return "", errors.ErrPreviewUnavailable
	}

	return uc.signer.SignedURL(ctx, product.PreviewAssetKey, uc.previewTTL)
}
