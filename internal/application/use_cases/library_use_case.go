package use_cases

import (
	"context"

	"github.com/lexnotes/storefront-service/internal/application/ports"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

// LibraryUseCase answers "which products does this user own". The Redis set
// is a read-through mirror of the purchases table: served when populated,
// rebuilt from the durable rows when not.
type LibraryUseCase struct {
	purchases    ports.PurchaseRepository
	entitlements ports.EntitlementCache
	log          *logger.Logger
}

func NewLibraryUseCase(
	purchases ports.PurchaseRepository,
	entitlements ports.EntitlementCache,
	log *logger.Logger,
) *LibraryUseCase {
	return &LibraryUseCase{
		purchases:    purchases,
		entitlements: entitlements,
		log:          log,
	}
}

func (uc *LibraryUseCase) GetOwnedProducts(ctx context.Context, userID string) ([]string, error) {
	cached, err := uc.entitlements.GetEntitlements(ctx, userID)
	if err != nil {
		uc.log.Warn("Entitlement cache read failed, falling back to storage", "error", err, "user_id", userID)
	} else if len(cached) > 0 {
		return cached, nil
	}

	purchases, err := uc.purchases.GetPurchasesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(purchases))
	for _, p := range purchases {
		ids = append(ids, p.ProductID)
	}

	// Warm the cache for the next read. Union-only, so racing a concurrent
	// grant is safe.
	if len(ids) > 0 {
		if err := uc.entitlements.AddEntitlements(ctx, userID, ids); err != nil {
			uc.log.Warn("Failed to warm entitlement cache", "error", err, "user_id", userID)
		}
	}

	return ids, nil
}
