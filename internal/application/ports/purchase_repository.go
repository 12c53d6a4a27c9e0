package ports

import (
	"context"

	"github.com/lexnotes/storefront-service/internal/domain/purchase"
)

type PurchaseRepository interface {
	// CreatePurchaseIfAbsent inserts the record unless one already exists for
	// the same (user, product) pair. It reports whether a row was written.
	// The guarantee must come from a storage-level unique constraint so that
	// concurrent deliveries cannot both insert.
	CreatePurchaseIfAbsent(ctx context.Context, p *purchase.Purchase) (bool, error)

	HasPurchase(ctx context.Context, userID, productID string) (bool, error)
	GetPurchasesByUserID(ctx context.Context, userID string) ([]*purchase.Purchase, error)
}
