package ports

import (
	"context"
	"time"
)

// EntitlementCache mirrors the purchase-derived entitlement set. Updates are
// union-only: a cached set is never overwritten wholesale, so a concurrent
// unrelated purchase cannot be lost.
type EntitlementCache interface {
	AddEntitlements(ctx context.Context, userID string, productIDs []string) error
	GetEntitlements(ctx context.Context, userID string) ([]string, error)

	MarkEventProcessed(ctx context.Context, eventID string, ttl time.Duration) error
	EventProcessed(ctx context.Context, eventID string) (bool, error)
}
