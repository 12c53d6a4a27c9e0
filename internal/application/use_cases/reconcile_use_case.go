package use_cases

import (
	"context"
	"errors"
	"time"

	"github.com/lexnotes/storefront-service/internal/application/ports"
	domainErrors "github.com/lexnotes/storefront-service/internal/domain/errors"
	"github.com/lexnotes/storefront-service/internal/domain/payment"
	"github.com/lexnotes/storefront-service/internal/domain/purchase"
	"github.com/lexnotes/storefront-service/internal/infrastructure/monitoring"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

// ReconcileUseCase converts verified payment-completion events into durable
// entitlement grants. It must tolerate duplicate and concurrent deliveries:
// every write is an idempotent conditional insert, and a failed pass leaves
// state identical to one that never ran.
type ReconcileUseCase struct {
	purchases    ports.PurchaseRepository
	entitlements ports.EntitlementCache
	log          *logger.Logger

	processedMarkTTL time.Duration
}

func NewReconcileUseCase(
	purchases ports.PurchaseRepository,
	entitlements ports.EntitlementCache,
	log *logger.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		purchases:        purchases,
		entitlements:     entitlements,
		log:              log,
		processedMarkTTL: 24 * time.Hour,
	}
}

type ReconcileResult struct {
	Granted      []string `json:"granted"`
	AlreadyOwned []string `json:"already_owned"`
}

// HandleEvent processes one webhook notification. A nil error means the
// caller should acknowledge the delivery; a non-nil error means the caller
// should signal failure so the processor redelivers.
func (uc *ReconcileUseCase) HandleEvent(ctx context.Context, ev *payment.Event) (*ReconcileResult, error) {
	if ev.Kind != payment.KindCheckoutCompleted {
		uc.log.Debug("Ignoring payment event", "event_id", ev.ID, "kind", string(ev.Kind))
		monitoring.RecordEventIgnored(string(ev.Kind))
		return &ReconcileResult{}, nil
	}

	// Fast path for redeliveries of an event that already fully succeeded.
	// Best-effort only: if the marker is gone or Redis is down we fall
	// through to the conditional inserts, which are safe to repeat.
	if done, err := uc.entitlements.EventProcessed(ctx, ev.ID); err == nil && done {
		uc.log.Info("Event already processed, acknowledging", "event_id", ev.ID)
		return &ReconcileResult{}, nil
	}

	monitoring.RecordReconcileAttempt()

	if !ev.Attribution.Valid() {
		// Money has moved but the event cannot be attributed. Acknowledge so
		// the processor stops redelivering an unfixable event, and log loudly
		// for manual reconciliation.
		uc.log.Error("Completed payment event missing attribution metadata",
			"event_id", ev.ID,
			"session_id", ev.SessionID,
			"payment_ref", ev.PaymentRef,
		)
		monitoring.RecordAttributionFailure()
		return &ReconcileResult{}, nil
	}

	userID := ev.Attribution.UserID
	result := &ReconcileResult{}
	var failures []error

	for _, productID := range ev.Attribution.ProductIDs {
		p, err := purchase.NewPurchase(userID, productID, ev.PaymentRef)
		if err != nil {
			uc.log.Error("Invalid purchase in event", "error", err, "event_id", ev.ID, "product_id", productID)
			failures = append(failures, err)
			continue
		}

		inserted, err := uc.purchases.CreatePurchaseIfAbsent(ctx, p)
		if err != nil {
			// One product failing must not abort the rest: redelivery will
			// retry only what is still outstanding.
			uc.log.Error("Failed to record purchase",
				"error", err,
				"event_id", ev.ID,
				"user_id", userID,
				"product_id", productID,
			)
			monitoring.RecordPurchaseGrantFailure("insert_error")
			failures = append(failures, err)
			continue
		}

		if inserted {
			monitoring.RecordPurchaseGranted()
			result.Granted = append(result.Granted, productID)
		} else {
			uc.log.Info("Purchase already recorded, skipping",
				"event_id", ev.ID,
				"user_id", userID,
				"product_id", productID,
			)
			monitoring.RecordPurchaseDuplicate()
			result.AlreadyOwned = append(result.AlreadyOwned, productID)
		}
	}

	// Union with the existing set only. Re-running after a redelivery is a
	// no-op for products already in the set.
	granted := append(append([]string{}, result.Granted...), result.AlreadyOwned...)
	if len(granted) > 0 {
		if err := uc.entitlements.AddEntitlements(ctx, userID, granted); err != nil {
			uc.log.Error("Failed to update entitlement cache", "error", err, "user_id", userID)
			failures = append(failures, err)
		}
	}

	if len(failures) > 0 {
		monitoring.RecordReconcileFailure("partial")
		return result, errors.Join(append([]error{domainErrors.ErrPartialReconciliation}, failures...)...)
	}

	if err := uc.entitlements.MarkEventProcessed(ctx, ev.ID, uc.processedMarkTTL); err != nil {
		uc.log.Warn("Failed to mark event processed", "error", err, "event_id", ev.ID)
	}

	monitoring.RecordReconcileSuccess()
	uc.log.Info("Reconciliation completed",
		"event_id", ev.ID,
		"user_id", userID,
		"granted", len(result.Granted),
		"already_owned", len(result.AlreadyOwned),
	)

	return result, nil
}
