package ports

import (
	"context"

	"github.com/lexnotes/storefront-service/internal/domain/catalog"
	"github.com/lexnotes/storefront-service/internal/domain/payment"
)

type CheckoutLine struct {
	Product  *catalog.Product
	Quantity int
}

// CheckoutSession is the client-usable handle for an external payment
// session. No durable local row backs it; the metadata attached on the
// processor side is the only reconciliation key.
type CheckoutSession struct {
	ID           string
	ClientSecret string
}

type SessionStatus struct {
	Status        string
	CustomerEmail string
}

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, userID string, lines []CheckoutLine, returnURL string) (*CheckoutSession, error)
	GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error)

	// ParseWebhook verifies the processor signature over the raw payload and
	// maps the notification to a typed event. Verification failure returns
	// domain errors.ErrInvalidSignature; nothing in the payload may be
	// trusted before this call succeeds.
	ParseWebhook(payload []byte, signatureHeader string) (*payment.Event, error)
}
