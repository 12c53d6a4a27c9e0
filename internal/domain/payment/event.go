package payment

import (
	"strings"
)

// Kind is the closed set of processor notifications the service understands.
// Anything else maps to KindUnknown and is acknowledged without processing.
type Kind string

const (
	KindCheckoutCompleted Kind = "checkout_completed"
	KindPaymentSucceeded  Kind = "payment_succeeded"
	KindPaymentFailed     Kind = "payment_failed"
	KindUnknown           Kind = "unknown"
)

// Event is the verified, typed form of a processor webhook notification.
// The gateway layer is responsible for signature verification before an
// Event is ever constructed.
type Event struct {
	ID          string
	Kind        Kind
	SessionID   string
	PaymentRef  string
	Attribution Attribution
}

// Attribution identifies who bought what, recovered from the metadata the
// checkout initiator attached to the external session.
type Attribution struct {
	UserID     string
	ProductIDs []string
}

func (a Attribution) Valid() bool {
	return a.UserID != "" && len(a.ProductIDs) > 0
}

// ParseAttribution reads the metadata written at checkout time: a userId and
// a comma-joined noteIds list.
func ParseAttribution(metadata map[string]string) Attribution {
	attr := Attribution{UserID: metadata["userId"]}

	for _, id := range strings.Split(metadata["noteIds"], ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			attr.ProductIDs = append(attr.ProductIDs, id)
		}
	}

	return attr
}
