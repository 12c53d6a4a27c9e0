package stripe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"

	"github.com/lexnotes/storefront-service/internal/config"
	domainErrors "github.com/lexnotes/storefront-service/internal/domain/errors"
	"github.com/lexnotes/storefront-service/internal/domain/payment"
)

func completedSessionEvent(t *testing.T, sess stripe.CheckoutSession) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(sess)
	require.NoError(t, err)

	return stripe.Event{
		ID:   "evt_1",
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestToDomainEvent_CompletedSession(t *testing.T) {
	c := NewClient(config.StripeConfig{Currency: "aud"})

	event := completedSessionEvent(t, stripe.CheckoutSession{
		ID:            "cs_1",
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_1"},
		Metadata: map[string]string{
			"userId":  "user-1",
			"noteIds": "tax-law-notes,contracts-notes",
		},
	})

	ev, err := c.toDomainEvent(event)
	require.NoError(t, err)
	assert.Equal(t, payment.KindCheckoutCompleted, ev.Kind)
	assert.Equal(t, "cs_1", ev.SessionID)
	assert.Equal(t, "pi_1", ev.PaymentRef)
	assert.Equal(t, "user-1", ev.Attribution.UserID)
	assert.Equal(t, []string{"tax-law-notes", "contracts-notes"}, ev.Attribution.ProductIDs)
}

func TestToDomainEvent_FallsBackToSessionIDAsPaymentRef(t *testing.T) {
	c := NewClient(config.StripeConfig{})

	event := completedSessionEvent(t, stripe.CheckoutSession{
		ID:       "cs_2",
		Metadata: map[string]string{"userId": "user-1", "noteIds": "a"},
	})

	ev, err := c.toDomainEvent(event)
	require.NoError(t, err)
	assert.Equal(t, "cs_2", ev.PaymentRef)
}

func TestToDomainEvent_MissingMetadataIsInvalidAttribution(t *testing.T) {
	c := NewClient(config.StripeConfig{})

	event := completedSessionEvent(t, stripe.CheckoutSession{ID: "cs_3"})

	ev, err := c.toDomainEvent(event)
	require.NoError(t, err)
	assert.False(t, ev.Attribution.Valid())
}

func TestToDomainEvent_OtherKindsCarryNoAttribution(t *testing.T) {
	c := NewClient(config.StripeConfig{})

	ev, err := c.toDomainEvent(stripe.Event{
		ID:   "evt_2",
		Type: "payment_intent.succeeded",
		Data: &stripe.EventData{Raw: []byte(`{`)},
	})

	// Non-completed events are acknowledged without reading the payload.
	require.NoError(t, err)
	assert.Equal(t, payment.KindPaymentSucceeded, ev.Kind)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, payment.KindCheckoutCompleted, kindOf("checkout.session.completed"))
	assert.Equal(t, payment.KindPaymentSucceeded, kindOf("payment_intent.succeeded"))
	assert.Equal(t, payment.KindPaymentFailed, kindOf("payment_intent.payment_failed"))
	assert.Equal(t, payment.KindUnknown, kindOf("customer.created"))
	assert.Equal(t, payment.KindUnknown, kindOf("charge.refunded"))
}

func TestParseWebhook_RejectsBadSignature(t *testing.T) {
	c := NewClient(config.StripeConfig{WebhookSecret: "whsec_test"})

	_, err := c.ParseWebhook([]byte(`{"id":"evt_1"}`), "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidSignature)
}
