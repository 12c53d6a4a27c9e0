package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"

	"github.com/lexnotes/storefront-service/internal/application/ports"
	"github.com/lexnotes/storefront-service/internal/config"
	domainErrors "github.com/lexnotes/storefront-service/internal/domain/errors"
	"github.com/lexnotes/storefront-service/internal/domain/payment"
)

// Client adapts the Stripe SDK to the PaymentGateway port.
type Client struct {
	webhookSecret string
	currency      string
	siteURL       string
}

func NewClient(cfg config.StripeConfig) *Client {
	stripe.Key = cfg.SecretKey

	return &Client{
		webhookSecret: cfg.WebhookSecret,
		currency:      cfg.Currency,
		siteURL:       cfg.SiteURL,
	}
}

// CreateCheckoutSession opens an embedded checkout session. The (userId,
// noteIds) metadata attached here is the only key the reconciler has to
// recover intent, so it is always written.
func (c *Client) CreateCheckoutSession(ctx context.Context, userID string, lines []ports.CheckoutLine, returnURL string) (*ports.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	productIDs := make([]string, 0, len(lines))

	for _, line := range lines {
		currency := line.Product.Currency
		if currency == "" {
			currency = c.currency
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(line.Product.Title),
					Description: stripe.String(line.Product.Description),
				},
				UnitAmount: stripe.Int64(line.Product.UnitPriceCents),
			},
			Quantity: stripe.Int64(int64(line.Quantity)),
		})
		productIDs = append(productIDs, line.Product.ID)
	}

	if returnURL == "" {
		returnURL = c.siteURL + "/checkout/return?session_id={CHECKOUT_SESSION_ID}"
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		UIMode:             stripe.String(string(stripe.CheckoutSessionUIModeEmbedded)),
		ReturnURL:          stripe.String(returnURL),
		CustomerCreation:   stripe.String(string(stripe.CheckoutSessionCustomerCreationAlways)),
	}
	params.Context = ctx
	params.AddMetadata("userId", userID)
	params.AddMetadata("noteIds", strings.Join(productIDs, ","))

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &ports.CheckoutSession{
		ID:           sess.ID,
		ClientSecret: sess.ClientSecret,
	}, nil
}

func (c *Client) GetSessionStatus(ctx context.Context, sessionID string) (*ports.SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	status := &ports.SessionStatus{Status: string(sess.Status)}
	if sess.CustomerDetails != nil {
		status.CustomerEmail = sess.CustomerDetails.Email
	}

	return status, nil
}

// ParseWebhook is the security boundary: the signature is checked against
// the raw body before any field of the payload is read.
func (c *Client) ParseWebhook(payload []byte, signatureHeader string) (*payment.Event, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, c.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidSignature, err)
	}

	return c.toDomainEvent(event)
}

func (c *Client) toDomainEvent(event stripe.Event) (*payment.Event, error) {
	ev := &payment.Event{
		ID:   event.ID,
		Kind: kindOf(event.Type),
	}

	if ev.Kind != payment.KindCheckoutCompleted {
		return ev, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}

	ev.SessionID = sess.ID
	ev.PaymentRef = sess.ID
	if sess.PaymentIntent != nil && sess.PaymentIntent.ID != "" {
		ev.PaymentRef = sess.PaymentIntent.ID
	}
	ev.Attribution = payment.ParseAttribution(sess.Metadata)

	return ev, nil
}

func kindOf(eventType stripe.EventType) payment.Kind {
	switch eventType {
	case "checkout.session.completed":
		return payment.KindCheckoutCompleted
	case "payment_intent.succeeded":
		return payment.KindPaymentSucceeded
	case "payment_intent.payment_failed":
		return payment.KindPaymentFailed
	default:
		return payment.KindUnknown
	}
}
