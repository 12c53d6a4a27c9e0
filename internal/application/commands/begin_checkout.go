package commands

import (
	"context"

	"github.com/lexnotes/storefront-service/internal/application/ports"
	"github.com/lexnotes/storefront-service/internal/domain/cart"
	"github.com/lexnotes/storefront-service/internal/domain/errors"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

type BeginCheckoutCommand struct {
	UserID    string
	Items     []cart.Line
	ReturnURL string
}

type BeginCheckoutResponse struct {
	CheckoutHandle string `json:"checkout_handle"`
	SessionID      string `json:"session_id"`
	TotalCents     int64  `json:"total_cents"`
}

type BeginCheckoutHandler struct {
	users   ports.UserRepository
	catalog ports.CatalogRepository
	gateway ports.PaymentGateway
	log     *logger.Logger
}

func NewBeginCheckoutHandler(
	users ports.UserRepository,
	catalog ports.CatalogRepository,
	gateway ports.PaymentGateway,
	log *logger.Logger,
) *BeginCheckoutHandler {
	return &BeginCheckoutHandler{
		users:   users,
		catalog: catalog,
		gateway: gateway,
		log:     log,
	}
}

// Handle verifies the caller and cart, recomputes the total from catalog
// prices and opens an external checkout session carrying the (user, products)
// attribution metadata. Nothing durable is written locally: an abandoned
// session needs no cleanup.
func (h *BeginCheckoutHandler) Handle(ctx context.Context, cmd BeginCheckoutCommand) (*BeginCheckoutResponse, error) {
	if len(cmd.Items) == 0 {
		return nil, errors.ErrEmptyCart
	}

	for _, item := range cmd.Items {
		if item.Quantity < 1 {
			return nil, errors.ErrInvalidQuantity
		}
	}

	exists, err := h.users.UserExists(ctx, cmd.UserID)
	if err != nil {
		h.log.Error("Failed to verify user", "error", err, "user_id", cmd.UserID)
		return nil, err
	}
	if !exists {
		// Refuse to open a payment session with no reconciliation target.
		return nil, errors.ErrInvalidUser
	}

	lines := make([]ports.CheckoutLine, 0, len(cmd.Items))
	var total int64
	for _, item := range cmd.Items {
		product, err := h.catalog.GetProductByID(ctx, item.ProductID)
		if err != nil {
			h.log.Warn("Checkout references unknown product", "product_id", item.ProductID, "user_id", cmd.UserID)
			return nil, errors.ErrProductNotFound
		}

		lines = append(lines, ports.CheckoutLine{Product: product, Quantity: item.Quantity})
		total += product.UnitPriceCents * int64(item.Quantity)
	}

	session, err := h.gateway.CreateCheckoutSession(ctx, cmd.UserID, lines, cmd.ReturnURL)
	if err != nil {
		h.log.Error("Failed to create checkout session", "error", err, "user_id", cmd.UserID)
		return nil, err
	}

	h.log.Info("Checkout session created",
		"session_id", session.ID,
		"user_id", cmd.UserID,
		"item_count", len(lines),
		"total_cents", total,
	)

	return &BeginCheckoutResponse{
		CheckoutHandle: session.ClientSecret,
		SessionID:      session.ID,
		TotalCents:     total,
	}, nil
}
