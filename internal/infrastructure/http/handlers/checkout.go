package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lexnotes/storefront-service/internal/application/commands"
	"github.com/lexnotes/storefront-service/internal/application/ports"
	"github.com/lexnotes/storefront-service/internal/domain/cart"
	"github.com/lexnotes/storefront-service/internal/domain/identity"
	"github.com/lexnotes/storefront-service/internal/infrastructure/http/response"
	"github.com/lexnotes/storefront-service/internal/infrastructure/monitoring"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

type CheckoutHandler struct {
	users   ports.UserRepository
	catalog ports.CatalogRepository
	gateway ports.PaymentGateway
	log     *logger.Logger
}

func NewCheckoutHandler(
	users ports.UserRepository,
	catalog ports.CatalogRepository,
	gateway ports.PaymentGateway,
	log *logger.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		users:   users,
		catalog: catalog,
		gateway: gateway,
		log:     log,
	}
}

type checkoutRequest struct {
	Items []struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
	ReturnURL string `json:"return_url"`
}

func (h *CheckoutHandler) HandleBeginCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		ident := identity.FromContext(r.Context())
		if ident == nil {
			response.WriteError(w, http.StatusUnauthorized, response.StatusUnauthorized, "Authentication required")
			return
		}

		var req checkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body")
			return
		}

		items := make([]cart.Line, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, cart.Line{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		h.log.Info("Checkout request received",
			"user_id", ident.UserID,
			"item_count", len(items),
		)

		cmd := commands.BeginCheckoutCommand{
			UserID:    ident.UserID,
			Items:     items,
			ReturnURL: req.ReturnURL,
		}

		handler := commands.NewBeginCheckoutHandler(h.users, h.catalog, h.gateway, h.log)

		resp, err := handler.Handle(r.Context(), cmd)
		if err != nil {
			h.log.Error("Checkout failed",
				"user_id", ident.UserID,
				"error", err.Error(),
			)
			monitoring.RecordCheckoutFailure(err.Error())
			response.WriteDomainError(w, err)
			return
		}

		monitoring.RecordCheckoutSession()
		response.WriteSuccess(w, resp)
	}
}

// HandleSessionStatus proxies the processor's view of a checkout session so
// the return page can tell a completed payment from an abandoned one.
func (h *CheckoutHandler) HandleSessionStatus() http.HandlerFunc {
	type statusResponse struct {
		Status        string `json:"status"`
		CustomerEmail string `json:"customer_email,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		sessionID := r.URL.Query().Get("session_id")
		if sessionID == "" {
			response.WriteValidationError(w, "Validation failed", map[string]string{
				"session_id": "session_id is required",
			})
			return
		}

		status, err := h.gateway.GetSessionStatus(r.Context(), sessionID)
		if err != nil {
			h.log.Error("Failed to fetch session status", "session_id", sessionID, "error", err.Error())
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, statusResponse{
			Status:        status.Status,
			CustomerEmail: status.CustomerEmail,
		})
	}
}
