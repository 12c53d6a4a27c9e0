package handlers

import (
	"io"
	"net/http"

	"github.com/lexnotes/storefront-service/internal/application/ports"
	"github.com/lexnotes/storefront-service/internal/application/use_cases"
	"github.com/lexnotes/storefront-service/internal/infrastructure/http/response"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

// maxWebhookBody caps webhook payload reads. Checkout events are a few KB.
const maxWebhookBody = 1 << 16

type WebhookHandler struct {
	gateway   ports.PaymentGateway
	reconcile *use_cases.ReconcileUseCase
	log       *logger.Logger
}

func NewWebhookHandler(gateway ports.PaymentGateway, reconcile *use_cases.ReconcileUseCase, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		gateway:   gateway,
		reconcile: reconcile,
		log:       log,
	}
}

// HandleWebhook receives payment processor notifications. The signature is
// verified before anything in the payload is trusted. A 2xx acknowledges the
// delivery; a 5xx asks the processor to redeliver later.
func (h *WebhookHandler) HandleWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			h.log.Error("Failed to read webhook body", "error", err.Error())
			response.WriteError(w, http.StatusBadRequest, response.StatusError, "Could not read request body")
			return
		}

		event, err := h.gateway.ParseWebhook(payload, r.Header.Get("Stripe-Signature"))
		if err != nil {
			h.log.Warn("Webhook rejected", "error", err.Error())
			response.WriteDomainError(w, err)
			return
		}

		result, err := h.reconcile.HandleEvent(r.Context(), event)
		if err != nil {
			h.log.Error("Reconciliation failed",
				"event_id", event.ID,
				"error", err.Error(),
			)
			response.WriteDomainError(w, err)
			return
		}

		h.log.Info("Webhook processed",
			"event_id", event.ID,
			"kind", string(event.Kind),
			"granted", len(result.Granted),
			"already_owned", len(result.AlreadyOwned),
		)

		response.WriteSuccess(w, map[string]bool{"received": true})
	}
}
