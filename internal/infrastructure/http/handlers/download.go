package handlers

import (
	"net/http"

	"github.com/lexnotes/storefront-service/internal/application/use_cases"
	"github.com/lexnotes/storefront-service/internal/domain/identity"
	"github.com/lexnotes/storefront-service/internal/infrastructure/http/response"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

type DownloadHandler struct {
	downloads *use_cases.DownloadUseCase
	log       *logger.Logger
}

func NewDownloadHandler(downloads *use_cases.DownloadUseCase, log *logger.Logger) *DownloadHandler {
	return &DownloadHandler{downloads: downloads, log: log}
}

type signedURLResponse struct {
	URL string `json:"url"`
}

func (h *DownloadHandler) HandleDownload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		ident := identity.FromContext(r.Context())
		if ident == nil {
			response.WriteError(w, http.StatusUnauthorized, response.StatusUnauthorized, "Authentication required")
			return
		}

		productID := r.URL.Query().Get("product_id")
		if productID == "" {
			response.WriteValidationError(w, "Validation failed", map[string]string{
				"product_id": "product_id is required",
			})
			return
		}

		url, err := h.downloads.GetDownloadURL(r.Context(), ident.UserID, productID)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, signedURLResponse{URL: url})
	}
}

// HandlePreview issues a preview URL. No entitlement required.
func (h *DownloadHandler) HandlePreview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		productID := r.URL.Query().Get("product_id")
		if productID == "" {
			response.WriteValidationError(w, "Validation failed", map[string]string{
				"product_id": "product_id is required",
			})
			return
		}

		url, err := h.downloads.GetPreviewURL(r.Context(), productID)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, signedURLResponse{URL: url})
	}
}
