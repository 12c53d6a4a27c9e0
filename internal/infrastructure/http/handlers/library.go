package handlers

import (
	"net/http"

	"github.com/lexnotes/storefront-service/internal/application/use_cases"
	"github.com/lexnotes/storefront-service/internal/domain/identity"
	"github.com/lexnotes/storefront-service/internal/infrastructure/http/response"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

type LibraryHandler struct {
	library *use_cases.LibraryUseCase
	log     *logger.Logger
}

func NewLibraryHandler(library *use_cases.LibraryUseCase, log *logger.Logger) *LibraryHandler {
	return &LibraryHandler{library: library, log: log}
}

func (h *LibraryHandler) HandleLibrary() http.HandlerFunc {
	type libraryResponse struct {
		ProductIDs []string `json:"product_ids"`
	}

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

		ids, err := h.library.GetOwnedProducts(r.Context(), ident.UserID)
		if err != nil {
			h.log.Error("Failed to load library", "user_id", ident.UserID, "error", err.Error())
			response.WriteDomainError(w, err)
			return
		}

		if ids == nil {
			ids = []string{}
		}
		response.WriteSuccess(w, libraryResponse{ProductIDs: ids})
	}
}
