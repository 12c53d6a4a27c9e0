package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/lexnotes/storefront-service/internal/application/ports"
	"github.com/lexnotes/storefront-service/internal/infrastructure/http/response"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

type CatalogHandler struct {
	catalog ports.CatalogRepository
	log     *logger.Logger
}

func NewCatalogHandler(catalog ports.CatalogRepository, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

func (h *CatalogHandler) HandleListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		limit := parseIntParam(r, "limit", 50)
		offset := parseIntParam(r, "offset", 0)
		if limit < 1 || limit > 200 {
			limit = 50
		}
		if offset < 0 {
			offset = 0
		}

		products, err := h.catalog.GetProducts(r.Context(), limit, offset)
		if err != nil {
			h.log.Error("Failed to list products", "error", err)
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, products)
	}
}

func (h *CatalogHandler) HandleGetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		id := strings.TrimPrefix(r.URL.Path, "/products/")
		if id == "" || strings.Contains(id, "/") {
			response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Product ID is required")
			return
		}

		product, err := h.catalog.GetProductByID(r.Context(), id)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, product)
	}
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
