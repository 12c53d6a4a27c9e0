package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lexnotes/storefront-service/internal/application/ports"
	"github.com/lexnotes/storefront-service/internal/domain/identity"
	"github.com/lexnotes/storefront-service/internal/domain/submission"
	"github.com/lexnotes/storefront-service/internal/infrastructure/http/response"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

type SubmissionHandler struct {
	submissions ports.SubmissionRepository
	log         *logger.Logger
}

func NewSubmissionHandler(submissions ports.SubmissionRepository, log *logger.Logger) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, log: log}
}

type submissionRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	AskingPriceCents int64  `json:"asking_price_cents"`
}

func (h *SubmissionHandler) HandleSubmissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.create(w, r)
		case http.MethodGet:
			h.list(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func (h *SubmissionHandler) create(w http.ResponseWriter, r *http.Request) {
	ident := identity.FromContext(r.Context())
	if ident == nil {
		response.WriteError(w, http.StatusUnauthorized, response.StatusUnauthorized, "Authentication required")
		return
	}

	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body")
		return
	}

	sub, err := submission.NewSubmission(ident.UserID, req.Title, req.Description, req.AskingPriceCents)
	if err != nil {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"submission": err.Error(),
		})
		return
	}

	if err := h.submissions.CreateSubmission(r.Context(), sub); err != nil {
		h.log.Error("Failed to store submission", "user_id", ident.UserID, "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	h.log.Info("Submission received", "submission_id", sub.ID, "user_id", ident.UserID)
	response.WriteJSON(w, http.StatusCreated, sub)
}

func (h *SubmissionHandler) list(w http.ResponseWriter, r *http.Request) {
	ident := identity.FromContext(r.Context())
	if ident == nil {
		response.WriteError(w, http.StatusUnauthorized, response.StatusUnauthorized, "Authentication required")
		return
	}

	subs, err := h.submissions.GetSubmissionsByUserID(r.Context(), ident.UserID)
	if err != nil {
		h.log.Error("Failed to list submissions", "user_id", ident.UserID, "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, subs)
}
