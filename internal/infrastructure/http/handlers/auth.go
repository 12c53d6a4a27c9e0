package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lexnotes/storefront-service/internal/application/ports"
	domainErrors "github.com/lexnotes/storefront-service/internal/domain/errors"
	"github.com/lexnotes/storefront-service/internal/domain/identity"
	"github.com/lexnotes/storefront-service/internal/infrastructure/auth"
	"github.com/lexnotes/storefront-service/internal/infrastructure/http/response"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

type AuthHandler struct {
	users        ports.UserRepository
	tokens       *auth.TokenManager
	log          *logger.Logger
	cookieName   string
	cookieSecure bool
}

func NewAuthHandler(users ports.UserRepository, tokens *auth.TokenManager, log *logger.Logger, cookieName string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		users:        users,
		tokens:       tokens,
		log:          log,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string             `json:"token"`
	User  *identity.Identity `json:"user"`
}

func (h *AuthHandler) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body")
			return
		}

		errors := make(map[string]string)
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || !strings.Contains(req.Email, "@") {
			errors["email"] = "a valid email is required"
		}
		if len(req.Password) < 8 {
			errors["password"] = "password must be at least 8 characters"
		}
		if len(errors) > 0 {
			response.WriteValidationError(w, "Validation failed", errors)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.log.Error("Failed to hash password", "error", err)
			response.WriteDomainError(w, err)
			return
		}

		user := &identity.User{
			ID:           uuid.NewString(),
			Email:        req.Email,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}

		if err := h.users.CreateUser(r.Context(), user); err != nil {
			h.log.Warn("Registration failed", "email", req.Email, "error", err.Error())
			response.WriteDomainError(w, err)
			return
		}

		h.log.Info("User registered", "user_id", user.ID, "email", user.Email)
		h.issueSession(w, &identity.Identity{UserID: user.ID, Email: user.Email})
	}
}

func (h *AuthHandler) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body")
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))

		user, err := h.users.GetUserByEmail(r.Context(), req.Email)
		if err != nil {
			// Same response for unknown email and wrong password.
			h.log.Warn("Login failed", "email", req.Email)
			response.WriteDomainError(w, domainErrors.ErrInvalidCredentials)
			return
		}

		if !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.log.Warn("Login failed", "email", req.Email)
			response.WriteDomainError(w, domainErrors.ErrInvalidCredentials)
			return
		}

		h.log.Info("User logged in", "user_id", user.ID)
		h.issueSession(w, &identity.Identity{UserID: user.ID, Email: user.Email})
	}
}

func (h *AuthHandler) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     h.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.cookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
		response.WriteSuccess(w, map[string]bool{"logged_out": true})
	}
}

// HandleStatus reports the caller's session state. Absent or invalid tokens
// are not an error here: the response simply says not authenticated.
func (h *AuthHandler) HandleStatus() http.HandlerFunc {
	type statusResponse struct {
		Authenticated bool               `json:"authenticated"`
		User          *identity.Identity `json:"user,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ident := identity.FromContext(r.Context())
		response.WriteSuccess(w, statusResponse{
			Authenticated: ident != nil,
			User:          ident,
		})
	}
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, ident *identity.Identity) {
	token, err := h.tokens.Issue(ident)
	if err != nil {
		h.log.Error("Failed to issue session token", "error", err, "user_id", ident.UserID)
		response.WriteDomainError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	response.WriteSuccess(w, sessionResponse{Token: token, User: ident})
}
