package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/lexnotes/storefront-service/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

var errorMappings = map[error]ErrorMapping{
	domainErrors.ErrProductNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Product not found",
	},
	domainErrors.ErrPreviewUnavailable: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "No preview available for this product",
	},
	domainErrors.ErrEmptyCart: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "No items to check out",
	},
	domainErrors.ErrInvalidQuantity: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Item quantity must be at least 1",
	},
	domainErrors.ErrInvalidUser: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "User does not exist",
	},
	domainErrors.ErrUserNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "User not found",
	},
	domainErrors.ErrEmailTaken: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Email is already registered",
	},
	domainErrors.ErrInvalidCredentials: {
		HTTPStatus: http.StatusUnauthorized,
		Status:     StatusUnauthorized,
		Message:    "Invalid email or password",
	},
	domainErrors.ErrUnauthenticated: {
		HTTPStatus: http.StatusUnauthorized,
		Status:     StatusUnauthorized,
		Message:    "Authentication required",
	},
	domainErrors.ErrInvalidSignature: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Webhook signature verification failed",
	},
	domainErrors.ErrEntitlementDenied: {
		HTTPStatus: http.StatusForbidden,
		Status:     StatusForbidden,
		Message:    "No entitlement for this product",
	},
	domainErrors.ErrSubmissionNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Submission not found",
	},
	domainErrors.ErrPartialReconciliation: {
		HTTPStatus: http.StatusInternalServerError,
		Status:     StatusInternalError,
		Message:    "Some purchases could not be recorded",
	},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	for domainErr, mapping := range errorMappings {
		if errors.Is(err, domainErr) {
			return mapping.HTTPStatus, Error(mapping.Status, mapping.Message, err.Error())
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error", err.Error())
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
