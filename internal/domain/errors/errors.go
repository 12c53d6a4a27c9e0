package errors

import (
	"errors"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrPreviewUnavailable = errors.New("no preview available for this product")

	ErrEmptyCart       = errors.New("no items to check out")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUser        = errors.New("user does not exist")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("authentication required")

	ErrInvalidSignature   = errors.New("webhook signature verification failed")
	ErrMissingAttribution = errors.New("payment event metadata missing user or products")

	ErrEntitlementDenied = errors.New("no entitlement for this product")

	ErrSubmissionNotFound = errors.New("submission not found")

	ErrPartialReconciliation = errors.New("some purchases could not be recorded")
)
