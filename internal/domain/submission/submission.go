package submission

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Submission is a seller's offer to list their notes on the storefront.
// It stays pending until reviewed; approval is a manual step.
type Submission struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	AskingPriceCents int64     `json:"asking_price_cents"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewSubmission(userID, title, description string, askingPriceCents int64) (*Submission, error) {
	if userID == "" {
		return nil, errors.New("user id cannot be empty")
	}

	if title == "" {
		return nil, errors.New("submission title cannot be empty")
	}

	if askingPriceCents < 0 {
		return nil, errors.New("asking price cannot be negative")
	}

	return &Submission{
		UserID:           userID,
		Title:            title,
		Description:      description,
		AskingPriceCents: askingPriceCents,
		Status:           StatusPending,
		CreatedAt:        time.Now().UTC(),
	}, nil
}
