package identity

import (
	"context"
	"time"
)

type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type contextKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the authenticated caller, or nil when the request
// carried no valid credential. Absence is the normal logged-out state.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(contextKey{}).(*Identity)
	return id
}
