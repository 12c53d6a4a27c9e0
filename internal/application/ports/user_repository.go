package ports

import (
	"context"

	"github.com/lexnotes/storefront-service/internal/domain/identity"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *identity.User) error
	GetUserByEmail(ctx context.Context, email string) (*identity.User, error)
	GetUserByID(ctx context.Context, id string) (*identity.User, error)
	UserExists(ctx context.Context, id string) (bool, error)
}
