package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/lexnotes/storefront-service/internal/domain/errors"
	"github.com/lexnotes/storefront-service/internal/domain/identity"
	"github.com/lexnotes/storefront-service/internal/infrastructure/monitoring"
)

const uniqueViolation = "23505"

type UserRepository struct {
	conn *Connection
}

func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{
		conn: conn,
	}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *identity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	_, err := monitoring.InstrumentExec(ctx, r.conn.db, "INSERT", "users", query,
		user.ID, user.Email, user.PasswordHash,
	)
	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
		return errors.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*identity.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	return r.scanUser(monitoring.InstrumentQueryRow(ctx, r.conn.db, "SELECT", "users", query, email))
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*identity.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	return r.scanUser(monitoring.InstrumentQueryRow(ctx, r.conn.db, "SELECT", "users", query, id))
}

func (r *UserRepository) UserExists(ctx context.Context, id string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE id = $1
		)
	`

	var exists bool
	row := monitoring.InstrumentQueryRow(ctx, r.conn.db, "SELECT", "users", query, id)
	err := row.Scan(&exists)
	return exists, err
}

func (r *UserRepository) scanUser(row *sql.Row) (*identity.User, error) {
	var u identity.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
