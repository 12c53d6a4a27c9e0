package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/lexnotes/storefront-service/internal/domain/errors"
	"github.com/lexnotes/storefront-service/internal/domain/identity"
)

func TestCreateUser_DuplicateEmail(t *testing.T) {
	conn, mock := setupMockDB(t)
	repo := NewUserRepository(conn)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u1", "a@example.com", "hash").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.CreateUser(context.Background(), &identity.User{
		ID:           "u1",
		Email:        "a@example.com",
		PasswordHash: "hash",
	})

	assert.ErrorIs(t, err, domainErrors.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail(t *testing.T) {
	conn, mock := setupMockDB(t)
	repo := NewUserRepository(conn)

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
		AddRow("u1", "a@example.com", "hash", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("a@example.com").
		WillReturnRows(rows)

	user, err := repo.GetUserByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	conn, mock := setupMockDB(t)
	repo := NewUserRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}))

	_, err := repo.GetUserByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, domainErrors.ErrUserNotFound)
}

func TestUserExists(t *testing.T) {
	conn, mock := setupMockDB(t)
	repo := NewUserRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.UserExists(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, exists)
}
