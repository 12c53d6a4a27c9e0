package commands

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexnotes/storefront-service/internal/application/ports"
	"github.com/lexnotes/storefront-service/internal/domain/cart"
	"github.com/lexnotes/storefront-service/internal/domain/catalog"
	domainErrors "github.com/lexnotes/storefront-service/internal/domain/errors"
	"github.com/lexnotes/storefront-service/internal/domain/identity"
	"github.com/lexnotes/storefront-service/internal/domain/payment"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

type stubUserRepo struct {
	users map[string]bool
}

func (s *stubUserRepo) CreateUser(_ context.Context, _ *identity.User) error { return nil }
func (s *stubUserRepo) GetUserByEmail(_ context.Context, _ string) (*identity.User, error) {
	return nil, domainErrors.ErrUserNotFound
}
func (s *stubUserRepo) GetUserByID(_ context.Context, _ string) (*identity.User, error) {
	return nil, domainErrors.ErrUserNotFound
}
func (s *stubUserRepo) UserExists(_ context.Context, id string) (bool, error) {
	return s.users[id], nil
}

type stubCatalog struct {
	products map[string]*catalog.Product
}

func (s *stubCatalog) GetProductByID(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domainErrors.ErrProductNotFound
	}
	return p, nil
}
func (s *stubCatalog) GetProducts(_ context.Context, _, _ int) ([]*catalog.Product, error) {
	return nil, nil
}
func (s *stubCatalog) CreateProduct(_ context.Context, _ *catalog.Product) error { return nil }

type stubGateway struct {
	lastUserID string
	lastLines  []ports.CheckoutLine
	lastReturn string
}

func (s *stubGateway) CreateCheckoutSession(_ context.Context, userID string, lines []ports.CheckoutLine, returnURL string) (*ports.CheckoutSession, error) {
	s.lastUserID = userID
	s.lastLines = lines
	s.lastReturn = returnURL
	return &ports.CheckoutSession{ID: "cs_test_1", ClientSecret: "cs_test_1_secret"}, nil
}

func (s *stubGateway) GetSessionStatus(_ context.Context, _ string) (*ports.SessionStatus, error) {
	return &ports.SessionStatus{Status: "complete"}, nil
}

func (s *stubGateway) ParseWebhook(_ []byte, _ string) (*payment.Event, error) {
	return nil, nil
}

func newTestHandler(users *stubUserRepo, cat *stubCatalog, gateway *stubGateway) *BeginCheckoutHandler {
	return NewBeginCheckoutHandler(users, cat, gateway, logger.NewWithOutput(io.Discard))
}

func testCatalog() *stubCatalog {
	return &stubCatalog{products: map[string]*catalog.Product{
		"tax-law-notes":   {ID: "tax-law-notes", Title: "Tax Law Notes", UnitPriceCents: 1500, Currency: "aud"},
		"contracts-notes": {ID: "contracts-notes", Title: "Contracts Notes", UnitPriceCents: 2000, Currency: "aud"},
	}}
}

func TestBeginCheckout_ComputesTotalFromCatalogPrices(t *testing.T) {
	users := &stubUserRepo{users: map[string]bool{"user-1": true}}
	gateway := &stubGateway{}
	handler := newTestHandler(users, testCatalog(), gateway)

	resp, err := handler.Handle(context.Background(), BeginCheckoutCommand{
		UserID: "user-1",
		Items: []cart.Line{
			{ProductID: "tax-law-notes", Quantity: 2},
			{ProductID: "contracts-notes", Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5000), resp.TotalCents)
	assert.Equal(t, "cs_test_1", resp.SessionID)
	assert.Equal(t, "cs_test_1_secret", resp.CheckoutHandle)
	assert.Equal(t, "user-1", gateway.lastUserID)
	require.Len(t, gateway.lastLines, 2)
}

func TestBeginCheckout_EmptyCart(t *testing.T) {
	handler := newTestHandler(&stubUserRepo{users: map[string]bool{"user-1": true}}, testCatalog(), &stubGateway{})

	_, err := handler.Handle(context.Background(), BeginCheckoutCommand{UserID: "user-1"})
	assert.ErrorIs(t, err, domainErrors.ErrEmptyCart)
}

func TestBeginCheckout_InvalidQuantity(t *testing.T) {
	handler := newTestHandler(&stubUserRepo{users: map[string]bool{"user-1": true}}, testCatalog(), &stubGateway{})

	_, err := handler.Handle(context.Background(), BeginCheckoutCommand{
		UserID: "user-1",
		Items:  []cart.Line{{ProductID: "tax-law-notes", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidQuantity)
}

func TestBeginCheckout_UnknownUser(t *testing.T) {
	gateway := &stubGateway{}
	handler := newTestHandler(&stubUserRepo{users: map[string]bool{}}, testCatalog(), gateway)

	_, err := handler.Handle(context.Background(), BeginCheckoutCommand{
		UserID: "ghost",
		Items:  []cart.Line{{ProductID: "tax-law-notes", Quantity: 1}},
	})

	assert.ErrorIs(t, err, domainErrors.ErrInvalidUser)
	assert.Empty(t, gateway.lastUserID, "no session may be opened without a reconciliation target")
}

func TestBeginCheckout_UnknownProduct(t *testing.T) {
	handler := newTestHandler(&stubUserRepo{users: map[string]bool{"user-1": true}}, testCatalog(), &stubGateway{})

	_, err := handler.Handle(context.Background(), BeginCheckoutCommand{
		UserID: "user-1",
		Items:  []cart.Line{{ProductID: "missing", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domainErrors.ErrProductNotFound)
}
