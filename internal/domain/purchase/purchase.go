package purchase

import (
	"errors"
	"time"
)

// Purchase is the durable record that a user bought a product. At most one
// row exists per (user, product); the uniqueness is enforced by the storage
// layer, not here.
type Purchase struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ProductID  string    `json:"product_id"`
	PaymentRef string    `json:"payment_ref"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewPurchase(userID, productID, paymentRef string) (*Purchase, error) {
	if userID == "" {
		return nil, errors.New("user id cannot be empty")
	}

	if productID == "" {
		return nil, errors.New("product id cannot be empty")
	}

	return &Purchase{
		UserID:     userID,
		ProductID:  productID,
		PaymentRef: paymentRef,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
