package catalog

import (
	"errors"
	"time"
)

type Product struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	UnitPriceCents  int64     `json:"unit_price_cents"`
	Currency        string    `json:"currency"`
	AssetKey        string    `json:"-"`
	PreviewAssetKey string    `json:"-"`
	SellerID        string    `json:"seller_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewProduct(id, title string, unitPriceCents int64, currency, assetKey string) (*Product, error) {
	if id == "" {
		return nil, errors.New("product id cannot be empty")
	}

	if title == "" {
		return nil, errors.New("product title cannot be empty")
	}

	if unitPriceCents <= 0 {
		return nil, errors.New("product price must be positive")
	}

	if assetKey == "" {
		return nil, errors.New("product asset key cannot be empty")
	}

	return &Product{
		ID:             id,
		Title:          title,
		UnitPriceCents: unitPriceCents,
		Currency:       currency,
		AssetKey:       assetKey,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
