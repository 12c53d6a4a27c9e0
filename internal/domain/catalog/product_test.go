package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("tax-law-notes", "Tax Law Notes", 1500, "aud", "assets/tax-law.pdf")
	require.NoError(t, err)
	assert.Equal(t, "tax-law-notes", p.ID)
	assert.Equal(t, int64(1500), p.UnitPriceCents)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		title    string
		price    int64
		assetKey string
	}{
		{"empty id", "", "Title", 100, "k"},
		{"empty title", "id", "", 100, "k"},
		{"negative price", "id", "Title", -1, "k"},
		{"zero price", "id", "Title", 0, "k"},
		{"empty asset key", "id", "Title", 100, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.id, tt.title, tt.price, "aud", tt.assetKey)
			assert.Error(t, err)
		})
	}
}
