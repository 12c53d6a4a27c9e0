package ports

import (
	"context"

	"github.com/lexnotes/storefront-service/internal/domain/catalog"
)

type CatalogRepository interface {
	GetProductByID(ctx context.Context, id string) (*catalog.Product, error)
	GetProducts(ctx context.Context, limit, offset int) ([]*catalog.Product, error)
	CreateProduct(ctx context.Context, product *catalog.Product) error
}
