package postgres

import (
	"context"
	"database/sql"

	"github.com/lexnotes/storefront-service/internal/domain/catalog"
	"github.com/lexnotes/storefront-service/internal/domain/errors"
	"github.com/lexnotes/storefront-service/internal/infrastructure/monitoring"
)

type ProductRepository struct {
	conn *Connection
}

func NewProductRepository(conn *Connection) *ProductRepository {
	return &ProductRepository{
		conn: conn,
	}
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	query := `
		SELECT id, title, description, unit_price_cents, currency, asset_key, COALESCE(preview_asset_key, ''), COALESCE(seller_id, ''), created_at
		FROM products
		WHERE id = $1
	`

	row := monitoring.InstrumentQueryRow(ctx, r.conn.db, "SELECT", "products", query, id)

	var p catalog.Product
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.UnitPriceCents, &p.Currency, &p.AssetKey, &p.PreviewAssetKey, &p.SellerID, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *ProductRepository) GetProducts(ctx context.Context, limit, offset int) ([]*catalog.Product, error) {
	query := `
		SELECT id, title, description, unit_price_cents, currency, asset_key, COALESCE(preview_asset_key, ''), COALESCE(seller_id, ''), created_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.conn.db, "SELECT", "products", query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.UnitPriceCents, &p.Currency, &p.AssetKey, &p.PreviewAssetKey, &p.SellerID, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}

	return products, rows.Err()
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *catalog.Product) error {
	query := `
		INSERT INTO products (id, title, description, unit_price_cents, currency, asset_key, preview_asset_key, seller_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NOW())
	`

	_, err := monitoring.InstrumentExec(ctx, r.conn.db, "INSERT", "products", query,
		product.ID, product.Title, product.Description, product.UnitPriceCents,
		product.Currency, product.AssetKey, product.PreviewAssetKey, product.SellerID,
	)
	return err
}
