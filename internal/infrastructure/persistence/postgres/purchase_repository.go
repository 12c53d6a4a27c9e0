package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/lexnotes/storefront-service/internal/domain/purchase"
	"github.com/lexnotes/storefront-service/internal/infrastructure/monitoring"
)

type PurchaseRepository struct {
	conn *Connection
}

func NewPurchaseRepository(conn *Connection) *PurchaseRepository {
	return &PurchaseRepository{
		conn: conn,
	}
}

// CreatePurchaseIfAbsent relies on the UNIQUE(user_id, product_id)
// constraint: concurrent deliveries race at the database, not in application
// code, and at most one insert wins.
func (r *PurchaseRepository) CreatePurchaseIfAbsent(ctx context.Context, p *purchase.Purchase) (bool, error) {
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}

	query := `
		INSERT INTO purchases (id, user_id, product_id, payment_ref, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	result, err := monitoring.InstrumentExec(ctx, r.conn.db, "INSERT", "purchases", query,
		id, p.UserID, p.ProductID, p.PaymentRef,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

func (r *PurchaseRepository) HasPurchase(ctx context.Context, userID, productID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM purchases WHERE user_id = $1 AND product_id = $2
		)
	`

	var exists bool
	row := monitoring.InstrumentQueryRow(ctx, r.conn.db, "SELECT", "purchases", query, userID, productID)
	err := row.Scan(&exists)
	return exists, err
}

func (r *PurchaseRepository) GetPurchasesByUserID(ctx context.Context, userID string) ([]*purchase.Purchase, error) {
	query := `
		SELECT id, user_id, product_id, payment_ref, created_at
		FROM purchases
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.conn.db, "SELECT", "purchases", query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*purchase.Purchase
	for rows.Next() {
		var p purchase.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.ProductID, &p.PaymentRef, &p.CreatedAt); err != nil {
			return nil, err
		}
		purchases = append(purchases, &p)
	}

	return purchases, rows.Err()
}
