package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/lexnotes/storefront-service/internal/domain/submission"
	"github.com/lexnotes/storefront-service/internal/infrastructure/monitoring"
)

type SubmissionRepository struct {
	conn *Connection
}

func NewSubmissionRepository(conn *Connection) *SubmissionRepository {
	return &SubmissionRepository{
		conn: conn,
	}
}

func (r *SubmissionRepository) CreateSubmission(ctx context.Context, sub *submission.Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}

	query := `
		INSERT INTO submissions (id, user_id, title, description, asking_price_cents, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	_, err := monitoring.InstrumentExec(ctx, r.conn.db, "INSERT", "submissions", query,
		sub.ID, sub.UserID, sub.Title, sub.Description, sub.AskingPriceCents, string(sub.Status),
	)
	return err
}

func (r *SubmissionRepository) GetSubmissionsByUserID(ctx context.Context, userID string) ([]*submission.Submission, error) {
	query := `
		SELECT id, user_id, title, description, asking_price_cents, status, created_at
		FROM submissions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.conn.db, "SELECT", "submissions", query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []*submission.Submission
	for rows.Next() {
		var s submission.Submission
		if err := rows.Scan(&s.ID, &s.UserID, &s.Title, &s.Description, &s.AskingPriceCents, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		submissions = append(submissions, &s)
	}

	return submissions, rows.Err()
}
