package ports

import (
	"context"

	"github.com/lexnotes/storefront-service/internal/domain/submission"
)

type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, sub *submission.Submission) error
	GetSubmissionsByUserID(ctx context.Context, userID string) ([]*submission.Submission, error)
}
