package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/papertrail/storefront/internal/domain"
)

const feedbackColumns = `id, user_id, name, email, message, created_at`

func scanFeedback(row pgx.Row) (domain.Feedback, error) {
	var f domain.Feedback
	err := row.Scan(&f.ID, &f.UserID, &f.Name, &f.Email, &f.Message, &f.CreatedAt)
	return f, err
}

type CreateFeedbackParams struct {
	UserID  *int64
	Name    string
	Email   string
	Message string
}

func (q *Queries) CreateFeedback(ctx context.Context, arg CreateFeedbackParams) (domain.Feedback, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO feedback (user_id, name, email, message)
		VALUES ($1, $2, $3, $4)
		RETURNING `+feedbackColumns,
		arg.UserID, arg.Name, arg.Email, arg.Message,
	)
	return scanFeedback(row)
}

func (q *Queries) ListFeedback(ctx context.Context, limit int) ([]domain.Feedback, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := q.db.Query(ctx, `
		SELECT `+feedbackColumns+` FROM feedback
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}
