package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"yoyo-backend/internal/models"
)

type ActivityLogRepository struct {
	DB *pgxpool.Pool
}

func NewActivityLogRepository(db *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

func (r *ActivityLogRepository) Insert(ctx context.Context, e *models.ActivityLogEntry) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO activity_log(user_id, user_name, action, details)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.UserID, e.UserName, e.Action, e.Details,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *ActivityLogRepository) List(ctx context.Context, limit int) ([]*models.ActivityLogEntry, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.DB.Query(ctx,
		`SELECT id, user_id, user_name, action, details, created_at
		 FROM activity_log ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ActivityLogEntry
	for rows.Next() {
		var e models.ActivityLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserName, &e.Action, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
