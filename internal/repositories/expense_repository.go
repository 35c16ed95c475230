package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/timeutil"
)

type ExpenseRepository struct {
	DB *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{DB: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO expenses(name, category, amount, date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.Name, e.Category, e.Amount, e.Date,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *ExpenseRepository) Get(ctx context.Context, id int) (*models.Expense, error) {
	var e models.Expense
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, category, amount, date, created_at FROM expenses WHERE id=$1`, id,
	).Scan(&e.ID, &e.Name, &e.Category, &e.Amount, &e.Date, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) List(ctx context.Context) ([]*models.Expense, error) {
	return r.listWhere(ctx, ``)
}

// ListBetween filters on the ISO date string; lexicographic order matches
// chronological order for YYYY-MM-DD.
func (r *ExpenseRepository) ListBetween(ctx context.Context, start, end time.Time) ([]*models.Expense, error) {
	return r.listWhere(ctx, `WHERE date >= $1 AND date <= $2`,
		start.Format(timeutil.DateLayout), end.Format(timeutil.DateLayout))
}

func (r *ExpenseRepository) listWhere(ctx context.Context, where string, args ...interface{}) ([]*models.Expense, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, category, amount, date, created_at FROM expenses `+where+` ORDER BY date DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Amount, &e.Date, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, &e)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) Update(ctx context.Context, e *models.Expense) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE expenses SET name=$1, category=$2, amount=$3, date=$4 WHERE id=$5`,
		e.Name, e.Category, e.Amount, e.Date, e.ID)
	return err
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM expenses WHERE id=$1`, id)
	return err
}
