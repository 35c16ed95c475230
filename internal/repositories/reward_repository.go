package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"yoyo-backend/internal/models"
)

type RewardRepository struct {
	DB *pgxpool.Pool
}

func NewRewardRepository(db *pgxpool.Pool) *RewardRepository {
	return &RewardRepository{DB: db}
}

const rewardColumns = `id, name, type, target, reward_amount, timeframe_days, is_active, created_at`

func scanReward(row pgx.Row) (*models.Reward, error) {
	var rw models.Reward
	err := row.Scan(&rw.ID, &rw.Name, &rw.Type, &rw.Target, &rw.RewardAmount,
		&rw.TimeframeDays, &rw.IsActive, &rw.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rw, nil
}

func (r *RewardRepository) Create(ctx context.Context, rw *models.Reward) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO rewards(name, type, target, reward_amount, timeframe_days, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		rw.Name, rw.Type, rw.Target, rw.RewardAmount, rw.TimeframeDays, rw.IsActive,
	).Scan(&rw.ID, &rw.CreatedAt)
}

func (r *RewardRepository) Get(ctx context.Context, id int) (*models.Reward, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+rewardColumns+` FROM rewards WHERE id=$1`, id)
	return scanReward(row)
}

func (r *RewardRepository) List(ctx context.Context) ([]*models.Reward, error) {
	return r.listWhere(ctx, ``)
}

func (r *RewardRepository) ListActive(ctx context.Context) ([]*models.Reward, error) {
	return r.listWhere(ctx, `WHERE is_active`)
}

func (r *RewardRepository) listWhere(ctx context.Context, where string) ([]*models.Reward, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+rewardColumns+` FROM rewards `+where+` ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rewards []*models.Reward
	for rows.Next() {
		rw, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, rw)
	}
	return rewards, rows.Err()
}

func (r *RewardRepository) Update(ctx context.Context, rw *models.Reward) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE rewards SET name=$1, type=$2, target=$3, reward_amount=$4, timeframe_days=$5, is_active=$6
		 WHERE id=$7`,
		rw.Name, rw.Type, rw.Target, rw.RewardAmount, rw.TimeframeDays, rw.IsActive, rw.ID)
	return err
}

func (r *RewardRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM rewards WHERE id=$1`, id)
	return err
}

// Earned rewards

func (r *RewardRepository) RecordEarned(ctx context.Context, e *models.EarnedReward) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO earned_rewards(reward_id, reward_name, salesperson_id, salesperson_name, amount)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, date_earned`,
		e.RewardID, e.RewardName, e.SalespersonID, e.SalespersonName, e.Amount,
	).Scan(&e.ID, &e.DateEarned)
}

func (r *RewardRepository) ListEarned(ctx context.Context) ([]*models.EarnedReward, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, reward_id, reward_name, salesperson_id, salesperson_name, amount, date_earned
		 FROM earned_rewards ORDER BY date_earned DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEarned(rows)
}

func (r *RewardRepository) ListEarnedBySalesperson(ctx context.Context, salespersonID int) ([]*models.EarnedReward, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, reward_id, reward_name, salesperson_id, salesperson_name, amount, date_earned
		 FROM earned_rewards WHERE salesperson_id=$1 ORDER BY date_earned DESC`, salespersonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEarned(rows)
}

func collectEarned(rows pgx.Rows) ([]*models.EarnedReward, error) {
	var earned []*models.EarnedReward
	for rows.Next() {
		var e models.EarnedReward
		if err := rows.Scan(&e.ID, &e.RewardID, &e.RewardName, &e.SalespersonID,
			&e.SalespersonName, &e.Amount, &e.DateEarned); err != nil {
			return nil, err
		}
		earned = append(earned, &e)
	}
	return earned, rows.Err()
}

// HasEarned reports whether the salesperson already claimed this reward,
// so repeated progress checks stay idempotent.
func (r *RewardRepository) HasEarned(ctx context.Context, rewardID, salespersonID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM earned_rewards WHERE reward_id=$1 AND salesperson_id=$2)`,
		rewardID, salespersonID).Scan(&exists)
	return exists, err
}
