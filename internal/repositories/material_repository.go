package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"yoyo-backend/internal/models"
)

type MaterialRepository struct {
	DB *pgxpool.Pool
}

func NewMaterialRepository(db *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

const materialColumns = `id, name, unit_type, unit_label, price_per_unit, stock_qty, min_qty, created_at, updated_at`

func scanMaterial(row pgx.Row) (*models.Material, error) {
	var m models.Material
	err := row.Scan(&m.ID, &m.Name, &m.UnitType, &m.UnitLabel, &m.PricePerUnit,
		&m.StockQty, &m.MinQty, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	// Low-stock is a display warning only; stock is never floored
	if m.MinQty != nil && m.StockQty <= *m.MinQty {
		m.LowStock = true
	}
	return &m, nil
}

func (r *MaterialRepository) Create(ctx context.Context, m *models.Material) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO materials(name, unit_type, unit_label, price_per_unit, stock_qty, min_qty)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		m.Name, m.UnitType, m.UnitLabel, m.PricePerUnit, m.StockQty, m.MinQty,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MaterialRepository) Get(ctx context.Context, id int) (*models.Material, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE id=$1`, id)
	return scanMaterial(row)
}

func (r *MaterialRepository) List(ctx context.Context) ([]*models.Material, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []*models.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func (r *MaterialRepository) Update(ctx context.Context, m *models.Material) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE materials SET name=$1, unit_type=$2, unit_label=$3, price_per_unit=$4,
		        stock_qty=$5, min_qty=$6, updated_at=NOW()
		 WHERE id=$7`,
		m.Name, m.UnitType, m.UnitLabel, m.PricePerUnit, m.StockQty, m.MinQty, m.ID)
	return err
}

func (r *MaterialRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM materials WHERE id=$1`, id)
	return err
}

// AdjustStock applies a signed stock delta to one material inside the caller's
// transaction. Stock may go negative; there is no floor.
func (r *MaterialRepository) AdjustStock(ctx context.Context, tx pgx.Tx, materialID int, delta float64) error {
	_, err := tx.Exec(ctx,
		`UPDATE materials SET stock_qty = stock_qty + $1, updated_at=NOW() WHERE id=$2`,
		delta, materialID)
	return err
}
