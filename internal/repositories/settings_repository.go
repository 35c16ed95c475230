package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"yoyo-backend/internal/models"
)

// SettingsRepository manages the single settings row (id is always 1).
type SettingsRepository struct {
	DB *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	err := r.DB.QueryRow(ctx,
		`SELECT company_name, company_address, company_phone, commission_rate, updated_at
		 FROM settings WHERE id=1`).
		Scan(&s.CompanyName, &s.CompanyAddress, &s.CompanyPhone, &s.CommissionRate, &s.UpdatedAt)
	return &s, err
}

func (r *SettingsRepository) Save(ctx context.Context, s *models.Settings) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO settings(id, company_name, company_address, company_phone, commission_rate, updated_at)
		 VALUES (1, $1, $2, $3, $4, NOW())
		 ON CONFLICT (id) DO UPDATE SET
		   company_name=EXCLUDED.company_name,
		   company_address=EXCLUDED.company_address,
		   company_phone=EXCLUDED.company_phone,
		   commission_rate=EXCLUDED.commission_rate,
		   updated_at=NOW()
		 RETURNING updated_at`,
		s.CompanyName, s.CompanyAddress, s.CompanyPhone, s.CommissionRate,
	).Scan(&s.UpdatedAt)
}
