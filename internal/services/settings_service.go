package services

import (
	"context"
	"errors"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/repositories"
)

type SettingsService struct {
	Repo *repositories.SettingsRepository
}

func NewSettingsService(repo *repositories.SettingsRepository) *SettingsService {
	return &SettingsService{Repo: repo}
}

// GetSettings returns the singleton settings row, falling back to defaults
// when nothing has been saved yet.
func (s *SettingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	settings, err := s.Repo.Get(ctx)
	if err != nil {
		return &models.Settings{
			CompanyName:    "Yoyo Shop",
			CommissionRate: 0.05,
		}, nil
	}
	return settings, nil
}

func (s *SettingsService) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.Settings, error) {
	if req.CommissionRate < 0 || req.CommissionRate > 1 {
		return nil, errors.New("commission rate must be between 0 and 1")
	}
	settings := &models.Settings{
		CompanyName:    req.CompanyName,
		CompanyAddress: req.CompanyAddress,
		CompanyPhone:   req.CompanyPhone,
		CommissionRate: req.CommissionRate,
	}
	if err := s.Repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
