package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/repositories"
)

type MaterialService struct {
	MaterialRepo *repositories.MaterialRepository
}

func NewMaterialService(materialRepo *repositories.MaterialRepository) *MaterialService {
	return &MaterialService{MaterialRepo: materialRepo}
}

func validateMaterial(name, unitType string, price float64) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("material name is required")
	}
	if unitType != models.UnitTypeWeight && unitType != models.UnitTypePiece {
		return fmt.Errorf("unit type must be %q or %q", models.UnitTypeWeight, models.UnitTypePiece)
	}
	if price < 0 {
		return errors.New("price per unit cannot be negative")
	}
	return nil
}

func (s *MaterialService) CreateMaterial(ctx context.Context, req *models.CreateMaterialRequest) (*models.Material, error) {
	if err := validateMaterial(req.Name, req.UnitType, req.PricePerUnit); err != nil {
		return nil, err
	}
	m := &models.Material{
		Name:         strings.TrimSpace(req.Name),
		UnitType:     req.UnitType,
		UnitLabel:    req.UnitLabel,
		PricePerUnit: req.PricePerUnit,
		StockQty:     req.StockQty,
		MinQty:       req.MinQty,
	}
	if err := s.MaterialRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create material: %w", err)
	}
	m.LowStock = m.MinQty != nil && m.StockQty <= *m.MinQty
	return m, nil
}

func (s *MaterialService) UpdateMaterial(ctx context.Context, id int, req *models.UpdateMaterialRequest) (*models.Material, error) {
	m, err := s.MaterialRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateMaterial(req.Name, req.UnitType, req.PricePerUnit); err != nil {
		return nil, err
	}
	m.Name = strings.TrimSpace(req.Name)
	m.UnitType = req.UnitType
	m.UnitLabel = req.UnitLabel
	m.PricePerUnit = req.PricePerUnit
	m.StockQty = req.StockQty
	m.MinQty = req.MinQty
	if err := s.MaterialRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("update material: %w", err)
	}
	m.LowStock = m.MinQty != nil && m.StockQty <= *m.MinQty
	return m, nil
}

func (s *MaterialService) GetMaterial(ctx context.Context, id int) (*models.Material, error) {
	return s.MaterialRepo.Get(ctx, id)
}

func (s *MaterialService) ListMaterials(ctx context.Context) ([]*models.Material, error) {
	return s.MaterialRepo.List(ctx)
}

func (s *MaterialService) DeleteMaterial(ctx context.Context, id int) error {
	return s.MaterialRepo.Delete(ctx, id)
}
