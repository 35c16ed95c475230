package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/repositories"
)

type ProductService struct {
	ProductRepo  *repositories.ProductRepository
	MaterialRepo *repositories.MaterialRepository
}

func NewProductService(productRepo *repositories.ProductRepository, materialRepo *repositories.MaterialRepository) *ProductService {
	return &ProductService{ProductRepo: productRepo, MaterialRepo: materialRepo}
}

// resolveRecipe validates the recipe lines against existing materials and
// prices the recipe at current material prices.
func (s *ProductService) resolveRecipe(ctx context.Context, lines []models.ProductMaterial) ([]models.ProductMaterial, float64, error) {
	var (
		out  []models.ProductMaterial
		cost float64
	)
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, 0, fmt.Errorf("material quantity must be positive, got %v", line.Quantity)
		}
		m, err := s.MaterialRepo.Get(ctx, line.MaterialID)
		if err != nil {
			return nil, 0, fmt.Errorf("material %d not found", line.MaterialID)
		}
		out = append(out, models.ProductMaterial{
			MaterialID:   m.ID,
			MaterialName: m.Name,
			Quantity:     line.Quantity,
		})
		cost += m.PricePerUnit * line.Quantity
	}
	return out, cost, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("product name is required")
	}
	if req.Price < 0 {
		return nil, errors.New("price cannot be negative")
	}

	materials, cost, err := s.resolveRecipe(ctx, req.Materials)
	if err != nil {
		return nil, err
	}
	p := &models.Product{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Price:         req.Price,
		Materials:     materials,
		MaterialsCost: cost,
	}
	if err := s.ProductRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int, req *models.UpdateProductRequest) (*models.Product, error) {
	p, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("product name is required")
	}
	if req.Price < 0 {
		return nil, errors.New("price cannot be negative")
	}

	materials, cost, err := s.resolveRecipe(ctx, req.Materials)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.Price = req.Price
	p.Materials = materials
	p.MaterialsCost = cost
	if err := s.ProductRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.ProductRepo.Get(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.ProductRepo.List(ctx)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	return s.ProductRepo.Delete(ctx, id)
}
