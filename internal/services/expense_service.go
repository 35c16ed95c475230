package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/repositories"
	"yoyo-backend/internal/timeutil"
)

type ExpenseService struct {
	ExpenseRepo *repositories.ExpenseRepository
}

func NewExpenseService(expenseRepo *repositories.ExpenseRepository) *ExpenseService {
	return &ExpenseService{ExpenseRepo: expenseRepo}
}

func (s *ExpenseService) CreateExpense(ctx context.Context, req *models.CreateExpenseRequest) (*models.Expense, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("expense name is required")
	}
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if _, err := timeutil.ParseDate(req.Date); err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", req.Date)
	}

	e := &models.Expense{
		Name:     strings.TrimSpace(req.Name),
		Category: req.Category,
		Amount:   req.Amount,
		Date:     req.Date,
	}
	if e.Category == "" {
		e.Category = "Other"
	}
	if err := s.ExpenseRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return e, nil
}

func (s *ExpenseService) UpdateExpense(ctx context.Context, id int, req *models.UpdateExpenseRequest) (*models.Expense, error) {
	e, err := s.ExpenseRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("expense name is required")
	}
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if _, err := timeutil.ParseDate(req.Date); err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", req.Date)
	}

	e.Name = strings.TrimSpace(req.Name)
	e.Category = req.Category
	e.Amount = req.Amount
	e.Date = req.Date
	if e.Category == "" {
		e.Category = "Other"
	}
	if err := s.ExpenseRepo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return e, nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, id int) (*models.Expense, error) {
	return s.ExpenseRepo.Get(ctx, id)
}

func (s *ExpenseService) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	return s.ExpenseRepo.List(ctx)
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, id int) error {
	return s.ExpenseRepo.Delete(ctx, id)
}
