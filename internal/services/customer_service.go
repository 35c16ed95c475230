package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/repositories"
)

type CustomerService struct {
	CustomerRepo *repositories.CustomerRepository
	UserRepo     *repositories.UserRepository
}

func NewCustomerService(customerRepo *repositories.CustomerRepository, userRepo *repositories.UserRepository) *CustomerService {
	return &CustomerService{CustomerRepo: customerRepo, UserRepo: userRepo}
}

var phonePrefixes = []string{"010", "011", "012", "015"}

// ValidatePhoneNumber checks for an Egyptian mobile number: exactly 11
// digits starting with 010, 011, 012 or 015.
func ValidatePhoneNumber(phone string) error {
	if len(phone) != 11 {
		return errors.New("phone number must be exactly 11 digits")
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return errors.New("phone number must contain digits only")
		}
	}
	for _, p := range phonePrefixes {
		if strings.HasPrefix(phone, p) {
			return nil
		}
	}
	return errors.New("phone number must start with 010, 011, 012 or 015")
}

func (s *CustomerService) validate(ctx context.Context, fullName, phone string, referredByID *int) (string, error) {
	if strings.TrimSpace(fullName) == "" {
		return "", errors.New("full name is required")
	}
	if err := ValidatePhoneNumber(phone); err != nil {
		return "", err
	}
	if referredByID == nil {
		return "", nil
	}
	sp, err := s.UserRepo.Get(ctx, *referredByID)
	if err != nil {
		return "", fmt.Errorf("referring salesperson %d not found", *referredByID)
	}
	return sp.Name, nil
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	referrerName, err := s.validate(ctx, req.FullName, req.PhoneNumber, req.ReferredByID)
	if err != nil {
		return nil, err
	}
	if existing, _ := s.CustomerRepo.GetByPhone(ctx, req.PhoneNumber); existing != nil {
		return nil, fmt.Errorf("a customer with phone %s already exists", req.PhoneNumber)
	}

	c := &models.Customer{
		FullName:       strings.TrimSpace(req.FullName),
		Address:        req.Address,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		ReferredByID:   req.ReferredByID,
		ReferredByName: referrerName,
	}
	if err := s.CustomerRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	c, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	referrerName, err := s.validate(ctx, req.FullName, req.PhoneNumber, req.ReferredByID)
	if err != nil {
		return nil, err
	}
	if req.PhoneNumber != c.PhoneNumber {
		if existing, _ := s.CustomerRepo.GetByPhone(ctx, req.PhoneNumber); existing != nil && existing.ID != id {
			return nil, fmt.Errorf("a customer with phone %s already exists", req.PhoneNumber)
		}
	}

	c.FullName = strings.TrimSpace(req.FullName)
	c.Address = req.Address
	c.PhoneNumber = req.PhoneNumber
	c.Email = req.Email
	c.ReferredByID = req.ReferredByID
	c.ReferredByName = referrerName
	if err := s.CustomerRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return c, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	return s.CustomerRepo.Get(ctx, id)
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.CustomerRepo.List(ctx)
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id int) error {
	return s.CustomerRepo.Delete(ctx, id)
}
