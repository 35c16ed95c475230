package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/repositories"
	"yoyo-backend/internal/timeutil"
)

// RewardProgress is one salesperson's standing against one active reward,
// measured over the reward's trailing timeframe.
type RewardProgress struct {
	RewardID      int     `json:"reward_id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Target        float64 `json:"target"`
	Progress      float64 `json:"progress"`
	RewardAmount  float64 `json:"reward_amount"`
	TimeframeDays int     `json:"timeframe_days"`
	Achieved      bool    `json:"achieved"`
}

type SalespersonStats struct {
	UserID            int                    `json:"user_id"`
	Name              string                 `json:"name"`
	CustomersReferred int                    `json:"customers_referred"`
	OrdersCount       int                    `json:"orders_count"`
	SalesVolume       float64                `json:"sales_volume"`
	Commission        float64                `json:"commission"`
	RewardProgress    []RewardProgress       `json:"reward_progress"`
	EarnedRewards     []*models.EarnedReward `json:"earned_rewards"`
}

type SalesService struct {
	UserRepo     *repositories.UserRepository
	CustomerRepo *repositories.CustomerRepository
	OrderRepo    *repositories.OrderRepository
	RewardRepo   *repositories.RewardRepository
	Settings     *SettingsService
}

func NewSalesService(userRepo *repositories.UserRepository, customerRepo *repositories.CustomerRepository,
	orderRepo *repositories.OrderRepository, rewardRepo *repositories.RewardRepository,
	settings *SettingsService) *SalesService {
	return &SalesService{
		UserRepo:     userRepo,
		CustomerRepo: customerRepo,
		OrderRepo:    orderRepo,
		RewardRepo:   rewardRepo,
		Settings:     settings,
	}
}

// GetOverview computes stats for every active user: referred customers,
// attributed sales volume, commission at the configured rate, and progress
// toward each active reward. Newly reached targets are recorded as earned
// the first time they are seen.
func (s *SalesService) GetOverview(ctx context.Context) ([]*SalespersonStats, error) {
	users, err := s.UserRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	orders, err := s.OrderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	rewards, err := s.RewardRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rewards: %w", err)
	}
	settings, err := s.Settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	var stats []*SalespersonStats
	for _, u := range users {
		if !u.IsActive {
			continue
		}
		st := &SalespersonStats{UserID: u.ID, Name: u.Name}

		for _, o := range orders {
			if o.IsCancelled || o.SalespersonID == nil || *o.SalespersonID != u.ID {
				continue
			}
			st.OrdersCount++
			st.SalesVolume += o.Total
		}
		st.Commission = st.SalesVolume * settings.CommissionRate

		referred, err := s.CustomerRepo.CountReferredSince(ctx, u.ID, time.Time{})
		if err != nil {
			return nil, fmt.Errorf("count referred customers: %w", err)
		}
		st.CustomersReferred = referred

		for _, rw := range rewards {
			progress, err := s.rewardProgress(ctx, u.ID, orders, rw, now)
			if err != nil {
				return nil, err
			}
			if progress.Achieved {
				s.recordEarnedOnce(ctx, rw, u)
			}
			st.RewardProgress = append(st.RewardProgress, progress)
		}

		earned, err := s.RewardRepo.ListEarnedBySalesperson(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("load earned rewards: %w", err)
		}
		st.EarnedRewards = earned

		stats = append(stats, st)
	}
	return stats, nil
}

func (s *SalesService) rewardProgress(ctx context.Context, userID int, orders []*models.Order,
	rw *models.Reward, now time.Time) (RewardProgress, error) {

	p := RewardProgress{
		RewardID:      rw.ID,
		Name:          rw.Name,
		Type:          rw.Type,
		Target:        rw.Target,
		RewardAmount:  rw.RewardAmount,
		TimeframeDays: rw.TimeframeDays,
	}
	since := now.AddDate(0, 0, -rw.TimeframeDays)

	switch rw.Type {
	case models.RewardTypeCustomerCount:
		count, err := s.CustomerRepo.CountReferredSince(ctx, userID, since)
		if err != nil {
			return p, fmt.Errorf("count referred customers: %w", err)
		}
		p.Progress = float64(count)
	case models.RewardTypeSalesVolume:
		for _, o := range orders {
			if o.IsCancelled || o.SalespersonID == nil || *o.SalespersonID != userID {
				continue
			}
			if o.CreatedAt.Before(since) {
				continue
			}
			p.Progress += o.Total
		}
	}

	p.Achieved = p.Progress >= rw.Target && rw.Target > 0
	return p, nil
}

// recordEarnedOnce writes the earned row unless one already exists. A failed
// write is logged; the overview still renders.
func (s *SalesService) recordEarnedOnce(ctx context.Context, rw *models.Reward, u *models.User) {
	already, err := s.RewardRepo.HasEarned(ctx, rw.ID, u.ID)
	if err != nil || already {
		return
	}
	e := &models.EarnedReward{
		RewardID:        rw.ID,
		RewardName:      rw.Name,
		SalespersonID:   u.ID,
		SalespersonName: u.Name,
		Amount:          rw.RewardAmount,
	}
	if err := s.RewardRepo.RecordEarned(ctx, e); err != nil {
		log.Printf("[Sales] record earned reward %d for user %d: %v", rw.ID, u.ID, err)
	}
}

// Reward CRUD passthroughs

func (s *SalesService) CreateReward(ctx context.Context, req *models.CreateRewardRequest) (*models.Reward, error) {
	if err := validateReward(req.Type, req.Target, req.TimeframeDays); err != nil {
		return nil, err
	}
	rw := &models.Reward{
		Name:          req.Name,
		Type:          req.Type,
		Target:        req.Target,
		RewardAmount:  req.RewardAmount,
		TimeframeDays: req.TimeframeDays,
		IsActive:      req.IsActive,
	}
	if err := s.RewardRepo.Create(ctx, rw); err != nil {
		return nil, err
	}
	return rw, nil
}

func (s *SalesService) UpdateReward(ctx context.Context, id int, req *models.UpdateRewardRequest) (*models.Reward, error) {
	rw, err := s.RewardRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateReward(req.Type, req.Target, req.TimeframeDays); err != nil {
		return nil, err
	}
	rw.Name = req.Name
	rw.Type = req.Type
	rw.Target = req.Target
	rw.RewardAmount = req.RewardAmount
	rw.TimeframeDays = req.TimeframeDays
	rw.IsActive = req.IsActive
	if err := s.RewardRepo.Update(ctx, rw); err != nil {
		return nil, err
	}
	return rw, nil
}

func validateReward(rewardType string, target float64, timeframeDays int) error {
	if rewardType != models.RewardTypeCustomerCount && rewardType != models.RewardTypeSalesVolume {
		return fmt.Errorf("reward type must be %q or %q", models.RewardTypeCustomerCount, models.RewardTypeSalesVolume)
	}
	if target <= 0 {
		return fmt.Errorf("target must be positive")
	}
	if timeframeDays <= 0 {
		return fmt.Errorf("timeframe must be at least one day")
	}
	return nil
}

func (s *SalesService) ListRewards(ctx context.Context) ([]*models.Reward, error) {
	return s.RewardRepo.List(ctx)
}

func (s *SalesService) DeleteReward(ctx context.Context, id int) error {
	return s.RewardRepo.Delete(ctx, id)
}

func (s *SalesService) ListEarnedRewards(ctx context.Context) ([]*models.EarnedReward, error) {
	return s.RewardRepo.ListEarned(ctx)
}
