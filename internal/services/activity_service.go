package services

import (
	"context"
	"log"
	"time"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/repositories"
)

// ActivityService writes the audit trail. Record is fire-and-forget: audit
// failures are logged and never surface to the caller.
type ActivityService struct {
	Repo *repositories.ActivityLogRepository
}

func NewActivityService(repo *repositories.ActivityLogRepository) *ActivityService {
	return &ActivityService{Repo: repo}
}

func (s *ActivityService) Record(userID *int, userName, action, details string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		entry := &models.ActivityLogEntry{
			UserID:   userID,
			UserName: userName,
			Action:   action,
			Details:  details,
		}
		if err := s.Repo.Insert(ctx, entry); err != nil {
			log.Printf("[Activity] failed to record %q: %v", action, err)
		}
	}()
}

func (s *ActivityService) List(ctx context.Context, limit int) ([]*models.ActivityLogEntry, error) {
	return s.Repo.List(ctx, limit)
}
