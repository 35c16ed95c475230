package services

import (
	"testing"

	"yoyo-backend/internal/models"
)

func TestValidateReward(t *testing.T) {
	cases := []struct {
		name       string
		rewardType string
		target     float64
		days       int
		wantErr    bool
	}{
		{"customer count", models.RewardTypeCustomerCount, 10, 30, false},
		{"sales volume", models.RewardTypeSalesVolume, 5000, 90, false},
		{"unknown type", "ordersShipped", 10, 30, true},
		{"zero target", models.RewardTypeCustomerCount, 0, 30, true},
		{"negative target", models.RewardTypeSalesVolume, -100, 30, true},
		{"zero timeframe", models.RewardTypeCustomerCount, 10, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateReward(tc.rewardType, tc.target, tc.days)
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
