package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/harborhr/hr-backend-go/internal/domain/leave"
)

// DefaultLeavePlans returns the standard leave plans seeded into a fresh
// deployment. Allotments follow common Philippine public-sector practice.
func DefaultLeavePlans() []leave.LeavePlan {
	return []leave.LeavePlan{
		{
			ID:           uuid.New().String(),
			Name:         "Vacation Leave",
			AllottedDays: 15,
			IsPaid:       true,
			AllowRecall:  true,
			IsActive:     true,
		},
		{
			ID:           uuid.New().String(),
			Name:         "Sick Leave",
			AllottedDays: 15,
			IsPaid:       true,
			AllowRecall:  false,
			IsActive:     true,
		},
		{
			ID:           uuid.New().String(),
			Name:         "Leave Without Pay",
			AllottedDays: 30,
			IsPaid:       false,
			AllowRecall:  false,
			IsActive:     true,
		},
	}
}

// SeedLeavePlans creates the default leave plans when none exist yet. It is
// a no-op on a database that already has plans, active or not.
func SeedLeavePlans(ctx context.Context, repo leave.LeavePlanRepository, logger *slog.Logger) error {
	existing, err := repo.List(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to list leave plans: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, plan := range DefaultLeavePlans() {
		if _, err := repo.Create(ctx, plan); err != nil {
			return fmt.Errorf("failed to seed leave plan %q: %w", plan.Name, err)
		}
	}
	logger.Info("seeded default leave plans", "count", len(DefaultLeavePlans()))
	return nil
}
