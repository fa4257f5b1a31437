package leave

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/harborhr/hr-backend-go/internal/domain/employee"
	"github.com/harborhr/hr-backend-go/internal/domain/leave"
)

type PlanService struct {
	leave.LeavePlanRepository
}

func NewPlanService(planRepository leave.LeavePlanRepository) *PlanService {
	return &PlanService{LeavePlanRepository: planRepository}
}

func (s *PlanService) Create(ctx context.Context, req leave.CreateLeavePlanRequest) (leave.LeavePlan, error) {
	if err := req.Validate(); err != nil {
		return leave.LeavePlan{}, err
	}

	plan := leave.LeavePlan{
		ID:           uuid.New().String(),
		Name:         req.Name,
		AllottedDays: req.AllottedDays,
		IsPaid:       req.IsPaid,
		AllowRecall:  req.AllowRecall,
		IsActive:     true,
	}

	created, err := s.LeavePlanRepository.Create(ctx, plan)
	if err != nil {
		return leave.LeavePlan{}, fmt.Errorf("failed to create leave plan: %w", err)
	}

	return created, nil
}

func (s *PlanService) Update(ctx context.Context, req leave.UpdateLeavePlanRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	plan, err := s.LeavePlanRepository.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.AllottedDays != nil {
		plan.AllottedDays = *req.AllottedDays
	}
	if req.IsPaid != nil {
		plan.IsPaid = *req.IsPaid
	}
	if req.AllowRecall != nil {
		plan.AllowRecall = *req.AllowRecall
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.LeavePlanRepository.Update(ctx, plan); err != nil {
		return fmt.Errorf("failed to update leave plan: %w", err)
	}

	return nil
}

func (s *PlanService) Get(ctx context.Context, id string) (leave.LeavePlan, error) {
	return s.LeavePlanRepository.GetByID(ctx, id)
}

// ListForCategory returns the active plans an employee in the given category
// may apply for. Job Order employees are paid by the day, so paid leave
// plans are hidden from them.
func (s *PlanService) ListForCategory(ctx context.Context, category string) ([]leave.LeavePlan, error) {
	plans, err := s.LeavePlanRepository.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave plans: %w", err)
	}

	if employee.Category(category) != employee.CategoryJobOrder {
		return plans, nil
	}

	unpaid := make([]leave.LeavePlan, 0, len(plans))
	for _, plan := range plans {
		if !plan.IsPaid {
			unpaid = append(unpaid, plan)
		}
	}
	return unpaid, nil
}

func (s *PlanService) ListAll(ctx context.Context) ([]leave.LeavePlan, error) {
	return s.LeavePlanRepository.List(ctx, false)
}

func (s *PlanService) Delete(ctx context.Context, id string) error {
	if err := s.LeavePlanRepository.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete leave plan: %w", err)
	}
	return nil
}
