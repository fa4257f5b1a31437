package leave

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/harborhr/hr-backend-go/internal/domain/leave"
)

type BalanceService struct {
	leave.LeaveBalanceRepository
	leave.LeavePlanRepository
}

func NewBalanceService(balanceRepository leave.LeaveBalanceRepository, planRepository leave.LeavePlanRepository) *BalanceService {
	return &BalanceService{
		LeaveBalanceRepository: balanceRepository,
		LeavePlanRepository:    planRepository,
	}
}

// Assign creates a balance row for (employee, plan). The allocation defaults
// to the plan allotment; remaining starts equal to allocated.
func (s *BalanceService) Assign(ctx context.Context, req leave.AssignBalanceRequest) (leave.LeaveBalance, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveBalance{}, err
	}

	plan, err := s.LeavePlanRepository.GetByID(ctx, req.LeavePlanID)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	if !plan.IsActive {
		return leave.LeaveBalance{}, leave.ErrPlanInactive
	}

	allocated := plan.AllottedDays
	if req.AllocatedDays != nil {
		allocated = *req.AllocatedDays
	}

	balance := leave.LeaveBalance{
		ID:            uuid.New().String(),
		EmployeeID:    req.EmployeeID,
		LeavePlanID:   req.LeavePlanID,
		AllocatedDays: allocated,
		RemainingDays: allocated,
	}

	created, err := s.LeaveBalanceRepository.Create(ctx, balance)
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return created, nil
}

func (s *BalanceService) GetRemaining(ctx context.Context, employeeID, planID string) (int, error) {
	balance, err := s.LeaveBalanceRepository.GetByEmployeeAndPlan(ctx, employeeID, planID)
	if err != nil {
		return 0, err
	}
	return balance.RemainingDays, nil
}

func (s *BalanceService) ListByEmployee(ctx context.Context, employeeID string) ([]leave.BalanceResponse, error) {
	balances, err := s.LeaveBalanceRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, balance := range balances {
		resp := leave.BalanceResponse{
			LeavePlanID:   balance.LeavePlanID,
			AllocatedDays: balance.AllocatedDays,
			RemainingDays: balance.RemainingDays,
		}
		if plan, err := s.LeavePlanRepository.GetByID(ctx, balance.LeavePlanID); err == nil {
			resp.PlanName = plan.Name
		}
		responses = append(responses, resp)
	}

	return responses, nil
}
