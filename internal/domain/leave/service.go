package leave

import (
	"context"
)

// PlanService - admin management of leave plans.
type PlanService interface {
	Create(ctx context.Context, req CreateLeavePlanRequest) (LeavePlan, error)
	Update(ctx context.Context, req UpdateLeavePlanRequest) error
	Get(ctx context.Context, id string) (LeavePlan, error)
	// List returns active plans; for employees in the given category, unpaid
	// plans only (Job Order employees cannot take paid leave).
	ListForCategory(ctx context.Context, category string) ([]LeavePlan, error)
	ListAll(ctx context.Context) ([]LeavePlan, error)
	Delete(ctx context.Context, id string) error
}

// BalanceService - the leave balance ledger.
type BalanceService interface {
	Assign(ctx context.Context, req AssignBalanceRequest) (LeaveBalance, error)
	GetRemaining(ctx context.Context, employeeID, planID string) (int, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]BalanceResponse, error)
}

// ApplicationService - the leave application state machine.
//
// States: pending -> approved | rejected; approved -> recalled.
// Rejected and recalled are terminal.
type ApplicationService interface {
	Submit(ctx context.Context, req SubmitApplicationRequest) (ApplicationResponse, error)
	Approve(ctx context.Context, applicationID, reviewerID string) (ApplicationResponse, error)
	Reject(ctx context.Context, req ReviewApplicationRequest) (ApplicationResponse, error)
	Recall(ctx context.Context, req RecallApplicationRequest) (ApplicationResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]ApplicationResponse, error)
	ListAll(ctx context.Context) ([]ApplicationResponse, error)
	ListOngoingRecallable(ctx context.Context) ([]ApplicationResponse, error)
	Get(ctx context.Context, id string) (ApplicationResponse, error)
}
