package leave

import (
	"context"
	"time"
)

// LeavePlanRepository - interface for leave_plans table
type LeavePlanRepository interface {
	Create(ctx context.Context, plan LeavePlan) (LeavePlan, error)
	GetByID(ctx context.Context, id string) (LeavePlan, error)
	List(ctx context.Context, activeOnly bool) ([]LeavePlan, error)
	Update(ctx context.Context, plan LeavePlan) error
	// SoftDelete marks the plan inactive; the row is kept for history.
	SoftDelete(ctx context.Context, id string) error
}

// LeaveBalanceRepository - interface for leave_balances table.
//
// Debit and Credit are single conditional updates: concurrent mutations on
// the same (employee, plan) key must never lose an update, and a debit must
// fail atomically when it would push remaining below zero.
type LeaveBalanceRepository interface {
	Create(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetByEmployeeAndPlan(ctx context.Context, employeeID, planID string) (LeaveBalance, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error)
	// Debit decrements remaining by days. Returns ErrInsufficientBalance when
	// days exceed remaining, ErrBalanceNotFound when no row exists.
	Debit(ctx context.Context, employeeID, planID string, days int) error
	// Credit increments remaining by days, clamped so remaining never exceeds
	// allocated. Returns ErrBalanceNotFound when no row exists.
	Credit(ctx context.Context, employeeID, planID string, days int) error
}

// LeaveApplicationRepository - interface for leave_applications table
type LeaveApplicationRepository interface {
	Create(ctx context.Context, app LeaveApplication) (LeaveApplication, error)
	GetByID(ctx context.Context, id string) (LeaveApplication, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveApplication, error)
	ListAll(ctx context.Context) ([]LeaveApplication, error)
	// ListOngoingRecallable returns approved applications whose range covers
	// onDate and whose plan allows recall.
	ListOngoingRecallable(ctx context.Context, onDate time.Time) ([]LeaveApplication, error)
	// UpdateReview records an approve/reject transition. The write carries the
	// expected current status: when the row has since moved to another state
	// it is left untouched and ErrAlreadyProcessed is returned, so two racing
	// reviews cannot both take effect.
	UpdateReview(ctx context.Context, id string, from, to ApplicationStatus, reviewedBy string, reviewedAt time.Time) error
	// UpdateRecall records a recall transition with its split of used and
	// refunded days. Guarded the same way: the row must still be approved,
	// otherwise ErrNotApproved is returned and nothing is written.
	UpdateRecall(ctx context.Context, id string, rec RecallUpdate) error
}

// RecallUpdate carries the fields written by a recall transition.
type RecallUpdate struct {
	ReviewedBy   string
	ReviewedAt   time.Time
	RecallDate   time.Time
	RecallReason string
	DaysUsed     int
	DaysRefunded int
}
