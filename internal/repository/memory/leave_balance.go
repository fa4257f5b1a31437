package memory

import (
	"context"
	"sync"
	"time"

	"github.com/harborhr/hr-backend-go/internal/domain/leave"
)

type balanceKey struct {
	employeeID string
	planID     string
}

// LeaveBalanceRepository performs Debit and Credit under a single mutex, so
// concurrent callers observe the same all-or-nothing behavior as the SQL
// conditional updates.
type LeaveBalanceRepository struct {
	mu       sync.Mutex
	balances map[balanceKey]leave.LeaveBalance
}

func NewLeaveBalanceRepository() *LeaveBalanceRepository {
	return &LeaveBalanceRepository{balances: make(map[balanceKey]leave.LeaveBalance)}
}

func (r *LeaveBalanceRepository) Create(_ context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := balanceKey{balance.EmployeeID, balance.LeavePlanID}
	if _, ok := r.balances[key]; ok {
		return leave.LeaveBalance{}, leave.ErrBalanceExists
	}
	now := time.Now()
	balance.CreatedAt = now
	balance.UpdatedAt = now
	r.balances[key] = balance
	return balance, nil
}

func (r *LeaveBalanceRepository) GetByEmployeeAndPlan(_ context.Context, employeeID, planID string) (leave.LeaveBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	balance, ok := r.balances[balanceKey{employeeID, planID}]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	return balance, nil
}

func (r *LeaveBalanceRepository) GetByEmployee(_ context.Context, employeeID string) ([]leave.LeaveBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	balances := make([]leave.LeaveBalance, 0)
	for key, balance := range r.balances {
		if key.employeeID == employeeID {
			balances = append(balances, balance)
		}
	}
	return balances, nil
}

func (r *LeaveBalanceRepository) Debit(_ context.Context, employeeID, planID string, days int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := balanceKey{employeeID, planID}
	balance, ok := r.balances[key]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	if balance.RemainingDays < days {
		return leave.ErrInsufficientBalance
	}
	balance.RemainingDays -= days
	balance.UpdatedAt = time.Now()
	r.balances[key] = balance
	return nil
}

func (r *LeaveBalanceRepository) Credit(_ context.Context, employeeID, planID string, days int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := balanceKey{employeeID, planID}
	balance, ok := r.balances[key]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	balance.RemainingDays += days
	if balance.RemainingDays > balance.AllocatedDays {
		balance.RemainingDays = balance.AllocatedDays
	}
	balance.UpdatedAt = time.Now()
	r.balances[key] = balance
	return nil
}
