package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/harborhr/hr-backend-go/internal/domain/leave"
	"github.com/harborhr/hr-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (id, employee_id, leave_plan_id, allocated_days, remaining_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (employee_id, leave_plan_id) DO NOTHING
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		balance.ID, balance.EmployeeID, balance.LeavePlanID, balance.AllocatedDays, balance.RemainingDays,
	).Scan(&balance.CreatedAt, &balance.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveBalance{}, leave.ErrBalanceExists
	}
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return balance, nil
}

func (r *leaveBalanceRepositoryImpl) GetByEmployeeAndPlan(ctx context.Context, employeeID, planID string) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_plan_id, allocated_days, remaining_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_plan_id = $2
	`
	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, planID).Scan(
		&b.ID, &b.EmployeeID, &b.LeavePlanID, &b.AllocatedDays, &b.RemainingDays, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return b, nil
}

func (r *leaveBalanceRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_plan_id, allocated_days, remaining_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1
		ORDER BY leave_plan_id
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		var b leave.LeaveBalance
		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeavePlanID, &b.AllocatedDays, &b.RemainingDays, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

// Debit is a single conditional update: the remaining_days >= days guard
// makes the balance check and the decrement one atomic operation, so two
// racing approvals can never both succeed against the same days.
func (r *leaveBalanceRepositoryImpl) Debit(ctx context.Context, employeeID, planID string, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET remaining_days = remaining_days - $3, updated_at = NOW()
		WHERE employee_id = $1 AND leave_plan_id = $2 AND remaining_days >= $3
	`
	tag, err := q.Exec(ctx, query, employeeID, planID, days)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from a failed guard.
		var exists bool
		err := q.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM leave_balances WHERE employee_id = $1 AND leave_plan_id = $2)`,
			employeeID, planID,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return leave.ErrBalanceNotFound
		}
		return leave.ErrInsufficientBalance
	}
	return nil
}

// Credit clamps at allocated_days so a refund can never push remaining past
// the allocation.
func (r *leaveBalanceRepositoryImpl) Credit(ctx context.Context, employeeID, planID string, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET remaining_days = LEAST(allocated_days, remaining_days + $3), updated_at = NOW()
		WHERE employee_id = $1 AND leave_plan_id = $2
	`
	tag, err := q.Exec(ctx, query, employeeID, planID, days)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}
