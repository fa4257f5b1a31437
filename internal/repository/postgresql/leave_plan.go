package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/harborhr/hr-backend-go/internal/domain/leave"
	"github.com/harborhr/hr-backend-go/internal/pkg/database"
)

type leavePlanRepositoryImpl struct {
	db *database.DB
}

func NewLeavePlanRepository(db *database.DB) leave.LeavePlanRepository {
	return &leavePlanRepositoryImpl{db: db}
}

func (r *leavePlanRepositoryImpl) Create(ctx context.Context, plan leave.LeavePlan) (leave.LeavePlan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_plans (id, name, allotted_days, is_paid, allow_recall, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		plan.ID, plan.Name, plan.AllottedDays, plan.IsPaid, plan.AllowRecall, plan.IsActive,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return leave.LeavePlan{}, err
	}

	return plan, nil
}

func (r *leavePlanRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeavePlan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, allotted_days, is_paid, allow_recall, is_active, created_at, updated_at
		FROM leave_plans
		WHERE id = $1
	`
	var plan leave.LeavePlan
	err := q.QueryRow(ctx, query, id).Scan(
		&plan.ID, &plan.Name, &plan.AllottedDays, &plan.IsPaid, &plan.AllowRecall, &plan.IsActive,
		&plan.CreatedAt, &plan.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeavePlan{}, leave.ErrPlanNotFound
	}
	if err != nil {
		return leave.LeavePlan{}, err
	}

	return plan, nil
}

func (r *leavePlanRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]leave.LeavePlan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, allotted_days, is_paid, allow_recall, is_active, created_at, updated_at
		FROM leave_plans
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]leave.LeavePlan, 0)
	for rows.Next() {
		var plan leave.LeavePlan
		if err := rows.Scan(
			&plan.ID, &plan.Name, &plan.AllottedDays, &plan.IsPaid, &plan.AllowRecall, &plan.IsActive,
			&plan.CreatedAt, &plan.UpdatedAt,
		); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

func (r *leavePlanRepositoryImpl) Update(ctx context.Context, plan leave.LeavePlan) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_plans
		SET name = $2, allotted_days = $3, is_paid = $4, allow_recall = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		plan.ID, plan.Name, plan.AllottedDays, plan.IsPaid, plan.AllowRecall, plan.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrPlanNotFound
	}
	return nil
}

func (r *leavePlanRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE leave_plans SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrPlanNotFound
	}
	return nil
}
