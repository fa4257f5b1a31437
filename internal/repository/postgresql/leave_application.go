package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/harborhr/hr-backend-go/internal/domain/leave"
	"github.com/harborhr/hr-backend-go/internal/pkg/database"
)

type leaveApplicationRepositoryImpl struct {
	db *database.DB
}

func NewLeaveApplicationRepository(db *database.DB) leave.LeaveApplicationRepository {
	return &leaveApplicationRepositoryImpl{db: db}
}

const applicationColumns = `
	la.id, la.employee_id, la.leave_plan_id, la.start_date, la.end_date, la.duration_days,
	la.reason, la.attachment_url, la.status, la.reviewed_by, la.reviewed_at,
	la.recall_date, la.recall_reason, la.days_used, la.days_refunded,
	la.applied_at, la.created_at, la.updated_at
`

func scanApplication(row pgx.Row, app *leave.LeaveApplication) error {
	return row.Scan(
		&app.ID, &app.EmployeeID, &app.LeavePlanID, &app.StartDate, &app.EndDate, &app.DurationDays,
		&app.Reason, &app.AttachmentURL, &app.Status, &app.ReviewedBy, &app.ReviewedAt,
		&app.RecallDate, &app.RecallReason, &app.DaysUsed, &app.DaysRefunded,
		&app.AppliedAt, &app.CreatedAt, &app.UpdatedAt,
	)
}

func (r *leaveApplicationRepositoryImpl) Create(ctx context.Context, app leave.LeaveApplication) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_applications (
			id, employee_id, leave_plan_id, start_date, end_date, duration_days,
			reason, attachment_url, status, applied_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		app.ID, app.EmployeeID, app.LeavePlanID, app.StartDate, app.EndDate, app.DurationDays,
		app.Reason, app.AttachmentURL, app.Status, app.AppliedAt,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return leave.LeaveApplication{}, err
	}

	return app, nil
}

func (r *leaveApplicationRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + applicationColumns + ` FROM leave_applications la WHERE la.id = $1`

	var app leave.LeaveApplication
	err := scanApplication(q.QueryRow(ctx, query, id), &app)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveApplication{}, leave.ErrApplicationNotFound
	}
	if err != nil {
		return leave.LeaveApplication{}, err
	}

	return app, nil
}

func (r *leaveApplicationRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + applicationColumns + `, lp.name
		FROM leave_applications la
		JOIN leave_plans lp ON la.leave_plan_id = lp.id
		WHERE la.employee_id = $1
		ORDER BY la.applied_at DESC
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]leave.LeaveApplication, 0)
	for rows.Next() {
		var app leave.LeaveApplication
		if err := rows.Scan(
			&app.ID, &app.EmployeeID, &app.LeavePlanID, &app.StartDate, &app.EndDate, &app.DurationDays,
			&app.Reason, &app.AttachmentURL, &app.Status, &app.ReviewedBy, &app.ReviewedAt,
			&app.RecallDate, &app.RecallReason, &app.DaysUsed, &app.DaysRefunded,
			&app.AppliedAt, &app.CreatedAt, &app.UpdatedAt,
			&app.PlanName,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

func (r *leaveApplicationRepositoryImpl) ListAll(ctx context.Context) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + applicationColumns + `, e.full_name, e.department, lp.name
		FROM leave_applications la
		JOIN employees e ON la.employee_id = e.id
		JOIN leave_plans lp ON la.leave_plan_id = lp.id
		ORDER BY la.created_at DESC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectJoined(rows)
}

// ListOngoingRecallable feeds the admin recall screen: approved applications
// whose range covers onDate and whose plan allows recall.
func (r *leaveApplicationRepositoryImpl) ListOngoingRecallable(ctx context.Context, onDate time.Time) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + applicationColumns + `, e.full_name, e.department, lp.name
		FROM leave_applications la
		JOIN employees e ON la.employee_id = e.id
		JOIN leave_plans lp ON la.leave_plan_id = lp.id
		WHERE la.status = $1
		  AND la.start_date <= $2
		  AND la.end_date >= $2
		  AND lp.allow_recall = TRUE
		ORDER BY la.start_date DESC
	`
	rows, err := q.Query(ctx, query, leave.StatusApproved, onDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectJoined(rows)
}

func (r *leaveApplicationRepositoryImpl) collectJoined(rows pgx.Rows) ([]leave.LeaveApplication, error) {
	apps := make([]leave.LeaveApplication, 0)
	for rows.Next() {
		var app leave.LeaveApplication
		if err := rows.Scan(
			&app.ID, &app.EmployeeID, &app.LeavePlanID, &app.StartDate, &app.EndDate, &app.DurationDays,
			&app.Reason, &app.AttachmentURL, &app.Status, &app.ReviewedBy, &app.ReviewedAt,
			&app.RecallDate, &app.RecallReason, &app.DaysUsed, &app.DaysRefunded,
			&app.AppliedAt, &app.CreatedAt, &app.UpdatedAt,
			&app.EmployeeName, &app.EmployeeDepartment, &app.PlanName,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *leaveApplicationRepositoryImpl) UpdateReview(ctx context.Context, id string, from, to leave.ApplicationStatus, reviewedBy string, reviewedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	// The status guard makes the transition conditional: a row another
	// reviewer already moved on is left untouched.
	query := `
		UPDATE leave_applications
		SET status = $3, reviewed_by = $4, reviewed_at = $5, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`
	tag, err := q.Exec(ctx, query, id, from, to, reviewedBy, reviewedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return statusConflict(ctx, q, id, leave.ErrAlreadyProcessed)
	}
	return nil
}

func (r *leaveApplicationRepositoryImpl) UpdateRecall(ctx context.Context, id string, rec leave.RecallUpdate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications
		SET status = $2, reviewed_by = $3, reviewed_at = $4,
		    recall_date = $5, recall_reason = $6, days_used = $7, days_refunded = $8,
		    updated_at = NOW()
		WHERE id = $1 AND status = $9
	`
	tag, err := q.Exec(ctx, query, id, leave.StatusRecalled,
		rec.ReviewedBy, rec.ReviewedAt, rec.RecallDate, rec.RecallReason, rec.DaysUsed, rec.DaysRefunded,
		leave.StatusApproved,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return statusConflict(ctx, q, id, leave.ErrNotApproved)
	}
	return nil
}

// statusConflict distinguishes a missing row from one whose status guard
// failed, returning conflict for the latter.
func statusConflict(ctx context.Context, q database.Querier, id string, conflict error) error {
	var status string
	err := q.QueryRow(ctx, `SELECT status FROM leave_applications WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.ErrApplicationNotFound
	}
	if err != nil {
		return err
	}
	return conflict
}
