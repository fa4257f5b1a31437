package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/harborhr/hr-backend-go/internal/domain/payroll"
	"github.com/harborhr/hr-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepositoryImpl{db: db}
}

func (r *payrollRepositoryImpl) UpsertRun(ctx context.Context, periodStart, periodEnd time.Time) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	// The unique index on (period_start, period_end) makes reprocessing a
	// period reuse its run.
	query := `
		INSERT INTO payroll_runs (id, period_start, period_end, created_at)
		VALUES (gen_random_uuid(), $1, $2, NOW())
		ON CONFLICT (period_start, period_end) DO UPDATE SET period_start = EXCLUDED.period_start
		RETURNING id, period_start, period_end, created_at
	`
	var run payroll.PayrollRun
	err := q.QueryRow(ctx, query, periodStart, periodEnd).Scan(
		&run.ID, &run.PeriodStart, &run.PeriodEnd, &run.CreatedAt,
	)
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	return run, nil
}

func (r *payrollRepositoryImpl) GetRun(ctx context.Context, id string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, period_start, period_end, created_at FROM payroll_runs WHERE id = $1`

	var run payroll.PayrollRun
	err := q.QueryRow(ctx, query, id).Scan(&run.ID, &run.PeriodStart, &run.PeriodEnd, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.PayrollRun{}, payroll.ErrRunNotFound
	}
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	return run, nil
}

func (r *payrollRepositoryImpl) ListRuns(ctx context.Context) ([]payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, period_start, period_end, created_at FROM payroll_runs ORDER BY period_end DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]payroll.PayrollRun, 0)
	for rows.Next() {
		var run payroll.PayrollRun
		if err := rows.Scan(&run.ID, &run.PeriodStart, &run.PeriodEnd, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *payrollRepositoryImpl) UpsertRecords(ctx context.Context, records []payroll.PayrollRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, run_id, employee_id, period_start, period_end,
			days_present, workable_days, daily_rate, gross_pay, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (employee_id, period_start, period_end) DO UPDATE
		SET run_id = EXCLUDED.run_id,
		    days_present = EXCLUDED.days_present,
		    workable_days = EXCLUDED.workable_days,
		    daily_rate = EXCLUDED.daily_rate,
		    gross_pay = EXCLUDED.gross_pay,
		    updated_at = NOW()
	`
	for _, rec := range records {
		if _, err := q.Exec(ctx, query,
			rec.ID, rec.RunID, rec.EmployeeID, rec.PeriodStart, rec.PeriodEnd,
			rec.DaysPresent, rec.WorkableDays, rec.DailyRate, rec.GrossPay,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *payrollRepositoryImpl) ListRecordsByRun(ctx context.Context, runID string) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pr.id, pr.run_id, pr.employee_id, pr.period_start, pr.period_end,
		       pr.days_present, pr.workable_days, pr.daily_rate, pr.gross_pay,
		       pr.created_at, pr.updated_at, e.full_name, e.department
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.run_id = $1
		ORDER BY e.full_name
	`
	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]payroll.PayrollRecord, 0)
	for rows.Next() {
		var rec payroll.PayrollRecord
		if err := rows.Scan(
			&rec.ID, &rec.RunID, &rec.EmployeeID, &rec.PeriodStart, &rec.PeriodEnd,
			&rec.DaysPresent, &rec.WorkableDays, &rec.DailyRate, &rec.GrossPay,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName, &rec.EmployeeDepartment,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *payrollRepositoryImpl) ListRecordsByEmployee(ctx context.Context, employeeID string, limit int) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, run_id, employee_id, period_start, period_end,
		       days_present, workable_days, daily_rate, gross_pay, created_at, updated_at
		FROM payroll_records
		WHERE employee_id = $1
		ORDER BY period_end DESC
		LIMIT $2
	`
	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]payroll.PayrollRecord, 0)
	for rows.Next() {
		var rec payroll.PayrollRecord
		if err := rows.Scan(
			&rec.ID, &rec.RunID, &rec.EmployeeID, &rec.PeriodStart, &rec.PeriodEnd,
			&rec.DaysPresent, &rec.WorkableDays, &rec.DailyRate, &rec.GrossPay,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
