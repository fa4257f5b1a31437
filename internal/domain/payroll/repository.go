package payroll

import (
	"context"
	"time"
)

type Repository interface {
	// UpsertRun creates a run for the period or returns the existing one.
	UpsertRun(ctx context.Context, periodStart, periodEnd time.Time) (PayrollRun, error)
	GetRun(ctx context.Context, id string) (PayrollRun, error)
	ListRuns(ctx context.Context) ([]PayrollRun, error)
	// UpsertRecords writes records, replacing any existing row for the same
	// (employee, period_start, period_end).
	UpsertRecords(ctx context.Context, records []PayrollRecord) error
	ListRecordsByRun(ctx context.Context, runID string) ([]PayrollRecord, error)
	ListRecordsByEmployee(ctx context.Context, employeeID string, limit int) ([]PayrollRecord, error)
}
