package payroll

import "context"

type Service interface {
	// ProcessRun computes and upserts a record for every payable employee in
	// the period: gross pay = daily rate x distinct days present.
	ProcessRun(ctx context.Context, req ProcessRunRequest) (RunResponse, error)
	ListRuns(ctx context.Context) ([]RunResponse, error)
	GetRun(ctx context.Context, runID string) (RunResponse, error)
	// History returns an employee's payslips, newest first.
	History(ctx context.Context, employeeID string, limit int) ([]RecordResponse, error)
}
