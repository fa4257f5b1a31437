package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborhr/hr-backend-go/internal/domain/attendance"
	"github.com/harborhr/hr-backend-go/internal/domain/employee"
	"github.com/harborhr/hr-backend-go/internal/domain/notification"
	"github.com/harborhr/hr-backend-go/internal/domain/payroll"
	"github.com/harborhr/hr-backend-go/internal/pkg/database"
	"github.com/harborhr/hr-backend-go/internal/pkg/workdays"
)

type Service struct {
	payroll.Repository
	employees  employee.Repository
	attendance attendance.Repository

	tx        database.TxManager
	policy    workdays.Policy
	publisher notification.Publisher
}

func NewService(
	payrollRepository payroll.Repository,
	employeeRepository employee.Repository,
	attendanceRepository attendance.Repository,
	tx database.TxManager,
	policy workdays.Policy,
	publisher notification.Publisher,
) *Service {
	return &Service{
		Repository: payrollRepository,
		employees:  employeeRepository,
		attendance: attendanceRepository,
		tx:         tx,
		policy:     policy,
		publisher:  publisher,
	}
}

// ProcessRun computes gross pay for every active employee in the period:
// daily rate multiplied by distinct days present. Reprocessing the same
// period reuses the run and overwrites its records.
func (s *Service) ProcessRun(ctx context.Context, req payroll.ProcessRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)
	if periodEnd.Before(periodStart) {
		return payroll.RunResponse{}, payroll.ErrInvalidPeriod
	}

	employees, err := s.employees.List(ctx, employee.ListFilter{})
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	presentDays, err := s.attendance.CountPresentDays(ctx, periodStart, periodEnd)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to count present days: %w", err)
	}

	workableDays := s.policy.CountChargeable(periodStart, periodEnd)

	var run payroll.PayrollRun
	records := make([]payroll.PayrollRecord, 0, len(employees))

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		run, err = s.Repository.UpsertRun(ctx, periodStart, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to upsert payroll run: %w", err)
		}

		for _, e := range employees {
			days := presentDays[e.ID]
			records = append(records, payroll.PayrollRecord{
				ID:           uuid.New().String(),
				RunID:        run.ID,
				EmployeeID:   e.ID,
				PeriodStart:  periodStart,
				PeriodEnd:    periodEnd,
				DaysPresent:  days,
				WorkableDays: workableDays,
				DailyRate:    e.DailyRate,
				GrossPay:     e.DailyRate.Mul(decimal.NewFromInt(int64(days))),
			})
		}

		if err := s.Repository.UpsertRecords(ctx, records); err != nil {
			return fmt.Errorf("failed to upsert payroll records: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.RunResponse{}, err
	}

	for _, rec := range records {
		s.publisher.Publish(ctx, notification.Notification{
			RecipientID: rec.EmployeeID,
			Type:        notification.TypePayrollPosted,
			Title:       "Payslip available",
			Message:     fmt.Sprintf("Your payslip for %s to %s has been posted.", req.PeriodStart, req.PeriodEnd),
			Data:        map[string]interface{}{"run_id": run.ID},
		})
	}

	return toRunResponse(run, records), nil
}

func (s *Service) ListRuns(ctx context.Context) ([]payroll.RunResponse, error) {
	runs, err := s.Repository.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}

	responses := make([]payroll.RunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, toRunResponse(run, nil))
	}
	return responses, nil
}

func (s *Service) GetRun(ctx context.Context, runID string) (payroll.RunResponse, error) {
	run, err := s.Repository.GetRun(ctx, runID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	records, err := s.Repository.ListRecordsByRun(ctx, runID)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	return toRunResponse(run, records), nil
}

// History returns an employee's payslips, newest first. Access control
// (CanViewPayroll) is enforced at the handler layer.
func (s *Service) History(ctx context.Context, employeeID string, limit int) ([]payroll.RecordResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 24
	}
	records, err := s.Repository.ListRecordsByEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, payroll.ToRecordResponse(rec))
	}
	return responses, nil
}

func toRunResponse(run payroll.PayrollRun, records []payroll.PayrollRecord) payroll.RunResponse {
	resp := payroll.RunResponse{
		ID:          run.ID,
		PeriodStart: run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   run.PeriodEnd.Format("2006-01-02"),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, payroll.ToRecordResponse(rec))
	}
	return resp
}
