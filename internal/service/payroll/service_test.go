package payroll

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborhr/hr-backend-go/internal/domain/attendance"
	"github.com/harborhr/hr-backend-go/internal/domain/employee"
	"github.com/harborhr/hr-backend-go/internal/domain/notification"
	"github.com/harborhr/hr-backend-go/internal/domain/payroll"
	"github.com/harborhr/hr-backend-go/internal/pkg/workdays"
	"github.com/harborhr/hr-backend-go/internal/repository/memory"
)

type noopPublisher struct {
	mu    sync.Mutex
	count int
}

func (p *noopPublisher) Publish(_ context.Context, _ notification.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.count++
}

type payrollTestEnv struct {
	payroll    *memory.PayrollRepository
	employees  *memory.EmployeeRepository
	attendance *memory.AttendanceRepository
	publisher  *noopPublisher
	service    *Service
}

func newPayrollTestEnv(t *testing.T) *payrollTestEnv {
	t.Helper()
	payrollRepo := memory.NewPayrollRepository()
	employeeRepo := memory.NewEmployeeRepository()
	attendanceRepo := memory.NewAttendanceRepository()
	publisher := &noopPublisher{}
	service := NewService(
		payrollRepo, employeeRepo, attendanceRepo,
		memory.NewTxManager(),
		workdays.ExcludeSundays(),
		publisher,
	)
	return &payrollTestEnv{
		payroll:    payrollRepo,
		employees:  employeeRepo,
		attendance: attendanceRepo,
		publisher:  publisher,
		service:    service,
	}
}

func (e *payrollTestEnv) createEmployee(t *testing.T, name, rate string) employee.Employee {
	t.Helper()
	dailyRate, err := decimal.NewFromString(rate)
	require.NoError(t, err)
	emp, err := e.employees.Create(context.Background(), employee.Employee{
		ID:        uuid.New().String(),
		FullName:  name,
		Email:     name + "@example.com",
		Category:  employee.CategoryJobOrder,
		DailyRate: dailyRate,
	})
	require.NoError(t, err)
	return emp
}

func (e *payrollTestEnv) clockIn(t *testing.T, employeeID string, dates ...string) {
	t.Helper()
	for _, d := range dates {
		day, err := time.Parse("2006-01-02", d)
		require.NoError(t, err)
		in := day.Add(9 * time.Hour)
		_, err = e.attendance.Create(context.Background(), attendance.AttendanceLog{
			ID:         uuid.New().String(),
			EmployeeID: employeeID,
			ShiftDate:  day,
			ClockInAt:  &in,
		})
		require.NoError(t, err)
	}
}

func TestProcessRunComputesGrossPay(t *testing.T) {
	env := newPayrollTestEnv(t)
	ctx := context.Background()

	alice := env.createEmployee(t, "alice", "500")
	bob := env.createEmployee(t, "bob", "750.50")

	// Mon-Fri week; alice works 5 days, bob 3.
	env.clockIn(t, alice.ID, "2025-02-03", "2025-02-04", "2025-02-05", "2025-02-06", "2025-02-07")
	env.clockIn(t, bob.ID, "2025-02-03", "2025-02-05", "2025-02-07")

	run, err := env.service.ProcessRun(ctx, payroll.ProcessRunRequest{
		PeriodStart: "2025-02-01",
		PeriodEnd:   "2025-02-15",
	})
	require.NoError(t, err)
	require.Len(t, run.Records, 2)

	byEmployee := map[string]payroll.RecordResponse{}
	for _, rec := range run.Records {
		byEmployee[rec.EmployeeID] = rec
	}

	assert.Equal(t, 5, byEmployee[alice.ID].DaysPresent)
	assert.Equal(t, "2500", byEmployee[alice.ID].GrossPay)
	assert.Equal(t, 3, byEmployee[bob.ID].DaysPresent)
	assert.Equal(t, "2251.5", byEmployee[bob.ID].GrossPay)

	// 2025-02-01..2025-02-15 holds 13 non-Sunday days.
	assert.Equal(t, 13, byEmployee[alice.ID].WorkableDays)

	// One payslip notification per employee.
	assert.Equal(t, 2, env.publisher.count)
}

func TestProcessRunIsIdempotentPerPeriod(t *testing.T) {
	env := newPayrollTestEnv(t)
	ctx := context.Background()

	emp := env.createEmployee(t, "carol", "400")
	env.clockIn(t, emp.ID, "2025-02-03", "2025-02-04")

	first, err := env.service.ProcessRun(ctx, payroll.ProcessRunRequest{
		PeriodStart: "2025-02-01", PeriodEnd: "2025-02-15",
	})
	require.NoError(t, err)

	// More attendance lands, the period is reprocessed.
	env.clockIn(t, emp.ID, "2025-02-05")

	second, err := env.service.ProcessRun(ctx, payroll.ProcessRunRequest{
		PeriodStart: "2025-02-01", PeriodEnd: "2025-02-15",
	})
	require.NoError(t, err)

	// Same run, updated record, no duplicates.
	assert.Equal(t, first.ID, second.ID)
	records, err := env.payroll.ListRecordsByRun(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].DaysPresent)
	assert.Equal(t, "1200", records[0].GrossPay.String())
}

func TestProcessRunRejectsInvalidPeriod(t *testing.T) {
	env := newPayrollTestEnv(t)

	_, err := env.service.ProcessRun(context.Background(), payroll.ProcessRunRequest{
		PeriodStart: "2025-02-15", PeriodEnd: "2025-02-01",
	})
	assert.Error(t, err)
}

func TestHistoryNewestFirst(t *testing.T) {
	env := newPayrollTestEnv(t)
	ctx := context.Background()

	emp := env.createEmployee(t, "dave", "300")
	env.clockIn(t, emp.ID, "2025-01-06", "2025-02-03")

	_, err := env.service.ProcessRun(ctx, payroll.ProcessRunRequest{PeriodStart: "2025-01-01", PeriodEnd: "2025-01-31"})
	require.NoError(t, err)
	_, err = env.service.ProcessRun(ctx, payroll.ProcessRunRequest{PeriodStart: "2025-02-01", PeriodEnd: "2025-02-28"})
	require.NoError(t, err)

	history, err := env.service.History(ctx, emp.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2025-02-28", history[0].PeriodEnd)
	assert.Equal(t, "2025-01-31", history[1].PeriodEnd)
}
