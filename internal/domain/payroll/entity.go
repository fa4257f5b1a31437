package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRun groups the records generated for one pay period. Runs are
// keyed by (period_start, period_end) and reused when a period is
// reprocessed.
type PayrollRun struct {
	ID          string
	PeriodStart time.Time
	PeriodEnd   time.Time
	CreatedAt   time.Time
}

// PayrollRecord is one employee's pay for a period. Gross pay is the daily
// rate multiplied by distinct days present; records are upserted on
// (employee, period_start, period_end) so reprocessing a period overwrites
// rather than duplicates.
type PayrollRecord struct {
	ID          string
	RunID       string
	EmployeeID  string
	PeriodStart time.Time
	PeriodEnd   time.Time
	DaysPresent int
	// WorkableDays is the number of chargeable days in the period under the
	// same working-day policy the leave ledger uses.
	WorkableDays int
	DailyRate    decimal.Decimal
	GrossPay     decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields for admin views.
	EmployeeName       *string
	EmployeeDepartment *string
}
