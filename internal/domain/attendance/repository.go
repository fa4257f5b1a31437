package attendance

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, log AttendanceLog) (AttendanceLog, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, shiftDate time.Time) (AttendanceLog, error)
	Update(ctx context.Context, log AttendanceLog) error
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]AttendanceLog, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]AttendanceLog, error)
	// CountPresentDays returns, per employee, the number of distinct shift
	// dates with a clock-in inside [from, to]. This feeds payroll.
	CountPresentDays(ctx context.Context, from, to time.Time) (map[string]int, error)
}
