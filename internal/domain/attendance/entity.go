package attendance

import "time"

// AttendanceLog is one shift-day record per employee. ClockOut stays nil
// until the employee clocks out; payroll counts distinct shift dates with a
// clock-in.
type AttendanceLog struct {
	ID         string
	EmployeeID string
	ShiftDate  time.Time
	ClockInAt  *time.Time
	ClockOutAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields for admin views.
	EmployeeName       *string
	EmployeeDepartment *string
}

// WorkedMinutes returns the clocked duration, or 0 while the shift is open.
func (l AttendanceLog) WorkedMinutes() int {
	if l.ClockInAt == nil || l.ClockOutAt == nil {
		return 0
	}
	return int(l.ClockOutAt.Sub(*l.ClockInAt).Minutes())
}
