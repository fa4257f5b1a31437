package attendance

import (
	"time"
)

type LogResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	ShiftDate     string  `json:"shift_date"`
	ClockInAt     *string `json:"clock_in_at,omitempty"`
	ClockOutAt    *string `json:"clock_out_at,omitempty"`
	WorkedMinutes int     `json:"worked_minutes"`
}

func ToLogResponse(l AttendanceLog) LogResponse {
	resp := LogResponse{
		ID:            l.ID,
		EmployeeID:    l.EmployeeID,
		EmployeeName:  l.EmployeeName,
		ShiftDate:     l.ShiftDate.Format("2006-01-02"),
		WorkedMinutes: l.WorkedMinutes(),
	}
	if l.ClockInAt != nil {
		s := l.ClockInAt.Format(time.RFC3339)
		resp.ClockInAt = &s
	}
	if l.ClockOutAt != nil {
		s := l.ClockOutAt.Format(time.RFC3339)
		resp.ClockOutAt = &s
	}
	return resp
}
