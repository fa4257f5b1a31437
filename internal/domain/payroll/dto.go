package payroll

import (
	"github.com/harborhr/hr-backend-go/internal/pkg/validator"
)

type ProcessRunRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r ProcessRunRequest) Validate() error {
	var errs validator.ValidationErrors
	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "Period start must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "Period end must be YYYY-MM-DD"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "Period end cannot be before period start"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	PeriodStart  string  `json:"period_start"`
	PeriodEnd    string  `json:"period_end"`
	DaysPresent  int     `json:"days_present"`
	WorkableDays int     `json:"workable_days"`
	DailyRate    string  `json:"daily_rate"`
	GrossPay     string  `json:"gross_pay"`
}

func ToRecordResponse(rec PayrollRecord) RecordResponse {
	return RecordResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		PeriodStart:  rec.PeriodStart.Format("2006-01-02"),
		PeriodEnd:    rec.PeriodEnd.Format("2006-01-02"),
		DaysPresent:  rec.DaysPresent,
		WorkableDays: rec.WorkableDays,
		DailyRate:    rec.DailyRate.String(),
		GrossPay:     rec.GrossPay.String(),
	}
}

type RunResponse struct {
	ID          string           `json:"id"`
	PeriodStart string           `json:"period_start"`
	PeriodEnd   string           `json:"period_end"`
	Records     []RecordResponse `json:"records,omitempty"`
}
