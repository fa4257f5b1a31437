package leave

import (
	"mime/multipart"
	"time"

	"github.com/harborhr/hr-backend-go/internal/pkg/validator"
)

type CreateLeavePlanRequest struct {
	Name         string `json:"name"`
	AllottedDays int    `json:"allotted_days"`
	IsPaid       bool   `json:"is_paid"`
	AllowRecall  bool   `json:"allow_recall"`
}

func (r CreateLeavePlanRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name is required"})
	}
	if r.AllottedDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "allotted_days", Message: "Allotted days must be positive"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeavePlanRequest struct {
	ID           string  `json:"-"`
	Name         *string `json:"name"`
	AllottedDays *int    `json:"allotted_days"`
	IsPaid       *bool   `json:"is_paid"`
	AllowRecall  *bool   `json:"allow_recall"`
	IsActive     *bool   `json:"is_active"`
}

func (r UpdateLeavePlanRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "Plan ID is required"})
	}
	if r.AllottedDays != nil && *r.AllottedDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "allotted_days", Message: "Allotted days must be positive"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name cannot be empty"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignBalanceRequest struct {
	EmployeeID  string `json:"employee_id"`
	LeavePlanID string `json:"leave_plan_id"`
	// AllocatedDays overrides the plan allotment when set.
	AllocatedDays *int `json:"allocated_days"`
}

func (r AssignBalanceRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Employee ID is required"})
	}
	if validator.IsEmpty(r.LeavePlanID) {
		errs = append(errs, validator.ValidationError{Field: "leave_plan_id", Message: "Leave plan ID is required"})
	}
	if r.AllocatedDays != nil && *r.AllocatedDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "allocated_days", Message: "Allocated days cannot be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitApplicationRequest struct {
	EmployeeID  string `json:"-"`
	LeavePlanID string `json:"leave_plan_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r SubmitApplicationRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.LeavePlanID) {
		errs = append(errs, validator.ValidationError{Field: "leave_plan_id", Message: "Leave plan ID is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "Start date must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "End date must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "Reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewApplicationRequest struct {
	ApplicationID string `json:"-"`
	ReviewerID    string `json:"-"`
	// Reason is required for reject, ignored for approve.
	Reason string `json:"reason"`
}

type RecallApplicationRequest struct {
	ApplicationID  string `json:"-"`
	ReviewerID     string `json:"-"`
	ResumptionDate string `json:"resumption_date"`
	Reason         string `json:"reason"`
}

func (r RecallApplicationRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.ResumptionDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "resumption_date", Message: "Resumption date must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "Recall reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BalanceResponse struct {
	LeavePlanID   string `json:"leave_plan_id"`
	PlanName      string `json:"plan_name,omitempty"`
	AllocatedDays int    `json:"allocated_days"`
	RemainingDays int    `json:"remaining_days"`
}

type ApplicationResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	LeavePlanID   string  `json:"leave_plan_id"`
	PlanName      *string `json:"plan_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	DurationDays  int     `json:"duration_days"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	Status        string  `json:"status"`
	ReviewedBy    *string `json:"reviewed_by,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	RecallDate    *string `json:"recall_date,omitempty"`
	RecallReason  *string `json:"recall_reason,omitempty"`
	DaysUsed      *int    `json:"days_used,omitempty"`
	DaysRefunded  *int    `json:"days_refunded,omitempty"`
	AppliedAt     string  `json:"applied_at"`
}

func ToApplicationResponse(app LeaveApplication) ApplicationResponse {
	resp := ApplicationResponse{
		ID:            app.ID,
		EmployeeID:    app.EmployeeID,
		EmployeeName:  app.EmployeeName,
		LeavePlanID:   app.LeavePlanID,
		PlanName:      app.PlanName,
		StartDate:     app.StartDate.Format("2006-01-02"),
		EndDate:       app.EndDate.Format("2006-01-02"),
		DurationDays:  app.DurationDays,
		Reason:        app.Reason,
		AttachmentURL: app.AttachmentURL,
		Status:        string(app.Status),
		ReviewedBy:    app.ReviewedBy,
		RecallReason:  app.RecallReason,
		DaysUsed:      app.DaysUsed,
		DaysRefunded:  app.DaysRefunded,
		AppliedAt:     app.AppliedAt.Format(time.RFC3339),
	}
	if app.ReviewedAt != nil {
		s := app.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &s
	}
	if app.RecallDate != nil {
		s := app.RecallDate.Format("2006-01-02")
		resp.RecallDate = &s
	}
	return resp
}
