package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/harborhr/hr-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	StartDate  string  `json:"start_date"`
	Category   string  `json:"category"`
	Gender     string  `json:"gender"`
	Contact    *string `json:"contact"`
	Address    *string `json:"address"`
	DailyRate  string  `json:"daily_rate"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "Full name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "A valid email is required"})
	}
	if r.StartDate != "" {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "Start date must be YYYY-MM-DD"})
		}
	}
	if r.Category != "" && !validator.IsInSlice(r.Category, []string{string(CategoryRegular), string(CategoryJobOrder)}) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "Category must be Regular or Job Order"})
	}
	if r.DailyRate != "" {
		if _, err := decimal.NewFromString(r.DailyRate); err != nil {
			errs = append(errs, validator.ValidationError{Field: "daily_rate", Message: "Daily rate must be a number"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID             string  `json:"-"`
	FullName       *string `json:"full_name"`
	Department     *string `json:"department"`
	Position       *string `json:"position"`
	Category       *string `json:"category"`
	Contact        *string `json:"contact"`
	Address        *string `json:"address"`
	DailyRate      *string `json:"daily_rate"`
	CanViewPayroll *bool   `json:"can_view_payroll"`
}

type EmployeeResponse struct {
	ID              string  `json:"id"`
	FullName        string  `json:"full_name"`
	Email           string  `json:"email"`
	Department      string  `json:"department"`
	Position        string  `json:"position"`
	StartDate       *string `json:"start_date,omitempty"`
	Category        string  `json:"category"`
	Gender          string  `json:"gender"`
	Contact         *string `json:"contact,omitempty"`
	Address         *string `json:"address,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
	DailyRate       string  `json:"daily_rate"`
	CanViewPayroll  bool    `json:"can_view_payroll"`
	// Status is derived from the presence heartbeat: Active when last seen
	// within the presence window.
	Status string `json:"status"`
}

func ToResponse(e Employee, now time.Time) EmployeeResponse {
	resp := EmployeeResponse{
		ID:              e.ID,
		FullName:        e.FullName,
		Email:           e.Email,
		Department:      e.Department,
		Position:        e.Position,
		Category:        string(e.Category),
		Gender:          string(e.Gender),
		Contact:         e.Contact,
		Address:         e.Address,
		ProfileImageURL: e.ProfileImageURL,
		DailyRate:       e.DailyRate.String(),
		CanViewPayroll:  e.CanViewPayroll,
		Status:          "Inactive",
	}
	if e.StartDate != nil {
		s := e.StartDate.Format("2006-01-02")
		resp.StartDate = &s
	}
	if e.ActiveAt(now) {
		resp.Status = "Active"
	}
	return resp
}
