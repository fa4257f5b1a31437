package response

import (
	"errors"
	"net/http"

	"github.com/harborhr/hr-backend-go/internal/domain/attendance"
	"github.com/harborhr/hr-backend-go/internal/domain/auth"
	"github.com/harborhr/hr-backend-go/internal/domain/employee"
	"github.com/harborhr/hr-backend-go/internal/domain/leave"
	"github.com/harborhr/hr-backend-go/internal/domain/payroll"
	"github.com/harborhr/hr-backend-go/internal/domain/user"
	"github.com/harborhr/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthExchangeFailed):
		Unauthorized(w, "Google sign-in failed")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeDisabled):
		Forbidden(w, "Employee is disabled")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "No open shift to clock out from")
	case errors.Is(err, attendance.ErrLogNotFound):
		NotFound(w, "Attendance log not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrApplicationNotFound):
		NotFound(w, "Leave application not found")
	case errors.Is(err, leave.ErrPlanNotFound):
		NotFound(w, "Leave plan not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrBalanceExists):
		Conflict(w, "Leave balance already assigned")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave application already processed")
	case errors.Is(err, leave.ErrNotApproved):
		Conflict(w, "Leave application is not approved")
	case errors.Is(err, leave.ErrPlanNotRecallable):
		Conflict(w, "Leave plan does not allow recall")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrReasonRequired):
		BadRequest(w, "A reason is required", nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date cannot be before start date", nil)
	case errors.Is(err, leave.ErrZeroChargeableDays):
		BadRequest(w, "Date range contains no chargeable days", nil)
	case errors.Is(err, leave.ErrInvalidResumptionDate):
		BadRequest(w, "Resumption date must fall within the leave range", nil)
	case errors.Is(err, leave.ErrPlanInactive):
		BadRequest(w, "Leave plan is inactive", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Period end cannot be before period start", nil)
	case errors.Is(err, payroll.ErrPayrollForbidden):
		Forbidden(w, "Payroll access not permitted")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
