package leave

import "errors"

var (
	// Validation failures detected before any mutation.
	ErrReasonRequired        = errors.New("leave reason is required")
	ErrInvalidDateRange      = errors.New("invalid leave date range")
	ErrZeroChargeableDays    = errors.New("date range contains no chargeable days")
	ErrPlanInactive          = errors.New("leave plan is inactive")
	ErrInvalidResumptionDate = errors.New("resumption date must be on or after the leave start date")

	// Transition and balance failures.
	ErrAlreadyProcessed    = errors.New("leave application already processed")
	ErrNotApproved         = errors.New("leave application is not approved")
	ErrPlanNotRecallable   = errors.New("leave plan does not allow recall")
	ErrInsufficientBalance = errors.New("insufficient leave balance")

	// Missing records.
	ErrApplicationNotFound = errors.New("leave application not found")
	ErrPlanNotFound        = errors.New("leave plan not found")
	ErrBalanceNotFound     = errors.New("leave balance not found")
	ErrBalanceExists       = errors.New("leave balance already assigned")
)
