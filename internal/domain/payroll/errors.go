package payroll

import "errors"

var (
	ErrRunNotFound      = errors.New("payroll run not found")
	ErrInvalidPeriod    = errors.New("payroll period end before start")
	ErrPayrollForbidden = errors.New("payroll access not permitted")
)
