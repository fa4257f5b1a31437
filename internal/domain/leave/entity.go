package leave

import (
	"time"
)

// LeavePlan is a named leave category (e.g. annual, sick) with its own
// allotment and recall policy. Plans are soft-deleted: inactive plans are
// excluded from new applications, but historical applications keep their
// reference.
type LeavePlan struct {
	ID           string
	Name         string
	AllottedDays int
	IsPaid       bool
	AllowRecall  bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LeaveBalance is one row per (employee, plan). RemainingDays is debited on
// approval and credited on recall refund. 0 <= remaining <= allocated holds
// at rest.
type LeaveBalance struct {
	ID            string
	EmployeeID    string
	LeavePlanID   string
	AllocatedDays int
	RemainingDays int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
	StatusRecalled ApplicationStatus = "recalled"
)

// LeaveApplication is one leave request. Applications are never deleted;
// admin actions set reviewer and timestamp fields, and a recall additionally
// records how the original range was split into used and refunded days.
type LeaveApplication struct {
	ID            string
	EmployeeID    string
	LeavePlanID   string
	StartDate     time.Time
	EndDate       time.Time
	DurationDays  int
	Reason        string
	AttachmentURL *string

	Status     ApplicationStatus
	ReviewedBy *string
	ReviewedAt *time.Time

	// Set only when Status is recalled.
	RecallDate   *time.Time
	RecallReason *string
	DaysUsed     *int
	DaysRefunded *int

	AppliedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields for admin views.
	EmployeeName       *string
	EmployeeDepartment *string
	PlanName           *string
}
