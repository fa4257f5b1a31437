package notification

import "time"

type Type string

const (
	TypeLeaveApproved = Type("leave_approved")
	TypeLeaveRejected = Type("leave_rejected")
	TypeLeaveRecalled = Type("leave_recalled")
	TypePayrollPosted = Type("payroll_posted")
)

type Notification struct {
	ID          string
	RecipientID string
	Type        Type
	Title       string
	Message     string
	// Data carries type-specific references (application id, run id).
	Data      map[string]interface{}
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}
