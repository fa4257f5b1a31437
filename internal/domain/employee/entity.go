package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

// Category distinguishes regular employees from job-order (casual) staff.
// Job Order employees are paid by the day and may only take unpaid leave.
type Category string

const (
	CategoryRegular  Category = "Regular"
	CategoryJobOrder Category = "Job Order"
)

// presenceWindow is how recently an employee must have sent a heartbeat to
// count as active.
const presenceWindow = 30 * time.Second

type Employee struct {
	ID              string
	FullName        string
	Email           string
	Department      string
	Position        string
	StartDate       *time.Time
	Category        Category
	Gender          Gender
	Contact         *string
	Address         *string
	ProfileImageURL *string
	DailyRate       decimal.Decimal
	CanViewPayroll  bool
	LastSeen        *time.Time
	// IsDisabled soft-deletes the employee; payroll history stays intact.
	IsDisabled bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ActiveAt reports whether the employee's last heartbeat falls within the
// presence window before now.
func (e Employee) ActiveAt(now time.Time) bool {
	return e.LastSeen != nil && now.Sub(*e.LastSeen) < presenceWindow
}
