package employee

import (
	"context"
	"time"
)

// ListFilter mirrors the directory screen: search matches name, department
// and position; sorting is by a whitelisted column.
type ListFilter struct {
	Search          string
	SortField       string
	SortAscending   bool
	IncludeDisabled bool
}

type Repository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, error)
	Update(ctx context.Context, e Employee) error
	// Disable soft-deletes the employee.
	Disable(ctx context.Context, id string) error
	// Heartbeat stamps last_seen; presence is derived from it.
	Heartbeat(ctx context.Context, id string, at time.Time) error
}
