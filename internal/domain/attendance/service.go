package attendance

import (
	"context"
	"time"
)

type Service interface {
	ClockIn(ctx context.Context, employeeID string) (LogResponse, error)
	ClockOut(ctx context.Context, employeeID string) (LogResponse, error)
	ListMine(ctx context.Context, employeeID string, from, to time.Time) ([]LogResponse, error)
	ListRange(ctx context.Context, from, to time.Time) ([]LogResponse, error)
}
