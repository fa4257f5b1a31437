package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborhr/hr-backend-go/internal/domain/attendance"
	"github.com/harborhr/hr-backend-go/internal/repository/memory"
)

func TestClockInOncePerDay(t *testing.T) {
	svc := NewService(memory.NewAttendanceRepository())
	ctx := context.Background()

	log, err := svc.ClockIn(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", log.EmployeeID)
	require.NotNil(t, log.ClockInAt)
	assert.Nil(t, log.ClockOutAt)

	_, err = svc.ClockIn(ctx, "emp-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	// A different employee is unaffected.
	_, err = svc.ClockIn(ctx, "emp-2")
	assert.NoError(t, err)
}

func TestClockOutRequiresOpenShift(t *testing.T) {
	svc := NewService(memory.NewAttendanceRepository())
	ctx := context.Background()

	_, err := svc.ClockOut(ctx, "emp-1")
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	_, err = svc.ClockIn(ctx, "emp-1")
	require.NoError(t, err)

	log, err := svc.ClockOut(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, log.ClockOutAt)

	_, err = svc.ClockOut(ctx, "emp-1")
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestListMineReturnsOwnLogsOnly(t *testing.T) {
	svc := NewService(memory.NewAttendanceRepository())
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, "emp-1")
	require.NoError(t, err)
	_, err = svc.ClockIn(ctx, "emp-2")
	require.NoError(t, err)

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 0, 1)

	mine, err := svc.ListMine(ctx, "emp-1", from, to)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "emp-1", mine[0].EmployeeID)

	all, err := svc.ListRange(ctx, from, to)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
