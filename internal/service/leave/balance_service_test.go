package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborhr/hr-backend-go/internal/domain/leave"
	"github.com/harborhr/hr-backend-go/internal/repository/memory"
)

func TestAssignDefaultsToPlanAllotment(t *testing.T) {
	plans := memory.NewLeavePlanRepository()
	balances := memory.NewLeaveBalanceRepository()
	service := NewBalanceService(balances, plans)
	ctx := context.Background()

	plan, err := NewPlanService(plans).Create(ctx, leave.CreateLeavePlanRequest{
		Name:         "Sick Leave",
		AllottedDays: 12,
		IsPaid:       true,
	})
	require.NoError(t, err)

	balance, err := service.Assign(ctx, leave.AssignBalanceRequest{
		EmployeeID:  "emp-1",
		LeavePlanID: plan.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, balance.AllocatedDays)
	assert.Equal(t, 12, balance.RemainingDays)

	// Assigning the same plan twice is a conflict.
	_, err = service.Assign(ctx, leave.AssignBalanceRequest{
		EmployeeID:  "emp-1",
		LeavePlanID: plan.ID,
	})
	assert.ErrorIs(t, err, leave.ErrBalanceExists)
}

func TestAssignHonorsOverrideAndInactivePlan(t *testing.T) {
	plans := memory.NewLeavePlanRepository()
	balances := memory.NewLeaveBalanceRepository()
	planService := NewPlanService(plans)
	service := NewBalanceService(balances, plans)
	ctx := context.Background()

	plan, err := planService.Create(ctx, leave.CreateLeavePlanRequest{
		Name:         "Annual Leave",
		AllottedDays: 15,
		IsPaid:       true,
	})
	require.NoError(t, err)

	override := 5
	balance, err := service.Assign(ctx, leave.AssignBalanceRequest{
		EmployeeID:    "emp-1",
		LeavePlanID:   plan.ID,
		AllocatedDays: &override,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, balance.AllocatedDays)

	require.NoError(t, planService.Delete(ctx, plan.ID))
	_, err = service.Assign(ctx, leave.AssignBalanceRequest{
		EmployeeID:  "emp-2",
		LeavePlanID: plan.ID,
	})
	assert.ErrorIs(t, err, leave.ErrPlanInactive)
}

func TestListForCategoryHidesPaidPlansFromJobOrder(t *testing.T) {
	plans := memory.NewLeavePlanRepository()
	planService := NewPlanService(plans)
	ctx := context.Background()

	_, err := planService.Create(ctx, leave.CreateLeavePlanRequest{Name: "Annual Leave", AllottedDays: 15, IsPaid: true})
	require.NoError(t, err)
	_, err = planService.Create(ctx, leave.CreateLeavePlanRequest{Name: "Unpaid Leave", AllottedDays: 30, IsPaid: false})
	require.NoError(t, err)

	regular, err := planService.ListForCategory(ctx, "Regular")
	require.NoError(t, err)
	assert.Len(t, regular, 2)

	jobOrder, err := planService.ListForCategory(ctx, "Job Order")
	require.NoError(t, err)
	require.Len(t, jobOrder, 1)
	assert.Equal(t, "Unpaid Leave", jobOrder[0].Name)
}
