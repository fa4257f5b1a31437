package leave

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/harborhr/hr-backend-go/internal/domain/leave"
	"github.com/harborhr/hr-backend-go/internal/domain/notification"
	"github.com/harborhr/hr-backend-go/internal/pkg/workdays"
	"github.com/harborhr/hr-backend-go/internal/repository/memory"
)

type capturingPublisher struct {
	mu        sync.Mutex
	published []notification.Notification
}

func (p *capturingPublisher) Publish(_ context.Context, n notification.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, n)
}

func (p *capturingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

type leaveTestEnv struct {
	plans     *memory.LeavePlanRepository
	balances  *memory.LeaveBalanceRepository
	apps      *memory.LeaveApplicationRepository
	publisher *capturingPublisher
	service   *ApplicationService
}

func newLeaveTestEnv(t *testing.T) *leaveTestEnv {
	t.Helper()
	plans := memory.NewLeavePlanRepository()
	balances := memory.NewLeaveBalanceRepository()
	apps := memory.NewLeaveApplicationRepository(plans)
	publisher := &capturingPublisher{}
	service := NewApplicationService(
		apps, plans, balances,
		memory.NewTxManager(),
		workdays.ExcludeSundays(),
		publisher,
		nil,
	)
	return &leaveTestEnv{plans: plans, balances: balances, apps: apps, publisher: publisher, service: service}
}

func (e *leaveTestEnv) createPlan(t *testing.T, allowRecall bool) leave.LeavePlan {
	t.Helper()
	plan, err := e.plans.Create(context.Background(), leave.LeavePlan{
		ID:           uuid.New().String(),
		Name:         "Annual Leave",
		AllottedDays: 15,
		IsPaid:       true,
		AllowRecall:  allowRecall,
		IsActive:     true,
	})
	require.NoError(t, err)
	return plan
}

func (e *leaveTestEnv) assignBalance(t *testing.T, employeeID, planID string, allocated, remaining int) {
	t.Helper()
	_, err := e.balances.Create(context.Background(), leave.LeaveBalance{
		ID:            uuid.New().String(),
		EmployeeID:    employeeID,
		LeavePlanID:   planID,
		AllocatedDays: allocated,
		RemainingDays: remaining,
	})
	require.NoError(t, err)
}

func (e *leaveTestEnv) remaining(t *testing.T, employeeID, planID string) int {
	t.Helper()
	balance, err := e.balances.GetByEmployeeAndPlan(context.Background(), employeeID, planID)
	require.NoError(t, err)
	return balance.RemainingDays
}

func submitReq(employeeID, planID, start, end string) leave.SubmitApplicationRequest {
	return leave.SubmitApplicationRequest{
		EmployeeID:  employeeID,
		LeavePlanID: planID,
		StartDate:   start,
		EndDate:     end,
		Reason:      "family matters",
	}
}

func TestSubmitCountsChargeableDays(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 15, 15)

	// Mon 2025-01-06 .. Fri 2025-01-17 spans one Sunday (2025-01-12).
	resp, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-06", "2025-01-17"))
	require.NoError(t, err)
	assert.Equal(t, 11, resp.DurationDays)
	assert.Equal(t, string(leave.StatusPending), resp.Status)

	// Submission does not touch the balance.
	assert.Equal(t, 15, env.remaining(t, "emp-1", plan.ID))
}

func TestSubmitRejectsZeroChargeableDays(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 15, 15)

	// 2025-01-12 is a Sunday.
	_, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-12", "2025-01-12"))
	assert.ErrorIs(t, err, leave.ErrZeroChargeableDays)
}

func TestSubmitRejectsInvalidRangeAndInactivePlan(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 15, 15)

	_, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-10", "2025-01-06"))
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

	require.NoError(t, env.plans.SoftDelete(ctx, plan.ID))
	_, err = env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-06", "2025-01-10"))
	assert.ErrorIs(t, err, leave.ErrPlanInactive)
}

func TestSubmitRejectsInsufficientBalance(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 15, 2)

	_, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-06", "2025-01-10"))
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestApproveDebitsBalance(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 10, 10)

	// Mon..Fri, 5 chargeable days.
	resp, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-06", "2025-01-10"))
	require.NoError(t, err)

	approved, err := env.service.Approve(ctx, resp.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "admin-1", *approved.ReviewedBy)

	assert.Equal(t, 5, env.remaining(t, "emp-1", plan.ID))
	assert.Equal(t, 1, env.publisher.count())
}

func TestApproveIsTerminalOnce(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 10, 10)

	resp, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-06", "2025-01-10"))
	require.NoError(t, err)

	_, err = env.service.Approve(ctx, resp.ID, "admin-1")
	require.NoError(t, err)

	// Re-approving or rejecting a processed application changes nothing.
	_, err = env.service.Approve(ctx, resp.ID, "admin-2")
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
	_, err = env.service.Reject(ctx, leave.ReviewApplicationRequest{ApplicationID: resp.ID, ReviewerID: "admin-2", Reason: "no"})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)

	assert.Equal(t, 5, env.remaining(t, "emp-1", plan.ID))
}

func TestApproveFailsWhenBalanceDrained(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 10, 10)

	// Two 5-day requests both pass the submission check against remaining=10.
	first, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-06", "2025-01-10"))
	require.NoError(t, err)
	second, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-02-03", "2025-02-07"))
	require.NoError(t, err)

	_, err = env.service.Approve(ctx, first.ID, "admin-1")
	require.NoError(t, err)

	// Drain the rest of the balance behind the second application's back.
	require.NoError(t, env.balances.Debit(ctx, "emp-1", plan.ID, 3))

	_, err = env.service.Approve(ctx, second.ID, "admin-1")
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	// The failed approval left the application pending and the balance alone.
	app, err := env.apps.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, app.Status)
	assert.Equal(t, 2, env.remaining(t, "emp-1", plan.ID))
}

func TestConcurrentApprovalsNeverOverdraw(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 5, 5)

	// Two 3-day requests against remaining=5: only one can be approved.
	first, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-06", "2025-01-08"))
	require.NoError(t, err)
	second, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-02-03", "2025-02-05"))
	require.NoError(t, err)

	var g errgroup.Group
	errs := make([]error, 2)
	for i, id := range []string{first.ID, second.ID} {
		i, id := i, id
		g.Go(func() error {
			_, errs[i] = env.service.Approve(ctx, id, "admin-1")
			return nil
		})
	}
	require.NoError(t, g.Wait())

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 2, env.remaining(t, "emp-1", plan.ID))
}

func TestRejectRequiresReason(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 10, 10)

	resp, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-06", "2025-01-10"))
	require.NoError(t, err)

	_, err = env.service.Reject(ctx, leave.ReviewApplicationRequest{ApplicationID: resp.ID, ReviewerID: "admin-1"})
	assert.ErrorIs(t, err, leave.ErrReasonRequired)

	rejected, err := env.service.Reject(ctx, leave.ReviewApplicationRequest{ApplicationID: resp.ID, ReviewerID: "admin-1", Reason: "understaffed"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusRejected), rejected.Status)

	// Rejection never touches the balance.
	assert.Equal(t, 10, env.remaining(t, "emp-1", plan.ID))
}

func TestRecallSplitsUsedAndRefunded(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 15, 15)

	// Mon 2025-01-06 .. Fri 2025-01-17: 11 chargeable days (Sunday 01-12
	// excluded).
	resp, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-06", "2025-01-17"))
	require.NoError(t, err)
	_, err = env.service.Approve(ctx, resp.ID, "admin-1")
	require.NoError(t, err)
	require.Equal(t, 4, env.remaining(t, "emp-1", plan.ID))

	// Resume Mon 2025-01-13: on leave 01-06..01-12 (6 chargeable days),
	// refunded 01-13..01-17 (5 chargeable days).
	recalled, err := env.service.Recall(ctx, leave.RecallApplicationRequest{
		ApplicationID:  resp.ID,
		ReviewerID:     "admin-1",
		ResumptionDate: "2025-01-13",
		Reason:         "project emergency",
	})
	require.NoError(t, err)

	assert.Equal(t, string(leave.StatusRecalled), recalled.Status)
	require.NotNil(t, recalled.DaysUsed)
	require.NotNil(t, recalled.DaysRefunded)
	assert.Equal(t, 6, *recalled.DaysUsed)
	assert.Equal(t, 5, *recalled.DaysRefunded)
	assert.Equal(t, resp.DurationDays, *recalled.DaysUsed+*recalled.DaysRefunded)
	require.NotNil(t, recalled.RecallDate)
	assert.Equal(t, "2025-01-13", *recalled.RecallDate)

	assert.Equal(t, 9, env.remaining(t, "emp-1", plan.ID))
}

func TestRecallValidations(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 15, 15)

	resp, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-06", "2025-01-10"))
	require.NoError(t, err)

	// Pending applications cannot be recalled.
	_, err = env.service.Recall(ctx, leave.RecallApplicationRequest{
		ApplicationID: resp.ID, ReviewerID: "admin-1", ResumptionDate: "2025-01-08", Reason: "emergency",
	})
	assert.ErrorIs(t, err, leave.ErrNotApproved)

	_, err = env.service.Approve(ctx, resp.ID, "admin-1")
	require.NoError(t, err)

	// Resumption before the leave even starts.
	_, err = env.service.Recall(ctx, leave.RecallApplicationRequest{
		ApplicationID: resp.ID, ReviewerID: "admin-1", ResumptionDate: "2025-01-03", Reason: "emergency",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidResumptionDate)

	// Recall reason is mandatory.
	_, err = env.service.Recall(ctx, leave.RecallApplicationRequest{
		ApplicationID: resp.ID, ReviewerID: "admin-1", ResumptionDate: "2025-01-08",
	})
	assert.Error(t, err)
}

func TestRecallAfterEndRecordsZeroRefund(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 15, 15)

	// Mon 2025-01-06 through Fri 2025-01-10: 5 chargeable days.
	resp, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-06", "2025-01-10"))
	require.NoError(t, err)
	_, err = env.service.Approve(ctx, resp.ID, "admin-1")
	require.NoError(t, err)
	require.Equal(t, 10, env.remaining(t, "emp-1", plan.ID))

	// Recalling with a resumption date past the original end is legal: the
	// whole range stays charged and the recall is still recorded.
	recalled, err := env.service.Recall(ctx, leave.RecallApplicationRequest{
		ApplicationID: resp.ID, ReviewerID: "admin-1", ResumptionDate: "2025-01-20", Reason: "coverage gap",
	})
	require.NoError(t, err)

	assert.Equal(t, string(leave.StatusRecalled), recalled.Status)
	require.NotNil(t, recalled.DaysUsed)
	require.NotNil(t, recalled.DaysRefunded)
	assert.Equal(t, 5, *recalled.DaysUsed)
	assert.Equal(t, 0, *recalled.DaysRefunded)
	assert.Equal(t, 10, env.remaining(t, "emp-1", plan.ID))
}

func TestConcurrentReviewsOfSameApplicationDebitOnce(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 15, 15)

	// Ample balance: only the status guard can reject the loser.
	resp, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-06", "2025-01-10"))
	require.NoError(t, err)

	var g errgroup.Group
	errs := make([]error, 2)
	for i, admin := range []string{"admin-1", "admin-2"} {
		i, admin := i, admin
		g.Go(func() error {
			_, errs[i] = env.service.Approve(ctx, resp.ID, admin)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
		}
	}
	assert.Equal(t, 1, succeeded)

	// One 5-day application charged exactly once.
	assert.Equal(t, 10, env.remaining(t, "emp-1", plan.ID))

	got, err := env.service.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), got.Status)
}

func TestRecallBlockedWhenPlanForbidsIt(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, false)
	env.assignBalance(t, "emp-1", plan.ID, 15, 15)

	resp, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-06", "2025-01-10"))
	require.NoError(t, err)
	_, err = env.service.Approve(ctx, resp.ID, "admin-1")
	require.NoError(t, err)

	_, err = env.service.Recall(ctx, leave.RecallApplicationRequest{
		ApplicationID: resp.ID, ReviewerID: "admin-1", ResumptionDate: "2025-01-08", Reason: "emergency",
	})
	assert.ErrorIs(t, err, leave.ErrPlanNotRecallable)
}

func TestRecallRefundNeverExceedsAllocated(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)

	// Remaining starts above what the debit leaves room to refund: after
	// approving 5 days from remaining=5 and a manual credit, the refund
	// clamps at allocated.
	env.assignBalance(t, "emp-1", plan.ID, 5, 5)

	resp, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-01-06", "2025-01-10"))
	require.NoError(t, err)
	_, err = env.service.Approve(ctx, resp.ID, "admin-1")
	require.NoError(t, err)
	require.Equal(t, 0, env.remaining(t, "emp-1", plan.ID))

	require.NoError(t, env.balances.Credit(ctx, "emp-1", plan.ID, 3))

	_, err = env.service.Recall(ctx, leave.RecallApplicationRequest{
		ApplicationID: resp.ID, ReviewerID: "admin-1", ResumptionDate: "2025-01-06", Reason: "cancel everything",
	})
	require.NoError(t, err)

	// 3 + 5 would exceed allocated=5; the credit clamps.
	assert.Equal(t, 5, env.remaining(t, "emp-1", plan.ID))
}

func TestFullLifecycleBalanceTrail(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 10, 10)

	resp, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, "2025-03-03", "2025-03-07"))
	require.NoError(t, err)
	require.Equal(t, 5, resp.DurationDays)
	assert.Equal(t, 10, env.remaining(t, "emp-1", plan.ID))

	_, err = env.service.Approve(ctx, resp.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 5, env.remaining(t, "emp-1", plan.ID))

	// Resume Wed 2025-03-05: used Mon-Tue (2), refunded Wed-Fri (3).
	recalled, err := env.service.Recall(ctx, leave.RecallApplicationRequest{
		ApplicationID:  resp.ID,
		ReviewerID:     "admin-1",
		ResumptionDate: "2025-03-05",
		Reason:         "client escalation",
	})
	require.NoError(t, err)
	require.NotNil(t, recalled.DaysUsed)
	require.NotNil(t, recalled.DaysRefunded)
	assert.Equal(t, 2, *recalled.DaysUsed)
	assert.Equal(t, 3, *recalled.DaysRefunded)
	assert.Equal(t, 8, env.remaining(t, "emp-1", plan.ID))

	// One notification per transition that notifies: approve and recall.
	assert.Equal(t, 2, env.publisher.count())
}

func TestListOngoingRecallable(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t, true)
	env.assignBalance(t, "emp-1", plan.ID, 30, 30)
	env.assignBalance(t, "emp-2", plan.ID, 30, 30)

	today := time.Now()
	start := today.AddDate(0, 0, -2).Format("2006-01-02")
	end := today.AddDate(0, 0, 2).Format("2006-01-02")

	ongoing, err := env.service.Submit(ctx, submitReq("emp-1", plan.ID, start, end))
	require.NoError(t, err)
	_, err = env.service.Approve(ctx, ongoing.ID, "admin-1")
	require.NoError(t, err)

	// Still pending, so not recallable.
	_, err = env.service.Submit(ctx, submitReq("emp-2", plan.ID, start, end))
	require.NoError(t, err)

	recallable, err := env.service.ListOngoingRecallable(ctx)
	require.NoError(t, err)
	require.Len(t, recallable, 1)
	assert.Equal(t, ongoing.ID, recallable[0].ID)
}
