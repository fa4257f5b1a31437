package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/harborhr/hr-backend-go/internal/domain/leave"
)

type LeaveApplicationRepository struct {
	mu           sync.RWMutex
	applications map[string]leave.LeaveApplication

	// plans lets ListOngoingRecallable resolve the allow_recall flag the
	// same way the SQL join does.
	plans *LeavePlanRepository
}

func NewLeaveApplicationRepository(plans *LeavePlanRepository) *LeaveApplicationRepository {
	return &LeaveApplicationRepository{
		applications: make(map[string]leave.LeaveApplication),
		plans:        plans,
	}
}

func (r *LeaveApplicationRepository) Create(_ context.Context, app leave.LeaveApplication) (leave.LeaveApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	r.applications[app.ID] = app
	return app, nil
}

func (r *LeaveApplicationRepository) GetByID(_ context.Context, id string) (leave.LeaveApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.applications[id]
	if !ok {
		return leave.LeaveApplication{}, leave.ErrApplicationNotFound
	}
	return app, nil
}

func (r *LeaveApplicationRepository) GetByEmployee(_ context.Context, employeeID string) ([]leave.LeaveApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := make([]leave.LeaveApplication, 0)
	for _, app := range r.applications {
		if app.EmployeeID == employeeID {
			apps = append(apps, app)
		}
	}
	sortByAppliedAtDesc(apps)
	return apps, nil
}

func (r *LeaveApplicationRepository) ListAll(_ context.Context) ([]leave.LeaveApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := make([]leave.LeaveApplication, 0, len(r.applications))
	for _, app := range r.applications {
		apps = append(apps, app)
	}
	sortByAppliedAtDesc(apps)
	return apps, nil
}

func (r *LeaveApplicationRepository) ListOngoingRecallable(ctx context.Context, onDate time.Time) ([]leave.LeaveApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := time.Date(onDate.Year(), onDate.Month(), onDate.Day(), 0, 0, 0, 0, time.UTC)

	apps := make([]leave.LeaveApplication, 0)
	for _, app := range r.applications {
		if app.Status != leave.StatusApproved {
			continue
		}
		if day.Before(truncateDay(app.StartDate)) || day.After(truncateDay(app.EndDate)) {
			continue
		}
		if r.plans != nil {
			plan, err := r.plans.GetByID(ctx, app.LeavePlanID)
			if err != nil || !plan.AllowRecall {
				continue
			}
		}
		apps = append(apps, app)
	}
	sortByAppliedAtDesc(apps)
	return apps, nil
}

func (r *LeaveApplicationRepository) UpdateReview(_ context.Context, id string, from, to leave.ApplicationStatus, reviewedBy string, reviewedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.applications[id]
	if !ok {
		return leave.ErrApplicationNotFound
	}
	if app.Status != from {
		return leave.ErrAlreadyProcessed
	}
	app.Status = to
	app.ReviewedBy = &reviewedBy
	app.ReviewedAt = &reviewedAt
	app.UpdatedAt = time.Now()
	r.applications[id] = app
	return nil
}

func (r *LeaveApplicationRepository) UpdateRecall(_ context.Context, id string, rec leave.RecallUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.applications[id]
	if !ok {
		return leave.ErrApplicationNotFound
	}
	if app.Status != leave.StatusApproved {
		return leave.ErrNotApproved
	}
	app.Status = leave.StatusRecalled
	app.ReviewedBy = &rec.ReviewedBy
	app.ReviewedAt = &rec.ReviewedAt
	app.RecallDate = &rec.RecallDate
	app.RecallReason = &rec.RecallReason
	app.DaysUsed = &rec.DaysUsed
	app.DaysRefunded = &rec.DaysRefunded
	app.UpdatedAt = time.Now()
	r.applications[id] = app
	return nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sortByAppliedAtDesc(apps []leave.LeaveApplication) {
	sort.Slice(apps, func(i, j int) bool { return apps[i].AppliedAt.After(apps[j].AppliedAt) })
}
