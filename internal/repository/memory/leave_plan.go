// Package memory provides in-memory repository implementations backed by
// maps and a mutex. They honor the same conditional-update semantics as the
// PostgreSQL implementations and back the service tests and local
// development without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/harborhr/hr-backend-go/internal/domain/leave"
)

type LeavePlanRepository struct {
	mu    sync.RWMutex
	plans map[string]leave.LeavePlan
}

func NewLeavePlanRepository() *LeavePlanRepository {
	return &LeavePlanRepository{plans: make(map[string]leave.LeavePlan)}
}

func (r *LeavePlanRepository) Create(_ context.Context, plan leave.LeavePlan) (leave.LeavePlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	r.plans[plan.ID] = plan
	return plan, nil
}

func (r *LeavePlanRepository) GetByID(_ context.Context, id string) (leave.LeavePlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, ok := r.plans[id]
	if !ok {
		return leave.LeavePlan{}, leave.ErrPlanNotFound
	}
	return plan, nil
}

func (r *LeavePlanRepository) List(_ context.Context, activeOnly bool) ([]leave.LeavePlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]leave.LeavePlan, 0, len(r.plans))
	for _, plan := range r.plans {
		if activeOnly && !plan.IsActive {
			continue
		}
		plans = append(plans, plan)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Name < plans[j].Name })
	return plans, nil
}

func (r *LeavePlanRepository) Update(_ context.Context, plan leave.LeavePlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.plans[plan.ID]
	if !ok {
		return leave.ErrPlanNotFound
	}
	plan.CreatedAt = existing.CreatedAt
	plan.UpdatedAt = time.Now()
	r.plans[plan.ID] = plan
	return nil
}

func (r *LeavePlanRepository) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, ok := r.plans[id]
	if !ok {
		return leave.ErrPlanNotFound
	}
	plan.IsActive = false
	plan.UpdatedAt = time.Now()
	r.plans[id] = plan
	return nil
}
