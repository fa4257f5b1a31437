package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/harborhr/hr-backend-go/internal/domain/employee"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{employees: make(map[string]employee.Employee)}
}

func (r *EmployeeRepository) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.employees {
		if strings.EqualFold(existing.Email, e.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	r.employees[e.ID] = e
	return e, nil
}

func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepository) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.employees {
		if strings.EqualFold(e.Email, email) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *EmployeeRepository) List(_ context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	employees := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		if e.IsDisabled && !filter.IncludeDisabled {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.FullName), search) &&
			!strings.Contains(strings.ToLower(e.Department), search) &&
			!strings.Contains(strings.ToLower(e.Position), search) {
			continue
		}
		employees = append(employees, e)
	}
	sort.Slice(employees, func(i, j int) bool {
		if filter.SortAscending {
			return employees[i].FullName < employees[j].FullName
		}
		return employees[i].FullName > employees[j].FullName
	})
	return employees, nil
}

func (r *EmployeeRepository) Update(_ context.Context, e employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.employees[e.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = time.Now()
	r.employees[e.ID] = e
	return nil
}

func (r *EmployeeRepository) Disable(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.IsDisabled = true
	e.UpdatedAt = time.Now()
	r.employees[id] = e
	return nil
}

func (r *EmployeeRepository) Heartbeat(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.LastSeen = &at
	r.employees[id] = e
	return nil
}
