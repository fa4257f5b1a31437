package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harborhr/hr-backend-go/internal/domain/payroll"
)

type periodKey struct {
	start string
	end   string
}

type recordKey struct {
	employeeID string
	start      string
	end        string
}

type PayrollRepository struct {
	mu      sync.RWMutex
	runs    map[string]payroll.PayrollRun
	byKey   map[periodKey]string
	records map[recordKey]payroll.PayrollRecord
}

func NewPayrollRepository() *PayrollRepository {
	return &PayrollRepository{
		runs:    make(map[string]payroll.PayrollRun),
		byKey:   make(map[periodKey]string),
		records: make(map[recordKey]payroll.PayrollRecord),
	}
}

func (r *PayrollRepository) UpsertRun(_ context.Context, periodStart, periodEnd time.Time) (payroll.PayrollRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := periodKey{periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02")}
	if id, ok := r.byKey[key]; ok {
		return r.runs[id], nil
	}

	run := payroll.PayrollRun{
		ID:          uuid.New().String(),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		CreatedAt:   time.Now(),
	}
	r.runs[run.ID] = run
	r.byKey[key] = run.ID
	return run, nil
}

func (r *PayrollRepository) GetRun(_ context.Context, id string) (payroll.PayrollRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return payroll.PayrollRun{}, payroll.ErrRunNotFound
	}
	return run, nil
}

func (r *PayrollRepository) ListRuns(_ context.Context) ([]payroll.PayrollRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]payroll.PayrollRun, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].PeriodEnd.After(runs[j].PeriodEnd) })
	return runs, nil
}

func (r *PayrollRepository) UpsertRecords(_ context.Context, records []payroll.PayrollRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		key := recordKey{rec.EmployeeID, rec.PeriodStart.Format("2006-01-02"), rec.PeriodEnd.Format("2006-01-02")}
		if existing, ok := r.records[key]; ok {
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
		} else {
			rec.CreatedAt = time.Now()
		}
		rec.UpdatedAt = time.Now()
		r.records[key] = rec
	}
	return nil
}

func (r *PayrollRepository) ListRecordsByRun(_ context.Context, runID string) ([]payroll.PayrollRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]payroll.PayrollRecord, 0)
	for _, rec := range r.records {
		if rec.RunID == runID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].EmployeeID < records[j].EmployeeID })
	return records, nil
}

func (r *PayrollRepository) ListRecordsByEmployee(_ context.Context, employeeID string, limit int) ([]payroll.PayrollRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]payroll.PayrollRecord, 0)
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].PeriodEnd.After(records[j].PeriodEnd) })
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
