package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/harborhr/hr-backend-go/internal/domain/attendance"
)

type attendanceKey struct {
	employeeID string
	shiftDate  string
}

type AttendanceRepository struct {
	mu   sync.RWMutex
	logs map[attendanceKey]attendance.AttendanceLog
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{logs: make(map[attendanceKey]attendance.AttendanceLog)}
}

func logKey(employeeID string, shiftDate time.Time) attendanceKey {
	return attendanceKey{employeeID, shiftDate.Format("2006-01-02")}
}

func (r *AttendanceRepository) Create(_ context.Context, log attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := logKey(log.EmployeeID, log.ShiftDate)
	if _, ok := r.logs[key]; ok {
		return attendance.AttendanceLog{}, attendance.ErrAlreadyClockedIn
	}
	now := time.Now()
	log.CreatedAt = now
	log.UpdatedAt = now
	r.logs[key] = log
	return log, nil
}

func (r *AttendanceRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, shiftDate time.Time) (attendance.AttendanceLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log, ok := r.logs[logKey(employeeID, shiftDate)]
	if !ok {
		return attendance.AttendanceLog{}, attendance.ErrLogNotFound
	}
	return log, nil
}

func (r *AttendanceRepository) Update(_ context.Context, log attendance.AttendanceLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := logKey(log.EmployeeID, log.ShiftDate)
	if _, ok := r.logs[key]; !ok {
		return attendance.ErrLogNotFound
	}
	log.UpdatedAt = time.Now()
	r.logs[key] = log
	return nil
}

func (r *AttendanceRepository) ListByEmployee(_ context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := make([]attendance.AttendanceLog, 0)
	for key, log := range r.logs {
		if key.employeeID != employeeID {
			continue
		}
		if inRange(log.ShiftDate, from, to) {
			logs = append(logs, log)
		}
	}
	sortByShiftDate(logs)
	return logs, nil
}

func (r *AttendanceRepository) ListByRange(_ context.Context, from, to time.Time) ([]attendance.AttendanceLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := make([]attendance.AttendanceLog, 0)
	for _, log := range r.logs {
		if inRange(log.ShiftDate, from, to) {
			logs = append(logs, log)
		}
	}
	sortByShiftDate(logs)
	return logs, nil
}

func (r *AttendanceRepository) CountPresentDays(_ context.Context, from, to time.Time) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, log := range r.logs {
		if log.ClockInAt == nil {
			continue
		}
		if inRange(log.ShiftDate, from, to) {
			counts[log.EmployeeID]++
		}
	}
	return counts, nil
}

func inRange(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

func sortByShiftDate(logs []attendance.AttendanceLog) {
	sort.Slice(logs, func(i, j int) bool { return logs[i].ShiftDate.Before(logs[j].ShiftDate) })
}
