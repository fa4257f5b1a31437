package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harborhr/hr-backend-go/internal/domain/attendance"
)

type Service struct {
	attendance.Repository
}

func NewService(attendanceRepository attendance.Repository) *Service {
	return &Service{Repository: attendanceRepository}
}

// ClockIn opens today's shift. One log per (employee, shift date); clocking
// in twice on the same date is rejected.
func (s *Service) ClockIn(ctx context.Context, employeeID string) (attendance.LogResponse, error) {
	now := time.Now()
	shiftDate := truncateToDay(now)

	existing, err := s.Repository.GetByEmployeeAndDate(ctx, employeeID, shiftDate)
	if err == nil && existing.ClockInAt != nil {
		return attendance.LogResponse{}, attendance.ErrAlreadyClockedIn
	}
	if err != nil && !errors.Is(err, attendance.ErrLogNotFound) {
		return attendance.LogResponse{}, fmt.Errorf("failed to get attendance log: %w", err)
	}

	log := attendance.AttendanceLog{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		ShiftDate:  shiftDate,
		ClockInAt:  &now,
	}
	created, err := s.Repository.Create(ctx, log)
	if err != nil {
		return attendance.LogResponse{}, fmt.Errorf("failed to create attendance log: %w", err)
	}

	return attendance.ToLogResponse(created), nil
}

func (s *Service) ClockOut(ctx context.Context, employeeID string) (attendance.LogResponse, error) {
	now := time.Now()
	shiftDate := truncateToDay(now)

	log, err := s.Repository.GetByEmployeeAndDate(ctx, employeeID, shiftDate)
	if errors.Is(err, attendance.ErrLogNotFound) {
		return attendance.LogResponse{}, attendance.ErrNotClockedIn
	}
	if err != nil {
		return attendance.LogResponse{}, fmt.Errorf("failed to get attendance log: %w", err)
	}
	if log.ClockInAt == nil || log.ClockOutAt != nil {
		return attendance.LogResponse{}, attendance.ErrNotClockedIn
	}

	log.ClockOutAt = &now
	if err := s.Repository.Update(ctx, log); err != nil {
		return attendance.LogResponse{}, fmt.Errorf("failed to update attendance log: %w", err)
	}

	return attendance.ToLogResponse(log), nil
}

func (s *Service) ListMine(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.LogResponse, error) {
	logs, err := s.Repository.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs: %w", err)
	}
	return toResponses(logs), nil
}

func (s *Service) ListRange(ctx context.Context, from, to time.Time) ([]attendance.LogResponse, error) {
	logs, err := s.Repository.ListByRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs: %w", err)
	}
	return toResponses(logs), nil
}

func toResponses(logs []attendance.AttendanceLog) []attendance.LogResponse {
	responses := make([]attendance.LogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, attendance.ToLogResponse(log))
	}
	return responses
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
