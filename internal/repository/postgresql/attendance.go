package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/harborhr/hr-backend-go/internal/domain/attendance"
	"github.com/harborhr/hr-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, log attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_logs (id, employee_id, shift_date, clock_in_at, clock_out_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		log.ID, log.EmployeeID, log.ShiftDate, log.ClockInAt, log.ClockOutAt,
	).Scan(&log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		return attendance.AttendanceLog{}, err
	}

	return log, nil
}

func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, shiftDate time.Time) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, shift_date, clock_in_at, clock_out_at, created_at, updated_at
		FROM attendance_logs
		WHERE employee_id = $1 AND shift_date = $2
	`
	var log attendance.AttendanceLog
	err := q.QueryRow(ctx, query, employeeID, shiftDate).Scan(
		&log.ID, &log.EmployeeID, &log.ShiftDate, &log.ClockInAt, &log.ClockOutAt, &log.CreatedAt, &log.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.AttendanceLog{}, attendance.ErrLogNotFound
	}
	if err != nil {
		return attendance.AttendanceLog{}, err
	}

	return log, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, log attendance.AttendanceLog) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_logs
		SET clock_in_at = $2, clock_out_at = $3, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, log.ID, log.ClockInAt, log.ClockOutAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrLogNotFound
	}
	return nil
}

func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, shift_date, clock_in_at, clock_out_at, created_at, updated_at
		FROM attendance_logs
		WHERE employee_id = $1 AND shift_date BETWEEN $2 AND $3
		ORDER BY shift_date DESC
	`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]attendance.AttendanceLog, 0)
	for rows.Next() {
		var log attendance.AttendanceLog
		if err := rows.Scan(
			&log.ID, &log.EmployeeID, &log.ShiftDate, &log.ClockInAt, &log.ClockOutAt, &log.CreatedAt, &log.UpdatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func (r *attendanceRepositoryImpl) ListByRange(ctx context.Context, from, to time.Time) ([]attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT al.id, al.employee_id, al.shift_date, al.clock_in_at, al.clock_out_at,
		       al.created_at, al.updated_at, e.full_name, e.department
		FROM attendance_logs al
		JOIN employees e ON al.employee_id = e.id
		WHERE al.shift_date BETWEEN $1 AND $2
		ORDER BY al.shift_date DESC, e.full_name
	`
	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]attendance.AttendanceLog, 0)
	for rows.Next() {
		var log attendance.AttendanceLog
		if err := rows.Scan(
			&log.ID, &log.EmployeeID, &log.ShiftDate, &log.ClockInAt, &log.ClockOutAt,
			&log.CreatedAt, &log.UpdatedAt, &log.EmployeeName, &log.EmployeeDepartment,
		); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func (r *attendanceRepositoryImpl) CountPresentDays(ctx context.Context, from, to time.Time) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, COUNT(DISTINCT shift_date)
		FROM attendance_logs
		WHERE shift_date BETWEEN $1 AND $2 AND clock_in_at IS NOT NULL
		GROUP BY employee_id
	`
	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var employeeID string
		var days int
		if err := rows.Scan(&employeeID, &days); err != nil {
			return nil, err
		}
		counts[employeeID] = days
	}

	return counts, rows.Err()
}
