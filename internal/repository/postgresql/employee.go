package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/harborhr/hr-backend-go/internal/domain/employee"
	"github.com/harborhr/hr-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, full_name, email, department, position, start_date, category, gender,
	contact, address, profile_image_url, daily_rate, can_view_payroll,
	last_seen, is_disabled, created_at, updated_at
`

func scanEmployee(row pgx.Row, e *employee.Employee) error {
	return row.Scan(
		&e.ID, &e.FullName, &e.Email, &e.Department, &e.Position, &e.StartDate, &e.Category, &e.Gender,
		&e.Contact, &e.Address, &e.ProfileImageURL, &e.DailyRate, &e.CanViewPayroll,
		&e.LastSeen, &e.IsDisabled, &e.CreatedAt, &e.UpdatedAt,
	)
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, full_name, email, department, position, start_date, category, gender,
			contact, address, daily_rate, can_view_payroll, is_disabled, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, FALSE, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		e.ID, e.FullName, e.Email, e.Department, e.Position, e.StartDate, e.Category, e.Gender,
		e.Contact, e.Address, e.DailyRate, e.CanViewPayroll,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, err
	}

	return e, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	var e employee.Employee
	err := scanEmployee(q.QueryRow(ctx, query, id), &e)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, err
	}

	return e, nil
}

func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`

	var e employee.Employee
	err := scanEmployee(q.QueryRow(ctx, query, email), &e)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, err
	}

	return e, nil
}

// sortColumns whitelists sortable fields so a caller-supplied sort key can
// never reach the SQL string unchecked.
var sortColumns = map[string]string{
	"full_name":  "full_name",
	"department": "department",
	"position":   "position",
	"start_date": "start_date",
	"created_at": "created_at",
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE 1=1`
	args := []interface{}{}

	if !filter.IncludeDisabled {
		query += ` AND is_disabled = FALSE`
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(` AND (full_name ILIKE $%d OR department ILIKE $%d OR position ILIKE $%d)`,
			len(args), len(args), len(args))
	}

	col, ok := sortColumns[filter.SortField]
	if !ok {
		col = "full_name"
	}
	dir := "DESC"
	if filter.SortAscending {
		dir = "ASC"
	}
	query += fmt.Sprintf(` ORDER BY %s %s`, col, dir)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var e employee.Employee
		if err := scanEmployee(rows, &e); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $2, department = $3, position = $4, category = $5,
		    contact = $6, address = $7, daily_rate = $8, can_view_payroll = $9,
		    profile_image_url = $10, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		e.ID, e.FullName, e.Department, e.Position, e.Category,
		e.Contact, e.Address, e.DailyRate, e.CanViewPayroll, e.ProfileImageURL,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) Disable(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET is_disabled = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) Heartbeat(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET last_seen = $2 WHERE id = $1`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
