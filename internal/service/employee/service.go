package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborhr/hr-backend-go/internal/domain/employee"
)

type Service struct {
	employee.Repository
}

func NewService(employeeRepository employee.Repository) *Service {
	return &Service{Repository: employeeRepository}
}

func (s *Service) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e := employee.Employee{
		ID:         uuid.New().String(),
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		Category:   employee.Category(req.Category),
		Gender:     employee.Gender(req.Gender),
		Contact:    req.Contact,
		Address:    req.Address,
	}
	if e.Category == "" {
		e.Category = employee.CategoryRegular
	}
	if req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to parse start date: %w", err)
		}
		e.StartDate = &startDate
	}
	if req.DailyRate != "" {
		rate, err := decimal.NewFromString(req.DailyRate)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to parse daily rate: %w", err)
		}
		e.DailyRate = rate
	}

	created, err := s.Repository.Create(ctx, e)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(created, time.Now()), nil
}

func (s *Service) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e, time.Now()), nil
}

func (s *Service) List(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.Repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	now := time.Now()
	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e, now))
	}
	return responses, nil
}

func (s *Service) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	e, err := s.Repository.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.Department != nil {
		e.Department = *req.Department
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	if req.Category != nil {
		e.Category = employee.Category(*req.Category)
	}
	if req.Contact != nil {
		e.Contact = req.Contact
	}
	if req.Address != nil {
		e.Address = req.Address
	}
	if req.DailyRate != nil {
		rate, err := decimal.NewFromString(*req.DailyRate)
		if err != nil {
			return fmt.Errorf("failed to parse daily rate: %w", err)
		}
		e.DailyRate = rate
	}
	if req.CanViewPayroll != nil {
		e.CanViewPayroll = *req.CanViewPayroll
	}

	if err := s.Repository.Update(ctx, e); err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Repository.Disable(ctx, id); err != nil {
		return fmt.Errorf("failed to disable employee: %w", err)
	}
	return nil
}

// Heartbeat records that the employee's client is online right now.
func (s *Service) Heartbeat(ctx context.Context, id string) error {
	return s.Repository.Heartbeat(ctx, id, time.Now())
}
