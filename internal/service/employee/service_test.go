package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborhr/hr-backend-go/internal/domain/employee"
	"github.com/harborhr/hr-backend-go/internal/pkg/validator"
	"github.com/harborhr/hr-backend-go/internal/repository/memory"
)

func newTestService() *Service {
	return NewService(memory.NewEmployeeRepository())
}

func createEmployee(t *testing.T, svc *Service, name, email string) employee.EmployeeResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		FullName:   name,
		Email:      email,
		Department: "Accounting",
		Position:   "Clerk",
		StartDate:  "2024-06-01",
		DailyRate:  "500",
	})
	require.NoError(t, err)
	return resp
}

func TestCreateDefaultsToRegularCategory(t *testing.T) {
	svc := newTestService()

	resp := createEmployee(t, svc, "Alice Reyes", "alice@example.com")
	assert.Equal(t, string(employee.CategoryRegular), resp.Category)
	assert.Equal(t, "500", resp.DailyRate)
	assert.Equal(t, "Inactive", resp.Status)
}

func TestCreateValidatesInput(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		FullName: "",
		Email:    "not-an-email",
		Category: "Contractor",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "full_name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "category")
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService()

	createEmployee(t, svc, "Alice Reyes", "alice@example.com")
	_, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		FullName: "Alice Again",
		Email:    "alice@example.com",
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created := createEmployee(t, svc, "Alice Reyes", "alice@example.com")

	dept := "Treasury"
	canView := true
	err := svc.Update(ctx, employee.UpdateEmployeeRequest{
		ID:             created.ID,
		Department:     &dept,
		CanViewPayroll: &canView,
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Treasury", got.Department)
	assert.True(t, got.CanViewPayroll)
	assert.Equal(t, "Alice Reyes", got.FullName)
	assert.Equal(t, "Clerk", got.Position)
}

func TestDeleteHidesEmployeeFromDefaultListing(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created := createEmployee(t, svc, "Alice Reyes", "alice@example.com")
	createEmployee(t, svc, "Bob Cruz", "bob@example.com")

	require.NoError(t, svc.Delete(ctx, created.ID))

	listed, err := svc.List(ctx, employee.ListFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Bob Cruz", listed[0].FullName)

	all, err := svc.List(ctx, employee.ListFilter{IncludeDisabled: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestHeartbeatMarksEmployeeActive(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created := createEmployee(t, svc, "Alice Reyes", "alice@example.com")
	require.NoError(t, svc.Heartbeat(ctx, created.ID))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Active", got.Status)

	assert.ErrorIs(t, svc.Heartbeat(ctx, "missing"), employee.ErrEmployeeNotFound)
}

func TestListSearchMatchesNameDepartmentPosition(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	createEmployee(t, svc, "Alice Reyes", "alice@example.com")
	createEmployee(t, svc, "Bob Cruz", "bob@example.com")

	byName, err := svc.List(ctx, employee.ListFilter{Search: "reyes"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Alice Reyes", byName[0].FullName)

	byDept, err := svc.List(ctx, employee.ListFilter{Search: "accounting"})
	require.NoError(t, err)
	assert.Len(t, byDept, 2)
}
