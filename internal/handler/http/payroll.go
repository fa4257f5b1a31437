package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/harborhr/hr-backend-go/internal/domain/employee"
	"github.com/harborhr/hr-backend-go/internal/domain/payroll"
	"github.com/harborhr/hr-backend-go/internal/handler/http/middleware"
	"github.com/harborhr/hr-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	ProcessRun(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	ReprocessRecords(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService  payroll.Service
	employeeService employee.Service
}

func NewPayrollHandler(payrollService payroll.Service, employeeService employee.Service) PayrollHandler {
	return &PayrollHandlerImpl{
		payrollService:  payrollService,
		employeeService: employeeService,
	}
}

func (h *PayrollHandlerImpl) ProcessRun(w http.ResponseWriter, r *http.Request) {
	var req payroll.ProcessRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	run, err := h.payrollService.ProcessRun(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run processed", run)
}

func (h *PayrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.payrollService.ListRuns(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, runs)
}

func (h *PayrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	run, err := h.payrollService.GetRun(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, run)
}

// ReprocessRecords recomputes every record of an existing run from current
// attendance data. The run keeps its ID since runs are keyed by period.
func (h *PayrollHandlerImpl) ReprocessRecords(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	run, err := h.payrollService.GetRun(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ProcessRun(r.Context(), payroll.ProcessRunRequest{
		PeriodStart: run.PeriodStart,
		PeriodEnd:   run.PeriodEnd,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll records recomputed", result)
}

// MyHistory returns the caller's payslips. The employee record must carry
// the payroll-view permission.
func (h *PayrollHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	if !middleware.IsAdmin(r) {
		emp, err := h.employeeService.Get(r.Context(), employeeID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if !emp.CanViewPayroll {
			response.HandleError(w, payroll.ErrPayrollForbidden)
			return
		}
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := h.payrollService.History(r.Context(), employeeID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
