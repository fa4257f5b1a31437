package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harborhr/hr-backend-go/internal/domain/employee"
	"github.com/harborhr/hr-backend-go/internal/domain/leave"
	"github.com/harborhr/hr-backend-go/internal/handler/http/middleware"
	"github.com/harborhr/hr-backend-go/internal/handler/http/response"
)

// maxAttachmentSize limits leave attachment uploads to 5 MiB.
const maxAttachmentSize = 5 << 20

type LeaveHandler interface {
	CreatePlan(w http.ResponseWriter, r *http.Request)
	UpdatePlan(w http.ResponseWriter, r *http.Request)
	ListPlans(w http.ResponseWriter, r *http.Request)
	DeletePlan(w http.ResponseWriter, r *http.Request)

	AssignBalance(w http.ResponseWriter, r *http.Request)
	GetMyBalances(w http.ResponseWriter, r *http.Request)
	GetEmployeeBalances(w http.ResponseWriter, r *http.Request)

	Submit(w http.ResponseWriter, r *http.Request)
	GetMyApplications(w http.ResponseWriter, r *http.Request)
	ListApplications(w http.ResponseWriter, r *http.Request)
	ListRecallable(w http.ResponseWriter, r *http.Request)
	GetApplication(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Recall(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	planService        leave.PlanService
	balanceService     leave.BalanceService
	applicationService leave.ApplicationService
	employeeService    employee.Service
}

func NewLeaveHandler(
	planService leave.PlanService,
	balanceService leave.BalanceService,
	applicationService leave.ApplicationService,
	employeeService employee.Service,
) LeaveHandler {
	return &LeaveHandlerImpl{
		planService:        planService,
		balanceService:     balanceService,
		applicationService: applicationService,
		employeeService:    employeeService,
	}
}

func (h *LeaveHandlerImpl) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeavePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	plan, err := h.planService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave plan created", plan)
}

func (h *LeaveHandlerImpl) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Plan ID is required", nil)
		return
	}

	var req leave.UpdateLeavePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := h.planService.Update(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave plan updated", nil)
}

// ListPlans returns all plans for admins; for employees, active plans their
// category may apply for.
func (h *LeaveHandlerImpl) ListPlans(w http.ResponseWriter, r *http.Request) {
	if middleware.IsAdmin(r) {
		plans, err := h.planService.ListAll(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, plans)
		return
	}

	category := string(employee.CategoryRegular)
	if employeeID := middleware.EmployeeID(r); employeeID != "" {
		if emp, err := h.employeeService.Get(r.Context(), employeeID); err == nil {
			category = emp.Category
		}
	}

	plans, err := h.planService.ListForCategory(r.Context(), category)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, plans)
}

func (h *LeaveHandlerImpl) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Plan ID is required", nil)
		return
	}

	if err := h.planService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave plan deleted", nil)
}

func (h *LeaveHandlerImpl) AssignBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.AssignBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balance, err := h.balanceService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave balance assigned", balance)
}

func (h *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	balances, err := h.balanceService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

func (h *LeaveHandlerImpl) GetEmployeeBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	balances, err := h.balanceService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// Submit accepts multipart form data so an attachment (medical certificate
// and the like) can ride along with the application fields.
func (h *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	req := leave.SubmitApplicationRequest{
		EmployeeID:  employeeID,
		LeavePlanID: r.FormValue("leave_plan_id"),
		StartDate:   r.FormValue("start_date"),
		EndDate:     r.FormValue("end_date"),
		Reason:      r.FormValue("reason"),
	}

	if file, header, err := r.FormFile("attachment"); err == nil {
		defer file.Close()
		req.File = file
		req.FileHeader = header
	}

	app, err := h.applicationService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted", app)
}

func (h *LeaveHandlerImpl) GetMyApplications(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	apps, err := h.applicationService.ListMine(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, apps)
}

func (h *LeaveHandlerImpl) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.applicationService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, apps)
}

func (h *LeaveHandlerImpl) ListRecallable(w http.ResponseWriter, r *http.Request) {
	apps, err := h.applicationService.ListOngoingRecallable(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, apps)
}

func (h *LeaveHandlerImpl) GetApplication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	app, err := h.applicationService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, app)
}

func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	app, err := h.applicationService.Approve(r.Context(), id, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application approved", app)
}

func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	var req leave.ReviewApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ApplicationID = id
	req.ReviewerID = middleware.UserID(r)

	app, err := h.applicationService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application rejected", app)
}

func (h *LeaveHandlerImpl) Recall(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	var req leave.RecallApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ApplicationID = id
	req.ReviewerID = middleware.UserID(r)

	app, err := h.applicationService.Recall(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application recalled", app)
}
