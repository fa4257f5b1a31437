package http

import (
	"net/http"
	"time"

	"github.com/harborhr/hr-backend-go/internal/domain/attendance"
	"github.com/harborhr/hr-backend-go/internal/handler/http/middleware"
	"github.com/harborhr/hr-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListRange(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	log, err := h.attendanceService.ClockIn(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", log)
}

func (h *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	log, err := h.attendanceService.ClockOut(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, log)
}

func (h *AttendanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	from, to, err := parseRange(r)
	if err != nil {
		response.BadRequest(w, "Dates must be YYYY-MM-DD", nil)
		return
	}

	logs, err := h.attendanceService.ListMine(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

func (h *AttendanceHandlerImpl) ListRange(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		response.BadRequest(w, "Dates must be YYYY-MM-DD", nil)
		return
	}

	logs, err := h.attendanceService.ListRange(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

// parseRange reads from/to query params, defaulting to the current month.
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, -1)

	var err error
	if s := r.URL.Query().Get("from"); s != "" {
		if from, err = time.Parse("2006-01-02", s); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if s := r.URL.Query().Get("to"); s != "" {
		if to, err = time.Parse("2006-01-02", s); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}
