package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/harborhr/hr-backend-go/internal/handler/http/middleware"
	"github.com/harborhr/hr-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Attendance   AttendanceHandler
	Payroll      PayrollHandler
	Leave        LeaveHandler
	Notification NotificationHandler
}

func NewRouter(jwtService jwt.Service, logger *slog.Logger, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/login/oauth/google", h.Auth.GoogleRedirect)
			r.Get("/oauth/callback/google", h.Auth.GoogleCallback)
		})

		// The SSE stream authenticates with its own short-lived token, so it
		// sits outside the JWT verifier.
		r.Get("/notifications/stream", h.Notification.Stream)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Post("/heartbeat", h.Employee.Heartbeat)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Get("/{id}", h.Employee.Get)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/me", h.Attendance.ListMine)
				r.With(middleware.AdminOnly).Get("/", h.Attendance.ListRange)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/me", h.Payroll.MyHistory)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/runs", h.Payroll.ListRuns)
					r.Post("/runs", h.Payroll.ProcessRun)
					r.Get("/runs/{id}", h.Payroll.GetRun)
					r.Post("/runs/{id}/records", h.Payroll.ReprocessRecords)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/plans", func(r chi.Router) {
					r.Get("/", h.Leave.ListPlans)

					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/", h.Leave.CreatePlan)
						r.Put("/{id}", h.Leave.UpdatePlan)
						r.Delete("/{id}", h.Leave.DeletePlan)
					})
				})

				r.Route("/balances", func(r chi.Router) {
					r.Get("/me", h.Leave.GetMyBalances)

					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/", h.Leave.AssignBalance)
						r.Get("/{id}", h.Leave.GetEmployeeBalances)
					})
				})

				r.Route("/applications", func(r chi.Router) {
					r.Post("/", h.Leave.Submit)
					r.Get("/me", h.Leave.GetMyApplications)

					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Get("/", h.Leave.ListApplications)
						r.Get("/recallable", h.Leave.ListRecallable)
						r.Get("/{id}", h.Leave.GetApplication)
						r.Post("/{id}/approve", h.Leave.Approve)
						r.Post("/{id}/reject", h.Leave.Reject)
						r.Post("/{id}/recall", h.Leave.Recall)
					})
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/read", h.Notification.MarkRead)
				r.Post("/stream-token", h.Notification.StreamToken)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})

	return r
}
