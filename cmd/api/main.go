package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/httplog/v3"

	"github.com/harborhr/hr-backend-go/internal/config"
	"github.com/harborhr/hr-backend-go/internal/fixtures"
	appHTTP "github.com/harborhr/hr-backend-go/internal/handler/http"
	"github.com/harborhr/hr-backend-go/internal/pkg/database"
	"github.com/harborhr/hr-backend-go/internal/pkg/jwt"
	"github.com/harborhr/hr-backend-go/internal/pkg/oauth"
	"github.com/harborhr/hr-backend-go/internal/pkg/sse"
	"github.com/harborhr/hr-backend-go/internal/pkg/storage"
	"github.com/harborhr/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/harborhr/hr-backend-go/internal/service/attendance"
	authService "github.com/harborhr/hr-backend-go/internal/service/auth"
	employeeService "github.com/harborhr/hr-backend-go/internal/service/employee"
	leaveService "github.com/harborhr/hr-backend-go/internal/service/leave"
	notificationService "github.com/harborhr/hr-backend-go/internal/service/notification"
	payrollService "github.com/harborhr/hr-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backend"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	leavePlanRepo := postgresql.NewLeavePlanRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveApplicationRepo := postgresql.NewLeaveApplicationRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	txManager := postgresql.NewTxManager(db)

	if err := fixtures.SeedLeavePlans(context.Background(), leavePlanRepo, logger); err != nil {
		logger.Error("failed to seed default leave plans", "error", err)
		os.Exit(1)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			logger.Error("failed to initialize local storage", "error", err)
			os.Exit(1)
		}
	default:
		logger.Error("unsupported storage type", "type", cfg.Storage.Type)
		os.Exit(1)
	}

	hub := sse.NewHub()
	notifService := notificationService.NewService(notificationRepo, hub, logger, notificationService.Config{})
	defer notifService.Close()

	policy := cfg.Leave.WorkdayPolicy

	auth := authService.NewService(userRepo, refreshTokenRepo, jwtService, googleService)
	employees := employeeService.NewService(employeeRepo)
	attendance := attendanceService.NewService(attendanceRepo)
	payroll := payrollService.NewService(payrollRepo, employeeRepo, attendanceRepo, txManager, policy, notifService)
	leavePlans := leaveService.NewPlanService(leavePlanRepo)
	leaveBalances := leaveService.NewBalanceService(leaveBalanceRepo, leavePlanRepo)
	leaveApplications := leaveService.NewApplicationService(
		leaveApplicationRepo, leavePlanRepo, leaveBalanceRepo,
		txManager, policy, notifService, fileStorage,
	)

	router := appHTTP.NewRouter(jwtService, logger, cfg.App.CORSAllowedOrigins, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(auth, jwtService, googleService),
		Employee:     appHTTP.NewEmployeeHandler(employees),
		Attendance:   appHTTP.NewAttendanceHandler(attendance),
		Payroll:      appHTTP.NewPayrollHandler(payroll, employees),
		Leave:        appHTTP.NewLeaveHandler(leavePlans, leaveBalances, leaveApplications, employees),
		Notification: appHTTP.NewNotificationHandler(notifService, jwtService, hub),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server starting", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
