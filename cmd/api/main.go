package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"

	"github.com/hrsuite/timetrack-api/internal/config"
	"github.com/hrsuite/timetrack-api/internal/database"
	"github.com/hrsuite/timetrack-api/internal/handlers"
	"github.com/hrsuite/timetrack-api/internal/jobs"
	"github.com/hrsuite/timetrack-api/internal/middleware"
	"github.com/hrsuite/timetrack-api/internal/repository"
	"github.com/hrsuite/timetrack-api/internal/services"
	"github.com/hrsuite/timetrack-api/internal/storage"
	"github.com/hrsuite/timetrack-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Warn if Resend email is not configured
	if cfg.ResendAPIKey == "" || cfg.FromEmail == "" {
		logger.Warn("Resend email disabled: RESEND_API_KEY or FROM_EMAIL not set. Approval mails will only be logged.")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Run schema migrations
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	logger.Info("Database schema up to date")

	// Initialize report storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, store, cfg, db)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, cfg)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", h.Health.Index)

		// Employees and the management hierarchy
		employees := v1.Group("/employees")
		{
			// Static routes first so "without_manager" is not matched as :employee_id
			employees.GET("", h.Employee.Index)
			employees.POST("", h.Employee.Create)
			employees.GET("/without_manager", h.Employee.WithoutManager)
			employees.GET("/dashboard", h.Employee.Dashboard)
			employees.GET("/:employee_id", h.Employee.Show)
			employees.PUT("/:employee_id", h.Employee.Update)
			employees.DELETE("/:employee_id", h.Employee.Delete)
			employees.GET("/:employee_id/ancestors", h.Employee.Ancestors)
			employees.GET("/:employee_id/subordinates", h.Employee.Subordinates)
			employees.GET("/:employee_id/tree", h.Employee.Tree)
			employees.GET("/:employee_id/timesheets", h.Timesheet.ByEmployee)
			employees.GET("/:employee_id/projects", h.Project.MemberProjects)
			employees.GET("/:employee_id/notifications", h.Notification.Index)
			employees.POST("/:employee_id/notifications/mark_all_as_read", h.Notification.MarkAllAsRead)
		}

		// Departments and their designations
		departments := v1.Group("/departments")
		{
			departments.GET("", h.Department.Index)
			departments.POST("", h.Department.Create)
			departments.GET("/:department_id", h.Department.Show)
			departments.PUT("/:department_id", h.Department.Update)
			departments.DELETE("/:department_id", h.Department.Delete)
			departments.GET("/:department_id/designations", h.Department.Designations)
			departments.POST("/:department_id/designations", h.Department.CreateDesignation)
			departments.DELETE("/:department_id/designations/:designation_id", h.Department.DeleteDesignation)
		}

		// Projects and team membership
		projects := v1.Group("/projects")
		{
			projects.GET("", h.Project.Index)
			projects.POST("", h.Project.Create)
			projects.GET("/:project_id", h.Project.Show)
			projects.PUT("/:project_id", h.Project.Update)
			projects.DELETE("/:project_id", h.Project.Delete)
			projects.GET("/:project_id/team", h.Project.Team)
			projects.POST("/:project_id/team", h.Project.AssignMember)
			projects.DELETE("/:project_id/team/:employee_id", h.Project.RemoveMember)
		}

		// Timesheets and daily logs
		timesheets := v1.Group("/timesheets")
		{
			timesheets.POST("", h.Timesheet.GetOrCreate)
			timesheets.GET("/by_week", h.Timesheet.ByWeek)
			timesheets.GET("/:timesheet_id", h.Timesheet.Show)
			timesheets.PUT("/:timesheet_id", h.Timesheet.Update)
			timesheets.DELETE("/:timesheet_id", h.Timesheet.Delete)
			timesheets.GET("/:timesheet_id/export_csv", h.Report.TimesheetCSV)
			timesheets.GET("/:timesheet_id/export_pdf", h.Report.TimesheetPDF)
		}

		dailyLogs := v1.Group("/daily_logs")
		{
			dailyLogs.POST("", h.Timesheet.UpsertLog)
			dailyLogs.POST("/bulk", h.Timesheet.BulkSave)
			dailyLogs.GET("/:log_id", h.Timesheet.ShowLog)
			dailyLogs.DELETE("/:log_id", h.Timesheet.DeleteLog)
			dailyLogs.GET("/:log_id/changes", h.Timesheet.LogChanges)
		}

		// Change approvals
		v1.POST("/changes/:change_id/approvals", h.Approval.Create)
		v1.GET("/changes/:change_id/approvals", h.Approval.Index)

		approvals := v1.Group("/approvals")
		{
			approvals.GET("/:approval_id", h.Approval.Show)
			approvals.PUT("/:approval_id/review", h.Approval.Review)
			approvals.PUT("/:approval_id/reopen", h.Approval.Reopen)
		}

		// Notifications
		notifications := v1.Group("/notifications")
		{
			notifications.POST("/:notification_id/mark_as_read", h.Notification.MarkAsRead)
			notifications.DELETE("/:notification_id", h.Notification.Delete)
		}

		// Reports
		v1.GET("/reports/week_xlsx", h.Report.WeekXLSX)

		// Operational endpoints
		v1.GET("/jobs/status", h.Job.Status)
		v1.GET("/audits", h.Audit.Index)
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	// Remind managers about approvals that sat pending for too long
	maxAge := time.Duration(cfg.ApprovalReminderHours) * time.Hour
	worker.ScheduleEvery(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking stale approvals...")
		return svcs.Approval.RemindStale(ctx, maxAge)
	})

	logger.Info("Scheduled recurring jobs")
}
