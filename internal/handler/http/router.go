package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/presenze-hr/presenze-backend-go/internal/config"
	"github.com/presenze-hr/presenze-backend-go/internal/handler/http/middleware"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Status     StatusHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	SickLeave  SickLeaveHandler
	Trip       TripHandler
	Schedule   ScheduleHandler
	Employee   EmployeeHandler
	Balance    BalanceHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "presenze-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
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

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/status", func(r chi.Router) {
				r.Get("/", h.Status.GetMine)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/{employeeID}", h.Status.GetByEmployee)
				})
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/vacation-selectable", h.Status.VacationSelectable)
				r.Get("/permission-selectable", h.Status.PermissionSelectable)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/my", h.Attendance.ListMine)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Attendance.List)
					r.Post("/manual", h.Attendance.CreateManualEntry)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/vacation", h.Leave.CreateVacation)
				r.Post("/permission", h.Leave.CreatePermission)
				r.Get("/my", h.Leave.ListMine)
				r.Delete("/{id}", h.Leave.Cancel)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Leave.List)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/sick-leaves", func(r chi.Router) {
				r.Get("/my", h.SickLeave.ListMine)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.SickLeave.List)
					r.Post("/", h.SickLeave.Create)
					r.Delete("/{id}", h.SickLeave.Delete)
				})
			})

			r.Route("/business-trips", func(r chi.Router) {
				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Trip.List)
					r.Post("/", h.Trip.Create)
					r.Post("/{id}/approve", h.Trip.Approve)
					r.Post("/{id}/reject", h.Trip.Reject)
					r.Delete("/{id}", h.Trip.Delete)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/my", h.Schedule.GetMine)
				r.Get("/holidays", h.Schedule.ListHolidays)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/company", h.Schedule.UpsertCompanyDefault)
					r.Get("/{employeeID}", h.Schedule.GetByEmployee)
					r.Put("/{employeeID}", h.Schedule.UpsertEmployeeOverride)
					r.Delete("/{employeeID}", h.Schedule.DeleteEmployeeOverride)
					r.Post("/holidays", h.Schedule.CreateHoliday)
					r.Delete("/holidays/{id}", h.Schedule.DeleteHoliday)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", h.Employee.GetMe)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Get("/{id}", h.Employee.Get)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/balance", func(r chi.Router) {
				r.Get("/my", h.Balance.GetMine)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/{employeeID}", h.Balance.GetByEmployee)
				})
			})
		})
	})

	return r
}
