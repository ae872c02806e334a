package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/presenze-hr/presenze-backend-go/internal/config"
	appHTTP "github.com/presenze-hr/presenze-backend-go/internal/handler/http"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/clock"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/database"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/jwt"
	"github.com/presenze-hr/presenze-backend-go/internal/repository/postgresql"
	attendanceService "github.com/presenze-hr/presenze-backend-go/internal/service/attendance"
	authService "github.com/presenze-hr/presenze-backend-go/internal/service/auth"
	"github.com/presenze-hr/presenze-backend-go/internal/service/balance"
	"github.com/presenze-hr/presenze-backend-go/internal/service/eligibility"
	employeeService "github.com/presenze-hr/presenze-backend-go/internal/service/employee"
	leaveService "github.com/presenze-hr/presenze-backend-go/internal/service/leave"
	scheduleService "github.com/presenze-hr/presenze-backend-go/internal/service/schedule"
	sickLeaveService "github.com/presenze-hr/presenze-backend-go/internal/service/sickleave"
	statusService "github.com/presenze-hr/presenze-backend-go/internal/service/status"
	tripService "github.com/presenze-hr/presenze-backend-go/internal/service/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	sickLeaveRepo := postgresql.NewSickLeaveRepository(db)
	businessTripRepo := postgresql.NewBusinessTripRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	clk := clock.System()

	resolver := statusService.NewResolver(sickLeaveRepo, leaveRequestRepo, businessTripRepo, attendanceRepo, workScheduleRepo, clk)
	eligibilitySvc := eligibility.NewService(resolver, employeeRepo, workScheduleRepo, holidayRepo, clk)
	balanceCalc := balance.NewCalculator(employeeRepo, leaveRequestRepo, workScheduleRepo, holidayRepo, clk)

	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, resolver, eligibilitySvc, clk)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, eligibilitySvc, balanceCalc)
	sickLeaveSvc := sickLeaveService.NewSickLeaveService(sickLeaveRepo, employeeRepo)
	tripSvc := tripService.NewTripService(businessTripRepo, attendanceRepo, workScheduleRepo, holidayRepo, employeeRepo)
	scheduleSvc := scheduleService.NewScheduleService(workScheduleRepo, holidayRepo, employeeRepo)

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, jwtService),
		Status:     appHTTP.NewStatusHandler(resolver, eligibilitySvc, clk),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		SickLeave:  appHTTP.NewSickLeaveHandler(sickLeaveSvc),
		Trip:       appHTTP.NewTripHandler(tripSvc),
		Schedule:   appHTTP.NewScheduleHandler(scheduleSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Balance:    appHTTP.NewBalanceHandler(balanceCalc, clk),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal(err)
	}
}
