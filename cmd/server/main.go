package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"workforce-system/config"
	attendancehandler "workforce-system/internal/attendance/handler"
	"workforce-system/internal/database"
	"workforce-system/internal/database/models"
	departmenthandler "workforce-system/internal/department/handler"
	employeehandler "workforce-system/internal/employee/handler"
	"workforce-system/internal/gateway/handlers"
	"workforce-system/internal/gateway/middleware"
	leavehandler "workforce-system/internal/leave/handler"
	payrollhandler "workforce-system/internal/payroll/handler"
	performancehandler "workforce-system/internal/performance/handler"
	userhandler "workforce-system/internal/user/handler"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient := config.NewRedisClient(cfg.Redis)

	employees := employeehandler.NewEmployeeHandler(db)
	departments := departmenthandler.NewDepartmentHandler(db)
	attendance := attendancehandler.NewAttendanceHandler(db, redisClient)
	leaves := leavehandler.NewLeaveHandler(db)
	payroll := payrollhandler.NewPayrollHandler(db, redisClient)
	performance := performancehandler.NewPerformanceHandler(db)
	users := userhandler.NewUserHandler(db, employees, cfg.Auth.TokenTTL)

	userHandler := handlers.NewUserHTTPHandler(users)
	employeeHandler := handlers.NewEmployeeHTTPHandler(employees)
	departmentHandler := handlers.NewDepartmentHTTPHandler(departments)
	attendanceHandler := handlers.NewAttendanceHTTPHandler(attendance, employees)
	leaveHandler := handlers.NewLeaveHTTPHandler(leaves, employees)
	payrollHandler := handlers.NewPayrollHTTPHandler(payroll, employees)
	performanceHandler := handlers.NewPerformanceHTTPHandler(performance, employees)

	r := gin.Default()

	r.Use(middleware.CORS())
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit())

	// --- Public API Group ---
	public := r.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
			auth.POST("/verify-otp", userHandler.VerifyOTP)
		}
	}

	// --- Protected API Group ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth())
	{
		adminOrManager := middleware.RequireRoles(models.RoleAdmin, models.RoleManager)
		adminOnly := middleware.RequireRoles(models.RoleAdmin)

		employeesGroup := protected.Group("/employees")
		{
			employeesGroup.GET("/me", employeeHandler.Me)
			employeesGroup.POST("", adminOrManager, employeeHandler.Create)
			employeesGroup.GET("", adminOrManager, employeeHandler.List)
			employeesGroup.GET("/:id", employeeHandler.Get)
			employeesGroup.PUT("/:id", employeeHandler.Update)
			employeesGroup.DELETE("/:id", adminOnly, employeeHandler.Delete)
		}

		departmentsGroup := protected.Group("/departments")
		{
			departmentsGroup.GET("", departmentHandler.List)
			departmentsGroup.GET("/:id", departmentHandler.Get)
			departmentsGroup.POST("", adminOnly, departmentHandler.Create)
			departmentsGroup.PUT("/:id", adminOnly, departmentHandler.Update)
			departmentsGroup.DELETE("/:id", adminOnly, departmentHandler.Delete)
		}

		attendanceGroup := protected.Group("/attendance")
		{
			attendanceGroup.POST("/clock-in", attendanceHandler.ClockIn)
			attendanceGroup.POST("/clock-out", attendanceHandler.ClockOut)
			attendanceGroup.GET("/me", attendanceHandler.My)
			attendanceGroup.GET("/today", adminOrManager, attendanceHandler.Today)
			attendanceGroup.GET("", adminOrManager, attendanceHandler.List)
		}

		leavesGroup := protected.Group("/leaves")
		{
			leavesGroup.POST("", leaveHandler.Create)
			leavesGroup.GET("/me", leaveHandler.My)
			leavesGroup.GET("/pending", adminOrManager, leaveHandler.Pending)
			leavesGroup.GET("", adminOrManager, leaveHandler.List)
			leavesGroup.PUT("/:id/approve", adminOrManager, leaveHandler.Approve)
			leavesGroup.PUT("/:id/reject", adminOrManager, leaveHandler.Reject)
		}

		payrollGroup := protected.Group("/payroll")
		{
			payrollGroup.POST("/generate", adminOnly, payrollHandler.Generate)
			payrollGroup.GET("", adminOrManager, payrollHandler.List)
			payrollGroup.GET("/my-slips", payrollHandler.MySlips)
			payrollGroup.GET("/:id", payrollHandler.Get)
			payrollGroup.PUT("/:id/pay", adminOnly, payrollHandler.MarkAsPaid)
		}

		performanceGroup := protected.Group("/performance")
		{
			performanceGroup.POST("/reviews", adminOrManager, performanceHandler.AddReview)
			performanceGroup.GET("/reviews", adminOrManager, performanceHandler.ListReviews)
			performanceGroup.GET("/reviews/employee/:id", performanceHandler.EmployeeReviews)
			performanceGroup.POST("/goals", performanceHandler.AddGoal)
			performanceGroup.GET("/goals/me", performanceHandler.MyGoals)
			performanceGroup.PUT("/goals/:id", performanceHandler.UpdateGoal)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"message":   "Server is running",
			"timestamp": time.Now(),
		})
	})

	port := ":" + cfg.Server.Port
	log.Printf("Starting server on port %s", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
