// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/assistant/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers served by the router.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	Profile     *controller.ProfileController
	Transaction *controller.TransactionController
	Goal        *controller.GoalController
	Schedule    *controller.ScheduleController
	Assistant   *controller.AssistantController
	Admin       *controller.AdminController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	controllers      Controllers
	loginRateLimiter *middleware.RateLimiter
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		controllers:      controllers,
		loginRateLimiter: loginRateLimiter,
		authMiddleware:   authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
}

func (r *Router) setupAPIRoutes() {
	c := r.controllers
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", r.loginRateLimiter.Middleware(), c.Auth.Login)
	}

	user := v1.Group("")
	user.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(adapter.RoleUser))
	{
		user.GET("/profile", c.Profile.Get)
		user.PATCH("/profile", c.Profile.Update)
		user.GET("/balance", c.Profile.Balance)
		user.POST("/balance/reconcile", c.Profile.Reconcile)
		user.GET("/credit", c.Profile.Credit)

		transactions := user.Group("/transactions")
		{
			transactions.GET("", c.Transaction.List)
			transactions.POST("", c.Transaction.Record)
			transactions.GET("/day", c.Transaction.Day)
		}

		goals := user.Group("/goals")
		{
			goals.GET("", c.Goal.List)
			goals.POST("", c.Goal.Create)
			goals.GET("/:id", c.Goal.Get)
			goals.DELETE("/:id", c.Goal.Delete)
			goals.POST("/:id/contributions", c.Goal.Contribute)
		}

		payments := user.Group("/scheduled-payments")
		{
			payments.GET("", c.Schedule.List)
			payments.POST("", c.Schedule.Create)
			payments.GET("/summary", c.Schedule.Summary)
			payments.GET("/days-until/:day", c.Schedule.DaysUntil)
			payments.PATCH("/:id", c.Schedule.Update)
			payments.DELETE("/:id", c.Schedule.Delete)
			payments.POST("/:id/pay", c.Schedule.Pay)
		}

		assistant := user.Group("/assistant")
		{
			assistant.POST("/classify", c.Assistant.Classify)
			assistant.POST("/sessions", c.Assistant.CreateSession)
			assistant.GET("/sessions/:id", c.Assistant.GetSession)
			assistant.POST("/sessions/:id/messages", c.Assistant.SendMessage)
			assistant.POST("/sessions/:id/confirm", c.Assistant.Confirm)
			assistant.POST("/sessions/:id/cancel", c.Assistant.Cancel)
		}
	}

	v1.POST("/admin/login", r.loginRateLimiter.Middleware(), c.Auth.AdminLogin)

	admin := v1.Group("/admin")
	admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(adapter.RoleAdmin))
	{
		admin.GET("/users", c.Admin.ListUsers)
		admin.GET("/users/:user_id", c.Admin.GetUser)
		admin.PATCH("/users/:user_id", c.Profile.UpdateUser)
		admin.DELETE("/users/:user_id", c.Admin.DeleteUser)

		admin.GET("/scheduled-payments", c.Schedule.ListAll)
		admin.POST("/scheduled-payments", c.Admin.CreatePayment)
		admin.PATCH("/scheduled-payments/:id", c.Schedule.UpdateAny)
		admin.DELETE("/scheduled-payments/:id", c.Schedule.DeleteAny)

		admin.GET("/reports/summary", c.Admin.Report)
	}
}
