package routes

import (
	"github.com/gin-gonic/gin"

	"sportstravel/internal/authz"
	"sportstravel/internal/handlers"
	"sportstravel/internal/middleware"
)

type Options struct {
	JWTSecret    []byte
	LeadsPerHour int
}

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	leadHandler *handlers.LeadHandler,
	eventHandler *handlers.EventHandler,
	packageHandler *handlers.PackageHandler,
	quoteHandler *handlers.QuoteHandler,
	dashboardHandler *handlers.DashboardHandler,
	healthHandler *handlers.HealthHandler,
	opts Options,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", healthHandler.Check)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Lead submission is the public funnel entry; it gets the strict bucket.
	r.POST("/leads", middleware.LeadSubmissionLimit(opts.LeadsPerHour), leadHandler.Create)

	// Public catalog browsing.
	r.GET("/events", eventHandler.List)
	r.GET("/events/:id", eventHandler.GetByID)
	r.GET("/packages", packageHandler.List)
	r.GET("/packages/:id", packageHandler.GetByID)

	// ---- protected
	auth := r.Group("/", middleware.AuthMiddleware(opts.JWTSecret))

	leads := auth.Group("/leads")
	{
		leads.GET("", leadHandler.List)
		leads.GET("/:id", leadHandler.GetByID)
		leads.PUT("/:id", leadHandler.Update)
		leads.PATCH("/:id/status", leadHandler.UpdateStatus)
		leads.DELETE("/:id", middleware.RequireRoles(authz.RoleAdmin), leadHandler.Delete)
	}

	quotes := auth.Group("/quotes")
	{
		quotes.POST("/generate", quoteHandler.Generate)
		quotes.GET("/:id", quoteHandler.GetByID)
		quotes.GET("/lead/:leadid", quoteHandler.ListByLead)
		quotes.PUT("/:id", quoteHandler.Update)
		quotes.PATCH("/:id/status", quoteHandler.UpdateStatus)
		quotes.GET("/:id/pdf", quoteHandler.Download)
	}

	// Catalog mutations need elevated roles.
	events := auth.Group("/events", middleware.RequireRoles(authz.RoleManager, authz.RoleAdmin))
	{
		events.POST("", eventHandler.Create)
		events.PUT("/:id", eventHandler.Update)
		events.DELETE("/:id", eventHandler.Delete)
	}

	packages := auth.Group("/packages", middleware.RequireRoles(authz.RoleManager, authz.RoleAdmin))
	{
		packages.POST("", packageHandler.Create)
		packages.PUT("/:id", packageHandler.Update)
		packages.DELETE("/:id", packageHandler.Delete)
	}

	dashboard := auth.Group("/dashboard")
	{
		dashboard.GET("/stats", dashboardHandler.GetSummary)
		dashboard.GET("/revenue", dashboardHandler.GetRevenueStats)
		dashboard.GET("/recent-leads", dashboardHandler.GetRecentLeads)
		dashboard.GET("/recent-quotes", dashboardHandler.GetRecentQuotes)
	}

	return r
}
