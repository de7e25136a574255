package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octobees/commtrack/api/internal/auth"
	"github.com/octobees/commtrack/api/internal/config"
	"github.com/octobees/commtrack/api/internal/entity"
	"github.com/octobees/commtrack/api/internal/handler"
	middlewarepkg "github.com/octobees/commtrack/api/internal/middleware"
)

const (
	pathLogin          = "/api/login"
	pathRegister       = "/api/register"
	pathDownloadReport = "/api/analytics/download-report"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth           *handler.AuthHandler
	Users          *handler.UserAdminHandler
	Companies      *handler.CompaniesHandler
	AdminUpload    *handler.AdminUploadHandler
	Methods        *handler.MethodsHandler
	Communications *handler.CommunicationsHandler
	Notifications  *handler.NotificationsHandler
	Analytics      *handler.AnalyticsHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authLimit := middlewarepkg.RateLimiter(cfg.RateLimitAuth, pathLogin, pathRegister)
	e.POST(pathRegister, handlers.Auth.Register, authLimit)
	e.POST(pathLogin, handlers.Auth.Login, authLimit)

	api := e.Group("/api", middlewarepkg.JWT(jwtManager))
	requireAdmin := middlewarepkg.RequireRole(entity.RoleAdmin)

	api.GET("/protected", handlers.Auth.Protected)

	api.GET("/companies", handlers.Companies.List)
	api.POST("/companies/add", handlers.Companies.Create, requireAdmin)
	api.PUT("/companies/edit/:id", handlers.Companies.Update, requireAdmin)
	api.DELETE("/companies/delete/:id", handlers.Companies.Delete, requireAdmin)

	api.GET("/communications", handlers.Methods.List)
	api.POST("/communications", handlers.Methods.Create, requireAdmin)
	api.PUT("/communications/:id", handlers.Methods.Update, requireAdmin)
	api.DELETE("/communications/:id", handlers.Methods.Delete, requireAdmin)

	api.GET("/communications-user", handlers.Communications.List)
	api.POST("/communications-user", handlers.Communications.Log)

	api.GET("/notifications", handlers.Notifications.List)

	analytics := api.Group("/analytics")
	analytics.GET("/communication-stats", handlers.Analytics.Stats)
	analytics.GET("/company/:companyId/stats", handlers.Analytics.CompanyStats)
	analytics.GET("/download-report", handlers.Analytics.DownloadReport,
		middlewarepkg.RateLimiter(cfg.RateLimitReports, pathDownloadReport))

	admin := api.Group("/admin", requireAdmin)
	admin.POST("/companies/import", handlers.AdminUpload.ImportCompanies)
	admin.POST("/notifications/refresh", handlers.Notifications.Refresh)
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)
}
