// Package router wires the HTTP handlers into the gin engine.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"logsearch_backend/internal/config"
	authhandler "logsearch_backend/internal/feature/auth/transport/handler"
	dashboardhandler "logsearch_backend/internal/feature/dashboard/transport/handler"
	healthhandler "logsearch_backend/internal/feature/health/transport/handler"
	searchhandler "logsearch_backend/internal/feature/search/transport/handler"
	uploadhandler "logsearch_backend/internal/feature/upload/transport/handler"
	"logsearch_backend/internal/platform/session"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Dashboard *dashboardhandler.DashboardHandler
	Search    *searchhandler.SearchHandler
	Upload    *uploadhandler.UploadHandler
	Health    *healthhandler.HealthHandler
}

// NewRouter builds the gin engine with all routes mounted. Pages and APIs
// that expose log data sit behind the session middleware; auth and health
// stay public.
func NewRouter(h Handlers, sessions *session.Store, cfg config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	r.MaxMultipartMemory = cfg.MaxContentLength

	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "web/static")
	r.StaticFile("/favicon.ico", "web/static/favicon.svg")

	// 認証不要
	r.GET("/login", h.Auth.LoginPage)
	r.POST("/login", h.Auth.Login)
	r.GET("/register", h.Auth.RegisterPage)
	r.POST("/register", h.Auth.Register)
	r.GET("/logout", h.Auth.Logout)
	r.GET("/health", h.Health.Health)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(session.LoginRequired(sessions))
	{
		auth.GET("/", h.Dashboard.Page)
		auth.GET("/health-dashboard", h.Health.Dashboard)
		auth.GET("/search", h.Search.Page)
		auth.GET("/upload", h.Upload.Page)
		auth.POST("/upload", h.Upload.Upload)
		auth.POST("/api/search", h.Search.Search)
		auth.GET("/api/search/history", h.Search.History)
		auth.GET("/api/stats", h.Dashboard.Stats)
		auth.GET("/api/profile", h.Auth.Profile)
	}

	return r
}
