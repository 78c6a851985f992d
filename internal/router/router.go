package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"runsheet/internal/handler"
	"runsheet/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
// A nil validator leaves the API unauthenticated.
func Setup(
	validator middleware.TokenValidator,
	allowedOrigins []string,
	sessionH *handler.SessionHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	if validator != nil {
		v1.Use(middleware.AuthMiddleware(validator))
	}

	sessions := v1.Group("/sessions")
	sessions.POST("", sessionH.Create)
	sessions.GET("", sessionH.List)
	sessions.GET("/:id", sessionH.GetByID)
	sessions.DELETE("/:id", sessionH.Delete)
	sessions.POST("/:id/navigate", sessionH.Navigate)
	sessions.GET("/:id/ownership", sessionH.Ownership)
	sessions.POST("/:id/reset", sessionH.Reset)
	sessions.GET("/:id/summary", sessionH.Summary)
	sessions.GET("/:id/export.csv", sessionH.ExportCSV)
	sessions.GET("/:id/export.xlsx", sessionH.ExportXLSX)

	// Row review
	rows := sessions.Group("/:id/rows/:row")
	rows.POST("/analyze", sessionH.AnalyzeRow)
	rows.PUT("/analysis", sessionH.CorrectRow)
	rows.POST("/approve", sessionH.ApproveRow)

	return r
}
