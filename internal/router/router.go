package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fachowiec/backend/internal/handler"
	"fachowiec/backend/internal/middleware"
	"fachowiec/backend/internal/service"
)

func New(
	authService *service.AuthService,
	authHandler *handler.AuthHandler,
	jobHandler *handler.JobHandler,
	timerHandler *handler.TimerHandler,
	reportHandler *handler.ReportHandler,
	estimateHandler *handler.EstimateHandler,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(authService))

	jobs := protected.Group("/jobs")
	jobs.GET("", jobHandler.List)
	jobs.POST("", jobHandler.Create)
	jobs.GET("/:id", jobHandler.Get)
	jobs.PUT("/:id", jobHandler.Update)
	jobs.DELETE("/:id", jobHandler.Delete)
	jobs.POST("/:id/timer/start", timerHandler.Start)
	jobs.GET("/:id/timer", timerHandler.State)
	jobs.GET("/:id/entries", timerHandler.Entries)

	protected.GET("/schedule/conflicts", jobHandler.Conflicts)

	timer := protected.Group("/timer/entries")
	timer.POST("/:id/pause", timerHandler.Pause)
	timer.POST("/:id/resume", timerHandler.Resume)
	timer.POST("/:id/stop", timerHandler.Stop)

	protected.GET("/reports", reportHandler.Generate)
	protected.POST("/reports/export", reportHandler.Export)

	protected.POST("/pricing/totals", estimateHandler.Totals)

	estimates := protected.Group("/estimates")
	estimates.GET("", estimateHandler.List)
	estimates.POST("", estimateHandler.Create)
	estimates.GET("/:id", estimateHandler.Get)
	estimates.PUT("/:id", estimateHandler.Update)
	estimates.DELETE("/:id", estimateHandler.Delete)
	estimates.POST("/:id/convert", estimateHandler.Convert)
	estimates.POST("/:id/export", estimateHandler.Export)

	return engine
}
