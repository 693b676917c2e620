package server

import (
	"github.com/gin-gonic/gin"

	"github.com/akvideo/technikliste-backend/internal/handlers"
	"github.com/akvideo/technikliste-backend/internal/logger"
	"github.com/akvideo/technikliste-backend/internal/middleware"
)

type RouterConfig struct {
	Log           *logger.Logger
	ExtraOrigins  []string
	HealthHandler *handlers.HealthHandler
	DeviceHandler *handlers.DeviceHandler
	ReportHandler *handlers.ReportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.ExtraOrigins))
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/devices", cfg.DeviceHandler.List)
		api.POST("/devices/search", cfg.DeviceHandler.Search)
		api.GET("/devices/overview", cfg.DeviceHandler.Overview)

		api.POST("/reports", cfg.ReportHandler.Build)
		api.GET("/reports/verify/:id", cfg.ReportHandler.Verify)
	}

	return router
}
