package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"projecthub_backend/internal/handlers"
)

// RegisterRoutes wires the HTTP API.
func RegisterRoutes(
	ginRouter *gin.Engine,
	notificationHandler *handlers.NotificationHandler,
) {
	ginRouter.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		notificationHandler.RegisterRoutes(api)
	}
}
