package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vending-controller/internal/api_gateway/handler"
	"github.com/vending-controller/internal/api_gateway/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	machineHandler *handler.MachineHandler,
	journalHandler *handler.JournalHandler,
) {
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	v1 := r.Group("/api/v1")
	{
		machines := v1.Group("/machines/:id")
		{
			machines.GET("", machineHandler.GetStatus)
			machines.POST("/products", machineHandler.LoadProduct)
			machines.POST("/coins", machineHandler.InsertCoin)
			machines.POST("/selection", machineHandler.SelectProduct)
			machines.POST("/refund", machineHandler.Refund)
			machines.GET("/journal", journalHandler.GetByMachineID)
		}

		v1.GET("/journal/:event_id", journalHandler.GetByEventID)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
