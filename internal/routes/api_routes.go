// Package routes — регистрация HTTP-маршрутов сервиса.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/crmcustoms/megaplan-expenses/internal/handlers"
)

// RegisterAPIRoutes вешает все маршруты сервиса на движок gin.
func RegisterAPIRoutes(r *gin.Engine, h *handlers.Handlers) {
	api := r.Group("/api")
	{
		api.GET("/health", h.HealthHandler)

		api.GET("/expenses", h.GetExpensesHandler)
		api.GET("/export", h.ExportCSVHandler)
		api.GET("/export/xlsx", h.ExportExcelHandler)
		api.GET("/pdf", h.ExportPDFHandler)

		api.GET("/sync", h.SyncExpensesHandler)
		api.POST("/update-field", h.UpdateFieldHandler)
	}
}
