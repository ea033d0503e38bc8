package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crmcustoms/megaplan-expenses/internal/expenses"
)

type updateFieldInput struct {
	DealID     string   `json:"dealId" binding:"required"`
	FieldValue *float64 `json:"fieldValue" binding:"required"`
}

// UpdateFieldHandler записывает присланное значение в поле «Расходы
// Сумма Итого» головной сделки. Ошибка записи некритична для клиента и
// отдаётся как success=false с кодом 200.
func (h *Handlers) UpdateFieldHandler(c *gin.Context) {
	var input updateFieldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters: dealId, fieldValue"})
		return
	}

	value := expenses.Round2(*input.FieldValue)

	if err := h.api.UpdateDealField(c.Request.Context(), input.DealID, h.cfg.FieldExpensesTotal, value); err != nil {
		slog.Warn("не удалось обновить поле сделки", "dealId", input.DealID, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   err.Error(),
			"note":    "Field update failed but request continues",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"dealId":     input.DealID,
		"fieldValue": value,
		"message":    "Deal field updated successfully",
	})
}
