package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crmcustoms/megaplan-expenses/internal/expenses"
	"github.com/crmcustoms/megaplan-expenses/internal/fields"
)

// SyncExpensesHandler пересчитывает итог расходов с учётом программы
// каждой связанной сделки и записывает его в поле головной сделки.
//
// Неудавшаяся запись не валит запрос: итог уже посчитан, клиент получает
// его с updated=false.
func (h *Handlers) SyncExpensesHandler(c *gin.Context) {
	dealID, ok := requireDealID(c)
	if !ok {
		return
	}

	deal, linked, err := expenses.FetchDealExpenses(c.Request.Context(), h.api, dealID)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	dealName := fields.String(deal, "$.name")

	if len(linked) == 0 {
		// Записывать нечего — до обновления сделки дело не доходит.
		c.JSON(http.StatusOK, gin.H{
			"dealId":        dealID,
			"dealName":      dealName,
			"expensesCount": 0,
			"totalAmount":   0,
			"message":       "No linked expenses found",
			"updated":       false,
		})
		return
	}

	total := expenses.Round2(expenses.ProgramTotal(linked, h.cfg))

	if err := h.api.UpdateDealField(c.Request.Context(), dealID, h.cfg.FieldExpensesTotal, total); err != nil {
		slog.Warn("итог посчитан, но записать его в сделку не удалось", "dealId", dealID, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"dealId":        dealID,
			"dealName":      dealName,
			"expensesCount": len(linked),
			"totalAmount":   total,
			"updated":       false,
			"message":       "Calculated but failed to update: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dealId":        dealID,
		"dealName":      dealName,
		"expensesCount": len(linked),
		"totalAmount":   total,
		"updated":       true,
		"message":       "Expenses synced successfully",
	})
}
