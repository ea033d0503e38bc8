package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crmcustoms/megaplan-expenses/internal/expenses"
	"github.com/crmcustoms/megaplan-expenses/internal/fields"
)

// GetExpensesHandler возвращает расходы по сделке в JSON для страницы
// отчёта.
func (h *Handlers) GetExpensesHandler(c *gin.Context) {
	dealID, ok := requireDealID(c)
	if !ok {
		return
	}

	deal, linked, err := expenses.FetchDealExpenses(c.Request.Context(), h.api, dealID)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	list := h.normalizeAll(deal, linked)

	c.JSON(http.StatusOK, gin.H{
		"dealId":   fields.String(deal, "$.id"),
		"dealName": fields.String(deal, "$.name"),
		"expenses": list,
		"total":    expenses.Total(list),
	})
}
