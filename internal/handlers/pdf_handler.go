package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crmcustoms/megaplan-expenses/internal/expenses"
	"github.com/crmcustoms/megaplan-expenses/internal/export"
	"github.com/crmcustoms/megaplan-expenses/internal/fields"
	"github.com/crmcustoms/megaplan-expenses/internal/gotenberg"
)

// ExportPDFHandler собирает HTML-отчёт и конвертирует его в PDF через
// Gotenberg. Недоступность конвертера — отдельный 503, а не общий 500.
func (h *Handlers) ExportPDFHandler(c *gin.Context) {
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
	total := expenses.Total(list)

	htmlDoc := export.HTML(fields.String(deal, "$.name"), list, total)

	pdfBytes, err := h.pdf.ConvertHTML(c.Request.Context(), []byte(htmlDoc))
	if err != nil {
		if errors.Is(err, gotenberg.ErrServiceUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "PDF service unavailable. Please check if Gotenberg is running."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка генерации PDF", "message": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="expenses_%s.pdf"`, dealID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
