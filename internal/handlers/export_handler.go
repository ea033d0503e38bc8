package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crmcustoms/megaplan-expenses/internal/expenses"
	"github.com/crmcustoms/megaplan-expenses/internal/export"
	"github.com/crmcustoms/megaplan-expenses/internal/fields"
)

// ExportCSVHandler отдаёт выгрузку расходов в CSV-файле.
func (h *Handlers) ExportCSVHandler(c *gin.Context) {
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

	content, err := export.CSV(list, total, fields.String(deal, "$.id"), fields.String(deal, "$.name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate CSV", "message": err.Error()})
		return
	}

	filename := fmt.Sprintf("expenses_%s_%s.csv", dealID, time.Now().Format("2006-01-02"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}

// ExportExcelHandler отдаёт ту же выгрузку книгой XLSX.
func (h *Handlers) ExportExcelHandler(c *gin.Context) {
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

	f, err := export.Excel(list, total, fields.String(deal, "$.id"), fields.String(deal, "$.name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate Excel file", "message": err.Error()})
		return
	}

	filename := fmt.Sprintf("expenses_%s_%s.xlsx", dealID, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}
