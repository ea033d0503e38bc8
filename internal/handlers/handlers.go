// Package handlers — HTTP-обработчики сервиса расходов.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crmcustoms/megaplan-expenses/config"
	"github.com/crmcustoms/megaplan-expenses/internal/expenses"
	"github.com/crmcustoms/megaplan-expenses/internal/megaplan"
	"github.com/crmcustoms/megaplan-expenses/models"
)

// MegaplanAPI — операции Мегаплана, нужные обработчикам.
type MegaplanAPI interface {
	Deal(ctx context.Context, id string) (models.RawRecord, error)
	LinkedDeals(ctx context.Context, id string) ([]models.RawRecord, error)
	UpdateDealField(ctx context.Context, dealID, fieldName string, value float64) error
}

// PDFConverter — рендер HTML-документа в PDF.
type PDFConverter interface {
	ConvertHTML(ctx context.Context, html []byte) ([]byte, error)
}

// Handlers держит зависимости всех обработчиков. Конфигурация приходит
// снаружи один раз — внутри обработчиков окружение не читается.
type Handlers struct {
	cfg        config.Config
	api        MegaplanAPI
	pdf        PDFConverter
	normalizer *expenses.Normalizer
}

func New(cfg config.Config, api MegaplanAPI, pdf PDFConverter) *Handlers {
	return &Handlers{
		cfg:        cfg,
		api:        api,
		pdf:        pdf,
		normalizer: expenses.NewNormalizer(cfg),
	}
}

// requireDealID достаёт обязательный параметр dealId из строки запроса.
func requireDealID(c *gin.Context) (string, bool) {
	dealID := c.Query("dealId")
	if dealID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dealId parameter is required"})
		return "", false
	}
	return dealID, true
}

// upstreamError переводит ошибку похода в Мегаплан в HTTP-ответ:
// отсутствующая сделка — 404, всё остальное — 500 с текстом.
func (h *Handlers) upstreamError(c *gin.Context, err error) {
	if errors.Is(err, megaplan.ErrDealNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}
	slog.Error("ошибка запроса к Мегаплану", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "message": err.Error()})
}

// normalizeAll строит записи расходов по всем связанным сделкам.
func (h *Handlers) normalizeAll(deal models.RawRecord, linked []models.RawRecord) []models.Expense {
	list := make([]models.Expense, 0, len(linked))
	for _, rec := range linked {
		list = append(list, h.normalizer.Normalize(rec, deal))
	}
	return list
}
