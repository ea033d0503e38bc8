package expenses

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/crmcustoms/megaplan-expenses/internal/fields"
	"github.com/crmcustoms/megaplan-expenses/models"
)

// DealFetcher — часть клиента Мегаплана, нужная для сбора отчёта.
type DealFetcher interface {
	Deal(ctx context.Context, id string) (models.RawRecord, error)
	LinkedDeals(ctx context.Context, id string) ([]models.RawRecord, error)
}

// FetchDealExpenses собирает головную сделку и полные записи всех её
// связанных сделок.
//
// Сначала головная сделка, затем список связанных, затем параллельная
// дозагрузка полной записи каждой связанной сделки (в кратком списке нет
// кастомных полей). Ошибка на первых двух шагах фатальна для запроса;
// неудача по одной связанной сделке лишь выкидывает её из результата,
// остальные доезжают. Порядок результата повторяет порядок списка.
func FetchDealExpenses(ctx context.Context, api DealFetcher, dealID string) (models.RawRecord, []models.RawRecord, error) {
	deal, err := api.Deal(ctx, dealID)
	if err != nil {
		return nil, nil, err
	}

	summaries, err := api.LinkedDeals(ctx, dealID)
	if err != nil {
		return nil, nil, err
	}

	full := make([]models.RawRecord, len(summaries))
	g, gctx := errgroup.WithContext(ctx)
	for i, summary := range summaries {
		i := i
		id := fields.String(summary, "$.id")
		if id == "" {
			continue
		}
		g.Go(func() error {
			rec, err := api.Deal(gctx, id)
			if err != nil {
				slog.Warn("не удалось получить связанную сделку, пропускаем", "dealId", id, "error", err)
				return nil
			}
			full[i] = rec
			return nil
		})
	}
	_ = g.Wait() // ошибки подсделок проглочены выше

	linked := make([]models.RawRecord, 0, len(full))
	for _, rec := range full {
		if rec != nil {
			linked = append(linked, rec)
		}
	}

	return deal, linked, nil
}
