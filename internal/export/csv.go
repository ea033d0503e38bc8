// Package export рендерит список расходов в выгружаемые форматы:
// CSV, XLSX и HTML-документ для конвертации в PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/crmcustoms/megaplan-expenses/models"
)

// Заголовки колонок выгрузки. Порядок зафиксирован — под него свёрстаны
// импортирующие таблицы на стороне заказчика.
var reportHeaders = []string{
	"deal_id",
	"Статус",
	"Статья расходов",
	"Бренд",
	"Контрагент",
	"Тип платежа",
	"Менеджер",
	"Сумма",
	"Доп.стоимость",
	"Финальная стоимость",
	"Справедливая стоимость",
	"Суть",
	"Ссылка на сделку",
	"Создатель",
	"Валюта",
	"deal_name",
}

// Индексы колонок итоговой строки.
const (
	totalLabelColumn = 7 // «Сумма»
	totalValueColumn = 9 // «Финальная стоимость» — то, что суммируется
)

// CSV собирает файл выгрузки: маркер UTF-8 (без него Excel ломает
// кириллицу), строка заголовков, по строке на расход и итоговая строка.
// В колонки deal_id и deal_name исторически выгружается головная сделка,
// а не связанная.
func CSV(expenses []models.Expense, total float64, parentDealID, parentDealName string) ([]byte, error) {
	b := &bytes.Buffer{}
	b.Write([]byte{0xEF, 0xBB, 0xBF}) // BOM for UTF-8

	w := csv.NewWriter(b)

	if err := w.Write(reportHeaders); err != nil {
		return nil, fmt.Errorf("запись заголовка CSV: %w", err)
	}

	for _, exp := range expenses {
		record := []string{
			parentDealID,
			exp.Status,
			exp.Category,
			exp.Brand,
			exp.Contractor,
			exp.PaymentType,
			exp.Manager,
			fmt.Sprintf("%.2f", exp.Amount),
			fmt.Sprintf("%.2f", exp.AdditionalCost),
			fmt.Sprintf("%.2f", exp.FinalCost),
			fmt.Sprintf("%.2f", exp.FairCost),
			exp.Description,
			exp.DealLink,
			exp.Creator,
			exp.Currency,
			parentDealName,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("запись строки CSV: %w", err)
		}
	}

	totalRow := make([]string, len(reportHeaders))
	totalRow[totalLabelColumn] = "ИТОГО:"
	totalRow[totalValueColumn] = fmt.Sprintf("%.2f", total)
	if err := w.Write(totalRow); err != nil {
		return nil, fmt.Errorf("запись итоговой строки CSV: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("запись CSV: %w", err)
	}
	return b.Bytes(), nil
}
