package export

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/divan/num2words"

	"github.com/crmcustoms/megaplan-expenses/models"
)

var tagRE = regexp.MustCompile(`<[^>]*>`)

// StripTags убирает разметку из форматированных описаний. Суть сделки в
// Мегаплане — rich-text, в отчёте нужен голый текст.
func StripTags(s string) string {
	return tagRE.ReplaceAllString(s, "")
}

// FormatNumber форматирует число по-русски: пробел между разрядами,
// запятая перед копейками, всегда два знака.
func FormatNumber(v float64) string {
	s := fmt.Sprintf("%.2f", math.Abs(v))
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(digit)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// statusBadgeColor подбирает цвет плашки статуса.
func statusBadgeColor(status string) string {
	if status == "" {
		return "#94A3B8"
	}
	lower := strings.ToLower(status)
	switch {
	case strings.Contains(lower, "оплачен") || strings.Contains(lower, "paid"):
		return "#10B981"
	case strings.Contains(lower, "ожида") || strings.Contains(lower, "pending"):
		return "#F59E0B"
	case strings.Contains(lower, "отмен") || strings.Contains(lower, "cancel"):
		return "#EF4444"
	}
	return "#94A3B8"
}

// totalInWords — итог прописью для подвала отчёта.
func totalInWords(total float64) string {
	rubles := int(total)
	kopecks := int(math.Round((total - float64(rubles)) * 100))
	return fmt.Sprintf("%s рублей %02d копеек", num2words.Convert(rubles), kopecks)
}

const reportCSS = `
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: Arial, sans-serif; color: #1E293B; background: #FFFFFF; padding: 20px; line-height: 1.6; }
    .container { max-width: 1200px; margin: 0 auto; }
    .header { margin-bottom: 32px; }
    .title { font-size: 24px; font-weight: 700; margin-bottom: 8px; color: #1E293B; }
    .subtitle { font-size: 14px; color: #64748B; margin-bottom: 16px; }
    .summary { display: grid; grid-template-columns: 1fr 1fr 1fr; gap: 16px; margin-bottom: 32px; }
    .summary-card { background: #F8FAFC; border: 1px solid #E2E8F0; border-radius: 8px; padding: 16px; }
    .summary-card-label { font-size: 11px; font-weight: 600; text-transform: uppercase; color: #64748B; margin-bottom: 8px; letter-spacing: 0.5px; }
    .summary-card-value { font-size: 20px; font-weight: 700; color: #1E293B; }
    .table-container { overflow-x: auto; margin-bottom: 32px; }
    table { width: 100%; border-collapse: collapse; background: #FFFFFF; }
    thead { background: #F1F5F9; border-bottom: 1px solid #E2E8F0; }
    th { padding: 12px; text-align: left; font-size: 11px; font-weight: 600; color: #64748B; text-transform: uppercase; letter-spacing: 0.6px; white-space: nowrap; border-right: 1px solid #E2E8F0; }
    th:last-child { border-right: none; }
    footer { font-size: 12px; color: #94A3B8; text-align: center; margin-top: 32px; padding-top: 16px; border-top: 1px solid #E2E8F0; }
    @media print { body { padding: 0; } .container { max-width: 100%; } }
`

var reportTableHeaders = []string{
	"deal_id",
	"Название сделки",
	"Суть",
	"Статус",
	"Статья расходов",
	"Бренд",
	"Контрагент",
	"Тип платежа",
	"Менеджер",
	"Создатель",
	"Сумма",
	"Доп.стоимость",
	"Финальная стоимость",
	"Справедливая стоимость",
}

// HTML собирает самодостаточный HTML-отчёт для конвертации в PDF: шапка,
// три карточки сводки, таблица расходов с итоговой строкой и подвал с
// суммой прописью. Всё подставляемое экранируется.
func HTML(dealName string, expenses []models.Expense, total float64) string {
	var rows strings.Builder
	for _, exp := range expenses {
		fmt.Fprintf(&rows, `      <tr style="border-bottom: 1px solid #E2E8F0;">
`)
		writeCell(&rows, exp.DealID, "left")
		writeCell(&rows, exp.DealName, "left")
		writeCell(&rows, StripTags(exp.Description), "left")
		fmt.Fprintf(&rows, `        <td style="padding: 10px; font-size: 12px; text-align: center; border-right: 1px solid #E2E8F0;"><span style="background-color: %s; color: #FFFFFF; padding: 4px 8px; border-radius: 4px; font-weight: 600; display: inline-block;">%s</span></td>
`, statusBadgeColor(exp.Status), html.EscapeString(exp.Status))
		writeCell(&rows, exp.Category, "left")
		writeCell(&rows, exp.Brand, "left")
		writeCell(&rows, exp.Contractor, "left")
		writeCell(&rows, exp.PaymentType, "left")
		writeCell(&rows, exp.Manager, "left")
		writeCell(&rows, exp.Creator, "left")
		writeCell(&rows, FormatNumber(exp.Amount)+" "+exp.Currency, "right")
		writeCell(&rows, FormatNumber(exp.AdditionalCost), "right")
		writeCell(&rows, FormatNumber(exp.FinalCost), "right")
		fmt.Fprintf(&rows, `        <td style="padding: 10px; font-size: 12px; text-align: right;">%s</td>
      </tr>
`, html.EscapeString(FormatNumber(exp.FairCost)))
	}

	average := total / math.Max(1, float64(len(expenses)))

	var headerCells strings.Builder
	for _, h := range reportTableHeaders {
		fmt.Fprintf(&headerCells, "          <th>%s</th>\n", html.EscapeString(h))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="ru">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Расходы - %[1]s</title>
  <style>%[2]s</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1 class="title">Расходы по проекту</h1>
      <div class="subtitle">"%[1]s"</div>
      <div class="subtitle">Дата отчета: %[3]s</div>
    </div>

    <div class="summary">
      <div class="summary-card">
        <div class="summary-card-label">Общая сумма</div>
        <div class="summary-card-value">₽%[4]s</div>
      </div>
      <div class="summary-card">
        <div class="summary-card-label">Записей</div>
        <div class="summary-card-value">%[5]d</div>
      </div>
      <div class="summary-card">
        <div class="summary-card-label">Средняя сумма</div>
        <div class="summary-card-value">₽%[6]s</div>
      </div>
    </div>

    <div class="table-container">
      <table>
        <thead>
          <tr>
%[7]s          </tr>
        </thead>
        <tbody>
%[8]s          <tr style="background-color: #F1F5F9; border-top: 2px solid #E2E8F0;">
            <td colspan="12" style="padding: 12px; font-size: 14px; text-align: right; font-weight: 700; border-right: 1px solid #E2E8F0;">ИТОГО:</td>
            <td style="padding: 12px; font-size: 14px; text-align: right; font-weight: 700; color: #3B82F6;">%[4]s</td>
            <td style="padding: 12px; font-size: 14px; text-align: right; font-weight: 700;"></td>
          </tr>
        </tbody>
      </table>
    </div>

    <footer>
      <p>Итого прописью: %[9]s</p>
      <p>Этот отчет был сгенерирован автоматически</p>
    </footer>
  </div>
</body>
</html>
`,
		html.EscapeString(dealName),
		reportCSS,
		time.Now().Format("02.01.2006"),
		FormatNumber(total),
		len(expenses),
		FormatNumber(average),
		headerCells.String(),
		rows.String(),
		html.EscapeString(totalInWords(total)),
	)
}

func writeCell(b *strings.Builder, value, align string) {
	fmt.Fprintf(b, `        <td style="padding: 10px; font-size: 12px; text-align: %s; border-right: 1px solid #E2E8F0;">%s</td>
`, align, html.EscapeString(value))
}
