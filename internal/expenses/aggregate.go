package expenses

import (
	"math"

	"github.com/crmcustoms/megaplan-expenses/config"
	"github.com/crmcustoms/megaplan-expenses/internal/fields"
	"github.com/crmcustoms/megaplan-expenses/models"
)

// Идентификаторы программ, у которых финальная стоимость живёт в полях
// своей категории.
const (
	ProgramLogistics      = "36"
	ProgramOtherSuppliers = "35"
)

// Total — итог отчёта: сумма финальной стоимости по всем расходам.
func Total(expenses []models.Expense) float64 {
	var total float64
	for _, exp := range expenses {
		total += exp.FinalCost
	}
	return total
}

// ProgramTotal считает итог для синхронизации: источник финальной
// стоимости выбирается по программе связанной сделки. Сделки с
// незнакомой программой в сумму не входят, учитываются только строго
// положительные значения.
func ProgramTotal(records []models.RawRecord, cfg config.Config) float64 {
	var total float64
	for _, rec := range records {
		var v float64
		switch fields.String(rec, "$.program.id") {
		case ProgramLogistics:
			v = fields.Float(rec, cfg.FieldLogisticsFinalCost)
		case ProgramOtherSuppliers:
			v = fields.Float(rec, cfg.FieldOtherSuppliersFinalCost)
		default:
			continue
		}
		if v > 0 {
			total += v
		}
	}
	return total
}

// Round2 округляет до копеек: половина уходит от нуля.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
