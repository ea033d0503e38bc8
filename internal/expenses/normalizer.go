// Package expenses строит нормализованные записи расходов из сырых
// сделок Мегаплана и считает по ним итоги.
package expenses

import (
	"fmt"

	"github.com/crmcustoms/megaplan-expenses/config"
	"github.com/crmcustoms/megaplan-expenses/internal/fields"
	"github.com/crmcustoms/megaplan-expenses/models"
)

// Normalizer превращает пару (связанная сделка, головная сделка) в
// каноничный Expense. Чистая функция от своих входов: повторный вызов на
// тех же записях даёт идентичный результат.
type Normalizer struct {
	account string
	cfg     config.Config
}

func NewNormalizer(cfg config.Config) *Normalizer {
	return &Normalizer{account: cfg.MegaplanAccount, cfg: cfg}
}

// Normalize собирает Expense из связанной сделки child с откатом части
// полей к головной сделке parent.
//
// Менеджер ищется по цепочке: свой manager → свой responsible → manager
// головной сделки → responsible головной сделки. Владелец: свой owner →
// свой createdBy. Порядок менять нельзя — записи нередко заполняют
// несколько из этих полей разными людьми.
func (n *Normalizer) Normalize(child, parent models.RawRecord) models.Expense {
	dealID := fields.String(child, "$.id")

	return models.Expense{
		DealID:         dealID,
		Status:         fields.String(child, n.cfg.FieldStatus),
		Category:       fields.String(child, n.cfg.FieldCategory),
		Brand:          fields.String(child, n.cfg.FieldBrand),
		Contractor:     models.ParseContractor(child["contractor"]).DisplayName(),
		PaymentType:    fields.String(child, n.cfg.FieldPaymentType),
		Amount:         fields.Float(child, n.cfg.FieldAmount),
		AdditionalCost: fields.Float(child, n.cfg.FieldAdditionalCost),
		FinalCost:      fields.Float(child, n.cfg.FieldFinalCost),
		FairCost:       fields.Float(child, n.cfg.FieldFairCost),
		Currency:       firstNonEmpty(fields.String(child, n.cfg.FieldCurrency), "RUB"),
		Description: firstNonEmpty(
			fields.String(child, "$.description"),
			fields.String(child, "$.name"),
		),
		DealLink: fmt.Sprintf("https://%s.megaplan.ru/deals/%s/card/", n.account, dealID),
		Manager: firstNonEmpty(
			fields.String(child, "$.manager.name"),
			fields.String(child, "$.responsible.name"),
			fields.String(parent, "$.manager.name"),
			fields.String(parent, "$.responsible.name"),
		),
		Owner: firstNonEmpty(
			fields.String(child, "$.owner.name"),
			fields.String(child, "$.createdBy.name"),
		),
		Creator: firstNonEmpty(
			fields.String(child, "$.createdBy.name"),
			fields.String(child, "$.created.by.name"),
		),
		DealName: fields.String(child, "$.name"),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
