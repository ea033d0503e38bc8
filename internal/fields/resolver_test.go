package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crmcustoms/megaplan-expenses/models"
)

func TestResolvePath(t *testing.T) {
	record := models.RawRecord{
		"id":   "1234",
		"name": "Закупка стекла",
		"manager": map[string]any{
			"name": "Иван Петров",
		},
		"Category1000084CustomFieldFinalnayaStoimost": map[string]any{
			"valueInMain": 1500.5,
			"currency":    "RUB",
		},
		"budget": map[string]any{
			"value":    250000.0,
			"currency": "RUB",
		},
		"archived": false,
	}

	tests := []struct {
		name string
		spec string
		want any
	}{
		{"скаляр по пути", "$.id", "1234"},
		{"вложенный объект", "$.manager.name", "Иван Петров"},
		{"путь сквозь категорию", "$.Category1000084CustomFieldFinalnayaStoimost.valueInMain", 1500.5},
		{"денежная обёртка разворачивается", "$.budget", 250000.0},
		{"отсутствующий сегмент", "$.manager.phone", ""},
		{"отсутствующая ветка целиком", "$.owner.name", ""},
		{"скаляр посреди пути", "$.id.nested.deeper", ""},
		{"false схлопывается в пустоту", "$.archived", ""},
		{"пустой спецификатор", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(record, tt.spec))
		})
	}
}

func TestResolveCustomField(t *testing.T) {
	record := models.RawRecord{
		"customFields": map[string]any{
			"1001": "Оплачен",
			"1006": 1200.0,
			"1009": nil,
			"1010": "",
		},
	}

	assert.Equal(t, "Оплачен", Resolve(record, "1001"))
	assert.Equal(t, 1200.0, Resolve(record, "1006"))
	assert.Equal(t, "", Resolve(record, "1009"))
	assert.Equal(t, "", Resolve(record, "1010"))
	assert.Equal(t, "", Resolve(record, "9999"))

	// Для скаляров плоский ключ и путь через customFields эквивалентны.
	assert.Equal(t, Resolve(record, "1001"), Resolve(record, "$.customFields.1001"))
	assert.Equal(t, Resolve(record, "1006"), Resolve(record, "$.customFields.1006"))

	// Запись вообще без карты customFields.
	assert.Equal(t, "", Resolve(models.RawRecord{"id": "1"}, "1001"))
}

func TestResolveFlatKeyDoesNotUnwrap(t *testing.T) {
	// Денежная обёртка разворачивается только при доступе по JSON-пути.
	record := models.RawRecord{
		"customFields": map[string]any{
			"1006": map[string]any{"value": 500.0, "currency": "RUB"},
		},
	}

	got, ok := Resolve(record, "1006").(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, 500.0, got["value"])
}

func TestString(t *testing.T) {
	record := models.RawRecord{
		"id":     "42",
		"amount": 12.5,
	}

	assert.Equal(t, "42", String(record, "$.id"))
	assert.Equal(t, "12.5", String(record, "$.amount"))
	assert.Equal(t, "", String(record, "$.missing"))
}

func TestFloat(t *testing.T) {
	record := models.RawRecord{
		"customFields": map[string]any{
			"amount":  "12.5",
			"garbage": "примерно 100",
			"suffix":  "12.5 руб.",
		},
		"exact": 7.25,
	}

	assert.Equal(t, 7.25, Float(record, "$.exact"))
	assert.Equal(t, 12.5, Float(record, "amount"))
	assert.Equal(t, 12.5, Float(record, "suffix"))
	assert.Equal(t, 0.0, Float(record, "garbage"))
	assert.Equal(t, 0.0, Float(record, "$.missing"))
}

func TestParsePrefixFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{"12.5abc", 12.5},
		{"  -3.75  ", -3.75},
		{"+8", 8},
		{"12,5", 12}, // запятая не разделитель, берётся целый префикс
		{"1.2.3", 1.2},
		{"", 0},
		{"abc", 0},
		{"-", 0},
		{".", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePrefixFloat(tt.in))
		})
	}
}
