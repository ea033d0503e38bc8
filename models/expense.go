package models

// RawRecord — сырой документ Мегаплана (сделка, задача). Набор атрибутов
// не фиксирован: до нужных полей добираются через спецификаторы полей,
// отсутствие любого поля — штатная ситуация, а не ошибка.
type RawRecord = map[string]any

// Expense — нормализованная строка расхода, построенная из связанной
// сделки и её головной сделки. Живёт в рамках одного запроса, никуда не
// сохраняется.
type Expense struct {
	DealID         string  `json:"deal_id"`
	Status         string  `json:"status"`
	Category       string  `json:"category"`
	Brand          string  `json:"brand"`
	Contractor     string  `json:"contractor"`
	PaymentType    string  `json:"paymentType"`
	Amount         float64 `json:"amount"`
	AdditionalCost float64 `json:"additionalCost"`
	FinalCost      float64 `json:"finalCost"`
	FairCost       float64 `json:"fairCost"`
	Currency       string  `json:"currency"`
	Description    string  `json:"description"`
	DealLink       string  `json:"dealLink"`
	Manager        string  `json:"manager"`
	Owner          string  `json:"owner"`
	Creator        string  `json:"creator"`
	DealName       string  `json:"deal_name"`
}
