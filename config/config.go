package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config — вся конфигурация сервиса. Читается из окружения один раз при
// старте процесса и передаётся в конструкторы явно: внутри бизнес-логики
// обращений к os.Getenv быть не должно.
type Config struct {
	Port string `envconfig:"PORT" default:"3000"`

	// Доступ к Мегаплану. Нужен либо bearer-токен, либо пара логин/пароль.
	MegaplanAccount string `envconfig:"MEGAPLAN_ACCOUNT" default:"likhtman"`
	MegaplanAPIURL  string `envconfig:"MEGAPLAN_API_URL"`
	BearerToken     string `envconfig:"MEGAPLAN_BEARER_TOKEN"`
	Login           string `envconfig:"MEGAPLAN_LOGIN"`
	Password        string `envconfig:"MEGAPLAN_PASSWORD"`

	GotenbergURL string `envconfig:"GOTENBERG_URL" default:"http://localhost:3001"`

	// Идентификаторы кастомных полей сделки-расхода. Значением может быть
	// как плоский ID поля, так и JSON-путь вида "$.path.to.field".
	FieldStatus         string `envconfig:"FIELD_STATUS" default:"1001"`
	FieldCategory       string `envconfig:"FIELD_CATEGORY" default:"1002"`
	FieldBrand          string `envconfig:"FIELD_BRAND" default:"1003"`
	FieldContractor     string `envconfig:"FIELD_CONTRACTOR" default:"1004"`
	FieldPaymentType    string `envconfig:"FIELD_PAYMENT_TYPE" default:"1005"`
	FieldAmount         string `envconfig:"FIELD_AMOUNT" default:"1006"`
	FieldAdditionalCost string `envconfig:"FIELD_ADDITIONAL_COST" default:"1007"`
	FieldFinalCost      string `envconfig:"FIELD_FINAL_COST" default:"1008"`
	FieldFairCost       string `envconfig:"FIELD_FAIR_COST" default:"1009"`
	FieldCurrency       string `envconfig:"FIELD_CURRENCY" default:"1010"`

	// Поле «Расходы Сумма Итого» в головной сделке, куда пишется итог.
	FieldExpensesTotal string `envconfig:"FIELD_EXPENSES_TOTAL" default:"Category1000061CustomFieldRashodiSummaItogo"`

	// Пути к финальной стоимости для программ «Логистика» и «Прочие
	// поставщики»: в этих программах поле живёт в своей категории.
	FieldLogisticsFinalCost      string `envconfig:"FIELD_LOGISTICS_FINAL_COST" default:"$.Category1000084CustomFieldFinalnayaStoimost.valueInMain"`
	FieldOtherSuppliersFinalCost string `envconfig:"FIELD_OTHER_SUPPLIERS_FINAL_COST" default:"$.Category1000083CustomFieldFinalnayaStoimost.valueInMain"`
}

// Load читает конфигурацию из переменных окружения и проверяет, что
// учётные данные Мегаплана заданы, до каких-либо сетевых вызовов.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	if cfg.MegaplanAPIURL == "" {
		cfg.MegaplanAPIURL = fmt.Sprintf("https://%s.megaplan.ru/api/v3", cfg.MegaplanAccount)
	}

	if cfg.BearerToken == "" && (cfg.Login == "" || cfg.Password == "") {
		return Config{}, errors.New("не заданы учётные данные Мегаплана: нужен MEGAPLAN_BEARER_TOKEN либо пара MEGAPLAN_LOGIN/MEGAPLAN_PASSWORD")
	}

	return cfg, nil
}
