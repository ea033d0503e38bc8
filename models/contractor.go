package models

import "strings"

// ContractorKind — вид контрагента. Мегаплан отдаёт контрагента
// полиморфно: у физлица заполнены firstName/lastName, у организации —
// только name. Форма определяется один раз при разборе записи.
type ContractorKind int

const (
	ContractorUnknown ContractorKind = iota
	ContractorPerson
	ContractorOrganization
)

// Contractor — контрагент связанной сделки.
type Contractor struct {
	Kind      ContractorKind
	FirstName string
	LastName  string
	Name      string
}

// ParseContractor разбирает сырое значение поля contractor. Наличие
// имени или фамилии имеет приоритет над name: так различаются
// ContractorHuman и ContractorCompany в ответе API.
func ParseContractor(v any) Contractor {
	m, ok := v.(map[string]any)
	if !ok {
		return Contractor{}
	}

	first, _ := m["firstName"].(string)
	last, _ := m["lastName"].(string)
	if first != "" || last != "" {
		return Contractor{Kind: ContractorPerson, FirstName: first, LastName: last}
	}

	if name, _ := m["name"].(string); name != "" {
		return Contractor{Kind: ContractorOrganization, Name: name}
	}

	return Contractor{}
}

// DisplayName возвращает отображаемое имя контрагента.
func (c Contractor) DisplayName() string {
	switch c.Kind {
	case ContractorPerson:
		return strings.TrimSpace(c.FirstName + " " + c.LastName)
	case ContractorOrganization:
		return c.Name
	default:
		return ""
	}
}
