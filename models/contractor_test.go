package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseContractor(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		wantKind ContractorKind
		wantText string
	}{
		{
			name:     "физлицо с именем и фамилией",
			raw:      map[string]any{"firstName": "Иван", "lastName": "Петров"},
			wantKind: ContractorPerson,
			wantText: "Иван Петров",
		},
		{
			name:     "физлицо только с фамилией",
			raw:      map[string]any{"lastName": "Петров"},
			wantKind: ContractorPerson,
			wantText: "Петров",
		},
		{
			name:     "организация",
			raw:      map[string]any{"name": "ООО Ромашка"},
			wantKind: ContractorOrganization,
			wantText: "ООО Ромашка",
		},
		{
			name:     "имя важнее name",
			raw:      map[string]any{"firstName": "Иван", "name": "ООО Ромашка"},
			wantKind: ContractorPerson,
			wantText: "Иван",
		},
		{
			name:     "пустой объект",
			raw:      map[string]any{},
			wantKind: ContractorUnknown,
			wantText: "",
		},
		{
			name:     "не объект",
			raw:      "просто строка",
			wantKind: ContractorUnknown,
			wantText: "",
		},
		{
			name:     "nil",
			raw:      nil,
			wantKind: ContractorUnknown,
			wantText: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ParseContractor(tt.raw)
			assert.Equal(t, tt.wantKind, c.Kind)
			assert.Equal(t, tt.wantText, c.DisplayName())
		})
	}
}
