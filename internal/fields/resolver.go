// Package fields достаёт значения из сырых записей Мегаплана по
// спецификатору поля: либо JSON-путь с префиксом "$.", либо плоский
// ключ карты customFields.
package fields

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/crmcustoms/megaplan-expenses/models"
)

const pathPrefix = "$."

// Resolve возвращает значение поля записи по спецификатору.
//
// Для JSON-пути сегменты проходятся по порядку; nil или скаляр посреди
// пути сразу даёт пустую строку, без ошибки. Если путь привёл к объекту
// с членом value (денежные поля вида {value: ..., currency: ...}),
// извлекается именно value. Для плоского ключа значение берётся из
// customFields как есть, без разворачивания денежной обёртки.
func Resolve(record models.RawRecord, spec string) any {
	if spec == "" {
		return ""
	}

	if strings.HasPrefix(spec, pathPrefix) {
		var cur any = record
		for _, part := range strings.Split(strings.TrimPrefix(spec, pathPrefix), ".") {
			m, ok := cur.(map[string]any)
			if !ok {
				return ""
			}
			cur = m[part]
		}
		if m, ok := cur.(map[string]any); ok {
			if v, found := m["value"]; found {
				return v
			}
		}
		if isEmpty(cur) {
			return ""
		}
		return cur
	}

	cf, ok := record["customFields"].(map[string]any)
	if !ok {
		return ""
	}
	v := cf[spec]
	if isEmpty(v) {
		return ""
	}
	return v
}

// String возвращает значение поля в строковом виде.
func String(record models.RawRecord, spec string) string {
	return asString(Resolve(record, spec))
}

// Float возвращает значение поля как число. Пустые и нечисловые значения
// дают 0 — NaN наружу не выходит никогда.
func Float(record models.RawRecord, spec string) float64 {
	return asFloat(Resolve(record, spec))
}

// isEmpty повторяет понятие «пустоты» исходного конвейера: nil, false,
// нулевое число и пустая строка схлопываются в пустое значение.
func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case float64:
		return x == 0
	case int:
		return x == 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	default:
		return false
	}
}

func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// asFloat разбирает число по правилам parseFloat: берётся самый длинный
// числовой префикс строки, всё неразборчивое превращается в 0.
func asFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		return parsePrefixFloat(x)
	default:
		return 0
	}
}

func parsePrefixFloat(s string) float64 {
	s = strings.TrimSpace(s)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	end := 0
	seenDot := false
	for ; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			end = i + 1
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}
