package pricing

import (
	"encoding/json"
	"math"
)

// Total - сумма unit*multiplier, с НДС если vat задан и является конечным числом.
// Нечисловые unit или multiplier дают 0. Округление не выполняется.
func Total(unit, multiplier float64, vat ...float64) float64 {
	if !isFinite(unit) || !isFinite(multiplier) {
		return 0
	}

	base := unit * multiplier

	if len(vat) > 0 && isFinite(vat[0]) {
		return base * (1 + vat[0]/100)
	}

	return base
}

// TotalOf - то же, что Total, для значений без статического типа (например, из декодированного JSON).
// nil, строки, bool и прочие нечисловые значения считаются отсутствующими.
func TotalOf(unit, multiplier, vat any) float64 {
	u, ok := number(unit)
	if !ok {
		return 0
	}
	m, ok := number(multiplier)
	if !ok {
		return 0
	}

	if v, ok := number(vat); ok {
		return Total(u, m, v)
	}

	return Total(u, m)
}

func number(v any) (float64, bool) {
	var f float64

	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	return f, isFinite(f)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
