package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ApplyDiscount aplica un porcentaje a un monto en subunidades y redondea a la subunidad
// más cercana (mitad hacia arriba). Ej: 10000 con 15% → 8500.
func ApplyDiscount(base int64, pct decimal.Decimal) int64 {
	factor := hundred.Sub(pct)
	out := decimal.NewFromInt(base).Mul(factor).Div(hundred).Round(0).IntPart()
	if out < 0 {
		return 0
	}
	return out
}

// AddVAT devuelve el bruto de un neto: round(net × (1 + rate)).
func AddVAT(net int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(net).Mul(decimal.NewFromInt(1).Add(rate)).Round(0).IntPart()
}

// NetFromGross devuelve el neto de un bruto con IVA incluido: round(gross / (1 + rate)).
// Ej: 12300 al 23% → 10000.
func NetFromGross(gross int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(gross).Div(decimal.NewFromInt(1).Add(rate)).Round(0).IntPart()
}
