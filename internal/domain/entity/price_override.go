package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OverrideScope alcance de una regla de precio.
type OverrideScope string

const (
	ScopeCustomer OverrideScope = "CUSTOMER"
	ScopeRegional OverrideScope = "REGIONAL"
)

// PriceOverride excepción de precio definida por el staff para un producto.
// CustomerID solo se informa cuando Scope == ScopeCustomer.
// Existe como máximo una regla por (ProductID, Scope, CustomerID).
// Los montos fijos están en subunidades; los descuentos son porcentajes (0, 100].
type PriceOverride struct {
	ID            string
	ProductID     string
	Scope         OverrideScope
	CustomerID    string
	FixedPricePL  *int64
	FixedPriceEU  *int64
	DiscountPctPL *decimal.Decimal
	DiscountPctEU *decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FixedPriceFor devuelve el precio fijo para la moneda de la región, si existe y es positivo.
func (o *PriceOverride) FixedPriceFor(region Region) (int64, bool) {
	p := o.FixedPricePL
	if region == RegionEU {
		p = o.FixedPriceEU
	}
	if p == nil || *p <= 0 {
		return 0, false
	}
	return *p, true
}

// MaxDiscountPct tope de un descuento porcentual.
var MaxDiscountPct = decimal.NewFromInt(100)

// DiscountFor devuelve el porcentaje de descuento para la región, si existe y está en (0, 100].
func (o *PriceOverride) DiscountFor(region Region) (decimal.Decimal, bool) {
	d := o.DiscountPctPL
	if region == RegionEU {
		d = o.DiscountPctEU
	}
	if d == nil || !d.IsPositive() || d.GreaterThan(MaxDiscountPct) {
		return decimal.Zero, false
	}
	return *d, true
}
