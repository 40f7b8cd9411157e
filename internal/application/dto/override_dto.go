package dto

import "github.com/shopspring/decimal"

// UpsertOverrideRequest body para PUT /api/admin/overrides.
// Los precios fijos van en subunidades; los descuentos en porcentaje (0, 100].
type UpsertOverrideRequest struct {
	ProductID     string           `json:"product_id"`
	Scope         string           `json:"scope"` // CUSTOMER | REGIONAL
	CustomerID    string           `json:"customer_id,omitempty"`
	FixedPricePL  *int64           `json:"fixed_price_pl,omitempty"`
	FixedPriceEU  *int64           `json:"fixed_price_eu,omitempty"`
	DiscountPctPL *decimal.Decimal `json:"discount_pct_pl,omitempty"`
	DiscountPctEU *decimal.Decimal `json:"discount_pct_eu,omitempty"`
}

// OverrideResponse regla de precio en respuestas.
type OverrideResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	Scope         string           `json:"scope"`
	CustomerID    string           `json:"customer_id,omitempty"`
	FixedPricePL  *int64           `json:"fixed_price_pl,omitempty"`
	FixedPriceEU  *int64           `json:"fixed_price_eu,omitempty"`
	DiscountPctPL *decimal.Decimal `json:"discount_pct_pl,omitempty"`
	DiscountPctEU *decimal.Decimal `json:"discount_pct_eu,omitempty"`
	UpdatedAt     string           `json:"updated_at"`
}
