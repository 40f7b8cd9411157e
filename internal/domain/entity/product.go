package entity

import "time"

// Currency moneda soportada por la tienda.
type Currency string

const (
	CurrencyPLN Currency = "PLN"
	CurrencyEUR Currency = "EUR"
)

// Product proyección de catálogo necesaria para precios.
// PricePL y PriceEU son precios de venta al público con IVA incluido, en la subunidad
// de la moneda (grosze / céntimos de euro).
type Product struct {
	ID        string
	SKU       string
	Name      string
	PricePL   int64
	PriceEU   int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
