package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-b2b-api/internal/domain"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
)

// RetailPrice precio de venta al público. Gross es el precio almacenado (IVA incluido);
// Net se deriva para mostrarlo junto al bruto.
type RetailPrice struct {
	Gross       int64
	Net         int64
	Currency    entity.Currency
	DisplayMode DisplayMode
}

// Retail calcula la presentación pública de un precio bruto. No consulta reglas de precio.
func Retail(gross int64, currency entity.Currency, vatRate decimal.Decimal) (*RetailPrice, error) {
	if gross <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidBasePrice, gross)
	}
	return &RetailPrice{
		Gross:       gross,
		Net:         NetFromGross(gross, vatRate),
		Currency:    currency,
		DisplayMode: DisplayGrossRetail,
	}, nil
}

// Retail presentación pública con el IVA configurado en el resolvedor.
func (r *Resolver) Retail(base BasePrices, currency entity.Currency) (*RetailPrice, error) {
	gross := base.AmountPL
	if currency == entity.CurrencyEUR {
		gross = base.AmountEU
	}
	return Retail(gross, currency, r.vatRate)
}
