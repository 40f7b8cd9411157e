package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ResolutionObserver recibe la regla que produjo cada precio ("RETAIL" si ninguna). Puede ser nil.
type ResolutionObserver interface {
	ObserveResolution(tier string)
}

// PriceListPDFGenerator genera la tarifa en PDF de un cliente aprobado.
type PriceListPDFGenerator interface {
	GeneratePriceList(ctx context.Context, doc PriceListDocument) ([]byte, error)
}

// PriceListDocument datos ya resueltos que se imprimen en la tarifa.
type PriceListDocument struct {
	CompanyName string
	CountryCode string
	TaxID       string
	Region      string
	Currency    string
	DisplayMode string
	VATRate     decimal.Decimal
	GeneratedAt time.Time
	Lines       []PriceListLine
}

// PriceListLine una fila de la tarifa.
type PriceListLine struct {
	SKU          string
	Name         string
	Amount       int64
	GrossAmount  int64
	IsOverridden bool
	Tier         string
}
