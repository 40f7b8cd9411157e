// Package pricing resuelve el precio B2B que se muestra y se cobra a un cliente empresa.
// Es lógica pura: recibe el cliente, los precios base y las reglas ya cargadas.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-b2b-api/internal/domain"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
)

// DisplayMode tratamiento de IVA con el que se presenta el precio.
type DisplayMode string

const (
	// DisplayNetReverseCharge cliente UE transfronterizo: neto, sin línea de IVA (inversión del sujeto pasivo).
	DisplayNetReverseCharge DisplayMode = "NET_REVERSE_CHARGE"
	// DisplayNetDomesticVAT cliente nacional: se cobra el neto y el bruto con IVA se muestra aparte.
	DisplayNetDomesticVAT DisplayMode = "NET_DOMESTIC_VAT"
	// DisplayGrossRetail venta al público: precio almacenado con IVA incluido.
	DisplayGrossRetail DisplayMode = "GROSS_RETAIL"
)

// Tier regla de la cadena de precedencia que produjo el precio.
type Tier string

const (
	TierCustomerFixed    Tier = "CUSTOMER_FIXED"
	TierRegionalFixed    Tier = "REGIONAL_FIXED"
	TierCustomerDiscount Tier = "CUSTOMER_DISCOUNT"
	TierRegionalDiscount Tier = "REGIONAL_DISCOUNT"
)

// BasePrices precios de venta al público del producto en ambas monedas (subunidades, IVA incluido).
type BasePrices struct {
	AmountPL int64
	AmountEU int64
}

// ForRegion devuelve el precio base de la moneda de la región.
func (b BasePrices) ForRegion(region entity.Region) int64 {
	if region == entity.RegionEU {
		return b.AmountEU
	}
	return b.AmountPL
}

func (b BasePrices) validate() error {
	if b.AmountPL <= 0 || b.AmountEU <= 0 {
		return fmt.Errorf("%w: PL=%d EU=%d", domain.ErrInvalidBasePrice, b.AmountPL, b.AmountEU)
	}
	return nil
}

// ResolvedPrice precio a mostrar y cobrar. No se persiste.
// Amount es el valor transaccional; GrossAmount es solo informativo (nacional: neto + IVA).
type ResolvedPrice struct {
	Amount       int64
	Currency     entity.Currency
	IsOverridden bool
	DisplayMode  DisplayMode
	Tier         Tier
	GrossAmount  int64
}

// candidates reglas aplicables a un producto para un cliente, una por alcance.
type candidates struct {
	customer *entity.PriceOverride
	regional *entity.PriceOverride
}

// tier par (nombre, productor) de la cadena de precedencia.
type tier struct {
	name  Tier
	price func(c candidates, region entity.Region, base int64) (int64, bool)
}

// precedence orden estricto de evaluación; la primera regla que produce precio gana.
// Una nueva regla se añade insertando una entrada en la posición que le corresponde.
var precedence = []tier{
	{TierCustomerFixed, func(c candidates, region entity.Region, _ int64) (int64, bool) {
		return fixed(c.customer, region)
	}},
	{TierRegionalFixed, func(c candidates, region entity.Region, _ int64) (int64, bool) {
		return fixed(c.regional, region)
	}},
	{TierCustomerDiscount, func(c candidates, region entity.Region, base int64) (int64, bool) {
		return discounted(c.customer, region, base)
	}},
	{TierRegionalDiscount, func(c candidates, region entity.Region, base int64) (int64, bool) {
		return discounted(c.regional, region, base)
	}},
}

func fixed(o *entity.PriceOverride, region entity.Region) (int64, bool) {
	if o == nil {
		return 0, false
	}
	return o.FixedPriceFor(region)
}

func discounted(o *entity.PriceOverride, region entity.Region, base int64) (int64, bool) {
	if o == nil {
		return 0, false
	}
	pct, ok := o.DiscountFor(region)
	if !ok {
		return 0, false
	}
	return ApplyDiscount(base, pct), true
}

// Resolver aplica la cadena de precedencia y las reglas de presentación de IVA.
type Resolver struct {
	vatRate decimal.Decimal
}

// NewResolver construye el resolvedor con el tipo de IVA nacional (ej: 0.23).
func NewResolver(vatRate decimal.Decimal) *Resolver {
	return &Resolver{vatRate: vatRate}
}

// VATRate tipo de IVA configurado.
func (r *Resolver) VATRate() decimal.Decimal { return r.vatRate }

// Resolve devuelve el precio del producto para el cliente, o nil si el cliente no está
// aprobado o no tiene reglas aplicables (el caller usa entonces el precio de venta al público).
// overrides es el conjunto ya cargado visible para el cliente; el resolvedor ignora las reglas de
// otros productos y las reglas CUSTOMER de otros clientes.
func (r *Resolver) Resolve(
	customer *entity.BusinessCustomer,
	productID string,
	base BasePrices,
	overrides []*entity.PriceOverride,
) (*ResolvedPrice, error) {
	if err := base.validate(); err != nil {
		return nil, err
	}
	if !customer.IsApproved() {
		return nil, nil
	}
	if customer.Region != entity.RegionPoland && customer.Region != entity.RegionEU {
		return nil, fmt.Errorf("%w: región de cliente desconocida %q", domain.ErrInvalidInput, customer.Region)
	}

	c := selectCandidates(customer.ID, productID, overrides)
	regionBase := base.ForRegion(customer.Region)
	for _, t := range precedence {
		amount, ok := t.price(c, customer.Region, regionBase)
		if !ok {
			continue
		}
		return r.present(customer.Region, amount, t.name), nil
	}
	return nil, nil
}

func selectCandidates(customerID, productID string, overrides []*entity.PriceOverride) candidates {
	var c candidates
	for _, o := range overrides {
		if o == nil || o.ProductID != productID {
			continue
		}
		switch o.Scope {
		case entity.ScopeCustomer:
			if o.CustomerID == customerID && c.customer == nil {
				c.customer = o
			}
		case entity.ScopeRegional:
			if c.regional == nil {
				c.regional = o
			}
		}
	}
	return c
}

// present fija moneda y modo de presentación según la región, independientemente de la regla aplicada.
func (r *Resolver) present(region entity.Region, amount int64, t Tier) *ResolvedPrice {
	out := &ResolvedPrice{
		Amount:       amount,
		Currency:     region.Currency(),
		IsOverridden: true,
		Tier:         t,
	}
	if region == entity.RegionEU {
		out.DisplayMode = DisplayNetReverseCharge
		out.GrossAmount = amount
		return out
	}
	out.DisplayMode = DisplayNetDomesticVAT
	out.GrossAmount = AddVAT(amount, r.vatRate)
	return out
}
