// Package pricing cotiza precios de catálogo: carga cliente, producto y reglas visibles,
// delega la resolución en el dominio y recurre al precio de venta al público si no hay regla.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tienda-b2b-api/internal/application/dto"
	"github.com/jhoicas/tienda-b2b-api/internal/domain"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
	domainpricing "github.com/jhoicas/tienda-b2b-api/internal/domain/pricing"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/repository"
	"github.com/jhoicas/tienda-b2b-api/pkg/logger"
)

// TierRetail etiqueta de métricas cuando no aplica ninguna regla.
const TierRetail = "RETAIL"

// maxPriceListProducts tope de productos impresos en una tarifa PDF.
const maxPriceListProducts = 1000

// UseCase casos de uso de consulta de precios.
type UseCase struct {
	products       repository.ProductRepository
	customers      repository.BusinessCustomerRepository
	overrides      repository.PriceOverrideRepository
	resolver       *domainpricing.Resolver
	retailCurrency entity.Currency
	observer       ResolutionObserver
	pdf            PriceListPDFGenerator
	log            *logger.Logger
	now            func() time.Time
}

// Deps dependencias del caso de uso. Observer, PDF y Log son opcionales.
type Deps struct {
	Products       repository.ProductRepository
	Customers      repository.BusinessCustomerRepository
	Overrides      repository.PriceOverrideRepository
	Resolver       *domainpricing.Resolver
	RetailCurrency entity.Currency
	Observer       ResolutionObserver
	PDF            PriceListPDFGenerator
	Log            *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	retail := d.RetailCurrency
	if retail != entity.CurrencyEUR {
		retail = entity.CurrencyPLN
	}
	return &UseCase{
		products:       d.Products,
		customers:      d.Customers,
		overrides:      d.Overrides,
		resolver:       d.Resolver,
		retailCurrency: retail,
		observer:       d.Observer,
		pdf:            d.PDF,
		log:            log.Component("pricing"),
		now:            time.Now,
	}
}

// QuotePrice precio de un producto. customerID vacío = visitante anónimo.
func (uc *UseCase) QuotePrice(ctx context.Context, customerID, productID string, q dto.PriceQuery) (*dto.PriceResponse, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.loadCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	visible, err := uc.visibleOverrides(ctx, customer, []string{product.ID})
	if err != nil {
		return nil, err
	}
	return uc.quote(customer, product, visible, q)
}

// QuotePriceList precios de una página del catálogo activo, con una sola carga de reglas.
func (uc *UseCase) QuotePriceList(ctx context.Context, customerID string, page dto.PageRequest, q dto.PriceQuery) (*dto.PriceListResponse, error) {
	page.DefaultPage()
	customer, err := uc.loadCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.ListActive(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items, err := uc.quoteAll(ctx, customer, products, q)
	if err != nil {
		return nil, err
	}
	return &dto.PriceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ExportPriceListPDF tarifa completa del cliente en PDF. Solo para clientes aprobados.
func (uc *UseCase) ExportPriceListPDF(ctx context.Context, customerID string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("pricing: generador PDF no configurado")
	}
	customer, err := uc.loadCustomer(ctx, customerID)
	if err != nil {
		return nil, "", err
	}
	if !customer.IsApproved() {
		return nil, "", domain.ErrForbidden
	}

	var products []*entity.Product
	const pageSize = 100
	for offset := 0; offset < maxPriceListProducts; offset += pageSize {
		batch, err := uc.products.ListActive(ctx, pageSize, offset)
		if err != nil {
			return nil, "", err
		}
		products = append(products, batch...)
		if len(batch) < pageSize {
			break
		}
	}

	items, err := uc.quoteAll(ctx, customer, products, dto.PriceQuery{})
	if err != nil {
		return nil, "", err
	}

	doc := PriceListDocument{
		CompanyName: customer.CompanyName,
		CountryCode: customer.CountryCode,
		TaxID:       customer.TaxID,
		Region:      string(customer.Region),
		Currency:    string(customer.Region.Currency()),
		VATRate:     uc.resolver.VATRate(),
		GeneratedAt: uc.now(),
		Lines:       make([]PriceListLine, 0, len(items)),
	}
	if customer.Region == entity.RegionEU {
		doc.DisplayMode = string(domainpricing.DisplayNetReverseCharge)
	} else {
		doc.DisplayMode = string(domainpricing.DisplayNetDomesticVAT)
	}
	for _, it := range items {
		line := PriceListLine{
			SKU:          it.SKU,
			Name:         it.Name,
			Amount:       it.Amount,
			GrossAmount:  it.GrossAmount,
			IsOverridden: it.IsOverridden,
			Tier:         it.Tier,
		}
		doc.Lines = append(doc.Lines, line)
	}

	pdfBytes, err := uc.pdf.GeneratePriceList(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pricing: generación de tarifa fallida: %w", err)
	}
	filename := fmt.Sprintf("tarifa-%s-%s.pdf", strings.ToLower(customer.CountryCode)+customer.TaxID, doc.GeneratedAt.Format("20060102"))
	uc.log.Info().Str("customer_id", customer.ID).Int("lines", len(doc.Lines)).Msg("tarifa PDF generada")
	return pdfBytes, filename, nil
}

// loadCustomer devuelve nil si no hay cliente o si el token apunta a un cliente inexistente.
func (uc *UseCase) loadCustomer(ctx context.Context, customerID string) (*entity.BusinessCustomer, error) {
	if customerID == "" {
		return nil, nil
	}
	c, err := uc.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		uc.log.Warn().Str("customer_id", customerID).Msg("cliente del token no encontrado; se usa precio público")
	}
	return c, nil
}

// visibleOverrides solo consulta reglas para clientes aprobados.
func (uc *UseCase) visibleOverrides(ctx context.Context, customer *entity.BusinessCustomer, productIDs []string) ([]*entity.PriceOverride, error) {
	if !customer.IsApproved() || len(productIDs) == 0 {
		return nil, nil
	}
	return uc.overrides.ListVisible(ctx, customer.ID, productIDs)
}

func (uc *UseCase) quoteAll(ctx context.Context, customer *entity.BusinessCustomer, products []*entity.Product, q dto.PriceQuery) ([]*dto.PriceResponse, error) {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	visible, err := uc.visibleOverrides(ctx, customer, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PriceResponse, 0, len(products))
	for _, p := range products {
		item, err := uc.quote(customer, p, visible, q)
		if errors.Is(err, domain.ErrInvalidBasePrice) {
			uc.log.Warn().Str("product_id", p.ID).Msg("producto con precio base inválido omitido del listado")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("producto %s: %w", p.ID, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (uc *UseCase) quote(customer *entity.BusinessCustomer, product *entity.Product, visible []*entity.PriceOverride, q dto.PriceQuery) (*dto.PriceResponse, error) {
	base := domainpricing.BasePrices{AmountPL: product.PricePL, AmountEU: product.PriceEU}
	printer := printerFor(q.AcceptLanguage)

	resolved, err := uc.resolver.Resolve(customer, product.ID, base, visible)
	if err != nil {
		return nil, err
	}
	if resolved != nil {
		uc.observe(string(resolved.Tier))
		return &dto.PriceResponse{
			ProductID:    product.ID,
			SKU:          product.SKU,
			Name:         product.Name,
			Amount:       resolved.Amount,
			NetAmount:    resolved.Amount,
			GrossAmount:  resolved.GrossAmount,
			Currency:     string(resolved.Currency),
			DisplayMode:  string(resolved.DisplayMode),
			IsOverridden: resolved.IsOverridden,
			Tier:         string(resolved.Tier),
			Display:      formatAmount(printer, resolved.Currency, resolved.Amount),
			GrossDisplay: formatAmount(printer, resolved.Currency, resolved.GrossAmount),
		}, nil
	}

	cur, err := uc.retailCurrencyFor(customer, q.Currency)
	if err != nil {
		return nil, err
	}
	retail, err := uc.resolver.Retail(base, cur)
	if err != nil {
		return nil, err
	}
	uc.observe(TierRetail)
	return &dto.PriceResponse{
		ProductID:    product.ID,
		SKU:          product.SKU,
		Name:         product.Name,
		Amount:       retail.Gross,
		NetAmount:    retail.Net,
		GrossAmount:  retail.Gross,
		Currency:     string(retail.Currency),
		DisplayMode:  string(retail.DisplayMode),
		Display:      formatAmount(printer, retail.Currency, retail.Gross),
		GrossDisplay: formatAmount(printer, retail.Currency, retail.Gross),
	}, nil
}

// retailCurrencyFor un cliente aprobado ve siempre la moneda de su región; el resto elige
// con ?currency= o recibe la moneda por defecto.
func (uc *UseCase) retailCurrencyFor(customer *entity.BusinessCustomer, requested string) (entity.Currency, error) {
	if customer.IsApproved() {
		return customer.Region.Currency(), nil
	}
	switch entity.Currency(strings.ToUpper(strings.TrimSpace(requested))) {
	case "":
		return uc.retailCurrency, nil
	case entity.CurrencyPLN:
		return entity.CurrencyPLN, nil
	case entity.CurrencyEUR:
		return entity.CurrencyEUR, nil
	default:
		return "", fmt.Errorf("%w: moneda %q no soportada", domain.ErrInvalidInput, requested)
	}
}

func (uc *UseCase) observe(tier string) {
	if uc.observer != nil {
		uc.observer.ObserveResolution(tier)
	}
}
