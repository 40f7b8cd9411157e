package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-b2b-api/internal/application/dto"
	"github.com/jhoicas/tienda-b2b-api/internal/application/overrides"
	"github.com/jhoicas/tienda-b2b-api/internal/application/pricing"
	"github.com/jhoicas/tienda-b2b-api/internal/application/registration"
	"github.com/jhoicas/tienda-b2b-api/internal/domain"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
	domainpricing "github.com/jhoicas/tienda-b2b-api/internal/domain/pricing"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/taxid"
	apphttp "github.com/jhoicas/tienda-b2b-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/tienda-b2b-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memCustomers struct {
	mu   sync.Mutex
	byID map[string]*entity.BusinessCustomer
}

func (r *memCustomers) Create(_ context.Context, c *entity.BusinessCustomer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCustomers) GetByID(_ context.Context, id string) (*entity.BusinessCustomer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *memCustomers) GetByTaxID(_ context.Context, countryCode, taxID string) (*entity.BusinessCustomer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.CountryCode == countryCode && c.TaxID == taxID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCustomers) ListByStatus(_ context.Context, status entity.CustomerStatus, _, _ int) ([]*entity.BusinessCustomer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.BusinessCustomer
	for _, c := range r.byID {
		if c.Status == status {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCustomers) TransitionStatus(_ context.Context, id string, from, to entity.CustomerStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok || c.Status != from {
		return false, nil
	}
	c.Status = to
	return true, nil
}

type memProducts struct{ list []*entity.Product }

func (r *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range r.list {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProducts) ListActive(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	if offset >= len(r.list) {
		return nil, nil
	}
	out := r.list[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memOverrides struct {
	mu   sync.Mutex
	list []*entity.PriceOverride
}

func (r *memOverrides) Upsert(_ context.Context, o *entity.PriceOverride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.list {
		if e.ProductID == o.ProductID && e.Scope == o.Scope && e.CustomerID == o.CustomerID {
			o.ID = e.ID
			cp := *o
			r.list[i] = &cp
			return nil
		}
	}
	cp := *o
	r.list = append(r.list, &cp)
	return nil
}

func (r *memOverrides) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.list {
		if e.ID == id {
			r.list = append(r.list[:i], r.list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memOverrides) ListByProduct(_ context.Context, productID string) ([]*entity.PriceOverride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.PriceOverride
	for _, e := range r.list {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memOverrides) ListVisible(_ context.Context, customerID string, productIDs []string) ([]*entity.PriceOverride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.PriceOverride
	for _, e := range r.list {
		for _, id := range productIDs {
			if e.ProductID == id && (e.Scope == entity.ScopeRegional || e.CustomerID == customerID) {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

type fakePDF struct{}

func (fakePDF) GeneratePriceList(context.Context, pricing.PriceListDocument) ([]byte, error) {
	return []byte("%PDF-1.4 tarifa"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App completa
// ──────────────────────────────────────────────────────────────────────────────

type apiFixture struct {
	app       *fiber.App
	customers *memCustomers
}

func newAPI(t *testing.T) apiFixture {
	t.Helper()
	customers := &memCustomers{byID: map[string]*entity.BusinessCustomer{}}
	products := &memProducts{list: []*entity.Product{
		{ID: "p1", SKU: "SKU-1", Name: "Taladro", PricePL: 12300, PriceEU: 20000, Active: true},
	}}
	overridesRepo := &memOverrides{}

	// Sin cliente VIES: todo NIF UE bien formado queda REGISTRY_UNAVAILABLE.
	validator := taxid.NewValidator(nil, 0)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		RegistrationUC: registration.NewUseCase(customers, validator, nil, nil),
		PricingUC: pricing.NewUseCase(pricing.Deps{
			Products:  products,
			Customers: customers,
			Overrides: overridesRepo,
			Resolver:  domainpricing.NewResolver(decimal.RequireFromString("0.23")),
			PDF:       fakePDF{},
		}),
		OverridesUC: overrides.NewUseCase(overridesRepo, products, customers, nil),
		JWTSecret:   testJWTSecret,
	})
	return apiFixture{app: app, customers: customers}
}

func call(t *testing.T, app *fiber.App, method, path, auth string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func register(t *testing.T, app *fiber.App, country, taxID string) dto.RegistrationResponse {
	t.Helper()
	resp, body := call(t, app, http.MethodPost, "/api/registrations", "", dto.RegisterCustomerRequest{
		CompanyName: "Empresa " + country, CountryCode: country, TaxID: taxID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out dto.RegistrationResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateTaxID_NIPPolaco(t *testing.T) {
	f := newAPI(t)

	resp, body := call(t, f.app, http.MethodPost, "/api/tax-ids/validate", "",
		dto.ValidateTaxIDRequest{CountryCode: "PL", TaxID: "PL 123-456-32-18"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var v dto.TaxIDVerdictResponse
	require.NoError(t, json.Unmarshal(body, &v))
	assert.True(t, v.Valid)
	assert.Equal(t, "DOMESTIC", v.Jurisdiction)
	assert.Equal(t, "1234563218", v.Number)
	assert.Empty(t, f.customers.byID)
}

func TestRegister_CodigosDeRespuesta(t *testing.T) {
	f := newAPI(t)

	pl := register(t, f.app, "PL", "1234563218")
	assert.Equal(t, "approved", pl.Customer.Status)

	resp, body := call(t, f.app, http.MethodPost, "/api/registrations", "", dto.RegisterCustomerRequest{
		CompanyName: "Otra", CountryCode: "PL", TaxID: "123-456-32-18",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "DUPLICATE")

	resp, body = call(t, f.app, http.MethodPost, "/api/registrations", "", dto.RegisterCustomerRequest{
		CompanyName: "US Inc", CountryCode: "US", TaxID: "12-3456789",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "UNSUPPORTED_JURISDICTION")

	resp, body = call(t, f.app, http.MethodPost, "/api/registrations", "", dto.RegisterCustomerRequest{
		CompanyName: "Mala", CountryCode: "PL", TaxID: "1234563219",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_TAX_ID")

	resp, _ = call(t, f.app, http.MethodPost, "/api/registrations", "", dto.RegisterCustomerRequest{CountryCode: "PL"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRevisionManualYPrecioUE(t *testing.T) {
	f := newAPI(t)
	admin := tokenForRole(t, pkgjwt.RoleAdmin)

	de := register(t, f.app, "DE", "DE123456789")
	require.Equal(t, "pending", de.Customer.Status)
	assert.Equal(t, "REGISTRY_UNAVAILABLE", de.Customer.ReviewReason)
	customerToken := tokenFor(t, pkgjwt.RoleCustomer, de.Customer.ID)

	// Un cliente no puede usar rutas de administración.
	resp, _ := call(t, f.app, http.MethodGet, "/api/admin/customers/pending", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Pendiente: sin tarifa PDF.
	resp, body := call(t, f.app, http.MethodGet, "/api/prices/export.pdf", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "CUSTOMER_NOT_APPROVED")

	resp, body = call(t, f.app, http.MethodGet, "/api/admin/customers/pending", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pending dto.BusinessCustomerListResponse
	require.NoError(t, json.Unmarshal(body, &pending))
	require.Len(t, pending.Items, 1)
	assert.Equal(t, de.Customer.ID, pending.Items[0].ID)

	resp, _ = call(t, f.app, http.MethodPost, "/api/admin/customers/"+de.Customer.ID+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = call(t, f.app, http.MethodPost, "/api/admin/customers/"+de.Customer.ID+"/reject", admin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "CUSTOMER_NOT_PENDING")

	// Descuento regional UE del 10 % sobre 200,00 EUR.
	ten := decimal.NewFromInt(10)
	resp, body = call(t, f.app, http.MethodPut, "/api/admin/overrides", admin, dto.UpsertOverrideRequest{
		ProductID: "p1", Scope: "REGIONAL", DiscountPctEU: &ten,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var override dto.OverrideResponse
	require.NoError(t, json.Unmarshal(body, &override))

	resp, body = call(t, f.app, http.MethodGet, "/api/prices/p1", customerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var price dto.PriceResponse
	require.NoError(t, json.Unmarshal(body, &price))
	assert.Equal(t, int64(18000), price.Amount)
	assert.Equal(t, "EUR", price.Currency)
	assert.Equal(t, "NET_REVERSE_CHARGE", price.DisplayMode)
	assert.Equal(t, "REGIONAL_DISCOUNT", price.Tier)

	// Aprobado: tarifa PDF disponible.
	resp, body = call(t, f.app, http.MethodGet, "/api/prices/export.pdf", customerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, _ = call(t, f.app, http.MethodDelete, "/api/admin/overrides/"+override.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = call(t, f.app, http.MethodDelete, "/api/admin/overrides/"+override.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPrecios_Anonimo(t *testing.T) {
	f := newAPI(t)

	resp, body := call(t, f.app, http.MethodGet, "/api/prices/p1?currency=EUR", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var price dto.PriceResponse
	require.NoError(t, json.Unmarshal(body, &price))
	assert.Equal(t, int64(20000), price.Amount)
	assert.Equal(t, "GROSS_RETAIL", price.DisplayMode)

	resp, _ = call(t, f.app, http.MethodGet, "/api/prices/p1?currency=USD", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, f.app, http.MethodGet, "/api/prices/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = call(t, f.app, http.MethodGet, "/api/prices?limit=5", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.PriceListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 5, list.Page.Limit)

	resp, _ = call(t, f.app, http.MethodGet, "/api/prices/export.pdf", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
