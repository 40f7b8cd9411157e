package overrides_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-b2b-api/internal/application/dto"
	"github.com/jhoicas/tienda-b2b-api/internal/application/overrides"
	"github.com/jhoicas/tienda-b2b-api/internal/domain"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
)

type key struct {
	productID  string
	scope      entity.OverrideScope
	customerID string
}

// memOverrides reproduce la unicidad (producto, alcance, cliente) del índice de la base.
type memOverrides struct{ byKey map[key]*entity.PriceOverride }

func (r *memOverrides) Upsert(_ context.Context, o *entity.PriceOverride) error {
	k := key{o.ProductID, o.Scope, o.CustomerID}
	if prev, ok := r.byKey[k]; ok {
		o.ID = prev.ID
		o.CreatedAt = prev.CreatedAt
	}
	cp := *o
	r.byKey[k] = &cp
	return nil
}

func (r *memOverrides) Delete(_ context.Context, id string) error {
	for k, o := range r.byKey {
		if o.ID == id {
			delete(r.byKey, k)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memOverrides) ListByProduct(_ context.Context, productID string) ([]*entity.PriceOverride, error) {
	var out []*entity.PriceOverride
	for _, o := range r.byKey {
		if o.ProductID == productID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOverrides) ListVisible(context.Context, string, []string) ([]*entity.PriceOverride, error) {
	return nil, nil
}

type memProducts map[string]*entity.Product

func (m memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) { return m[id], nil }
func (m memProducts) ListActive(context.Context, int, int) ([]*entity.Product, error) {
	return nil, nil
}

type memCustomers map[string]*entity.BusinessCustomer

func (m memCustomers) Create(context.Context, *entity.BusinessCustomer) error { return nil }
func (m memCustomers) GetByID(_ context.Context, id string) (*entity.BusinessCustomer, error) {
	return m[id], nil
}
func (m memCustomers) GetByTaxID(context.Context, string, string) (*entity.BusinessCustomer, error) {
	return nil, nil
}
func (m memCustomers) ListByStatus(context.Context, entity.CustomerStatus, int, int) ([]*entity.BusinessCustomer, error) {
	return nil, nil
}
func (m memCustomers) TransitionStatus(context.Context, string, entity.CustomerStatus, entity.CustomerStatus) (bool, error) {
	return false, nil
}

func newUseCase() (*overrides.UseCase, *memOverrides) {
	repo := &memOverrides{byKey: map[key]*entity.PriceOverride{}}
	products := memProducts{"p1": {ID: "p1", PricePL: 12300, PriceEU: 3000, Active: true}}
	customers := memCustomers{"c1": {ID: "c1", Status: entity.CustomerApproved, Region: entity.RegionEU}}
	return overrides.NewUseCase(repo, products, customers, nil), repo
}

func i64(v int64) *int64 { return &v }

func pct(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestUpsert_ReemplazaLaReglaExistente(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()

	first, err := uc.Upsert(ctx, dto.UpsertOverrideRequest{ProductID: "p1", Scope: "customer", CustomerID: "c1", FixedPriceEU: i64(2500)})
	require.NoError(t, err)
	assert.Equal(t, "CUSTOMER", first.Scope)

	second, err := uc.Upsert(ctx, dto.UpsertOverrideRequest{ProductID: "p1", Scope: "CUSTOMER", CustomerID: "c1", DiscountPctEU: pct("15")})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.byKey, 1)
	assert.Nil(t, second.FixedPriceEU)

	list, err := uc.ListByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].DiscountPctEU.Equal(decimal.NewFromInt(15)))
}

func TestUpsert_AlcanceYClienteCoherentes(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Upsert(ctx, dto.UpsertOverrideRequest{ProductID: "p1", Scope: "CUSTOMER", FixedPricePL: i64(100)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Upsert(ctx, dto.UpsertOverrideRequest{ProductID: "p1", Scope: "REGIONAL", CustomerID: "c1", FixedPricePL: i64(100)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Upsert(ctx, dto.UpsertOverrideRequest{ProductID: "p1", Scope: "GLOBAL", FixedPricePL: i64(100)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Upsert(ctx, dto.UpsertOverrideRequest{ProductID: "p1", Scope: "REGIONAL", FixedPricePL: i64(100)})
	require.NoError(t, err)
	assert.Empty(t, out.CustomerID)
}

func TestUpsert_ValoresFueraDeRango(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	cases := map[string]dto.UpsertOverrideRequest{
		"sin valores":     {ProductID: "p1", Scope: "REGIONAL"},
		"fijo cero":       {ProductID: "p1", Scope: "REGIONAL", FixedPricePL: i64(0)},
		"fijo negativo":   {ProductID: "p1", Scope: "REGIONAL", FixedPriceEU: i64(-5)},
		"descuento cero":  {ProductID: "p1", Scope: "REGIONAL", DiscountPctPL: pct("0")},
		"descuento > 100": {ProductID: "p1", Scope: "REGIONAL", DiscountPctEU: pct("100.01")},
		"sin producto":    {Scope: "REGIONAL", FixedPricePL: i64(1)},
		"tres decimales":  {ProductID: "p1", Scope: "REGIONAL", DiscountPctEU: pct("12.345")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Upsert(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := uc.Upsert(ctx, dto.UpsertOverrideRequest{ProductID: "p1", Scope: "REGIONAL", DiscountPctPL: pct("100")})
	assert.NoError(t, err)
}

func TestUpsert_DescuentoConDosDecimalesSeGuardaTalCual(t *testing.T) {
	uc, _ := newUseCase()

	out, err := uc.Upsert(context.Background(), dto.UpsertOverrideRequest{
		ProductID: "p1", Scope: "REGIONAL", DiscountPctEU: pct("12.35"), DiscountPctPL: pct("7.5"),
	})
	require.NoError(t, err)
	assert.True(t, out.DiscountPctEU.Equal(decimal.RequireFromString("12.35")))
	assert.True(t, out.DiscountPctPL.Equal(decimal.RequireFromString("7.5")))
}

func TestUpsert_ErrorNombraSiempreElPrimerCampoInvalido(t *testing.T) {
	uc, _ := newUseCase()
	in := dto.UpsertOverrideRequest{
		ProductID: "p1", Scope: "REGIONAL",
		FixedPricePL: i64(0), FixedPriceEU: i64(-1),
		DiscountPctPL: pct("0"), DiscountPctEU: pct("200"),
	}
	for i := 0; i < 20; i++ {
		_, err := uc.Upsert(context.Background(), in)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "fixed_price_pl")
	}

	in.FixedPricePL, in.FixedPriceEU = nil, nil
	for i := 0; i < 20; i++ {
		_, err := uc.Upsert(context.Background(), in)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "discount_pct_pl")
	}
}

func TestUpsert_ReferenciasInexistentes(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Upsert(ctx, dto.UpsertOverrideRequest{ProductID: "nope", Scope: "REGIONAL", FixedPricePL: i64(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Upsert(ctx, dto.UpsertOverrideRequest{ProductID: "p1", Scope: "CUSTOMER", CustomerID: "nope", FixedPricePL: i64(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()

	out, err := uc.Upsert(ctx, dto.UpsertOverrideRequest{ProductID: "p1", Scope: "REGIONAL", FixedPricePL: i64(100)})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, out.ID))
	assert.Empty(t, repo.byKey)

	assert.ErrorIs(t, uc.Delete(ctx, out.ID), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, " "), domain.ErrInvalidInput)
}
