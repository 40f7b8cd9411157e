// Package pdf genera la tarifa B2B en PDF de un cliente aprobado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + "TARIFA B2B"   │  Fecha + moneda           │
//	│  CLIENTE: Razón social + NIF + región + tratamiento IVA      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Precio neto | Precio c/IVA | Regla  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LEYENDA: IVA nacional / inversión del sujeto pasivo         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	apppricing "github.com/jhoicas/tienda-b2b-api/internal/application/pricing"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ apppricing.PriceListPDFGenerator = (*PriceListGenerator)(nil)

// PriceListGenerator implementa pricing.PriceListPDFGenerator usando Maroto v2.
type PriceListGenerator struct {
	shopName string
}

// NewPriceListGenerator construye el generador; shopName aparece en la cabecera.
func NewPriceListGenerator(shopName string) *PriceListGenerator {
	return &PriceListGenerator{shopName: shopName}
}

// GeneratePriceList genera el PDF y devuelve sus bytes.
func (g *PriceListGenerator) GeneratePriceList(_ context.Context, doc apppricing.PriceListDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tarifa B2B", true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.shopName, doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(doc.Currency))
	m.AddRows(tableRows(doc)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(legendRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar tarifa: %w", err)
	}
	return out.GetBytes(), nil
}

func headerRow(shopName string, doc apppricing.PriceListDocument) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(shopName, "Tienda"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("TARIFA B2B", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Fecha: "+doc.GeneratedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Moneda: "+doc.Currency, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
		),
	)
}

func customerRow(doc apppricing.PriceListDocument) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(doc.CompanyName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("NIF: %s%s   |   Región: %s", doc.CountryCode, doc.TaxID, doc.Region),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow(currency string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Neto "+currency, 2, align.Right),
		h("Con IVA "+currency, 2, align.Right),
		h("Regla", 2, align.Center),
	)
}

func tableRows(doc apppricing.PriceListDocument) []core.Row {
	result := make([]core.Row, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		tier := "PVP"
		if l.IsOverridden {
			tier = tierLabel(l.Tier)
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(l.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMinor(l.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMinor(l.GrossAmount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(tier, props.Text{Size: 7, Align: align.Center, Top: 1, Color: colorGray})),
		))
	}
	return result
}

func legendRow(doc apppricing.PriceListDocument) core.Row {
	legend := fmt.Sprintf("Precios netos. Se añade IVA %s%% en factura.", doc.VATRate.Shift(2).String())
	if doc.DisplayMode == "NET_REVERSE_CHARGE" {
		legend = "Entrega intracomunitaria: IVA no incluido, inversión del sujeto pasivo (art. 196 Directiva 2006/112/CE)."
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(legend, props.Text{Size: 7, Color: colorGray, Top: 2}),
	))
}

func tierLabel(tier string) string {
	switch tier {
	case "CUSTOMER_FIXED":
		return "Precio pactado"
	case "REGIONAL_FIXED":
		return "Precio regional"
	case "CUSTOMER_DISCOUNT":
		return "Dto. cliente"
	case "REGIONAL_DISCOUNT":
		return "Dto. regional"
	default:
		return tier
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMinor subunidades → "1.230,00".
func formatMinor(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%s,%02d", sign, groupThousands(strconv.FormatInt(minor/100, 10)), minor%100)
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
