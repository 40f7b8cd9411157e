package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
)

// catalogRow fila del CSV de catálogo: sku;nombre;precio_pl;precio_eu[;activo]
// Los precios van en unidades con decimales (ej: 123,00 o 123.00), IVA incluido.
type catalogRow struct {
	SKU     string
	Name    string
	PricePL int64
	PriceEU int64
	Active  bool
}

// decoderFor envuelve r según la codificación declarada. Los exportes de ERPs polacos suelen
// venir en Windows-1250 o ISO-8859-2.
func decoderFor(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1250", "cp1250":
		return transform.NewReader(r, charmap.Windows1250.NewDecoder()), nil
	case "iso-8859-2", "latin2":
		return transform.NewReader(r, charmap.ISO8859_2.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación %q no soportada", encoding)
	}
}

// parseCatalog lee el CSV (separador ';', primera fila de cabecera).
func parseCatalog(r io.Reader) ([]catalogRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	rows := make([]catalogRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) < 4 {
			return nil, fmt.Errorf("línea %d: se esperan al menos 4 columnas", line)
		}
		pl, err := parseMinor(rec[2])
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio_pl: %w", line, err)
		}
		eu, err := parseMinor(rec[3])
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio_eu: %w", line, err)
		}
		active := true
		if len(rec) > 4 {
			switch strings.ToLower(strings.TrimSpace(rec[4])) {
			case "0", "no", "false", "nie":
				active = false
			}
		}
		rows = append(rows, catalogRow{
			SKU:     strings.TrimSpace(rec[0]),
			Name:    strings.TrimSpace(rec[1]),
			PricePL: pl,
			PriceEU: eu,
			Active:  active,
		})
	}
	return rows, nil
}

// parseMinor "1 230,50" → 123050. Rechaza importes no positivos.
func parseMinor(s string) (int64, error) {
	clean := strings.NewReplacer(" ", "", "\u00a0", "", ",", ".").Replace(strings.TrimSpace(s))
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("importe %q inválido", s)
	}
	minor := d.Shift(2).Round(0)
	if !minor.IsPositive() {
		return 0, fmt.Errorf("importe %q debe ser positivo", s)
	}
	return minor.IntPart(), nil
}

func (r catalogRow) toProduct(id string) *entity.Product {
	return &entity.Product{
		ID:      id,
		SKU:     r.SKU,
		Name:    r.Name,
		PricePL: r.PricePL,
		PriceEU: r.PriceEU,
		Active:  r.Active,
	}
}
