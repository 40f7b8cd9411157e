package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
)

// displayLanguages idiomas en los que se formatean los importes; el primero es el de respaldo.
var displayLanguages = []language.Tag{language.Polish, language.English, language.German}

var displayMatcher = language.NewMatcher(displayLanguages)

// printerFor elige el idioma de presentación a partir de una cabecera Accept-Language.
func printerFor(acceptLanguage string) *message.Printer {
	tag := displayLanguages[0]
	if acceptLanguage != "" {
		if prefs, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(prefs) > 0 {
			_, idx, conf := displayMatcher.Match(prefs...)
			if conf != language.No {
				tag = displayLanguages[idx]
			}
		}
	}
	return message.NewPrinter(tag)
}

// formatAmount importe en subunidades como texto localizado con código ISO (ej: "PLN 123,00").
func formatAmount(p *message.Printer, c entity.Currency, minor int64) string {
	unit, err := currency.ParseISO(string(c))
	if err != nil {
		return fmt.Sprintf("%s %s", c, decimal.New(minor, -2).StringFixed(2))
	}
	major := decimal.New(minor, -2).InexactFloat64()
	return p.Sprint(currency.ISO(unit.Amount(major)))
}
