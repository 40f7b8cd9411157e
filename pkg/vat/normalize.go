package vat

import (
	"strings"
	"unicode"
)

// Normalize elimina espacios, guiones, puntos y barras, pasa a mayúsculas y quita el
// prefijo de país redundante ("PL 123-456-32-18" → "1234563218").
// countryCode puede venir en ISO (GR) o con el prefijo VIES (EL); ambos se retiran.
// Si el valor ya cumple el formato del país no se toca: en Francia la clave puede ser "FR".
func Normalize(countryCode, raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsSpace(r) || r == '-' || r == '.' || r == '/' {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	out := b.String()
	if MatchesEUFormat(countryCode, out) {
		return out
	}
	for _, prefix := range []string{countryCode, VIESCountryCode(countryCode)} {
		if prefix != "" && strings.HasPrefix(out, prefix) && len(out) > len(prefix) {
			return out[len(prefix):]
		}
	}
	return out
}
