// Package vat contiene los catálogos y reglas estructurales de identificadores de IVA
// de los estados miembros de la UE (formatos aceptados por VIES) y el algoritmo del NIP polaco.
package vat

import "regexp"

// HomeCountry país del vendedor: sus identificadores se validan localmente (checksum NIP).
const HomeCountry = "PL"

// =============================================================================
// Formatos VIES por estado miembro.
// Cada patrón se aplica al número ya normalizado (sin espacios, guiones ni prefijo de país).
// Para añadir un país basta con añadir una entrada.
// =============================================================================

var euFormats = map[string]*regexp.Regexp{
	"AT": regexp.MustCompile(`^U\d{8}$`),
	"BE": regexp.MustCompile(`^[01]\d{9}$`),
	"BG": regexp.MustCompile(`^\d{9,10}$`),
	"CY": regexp.MustCompile(`^\d{8}[A-Z]$`),
	"CZ": regexp.MustCompile(`^\d{8,10}$`),
	"DE": regexp.MustCompile(`^\d{9}$`),
	"DK": regexp.MustCompile(`^\d{8}$`),
	"EE": regexp.MustCompile(`^\d{9}$`),
	"EL": regexp.MustCompile(`^\d{9}$`),
	"ES": regexp.MustCompile(`^[A-Z0-9]\d{7}[A-Z0-9]$`),
	"FI": regexp.MustCompile(`^\d{8}$`),
	"FR": regexp.MustCompile(`^[A-HJ-NP-Z0-9]{2}\d{9}$`),
	"HR": regexp.MustCompile(`^\d{11}$`),
	"HU": regexp.MustCompile(`^\d{8}$`),
	"IE": regexp.MustCompile(`^(\d{7}[A-W][A-I]?|\d[A-Z+*]\d{5}[A-W])$`),
	"IT": regexp.MustCompile(`^\d{11}$`),
	"LT": regexp.MustCompile(`^(\d{9}|\d{12})$`),
	"LU": regexp.MustCompile(`^\d{8}$`),
	"LV": regexp.MustCompile(`^\d{11}$`),
	"MT": regexp.MustCompile(`^\d{8}$`),
	"NL": regexp.MustCompile(`^\d{9}B\d{2}$`),
	"PT": regexp.MustCompile(`^\d{9}$`),
	"RO": regexp.MustCompile(`^\d{2,10}$`),
	"SE": regexp.MustCompile(`^\d{10}01$`),
	"SI": regexp.MustCompile(`^\d{8}$`),
	"SK": regexp.MustCompile(`^\d{10}$`),
}

// viesAliases códigos ISO que VIES publica con otro prefijo (Grecia: GR → EL).
var viesAliases = map[string]string{
	"GR": "EL",
}

// VIESCountryCode devuelve el prefijo que usa VIES para el código ISO dado.
func VIESCountryCode(isoCode string) string {
	if alias, ok := viesAliases[isoCode]; ok {
		return alias
	}
	return isoCode
}

// ISOCountryCode forma canónica del país emisor: convierte un prefijo VIES a su código ISO
// (EL → GR). El resto de códigos no cambia.
func ISOCountryCode(code string) string {
	for iso, alias := range viesAliases {
		if code == alias {
			return iso
		}
	}
	return code
}

// IsEUMember indica si el país (ISO o prefijo VIES) está en el catálogo UE, excluyendo el país local.
func IsEUMember(countryCode string) bool {
	_, ok := euFormats[VIESCountryCode(countryCode)]
	return ok
}

// EUCountryCodes lista los prefijos VIES soportados (sin el país local).
func EUCountryCodes() []string {
	out := make([]string, 0, len(euFormats))
	for code := range euFormats {
		out = append(out, code)
	}
	return out
}

// MatchesEUFormat verifica el número normalizado contra el patrón del estado miembro.
// Devuelve false si el país no está en el catálogo.
func MatchesEUFormat(countryCode, number string) bool {
	re, ok := euFormats[VIESCountryCode(countryCode)]
	if !ok {
		return false
	}
	return re.MatchString(number)
}
