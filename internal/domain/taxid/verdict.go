// Package taxid decide si un identificador fiscal de empresa es válido: checksum local para
// el país del vendedor, patrón estructural y consulta al registro VIES para el resto de la UE.
package taxid

import (
	"strings"

	"github.com/jhoicas/tienda-b2b-api/pkg/vat"
)

// Jurisdiction clasificación del emisor del identificador.
type Jurisdiction string

const (
	JurisdictionDomestic Jurisdiction = "DOMESTIC"
	JurisdictionEU       Jurisdiction = "EU"
	JurisdictionNonEU    Jurisdiction = "NON_EU"
)

// FailureReason motivo de un veredicto inválido. Cada motivo pide un trato distinto al caller:
// InvalidFormat lo corrige el usuario, RegistryUnavailable admite revisión manual o reintento,
// RegistryRejected y UnsupportedJurisdiction son definitivos para este intento.
type FailureReason string

const (
	ReasonNone                    FailureReason = ""
	ReasonInvalidFormat           FailureReason = "INVALID_FORMAT"
	ReasonRegistryUnavailable     FailureReason = "REGISTRY_UNAVAILABLE"
	ReasonRegistryRejected        FailureReason = "REGISTRY_REJECTED"
	ReasonUnsupportedJurisdiction FailureReason = "UNSUPPORTED_JURISDICTION"
)

// Identifier identificador fiscal tal como lo envió el usuario. Se construye por llamada.
type Identifier struct {
	CountryCode string
	RawValue    string
}

// NewIdentifier normaliza el código de país (mayúsculas, sin espacios, ISO en lugar del prefijo VIES).
func NewIdentifier(countryCode, rawValue string) Identifier {
	return Identifier{
		CountryCode: CanonicalCountryCode(countryCode),
		RawValue:    rawValue,
	}
}

// CanonicalCountryCode forma única con la que se guarda y compara el país emisor: "el" y "GR"
// identifican al mismo emisor y ambos quedan como "GR".
func CanonicalCountryCode(countryCode string) string {
	return vat.ISOCountryCode(strings.ToUpper(strings.TrimSpace(countryCode)))
}

func (id Identifier) hasValidCountryCode() bool {
	if len(id.CountryCode) != 2 {
		return false
	}
	for _, r := range id.CountryCode {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Verdict resultado de validar un Identifier. Se consume en el momento del registro y no se recalcula.
type Verdict struct {
	Valid           bool
	Jurisdiction    Jurisdiction
	CountryCode     string
	Number          string // número normalizado, sin prefijo de país
	VerifiedName    string
	VerifiedAddress string
	FailureReason   FailureReason
	Detail          string // diagnóstico interno, no se muestra al usuario
}

func invalid(j Jurisdiction, id Identifier, number string, reason FailureReason, detail string) Verdict {
	return Verdict{
		Valid:         false,
		Jurisdiction:  j,
		CountryCode:   id.CountryCode,
		Number:        number,
		FailureReason: reason,
		Detail:        detail,
	}
}
