package taxid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-b2b-api/pkg/vat"
)

// RegistryClient puerto de salida hacia el registro VIES.
// Check envía countryCode (prefijo VIES) y el número limpio, y devuelve el cuerpo de la
// respuesta en texto. Cualquier fallo de transporte, timeout o HTTP no 2xx se reporta como error.
type RegistryClient interface {
	Check(ctx context.Context, countryCode, number string) (string, error)
}

// DefaultRegistryTimeout tiempo máximo de espera del registro si el caller no configura otro.
const DefaultRegistryTimeout = 5 * time.Second

// Validator clasifica identificadores fiscales. No reintenta: un fallo remoto es un
// veredicto REGISTRY_UNAVAILABLE y la política de reintento es del caller.
type Validator struct {
	registry RegistryClient
	timeout  time.Duration
}

// NewValidator construye el validador. registry puede ser nil: en ese caso los identificadores
// UE con formato correcto quedan como REGISTRY_UNAVAILABLE.
func NewValidator(registry RegistryClient, timeout time.Duration) *Validator {
	if timeout <= 0 {
		timeout = DefaultRegistryTimeout
	}
	return &Validator{registry: registry, timeout: timeout}
}

// Validate nunca retorna error: toda entrada mal formada produce un veredicto inválido con motivo.
func (v *Validator) Validate(ctx context.Context, countryCode, rawValue string) Verdict {
	id := NewIdentifier(countryCode, rawValue)
	if !id.hasValidCountryCode() {
		return invalid(JurisdictionNonEU, id, "", ReasonUnsupportedJurisdiction, "código de país mal formado")
	}

	switch {
	case id.CountryCode == vat.HomeCountry:
		return v.validateDomestic(id)
	case vat.IsEUMember(id.CountryCode):
		return v.validateEU(ctx, id)
	default:
		return invalid(JurisdictionNonEU, id, "", ReasonUnsupportedJurisdiction,
			fmt.Sprintf("país %s fuera de la UE", id.CountryCode))
	}
}

// validateDomestic: longitud fija + checksum NIP. Sin llamadas de red.
func (v *Validator) validateDomestic(id Identifier) Verdict {
	number := vat.Normalize(id.CountryCode, id.RawValue)
	if err := vat.ValidateNIP(number); err != nil {
		return invalid(JurisdictionDomestic, id, number, ReasonInvalidFormat, err.Error())
	}
	return Verdict{
		Valid:        true,
		Jurisdiction: JurisdictionDomestic,
		CountryCode:  id.CountryCode,
		Number:       number,
	}
}

// validateEU: el patrón estructural es una compuerta local previa a cualquier llamada remota.
func (v *Validator) validateEU(ctx context.Context, id Identifier) Verdict {
	number := vat.Normalize(id.CountryCode, id.RawValue)
	if number == "" || !vat.MatchesEUFormat(id.CountryCode, number) {
		return invalid(JurisdictionEU, id, number, ReasonInvalidFormat,
			fmt.Sprintf("no coincide con el formato de %s", id.CountryCode))
	}
	if v.registry == nil {
		return invalid(JurisdictionEU, id, number, ReasonRegistryUnavailable, "registro no configurado")
	}

	callCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	raw, err := v.registry.Check(callCtx, vat.VIESCountryCode(id.CountryCode), number)
	if err != nil {
		detail := err.Error()
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			detail = "timeout del registro: " + detail
		}
		return invalid(JurisdictionEU, id, number, ReasonRegistryUnavailable, detail)
	}

	resp, err := ParseRegistryResponse(raw)
	if err != nil {
		return invalid(JurisdictionEU, id, number, ReasonRegistryUnavailable, err.Error())
	}
	if !resp.Valid {
		return invalid(JurisdictionEU, id, number, ReasonRegistryRejected, "el registro indica número no válido")
	}
	return Verdict{
		Valid:           true,
		Jurisdiction:    JurisdictionEU,
		CountryCode:     id.CountryCode,
		Number:          number,
		VerifiedName:    resp.Name,
		VerifiedAddress: resp.Address,
	}
}
