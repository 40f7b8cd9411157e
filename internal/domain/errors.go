package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrForbidden               = errors.New("acceso denegado")
	ErrConflict                = errors.New("conflicto con el estado actual")
	ErrInvalidBasePrice        = errors.New("precio base inválido")
	ErrInvalidTaxID            = errors.New("identificador fiscal con formato inválido")
	ErrUnsupportedJurisdiction = errors.New("jurisdicción fiscal no soportada")
	ErrCustomerNotPending      = errors.New("el cliente no está pendiente de revisión")
)
