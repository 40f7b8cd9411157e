package entity

import "time"

// Region clasificación comercial del cliente B2B; define moneda y tratamiento de IVA.
type Region string

const (
	RegionPoland Region = "POLAND"
	RegionEU     Region = "EU"
)

// Currency devuelve la moneda de la región (POLAND → PLN, EU → EUR).
func (r Region) Currency() Currency {
	if r == RegionEU {
		return CurrencyEUR
	}
	return CurrencyPLN
}

// CustomerStatus estado de aprobación del registro B2B.
type CustomerStatus string

const (
	CustomerPending  CustomerStatus = "pending"
	CustomerApproved CustomerStatus = "approved"
	CustomerRejected CustomerStatus = "rejected"
)

// BusinessCustomer representa un cliente empresa registrado en la tienda.
// Region se fija una sola vez en el registro y no se modifica después.
// Solo un cliente Approved recibe precios especiales o puede hacer pedidos.
type BusinessCustomer struct {
	ID              string
	CompanyName     string
	CountryCode     string // ISO 3166 alpha-2 del emisor del identificador
	TaxID           string // número normalizado, sin prefijo de país
	Region          Region
	Status          CustomerStatus
	VIESValidated   bool   // true solo si el registro VIES confirmó el número
	VerifiedName    string // razón social devuelta por VIES (puede ser vacío)
	VerifiedAddress string
	ReviewReason    string // motivo por el que quedó en revisión manual
	Email           string
	Phone           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsApproved indica si el cliente puede recibir precios B2B.
func (c *BusinessCustomer) IsApproved() bool {
	return c != nil && c.Status == CustomerApproved
}
