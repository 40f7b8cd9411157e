package dto

// RegisterCustomerRequest body para POST /api/registrations.
type RegisterCustomerRequest struct {
	CompanyName string `json:"company_name"`
	CountryCode string `json:"country_code"`
	TaxID       string `json:"tax_id"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// BusinessCustomerResponse cliente B2B en respuestas.
type BusinessCustomerResponse struct {
	ID              string `json:"id"`
	CompanyName     string `json:"company_name"`
	CountryCode     string `json:"country_code"`
	TaxID           string `json:"tax_id"`
	Region          string `json:"region"`
	Status          string `json:"status"`
	VIESValidated   bool   `json:"vies_validated"`
	VerifiedName    string `json:"verified_name,omitempty"`
	VerifiedAddress string `json:"verified_address,omitempty"`
	ReviewReason    string `json:"review_reason,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// RegistrationResponse resultado del registro: el cliente creado y el veredicto que lo decidió.
type RegistrationResponse struct {
	Customer BusinessCustomerResponse `json:"customer"`
	Verdict  TaxIDVerdictResponse     `json:"verdict"`
}

// BusinessCustomerListResponse listado paginado de clientes.
type BusinessCustomerListResponse struct {
	Items []*BusinessCustomerResponse `json:"items"`
	Page  PageResponse                `json:"page"`
}
