package dto

// ValidateTaxIDRequest body para POST /api/tax-ids/validate.
type ValidateTaxIDRequest struct {
	CountryCode string `json:"country_code"`
	TaxID       string `json:"tax_id"`
}

// TaxIDVerdictResponse veredicto de validación. El diagnóstico interno no se expone.
type TaxIDVerdictResponse struct {
	Valid           bool   `json:"valid"`
	Jurisdiction    string `json:"jurisdiction"`
	CountryCode     string `json:"country_code"`
	Number          string `json:"number,omitempty"`
	VerifiedName    string `json:"verified_name,omitempty"`
	VerifiedAddress string `json:"verified_address,omitempty"`
	FailureReason   string `json:"failure_reason,omitempty"`
}
