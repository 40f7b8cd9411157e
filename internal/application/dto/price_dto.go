package dto

// PriceQuery parámetros de consulta de precios.
type PriceQuery struct {
	Currency       string `query:"currency"` // PLN | EUR; solo aplica a precios de venta al público
	AcceptLanguage string `query:"-"`
}

// PriceResponse precio de un producto para quien consulta.
// Amount es el valor que se cobra; GrossAmount y NetAmount son informativos.
type PriceResponse struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Amount       int64  `json:"amount"`
	NetAmount    int64  `json:"net_amount"`
	GrossAmount  int64  `json:"gross_amount"`
	Currency     string `json:"currency"`
	DisplayMode  string `json:"display_mode"`
	IsOverridden bool   `json:"is_overridden"`
	Tier         string `json:"tier,omitempty"`
	Display      string `json:"display"`
	GrossDisplay string `json:"gross_display"`
}

// PriceListResponse listado paginado de precios.
type PriceListResponse struct {
	Items []*PriceResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
