package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-b2b-api/internal/application/dto"
	"github.com/jhoicas/tienda-b2b-api/internal/application/pricing"
)

// PriceHandler consulta de precios (pública con auth opcional) y tarifa PDF.
type PriceHandler struct {
	uc *pricing.UseCase
}

// NewPriceHandler construye el handler.
func NewPriceHandler(uc *pricing.UseCase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

func priceQuery(c *fiber.Ctx) dto.PriceQuery {
	return dto.PriceQuery{
		Currency:       c.Query("currency"),
		AcceptLanguage: c.Get(fiber.HeaderAcceptLanguage),
	}
}

// Get godoc
// @Summary      Precio de un producto
// @Description  Cliente B2B aprobado: precio resuelto por reglas. Resto: precio de venta al público.
// @Tags         prices
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        currency   query  string  false  "PLN | EUR (solo precio público)"
// @Success      200        {object}  dto.PriceResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/prices/{productId} [get]
func (h *PriceHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.QuotePrice(c.UserContext(), GetCustomerID(c), c.Params("productId"), priceQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listado de precios del catálogo
// @Tags         prices
// @Produce      json
// @Param        limit     query  int     false  "Límite (default 20)"
// @Param        offset    query  int     false  "Offset"
// @Param        currency  query  string  false  "PLN | EUR (solo precio público)"
// @Success      200       {object}  dto.PriceListResponse
// @Router       /api/prices [get]
func (h *PriceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "limit/offset inválidos"})
	}
	out, err := h.uc.QuotePriceList(c.UserContext(), GetCustomerID(c), page, priceQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Tarifa B2B en PDF
// @Tags         prices
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/prices/export.pdf [get]
func (h *PriceHandler) ExportPDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportPriceListPDF(c.UserContext(), GetCustomerID(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
