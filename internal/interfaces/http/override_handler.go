package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-b2b-api/internal/application/dto"
	"github.com/jhoicas/tienda-b2b-api/internal/application/overrides"
)

// OverrideHandler mantenimiento de reglas de precio (solo admin).
type OverrideHandler struct {
	uc *overrides.UseCase
}

// NewOverrideHandler construye el handler.
func NewOverrideHandler(uc *overrides.UseCase) *OverrideHandler {
	return &OverrideHandler{uc: uc}
}

// Upsert godoc
// @Summary      Crear o reemplazar regla de precio
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertOverrideRequest  true  "Regla"
// @Success      200   {object}  dto.OverrideResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/overrides [put]
func (h *OverrideHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertOverrideRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Upsert(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar regla de precio
// @Tags         admin
// @Security     Bearer
// @Param        id   path  string  true  "ID de la regla"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/overrides/{id} [delete]
func (h *OverrideHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByProduct godoc
// @Summary      Reglas de precio de un producto
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.OverrideResponse
// @Router       /api/admin/products/{id}/overrides [get]
func (h *OverrideHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
