package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-b2b-api/internal/application/dto"
	"github.com/jhoicas/tienda-b2b-api/internal/application/registration"
)

// RegistrationHandler validación de NIF, alta de clientes empresa y revisión manual.
type RegistrationHandler struct {
	uc *registration.UseCase
}

// NewRegistrationHandler construye el handler.
func NewRegistrationHandler(uc *registration.UseCase) *RegistrationHandler {
	return &RegistrationHandler{uc: uc}
}

// ValidateTaxID godoc
// @Summary      Validar identificador fiscal
// @Description  Checksum NIP para Polonia, patrón + VIES para el resto de la UE. No crea registros.
// @Tags         tax-ids
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateTaxIDRequest  true  "País e identificador"
// @Success      200   {object}  dto.TaxIDVerdictResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tax-ids/validate [post]
func (h *RegistrationHandler) ValidateTaxID(c *fiber.Ctx) error {
	var in dto.ValidateTaxIDRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ValidateTaxID(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar cliente empresa
// @Description  Aprobado si el NIF es válido; pendiente de revisión si VIES no respondió o lo rechazó.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterCustomerRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.RegistrationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/registrations [post]
func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPending godoc
// @Summary      Clientes pendientes de revisión
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20)"
// @Param        offset  query  int  false  "Offset"
// @Success      200     {object}  dto.BusinessCustomerListResponse
// @Router       /api/admin/customers/pending [get]
func (h *RegistrationHandler) ListPending(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "limit/offset inválidos"})
	}
	out, err := h.uc.ListPending(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar cliente pendiente
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.BusinessCustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/customers/{id}/approve [post]
func (h *RegistrationHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar cliente pendiente
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.BusinessCustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/customers/{id}/reject [post]
func (h *RegistrationHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
