package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-b2b-api/internal/application/dto"
)

// approvalChecker contrato mínimo para verificar el estado del cliente.
// Lo implementa *registration.UseCase.
type approvalChecker interface {
	IsApproved(ctx context.Context, customerID string) (bool, error)
}

// RequireApprovedCustomer deja pasar solo a clientes B2B aprobados. Debe usarse DESPUÉS de
// AuthMiddleware (necesita LocalCustomerID).
//
// Comportamiento:
//   - 401 si el token no identifica a un cliente.
//   - 403 CUSTOMER_NOT_APPROVED si el cliente está pendiente, rechazado o no existe.
//   - 503 si falla la consulta del estado.
func RequireApprovedCustomer(checker approvalChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID := GetCustomerID(c)
		if customerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "customer_id no encontrado en el token",
			})
		}

		approved, err := checker.IsApproved(c.UserContext(), customerID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "APPROVAL_CHECK_FAILED",
				Message: "no se pudo verificar el estado del cliente, intente más tarde",
			})
		}
		if !approved {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "CUSTOMER_NOT_APPROVED",
				Message: "la cuenta de empresa aún no está aprobada",
			})
		}
		return c.Next()
	}
}
