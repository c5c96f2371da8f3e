package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/viyabaari-api/internal/application/dto"
	"github.com/jhoicas/viyabaari-api/internal/domain"
)

// fail mapea los errores del dominio a su código HTTP y cuerpo de error.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "la cuenta ya existe"})
	case errors.Is(err, domain.ErrAccountNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ACCOUNT_NOT_FOUND", Message: "cuenta no registrada"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "credenciales incorrectas"})
	case errors.Is(err, domain.ErrNetworkUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NETWORK_UNAVAILABLE", Message: "sin conexión con el servidor de cuentas"})
	case errors.Is(err, domain.ErrStorageFull):
		return c.Status(fiber.StatusInsufficientStorage).JSON(dto.ErrorResponse{Code: "STORAGE_FULL", Message: "almacenamiento local lleno"})
	case errors.Is(err, domain.ErrInvalidBackup):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_BACKUP", Message: "archivo de respaldo inválido"})
	case errors.Is(err, domain.ErrCodeMismatch):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "CODE_MISMATCH", Message: "código de confirmación incorrecto"})
	case errors.Is(err, domain.ErrNoPendingAction):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_PENDING_ACTION", Message: "no hay acción pendiente de confirmar"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
