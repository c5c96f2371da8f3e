package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/viyabaari-api/internal/application/auth"
	"github.com/jhoicas/viyabaari-api/internal/application/backup"
	"github.com/jhoicas/viyabaari-api/internal/application/dto"
)

// BackupHandler maneja la exportación e importación de respaldos.
type BackupHandler struct {
	authUC *auth.AuthUseCase
	uc     *backup.UseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(authUC *auth.AuthUseCase, uc *backup.UseCase) *BackupHandler {
	return &BackupHandler{authUC: authUC, uc: uc}
}

// Export godoc
// @Summary      Descargar un respaldo completo (usuario + registros)
// @Tags         backup
// @Security     Bearer
// @Produce      json
// @Success      200  {string}  binary
// @Router       /api/backup [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	user, err := h.authUC.CurrentUser(c.Context(), GetToken(c))
	if err != nil {
		return fail(c, err)
	}
	data, err := h.uc.Export(c.Context(), *user)
	if err != nil {
		return fail(c, err)
	}
	filename := fmt.Sprintf("viyabaari-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// Import godoc
// @Summary      Restaurar un respaldo completo (todo o nada)
// @Tags         backup
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/backup [post]
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo vacío"})
	}
	user, err := h.uc.Import(c.Context(), body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ToUserResponse(&user))
}
