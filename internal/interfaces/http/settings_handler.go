package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/viyabaari-api/internal/application/auth"
	"github.com/jhoicas/viyabaari-api/internal/application/dto"
	"github.com/jhoicas/viyabaari-api/internal/application/state"
	"github.com/jhoicas/viyabaari-api/internal/domain/repository"
)

// Idiomas soportados por la interfaz.
var supportedLanguages = map[string]bool{"en": true, "ta": true, "es": true}

// SettingsHandler maneja preferencias, conectividad y el flujo de
// confirmación de acciones destructivas.
type SettingsHandler struct {
	authUC  *auth.AuthUseCase
	manager *state.Manager
	cache   repository.CacheStore
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(authUC *auth.AuthUseCase, manager *state.Manager, cache repository.CacheStore) *SettingsHandler {
	return &SettingsHandler{authUC: authUC, manager: manager, cache: cache}
}

// BeginReset godoc
// @Summary      Solicitar borrado total de datos (requiere confirmación)
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PendingActionResponse
// @Router       /api/reset [post]
func (h *SettingsHandler) BeginReset(c *fiber.Ctx) error {
	ctrl, err := controllerFor(c, h.authUC, h.manager)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ctrl.BeginReset())
}

// Confirm godoc
// @Summary      Confirmar la acción destructiva pendiente
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmRequest  true  "Código de confirmación"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/confirm [post]
func (h *SettingsHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ctrl, err := controllerFor(c, h.authUC, h.manager)
	if err != nil {
		return fail(c, err)
	}
	action, err := ctrl.Confirm(c.Context(), in.Code)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"action": action, "status": "done"})
}

// CancelPending godoc
// @Summary      Descartar la acción destructiva pendiente
// @Tags         settings
// @Security     Bearer
// @Success      204
// @Router       /api/confirm [delete]
func (h *SettingsHandler) CancelPending(c *fiber.Ctx) error {
	ctrl, err := controllerFor(c, h.authUC, h.manager)
	if err != nil {
		return fail(c, err)
	}
	ctrl.CancelPending()
	return c.SendStatus(fiber.StatusNoContent)
}

// SetConnectivity godoc
// @Summary      Informar el estado de conectividad con el almacén remoto
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]bool  true  "{online: bool}"
// @Success      200   {object}  map[string]bool
// @Router       /api/connectivity [put]
func (h *SettingsHandler) SetConnectivity(c *fiber.Ctx) error {
	var in struct {
		Online bool `json:"online"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	h.manager.SetOnline(in.Online)
	return c.JSON(fiber.Map{"online": h.manager.Online()})
}

// GetLanguage godoc
// @Summary      Idioma preferido de la interfaz
// @Tags         settings
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/language [get]
func (h *SettingsHandler) GetLanguage(c *fiber.Ctx) error {
	lang, err := h.cache.LoadLanguage()
	if err != nil || lang == "" {
		lang = "en"
	}
	return c.JSON(fiber.Map{"language": lang})
}

// SetLanguage godoc
// @Summary      Cambiar el idioma preferido
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]string  true  "{language: en|ta|es}"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/language [put]
func (h *SettingsHandler) SetLanguage(c *fiber.Ctx) error {
	var in struct {
		Language string `json:"language"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !supportedLanguages[in.Language] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "idioma no soportado"})
	}
	if err := h.cache.SaveLanguage(in.Language); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"language": in.Language})
}
