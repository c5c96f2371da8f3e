package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/viyabaari-api/internal/application/auth"
	"github.com/jhoicas/viyabaari-api/internal/application/dto"
	"github.com/jhoicas/viyabaari-api/internal/application/state"
)

// AuthHandler maneja las peticiones HTTP de identidad y sesión.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	manager *state.Manager
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase, manager *state.Manager) *AuthHandler {
	return &AuthHandler{uc: uc, manager: manager}
}

// Register godoc
// @Summary      Crear cuenta
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SignUp(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión (email o móvil)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Login == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "login y password son requeridos"})
	}
	out, err := h.uc.SignIn(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Guest godoc
// @Summary      Abrir sesión local sin cuenta
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/auth/guest [post]
func (h *AuthHandler) Guest(c *fiber.Ctx) error {
	out, err := h.uc.GuestSession()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar la sesión activa
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, err := h.uc.CurrentUser(c.Context(), GetToken(c))
	if err == nil && user != nil {
		h.manager.Drop(user.Key())
	}
	if err := h.uc.SignOut(); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Identidad de la sesión activa
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.CurrentUser(c.Context(), GetToken(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ToUserResponse(user))
}

// UpdateProfile godoc
// @Summary      Editar perfil y preferencias de respaldo
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Campos a editar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/me [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.CurrentUser(c.Context(), GetToken(c))
	if err != nil {
		return fail(c, err)
	}
	updated, err := h.uc.UpdateProfile(c.Context(), user, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ToUserResponse(updated))
}
