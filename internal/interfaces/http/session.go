package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/viyabaari-api/internal/application/auth"
	"github.com/jhoicas/viyabaari-api/internal/application/state"
)

// controllerFor resuelve la identidad de la petición (token o invitado) y
// devuelve su controlador de estado ya cargado.
func controllerFor(c *fiber.Ctx, uc *auth.AuthUseCase, manager *state.Manager) (*state.Controller, error) {
	user, err := uc.CurrentUser(c.Context(), GetToken(c))
	if err != nil {
		return nil, err
	}
	return manager.ForUser(c.Context(), *user)
}
