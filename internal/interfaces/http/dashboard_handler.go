package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/viyabaari-api/internal/application/auth"
	"github.com/jhoicas/viyabaari-api/internal/application/state"
)

// DashboardHandler expone los agregados del panel.
type DashboardHandler struct {
	authUC  *auth.AuthUseCase
	manager *state.Manager
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(authUC *auth.AuthUseCase, manager *state.Manager) *DashboardHandler {
	return &DashboardHandler{authUC: authUC, manager: manager}
}

// Summary godoc
// @Summary      Resumen del negocio (balance, conteos, conectividad)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	ctrl, err := controllerFor(c, h.authUC, h.manager)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ctrl.Summary())
}
