package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/viyabaari-api/internal/application/auth"
	"github.com/jhoicas/viyabaari-api/internal/application/dto"
	"github.com/jhoicas/viyabaari-api/internal/application/state"
)

// StockHandler maneja las peticiones HTTP del inventario.
type StockHandler struct {
	authUC  *auth.AuthUseCase
	manager *state.Manager
}

// NewStockHandler construye el handler.
func NewStockHandler(authUC *auth.AuthUseCase, manager *state.Manager) *StockHandler {
	return &StockHandler{authUC: authUC, manager: manager}
}

// List godoc
// @Summary      Listar artículos del inventario
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	ctrl, err := controllerFor(c, h.authUC, h.manager)
	if err != nil {
		return fail(c, err)
	}
	items := ctrl.Stocks()
	out := dto.StockListResponse{Items: make([]dto.StockResponse, 0, len(items)), Total: len(items)}
	for _, s := range items {
		out.Items = append(out.Items, dto.ToStockResponse(s))
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Crear o editar un artículo (id vacío = alta)
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveStockRequest  true  "Artículo"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      507   {object}  dto.ErrorResponse
// @Router       /api/stocks [post]
func (h *StockHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ctrl, err := controllerFor(c, h.authUC, h.manager)
	if err != nil {
		return fail(c, err)
	}
	created := in.ID == ""
	out, err := ctrl.SaveStock(c.Context(), in)
	if err != nil {
		// Con ErrStorageFull el cambio quedó en memoria; el 507 avisa sin revertir.
		return fail(c, err)
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}

// BeginDelete godoc
// @Summary      Solicitar borrado de un artículo (requiere confirmación)
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.PendingActionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/delete [post]
func (h *StockHandler) BeginDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	ctrl, err := controllerFor(c, h.authUC, h.manager)
	if err != nil {
		return fail(c, err)
	}
	out, err := ctrl.BeginDeleteStock(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
