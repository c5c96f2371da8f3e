package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/viyabaari-api/internal/application/auth"
	"github.com/jhoicas/viyabaari-api/internal/application/dto"
	"github.com/jhoicas/viyabaari-api/internal/application/state"
)

// TransactionHandler maneja las peticiones HTTP de contabilidad.
type TransactionHandler struct {
	authUC  *auth.AuthUseCase
	manager *state.Manager
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(authUC *auth.AuthUseCase, manager *state.Manager) *TransactionHandler {
	return &TransactionHandler{authUC: authUC, manager: manager}
}

// List godoc
// @Summary      Listar transacciones filtradas
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        type  query  string  false  "ALL | INCOME | EXPENSE"
// @Param        q     query  string  false  "Búsqueda (insensible a acentos)"
// @Success      200   {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	ctrl, err := controllerFor(c, h.authUC, h.manager)
	if err != nil {
		return fail(c, err)
	}
	txns := ctrl.Transactions(c.Query("type"), c.Query("q"))
	summary := ctrl.Summary()

	out := dto.TransactionListResponse{
		Items:   make([]dto.TransactionResponse, 0, len(txns)),
		Total:   len(txns),
		Income:  summary.Income,
		Expense: summary.Expense,
		Balance: summary.Balance,
	}
	for _, t := range txns {
		out.Items = append(out.Items, dto.ToTransactionResponse(t))
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Crear o editar una transacción (id vacío = alta)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveTransactionRequest  true  "Transacción"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      507   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ctrl, err := controllerFor(c, h.authUC, h.manager)
	if err != nil {
		return fail(c, err)
	}
	created := in.ID == ""
	out, err := ctrl.SaveTransaction(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}

// BeginClear godoc
// @Summary      Solicitar vaciado de transacciones (requiere confirmación)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PendingActionResponse
// @Router       /api/transactions/clear [post]
func (h *TransactionHandler) BeginClear(c *fiber.Ctx) error {
	ctrl, err := controllerFor(c, h.authUC, h.manager)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ctrl.BeginClearTransactions())
}
