package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/viyabaari-api/internal/application/auth"
	"github.com/jhoicas/viyabaari-api/internal/application/state"
	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
	"github.com/jhoicas/viyabaari-api/internal/infrastructure/pdf"
)

// ReportHandler genera el informe contable en PDF.
type ReportHandler struct {
	authUC    *auth.AuthUseCase
	manager   *state.Manager
	generator *pdf.MarotoReportGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(authUC *auth.AuthUseCase, manager *state.Manager, generator *pdf.MarotoReportGenerator) *ReportHandler {
	return &ReportHandler{authUC: authUC, manager: manager, generator: generator}
}

// Accounting godoc
// @Summary      Informe contable en PDF (balance, movimientos, inventario bajo)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {string}  binary
// @Router       /api/reports/accounting [get]
func (h *ReportHandler) Accounting(c *fiber.Ctx) error {
	user, err := h.authUC.CurrentUser(c.Context(), GetToken(c))
	if err != nil {
		return fail(c, err)
	}
	ctrl, err := h.manager.ForUser(c.Context(), *user)
	if err != nil {
		return fail(c, err)
	}

	var lowStock []entity.StockItem
	for _, s := range ctrl.Stocks() {
		if s.IsLowStock() {
			lowStock = append(lowStock, s)
		}
	}
	data, err := h.generator.GenerateAccountingReport(
		c.Context(), *user, ctrl.Summary(), ctrl.Transactions("", ""), lowStock,
	)
	if err != nil {
		return fail(c, err)
	}

	filename := fmt.Sprintf("informe-%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}
