package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
)

// SaveTransactionRequest alta o edición completa de una transacción
// (id vacío = alta; en ediciones el timestamp original se preserva).
type SaveTransactionRequest struct {
	ID           string          `json:"id,omitempty"`
	Type         string          `json:"type"` // INCOME | EXPENSE
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Description  string          `json:"description,omitempty"`
	Counterparty string          `json:"counterparty,omitempty"`
}

// TransactionResponse una transacción.
type TransactionResponse struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Description  string          `json:"description,omitempty"`
	Counterparty string          `json:"counterparty,omitempty"`
	Date         time.Time       `json:"date"`
}

// TransactionListResponse listado filtrado más el resumen global (el resumen
// siempre se calcula sobre TODAS las transacciones, no sobre el filtro).
type TransactionListResponse struct {
	Items   []TransactionResponse `json:"items"`
	Total   int                   `json:"total"`
	Income  decimal.Decimal       `json:"income"`
	Expense decimal.Decimal       `json:"expense"`
	Balance decimal.Decimal       `json:"balance"`
}

// SummaryResponse agregados de solo lectura para el panel.
type SummaryResponse struct {
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Balance          decimal.Decimal `json:"balance"`
	StockCount       int             `json:"stockCount"`
	LowStockCount    int             `json:"lowStockCount"`
	TransactionCount int             `json:"transactionCount"`
	Online           bool            `json:"online"`
}

// ConfirmRequest código de confirmación para acciones destructivas.
type ConfirmRequest struct {
	Code string `json:"code"`
}

// PendingActionResponse acción destructiva pendiente y su código. El código se
// muestra al mismo usuario que debe teclearlo: es un guardia contra errores,
// no un mecanismo de autenticación.
type PendingActionResponse struct {
	Action string `json:"action"`
	Code   string `json:"code"`
}

// ToTransactionResponse mapea la entidad.
func ToTransactionResponse(t entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		Type:         t.Type,
		Amount:       t.Amount,
		Category:     t.Category,
		Description:  t.Description,
		Counterparty: t.Counterparty,
		Date:         t.Date,
	}
}
