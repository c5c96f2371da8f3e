package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción.
const (
	TransactionIncome  = "INCOME"
	TransactionExpense = "EXPENSE"
)

// Categorías sugeridas para transacciones (texto libre en la entidad).
var SuggestedTransactionCategories = []string{
	"Sales", "Purchase", "Rent", "Salary", "Electricity", "Tea & Snacks", "Travel",
}

// Transaction un movimiento de ingreso o gasto. Inmutable salvo edición
// completa in-place (mismo id; Date se preserva entre ediciones).
type Transaction struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"` // INCOME | EXPENSE
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Description  string          `json:"description,omitempty"`
	Counterparty string          `json:"counterparty,omitempty"`
	Date         time.Time       `json:"date"`
}
