package entity

import "time"

// Acciones registradas en el historial de un artículo.
const (
	HistoryCreated     = "CREATED"
	HistoryUpdated     = "UPDATED"
	HistoryPriceChange = "PRICE_CHANGE"
	HistoryStockChange = "STOCK_CHANGE"
)

// StockHistory una entrada del historial de cambios de un artículo.
// Append-only, más reciente primero; nunca se reordena ni se trunca.
type StockHistory struct {
	Date        time.Time `json:"date"`
	Action      string    `json:"action"` // CREATED | UPDATED | PRICE_CHANGE | STOCK_CHANGE
	Description string    `json:"description"`
	Change      string    `json:"change,omitempty"` // literal "antes → después"
}
