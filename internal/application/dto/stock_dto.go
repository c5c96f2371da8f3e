package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
)

// SaveStockRequest alta o edición completa de un artículo (id vacío = alta).
type SaveStockRequest struct {
	ID       string                `json:"id,omitempty"`
	Name     string                `json:"name"`
	Category string                `json:"category"`
	Price    decimal.Decimal       `json:"price"`
	Variants []entity.StockVariant `json:"variants"`
}

// StockResponse un artículo con sus agregados derivados.
type StockResponse struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Category  string                `json:"category"`
	Price     decimal.Decimal       `json:"price"`
	Variants  []entity.StockVariant `json:"variants"`
	History   []entity.StockHistory `json:"history,omitempty"`
	UpdatedAt time.Time             `json:"lastUpdated"`
	Quantity  int                   `json:"quantity"`
	LowStock  bool                  `json:"lowStock"`
}

// StockListResponse listado de artículos.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Total int             `json:"total"`
}

// ToStockResponse mapea la entidad con sus derivados.
func ToStockResponse(s entity.StockItem) StockResponse {
	return StockResponse{
		ID:        s.ID,
		Name:      s.Name,
		Category:  s.Category,
		Price:     s.Price,
		Variants:  s.Variants,
		History:   s.History,
		UpdatedAt: s.UpdatedAt,
		Quantity:  s.AggregateQuantity(),
		LowStock:  s.IsLowStock(),
	}
}
