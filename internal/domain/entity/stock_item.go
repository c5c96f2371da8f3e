package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Umbral de stock bajo: una entrada de talla con menos de 5 unidades.
const LowStockThreshold = 5

// SizeStock una tupla talla/color/cantidad dentro de una variante.
// Color y Sleeve son opcionales (combo saree/dhoti: manga completa o media).
type SizeStock struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
	Color    string `json:"color,omitempty"`
	Sleeve   string `json:"sleeve,omitempty"`
}

// StockVariant una versión fotografiada del artículo, con su propio desglose de tallas.
// Invariante (tras normalización): SizeStocks nunca vacío.
type StockVariant struct {
	ID         string      `json:"id"`
	ImageURL   string      `json:"imageUrl"`
	SizeStocks []SizeStock `json:"sizeStocks"`
}

// Quantity cantidad total de la variante.
func (v StockVariant) Quantity() int {
	total := 0
	for _, ss := range v.SizeStocks {
		total += ss.Quantity
	}
	return total
}

// StockItem un artículo del inventario. Los campos legacy (imageUrl, moreImages,
// sizeStocks planos) se conservan solo para decodificar registros antiguos; la
// migración los vuelca en Variants y el resto del código solo usa Variants.
type StockItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Variants  []StockVariant  `json:"variants"`
	History   []StockHistory  `json:"history,omitempty"`
	UpdatedAt time.Time       `json:"lastUpdated"`

	// Forma legacy (pre-variantes).
	LegacyImageURL   string      `json:"imageUrl,omitempty"`
	LegacyMoreImages []string    `json:"moreImages,omitempty"`
	LegacySizeStocks []SizeStock `json:"sizeStocks,omitempty"`
}

// AggregateQuantity suma de cantidades de todas las tallas de todas las variantes.
func (s StockItem) AggregateQuantity() int {
	total := 0
	for _, v := range s.Variants {
		total += v.Quantity()
	}
	return total
}

// IsLowStock un artículo está en stock bajo si CUALQUIER entrada individual de
// talla queda por debajo del umbral (no el agregado).
func (s StockItem) IsLowStock() bool {
	for _, v := range s.Variants {
		for _, ss := range v.SizeStocks {
			if ss.Quantity < LowStockThreshold {
				return true
			}
		}
	}
	return false
}
