// Package history deriva entradas de historial legibles a partir de la
// versión anterior y la nueva de un artículo. Funciones puras; el controlador
// de estado antepone las entradas al historial existente (más reciente primero).
package history

import (
	"fmt"
	"time"

	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
)

// Created entrada única emitida en la primera creación de un artículo.
// El cambio registra la cantidad agregada inicial.
func Created(item entity.StockItem, now time.Time) entity.StockHistory {
	qty := item.AggregateQuantity()
	return entity.StockHistory{
		Date:        now,
		Action:      entity.HistoryCreated,
		Description: "Artículo creado",
		Change:      fmt.Sprintf("%d unidades iniciales", qty),
	}
}

// Diff compara dos versiones del mismo artículo y produce cero o más
// entradas, evaluadas en este orden fijo (pueden dispararse varias):
//  1. precio distinto            -> PRICE_CHANGE "viejo → nuevo"
//  2. cantidad agregada distinta -> STOCK_CHANGE "viejo → nuevo (±delta)"
//  3. si ninguna disparó pero cambió nombre o categoría -> un único UPDATED
func Diff(prev, next entity.StockItem, now time.Time) []entity.StockHistory {
	var entries []entity.StockHistory

	if !prev.Price.Equal(next.Price) {
		entries = append(entries, entity.StockHistory{
			Date:        now,
			Action:      entity.HistoryPriceChange,
			Description: "Precio modificado",
			Change:      fmt.Sprintf("%s → %s", prev.Price.String(), next.Price.String()),
		})
	}

	oldQty, newQty := prev.AggregateQuantity(), next.AggregateQuantity()
	if oldQty != newQty {
		entries = append(entries, entity.StockHistory{
			Date:        now,
			Action:      entity.HistoryStockChange,
			Description: "Stock modificado",
			Change:      fmt.Sprintf("%d → %d (%+d)", oldQty, newQty, newQty-oldQty),
		})
	}

	if len(entries) == 0 && (prev.Name != next.Name || prev.Category != next.Category) {
		entries = append(entries, entity.StockHistory{
			Date:        now,
			Action:      entity.HistoryUpdated,
			Description: "Detalles actualizados",
		})
	}

	return entries
}

// Prepend antepone entradas nuevas al historial existente (más reciente primero).
func Prepend(existing []entity.StockHistory, entries ...entity.StockHistory) []entity.StockHistory {
	if len(entries) == 0 {
		return existing
	}
	out := make([]entity.StockHistory, 0, len(entries)+len(existing))
	out = append(out, entries...)
	out = append(out, existing...)
	return out
}
