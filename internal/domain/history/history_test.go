package history_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
	"github.com/jhoicas/viyabaari-api/internal/domain/history"
)

func itemWith(price int64, qty int) entity.StockItem {
	return entity.StockItem{
		ID:       "s1",
		Name:     "Saree seda",
		Category: "Sarees",
		Price:    decimal.NewFromInt(price),
		Variants: []entity.StockVariant{
			{ID: "v1", SizeStocks: []entity.SizeStock{{Size: "M", Quantity: qty}}},
		},
	}
}

func TestCreated_RegistraCantidadInicial(t *testing.T) {
	now := time.Now()
	entry := history.Created(itemWith(100, 12), now)

	assert.Equal(t, entity.HistoryCreated, entry.Action)
	assert.Equal(t, "12 unidades iniciales", entry.Change)
	assert.Equal(t, now, entry.Date)
}

// Precio y stock cambian a la vez → dos entradas, precio primero.
func TestDiff_PrecioYStockCambianJuntos(t *testing.T) {
	now := time.Now()
	prev := entity.StockItem{
		ID: "s1", Name: "Saree", Category: "Sarees",
		Price: decimal.NewFromInt(100),
		Variants: []entity.StockVariant{
			{ID: "v1", SizeStocks: []entity.SizeStock{
				{Size: "S", Quantity: 3}, {Size: "M", Quantity: 10},
			}},
		},
	}
	next := prev
	next.Price = decimal.NewFromInt(120)
	next.Variants = []entity.StockVariant{
		{ID: "v1", SizeStocks: []entity.SizeStock{
			{Size: "S", Quantity: 3}, {Size: "M", Quantity: 2},
		}},
	}

	entries := history.Diff(prev, next, now)

	require.Len(t, entries, 2)
	assert.Equal(t, entity.HistoryPriceChange, entries[0].Action)
	assert.Equal(t, "100 → 120", entries[0].Change)
	assert.Equal(t, entity.HistoryStockChange, entries[1].Action)
	assert.Equal(t, "13 → 5 (-8)", entries[1].Change)
}

func TestDiff_SoloStockAumenta(t *testing.T) {
	entries := history.Diff(itemWith(100, 10), itemWith(100, 25), time.Now())

	require.Len(t, entries, 1)
	assert.Equal(t, entity.HistoryStockChange, entries[0].Action)
	assert.Equal(t, "10 → 25 (+15)", entries[0].Change)
}

// Solo cambian detalles (nombre/categoría) → una única entrada UPDATED.
func TestDiff_SoloDetallesProduceUpdated(t *testing.T) {
	prev := itemWith(100, 10)
	next := prev
	next.Name = "Saree algodón"

	entries := history.Diff(prev, next, time.Now())

	require.Len(t, entries, 1)
	assert.Equal(t, entity.HistoryUpdated, entries[0].Action)
	assert.Empty(t, entries[0].Change)
}

// UPDATED nunca acompaña a otra entrada: si cambió el precio, el cambio de
// nombre no genera entrada propia.
func TestDiff_UpdatedNoAcompanaOtrosCambios(t *testing.T) {
	prev := itemWith(100, 10)
	next := itemWith(150, 10)
	next.Name = "Saree algodón"

	entries := history.Diff(prev, next, time.Now())

	require.Len(t, entries, 1)
	assert.Equal(t, entity.HistoryPriceChange, entries[0].Action)
}

func TestDiff_SinCambiosNoProduceEntradas(t *testing.T) {
	item := itemWith(100, 10)
	assert.Empty(t, history.Diff(item, item, time.Now()))
}

// Prepend deja lo más reciente primero sin mutar el slice original.
func TestPrepend_MasRecientePrimero(t *testing.T) {
	vieja := entity.StockHistory{Action: entity.HistoryCreated}
	nueva := entity.StockHistory{Action: entity.HistoryStockChange}

	out := history.Prepend([]entity.StockHistory{vieja}, nueva)

	require.Len(t, out, 2)
	assert.Equal(t, entity.HistoryStockChange, out[0].Action)
	assert.Equal(t, entity.HistoryCreated, out[1].Action)
}

func TestPrepend_SinEntradasDevuelveExistente(t *testing.T) {
	existing := []entity.StockHistory{{Action: entity.HistoryCreated}}
	assert.Equal(t, existing, history.Prepend(existing))
}
