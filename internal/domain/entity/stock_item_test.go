package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
)

func TestAggregateQuantity_SumaTodasLasVariantes(t *testing.T) {
	item := entity.StockItem{
		Variants: []entity.StockVariant{
			{SizeStocks: []entity.SizeStock{{Size: "S", Quantity: 3}, {Size: "M", Quantity: 7}}},
			{SizeStocks: []entity.SizeStock{{Size: "General", Quantity: 5}}},
		},
	}
	assert.Equal(t, 15, item.AggregateQuantity())
}

// El umbral aplica por entrada individual de talla, no por el agregado:
// un artículo con 100 unidades totales pero una talla en 2 está en stock bajo.
func TestIsLowStock_PorEntradaIndividualNoPorAgregado(t *testing.T) {
	item := entity.StockItem{
		Variants: []entity.StockVariant{
			{SizeStocks: []entity.SizeStock{{Size: "S", Quantity: 98}, {Size: "M", Quantity: 2}}},
		},
	}
	assert.True(t, item.IsLowStock())
	assert.Equal(t, 100, item.AggregateQuantity())
}

func TestIsLowStock_TodasLasTallasSobreElUmbral(t *testing.T) {
	item := entity.StockItem{
		Variants: []entity.StockVariant{
			{SizeStocks: []entity.SizeStock{{Size: "S", Quantity: 5}, {Size: "M", Quantity: 20}}},
		},
	}
	assert.False(t, item.IsLowStock(), "exactamente en el umbral no es stock bajo")
}

func TestIsLowStock_SinVariantesNoEsBajo(t *testing.T) {
	assert.False(t, entity.StockItem{}.IsLowStock())
}
