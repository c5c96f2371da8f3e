// Package migrate normaliza registros de inventario con formas antiguas
// (imagen única + lista plana de tallas, o lista moreImages) a la forma
// actual basada en variantes. La función es pura, total e idempotente:
// aplicarla sobre datos ya actuales solo rellena tallas por defecto.
package migrate

import (
	"fmt"

	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
)

// DefaultSizeStocks entrada sintética para variantes sin desglose de tallas.
func DefaultSizeStocks() []entity.SizeStock {
	return []entity.SizeStock{{Size: "General", Quantity: 0}}
}

// Normalize convierte un registro (legacy o actual) a la forma actual.
// Reglas:
//  1. Si ya trae variantes, se pasan tal cual rellenando sizeStocks vacíos
//     con la entrada por defecto {General, 0}.
//  2. Si no, se sintetizan: la imagen principal legacy arrastra la lista plana
//     de tallas; cada imagen secundaria produce una variante sin tallas (que
//     recibe la entrada por defecto); sin imágenes, una única variante con
//     imagen vacía y la lista plana (o la entrada por defecto si tampoco hay).
//
// Ninguna imagen ni par talla/cantidad legacy se pierde: cada uno aparece en
// exactamente una variante de salida.
func Normalize(s entity.StockItem) entity.StockItem {
	if len(s.Variants) > 0 {
		out := make([]entity.StockVariant, len(s.Variants))
		for i, v := range s.Variants {
			if len(v.SizeStocks) == 0 {
				v.SizeStocks = DefaultSizeStocks()
			}
			out[i] = v
		}
		s.Variants = out
		return s
	}

	var variants []entity.StockVariant
	if s.LegacyImageURL != "" {
		variants = append(variants, entity.StockVariant{
			ID:         s.ID + "-main",
			ImageURL:   s.LegacyImageURL,
			SizeStocks: s.LegacySizeStocks,
		})
	}
	for i, img := range s.LegacyMoreImages {
		variants = append(variants, entity.StockVariant{
			ID:       fmt.Sprintf("%s-img-%d", s.ID, i),
			ImageURL: img,
		})
	}
	if len(variants) == 0 {
		variants = append(variants, entity.StockVariant{
			ID:         s.ID + "-v0",
			SizeStocks: s.LegacySizeStocks,
		})
	}
	for i := range variants {
		if len(variants[i].SizeStocks) == 0 {
			variants[i].SizeStocks = DefaultSizeStocks()
		}
	}
	s.Variants = variants
	return s
}

// NormalizeAll aplica Normalize a una colección completa (frontera de carga).
func NormalizeAll(items []entity.StockItem) []entity.StockItem {
	out := make([]entity.StockItem, len(items))
	for i, s := range items {
		out[i] = Normalize(s)
	}
	return out
}
