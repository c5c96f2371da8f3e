// Package pdf implementa la generación del informe contable del negocio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ingresos / Gastos / BALANCE                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Categoría | Detalle | Monto          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INVENTARIO BAJO: artículos con existencias críticas        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/viyabaari-api/internal/application/dto"
	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 110, Blue: 94}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorExpense = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator genera el informe contable usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateAccountingReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateAccountingReport(
	_ context.Context,
	user entity.User,
	summary dto.SummaryResponse,
	txns []entity.Transaction,
	lowStock []entity.StockItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe contable", true).
		WithAuthor(user.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(user, summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableTxnRows(txns) {
		m.AddRows(r)
	}

	if len(lowStock) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		for _, r := range lowStockRows(lowStock) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y conteos generales (der).
func headerRow(user entity.User, s dto.SummaryResponse) core.Row {
	name := user.Name
	if name == "" {
		name = user.Email
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(user.Email, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INFORME CONTABLE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Artículos: %d   Movimientos: %d",
				s.StockCount, s.TransactionCount), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: bloque de ingresos, gastos y balance.
func summaryRow(s dto.SummaryResponse) core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center,
				Color: colorGray, Top: 1,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center,
				Color: c, Top: 7,
			}),
		)
	}
	return row.New(18).Add(
		cell("INGRESOS", "$"+formatMoney(s.Income.StringFixed(0)), colorPrimary),
		cell("GASTOS", "$"+formatMoney(s.Expense.StringFixed(0)), colorExpense),
		cell("BALANCE", "$"+formatMoney(s.Balance.StringFixed(0)), colorPrimary),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Center),
		h("Categoría", 2, align.Left),
		h("Detalle", 4, align.Left),
		h("Monto", 2, align.Right),
	)
}

// tableTxnRows: una fila por movimiento, más reciente primero.
func tableTxnRows(txns []entity.Transaction) []core.Row {
	result := make([]core.Row, 0, len(txns))
	for _, t := range txns {
		amountColor := colorPrimary
		tipo := "Ingreso"
		if t.Type == entity.TransactionExpense {
			amountColor = colorExpense
			tipo = "Gasto"
		}
		detalle := t.Description
		if t.Counterparty != "" {
			detalle = nonEmpty(detalle, "") + " (" + t.Counterparty + ")"
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				t.Date.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				tipo,
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: amountColor},
			)),
			col.New(2).Add(text.New(
				t.Category,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				nonEmpty(detalle, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(t.Amount.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: amountColor},
			)),
		))
	}
	return result
}

// lowStockRows: artículos con existencias bajo el umbral crítico.
func lowStockRows(items []entity.StockItem) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("INVENTARIO CON EXISTENCIAS BAJAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorExpense, Top: 1,
			}),
		)),
	}
	for _, s := range items {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(s.Name, props.Text{Size: 8, Top: 0.5, Left: 2})),
			col.New(4).Add(text.New(s.Category, props.Text{Size: 8, Top: 0.5, Color: colorGray})),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d uds.", s.AggregateQuantity()),
				props.Text{Size: 8, Align: align.Right, Top: 0.5, Right: 1, Color: colorExpense},
			)),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if neg {
		return "-" + string(buf)
	}
	return string(buf)
}
