// Package pdf genera el estado de cuenta del libro de leche en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Granja + "Libro de leche"  │  Rango + Arrastre      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Arrastre | Mañana | Posho | Bal. AM |        │
//	│         Tarde | Posho | Bal. PM                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: litros, posho y balance final                      │
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
	"github.com/shopspring/decimal"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/production"
)

var _ production.LedgerPDFGenerator = (*MarotoLedgerGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 183, Green: 28, Blue: 28}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoLedgerGenerator implementa production.LedgerPDFGenerator usando Maroto v2.
type MarotoLedgerGenerator struct {
	farmName string
}

// NewMarotoLedgerGenerator construye el generador. farmName encabeza cada estado de cuenta.
func NewMarotoLedgerGenerator(farmName string) *MarotoLedgerGenerator {
	return &MarotoLedgerGenerator{farmName: farmName}
}

// GenerateLedgerPDF genera el PDF y devuelve sus bytes.
func (g *MarotoLedgerGenerator) GenerateLedgerPDF(_ context.Context, st *dto.LedgerRangeResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Libro de leche "+st.From+" a "+st.To, true).
		WithAuthor(g.farmName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.farmName, st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(line.NewRow(3))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDayRows(st.Days)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(st))

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("* Día cerrado: el posho es el registrado al cierre. Los demás días usan posho 0.",
			props.Text{Size: 7, Color: colorGray, Top: 1}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la granja (izq) y rango + arrastre inicial (der).
func headerRow(farmName string, st *dto.LedgerRangeResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(farmName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Libro de leche (litros)", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(st.From+" a "+st.To, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Arrastre inicial: "+liters(st.Opening), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo del color primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Fecha", 2, align.Left),
		h("Arrastre", 2, align.Right),
		h("Mañana", 1, align.Right),
		h("Posho", 1, align.Right),
		h("Bal. AM", 2, align.Right),
		h("Tarde", 1, align.Right),
		h("Posho", 1, align.Right),
		h("Bal. PM", 2, align.Right),
	)
}

// tableDayRows: una fila por día; los balances negativos se resaltan.
func tableDayRows(days []dto.DayBalanceResponse) []core.Row {
	cell := func(s string, size int, a align.Type, c *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c}))
	}
	result := make([]core.Row, 0, len(days))
	for _, d := range days {
		date := d.Date
		if d.Closed {
			date += " *"
		}
		result = append(result, row.New(6).Add(
			cell(date, 2, align.Left, nil),
			cell(liters(d.CarriedIn), 2, align.Right, colorGray),
			cell(liters(d.TotalMorning), 1, align.Right, nil),
			cell(liters(d.DeductionAM), 1, align.Right, colorGray),
			cell(liters(d.BalanceMorning), 2, align.Right, balanceColor(d.BalanceMorning)),
			cell(liters(d.TotalEvening), 1, align.Right, nil),
			cell(liters(d.DeductionPM), 1, align.Right, colorGray),
			cell(liters(d.BalanceEvening), 2, align.Right, balanceColor(d.BalanceEvening)),
		))
	}
	return result
}

// totalsRow: litros ordeñados, posho total y balance final.
func totalsRow(st *dto.LedgerRangeResponse) core.Row {
	produced, posho := decimal.Zero, decimal.Zero
	final := st.Opening
	for _, d := range st.Days {
		produced = produced.Add(d.TotalMorning).Add(d.TotalEvening)
		posho = posho.Add(d.DeductionAM).Add(d.DeductionPM)
		final = d.BalanceEvening
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Litros ordeñados:"),
			label("Posho total:"),
			text.New("BALANCE FINAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
			}),
		),
		col.New(3).Add(
			value(liters(produced)),
			value(liters(posho)),
			text.New(liters(final), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: balanceColor(final), Right: 1,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func liters(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func balanceColor(d decimal.Decimal) *props.Color {
	if d.IsNegative() {
		return colorAlert
	}
	return colorPrimary
}
