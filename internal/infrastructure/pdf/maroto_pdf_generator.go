// Package pdf genera el relatório de patrimônio de la loja en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Loja        │  Fecha + Generado por       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Item | Categoria | Local | Saldo | Mín | C.Médio |  │
//	│         Valor                                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: items / abaixo do mínimo / valor total            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/application/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 32, Green: 42, Blue: 92}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.ReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa inventory.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInventoryReport(_ context.Context, data inventory.ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(data.Title, true).
		WithAuthor(data.LojaName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(data.Items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Nenhum item cadastrado.", props.Text{Size: 9, Align: align.Center, Color: colorGray, Top: 3}),
		)))
	}
	m.AddRows(tableDetailRows(data.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data inventory.ReportData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(strings.ToUpper(data.Title), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(data.LojaName, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Emitido em "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Por: "+nonEmpty(data.GeneratedBy, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 3, align.Left),
		h("Categoria", 2, align.Left),
		h("Local", 2, align.Left),
		h("Saldo", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Custo médio", 1, align.Right),
		h("Valor", 2, align.Right),
	)
}

// tableDetailRows una fila por item; los items bajo el mínimo van en rojo.
func tableDetailRows(items []dto.ItemResponse) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		var c *props.Color
		if it.BelowMinimum {
			c = colorAlert
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c}))
		}
		name := it.Name
		if it.SKU != nil && *it.SKU != "" {
			name = *it.SKU + " · " + name
		}
		result = append(result, row.New(7).Add(
			cell(name, 3, align.Left),
			cell(deref(it.Category, "-"), 2, align.Left),
			cell(deref(it.Location, "-"), 2, align.Left),
			cell(formatQty(it.QtyOnHand)+" "+it.Unit, 1, align.Right),
			cell(formatQty(it.MinQty), 1, align.Right),
			cell(FormatBRL(it.AvgCost), 1, align.Right),
			cell(FormatBRL(it.QtyOnHand.Mul(it.AvgCost)), 2, align.Right),
		))
	}
	return result
}

func totalsRow(data inventory.ReportData) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Itens:"),
			label("Abaixo do mínimo:"),
			label("VALOR TOTAL:"),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", len(data.Items))),
			value(fmt.Sprintf("%d", data.BelowMinimum)),
			text.New(FormatBRL(data.TotalValue), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return nonEmpty(*s, fallback)
}

func formatQty(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(0)
	}
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// FormatBRL formatea un valor en reais: 1234.5 → "R$ 1.234,50".
func FormatBRL(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	out := "R$ " + groupThousands(intPart) + "," + frac
	if v.IsNegative() {
		return "-" + out
	}
	return out
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
