// Package pdf implementa la generación del comprobante de ajuste de
// inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda  │  N° de lote + Fecha                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Variante | Tipo | Cant | Motivo     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Líneas / Aumentos / Disminuciones / Neto           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: código de barras del lote + leyenda                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/andgatetech/pos-inventory-api/internal/application/inventory"
	"github.com/andgatetech/pos-inventory-api/internal/domain/entity"
)

var _ inventory.VoucherPDFGenerator = (*MarotoVoucherGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorIncrease = &props.Color{Red: 0, Green: 120, Blue: 60}
	colorDecrease = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// num formatea enteros con separador de miles en español ("1.250").
var num = message.NewPrinter(language.Spanish)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoVoucherGenerator implementa inventory.VoucherPDFGenerator usando Maroto v2.
type MarotoVoucherGenerator struct{}

// NewMarotoVoucherGenerator construye el generador.
func NewMarotoVoucherGenerator() *MarotoVoucherGenerator { return &MarotoVoucherGenerator{} }

// GenerateVoucherPDF genera el comprobante del lote y devuelve sus bytes.
func (g *MarotoVoucherGenerator) GenerateVoucherPDF(
	_ context.Context,
	batch *entity.AdjustmentBatch,
	store *entity.Store,
	lines []inventory.VoucherLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Ajuste de Inventario", true).
		WithAuthor(store.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(batch, store))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(batch))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(batch) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda (izq) y lote + fecha (der).
func headerRow(batch *entity.AdjustmentBatch, store *entity.Store) core.Row {
	fecha := batch.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(store.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(store.Location, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE AJUSTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Lote "+shortID(batch.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Variante", 2, align.Left),
		h("Tipo", 1, align.Center),
		h("Cant.", 1, align.Right),
		h("Motivo", 3, align.Left),
	)
}

// tableLineRows: una fila por movimiento del lote.
func tableLineRows(lines []inventory.VoucherLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		typeColor := colorIncrease
		typeLabel := "+"
		if l.Type == "decrease" {
			typeColor = colorDecrease
			typeLabel = "−"
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				l.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(l.VariantLabel, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(1).Add(text.New(
				typeLabel,
				props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 1, Color: typeColor},
			)),
			col.New(1).Add(text.New(
				l.Quantity.Abs().StringFixed(0),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(l.Reason, "(sin motivo)"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(batch *entity.AdjustmentBatch) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	net := batch.TotalIncrease - batch.TotalDecrease

	return row.New(26).Add(
		col.New(5),
		col.New(4).Add(
			label("Líneas ajustadas:"),
			label("Unidades aumentadas:"),
			label("Unidades disminuidas:"),
			label("Cambio neto:"),
		),
		col.New(3).Add(
			value(num.Sprintf("%d", batch.TotalItems)),
			value(num.Sprintf("%d", batch.TotalIncrease)),
			value(num.Sprintf("%d", batch.TotalDecrease)),
			value(num.Sprintf("%+d", net)),
		),
	)
}

// footerRows: código de barras del lote + leyenda.
func footerRows(batch *entity.AdjustmentBatch) []core.Row {
	return []core.Row{
		row.New(18).Add(
			col.New(5).Add(code.NewBar(batch.ID, props.Barcode{
				Percent: 90,
				Center:  true,
			})),
			col.New(7).Add(
				text.New("Lote "+batch.ID, props.Text{
					Size: 7, Top: 3, Left: 3, Color: colorGray,
				}),
				text.New("Escanee el código para ubicar el lote\nen el historial de ajustes.", props.Text{
					Size: 8, Top: 8, Left: 3, Color: colorGray,
				}),
			),
		),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Comprobante interno de ajuste de inventario. "+
					"Conserve este documento como soporte de la operación.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID recorta un UUID a su primer bloque para mostrarlo como número de lote.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
