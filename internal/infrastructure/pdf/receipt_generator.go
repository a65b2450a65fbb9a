// Package pdf genera la representación imprimible de una venta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda  │  Recibo/Factura N° + Fecha               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VENDEDOR: nombre del actor                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Subtotal               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: TOTAL / pagos por medio / saldo pendiente          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Observaciones (si hay)                                      │
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

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	storeName string
}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator(storeName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{storeName: storeName}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, sale *entity.Sale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(docTitle(sale), true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.storeName, sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sellerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(sale.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range totalsRows(sale) {
		m.AddRows(r)
	}

	if sale.Observations != "" {
		m.AddRows(line.NewRow(2))
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Observaciones: "+sale.Observations, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func docTitle(sale *entity.Sale) string {
	if sale.DocumentType == entity.DocumentInvoice {
		return "Factura de venta"
	}
	return "Recibo de venta"
}

// headerRow: nombre de la tienda (izq), tipo de documento + id + fecha (der).
func headerRow(storeName string, sale *entity.Sale) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(docTitle(sale), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("#"+sale.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+sale.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func sellerRow(sale *entity.Sale) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Atendido por: "+sale.ActorName, props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func itemRows(items []entity.SaleItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+it.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(3).Add(text.New(
				"$"+it.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
		))
	}
	return result
}

// totalsRows: total, el desglose por medio de pago y el saldo pendiente si es
// venta a crédito.
func totalsRows(sale *entity.Sale) []core.Row {
	labels := map[string]string{
		entity.PaymentCash:  "Efectivo",
		entity.PaymentQR:    "QR",
		entity.PaymentOther: "Otro",
	}
	rows := []core.Row{
		row.New(9).Add(
			col.New(9).Add(text.New("TOTAL", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			})),
			col.New(3).Add(text.New("$"+sale.Total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			})),
		),
	}
	for _, p := range sale.Payments {
		label := labels[p.Kind]
		if label == "" {
			label = p.Kind
		}
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New(label, props.Text{Size: 8, Align: align.Right, Color: colorGray})),
			col.New(3).Add(text.New("$"+p.Amount.StringFixed(2), props.Text{Size: 8, Align: align.Right, Color: colorGray})),
		))
	}
	if sale.IsCredit {
		rows = append(rows, row.New(7).Add(
			col.New(9).Add(text.New("SALDO PENDIENTE", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary,
			})),
			col.New(3).Add(text.New("$"+sale.PendingAmount.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary,
			})),
		))
	}
	return rows
}
