// Package pdf implementa la representación gráfica de la factura con
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  N° Factura + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                            │
//	│  CLIENTE: Nombre + NIT + contacto                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Desc | IVA | Total    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuestos / TOTAL A PAGAR  │
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

	"github.com/gestionpro/gestion-api/internal/application/billing"
	"github.com/gestionpro/gestion-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	company *entity.Company,
	client *entity.Client,
	lines []*entity.InvoiceLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+invoice.Number, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emitterRow(company))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(invoice)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + NIT (izq) y número de factura + fecha (der).
func headerRow(invoice *entity.Invoice, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Factura "+invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+invoice.Date.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// emitterRow: datos de contacto del emisor.
func emitterRow(company *entity.Company) core.Row {
	contact := company.Address
	if company.Phone != "" {
		contact += "  Tel: " + company.Phone
	}
	if company.Email != "" {
		contact += "  " + company.Email
	}
	return row.New(6).Add(
		col.New(12).Add(
			text.New(contact, props.Text{Size: 8, Color: colorGray}),
		),
	)
}

// clientRow: nombre + NIT + contacto del cliente.
func clientRow(client *entity.Client) core.Row {
	return row.New(10).Add(
		col.New(7).Add(
			text.New("Cliente: "+client.Name, props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New("NIT/CC: "+client.TaxID, props.Text{Size: 8, Top: 5, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(client.Email, props.Text{Size: 8, Align: align.Right}),
			text.New(client.Phone, props.Text{Size: 8, Top: 5, Align: align.Right, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Align: align.Right}
	return row.New(7).Add(
		col.New(1).Add(text.New("Cant", header)),
		col.New(4).Add(text.New("Descripción", header)),
		col.New(2).Add(text.New("P. Unit", headerRight)),
		col.New(2).Add(text.New("Desc.", headerRight)),
		col.New(1).Add(text.New("IVA %", headerRight)),
		col.New(2).Add(text.New("Total", headerRight)),
	)
}

func tableLineRows(lines []*entity.InvoiceLine) []core.Row {
	body := props.Text{Size: 8}
	bodyRight := props.Text{Size: 8, Align: align.Right}
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		qty := l.Quantity.String()
		if l.Unit != "" {
			qty += " " + l.Unit
		}
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(qty, body)),
			col.New(4).Add(text.New(l.Description, body)),
			col.New(2).Add(text.New(l.UnitPrice.StringFixed(2), bodyRight)),
			col.New(2).Add(text.New(l.Discount.StringFixed(2), bodyRight)),
			col.New(1).Add(text.New(l.TaxRate.StringFixed(1), bodyRight)),
			col.New(2).Add(text.New(l.Total.StringFixed(2), bodyRight)),
		))
	}
	return rows
}

func totalsRows(invoice *entity.Invoice) []core.Row {
	label := props.Text{Size: 9, Align: align.Right}
	value := props.Text{Size: 9, Align: align.Right}
	totalLabel := props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary}

	totalRow := func(name, amount string, lbl, val props.Text) core.Row {
		return row.New(5).Add(
			col.New(8),
			col.New(2).Add(text.New(name, lbl)),
			col.New(2).Add(text.New(amount, val)),
		)
	}
	return []core.Row{
		totalRow("Subtotal", invoice.Subtotal.StringFixed(2), label, value),
		totalRow("Descuento", invoice.Discount.Neg().StringFixed(2), label, value),
		totalRow("Impuestos", invoice.Tax.StringFixed(2), label, value),
		totalRow("TOTAL", invoice.Total.StringFixed(2), totalLabel, totalLabel),
	}
}
