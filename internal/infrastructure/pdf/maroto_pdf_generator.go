// Package pdf dibuja la factura del despacho en una página A4.
//
// Layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Despacho + lema      │                   FACTURE   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Referencia / fechas          │  Cliente                    │
//	│  TABLA: Description | Collaborateur | Heures | Montant       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Sous-total / TVA / Total                           │
//	│  STATUT · Informations de paiement · Notes                   │
//	│  FOOTER: contacto                                            │
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

	appbilling "github.com/dhavocats/cabinet-api/internal/application/billing"
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorBlack   = &props.Color{Red: 0, Green: 0, Blue: 0}
	colorPrimary = &props.Color{Red: 30, Green: 64, Blue: 175}
	colorGray    = &props.Color{Red: 102, Green: 102, Blue: 102}
	colorLight   = &props.Color{Red: 153, Green: 153, Blue: 153}
	colorRule    = &props.Color{Red: 204, Green: 204, Blue: 204}
	colorPaid    = &props.Color{Red: 16, Green: 185, Blue: 129}
	colorPending = &props.Color{Red: 245, Green: 158, Blue: 11}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	firm     Firm
	currency string
}

// NewMarotoPDFGenerator construye el generador con los datos del despacho.
func NewMarotoPDFGenerator(firm Firm, currency string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{firm: firm, currency: currency}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(ctx context.Context, data appbilling.InvoicePDFData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l, err := BuildInvoiceLayout(data, g.firm, g.currency)
	if err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(14).WithRightMargin(14).
		WithTopMargin(14).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Facture "+data.Invoice.Reference, true).
		WithAuthor(g.firm.Name, true).
		WithCreationDate(l.IssuedAt).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(l))
	m.AddRows(rule())
	m.AddRows(metaRow(l))

	m.AddRows(tableHeaderRow())
	m.AddRows(rule())
	for _, r := range tableDetailRows(l.Rows) {
		m.AddRows(r)
	}
	m.AddRows(rule())

	m.AddRows(totalsRow(l))
	m.AddRows(rule())

	m.AddRows(statusRow(l))
	m.AddRows(paymentRows(l)...)
	if len(l.NotesLines) > 0 {
		m.AddRows(notesRows(l)...)
	}

	m.AddRows(line.NewRow(6))
	m.AddRows(rule())
	m.AddRows(footerRow(l))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func rule() core.Row {
	return line.NewRow(4, props.Line{Color: colorRule, Thickness: 0.3})
}

// headerRow: despacho + lema (izq) y título (der).
func headerRow(l InvoiceLayout) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(l.FirmName, props.Text{
				Style: fontstyle.Bold, Size: 18, Color: colorBlack, Top: 1,
			}),
			text.New(l.FirmTagline, props.Text{
				Size: 11, Top: 10, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(l.Title, props.Text{
				Style: fontstyle.Bold, Size: 20, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
		),
	)
}

// metaRow: referencia y fechas (izq), cliente (der).
func metaRow(l InvoiceLayout) core.Row {
	left := make([]core.Component, 0, len(l.MetaLines))
	for i, s := range l.MetaLines {
		left = append(left, text.New(s, props.Text{Size: 9, Top: float64(1 + i*5)}))
	}
	right := []core.Component{
		text.New("Client", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1}),
	}
	for i, s := range l.ClientLines {
		right = append(right, text.New(s, props.Text{Size: 9, Align: align.Right, Top: float64(7 + i*5)}))
	}
	height := 8.0 + float64(max(len(l.MetaLines), len(l.ClientLines)+1))*5
	return row.New(height).Add(
		col.New(7).Add(left...),
		col.New(5).Add(right...),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 4, align.Left),
		h("Collaborateur", 3, align.Left),
		h("Heures", 2, align.Center),
		h("Montant", 3, align.Right),
	)
}

// tableDetailRows: una fila por entrada de tiempo.
func tableDetailRows(rows []LayoutRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(r.Description, props.Text{Size: 8.5, Top: 1, Left: 1})),
			col.New(3).Add(text.New(r.Collaborator, props.Text{Size: 8.5, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.Hours, props.Text{Size: 8.5, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(r.Amount, props.Text{Size: 8.5, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(l InvoiceLayout) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9.5, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9.5, Align: align.Right, Right: 1, Top: top})
	}
	bold := props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 13}

	totalLabel, totalValue := bold, bold
	totalLabel.Right = 2
	totalValue.Right = 1

	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label(l.SubtotalLabel, 1),
			label(l.TaxLabel, 7),
			text.New(l.TotalLabel, totalLabel),
		),
		col.New(3).Add(
			value(l.Subtotal, 1),
			value(l.Tax, 7),
			text.New(l.Total, totalValue),
		),
	)
}

// statusRow: PAYÉE en verde, EN ATTENTE en ámbar.
func statusRow(l InvoiceLayout) core.Row {
	c := colorPending
	if l.Paid {
		c = colorPaid
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(l.Status, props.Text{Style: fontstyle.Bold, Size: 10.5, Color: c, Top: 2}),
	))
}

func paymentRows(l InvoiceLayout) []core.Row {
	rows := make([]core.Row, 0, len(l.PaymentLines))
	for i, s := range l.PaymentLines {
		p := props.Text{Size: 8.5, Color: colorGray, Top: 0.5}
		if i == 0 {
			p = props.Text{Style: fontstyle.Bold, Size: 9.5, Color: colorBlack, Top: 1}
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(text.New(s, p))))
	}
	return rows
}

func notesRows(l InvoiceLayout) []core.Row {
	rows := []core.Row{
		row.New(4),
		row.New(5).Add(col.New(12).Add(
			text.New("Notes :", props.Text{Style: fontstyle.Bold, Size: 9.5, Top: 1}),
		)),
	}
	for _, s := range l.NotesLines {
		rows = append(rows, row.New(4.5).Add(col.New(12).Add(
			text.New(s, props.Text{Size: 8.5, Color: colorGray}),
		)))
	}
	return rows
}

func footerRow(l InvoiceLayout) core.Row {
	comps := make([]core.Component, 0, len(l.FooterLines))
	for i, s := range l.FooterLines {
		comps = append(comps, text.New(s, props.Text{Size: 7.5, Color: colorLight, Top: float64(1 + i*4)}))
	}
	return row.New(10).Add(col.New(12).Add(comps...))
}
