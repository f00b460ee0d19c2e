package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	appbilling "github.com/dhavocats/cabinet-api/internal/application/billing"
	"github.com/dhavocats/cabinet-api/internal/domain"
	domainbilling "github.com/dhavocats/cabinet-api/internal/domain/billing"
	"github.com/dhavocats/cabinet-api/pkg/config"
)

const (
	maxDescriptionChars  = 25
	maxCollaboratorChars = 15
	notesColumns         = 80
	dateLayout           = "02/01/2006"
	defaultDescription   = "Prestation"
)

// Firm datos del despacho emisor.
type Firm struct {
	Name         string
	Tagline      string
	BankName     string
	IBAN         string
	SWIFT        string
	ContactEmail string
	ContactPhone string
}

// FirmFromConfig toma la sección Firm de la configuración.
func FirmFromConfig(c config.FirmConfig) Firm {
	return Firm{
		Name:         c.Name,
		Tagline:      c.Tagline,
		BankName:     c.BankName,
		IBAN:         c.IBAN,
		SWIFT:        c.SWIFT,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
	}
}

// LayoutRow una fila de la tabla, ya en texto.
type LayoutRow struct {
	Description  string
	Collaborator string
	Hours        string
	Amount       string
}

// InvoiceLayout todo el texto visible de la factura, en orden de dibujo.
// El generador solo lo posiciona; no calcula nada.
type InvoiceLayout struct {
	FirmName    string
	FirmTagline string
	Title       string

	MetaLines   []string // referencia, emisión, vencimiento
	ClientLines []string // nombre, empresa, email, teléfono (solo los no vacíos)

	Rows []LayoutRow

	SubtotalLabel string
	Subtotal      string
	TaxLabel      string
	Tax           string
	TotalLabel    string
	Total         string

	Status string
	Paid   bool

	PaymentLines []string
	NotesLines   []string
	FooterLines  []string

	// IssuedAt fecha de creación del PDF: la de emisión, nunca time.Now.
	IssuedAt time.Time
}

// BuildInvoiceLayout arma el contenido de la factura. Determinista: mismos datos, mismo texto.
// El monto de cada fila se recalcula (horas a 2 decimales × tarifa); una factura manual sin
// entradas muestra el monto guardado desglosado con su tasa.
func BuildInvoiceLayout(data appbilling.InvoicePDFData, firm Firm, currency string) (InvoiceLayout, error) {
	inv := data.Invoice
	if inv == nil {
		return InvoiceLayout{}, domain.NotFound("factura")
	}
	if data.Client == nil {
		return InvoiceLayout{}, domain.NotFound("cliente")
	}

	l := InvoiceLayout{
		FirmName:    firm.Name,
		FirmTagline: firm.Tagline,
		Title:       "FACTURE",
		MetaLines: []string{
			"Référence: " + inv.Reference,
			"Date d'émission: " + inv.IssueDate.Format(dateLayout),
			"Date d'échéance: " + inv.DueDate.Format(dateLayout),
		},
		ClientLines: nonEmptyLines(
			data.Client.Name, data.Client.CompanyName, data.Client.Address, data.Client.Locality(),
			data.Client.Email, data.Client.Phone, vatLine(data.Client.VATNumber),
		),
		IssuedAt:    inv.IssueDate,
	}

	// ── Filas ─────────────────────────────────────────────────────────────────
	subtotal := decimal.Zero
	for _, e := range data.Entries {
		name := e.CollaboratorName()
		if name == "" {
			return InvoiceLayout{}, domain.NotFound("colaborador de la entrada " + e.ID)
		}
		if e.HourlyRate == nil {
			return InvoiceLayout{}, domain.NotFound("tarifa horaria de " + name)
		}
		hours := e.HoursSpent.Round(2)
		amount := hours.Mul(*e.HourlyRate)
		subtotal = subtotal.Add(amount)

		desc := e.Description
		if desc == "" {
			desc = e.ListName
		}
		if desc == "" {
			desc = defaultDescription
		}
		l.Rows = append(l.Rows, LayoutRow{
			Description:  truncate(desc, maxDescriptionChars),
			Collaborator: truncate(name, maxCollaboratorChars),
			Hours:        domainbilling.FormatHours(hours),
			Amount:       domainbilling.FormatAmount(amount, currency),
		})
	}

	// ── Totales ───────────────────────────────────────────────────────────────
	// Con entradas el total sale de las filas impresas, no de inv.Amount: tras editar
	// tarifas, horas (ADMIN) o el importe de la factura, ambos pueden diferir.
	var tax, total decimal.Decimal
	if len(data.Entries) > 0 {
		tax = domainbilling.TaxOf(subtotal, inv.TaxRate)
		total = subtotal.Add(tax)
	} else {
		total = inv.Amount
		subtotal = inv.Amount.DivRound(decimal.NewFromInt(1).Add(inv.TaxRate.Div(decimal.NewFromInt(100))), 4)
		tax = total.Sub(subtotal)
	}
	l.SubtotalLabel = "Sous-total :"
	l.Subtotal = domainbilling.FormatAmount(subtotal, currency)
	l.TaxLabel = fmt.Sprintf("TVA (%s%%) :", domainbilling.FormatRate(inv.TaxRate))
	l.Tax = domainbilling.FormatAmount(tax, currency)
	l.TotalLabel = "Total :"
	l.Total = domainbilling.FormatAmount(total, currency)

	// ── Estado, pago, notas, pie ──────────────────────────────────────────────
	l.Paid = inv.Paid
	if inv.Paid {
		l.Status = "STATUT: PAYÉE"
	} else {
		l.Status = "STATUT: EN ATTENTE"
	}
	l.PaymentLines = []string{
		"Informations de paiement :",
		"Banque: " + firm.BankName,
		"IBAN: " + firm.IBAN,
		"SWIFT: " + firm.SWIFT,
	}
	if strings.TrimSpace(inv.Notes) != "" {
		l.NotesLines = wrapWords(inv.Notes, notesColumns)
	}
	l.FooterLines = []string{
		strings.TrimSpace(firm.Name + " - " + firm.Tagline),
		firm.ContactEmail + " - " + firm.ContactPhone,
	}
	return l, nil
}

// Text todo el texto visible en orden de lectura.
func (l InvoiceLayout) Text() []string {
	out := []string{l.FirmName, l.FirmTagline, l.Title}
	out = append(out, l.MetaLines...)
	out = append(out, "Client")
	out = append(out, l.ClientLines...)
	out = append(out, "Description", "Collaborateur", "Heures", "Montant")
	for _, r := range l.Rows {
		out = append(out, r.Description, r.Collaborator, r.Hours, r.Amount)
	}
	out = append(out,
		l.SubtotalLabel, l.Subtotal,
		l.TaxLabel, l.Tax,
		l.TotalLabel, l.Total,
		l.Status,
	)
	out = append(out, l.PaymentLines...)
	if len(l.NotesLines) > 0 {
		out = append(out, "Notes :")
		out = append(out, l.NotesLines...)
	}
	return append(out, l.FooterLines...)
}

// truncate corta por runas; el resultado con "..." no supera max.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// wrapWords parte el texto en líneas de hasta width runas sin cortar palabras.
// Una palabra más larga que width queda sola en su línea.
func wrapWords(s string, width int) []string {
	var (
		lines []string
		cur   strings.Builder
		n     int
	)
	for _, w := range strings.Fields(s) {
		wl := len([]rune(w))
		if n > 0 && n+1+wl > width {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(w)
		n += wl
	}
	if n > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func vatLine(vat string) string {
	if strings.TrimSpace(vat) == "" {
		return ""
	}
	return "N° TVA: " + strings.TrimSpace(vat)
}

func nonEmptyLines(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
