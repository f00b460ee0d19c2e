package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dhavocats/cabinet-api/internal/domain"
)

// InvoiceStatus estado de una factura.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// ParseInvoiceStatus valida el estado recibido.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch st := InvoiceStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return st, nil
	}
	return "", domain.ErrInvalidStatus
}

// Invoice factura de un dossier. Amount incluye impuestos y se fija al crearla;
// no se recalcula si cambian las tarifas.
type Invoice struct {
	ID          string
	Reference   string
	DocumentID  string
	ClientID    string
	Amount      decimal.Decimal
	TaxRate     decimal.Decimal // porcentaje, ej. 19.25
	IssueDate   time.Time
	DueDate     time.Time
	Paid        bool
	PaymentDate *time.Time
	Status      InvoiceStatus
	Notes       string
	IssuedByID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
