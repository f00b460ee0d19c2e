package billing

import (
	"context"

	"github.com/dhavocats/cabinet-api/internal/domain/entity"
	"github.com/dhavocats/cabinet-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los repos de facturación.
// Si fn retorna error se hace rollback de todo lo escrito con esos repos.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		entryRepo repository.TimeEntryRepository,
	) error) error
}

// InvoicePDFGenerator dibuja la factura. Debe ser determinista: mismos datos, mismo texto visible.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, data InvoicePDFData) ([]byte, error)
}

// InvoicePDFData todo lo que el PDF necesita, ya cargado y validado.
type InvoicePDFData struct {
	Invoice  *entity.Invoice
	Document *entity.Document
	Client   *entity.Client
	Entries  []*entity.TimeEntryDetail
}
