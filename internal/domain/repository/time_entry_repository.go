package repository

import (
	"context"
	"time"

	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

// BillingFilter selección de entradas de tiempo a facturar para un dossier.
// Con IDs no vacío solo se aplica la intersección con el dossier; OnlyUninvoiced y StartDate se ignoran.
type BillingFilter struct {
	DocumentID     string
	IDs            []string
	OnlyUninvoiced bool
	StartDate      *time.Time
}

// TimeEntryRepository define el puerto de persistencia para TimeEntry.
type TimeEntryRepository interface {
	Create(ctx context.Context, entry *entity.TimeEntry) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.TimeEntryDetail, error)
	// Update persiste hours_spent, description y date. No toca el enlace a la factura.
	Update(ctx context.Context, entry *entity.TimeEntry) error
	Delete(ctx context.Context, id string) error
	ListByTask(ctx context.Context, taskID string) ([]*entity.TimeEntryDetail, error)
	// ListForBilling bloquea las filas seleccionadas (FOR UPDATE) hasta el fin de la transacción.
	ListForBilling(ctx context.Context, filter BillingFilter) ([]*entity.TimeEntryDetail, error)
	// LinkToInvoice enlaza solo entradas con invoice_id NULL y devuelve cuántas filas cambió.
	LinkToInvoice(ctx context.Context, invoiceID string, entryIDs []string) (int64, error)
	// UnlinkInvoice pone invoice_id = NULL e invoiced = false en todas las entradas de la factura.
	UnlinkInvoice(ctx context.Context, invoiceID string) (int64, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.TimeEntryDetail, error)
}
