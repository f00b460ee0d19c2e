package repository

import (
	"context"

	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	// Create devuelve domain.ErrReferenceTaken si la referencia ya existe.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// Update persiste notes, status, due_date, amount, tax_rate, paid y payment_date.
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	// ListByDocument facturas de un dossier, de la más reciente a la más antigua.
	ListByDocument(ctx context.Context, documentID string) ([]*entity.Invoice, error)
}
