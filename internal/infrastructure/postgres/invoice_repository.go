package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
	"github.com/dhavocats/cabinet-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la factura. Referencia repetida: domain.ErrReferenceTaken.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, reference, document_id, client_id, amount, tax_rate, issue_date, due_date,
		                      paid, payment_date, status, notes, issued_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Reference, inv.DocumentID, inv.ClientID, inv.Amount, inv.TaxRate,
		inv.IssueDate, inv.DueDate, inv.Paid, inv.PaymentDate, string(inv.Status),
		nullIfEmpty(inv.Notes), inv.IssuedByID, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrReferenceTaken
		}
		if isForeignKeyViolation(err) {
			return domain.NotFound("dossier, cliente o emisor")
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

const invoiceSelect = `
		SELECT id, reference, document_id, client_id, amount, tax_rate, issue_date, due_date,
		       paid, payment_date, status, notes, issued_by_id, created_at, updated_at
		FROM invoices`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv    entity.Invoice
		status string
		notes  *string
	)
	if err := row.Scan(
		&inv.ID, &inv.Reference, &inv.DocumentID, &inv.ClientID, &inv.Amount, &inv.TaxRate,
		&inv.IssueDate, &inv.DueDate, &inv.Paid, &inv.PaymentDate, &status,
		&notes, &inv.IssuedByID, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	inv.Notes = derefStr(notes)
	return &inv, nil
}

// GetByID obtiene una factura; nil, nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, invoiceSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// ListByDocument facturas del dossier por fecha de emisión descendente.
func (r *InvoiceRepo) ListByDocument(ctx context.Context, documentID string) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, invoiceSelect+`
		WHERE document_id = $1
		ORDER BY issue_date DESC, id`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list invoices by document: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update persiste los campos editables; reference, dossier y cliente no cambian.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET notes = $2, status = $3, due_date = $4, amount = $5, tax_rate = $6,
		    paid = $7, payment_date = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, nullIfEmpty(inv.Notes), string(inv.Status), inv.DueDate, inv.Amount, inv.TaxRate,
		inv.Paid, inv.PaymentDate, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("factura")
	}
	return nil
}

// Delete elimina la factura. Las entradas se desenlazan antes en la misma transacción.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("factura")
	}
	return nil
}
