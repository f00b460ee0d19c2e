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

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (dossiers).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste un dossier. Referencia repetida: domain.ErrDuplicate.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `
		INSERT INTO documents (id, reference, title, client_id, creator_id, responsable_id, department_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Reference, d.Title, d.ClientID, d.CreatorID,
		nullIfEmpty(d.ResponsableID), nullIfEmpty(d.DepartmentID), string(d.Status),
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: referencia de dossier", domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return domain.NotFound("cliente o usuario")
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un dossier; nil, nil si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	query := `
		SELECT id, reference, title, client_id, creator_id, responsable_id, department_id, status, created_at, updated_at
		FROM documents WHERE id = $1`
	var (
		d          entity.Document
		resp, dept *string
		status     string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Reference, &d.Title, &d.ClientID, &d.CreatorID, &resp, &dept, &status,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	d.ResponsableID = derefStr(resp)
	d.DepartmentID = derefStr(dept)
	d.Status = entity.DocumentStatus(status)
	return &d, nil
}

// Update persiste título, responsable, departamento y estado.
func (r *DocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	query := `
		UPDATE documents
		SET title = $2, responsable_id = $3, department_id = $4, status = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		d.ID, d.Title, nullIfEmpty(d.ResponsableID), nullIfEmpty(d.DepartmentID), string(d.Status), d.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("usuario o departamento")
		}
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("dossier")
	}
	return nil
}

// Delete elimina el dossier con sus listas, tareas y tiempo. Con facturas la FK
// (ON DELETE RESTRICT) lo impide: domain.ErrDocumentHasInvoices.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrDocumentHasInvoices
		}
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("dossier")
	}
	return nil
}
