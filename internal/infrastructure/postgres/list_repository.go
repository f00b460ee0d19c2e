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

var _ repository.ListRepository = (*ListRepo)(nil)

// ListRepo implementación de ListRepository.
type ListRepo struct {
	q Querier
}

// NewListRepository construye el adaptador de listas.
func NewListRepository(q Querier) *ListRepo {
	return &ListRepo{q: q}
}

// Create persiste una lista.
func (r *ListRepo) Create(ctx context.Context, l *entity.List) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO lists (id, document_id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.DocumentID, l.Name, string(l.Status), l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("dossier")
		}
		return fmt.Errorf("insert list: %w", err)
	}
	return nil
}

// GetByID obtiene una lista; nil, nil si no existe.
func (r *ListRepo) GetByID(ctx context.Context, id string) (*entity.List, error) {
	var (
		l      entity.List
		status string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, document_id, name, status, created_at, updated_at
		FROM lists WHERE id = $1`, id,
	).Scan(&l.ID, &l.DocumentID, &l.Name, &status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get list: %w", err)
	}
	l.Status = entity.ListStatus(status)
	return &l, nil
}

// UpdateStatus cambia el estado de la lista.
func (r *ListRepo) UpdateStatus(ctx context.Context, id string, status entity.ListStatus) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE lists SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update list status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("lista")
	}
	return nil
}
