package repository

import (
	"context"

	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para Document (dossier).
type DocumentRepository interface {
	// Create devuelve domain.ErrDuplicate si la referencia ya existe.
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	Update(ctx context.Context, doc *entity.Document) error
	Delete(ctx context.Context, id string) error
}
