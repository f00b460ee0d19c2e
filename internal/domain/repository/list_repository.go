package repository

import (
	"context"

	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

// ListRepository define el puerto de persistencia para List.
type ListRepository interface {
	Create(ctx context.Context, list *entity.List) error
	GetByID(ctx context.Context, id string) (*entity.List, error)
	UpdateStatus(ctx context.Context, id string, status entity.ListStatus) error
}
