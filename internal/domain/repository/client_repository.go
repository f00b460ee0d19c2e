package repository

import (
	"context"

	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	// Create y Update devuelven domain.ErrDuplicate si el email ya existe.
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	// Delete devuelve domain.ErrClientInUse si algún dossier o factura lo referencia.
	Delete(ctx context.Context, id string) error
}
