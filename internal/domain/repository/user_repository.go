package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateBillingProfile cambia rol y tarifa horaria; un rate nil borra la tarifa.
	UpdateBillingProfile(ctx context.Context, id string, role entity.Role, rate *decimal.Decimal) error
}
