package repository

import (
	"context"

	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

// AuditLogRepository historial de acciones sobre un dossier.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
}
