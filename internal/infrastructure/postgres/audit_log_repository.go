package postgres

import (
	"context"
	"fmt"

	"github.com/dhavocats/cabinet-api/internal/domain/entity"
	"github.com/dhavocats/cabinet-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo historial de dossiers sobre PostgreSQL.
type AuditLogRepo struct {
	q Querier
}

func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create inserta una entrada del historial.
func (r *AuditLogRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_logs (id, document_id, user_id, action, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		log.ID, log.DocumentID, nullIfEmpty(log.UserID), log.Action, log.Message, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
