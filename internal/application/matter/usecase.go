// Package matter gestiona dossiers, sus listas, tareas y entradas de tiempo.
// Toda mutación pasa por la política de internal/domain/access.
package matter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
	"github.com/dhavocats/cabinet-api/internal/domain/repository"
)

// UseCase casos de uso del flujo de trabajo de un dossier.
type UseCase struct {
	documentRepo repository.DocumentRepository
	listRepo     repository.ListRepository
	taskRepo     repository.TaskRepository
	entryRepo    repository.TimeEntryRepository
	invoiceRepo  repository.InvoiceRepository
	userRepo     repository.UserRepository
	clientRepo   repository.ClientRepository
	auditRepo    repository.AuditLogRepository
	now          func() time.Time
}

// NewUseCase construye el caso de uso con los puertos de persistencia.
func NewUseCase(
	documentRepo repository.DocumentRepository,
	listRepo repository.ListRepository,
	taskRepo repository.TaskRepository,
	entryRepo repository.TimeEntryRepository,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	clientRepo repository.ClientRepository,
	auditRepo repository.AuditLogRepository,
) *UseCase {
	return &UseCase{
		documentRepo: documentRepo,
		listRepo:     listRepo,
		taskRepo:     taskRepo,
		entryRepo:    entryRepo,
		invoiceRepo:  invoiceRepo,
		userRepo:     userRepo,
		clientRepo:   clientRepo,
		auditRepo:    auditRepo,
		now:          time.Now,
	}
}

func (uc *UseCase) loadDocument(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := uc.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener dossier: %w", err)
	}
	if doc == nil {
		return nil, domain.NotFound("dossier")
	}
	return doc, nil
}

// loadList devuelve la lista y su dossier.
func (uc *UseCase) loadList(ctx context.Context, id string) (*entity.List, *entity.Document, error) {
	list, err := uc.listRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener lista: %w", err)
	}
	if list == nil {
		return nil, nil, domain.NotFound("lista")
	}
	doc, err := uc.loadDocument(ctx, list.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	return list, doc, nil
}

// loadTask recorre Task -> List -> Document.
func (uc *UseCase) loadTask(ctx context.Context, id string) (*entity.Task, *entity.Document, error) {
	task, err := uc.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener tarea: %w", err)
	}
	if task == nil {
		return nil, nil, domain.NotFound("tarea")
	}
	_, doc, err := uc.loadList(ctx, task.ListID)
	if err != nil {
		return nil, nil, err
	}
	return task, doc, nil
}

// requireUser verifica que el usuario exista (asignado, responsable).
func (uc *UseCase) requireUser(ctx context.Context, id, what string) (*entity.User, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener %s: %w", what, err)
	}
	if u == nil {
		return nil, domain.NotFound(what)
	}
	return u, nil
}

func requireActive(doc *entity.Document) error {
	if !doc.IsActive() {
		return fmt.Errorf("%w (%s)", domain.ErrDocumentNotActive, doc.Status)
	}
	return nil
}

// audit registra en el historial del dossier; un fallo solo se loguea.
func (uc *UseCase) audit(ctx context.Context, documentID, userID, action, message string) {
	if uc.auditRepo == nil {
		return
	}
	entry := &entity.AuditLog{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		UserID:     userID,
		Action:     action,
		Message:    message,
		CreatedAt:  uc.now(),
	}
	if err := uc.auditRepo.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Str("document_id", documentID).Str("action", action).Msg("no se pudo registrar el historial")
	}
}
