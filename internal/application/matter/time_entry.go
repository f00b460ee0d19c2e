package matter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dhavocats/cabinet-api/internal/application/dto"
	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/access"
	domainbilling "github.com/dhavocats/cabinet-api/internal/domain/billing"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

// CreateTimeEntry registra horas del actor sobre una tarea de un dossier activo.
// Requiere edit sobre la tarea. Sin fecha se usa el día actual.
func (uc *UseCase) CreateTimeEntry(ctx context.Context, actor access.Actor, in dto.CreateTimeEntryRequest) (*dto.TimeEntryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := checkHours(in.HoursSpent); err != nil {
		return nil, err
	}
	task, doc, err := uc.loadTask(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOnTask(actor, access.ResourceOf(doc), task.AssigneeID, access.Edit); err != nil {
		return nil, err
	}
	if err := requireActive(doc); err != nil {
		return nil, err
	}

	now := uc.now()
	date := now
	if in.Date != "" {
		d, ok := domainbilling.ParseDate(in.Date)
		if !ok {
			return nil, fmt.Errorf("%w: date", domain.ErrInvalidDate)
		}
		date = d
	}
	entry := &entity.TimeEntry{
		ID:             uuid.New().String(),
		TaskID:         task.ID,
		CollaboratorID: actor.ID,
		HoursSpent:     in.HoursSpent,
		Description:    in.Description,
		Date:           date,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("crear entrada de tiempo: %w", err)
	}
	out := toTimeEntryResponse(&entity.TimeEntryDetail{TimeEntry: *entry})
	return &out, nil
}

// ListTimeEntriesByTask requiere view sobre el dossier de la tarea.
func (uc *UseCase) ListTimeEntriesByTask(ctx context.Context, actor access.Actor, taskID string) ([]dto.TimeEntryResponse, error) {
	task, doc, err := uc.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOnTask(actor, access.ResourceOf(doc), task.AssigneeID, access.View); err != nil {
		return nil, err
	}
	entries, err := uc.entryRepo.ListByTask(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("listar entradas de tiempo: %w", err)
	}
	out := make([]dto.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toTimeEntryResponse(e))
	}
	return out, nil
}

// UpdateTimeEntry corrige horas, descripción o fecha. Ver requireEntryWrite.
func (uc *UseCase) UpdateTimeEntry(ctx context.Context, actor access.Actor, id string, in dto.UpdateTimeEntryRequest) (*dto.TimeEntryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.HoursSpent != nil {
		if err := checkHours(*in.HoursSpent); err != nil {
			return nil, err
		}
	}
	var date *time.Time
	if in.Date != nil {
		d, ok := domainbilling.ParseDate(*in.Date)
		if !ok {
			return nil, fmt.Errorf("%w: date", domain.ErrInvalidDate)
		}
		date = &d
	}
	entry, doc, err := uc.loadEntryForWrite(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != entity.RoleAdmin {
		if err := requireActive(doc); err != nil {
			return nil, err
		}
	}

	before := entry.HoursSpent
	if in.HoursSpent != nil {
		entry.HoursSpent = *in.HoursSpent
	}
	if in.Description != nil {
		entry.Description = *in.Description
	}
	if date != nil {
		entry.Date = *date
	}
	entry.UpdatedAt = uc.now()
	if err := uc.entryRepo.Update(ctx, &entry.TimeEntry); err != nil {
		return nil, fmt.Errorf("actualizar entrada de tiempo: %w", err)
	}
	if entry.InvoiceID != nil {
		uc.audit(ctx, doc.ID, actor.ID, entity.AuditInvoicedTimeEdit,
			fmt.Sprintf("Temps facturé corrigé: %s h → %s h", before, entry.HoursSpent))
	}
	out := toTimeEntryResponse(entry)
	return &out, nil
}

// DeleteTimeEntry elimina una entrada. Ver requireEntryWrite.
func (uc *UseCase) DeleteTimeEntry(ctx context.Context, actor access.Actor, id string) error {
	entry, doc, err := uc.loadEntryForWrite(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.entryRepo.Delete(ctx, entry.ID); err != nil {
		return fmt.Errorf("eliminar entrada de tiempo: %w", err)
	}
	if entry.InvoiceID != nil {
		uc.audit(ctx, doc.ID, actor.ID, entity.AuditInvoicedTimeEdit,
			fmt.Sprintf("Temps facturé supprimé: %s h", entry.HoursSpent))
	}
	return nil
}

// loadEntryForWrite carga la entrada y aplica las reglas de escritura:
// su autor (con edit sobre la tarea) o quien tenga manage sobre el dossier.
// Una entrada ya facturada solo la corrige ADMIN (domain.ErrEntriesAlreadyInvoiced).
func (uc *UseCase) loadEntryForWrite(ctx context.Context, actor access.Actor, id string) (*entity.TimeEntryDetail, *entity.Document, error) {
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener entrada de tiempo: %w", err)
	}
	if entry == nil {
		return nil, nil, domain.NotFound("entrada de tiempo")
	}
	task, doc, err := uc.loadTask(ctx, entry.TaskID)
	if err != nil {
		return nil, nil, err
	}
	res := access.ResourceOf(doc)
	author := actor.ID == entry.CollaboratorID && access.CanOnTask(actor, res, task.AssigneeID, access.Edit)
	if !author && !access.Can(actor, res, access.Manage) {
		return nil, nil, domain.ErrForbidden
	}
	if entry.InvoiceID != nil && actor.Role != entity.RoleAdmin {
		return nil, nil, domain.ErrEntriesAlreadyInvoiced
	}
	return entry, doc, nil
}

// maxHours límite exclusivo de NUMERIC(8,2).
var maxHours = decimal.New(1, 6)

// checkHours horas > 0 con dos decimales como máximo: la columna es NUMERIC(8,2).
func checkHours(h decimal.Decimal) error {
	if !h.IsPositive() {
		return fmt.Errorf("%w: hoursSpent debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !domainbilling.FitsScale(h) {
		return fmt.Errorf("%w (hoursSpent)", domain.ErrTooManyDecimals)
	}
	if h.GreaterThanOrEqual(maxHours) {
		return fmt.Errorf("%w: hoursSpent fuera de rango", domain.ErrInvalidInput)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
