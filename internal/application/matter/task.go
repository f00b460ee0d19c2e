package matter

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dhavocats/cabinet-api/internal/application/dto"
	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/access"
	domainbilling "github.com/dhavocats/cabinet-api/internal/domain/billing"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

// defaultTaskStatus valor heredado que usa el frontend al crear una tarea.
const defaultTaskStatus = "todo"

// CreateList agrega una fase a un dossier activo. Requiere manage.
func (uc *UseCase) CreateList(ctx context.Context, actor access.Actor, in dto.CreateListRequest) (*dto.ListResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	doc, err := uc.loadDocument(ctx, in.DocumentID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(actor, access.ResourceOf(doc), access.Manage); err != nil {
		return nil, err
	}
	if err := requireActive(doc); err != nil {
		return nil, err
	}

	now := uc.now()
	list := &entity.List{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		Name:       strings.TrimSpace(in.Name),
		Status:     entity.ListOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.listRepo.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("crear lista: %w", err)
	}
	uc.audit(ctx, doc.ID, actor.ID, entity.AuditListCreated, fmt.Sprintf("Liste « %s » créée", list.Name))
	out := toListResponse(list)
	return &out, nil
}

// UpdateListStatus abre o cierra una lista. Requiere manage.
func (uc *UseCase) UpdateListStatus(ctx context.Context, actor access.Actor, id string, in dto.UpdateListStatusRequest) (*dto.ListResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	list, doc, err := uc.loadList(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(actor, access.ResourceOf(doc), access.Manage); err != nil {
		return nil, err
	}
	st, err := entity.ParseListStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if err := uc.listRepo.UpdateStatus(ctx, list.ID, st); err != nil {
		return nil, fmt.Errorf("actualizar lista: %w", err)
	}
	list.Status = st
	out := toListResponse(list)
	return &out, nil
}

// CreateTask crea una tarea en una lista de un dossier activo. Requiere manage sobre el dossier.
// El estado acepta el vocabulario heredado; vacío = "todo".
func (uc *UseCase) CreateTask(ctx context.Context, actor access.Actor, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	list, doc, err := uc.loadList(ctx, in.ListID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(actor, access.ResourceOf(doc), access.Manage); err != nil {
		return nil, err
	}
	if err := requireActive(doc); err != nil {
		return nil, err
	}

	raw := in.Status
	if strings.TrimSpace(raw) == "" {
		raw = defaultTaskStatus
	}
	status, err := entity.ParseTaskStatus(raw)
	if err != nil {
		return nil, err
	}
	if in.AssigneeID != "" {
		if _, err := uc.requireUser(ctx, in.AssigneeID, "asignado"); err != nil {
			return nil, err
		}
	}
	if err := checkMaxTimeHours(in.MaxTimeHours); err != nil {
		return nil, err
	}

	now := uc.now()
	task := &entity.Task{
		ID:           uuid.New().String(),
		ListID:       list.ID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		AssigneeID:   in.AssigneeID,
		CreatedByID:  actor.ID,
		Status:       status,
		MaxTimeHours: in.MaxTimeHours,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.DueDate != "" {
		due, ok := domainbilling.ParseDate(in.DueDate)
		if !ok {
			return nil, domain.ErrInvalidDueDate
		}
		task.DueDate = &due
	}
	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("crear tarea: %w", err)
	}
	uc.audit(ctx, doc.ID, actor.ID, entity.AuditTaskCreated, fmt.Sprintf("Tâche « %s » créée", task.Title))
	out := toTaskResponse(task)
	return &out, nil
}

// UpdateTask requiere edit sobre la tarea; su asignado siempre puede.
func (uc *UseCase) UpdateTask(ctx context.Context, actor access.Actor, id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	task, doc, err := uc.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOnTask(actor, access.ResourceOf(doc), task.AssigneeID, access.Edit); err != nil {
		return nil, err
	}

	previous := task.Status
	if in.Status != nil {
		st, err := entity.ParseTaskStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		task.Status = st
	}
	if in.Title != nil {
		task.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.MaxTimeHours != nil {
		if err := checkMaxTimeHours(in.MaxTimeHours); err != nil {
			return nil, err
		}
		task.MaxTimeHours = in.MaxTimeHours
	}
	if in.DueDate != nil {
		if *in.DueDate == "" {
			task.DueDate = nil
		} else {
			due, ok := domainbilling.ParseDate(*in.DueDate)
			if !ok {
				return nil, domain.ErrInvalidDueDate
			}
			task.DueDate = &due
		}
	}
	task.UpdatedAt = uc.now()
	if err := uc.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("actualizar tarea: %w", err)
	}
	if task.Status != previous {
		uc.audit(ctx, doc.ID, actor.ID, entity.AuditTaskStatusChange,
			fmt.Sprintf("Tâche « %s »: %s → %s", task.Title, previous, task.Status))
	}
	out := toTaskResponse(task)
	return &out, nil
}

// AssignTask reasigna la tarea. Requiere manage sobre el dossier (el asignado actual no basta).
func (uc *UseCase) AssignTask(ctx context.Context, actor access.Actor, id string, in dto.AssignTaskRequest) (*dto.TaskResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	task, doc, err := uc.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(actor, access.ResourceOf(doc), access.Manage); err != nil {
		return nil, err
	}
	assignee, err := uc.requireUser(ctx, in.AssigneeID, "asignado")
	if err != nil {
		return nil, err
	}

	task.AssigneeID = assignee.ID
	task.UpdatedAt = uc.now()
	if err := uc.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("asignar tarea: %w", err)
	}
	uc.audit(ctx, doc.ID, actor.ID, entity.AuditTaskAssigned,
		fmt.Sprintf("Tâche « %s » assignée à %s", task.Title, assignee.FullName()))
	out := toTaskResponse(task)
	return &out, nil
}

// checkMaxTimeHours mismo formato que las horas registradas (NUMERIC(8,2)); cero se admite.
func checkMaxTimeHours(h *decimal.Decimal) error {
	if h == nil {
		return nil
	}
	if h.IsNegative() {
		return fmt.Errorf("%w: maxTimeHours negativo", domain.ErrInvalidInput)
	}
	if !domainbilling.FitsScale(*h) {
		return fmt.Errorf("%w (maxTimeHours)", domain.ErrTooManyDecimals)
	}
	if h.GreaterThanOrEqual(maxHours) {
		return fmt.Errorf("%w: maxTimeHours fuera de rango", domain.ErrInvalidInput)
	}
	return nil
}
