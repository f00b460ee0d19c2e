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

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación de TaskRepository.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador de tareas.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

// Create persiste una tarea.
func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO tasks (id, list_id, title, description, assignee_id, created_by_id, status, max_time_hours, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ListID, t.Title, nullIfEmpty(t.Description), nullIfEmpty(t.AssigneeID), t.CreatedByID,
		string(t.Status), t.MaxTimeHours, t.DueDate, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("lista o usuario")
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea; nil, nil si no existe.
func (r *TaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	query := `
		SELECT id, list_id, title, description, assignee_id, created_by_id, status, max_time_hours, due_date, created_at, updated_at
		FROM tasks WHERE id = $1`
	var (
		t              entity.Task
		desc, assignee *string
		status         string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.ListID, &t.Title, &desc, &assignee, &t.CreatedByID, &status,
		&t.MaxTimeHours, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	t.Description = derefStr(desc)
	t.AssigneeID = derefStr(assignee)
	t.Status = entity.TaskStatus(status)
	return &t, nil
}

// Update persiste los campos editables de la tarea.
func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, assignee_id = $4, status = $5,
		    max_time_hours = $6, due_date = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.Title, nullIfEmpty(t.Description), nullIfEmpty(t.AssigneeID), string(t.Status),
		t.MaxTimeHours, t.DueDate, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("usuario")
		}
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("tarea")
	}
	return nil
}
