package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/dhavocats/cabinet-api/internal/domain"
)

// TaskStatus estado canónico de una tarea.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
	TaskCancelled  TaskStatus = "CANCELLED"
	TaskSuspended  TaskStatus = "SUSPENDED"
)

// taskStatusTable cubre el vocabulario del frontend ("todo", "completed"...) y el del backend
// ("PENDING", "DONE"...). Las claves van en minúsculas; la entrada se normaliza antes de buscar.
var taskStatusTable = map[string]TaskStatus{
	"todo":        TaskPending,
	"pending":     TaskPending,
	"in_progress": TaskInProgress,
	"review":      TaskInProgress,
	"completed":   TaskDone,
	"done":        TaskDone,
	"cancelled":   TaskCancelled,
	"suspended":   TaskSuspended,
}

// ParseTaskStatus traduce cualquier valor heredado al estado canónico.
// Un valor fuera de la tabla es ErrInvalidStatus; nunca se asume un estado por defecto.
func ParseTaskStatus(s string) (TaskStatus, error) {
	// cases.Caser no es seguro entre goroutines: uno por llamada.
	key := cases.Fold().String(strings.TrimSpace(s))
	st, ok := taskStatusTable[key]
	if !ok {
		return "", domain.ErrInvalidStatus
	}
	return st, nil
}

// Task unidad de trabajo dentro de una lista; acumula entradas de tiempo.
type Task struct {
	ID           string
	ListID       string
	Title        string
	Description  string
	AssigneeID   string // vacío = sin asignar
	CreatedByID  string
	Status       TaskStatus
	MaxTimeHours *decimal.Decimal
	DueDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
