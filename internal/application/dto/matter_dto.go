package dto

import "github.com/shopspring/decimal"

// CreateDocumentRequest body para POST /api/documents.
type CreateDocumentRequest struct {
	Reference     string `json:"reference" validate:"required,max=60"`
	Title         string `json:"title" validate:"required,max=300"`
	ClientID      string `json:"clientId" validate:"required,uuid"`
	ResponsableID string `json:"responsableId,omitempty" validate:"omitempty,uuid"`
	DepartmentID  string `json:"departmentId" validate:"required,uuid"`
}

// UpdateDocumentRequest body para PATCH /api/documents/:id.
type UpdateDocumentRequest struct {
	Title         *string `json:"title,omitempty" validate:"omitempty,min=1,max=300"`
	Status        *string `json:"status,omitempty"`
	ResponsableID *string `json:"responsableId,omitempty" validate:"omitempty,uuid"`
}

// DocumentResponse dossier en respuestas.
type DocumentResponse struct {
	ID            string `json:"id"`
	Reference     string `json:"reference"`
	Title         string `json:"title"`
	ClientID      string `json:"clientId"`
	CreatorID     string `json:"creatorId"`
	ResponsableID string `json:"responsableId,omitempty"`
	DepartmentID  string `json:"departmentId"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// CreateListRequest body para POST /api/lists.
type CreateListRequest struct {
	DocumentID string `json:"documentId" validate:"required,uuid"`
	Name       string `json:"name" validate:"required,max=200"`
}

// UpdateListStatusRequest body para PATCH /api/lists/:id/status.
type UpdateListStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListResponse lista en respuestas.
type ListResponse struct {
	ID         string `json:"id"`
	DocumentID string `json:"documentId"`
	Name       string `json:"name"`
	Status     string `json:"status"`
}

// CreateTaskRequest body para POST /api/tasks. Status acepta el vocabulario heredado ("todo", "completed"...).
type CreateTaskRequest struct {
	ListID       string           `json:"listId" validate:"required,uuid"`
	Title        string           `json:"title" validate:"required,max=300"`
	Description  string           `json:"description,omitempty" validate:"max=4000"`
	AssigneeID   string           `json:"assigneeId,omitempty" validate:"omitempty,uuid"`
	Status       string           `json:"status,omitempty"`
	MaxTimeHours *decimal.Decimal `json:"maxTimeHours,omitempty" swaggertype:"number"`
	DueDate      string           `json:"dueDate,omitempty"`
}

// UpdateTaskRequest body para PATCH /api/tasks/:id.
type UpdateTaskRequest struct {
	Title        *string          `json:"title,omitempty" validate:"omitempty,min=1,max=300"`
	Description  *string          `json:"description,omitempty" validate:"omitempty,max=4000"`
	Status       *string          `json:"status,omitempty"`
	MaxTimeHours *decimal.Decimal `json:"maxTimeHours,omitempty" swaggertype:"number"`
	DueDate      *string          `json:"dueDate,omitempty"`
}

// AssignTaskRequest body para PATCH /api/tasks/:id/assign.
type AssignTaskRequest struct {
	AssigneeID string `json:"assigneeId" validate:"required,uuid"`
}

// TaskResponse tarea en respuestas.
type TaskResponse struct {
	ID           string           `json:"id"`
	ListID       string           `json:"listId"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	AssigneeID   string           `json:"assigneeId,omitempty"`
	CreatedByID  string           `json:"createdById"`
	Status       string           `json:"status"`
	MaxTimeHours *decimal.Decimal `json:"maxTimeHours,omitempty" swaggertype:"number"`
	DueDate      string           `json:"dueDate,omitempty"`
}

// CreateTimeEntryRequest body para POST /api/time-entries. Date vacía = hoy.
type CreateTimeEntryRequest struct {
	TaskID      string          `json:"taskId" validate:"required,uuid"`
	HoursSpent  decimal.Decimal `json:"hoursSpent" swaggertype:"number"`
	Description string          `json:"description,omitempty" validate:"max=2000"`
	Date        string          `json:"date,omitempty"`
}

// UpdateTimeEntryRequest body para PATCH /api/time-entries/:id. Un campo ausente no cambia.
type UpdateTimeEntryRequest struct {
	HoursSpent  *decimal.Decimal `json:"hoursSpent,omitempty" swaggertype:"number"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Date        *string          `json:"date,omitempty"`
}

// TimeEntryResponse entrada de tiempo en respuestas.
type TimeEntryResponse struct {
	ID               string          `json:"id"`
	TaskID           string          `json:"taskId"`
	CollaboratorID   string          `json:"collaboratorId"`
	CollaboratorName string          `json:"collaboratorName,omitempty"`
	HoursSpent       decimal.Decimal `json:"hoursSpent" swaggertype:"number"`
	Description      string          `json:"description,omitempty"`
	Date             string          `json:"date"`
	InvoiceID        string          `json:"invoiceId,omitempty"`
	Invoiced         bool            `json:"invoiced"`
}
