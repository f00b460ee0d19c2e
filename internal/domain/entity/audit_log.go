package entity

import "time"

// Acciones registradas en el historial de un dossier.
const (
	AuditStatusChange     = "STATUS_CHANGE"
	AuditListCreated      = "LIST_CREATED"
	AuditTaskCreated      = "TASK_CREATED"
	AuditTaskStatusChange = "TASK_STATUS_CHANGE"
	AuditTaskAssigned     = "TASK_ASSIGNED"
	AuditInvoiceGenerated = "INVOICE_GENERATED"
	AuditInvoiceDeleted   = "INVOICE_DELETED"
	AuditInvoicedTimeEdit = "INVOICED_TIME_EDIT"
)

// AuditLog entrada del historial de un dossier.
type AuditLog struct {
	ID         string
	DocumentID string
	UserID     string
	Action     string
	Message    string
	CreatedAt  time.Time
}
