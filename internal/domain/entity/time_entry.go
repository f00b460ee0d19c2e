package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry horas dedicadas por un colaborador a una tarea.
// InvoiceID nil = no facturada. Una vez enlazada a una factura no se modifica salvo corrección administrativa.
type TimeEntry struct {
	ID             string
	TaskID         string
	CollaboratorID string
	HoursSpent     decimal.Decimal
	Description    string
	Date           time.Time
	InvoiceID      *string
	Invoiced       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TimeEntryDetail proyección de una entrada con los datos que necesitan la facturación y el PDF.
type TimeEntryDetail struct {
	TimeEntry
	CollaboratorFirstName string
	CollaboratorLastName  string
	HourlyRate            *decimal.Decimal
	ListName              string
	DocumentID            string
}

// CollaboratorName nombre completo del colaborador.
func (d *TimeEntryDetail) CollaboratorName() string {
	u := User{FirstName: d.CollaboratorFirstName, LastName: d.CollaboratorLastName}
	return u.FullName()
}
