package dto

import "github.com/shopspring/decimal"

// GenerateInvoiceRequest body para POST /api/invoices/generate.
// Sin TimeEntryIDs se toman las entradas del dossier filtradas por OnlyUninvoiced (por defecto true) y StartDate.
type GenerateInvoiceRequest struct {
	DocumentID     string           `json:"documentId" validate:"required,uuid"`
	TimeEntryIDs   []string         `json:"timeEntryIds,omitempty" validate:"omitempty,dive,uuid"`
	StartDate      string           `json:"startDate,omitempty"`
	DueDate        string           `json:"dueDate,omitempty"`
	OnlyUninvoiced *bool            `json:"onlyUninvoiced,omitempty"`
	CustomTaxRate  *decimal.Decimal `json:"customTaxRate,omitempty" swaggertype:"number"`
	Notes          string           `json:"notes,omitempty" validate:"max=2000"`
}

// CreateInvoiceRequest body para POST /api/invoices (creación manual, sin entradas de tiempo).
// Reference vacía = se genera; IssuedByID vacío = el usuario autenticado; ClientID vacío = cliente del dossier.
type CreateInvoiceRequest struct {
	Reference  string           `json:"reference,omitempty" validate:"omitempty,max=120"`
	DocumentID string           `json:"documentId" validate:"required,uuid"`
	ClientID   string           `json:"clientId,omitempty" validate:"omitempty,uuid"`
	Amount     *decimal.Decimal `json:"amount,omitempty" swaggertype:"number"`
	TaxRate    *decimal.Decimal `json:"taxRate,omitempty" swaggertype:"number"`
	DueDate    string           `json:"dueDate,omitempty"`
	IssuedByID string           `json:"issuedById,omitempty" validate:"omitempty,uuid"`
	Notes      string           `json:"notes,omitempty" validate:"max=2000"`
}

// UpdateInvoiceRequest body para PATCH /api/invoices/:id. Solo se aplican los campos enviados.
type UpdateInvoiceRequest struct {
	Notes   *string          `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Status  *string          `json:"status,omitempty"`
	DueDate *string          `json:"dueDate,omitempty"`
	Amount  *decimal.Decimal `json:"amount,omitempty" swaggertype:"number"`
	TaxRate *decimal.Decimal `json:"taxRate,omitempty" swaggertype:"number"`
}

// MarkPaidRequest body para PATCH /api/invoices/:id/mark-paid.
type MarkPaidRequest struct {
	PaymentDate string `json:"paymentDate,omitempty"`
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference"`
	DocumentID  string          `json:"documentId"`
	ClientID    string          `json:"clientId"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"number"`
	TaxRate     decimal.Decimal `json:"taxRate" swaggertype:"number"`
	IssueDate   string          `json:"issueDate"`
	DueDate     string          `json:"dueDate"`
	Paid        bool            `json:"paid"`
	PaymentDate string          `json:"paymentDate,omitempty"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	IssuedByID  string          `json:"issuedById"`
	TimeEntries []LineItem      `json:"timeEntries,omitempty"`
}

// LineItem línea facturada (una por entrada de tiempo).
type LineItem struct {
	TimeEntryID      string          `json:"timeEntryId"`
	CollaboratorName string          `json:"collaboratorName"`
	TaskGroupName    string          `json:"taskGroupName"`
	Hours            decimal.Decimal `json:"hours" swaggertype:"number"`
	HourlyRate       decimal.Decimal `json:"hourlyRate" swaggertype:"number"`
	LineAmount       decimal.Decimal `json:"lineAmount" swaggertype:"number"`
	Description      string          `json:"description"`
	Date             string          `json:"date"`
}

// InvoiceSummary totales de una factura generada.
type InvoiceSummary struct {
	TotalHours decimal.Decimal `json:"totalHours" swaggertype:"number"`
	Subtotal   decimal.Decimal `json:"subtotal" swaggertype:"number"`
	TaxAmount  decimal.Decimal `json:"taxAmount" swaggertype:"number"`
	Total      decimal.Decimal `json:"total" swaggertype:"number"`
}

// GenerateInvoiceResponse respuesta 201 de POST /api/invoices/generate.
type GenerateInvoiceResponse struct {
	Invoice InvoiceResponse `json:"invoice"`
	Details []LineItem      `json:"details"`
	Summary InvoiceSummary  `json:"summary"`
}
