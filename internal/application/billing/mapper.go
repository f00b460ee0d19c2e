package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dhavocats/cabinet-api/internal/application/dto"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func toInvoiceResponse(inv *entity.Invoice, lines []dto.LineItem) dto.InvoiceResponse {
	out := dto.InvoiceResponse{
		ID:          inv.ID,
		Reference:   inv.Reference,
		DocumentID:  inv.DocumentID,
		ClientID:    inv.ClientID,
		Amount:      inv.Amount,
		TaxRate:     inv.TaxRate,
		IssueDate:   formatTime(inv.IssueDate),
		DueDate:     formatTime(inv.DueDate),
		Paid:        inv.Paid,
		Status:      string(inv.Status),
		Notes:       inv.Notes,
		IssuedByID:  inv.IssuedByID,
		TimeEntries: lines,
	}
	if inv.PaymentDate != nil {
		out.PaymentDate = formatTime(*inv.PaymentDate)
	}
	return out
}

// toLineItem monto = horas × tarifa; sin tarifa (solo lectura de facturas antiguas) el monto es 0.
func toLineItem(e *entity.TimeEntryDetail) dto.LineItem {
	rate := decimal.Zero
	if e.HourlyRate != nil {
		rate = *e.HourlyRate
	}
	return dto.LineItem{
		TimeEntryID:      e.ID,
		CollaboratorName: e.CollaboratorName(),
		TaskGroupName:    e.ListName,
		Hours:            e.HoursSpent,
		HourlyRate:       rate,
		LineAmount:       e.HoursSpent.Mul(rate),
		Description:      e.Description,
		Date:             formatTime(e.Date),
	}
}

func toLineItems(entries []*entity.TimeEntryDetail) []dto.LineItem {
	out := make([]dto.LineItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLineItem(e))
	}
	return out
}
