package matter

import (
	"github.com/dhavocats/cabinet-api/internal/application/dto"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

func toDocumentResponse(d *entity.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:            d.ID,
		Reference:     d.Reference,
		Title:         d.Title,
		ClientID:      d.ClientID,
		CreatorID:     d.CreatorID,
		ResponsableID: d.ResponsableID,
		DepartmentID:  d.DepartmentID,
		Status:        string(d.Status),
		CreatedAt:     formatTime(d.CreatedAt),
		UpdatedAt:     formatTime(d.UpdatedAt),
	}
}

func toListResponse(l *entity.List) dto.ListResponse {
	return dto.ListResponse{ID: l.ID, DocumentID: l.DocumentID, Name: l.Name, Status: string(l.Status)}
}

func toTaskResponse(t *entity.Task) dto.TaskResponse {
	out := dto.TaskResponse{
		ID:           t.ID,
		ListID:       t.ListID,
		Title:        t.Title,
		Description:  t.Description,
		AssigneeID:   t.AssigneeID,
		CreatedByID:  t.CreatedByID,
		Status:       string(t.Status),
		MaxTimeHours: t.MaxTimeHours,
	}
	if t.DueDate != nil {
		out.DueDate = formatTime(*t.DueDate)
	}
	return out
}

func toTimeEntryResponse(e *entity.TimeEntryDetail) dto.TimeEntryResponse {
	out := dto.TimeEntryResponse{
		ID:               e.ID,
		TaskID:           e.TaskID,
		CollaboratorID:   e.CollaboratorID,
		CollaboratorName: e.CollaboratorName(),
		HoursSpent:       e.HoursSpent,
		Description:      e.Description,
		Date:             formatTime(e.Date),
		Invoiced:         e.Invoiced,
	}
	if e.InvoiceID != nil {
		out.InvoiceID = *e.InvoiceID
	}
	return out
}
