package matter

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dhavocats/cabinet-api/internal/application/dto"
	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/access"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

// CreateDocument abre un dossier. Solo ADMIN, BOARD y ASSOCIATE.
func (uc *UseCase) CreateDocument(ctx context.Context, actor access.Actor, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !access.CanCreateDocument(actor) {
		return nil, domain.ErrForbidden
	}
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if client == nil {
		return nil, domain.NotFound("cliente")
	}
	if in.ResponsableID != "" {
		if _, err := uc.requireUser(ctx, in.ResponsableID, "responsable"); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	doc := &entity.Document{
		ID:            uuid.New().String(),
		Reference:     strings.TrimSpace(in.Reference),
		Title:         strings.TrimSpace(in.Title),
		ClientID:      client.ID,
		CreatorID:     actor.ID,
		ResponsableID: in.ResponsableID,
		DepartmentID:  in.DepartmentID,
		Status:        entity.DocumentActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	out := toDocumentResponse(doc)
	return &out, nil
}

// GetDocument requiere view sobre el dossier.
func (uc *UseCase) GetDocument(ctx context.Context, actor access.Actor, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.loadDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(actor, access.ResourceOf(doc), access.View); err != nil {
		return nil, err
	}
	out := toDocumentResponse(doc)
	return &out, nil
}

// UpdateDocument requiere manage. Un cambio de estado queda en el historial.
func (uc *UseCase) UpdateDocument(ctx context.Context, actor access.Actor, id string, in dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	doc, err := uc.loadDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(actor, access.ResourceOf(doc), access.Manage); err != nil {
		return nil, err
	}

	previous := doc.Status
	if in.Status != nil {
		st, err := entity.ParseDocumentStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		doc.Status = st
	}
	if in.Title != nil {
		doc.Title = strings.TrimSpace(*in.Title)
	}
	if in.ResponsableID != nil {
		if *in.ResponsableID != "" {
			if _, err := uc.requireUser(ctx, *in.ResponsableID, "responsable"); err != nil {
				return nil, err
			}
		}
		doc.ResponsableID = *in.ResponsableID
	}
	doc.UpdatedAt = uc.now()
	if err := uc.documentRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("actualizar dossier: %w", err)
	}
	if doc.Status != previous {
		uc.audit(ctx, doc.ID, actor.ID, entity.AuditStatusChange,
			fmt.Sprintf("Statut du dossier: %s → %s", previous, doc.Status))
	}
	out := toDocumentResponse(doc)
	return &out, nil
}

// DeleteDocument solo ADMIN, BOARD y ASSOCIATE. Un dossier con facturas no se borra:
// se perderían facturas pagadas y el tiempo ya facturado (domain.ErrDocumentHasInvoices).
func (uc *UseCase) DeleteDocument(ctx context.Context, actor access.Actor, id string) error {
	if !access.CanCreateDocument(actor) {
		return domain.ErrForbidden
	}
	if _, err := uc.loadDocument(ctx, id); err != nil {
		return err
	}
	invoices, err := uc.invoiceRepo.ListByDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("listar facturas del dossier: %w", err)
	}
	if len(invoices) > 0 {
		return fmt.Errorf("%w (%d)", domain.ErrDocumentHasInvoices, len(invoices))
	}
	return uc.documentRepo.Delete(ctx, id)
}
