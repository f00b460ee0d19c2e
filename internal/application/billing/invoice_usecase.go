package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/dhavocats/cabinet-api/internal/application/dto"
	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/access"
	domainbilling "github.com/dhavocats/cabinet-api/internal/domain/billing"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
	"github.com/dhavocats/cabinet-api/internal/domain/repository"
)

// InvoiceUseCase genera y administra las facturas de un dossier.
// La selección de entradas, la creación de la factura y el enlace de las entradas van en una sola transacción.
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	invoiceRepo  repository.InvoiceRepository
	entryRepo    repository.TimeEntryRepository
	documentRepo repository.DocumentRepository
	clientRepo   repository.ClientRepository
	userRepo     repository.UserRepository
	auditRepo    repository.AuditLogRepository
	refs         *domainbilling.ReferenceGenerator
	settings     Settings
	now          func() time.Time
}

// NewInvoiceUseCase construye el caso de uso inyectando todas sus dependencias.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	entryRepo repository.TimeEntryRepository,
	documentRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	settings Settings,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		entryRepo:    entryRepo,
		documentRepo: documentRepo,
		clientRepo:   clientRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		refs:         domainbilling.NewReferenceGenerator(settings.ReferencePrefix),
		settings:     settings,
		now:          time.Now,
	}
}

// Generate factura las entradas de tiempo seleccionadas de un dossier.
//
// Retorna:
//   - domain.ErrNotFound               si el dossier no existe.
//   - domain.ErrForbidden              si el actor no puede gestionar el dossier.
//   - domain.ErrNoBillableEntries      si la selección queda vacía (no se crea factura).
//   - domain.ErrMissingHourlyRate      si algún colaborador no tiene tarifa.
//   - domain.ErrEntriesAlreadyInvoiced si otra factura enlazó alguna entrada antes (rollback).
func (uc *InvoiceUseCase) Generate(ctx context.Context, actor access.Actor, in dto.GenerateInvoiceRequest) (*dto.GenerateInvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	// ── 1. Dossier y permiso ──────────────────────────────────────────────────
	doc, err := uc.loadDocument(ctx, in.DocumentID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(actor, access.ResourceOf(doc), access.Manage); err != nil {
		return nil, err
	}

	// ── 2. Parámetros (antes de abrir la transacción) ─────────────────────────
	taxRate, err := domainbilling.ResolveTaxRate(decimalString(in.CustomTaxRate), uc.settings.DefaultTaxRate)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	dueDate, err := domainbilling.ResolveDueDate(in.DueDate, now, uc.settings.DueDays)
	if err != nil {
		return nil, err
	}
	filter := repository.BillingFilter{
		DocumentID:     doc.ID,
		IDs:            in.TimeEntryIDs,
		OnlyUninvoiced: in.OnlyUninvoiced == nil || *in.OnlyUninvoiced,
	}
	if in.StartDate != "" {
		start, ok := domainbilling.ParseDate(in.StartDate)
		if !ok {
			return nil, fmt.Errorf("%w: startDate", domain.ErrInvalidDate)
		}
		filter.StartDate = &start
	}

	// ── 3. Selección + factura + enlace en una transacción ────────────────────
	var (
		inv    *entity.Invoice
		lines  []dto.LineItem
		totals domainbilling.Totals
	)
	err = uc.withReferenceRetry(doc, now, func(reference string) error {
		return uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, entryRepo repository.TimeEntryRepository) error {
			entries, err := entryRepo.ListForBilling(ctx, filter)
			if err != nil {
				return fmt.Errorf("seleccionar entradas: %w", err)
			}
			if len(entries) == 0 {
				return domain.ErrNoBillableEntries
			}

			priced := make([]domainbilling.Line, 0, len(entries))
			items := make([]dto.LineItem, 0, len(entries))
			ids := make([]string, 0, len(entries))
			for _, e := range entries {
				line, err := domainbilling.PriceLine(e.HoursSpent, e.HourlyRate)
				if err != nil {
					return fmt.Errorf("entrada %s (%s): %w", e.ID, e.CollaboratorName(), err)
				}
				priced = append(priced, line)
				items = append(items, toLineItem(e))
				ids = append(ids, e.ID)
			}
			t := domainbilling.ComputeTotals(priced, taxRate)

			candidate := &entity.Invoice{
				ID:         uuid.New().String(),
				Reference:  reference,
				DocumentID: doc.ID,
				ClientID:   doc.ClientID,
				Amount:     t.Amount,
				TaxRate:    taxRate,
				IssueDate:  now,
				DueDate:    dueDate,
				Paid:       false,
				Status:     entity.InvoiceDraft,
				Notes:      in.Notes,
				IssuedByID: actor.ID,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := invoiceRepo.Create(ctx, candidate); err != nil {
				return err
			}

			linked, err := entryRepo.LinkToInvoice(ctx, candidate.ID, ids)
			if err != nil {
				return fmt.Errorf("enlazar entradas: %w", err)
			}
			if linked != int64(len(ids)) {
				return fmt.Errorf("%w: %d de %d", domain.ErrEntriesAlreadyInvoiced, len(ids)-int(linked), len(ids))
			}

			inv, lines, totals = candidate, items, t
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	uc.audit(ctx, doc.ID, actor.ID, entity.AuditInvoiceGenerated,
		fmt.Sprintf("Facture %s générée: %s", inv.Reference, domainbilling.FormatAmount(inv.Amount, uc.settings.Currency)))

	return &dto.GenerateInvoiceResponse{
		Invoice: toInvoiceResponse(inv, nil),
		Details: lines,
		Summary: dto.InvoiceSummary{
			TotalHours: totals.TotalHours,
			Subtotal:   totals.Subtotal,
			TaxAmount:  totals.TaxAmount,
			Total:      totals.Amount,
		},
	}, nil
}

// Create crea una factura manual sin entradas de tiempo. Monto y tasa los fija el usuario.
func (uc *InvoiceUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
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

	taxRate, err := domainbilling.ResolveTaxRate(decimalString(in.TaxRate), uc.settings.DefaultTaxRate)
	if err != nil {
		return nil, err
	}
	amount := decimal.Zero
	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount negativo", domain.ErrInvalidInput)
		}
		amount = in.Amount.Round(0)
	}
	now := uc.now()
	dueDate, err := domainbilling.ResolveDueDate(in.DueDate, now, uc.settings.DueDays)
	if err != nil {
		return nil, err
	}

	clientID := in.ClientID
	if clientID == "" {
		clientID = doc.ClientID
	}
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("crear factura: obtener cliente: %w", err)
	}
	if client == nil {
		return nil, domain.NotFound("cliente")
	}

	issuedBy := in.IssuedByID
	if issuedBy == "" {
		issuedBy = actor.ID
	} else if issuedBy != actor.ID {
		u, err := uc.userRepo.GetByID(ctx, issuedBy)
		if err != nil {
			return nil, fmt.Errorf("crear factura: obtener emisor: %w", err)
		}
		if u == nil {
			return nil, domain.NotFound("usuario emisor")
		}
	}

	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		ClientID:   client.ID,
		Amount:     amount,
		TaxRate:    taxRate,
		IssueDate:  now,
		DueDate:    dueDate,
		Status:     entity.InvoiceDraft,
		Notes:      in.Notes,
		IssuedByID: issuedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.Reference != "" {
		// Referencia elegida por el usuario: una colisión se devuelve tal cual (409).
		inv.Reference = in.Reference
		if err := uc.invoiceRepo.Create(ctx, inv); err != nil {
			return nil, err
		}
	} else {
		err = uc.withReferenceRetry(doc, now, func(reference string) error {
			inv.Reference = reference
			return uc.invoiceRepo.Create(ctx, inv)
		})
		if err != nil {
			return nil, err
		}
	}

	out := toInvoiceResponse(inv, nil)
	return &out, nil
}

// Get devuelve la factura con sus entradas enlazadas.
func (uc *InvoiceUseCase) Get(ctx context.Context, actor access.Actor, id string) (*dto.InvoiceResponse, error) {
	inv, _, err := uc.loadInvoice(ctx, actor, id, access.View)
	if err != nil {
		return nil, err
	}
	entries, err := uc.entryRepo.ListByInvoice(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("obtener entradas de la factura: %w", err)
	}
	out := toInvoiceResponse(inv, toLineItems(entries))
	return &out, nil
}

// ListByDocument facturas de un dossier (sin líneas). Requiere view sobre el dossier.
func (uc *InvoiceUseCase) ListByDocument(ctx context.Context, actor access.Actor, documentID string) ([]dto.InvoiceResponse, error) {
	doc, err := uc.loadDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(actor, access.ResourceOf(doc), access.View); err != nil {
		return nil, err
	}
	invoices, err := uc.invoiceRepo.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("listar facturas del dossier: %w", err)
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, nil))
	}
	return out, nil
}

// Update aplica los campos enviados. El estado PAID implica paid=true; cualquier otro lo desmarca.
func (uc *InvoiceUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	inv, _, err := uc.loadInvoice(ctx, actor, id, access.Manage)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	if in.Status != nil {
		st, err := entity.ParseInvoiceStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		inv.Status = st
		if st == entity.InvoicePaid {
			if !inv.Paid || inv.PaymentDate == nil {
				inv.PaymentDate = &now
			}
			inv.Paid = true
		} else {
			inv.Paid = false
			inv.PaymentDate = nil
		}
	}
	if in.DueDate != nil {
		due, ok := domainbilling.ParseDate(*in.DueDate)
		if !ok {
			return nil, domain.ErrInvalidDueDate
		}
		inv.DueDate = due
	}
	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount negativo", domain.ErrInvalidInput)
		}
		inv.Amount = in.Amount.Round(0)
	}
	if in.TaxRate != nil {
		rate, err := domainbilling.ResolveTaxRate(in.TaxRate.String(), inv.TaxRate)
		if err != nil {
			return nil, err
		}
		inv.TaxRate = rate
	}
	inv.UpdatedAt = now

	if err := uc.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("actualizar factura: %w", err)
	}
	out := toInvoiceResponse(inv, nil)
	return &out, nil
}

// MarkAsPaid marca la factura como pagada. Sin fecha de pago se usa la fecha actual.
func (uc *InvoiceUseCase) MarkAsPaid(ctx context.Context, actor access.Actor, id string, in dto.MarkPaidRequest) (*dto.InvoiceResponse, error) {
	inv, _, err := uc.loadInvoice(ctx, actor, id, access.Manage)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	paymentDate := now
	if in.PaymentDate != "" {
		pd, ok := domainbilling.ParseDate(in.PaymentDate)
		if !ok {
			return nil, fmt.Errorf("%w: paymentDate", domain.ErrInvalidDate)
		}
		paymentDate = pd
	}

	inv.Paid = true
	inv.Status = entity.InvoicePaid
	inv.PaymentDate = &paymentDate
	inv.UpdatedAt = now
	if err := uc.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("marcar factura pagada: %w", err)
	}
	out := toInvoiceResponse(inv, nil)
	return &out, nil
}

// Remove desenlaza primero todas las entradas de la factura y luego la elimina, en una transacción.
func (uc *InvoiceUseCase) Remove(ctx context.Context, actor access.Actor, id string) error {
	inv, doc, err := uc.loadInvoice(ctx, actor, id, access.Manage)
	if err != nil {
		return err
	}
	var unlinked int64
	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, entryRepo repository.TimeEntryRepository) error {
		n, err := entryRepo.UnlinkInvoice(ctx, inv.ID)
		if err != nil {
			return fmt.Errorf("desenlazar entradas: %w", err)
		}
		unlinked = n
		return invoiceRepo.Delete(ctx, inv.ID)
	})
	if err != nil {
		return err
	}
	uc.audit(ctx, doc.ID, actor.ID, entity.AuditInvoiceDeleted,
		fmt.Sprintf("Facture %s supprimée, %d entrée(s) de temps libérée(s)", inv.Reference, unlinked))
	return nil
}

// withReferenceRetry repite fn con una referencia nueva mientras la anterior esté tomada.
// Cada intento es una transacción completa: un INSERT fallido aborta la transacción en PostgreSQL.
func (uc *InvoiceUseCase) withReferenceRetry(doc *entity.Document, now time.Time, fn func(reference string) error) error {
	var err error
	for attempt := 1; attempt <= uc.settings.MaxReferenceAttempts; attempt++ {
		reference, rerr := uc.refs.Next(doc.Reference, now)
		if rerr != nil {
			return rerr
		}
		err = fn(reference)
		if !errors.Is(err, domain.ErrReferenceTaken) {
			return err
		}
		log.Warn().Str("reference", reference).Int("attempt", attempt).Msg("referencia de factura tomada, se genera otra")
	}
	return err
}

func (uc *InvoiceUseCase) loadDocument(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := uc.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener dossier: %w", err)
	}
	if doc == nil {
		return nil, domain.NotFound("dossier")
	}
	return doc, nil
}

// loadInvoice carga la factura y su dossier y verifica la capacidad pedida sobre el dossier.
func (uc *InvoiceUseCase) loadInvoice(ctx context.Context, actor access.Actor, id string, c access.Capability) (*entity.Invoice, *entity.Document, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, nil, domain.NotFound("factura")
	}
	doc, err := uc.loadDocument(ctx, inv.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	if err := access.Require(actor, access.ResourceOf(doc), c); err != nil {
		return nil, nil, err
	}
	return inv, doc, nil
}

// audit registra en el historial; un fallo no revierte la operación ya confirmada.
func (uc *InvoiceUseCase) audit(ctx context.Context, documentID, userID, action, message string) {
	if uc.auditRepo == nil {
		return
	}
	entry := &entity.AuditLog{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		UserID:     userID,
		Action:     action,
		Message:    message,
		CreatedAt:  uc.now(),
	}
	if err := uc.auditRepo.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Str("document_id", documentID).Str("action", action).Msg("no se pudo registrar el historial")
	}
}

func decimalString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
