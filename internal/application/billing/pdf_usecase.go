package billing

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/access"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
	"github.com/dhavocats/cabinet-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	documentRepo repository.DocumentRepository
	clientRepo   repository.ClientRepository
	entryRepo    repository.TimeEntryRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	documentRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
	entryRepo repository.TimeEntryRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		documentRepo: documentRepo,
		clientRepo:   clientRepo,
		entryRepo:    entryRepo,
		generator:    generator,
	}
}

// RenderInvoicePDF carga factura, dossier, cliente y entradas y genera el PDF.
// Falta cualquier dato requerido (cliente, nombre o tarifa de un colaborador) = domain.ErrNotFound;
// nunca se emite un documento a medio llenar.
//
// Retorna (pdfBytes, "facture-<referencia>.pdf", nil) si todo sale bien.
func (uc *PDFUseCase) RenderInvoicePDF(ctx context.Context, actor access.Actor, invoiceID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Factura y dossier ──────────────────────────────────────────────────
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.NotFound("factura")
	}
	doc, err := uc.documentRepo.GetByID(ctx, inv.DocumentID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener dossier: %w", err)
	}
	if doc == nil {
		return nil, "", domain.NotFound("dossier")
	}
	if err := access.Require(actor, access.ResourceOf(doc), access.View); err != nil {
		return nil, "", err
	}

	// ── 2. Cliente y entradas en paralelo ─────────────────────────────────────
	var (
		client  *entity.Client
		entries []*entity.TimeEntryDetail
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := uc.loadClient(gctx, inv.ClientID, doc.ClientID)
		client = c
		return err
	})
	g.Go(func() error {
		e, err := uc.entryRepo.ListByInvoice(gctx, inv.ID)
		if err != nil {
			return fmt.Errorf("pdf: obtener entradas: %w", err)
		}
		entries = e
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}
	if client == nil {
		return nil, "", domain.NotFound("cliente")
	}
	for _, e := range entries {
		if e.CollaboratorName() == "" {
			return nil, "", domain.NotFound("colaborador de la entrada " + e.ID)
		}
		if e.HourlyRate == nil {
			return nil, "", domain.NotFound("tarifa horaria de " + e.CollaboratorName())
		}
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, InvoicePDFData{
		Invoice:  inv,
		Document: doc,
		Client:   client,
		Entries:  entries,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, PDFFilename(inv), nil
}

// PDFFilename nombre del archivo descargado.
func PDFFilename(inv *entity.Invoice) string {
	return fmt.Sprintf("facture-%s.pdf", inv.Reference)
}

// loadClient usa el cliente de la factura y, si no existe, el del dossier.
func (uc *PDFUseCase) loadClient(ctx context.Context, ids ...string) (*entity.Client, error) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		c, err := uc.clientRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("pdf: obtener cliente: %w", err)
		}
		if c != nil {
			return c, nil
		}
	}
	return nil, nil
}
