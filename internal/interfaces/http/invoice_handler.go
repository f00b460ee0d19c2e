package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/dhavocats/cabinet-api/internal/application/dto"
	"github.com/dhavocats/cabinet-api/internal/domain/access"
)

// InvoiceService lo implementa *billing.InvoiceUseCase.
type InvoiceService interface {
	Generate(ctx context.Context, actor access.Actor, in dto.GenerateInvoiceRequest) (*dto.GenerateInvoiceResponse, error)
	Create(ctx context.Context, actor access.Actor, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	Get(ctx context.Context, actor access.Actor, id string) (*dto.InvoiceResponse, error)
	ListByDocument(ctx context.Context, actor access.Actor, documentID string) ([]dto.InvoiceResponse, error)
	Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	MarkAsPaid(ctx context.Context, actor access.Actor, id string, in dto.MarkPaidRequest) (*dto.InvoiceResponse, error)
	Remove(ctx context.Context, actor access.Actor, id string) error
}

// InvoicePDFService lo implementa *billing.PDFUseCase.
type InvoicePDFService interface {
	RenderInvoicePDF(ctx context.Context, actor access.Actor, invoiceID string) ([]byte, string, error)
}

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc  InvoiceService
	pdf InvoicePDFService
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc InvoiceService, pdf InvoicePDFService) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// Generate godoc
// @Summary      Generar factura desde entradas de tiempo
// @Description  Selecciona las entradas facturables del dossier, las valora y las enlaza a una factura nueva en una sola transacción.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GenerateInvoiceRequest  true  "Dossier y filtros"
// @Success      201   {object}  dto.GenerateInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/generate [post]
func (h *InvoiceHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Generate(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Create godoc
// @Summary      Crear factura manual
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateInvoiceRequest  true  "Datos de la factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura con sus entradas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Get(c.UserContext(), GetActor(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByDocument godoc
// @Summary      Facturas de un dossier
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        documentId  path      string  true  "ID del dossier"
// @Success      200         {array}   dto.InvoiceResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      403         {object}  dto.ErrorResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /api/invoices/document/{documentId} [get]
func (h *InvoiceHandler) ListByDocument(c *fiber.Ctx) error {
	documentID, ok := pathUUID(c, "documentId")
	if !ok {
		return nil
	}
	out, err := h.uc.ListByDocument(c.UserContext(), GetActor(c), documentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar factura
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID de la factura"
// @Param        body  body      dto.UpdateInvoiceRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [patch]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkPaid godoc
// @Summary      Marcar factura como pagada
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string               true   "ID de la factura"
// @Param        body  body      dto.MarkPaidRequest  false  "Fecha de pago (opcional)"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/mark-paid [patch]
func (h *InvoiceHandler) MarkPaid(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var in dto.MarkPaidRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.MarkAsPaid(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Description  Libera las entradas de tiempo enlazadas y elimina la factura.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	if err := h.uc.Remove(c.UserContext(), GetActor(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "factura eliminada"})
}

// DownloadPDF godoc
// @Summary      Descargar PDF de la factura
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/download-pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	return h.sendPDF(c, "attachment")
}

// PreviewPDF godoc
// @Summary      Ver PDF de la factura en el navegador
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/preview-pdf [get]
func (h *InvoiceHandler) PreviewPDF(c *fiber.Ctx) error {
	return h.sendPDF(c, "inline")
}

func (h *InvoiceHandler) sendPDF(c *fiber.Ctx, disposition string) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	pdf, filename, err := h.pdf.RenderInvoicePDF(c.UserContext(), GetActor(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`%s; filename="%s"`, disposition, filename))
	return c.Send(pdf)
}
