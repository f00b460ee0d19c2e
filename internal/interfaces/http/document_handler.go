package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/dhavocats/cabinet-api/internal/application/dto"
	"github.com/dhavocats/cabinet-api/internal/domain/access"
)

// MatterService lo implementa *matter.UseCase.
type MatterService interface {
	CreateDocument(ctx context.Context, actor access.Actor, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	GetDocument(ctx context.Context, actor access.Actor, id string) (*dto.DocumentResponse, error)
	UpdateDocument(ctx context.Context, actor access.Actor, id string, in dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	DeleteDocument(ctx context.Context, actor access.Actor, id string) error

	CreateList(ctx context.Context, actor access.Actor, in dto.CreateListRequest) (*dto.ListResponse, error)
	UpdateListStatus(ctx context.Context, actor access.Actor, id string, in dto.UpdateListStatusRequest) (*dto.ListResponse, error)

	CreateTask(ctx context.Context, actor access.Actor, in dto.CreateTaskRequest) (*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, actor access.Actor, id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	AssignTask(ctx context.Context, actor access.Actor, id string, in dto.AssignTaskRequest) (*dto.TaskResponse, error)

	CreateTimeEntry(ctx context.Context, actor access.Actor, in dto.CreateTimeEntryRequest) (*dto.TimeEntryResponse, error)
	ListTimeEntriesByTask(ctx context.Context, actor access.Actor, taskID string) ([]dto.TimeEntryResponse, error)
	UpdateTimeEntry(ctx context.Context, actor access.Actor, id string, in dto.UpdateTimeEntryRequest) (*dto.TimeEntryResponse, error)
	DeleteTimeEntry(ctx context.Context, actor access.Actor, id string) error
}

// DocumentHandler maneja dossiers (protegido).
type DocumentHandler struct {
	uc MatterService
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc MatterService) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir dossier
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateDocumentRequest  true  "Datos del dossier"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateDocument(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener dossier
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del dossier"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetDocument(c.UserContext(), GetActor(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar dossier
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID del dossier"
// @Param        body  body      dto.UpdateDocumentRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [patch]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var in dto.UpdateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateDocument(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar dossier
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del dossier"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	if err := h.uc.DeleteDocument(c.UserContext(), GetActor(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "dossier eliminado"})
}
