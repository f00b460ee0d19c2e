package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dhavocats/cabinet-api/internal/application/dto"
)

// TaskHandler maneja listas, tareas y entradas de tiempo (protegido).
type TaskHandler struct {
	uc MatterService
}

// NewTaskHandler construye el handler.
func NewTaskHandler(uc MatterService) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// CreateList godoc
// @Summary      Crear lista en un dossier
// @Tags         lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateListRequest  true  "Dossier y nombre"
// @Success      201   {object}  dto.ListResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lists [post]
func (h *TaskHandler) CreateList(c *fiber.Ctx) error {
	var in dto.CreateListRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateList(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateListStatus godoc
// @Summary      Cambiar estado de una lista
// @Tags         lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true  "ID de la lista"
// @Param        body  body      dto.UpdateListStatusRequest  true  "OPEN o CLOSED"
// @Success      200   {object}  dto.ListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/lists/{id}/status [patch]
func (h *TaskHandler) UpdateListStatus(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var in dto.UpdateListStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateListStatus(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateTask godoc
// @Summary      Crear tarea
// @Description  status acepta el vocabulario heredado (todo, in_progress, review, completed, ...).
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTaskRequest  true  "Datos de la tarea"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var in dto.CreateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateTask(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateTask godoc
// @Summary      Actualizar tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID de la tarea"
// @Param        body  body      dto.UpdateTaskRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var in dto.UpdateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateTask(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AssignTask godoc
// @Summary      Asignar tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID de la tarea"
// @Param        body  body      dto.AssignTaskRequest  true  "Colaborador"
// @Success      200   {object}  dto.TaskResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/assign [patch]
func (h *TaskHandler) AssignTask(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var in dto.AssignTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AssignTask(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListTimeEntries godoc
// @Summary      Entradas de tiempo de una tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la tarea"
// @Success      200  {array}   dto.TimeEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/time-entries [get]
func (h *TaskHandler) ListTimeEntries(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ListTimeEntriesByTask(c.UserContext(), GetActor(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateTimeEntry godoc
// @Summary      Registrar horas
// @Tags         time-entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTimeEntryRequest  true  "Tarea, horas y fecha"
// @Success      201   {object}  dto.TimeEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/time-entries [post]
func (h *TaskHandler) CreateTimeEntry(c *fiber.Ctx) error {
	var in dto.CreateTimeEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateTimeEntry(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateTimeEntry godoc
// @Summary      Corregir una entrada de tiempo
// @Description  Su autor o quien gestiona el dossier. Una entrada ya facturada solo la corrige ADMIN.
// @Tags         time-entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true  "ID de la entrada"
// @Param        body  body      dto.UpdateTimeEntryRequest  true  "Horas, descripción o fecha"
// @Success      200   {object}  dto.TimeEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/time-entries/{id} [patch]
func (h *TaskHandler) UpdateTimeEntry(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var in dto.UpdateTimeEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateTimeEntry(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteTimeEntry godoc
// @Summary      Eliminar una entrada de tiempo
// @Tags         time-entries
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la entrada"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/time-entries/{id} [delete]
func (h *TaskHandler) DeleteTimeEntry(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	if err := h.uc.DeleteTimeEntry(c.UserContext(), GetActor(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "entrada de tiempo eliminada"})
}
