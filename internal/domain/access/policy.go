// Package access decide qué puede hacer un actor sobre un dossier y sus recursos anidados.
//
// Orden de evaluación (gana la primera regla que aplica):
//
//  1. ADMIN, BOARD, ASSOCIATE: todo.
//  2. Creador o responsable del dossier: todo.
//  3. view + mismo departamento: permitido.
//  4. edit/manage + mismo departamento + rol SENIOR o MID: permitido.
//  5. Denegado.
//
// Para una tarea concreta, su asignado tiene además edit/manage sobre ella
// (no sobre el dossier padre), sin importar el departamento.
package access

import (
	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

// Capability clase de permiso solicitada.
type Capability int

const (
	View Capability = iota
	Edit
	Manage
)

func (c Capability) String() string {
	switch c {
	case View:
		return "view"
	case Edit:
		return "edit"
	case Manage:
		return "manage"
	}
	return "unknown"
}

// Actor usuario autenticado que hace la petición (viene verificado del middleware).
type Actor struct {
	ID           string
	Role         entity.Role
	DepartmentID string
}

// Resource datos de propiedad de un dossier. Listas y tareas usan los de su dossier.
type Resource struct {
	CreatorID     string
	ResponsableID string
	DepartmentID  string
}

// ResourceOf extrae el descriptor de acceso de un dossier.
func ResourceOf(d *entity.Document) Resource {
	return Resource{
		CreatorID:     d.CreatorID,
		ResponsableID: d.ResponsableID,
		DepartmentID:  d.DepartmentID,
	}
}

// IsPrivileged roles con acceso total (regla 1).
func IsPrivileged(r entity.Role) bool {
	switch r {
	case entity.RoleAdmin, entity.RoleBoard, entity.RoleAssociate:
		return true
	}
	return false
}

// Can evalúa las reglas 1–5 sobre un dossier.
func Can(actor Actor, res Resource, capability Capability) bool {
	if IsPrivileged(actor.Role) {
		return true
	}
	if actor.ID != "" && (actor.ID == res.CreatorID || actor.ID == res.ResponsableID) {
		return true
	}
	sameDepartment := actor.DepartmentID != "" && actor.DepartmentID == res.DepartmentID
	if !sameDepartment {
		return false
	}
	if capability == View {
		return true
	}
	return actor.Role == entity.RoleSenior || actor.Role == entity.RoleMid
}

// CanOnTask igual que Can, con el asignado de la tarea autorizado a edit/manage sobre ella.
func CanOnTask(actor Actor, res Resource, assigneeID string, capability Capability) bool {
	if capability != View && assigneeID != "" && actor.ID == assigneeID {
		return true
	}
	return Can(actor, res, capability)
}

// CanCreateDocument solo los roles de la regla 1 abren o eliminan dossiers.
func CanCreateDocument(actor Actor) bool {
	return IsPrivileged(actor.Role)
}

// Require devuelve domain.ErrForbidden si Can deniega.
func Require(actor Actor, res Resource, capability Capability) error {
	if !Can(actor, res, capability) {
		return domain.ErrForbidden
	}
	return nil
}

// RequireOnTask devuelve domain.ErrForbidden si CanOnTask deniega.
func RequireOnTask(actor Actor, res Resource, assigneeID string, capability Capability) error {
	if !CanOnTask(actor, res, assigneeID, capability) {
		return domain.ErrForbidden
	}
	return nil
}
