package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dhavocats/cabinet-api/internal/domain"
)

// Role rol de un usuario del despacho. Conjunto cerrado.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleBoard     Role = "BOARD"
	RoleAssociate Role = "ASSOCIATE"
	RoleSenior    Role = "SENIOR"
	RoleMid       Role = "MID"
	RoleJunior    Role = "JUNIOR"
)

var roles = map[Role]struct{}{
	RoleAdmin: {}, RoleBoard: {}, RoleAssociate: {},
	RoleSenior: {}, RoleMid: {}, RoleJunior: {},
}

// ParseRole valida un rol recibido como texto (token, body). Rechaza valores fuera del enum.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := roles[r]; !ok {
		return "", domain.ErrInvalidRole
	}
	return r, nil
}

// User representa un colaborador del despacho.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	DepartmentID string           // vacío = sin departamento
	HourlyRate   *decimal.Decimal // nil = sin tarifa; solo ADMIN la modifica
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre para mostrar en facturas.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
