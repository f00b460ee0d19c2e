package dto

import "github.com/shopspring/decimal"

// CreateUserRequest body para POST /api/users (solo ADMIN). Sin rol se crea JUNIOR.
type CreateUserRequest struct {
	Email        string           `json:"email" validate:"required,email,max=255"`
	Password     string           `json:"password" validate:"required,min=8,max=72"`
	FirstName    string           `json:"firstName" validate:"required,max=120"`
	LastName     string           `json:"lastName" validate:"required,max=120"`
	Role         string           `json:"role,omitempty" validate:"max=20"`
	DepartmentID string           `json:"departmentId,omitempty" validate:"omitempty,uuid"`
	HourlyRate   *decimal.Decimal `json:"hourlyRate,omitempty" swaggertype:"number"`
}

// UpdateBillingProfileRequest body para PATCH /api/users/:id/billing-profile (solo ADMIN).
// Un campo ausente no cambia; ClearHourlyRate borra la tarifa.
type UpdateBillingProfileRequest struct {
	Role            *string          `json:"role,omitempty" validate:"omitempty,max=20"`
	HourlyRate      *decimal.Decimal `json:"hourlyRate,omitempty" swaggertype:"number"`
	ClearHourlyRate bool             `json:"clearHourlyRate,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string           `json:"id"`
	Email        string           `json:"email"`
	FirstName    string           `json:"firstName"`
	LastName     string           `json:"lastName"`
	Role         string           `json:"role"`
	DepartmentID string           `json:"departmentId,omitempty"`
	HourlyRate   *decimal.Decimal `json:"hourlyRate,omitempty" swaggertype:"number"`
}
