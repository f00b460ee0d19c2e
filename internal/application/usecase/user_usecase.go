package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/dhavocats/cabinet-api/internal/application/dto"
	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/access"
	domainbilling "github.com/dhavocats/cabinet-api/internal/domain/billing"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
	"github.com/dhavocats/cabinet-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create da de alta un colaborador. Solo ADMIN. Sin rol se crea JUNIOR.
func (uc *UserUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	role := entity.RoleJunior
	if strings.TrimSpace(in.Role) != "" {
		r, err := entity.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}
	if in.HourlyRate != nil {
		if err := checkHourlyRate(*in.HourlyRate); err != nil {
			return nil, err
		}
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email", domain.ErrDuplicate)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
		DepartmentID: in.DepartmentID,
		HourlyRate:   in.HourlyRate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID. Cada usuario se ve a sí mismo; los roles privilegiados ven a todos.
func (uc *UserUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.UserResponse, error) {
	if actor.ID != id && !access.IsPrivileged(actor.Role) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.NotFound("usuario")
	}
	return entityToUserResponse(user), nil
}

// UpdateBillingProfile cambia rol y/o tarifa horaria. Solo ADMIN.
// La tarifa nueva aplica a facturas futuras; las ya emitidas conservan su monto.
func (uc *UserUseCase) UpdateBillingProfile(ctx context.Context, actor access.Actor, id string, in dto.UpdateBillingProfileRequest) (*dto.UserResponse, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.NotFound("usuario")
	}

	role := user.Role
	if in.Role != nil {
		if role, err = entity.ParseRole(*in.Role); err != nil {
			return nil, err
		}
	}
	rate := user.HourlyRate
	switch {
	case in.ClearHourlyRate:
		rate = nil
	case in.HourlyRate != nil:
		if err := checkHourlyRate(*in.HourlyRate); err != nil {
			return nil, err
		}
		r := *in.HourlyRate
		rate = &r
	}

	if err := uc.repo.UpdateBillingProfile(ctx, user.ID, role, rate); err != nil {
		return nil, fmt.Errorf("actualizar perfil de facturación: %w", err)
	}
	user.Role, user.HourlyRate = role, rate
	return entityToUserResponse(user), nil
}

// maxHourlyRate límite exclusivo de NUMERIC(14,2).
var maxHourlyRate = decimal.New(1, 12)

// checkHourlyRate la tarifa se guarda en NUMERIC(14,2).
func checkHourlyRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return fmt.Errorf("%w: hourlyRate negativo", domain.ErrInvalidInput)
	}
	if rate.GreaterThanOrEqual(maxHourlyRate) {
		return fmt.Errorf("%w: hourlyRate fuera de rango", domain.ErrInvalidInput)
	}
	if !domainbilling.FitsScale(rate) {
		return fmt.Errorf("%w (hourlyRate)", domain.ErrTooManyDecimals)
	}
	return nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         string(u.Role),
		DepartmentID: u.DepartmentID,
		HourlyRate:   u.HourlyRate,
	}
}
