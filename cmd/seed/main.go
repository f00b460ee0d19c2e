// seed prepara una base local: aplica el esquema, crea los departamentos del despacho
// y un usuario ADMIN, e imprime un JWT de desarrollo para ese usuario.
//
// Uso: go run ./cmd/seed [email] [password]
// Por defecto: admin@dhavocats.com / admin1234
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
	"github.com/dhavocats/cabinet-api/internal/infrastructure/postgres"
	"github.com/dhavocats/cabinet-api/pkg/config"
	pkgjwt "github.com/dhavocats/cabinet-api/pkg/jwt"
	"github.com/dhavocats/cabinet-api/pkg/logger"
)

var departments = []string{
	"Contentieux",
	"Conseil",
	"Tax",
	"Douane/Changes & Investissement",
	"Communication & Marketing",
	"Support",
}

func main() {
	email, password := "admin@dhavocats.com", "admin1234"
	if len(os.Args) > 2 {
		email, password = os.Args[1], os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	deptIDs, err := upsertDepartments(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("departamentos")
	}
	log.Info().Int("departamentos", len(deptIDs)).Msg("departamentos listos")

	admin, err := ensureAdmin(ctx, postgres.NewUserRepository(pool), email, password, deptIDs["Support"])
	if err != nil {
		log.Fatal().Err(err).Msg("usuario admin")
	}

	token, err := pkgjwt.Generate(cfg.JWT.Secret, admin.ID, string(admin.Role), admin.DepartmentID, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("JWT de desarrollo (¿JWT_SECRET vacío?)")
	}
	fmt.Printf("Admin: %s (%s)\nBearer %s\n", admin.Email, admin.ID, token)
}

// upsertDepartments inserta los departamentos que falten y devuelve nombre -> id.
// El id se deriva del nombre, así que correr el seed dos veces no duplica filas.
func upsertDepartments(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	ids := make(map[string]string, len(departments))
	for _, name := range departments {
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("dhavocats/department/"+name)).String()
		var got string
		err := pool.QueryRow(ctx, `
			INSERT INTO departments (id, name) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, id, name).Scan(&got)
		if err != nil {
			return nil, fmt.Errorf("departamento %q: %w", name, err)
		}
		ids[name] = got
	}
	return ids, nil
}

func ensureAdmin(ctx context.Context, users *postgres.UserRepo, email, password, departmentID string) (*entity.User, error) {
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}
	now := time.Now().UTC()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "Cabinet",
		Role:         entity.RoleAdmin,
		DepartmentID: departmentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return users.GetByEmail(ctx, email)
		}
		return nil, err
	}
	return u, nil
}
