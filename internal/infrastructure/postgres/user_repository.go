package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
	"github.com/esferaordo/ordo-api/internal/domain/role"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, tenant_id, email, password_hash, name, role, status, loja_id, potencia_id, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.TenantID, user.Email, user.PasswordHash, user.Name, string(user.Role), user.Status,
		user.LojaID, user.PotenciaID, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.one(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByIDAndTenant obtiene un usuario por ID dentro del tenant.
func (r *UserRepo) GetByIDAndTenant(ctx context.Context, id, tenantID string) (*entity.User, error) {
	return r.one(ctx, "get user by id and tenant",
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND tenant_id = $2`, id, tenantID)
}

// GetByEmailAndTenant obtiene un usuario por email (sin mayúsculas) dentro del tenant.
func (r *UserRepo) GetByEmailAndTenant(ctx context.Context, email, tenantID string) (*entity.User, error) {
	return r.one(ctx, "get user by email and tenant",
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) AND tenant_id = $2`, email, tenantID)
}

// FindByEmail obtiene un usuario por email en cualquier tenant. Con el mismo email en varios
// tenants devuelve el más antiguo.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.one(ctx, "get user by email",
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) ORDER BY created_at LIMIT 1`, email)
}

// UpdatePassword reemplaza el hash de contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Activate define la contraseña y pasa el usuario a ACTIVE.
func (r *UserRepo) Activate(ctx context.Context, id, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $2, status = $3, updated_at = now() WHERE id = $1`,
		id, passwordHash, entity.UserStatusActive)
	if err != nil {
		return fmt.Errorf("activate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListByTenant usuarios del tenant ordenados por email.
func (r *UserRepo) ListByTenant(ctx context.Context, tenantID string) ([]entity.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE tenant_id = $1 ORDER BY lower(email)`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, *u)
	}
	return list, rows.Err()
}

// Update persiste los datos editables del usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET email = $2, name = $3, role = $4, status = $5, loja_id = $6, updated_at = $7
		WHERE id = $1`,
		user.ID, user.Email, user.Name, string(user.Role), user.Status, user.LojaID, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete borra el usuario; el membro enlazado queda con user_id NULL y los tokens caen en cascada.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) one(ctx context.Context, op, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var rawRole string
	if err := row.Scan(
		&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Name, &rawRole, &u.Status,
		&u.LojaID, &u.PotenciaID, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	// filas anteriores a la migración de roles
	if parsed, ok := role.Parse(rawRole); ok {
		u.Role = parsed
	} else {
		u.Role = role.Role(rawRole)
	}
	return &u, nil
}
