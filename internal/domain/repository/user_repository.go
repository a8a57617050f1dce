package repository

import (
	"context"

	"github.com/esferaordo/ordo-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios.
// Los Get/Find devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDAndTenant(ctx context.Context, id, tenantID string) (*entity.User, error)
	GetByEmailAndTenant(ctx context.Context, email, tenantID string) (*entity.User, error)
	// FindByEmail busca en todos los tenants (login y fallback de desarrollo).
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// Activate define la contraseña y pasa el usuario a ACTIVE.
	Activate(ctx context.Context, id, passwordHash string) error
	// ListByTenant ordenado por email.
	ListByTenant(ctx context.Context, tenantID string) ([]entity.User, error)
	// Update persiste email, name, role, status y loja_id.
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}

// TenantRepository puerto de lectura de tenants.
type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
}

// LojaRepository puerto de persistencia de lojas.
type LojaRepository interface {
	GetByID(ctx context.Context, tenantID, id string) (*entity.Loja, error)
	// FirstByTenant primera loja del tenant por nombre; nil si no hay ninguna.
	FirstByTenant(ctx context.Context, tenantID string) (*entity.Loja, error)
	ListByTenant(ctx context.Context, tenantID string) ([]entity.Loja, error)
	Create(ctx context.Context, l *entity.Loja) error
	// Update persiste datos generales y valores de mensalidade/anuidade.
	Update(ctx context.Context, l *entity.Loja) error
}
