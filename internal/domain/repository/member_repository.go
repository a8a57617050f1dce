package repository

import (
	"context"

	"github.com/esferaordo/ordo-api/internal/domain/entity"
)

// MemberFilter filtros de listado; los campos nil no filtran.
type MemberFilter struct {
	TenantID   string
	LojaID     *string
	PotenciaID *string
	Situacao   *string
	OnlyID     *string
}

// MemberRepository puerto de persistencia para membros.
type MemberRepository interface {
	Create(ctx context.Context, m *entity.Member) error
	// List ordenado por NomeCompleto.
	List(ctx context.Context, f MemberFilter) ([]entity.Member, error)
	GetByID(ctx context.Context, tenantID, id string) (*entity.Member, error)
	GetByUserID(ctx context.Context, tenantID, userID string) (*entity.Member, error)
	// GetByEmail comparación sin distinguir mayúsculas, limitada al tenant.
	GetByEmail(ctx context.Context, tenantID, email string) (*entity.Member, error)
	LinkUser(ctx context.Context, memberID, userID string) error
	Update(ctx context.Context, m *entity.Member) error
	// Delete falla con domain.ErrConflict si el membro tiene registros asociados.
	Delete(ctx context.Context, tenantID, id string) error
	CountActive(ctx context.Context, tenantID, lojaID string) (int, error)
}
