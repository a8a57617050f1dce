package repository

import (
	"context"
	"time"

	"github.com/esferaordo/ordo-api/internal/domain/entity"
)

// InviteTokenRepository puerto de persistencia para tokens de invitación (solo hashes).
type InviteTokenRepository interface {
	Create(ctx context.Context, t *entity.PasswordInviteToken) error
	GetByHash(ctx context.Context, hash string) (*entity.PasswordInviteToken, error)
	// MarkUsed es idempotente: conserva el primer used_at.
	MarkUsed(ctx context.Context, hash string, at time.Time) error
	// InvalidateUser marca como usados todos los tokens pendientes del usuario.
	InvalidateUser(ctx context.Context, userID string, at time.Time) (int64, error)
	// Consume valida y marca usado en una sola sentencia; ok=false si no existe, fue usado o expiró.
	Consume(ctx context.Context, hash string, now time.Time) (userID string, ok bool, err error)
}
