package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
)

var _ repository.InviteTokenRepository = (*InviteTokenRepo)(nil)

// InviteTokenRepo persistencia de tokens de invitación (solo hash SHA-256).
type InviteTokenRepo struct {
	db Querier
}

func NewInviteTokenRepository(db Querier) *InviteTokenRepo {
	return &InviteTokenRepo{db: db}
}

func (r *InviteTokenRepo) Create(ctx context.Context, t *entity.PasswordInviteToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO password_invite_tokens (id, user_id, token_hash, expires_at, used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt, t.UsedAt, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invite token: %w", err)
	}
	return nil
}

func (r *InviteTokenRepo) GetByHash(ctx context.Context, hash string) (*entity.PasswordInviteToken, error) {
	var t entity.PasswordInviteToken
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, token_hash, expires_at, used_at, created_at
		FROM password_invite_tokens WHERE token_hash = $1`, hash,
	).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invite token: %w", err)
	}
	return &t, nil
}

func (r *InviteTokenRepo) MarkUsed(ctx context.Context, hash string, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE password_invite_tokens SET used_at = COALESCE(used_at, $2) WHERE token_hash = $1`, hash, at)
	if err != nil {
		return fmt.Errorf("mark invite token used: %w", err)
	}
	return nil
}

func (r *InviteTokenRepo) InvalidateUser(ctx context.Context, userID string, at time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE password_invite_tokens SET used_at = $2 WHERE user_id = $1 AND used_at IS NULL`, userID, at)
	if err != nil {
		return 0, fmt.Errorf("invalidate invite tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Consume valida y marca el token en una sola sentencia; dos consumos concurrentes
// del mismo token no pueden ganar ambos.
func (r *InviteTokenRepo) Consume(ctx context.Context, hash string, now time.Time) (string, bool, error) {
	var userID string
	err := r.db.QueryRow(ctx, `
		UPDATE password_invite_tokens
		SET used_at = $2
		WHERE token_hash = $1 AND used_at IS NULL AND expires_at > $2
		RETURNING user_id`, hash, now,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("consume invite token: %w", err)
	}
	return userID, true, nil
}
