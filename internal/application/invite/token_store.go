package invite

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
)

// DefaultTTL validez de un token de invitación.
const DefaultTTL = 48 * time.Hour

const tokenBytes = 32

// HashToken SHA-256 en hex del token en claro.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generar token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// TokenStore emite y valida tokens de un solo uso; solo persiste el hash.
type TokenStore struct {
	repo repository.InviteTokenRepository
	ttl  time.Duration
	now  func() time.Time
}

// NewTokenStore construye el store. ttl<=0 usa DefaultTTL.
func NewTokenStore(repo repository.InviteTokenRepository, ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenStore{repo: repo, ttl: ttl, now: time.Now}
}

// TTL validez configurada.
func (s *TokenStore) TTL() time.Duration { return s.ttl }

// Create genera un token de 256 bits y devuelve el valor en claro junto con su expiración.
func (s *TokenStore) Create(ctx context.Context, userID string) (string, time.Time, error) {
	return s.createWith(ctx, s.repo, userID)
}

func (s *TokenStore) createWith(ctx context.Context, repo repository.InviteTokenRepository, userID string) (string, time.Time, error) {
	token, err := newToken()
	if err != nil {
		return "", time.Time{}, err
	}
	now := s.now()
	rec := &entity.PasswordInviteToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		TokenHash: HashToken(token),
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := repo.Create(ctx, rec); err != nil {
		return "", time.Time{}, err
	}
	return token, rec.ExpiresAt, nil
}

// Validate devuelve el userID solo si el token existe, no fue usado y no expiró.
// Los tres motivos de fallo son indistinguibles para el llamador.
func (s *TokenStore) Validate(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}
	rec, err := s.repo.GetByHash(ctx, HashToken(token))
	if err != nil {
		return "", false, err
	}
	if rec == nil || !rec.Usable(s.now()) {
		return "", false, nil
	}
	return rec.UserID, true, nil
}

// MarkUsed marca el token como usado (idempotente).
func (s *TokenStore) MarkUsed(ctx context.Context, token string) error {
	return s.repo.MarkUsed(ctx, HashToken(token), s.now())
}

// InvalidateUser marca como usados todos los tokens pendientes del usuario.
func (s *TokenStore) InvalidateUser(ctx context.Context, userID string) error {
	_, err := s.repo.InvalidateUser(ctx, userID, s.now())
	return err
}

// Consume valida y marca usado de forma atómica con el repo de la transacción.
func (s *TokenStore) Consume(ctx context.Context, repo repository.InviteTokenRepository, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}
	return repo.Consume(ctx, HashToken(token), s.now())
}
