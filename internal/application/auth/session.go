package auth

import (
	"context"
	"strings"
	"time"

	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
	"github.com/esferaordo/ordo-api/pkg/jwt"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

// Payload identidad contenida en el token de sesión.
type Payload struct {
	UserID   string
	Email    string
	TenantID string
}

// SessionConfig parámetros de emisión de tokens.
type SessionConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
	// DevEmailFallback permite resolver el usuario solo por email, ignorando el tenant.
	DevEmailFallback bool
}

// SessionManager emite y verifica tokens y resuelve el usuario de la sesión.
type SessionManager struct {
	cfg   SessionConfig
	users repository.UserRepository
	log   *logger.Logger
	now   func() time.Time
}

// NewSessionManager construye el gestor de sesión.
func NewSessionManager(cfg SessionConfig, users repository.UserRepository, log *logger.Logger) *SessionManager {
	if cfg.DevEmailFallback {
		log.Warn().Msg("AUTH_DEV_EMAIL_FALLBACK activo: la sesión puede resolverse por email entre tenants")
	}
	return &SessionManager{cfg: cfg, users: users, log: log, now: time.Now}
}

// TTL duración de la sesión.
func (s *SessionManager) TTL() time.Duration { return s.cfg.TTL }

// CreateToken firma un token con la identidad indicada.
func (s *SessionManager) CreateToken(p Payload) (string, error) {
	return jwt.Generate(s.cfg.Secret, p.UserID, p.Email, p.TenantID, s.cfg.Issuer, s.cfg.TTL, s.now())
}

// VerifyToken nunca devuelve payload ante un token malformado, expirado o con firma incorrecta.
func (s *SessionManager) VerifyToken(token string) (*Payload, bool) {
	if strings.TrimSpace(token) == "" {
		return nil, false
	}
	claims, err := jwt.Parse(s.cfg.Secret, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("token de sesión rechazado")
		return nil, false
	}
	return &Payload{UserID: claims.UserID, Email: claims.Email, TenantID: claims.TenantID}, true
}

// UserFromPayload resuelve el usuario: (id, tenant), luego (email, tenant) y, solo con el
// flag de desarrollo, email en cualquier tenant. Devuelve (nil, nil) si no hay coincidencia.
func (s *SessionManager) UserFromPayload(ctx context.Context, p *Payload) (*entity.User, error) {
	if p == nil {
		return nil, nil
	}
	u, err := s.users.GetByIDAndTenant(ctx, p.UserID, p.TenantID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	email := strings.ToLower(strings.TrimSpace(p.Email))
	u, err = s.users.GetByEmailAndTenant(ctx, email, p.TenantID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	if !s.cfg.DevEmailFallback {
		return nil, nil
	}
	u, err = s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u != nil {
		s.log.Warn().
			Str("email", email).
			Str("token_tenant", p.TenantID).
			Str("user_tenant", u.TenantID).
			Msg("sesión resuelta por fallback de email entre tenants")
	}
	return u, nil
}
