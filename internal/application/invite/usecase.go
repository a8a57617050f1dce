package invite

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/esferaordo/ordo-api/internal/application/auth"
	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
	"github.com/esferaordo/ordo-api/internal/domain/role"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

// Config opciones del flujo de invitación.
type Config struct {
	BaseURL string
	// ExposeLink incluye el link en la respuesta (solo fuera de producción).
	ExposeLink bool
}

// InviteUseCase alta de usuarios, (re)envío de invitaciones y definición de contraseña.
type InviteUseCase struct {
	users    repository.UserRepository
	tokens   *TokenStore
	txRunner TxRunner
	mailer   Mailer
	cfg      Config
	log      *logger.Logger
}

// NewInviteUseCase construye el caso de uso.
func NewInviteUseCase(users repository.UserRepository, tokens *TokenStore, txRunner TxRunner, mailer Mailer, cfg Config, log *logger.Logger) *InviteUseCase {
	return &InviteUseCase{users: users, tokens: tokens, txRunner: txRunner, mailer: mailer, cfg: cfg, log: log}
}

// CreateUser crea un usuario INVITED y le envía la invitación. Solo SaaS-admin.
func (uc *InviteUseCase) CreateUser(ctx context.Context, actor *entity.User, in dto.CreateUserRequest) (*dto.InviteResponse, error) {
	if !role.IsSaasAdmin(actor.Role) {
		return nil, domain.ErrForbidden
	}
	r, ok := role.Parse(in.Role)
	if !ok {
		return nil, domain.NewValidationError("role", "Papel inválido")
	}
	tenantID := in.TenantID
	if tenantID == "" {
		tenantID = actor.TenantID
	}
	now := time.Now()
	user := &entity.User{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Name:       strings.TrimSpace(in.Name),
		Role:       r,
		Status:     entity.UserStatusInvited,
		LojaID:     in.LojaID,
		PotenciaID: in.PotenciaID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.send(ctx, user)
}

// SendInvite invalida tokens previos y envía uno nuevo. Solo SaaS-admin.
// Rechaza usuarios ya activos con contraseña definida.
func (uc *InviteUseCase) SendInvite(ctx context.Context, actor *entity.User, userID string) (*dto.InviteResponse, error) {
	if !role.IsSaasAdmin(actor.Role) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.IsActive() && user.HasPassword() {
		return nil, domain.NewValidationError("userId", "Usuário já está ativo")
	}
	if user.Status == entity.UserStatusSuspended {
		return nil, domain.NewValidationError("userId", "Usuário suspenso")
	}
	return uc.send(ctx, user)
}

func (uc *InviteUseCase) send(ctx context.Context, user *entity.User) (*dto.InviteResponse, error) {
	if err := uc.tokens.InvalidateUser(ctx, user.ID); err != nil {
		return nil, err
	}
	token, expiresAt, err := uc.tokens.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	link := uc.cfg.BaseURL + "/auth/set-password?token=" + url.QueryEscape(token)
	if err := uc.mailer.SendInvite(ctx, InviteMessage{To: user.Email, Name: user.Name, Link: link, ExpiresAt: expiresAt}); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("envío de invitación")
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Time("expires_at", expiresAt).Msg("invitación enviada")

	out := &dto.InviteResponse{Success: true, UserID: user.ID, ExpiresIn: uc.tokens.TTL().String()}
	if uc.cfg.ExposeLink {
		out.InviteURL = link
	}
	return out, nil
}

// SetPassword consume el token y activa al usuario en una misma transacción.
func (uc *InviteUseCase) SetPassword(ctx context.Context, in dto.SetPasswordRequest) error {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		userID, ok, err := uc.tokens.Consume(ctx, repos.Invites, in.Token)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidInviteToken
		}
		if err := repos.Users.Activate(ctx, userID, hash); err != nil {
			return err
		}
		_, err = repos.Invites.InvalidateUser(ctx, userID, time.Now())
		return err
	})
}
