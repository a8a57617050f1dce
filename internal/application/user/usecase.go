// Package user administración de usuarios del tenant: consulta, edición y baja.
package user

import (
	"context"
	"strings"
	"time"

	"github.com/esferaordo/ordo-api/internal/application/auth"
	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
	"github.com/esferaordo/ordo-api/internal/domain/role"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

// TxRunner ejecuta fn en una transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}

// UserUseCase casos de uso de administración de usuarios.
type UserUseCase struct {
	users    repository.UserRepository
	lojas    repository.LojaRepository
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

func NewUserUseCase(users repository.UserRepository, lojas repository.LojaRepository, txRunner TxRunner, log *logger.Logger) *UserUseCase {
	return &UserUseCase{users: users, lojas: lojas, txRunner: txRunner, log: log, now: time.Now}
}

// List usuarios del tenant del administrador, ordenados por email.
func (uc *UserUseCase) List(ctx context.Context, actor *entity.User) ([]dto.UserResponse, error) {
	if !role.IsSaasAdmin(actor.Role) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.users.ListByTenant(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for i := range list {
		out = append(out, *auth.ToUserResponse(&list[i]))
	}
	return out, nil
}

func (uc *UserUseCase) load(ctx context.Context, actor *entity.User, id string) (*entity.User, error) {
	u, err := uc.users.GetByIDAndTenant(ctx, id, actor.TenantID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// Get usuario del tenant por id.
func (uc *UserUseCase) Get(ctx context.Context, actor *entity.User, id string) (*dto.UserResponse, error) {
	if !role.IsSaasAdmin(actor.Role) {
		return nil, domain.ErrForbidden
	}
	u, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// Update edición parcial (solo SYS_ADMIN). Suspender invalida las invitaciones pendientes
// en la misma transacción; la sesión ya emitida deja de valer en el próximo request.
func (uc *UserUseCase) Update(ctx context.Context, actor *entity.User, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !role.IsSysAdmin(actor.Role) {
		return nil, domain.ErrForbidden
	}
	u, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return nil, domain.NewValidationError("email", "Email é obrigatório")
		}
		if email != u.Email {
			other, err := uc.users.GetByEmailAndTenant(ctx, email, u.TenantID)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != u.ID {
				return nil, domain.ErrEmailAlreadyExists
			}
			u.Email = email
		}
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		r, ok := role.Parse(*in.Role)
		if !ok {
			return nil, domain.NewValidationError("role", "Role inválido")
		}
		u.Role = r
	}
	if in.LojaID != nil {
		lojaID := strings.TrimSpace(*in.LojaID)
		if lojaID == "" {
			u.LojaID = nil
		} else {
			loja, err := uc.lojas.GetByID(ctx, u.TenantID, lojaID)
			if err != nil {
				return nil, err
			}
			if loja == nil {
				return nil, domain.ErrLojaNotFound
			}
			u.LojaID = &loja.ID
		}
	}

	suspended := false
	if in.Status != nil && *in.Status != u.Status {
		switch *in.Status {
		case entity.UserStatusSuspended:
			if u.ID == actor.ID {
				return nil, domain.NewValidationError("status", "Você não pode suspender seu próprio usuário")
			}
			suspended = true
		case entity.UserStatusActive:
			if !u.HasPassword() {
				return nil, domain.NewValidationError("status", "Usuário ainda não definiu senha")
			}
		case entity.UserStatusInvited:
		default:
			return nil, domain.NewValidationError("status", "Status deve ser INVITED, ACTIVE ou SUSPENDED")
		}
		u.Status = *in.Status
	}
	u.UpdatedAt = uc.now()

	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Users.Update(ctx, u); err != nil {
			return err
		}
		if suspended {
			if _, err := repos.Invites.InvalidateUser(ctx, u.ID, u.UpdatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", u.ID).Str("status", u.Status).Str("by", actor.ID).Msg("usuário atualizado")
	return auth.ToUserResponse(u), nil
}

// Delete baja definitiva (solo SYS_ADMIN); el membro vinculado queda sin usuario.
func (uc *UserUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	if !role.IsSysAdmin(actor.Role) {
		return domain.ErrForbidden
	}
	if id == actor.ID {
		return domain.NewValidationError("id", "Você não pode deletar seu próprio usuário")
	}
	u, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.users.Delete(ctx, u.ID); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", u.ID).Str("by", actor.ID).Msg("usuário excluído")
	return nil
}
