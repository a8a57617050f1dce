package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/application/user"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/role"
	"github.com/esferaordo/ordo-api/internal/testutil/memstore"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

func strPtr(s string) *string { return &s }

var (
	sys  = &entity.User{ID: "u-sys", TenantID: "t1", Role: role.SysAdmin, Email: "root@ordo.dev", Status: entity.UserStatusActive}
	saas = &entity.User{ID: "u-saas", TenantID: "t1", Role: role.SaasAdmin, Email: "saas@ordo.dev", Status: entity.UserStatusActive}
)

func seed() *memstore.Store {
	s := memstore.New()
	s.Lojas["la"] = &entity.Loja{ID: "la", TenantID: "t1", Name: "A"}
	for _, u := range []*entity.User{sys, saas} {
		cp := *u
		s.Users[u.ID] = &cp
	}
	s.Users["u-ana"] = &entity.User{ID: "u-ana", TenantID: "t1", Email: "ana@loja.org", Role: role.Treasurer, Status: entity.UserStatusActive, PasswordHash: "hash"}
	s.Users["u-beto"] = &entity.User{ID: "u-beto", TenantID: "t1", Email: "beto@loja.org", Role: role.Member, Status: entity.UserStatusInvited}
	s.Users["u-outro"] = &entity.User{ID: "u-outro", TenantID: "t2", Email: "x@y.org", Role: role.Member, Status: entity.UserStatusActive}
	s.Members["m1"] = &entity.Member{ID: "m1", TenantID: "t1", LojaID: "la", NomeCompleto: "Ana", UserID: strPtr("u-ana")}
	return s
}

func newUC(s *memstore.Store) *user.UserUseCase {
	return user.NewUserUseCase(memstore.NewUserRepo(s), memstore.NewLojaRepo(s), memstore.TxRunner{S: s}, logger.Nop())
}

func TestList_SoloTenantDelAdmin(t *testing.T) {
	uc := newUC(seed())
	out, err := uc.List(context.Background(), saas)
	require.NoError(t, err)
	emails := make([]string, 0, len(out))
	for _, u := range out {
		emails = append(emails, u.Email)
	}
	assert.Equal(t, []string{"ana@loja.org", "beto@loja.org", "root@ordo.dev", "saas@ordo.dev"}, emails)

	_, err = uc.List(context.Background(), &entity.User{TenantID: "t1", Role: role.LodgeAdmin})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGet(t *testing.T) {
	uc := newUC(seed())
	out, err := uc.Get(context.Background(), saas, "u-beto")
	require.NoError(t, err)
	assert.Equal(t, "beto@loja.org", out.Name, "sin nombre usa el email")

	_, err = uc.Get(context.Background(), saas, "u-outro")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdate_SoloSysAdmin(t *testing.T) {
	uc := newUC(seed())
	_, err := uc.Update(context.Background(), saas, "u-ana", dto.UpdateUserRequest{Name: strPtr("Ana")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdate_SuspenderInvalidaInvitaciones(t *testing.T) {
	s := seed()
	s.Tokens = append(s.Tokens, &entity.PasswordInviteToken{UserID: "u-ana", TokenHash: "h1", ExpiresAt: time.Now().Add(time.Hour)})
	uc := newUC(s)

	out, err := uc.Update(context.Background(), sys, "u-ana", dto.UpdateUserRequest{
		Status: strPtr(entity.UserStatusSuspended),
		Role:   strPtr("tesoureiro"),
		LojaID: strPtr("la"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusSuspended, out.Status)
	assert.Equal(t, role.Treasurer.String(), out.Role, "nombres legacy se normalizan")
	assert.Equal(t, entity.UserStatusSuspended, s.Users["u-ana"].Status)
	require.NotNil(t, s.Users["u-ana"].LojaID)
	assert.NotNil(t, s.Tokens[0].UsedAt)
}

func TestUpdate_Reglas(t *testing.T) {
	uc := newUC(seed())
	ctx := context.Background()

	_, err := uc.Update(ctx, sys, "u-sys", dto.UpdateUserRequest{Status: strPtr(entity.UserStatusSuspended)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, sys, "u-beto", dto.UpdateUserRequest{Status: strPtr(entity.UserStatusActive)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin contraseña no se activa")

	_, err = uc.Update(ctx, sys, "u-beto", dto.UpdateUserRequest{Email: strPtr("ANA@loja.org")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Update(ctx, sys, "u-beto", dto.UpdateUserRequest{Role: strPtr("REI")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, sys, "u-beto", dto.UpdateUserRequest{LojaID: strPtr("00000000-0000-0000-0000-000000000000")})
	assert.ErrorIs(t, err, domain.ErrLojaNotFound)

	_, err = uc.Update(ctx, sys, "u-outro", dto.UpdateUserRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDelete(t *testing.T) {
	s := seed()
	uc := newUC(s)
	ctx := context.Background()

	err := uc.Delete(ctx, sys, "u-sys")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.Delete(ctx, saas, "u-ana")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, uc.Delete(ctx, sys, "u-ana"))
	assert.NotContains(t, s.Users, "u-ana")
	assert.Nil(t, s.Members["m1"].UserID, "el membro queda sin usuario")
}
