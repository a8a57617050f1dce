package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esferaordo/ordo-api/internal/application/auth"
	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/role"
	"github.com/esferaordo/ordo-api/internal/testutil/memstore"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

const (
	tenantA = "11111111-1111-1111-1111-111111111111"
	tenantB = "22222222-2222-2222-2222-222222222222"
	lojaID  = "33333333-3333-3333-3333-333333333333"
)

func strPtr(s string) *string { return &s }

func newStore(t *testing.T) *memstore.Store {
	t.Helper()
	s := memstore.New()
	s.Tenants[tenantA] = &entity.Tenant{ID: tenantA, Name: "Grande Oriente"}
	s.Lojas[lojaID] = &entity.Loja{ID: lojaID, TenantID: tenantA, Name: "Loja Aurora", Situacao: entity.LojaSituacaoAtiva}
	hash, err := auth.HashPassword("secreta123")
	require.NoError(t, err)
	s.Users["u1"] = &entity.User{
		ID: "u1", TenantID: tenantA, Email: "admin@loja.org", PasswordHash: hash,
		Role: role.LodgeAdmin, Status: entity.UserStatusActive, LojaID: strPtr(lojaID),
	}
	return s
}

func newUseCase(s *memstore.Store, fallback bool) *auth.AuthUseCase {
	sessions := auth.NewSessionManager(auth.SessionConfig{
		Secret: "test-secret", Issuer: "ordo-test", TTL: 7 * 24 * time.Hour, DevEmailFallback: fallback,
	}, memstore.NewUserRepo(s), logger.Nop())
	return auth.NewAuthUseCase(sessions, memstore.NewUserRepo(s), memstore.NewTenantRepo(s), memstore.NewLojaRepo(s))
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyToken_RoundTrip(t *testing.T) {
	uc := newUseCase(newStore(t), false)
	tok, err := uc.Sessions().CreateToken(auth.Payload{UserID: "u1", Email: "admin@loja.org", TenantID: tenantA})
	require.NoError(t, err)

	p, ok := uc.Sessions().VerifyToken(tok)
	require.True(t, ok)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, tenantA, p.TenantID)
}

func TestVerifyToken_FallaCerrado(t *testing.T) {
	uc := newUseCase(newStore(t), false)
	for _, tok := range []string{"", "   ", "abc.def.ghi", "no-es-jwt"} {
		p, ok := uc.Sessions().VerifyToken(tok)
		assert.False(t, ok, tok)
		assert.Nil(t, p, tok)
	}
}

func TestUserFromPayload_Orden(t *testing.T) {
	s := newStore(t)
	uc := newUseCase(s, false)
	ctx := context.Background()

	u, err := uc.Sessions().UserFromPayload(ctx, &auth.Payload{UserID: "u1", Email: "x@x", TenantID: tenantA})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	// id desconocido: cae a (email, tenant)
	u, err = uc.Sessions().UserFromPayload(ctx, &auth.Payload{UserID: "otro", Email: "ADMIN@loja.org", TenantID: tenantA})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	// tenant distinto sin flag: no resuelve
	u, err = uc.Sessions().UserFromPayload(ctx, &auth.Payload{UserID: "u1", Email: "admin@loja.org", TenantID: tenantB})
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserFromPayload_FallbackDesarrollo(t *testing.T) {
	uc := newUseCase(newStore(t), true)
	u, err := uc.Sessions().UserFromPayload(context.Background(), &auth.Payload{UserID: "x", Email: "admin@loja.org", TenantID: tenantB})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, tenantA, u.TenantID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / perfil
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_OK(t *testing.T) {
	uc := newUseCase(newStore(t), false)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " Admin@Loja.org ", Password: "secreta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "Grande Oriente", out.User.TenantName)
	assert.Equal(t, "LODGE_ADMIN", out.User.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newUseCase(newStore(t), false)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@loja.org", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@loja.org", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioSuspendido(t *testing.T) {
	s := newStore(t)
	s.Users["u1"].Status = entity.UserStatusSuspended
	_, err := newUseCase(s, false).Login(context.Background(), dto.LoginRequest{Email: "admin@loja.org", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestLogin_LojaInactiva(t *testing.T) {
	s := newStore(t)
	s.Lojas[lojaID].Situacao = "ADORMECIDA"
	_, err := newUseCase(s, false).Login(context.Background(), dto.LoginRequest{Email: "admin@loja.org", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrLojaInactive)
}

func TestMe_NombreCaeAlEmail(t *testing.T) {
	s := newStore(t)
	uc := newUseCase(s, false)
	out, err := uc.Me(context.Background(), s.Users["u1"])
	require.NoError(t, err)
	assert.Equal(t, "admin@loja.org", out.Name)
	assert.Equal(t, tenantA, out.TenantID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contraseñas
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword(t *testing.T) {
	s := newStore(t)
	uc := newUseCase(s, false)
	ctx := context.Background()

	err := uc.ChangePassword(ctx, s.Users["u1"], dto.ChangePasswordRequest{CurrentPassword: "mala", NewPassword: "nuevaClave1", ConfirmPassword: "nuevaClave1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.ChangePassword(ctx, s.Users["u1"], dto.ChangePasswordRequest{CurrentPassword: "secreta123", NewPassword: "nuevaClave1", ConfirmPassword: "nuevaClave1"}))
	assert.True(t, auth.CheckPassword(s.Users["u1"].PasswordHash, "nuevaClave1"))
}

func TestVerifyPassword(t *testing.T) {
	s := newStore(t)
	uc := newUseCase(s, false)
	ctx := context.Background()
	admin := s.Users["u1"]

	ok, err := uc.VerifyPassword(ctx, admin, "secreta123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.VerifyPassword(ctx, admin, "otra")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = uc.VerifyPassword(ctx, admin, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	member := *admin
	member.Role = role.Member
	_, err = uc.VerifyPassword(ctx, &member, "secreta123")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
