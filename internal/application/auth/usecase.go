package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
	"github.com/esferaordo/ordo-api/internal/domain/role"
)

// PasswordCost costo bcrypt.
const PasswordCost = bcrypt.DefaultCost

// HashPassword hashea una contraseña con bcrypt.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compara contraseña y hash.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthUseCase login, perfil y contraseñas del usuario autenticado.
type AuthUseCase struct {
	sessions *SessionManager
	users    repository.UserRepository
	tenants  repository.TenantRepository
	lojas    repository.LojaRepository
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(sessions *SessionManager, users repository.UserRepository, tenants repository.TenantRepository, lojas repository.LojaRepository) *AuthUseCase {
	return &AuthUseCase{sessions: sessions, users: users, tenants: tenants, lojas: lojas}
}

// Sessions expone el gestor de sesión (middleware).
func (uc *AuthUseCase) Sessions() *SessionManager { return uc.sessions }

// Login verifica credenciales, estado del usuario y de su loja y emite el token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !CheckPassword(user.PasswordHash, in.Password) {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrUserInactive
	}
	if user.LojaID != nil {
		loja, err := uc.lojas.GetByID(ctx, user.TenantID, *user.LojaID)
		if err != nil {
			return nil, err
		}
		if loja != nil && !loja.IsActive() {
			return nil, domain.ErrLojaInactive
		}
	}
	token, err := uc.sessions.CreateToken(Payload{UserID: user.ID, Email: user.Email, TenantID: user.TenantID})
	if err != nil {
		return nil, err
	}
	out, err := uc.Me(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *out}, nil
}

// Me perfil del usuario con el nombre del tenant.
func (uc *AuthUseCase) Me(ctx context.Context, user *entity.User) (*dto.UserResponse, error) {
	out := ToUserResponse(user)
	tenant, err := uc.tenants.GetByID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant != nil {
		out.TenantName = tenant.Name
	}
	return out, nil
}

// ChangePassword exige la contraseña actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, user *entity.User, in dto.ChangePasswordRequest) error {
	if !CheckPassword(user.PasswordHash, in.CurrentPassword) {
		return domain.NewValidationError("currentPassword", "Senha atual incorreta")
	}
	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return uc.users.UpdatePassword(ctx, user.ID, hash)
}

// VerifyPassword re-autenticación de administradores.
// ErrForbidden si no es admin; ErrInvalidInput si falta contraseña o hash.
func (uc *AuthUseCase) VerifyPassword(_ context.Context, user *entity.User, password string) (bool, error) {
	if !role.IsAdmin(user.Role) {
		return false, domain.ErrForbidden
	}
	if password == "" || user.PasswordHash == "" {
		return false, domain.ErrInvalidInput
	}
	return CheckPassword(user.PasswordHash, password), nil
}

// ToUserResponse convierte a DTO sin datos sensibles. Name cae al email si está vacío.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	name := u.Name
	if name == "" {
		name = u.Email
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       name,
		Role:       u.Role.String(),
		Status:     u.Status,
		TenantID:   u.TenantID,
		LojaID:     u.LojaID,
		PotenciaID: u.PotenciaID,
	}
}
