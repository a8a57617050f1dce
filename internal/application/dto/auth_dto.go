package dto

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido (también enviado en la cookie) y usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MeResponse envoltorio de GET /api/auth/me.
type MeResponse struct {
	User UserResponse `json:"user"`
}

// UserResponse usuario sin datos sensibles.
type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Status     string  `json:"status,omitempty"`
	TenantID   string  `json:"tenantId"`
	TenantName string  `json:"tenantName,omitempty"`
	LojaID     *string `json:"lojaId,omitempty"`
	PotenciaID *string `json:"potenciaId,omitempty"`
}

// SetPasswordRequest definición de contraseña con token de invitación.
type SetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// ChangePasswordRequest cambio de contraseña del usuario autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// VerifyPasswordRequest re-autenticación de un admin.
type VerifyPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// VerifyPasswordResponse resultado de la verificación.
type VerifyPasswordResponse struct {
	Valid bool `json:"valid"`
}
