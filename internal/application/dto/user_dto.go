package dto

// CreateUserRequest alta de usuario; queda INVITED y recibe invitación.
type CreateUserRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Name       string  `json:"name" validate:"omitempty,max=200"`
	Role       string  `json:"role" validate:"required"`
	TenantID   string  `json:"tenantId" validate:"omitempty,uuid"`
	LojaID     *string `json:"lojaId" validate:"omitempty,uuid"`
	PotenciaID *string `json:"potenciaId" validate:"omitempty,uuid"`
}

// InviteRequest reenvío de invitación.
type InviteRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

// InviteResponse resultado del envío; el link solo se incluye fuera de producción.
type InviteResponse struct {
	Success   bool   `json:"success"`
	UserID    string `json:"userId"`
	ExpiresIn string `json:"expiresIn"`
	InviteURL string `json:"inviteUrl,omitempty"`
}

// UpdateUserRequest edición parcial de usuario (SYS_ADMIN).
type UpdateUserRequest struct {
	Email  *string `json:"email" validate:"omitempty,email"`
	Name   *string `json:"name" validate:"omitempty,max=200"`
	Role   *string `json:"role"`
	Status *string `json:"status" validate:"omitempty,oneof=INVITED ACTIVE SUSPENDED"`
	LojaID *string `json:"lojaId" validate:"omitempty,uuid"`
}
