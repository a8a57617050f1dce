package entity

import (
	"time"

	"github.com/esferaordo/ordo-api/internal/domain/role"
)

// Estados del ciclo de vida de User: INVITED → ACTIVE → SUSPENDED.
const (
	UserStatusInvited   = "INVITED"
	UserStatusActive    = "ACTIVE"
	UserStatusSuspended = "SUSPENDED"
)

// User identidad de acceso; distinta de Member.
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string // vacío mientras el usuario está INVITED
	Name         string
	Role         role.Role
	Status       string
	LojaID       *string
	PotenciaID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword indica si ya definió contraseña.
func (u *User) HasPassword() bool { return u.PasswordHash != "" }

// IsActive indica si el usuario puede iniciar sesión.
func (u *User) IsActive() bool { return u.Status == UserStatusActive }
