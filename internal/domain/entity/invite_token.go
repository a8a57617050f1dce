package entity

import "time"

// PasswordInviteToken token de un solo uso; solo se persiste el hash SHA-256.
type PasswordInviteToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Usable indica si el token no fue usado y no expiró en now.
func (t *PasswordInviteToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
