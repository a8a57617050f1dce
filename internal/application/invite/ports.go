package invite

import (
	"context"
	"time"

	"github.com/esferaordo/ordo-api/internal/domain/repository"
)

// Mailer entrega el link de invitación al usuario.
type Mailer interface {
	SendInvite(ctx context.Context, msg InviteMessage) error
}

// InviteMessage datos del correo de invitación.
type InviteMessage struct {
	To        string
	Name      string
	Link      string
	ExpiresAt time.Time
}

// TxRunner ejecuta fn en una transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}
