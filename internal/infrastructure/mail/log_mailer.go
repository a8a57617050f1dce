// Package mail entrega de invitaciones. La entrega real por SMTP no está
// implementada; LogMailer registra el link en el log estructurado.
package mail

import (
	"context"

	"github.com/esferaordo/ordo-api/internal/application/invite"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

var _ invite.Mailer = (*LogMailer)(nil)

// LogMailer implementa invite.Mailer escribiendo en el log.
type LogMailer struct {
	log *logger.Logger
	// showLink incluye el link completo (solo desarrollo).
	showLink bool
}

// NewLogMailer construye el mailer. showLink=false oculta el token en producción.
func NewLogMailer(log *logger.Logger, showLink bool) *LogMailer {
	return &LogMailer{log: log, showLink: showLink}
}

func (m *LogMailer) SendInvite(_ context.Context, msg invite.InviteMessage) error {
	ev := m.log.Info().
		Str("to", msg.To).
		Str("name", msg.Name).
		Time("expires_at", msg.ExpiresAt)
	if m.showLink {
		ev = ev.Str("link", msg.Link)
	}
	ev.Msg("convite de acesso gerado")
	return nil
}
