package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrMemberNotFound     = errors.New("membro não encontrado")
	ErrLojaNotFound       = errors.New("loja não encontrada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrInvalidInviteToken agrupa token inexistente, usado o expirado sin distinguirlos.
	ErrInvalidInviteToken = errors.New("Link inválido ou expirado. Solicite um novo convite.")
	ErrSessionNotHappened = errors.New("Sessão ainda não aconteceu. Só é possível marcar presença em sessões que já ocorreram.")
	ErrNoLoja             = errors.New("usuário sem loja vinculada")
	ErrUserInactive       = errors.New("usuário não está ativo")
	ErrLojaInactive       = errors.New("loja não está ativa")
)

// ValidationError error de validación con detalle por campo.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
