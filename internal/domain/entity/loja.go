package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const LojaSituacaoAtiva = "ATIVA"

// Potencia federación que agrupa lojas.
type Potencia struct {
	ID       string
	TenantID string
	Name     string
}

// Loja (lodge) pertenece a una Potencia.
type Loja struct {
	ID         string
	TenantID   string
	PotenciaID *string
	Name       string
	Numero     *int
	Situacao   string
	// Valores de mensalidade por condição; nil usa ValorMensalidade y luego el valor por defecto.
	ValorMensalidade   *decimal.Decimal
	MensalidadeRegular *decimal.Decimal
	MensalidadeFiliado *decimal.Decimal
	MensalidadeRemido  *decimal.Decimal
	ValorAnuidade      *decimal.Decimal
	CreatedAt          time.Time
}

// IsActive indica si la loja está en situación ATIVA.
func (l *Loja) IsActive() bool { return l.Situacao == LojaSituacaoAtiva }
