package billing

import (
	"github.com/shopspring/decimal"

	"github.com/esferaordo/ordo-api/internal/domain/entity"
)

// Valores cuando la loja no define ninguno.
var (
	DefaultMensalidade = decimal.NewFromInt(150)
	DefaultAnuidade    = decimal.NewFromInt(500)
)

// ResolveMensalidade valor de mensalidade de un miembro según su condição.
func ResolveMensalidade(loja *entity.Loja, condicao string) decimal.Decimal {
	if loja == nil {
		return DefaultMensalidade
	}
	fallback := DefaultMensalidade
	if loja.ValorMensalidade != nil {
		fallback = *loja.ValorMensalidade
	}
	pick := func(v *decimal.Decimal) decimal.Decimal {
		if v == nil {
			return fallback
		}
		return *v
	}
	switch condicao {
	case entity.CondicaoFiliado:
		return pick(loja.MensalidadeFiliado)
	case entity.CondicaoRemido:
		return pick(loja.MensalidadeRemido)
	default:
		return pick(loja.MensalidadeRegular)
	}
}

// ResolveMensalidadeRegular valor REGULAR de la loja.
func ResolveMensalidadeRegular(loja *entity.Loja) decimal.Decimal {
	return ResolveMensalidade(loja, entity.CondicaoRegular)
}

// ResolveAnuidade valor de anuidade de la loja.
func ResolveAnuidade(loja *entity.Loja) decimal.Decimal {
	if loja == nil || loja.ValorAnuidade == nil {
		return DefaultAnuidade
	}
	return *loja.ValorAnuidade
}
