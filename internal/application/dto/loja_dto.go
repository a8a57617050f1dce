package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LojaResponse loja visible para el usuario.
type LojaResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Numero     *int      `json:"numero"`
	Situacao   string    `json:"situacao"`
	PotenciaID *string   `json:"potenciaId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateLojaRequest alta de loja (SaaS-admin).
type CreateLojaRequest struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Numero     *int    `json:"numero" validate:"omitempty,gte=1"`
	Situacao   string  `json:"situacao" validate:"omitempty,max=40"`
	PotenciaID *string `json:"potenciaId" validate:"omitempty,uuid"`
}

// UpdateLojaRequest edición parcial de loja, valores incluidos.
type UpdateLojaRequest struct {
	Name               *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Numero             *int             `json:"numero" validate:"omitempty,gte=1"`
	Situacao           *string          `json:"situacao" validate:"omitempty,min=1,max=40"`
	PotenciaID         *string          `json:"potenciaId" validate:"omitempty,uuid"`
	ValorMensalidade   *decimal.Decimal `json:"valorMensalidade"`
	MensalidadeRegular *decimal.Decimal `json:"mensalidadeRegular"`
	MensalidadeFiliado *decimal.Decimal `json:"mensalidadeFiliado"`
	MensalidadeRemido  *decimal.Decimal `json:"mensalidadeRemido"`
	ValorAnuidade      *decimal.Decimal `json:"valorAnuidade"`
}

// LojaValoresResponse valores efectivos de la loja, con los defaults ya aplicados.
type LojaValoresResponse struct {
	ValorMensalidade   decimal.Decimal `json:"valorMensalidade"`
	ValorAnuidade      decimal.Decimal `json:"valorAnuidade"`
	MensalidadeRegular decimal.Decimal `json:"mensalidadeRegular"`
	MensalidadeFiliado decimal.Decimal `json:"mensalidadeFiliado"`
	MensalidadeRemido  decimal.Decimal `json:"mensalidadeRemido"`
}
