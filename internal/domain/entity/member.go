package entity

import "time"

// Situações de Member.
const (
	MemberSituacaoAtivo = "ATIVO"
)

// Condições de mensalidade.
const (
	CondicaoRegular = "REGULAR"
	CondicaoFiliado = "FILIADO"
	CondicaoRemido  = "REMIDO"
)

// Member perfil de membro de uma loja. UserID enlaza al User cuando existe cuenta.
type Member struct {
	ID                  string
	TenantID            string
	LojaID              string
	UserID              *string
	NomeCompleto        string
	Email               string
	Class               *string
	Situacao            string
	CondicaoMensalidade string
	CreatedAt           time.Time
}
