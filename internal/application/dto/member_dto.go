package dto

// MemberResponse fila del listado de membros.
type MemberResponse struct {
	ID           string  `json:"id"`
	NomeCompleto string  `json:"nomeCompleto"`
	Class        *string `json:"class"`
	Situacao     string  `json:"situacao"`
	Email        string  `json:"email"`
	LojaID       string  `json:"lojaId"`
}

// MemberDetailResponse GET /api/members/{id}.
type MemberDetailResponse struct {
	MemberResponse
	CondicaoMensalidade string  `json:"condicaoMensalidade"`
	UserID              *string `json:"userId"`
}

// CreateMemberRequest alta de membro en la loja del usuario.
type CreateMemberRequest struct {
	NomeCompleto        string  `json:"nomeCompleto" validate:"required,max=200"`
	Email               string  `json:"email" validate:"omitempty,email"`
	Class               *string `json:"class" validate:"omitempty,max=60"`
	Situacao            string  `json:"situacao" validate:"omitempty,max=40"`
	CondicaoMensalidade string  `json:"condicaoMensalidade" validate:"omitempty,oneof=REGULAR FILIADO REMIDO"`
}

// UpdateMemberRequest edición parcial de membro.
type UpdateMemberRequest struct {
	NomeCompleto        *string `json:"nomeCompleto" validate:"omitempty,min=1,max=200"`
	Email               *string `json:"email" validate:"omitempty,email"`
	Class               *string `json:"class" validate:"omitempty,max=60"`
	Situacao            *string `json:"situacao" validate:"omitempty,min=1,max=40"`
	CondicaoMensalidade *string `json:"condicaoMensalidade" validate:"omitempty,oneof=REGULAR FILIADO REMIDO"`
}
