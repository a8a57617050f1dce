package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/esferaordo/ordo-api/internal/domain/billing"
)

// BillingSummaryQuery query de GET /api/billing/summary.
type BillingSummaryQuery struct {
	Year int    `query:"year" validate:"required,gte=2000,lte=2100"`
	Type string `query:"type" validate:"required,oneof=MONTHLY ANNUAL"`
}

// BillingSummaryResponse resumen con contexto de loja.
type BillingSummaryResponse struct {
	LojaID string `json:"lojaId"`
	Year   int    `json:"year"`
	Type   string `json:"type"`
	billing.Summary
}

// GridMember fila de la grilla.
type GridMember struct {
	ID                  string          `json:"id"`
	NomeCompleto        string          `json:"nomeCompleto"`
	Situacao            string          `json:"situacao"`
	Class               *string         `json:"class"`
	CondicaoMensalidade string          `json:"condicaoMensalidade"`
	MensalidadeValor    decimal.Decimal `json:"mensalidadeValor"`
	MensalidadeRegular  decimal.Decimal `json:"mensalidadeRegular"`
	LojaID              string          `json:"lojaId"`
}

// PaymentGridResponse grilla miembro×período; statuses por clave "memberId-periodId".
type PaymentGridResponse struct {
	Members  []GridMember                  `json:"members"`
	Periods  []billing.Period              `json:"periods"`
	Statuses map[string]billing.CellStatus `json:"statuses"`
}

// RegisterPaymentRequest registro de pagamento.
type RegisterPaymentRequest struct {
	MemberID    string          `json:"memberId" validate:"required,uuid"`
	Type        string          `json:"type" validate:"required,oneof=MONTHLY ANNUAL"`
	Year        int             `json:"year" validate:"required,gte=2000,lte=2100"`
	Month       *int            `json:"month" validate:"omitempty,gte=1,lte=12"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method" validate:"required,oneof=PIX TRANSFERENCIA DINHEIRO BOLETO"`
	PaymentDate *time.Time      `json:"paymentDate"`
	Description string          `json:"description" validate:"omitempty,max=500"`
}

// PaymentResponse pagamento registrado.
type PaymentResponse struct {
	ID             string          `json:"id"`
	MemberID       string          `json:"memberId"`
	PaymentType    string          `json:"paymentType"`
	ReferenceYear  int             `json:"referenceYear"`
	ReferenceMonth *int            `json:"referenceMonth,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	PaymentDate    time.Time       `json:"paymentDate"`
	Beneficiary    string          `json:"beneficiary"`
	Status         string          `json:"status"`
}

// PaymentPeriod período de referencia; label "MM/YYYY" o "YYYY".
type PaymentPeriod struct {
	Year  int    `json:"year"`
	Month *int   `json:"month"`
	Label string `json:"label"`
}

// PaymentHistoryItem pagamento del historial de un membro.
type PaymentHistoryItem struct {
	ID              string          `json:"id"`
	Valor           decimal.Decimal `json:"valor"`
	DataPagamento   time.Time       `json:"dataPagamento"`
	MetodoPagamento string          `json:"metodoPagamento"`
	Observacoes     *string         `json:"observacoes"`
	Tipo            string          `json:"tipo"`
	Periodo         PaymentPeriod   `json:"periodo"`
}
