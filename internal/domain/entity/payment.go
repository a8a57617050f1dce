package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de período de cobranza.
const (
	PeriodMonthly = "MONTHLY"
	PeriodAnnual  = "ANNUAL"
)

// Tipos de pagamento persistidos.
const (
	PaymentTypeMensalidadeLoja  = "MENSALIDADE_LOJA"
	PaymentTypeAnuidadePriorado = "ANUIDADE_PRIORADO"
)

// Métodos de pagamento aceitos.
const (
	PaymentMethodPix           = "PIX"
	PaymentMethodTransferencia = "TRANSFERENCIA"
	PaymentMethodDinheiro      = "DINHEIRO"
	PaymentMethodBoleto        = "BOLETO"
)

const (
	PaymentStatusConfirmed = "CONFIRMED"

	BeneficiaryLodge   = "LODGE"
	BeneficiaryPotency = "POTENCY"
)

// Estados de DuesCharge.
const (
	ChargeStatusOpen = "OPEN"
	ChargeStatusPaid = "PAID"
)

// PaymentTypeFor traduce MONTHLY/ANNUAL al tipo de pagamento persistido.
func PaymentTypeFor(period string) string {
	if period == PeriodAnnual {
		return PaymentTypeAnuidadePriorado
	}
	return PaymentTypeMensalidadeLoja
}

// MemberPayment evento de pago de un miembro por período.
type MemberPayment struct {
	ID             string
	TenantID       string
	LojaID         string
	MemberID       string
	PaymentType    string
	ReferenceYear  int
	ReferenceMonth *int // nil en ANNUAL
	Amount         decimal.Decimal
	Method         string
	PaymentDate    time.Time
	Status         string
	Beneficiary    string
	Description    string
	CreatedBy      string
	CreatedAt      time.Time
}

// DuesCharge cobranza esperada de un miembro por período.
type DuesCharge struct {
	ID             string
	TenantID       string
	LojaID         string
	MemberID       string
	Type           string // MONTHLY | ANNUAL
	Year           int
	Month          *int
	ExpectedAmount decimal.Decimal
	Status         string
	PaymentID      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
