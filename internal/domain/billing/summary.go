package billing

import (
	"github.com/shopspring/decimal"

	"github.com/esferaordo/ordo-api/internal/domain/entity"
)

// Summary totales de cobranza de una loja por tipo y año.
// Invariante: OpenAmount == ExpectedAmount - PaidAmount.
type Summary struct {
	ExpectedAmount    decimal.Decimal `json:"expectedAmount"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	OpenAmount        decimal.Decimal `json:"openAmount"`
	MembersActive     int             `json:"membersActive"`
	PaidMembers       int             `json:"paidMembers"`
	DelinquentMembers int             `json:"delinquentMembers"`
}

// Summarize calcula el resumen a partir de las cobranzas del período.
// MONTHLY cuenta miembros distintos; ANNUAL cuenta cobranzas.
func Summarize(charges []entity.DuesCharge, membersActive int, periodType string) Summary {
	expected := decimal.Zero
	paid := decimal.Zero
	paidMembers := map[string]struct{}{}
	openMembers := map[string]struct{}{}
	paidCount, openCount := 0, 0

	for _, c := range charges {
		expected = expected.Add(c.ExpectedAmount)
		switch c.Status {
		case entity.ChargeStatusPaid:
			paid = paid.Add(c.ExpectedAmount)
			paidMembers[c.MemberID] = struct{}{}
			paidCount++
		case entity.ChargeStatusOpen:
			openMembers[c.MemberID] = struct{}{}
			openCount++
		}
	}

	s := Summary{
		ExpectedAmount: expected,
		PaidAmount:     paid,
		OpenAmount:     expected.Sub(paid),
		MembersActive:  membersActive,
	}
	if periodType == entity.PeriodMonthly {
		s.PaidMembers = len(paidMembers)
		s.DelinquentMembers = len(openMembers)
	} else {
		s.PaidMembers = paidCount
		s.DelinquentMembers = openCount
	}
	return s
}
