package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/esferaordo/ordo-api/internal/domain/entity"
)

// CellKey clave de celda: "{memberId}-{YYYY}-{MM}" (MONTHLY) o "{memberId}-{YYYY}" (ANNUAL).
func CellKey(memberID string, year, month int, periodType string) string {
	if periodType == entity.PeriodAnnual {
		return fmt.Sprintf("%s-%d", memberID, year)
	}
	return fmt.Sprintf("%s-%d-%02d", memberID, year, month)
}

// CellStatus estado de pago de una celda.
type CellStatus struct {
	IsPaid      bool             `json:"isPaid"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	PaymentDate *time.Time       `json:"paymentDate,omitempty"`
}

type aggregate struct {
	amount decimal.Decimal
	latest time.Time
}

// BuildStatuses agrega pagos en memoria y devuelve el estado de cada celda miembro×período.
// Pagos del mismo período se suman; se conserva la fecha más reciente.
func BuildStatuses(memberIDs []string, periods []Period, payments []entity.MemberPayment, periodType string) map[string]CellStatus {
	agg := make(map[string]*aggregate, len(payments))
	for _, p := range payments {
		month := 0
		if p.ReferenceMonth != nil {
			month = *p.ReferenceMonth
		}
		key := CellKey(p.MemberID, p.ReferenceYear, month, periodType)
		a, ok := agg[key]
		if !ok {
			a = &aggregate{amount: decimal.Zero}
			agg[key] = a
		}
		a.amount = a.amount.Add(p.Amount)
		if p.PaymentDate.After(a.latest) {
			a.latest = p.PaymentDate
		}
	}

	statuses := make(map[string]CellStatus, len(memberIDs)*len(periods))
	for _, id := range memberIDs {
		for _, per := range periods {
			key := CellKey(id, per.Year, per.Month, periodType)
			a, ok := agg[key]
			if !ok {
				statuses[key] = CellStatus{IsPaid: false}
				continue
			}
			amount := a.amount
			st := CellStatus{IsPaid: amount.GreaterThan(decimal.Zero), Amount: &amount}
			if !a.latest.IsZero() {
				latest := a.latest
				st.PaymentDate = &latest
			}
			statuses[key] = st
		}
	}
	return statuses
}
