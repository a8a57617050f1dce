// Package billing cálculo puro de cobranzas: períodos, grilla miembro×período y resumen.
package billing

import (
	"fmt"
	"strconv"

	"github.com/esferaordo/ordo-api/internal/domain/entity"
)

// AnnualPeriodCount cantidad de años que cubre la grilla anual.
const AnnualPeriodCount = 6

var monthAbbrevPT = [...]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// Period columna de la grilla; se genera sin tocar la base.
type Period struct {
	ID          string `json:"id"`
	Year        int    `json:"year"`
	Month       int    `json:"month,omitempty"`
	Label       string `json:"label"`
	PaymentType string `json:"paymentType"`
}

// MonthlyPeriods 12 períodos "YYYY-MM" del año.
func MonthlyPeriods(year int) []Period {
	out := make([]Period, 0, 12)
	for m := 1; m <= 12; m++ {
		out = append(out, Period{
			ID:          fmt.Sprintf("%d-%02d", year, m),
			Year:        year,
			Month:       m,
			Label:       fmt.Sprintf("%s/%d", monthAbbrevPT[m-1], year),
			PaymentType: entity.PaymentTypeMensalidadeLoja,
		})
	}
	return out
}

// AnnualPeriods count períodos "YYYY" a partir de startYear.
func AnnualPeriods(startYear, count int) []Period {
	out := make([]Period, 0, count)
	for i := 0; i < count; i++ {
		y := startYear + i
		out = append(out, Period{
			ID:          strconv.Itoa(y),
			Year:        y,
			Label:       strconv.Itoa(y),
			PaymentType: entity.PaymentTypeAnuidadePriorado,
		})
	}
	return out
}

// PeriodsFor períodos según el tipo MONTHLY | ANNUAL.
func PeriodsFor(periodType string, year int) []Period {
	if periodType == entity.PeriodAnnual {
		return AnnualPeriods(year, AnnualPeriodCount)
	}
	return MonthlyPeriods(year)
}

// RelevantYears años de pagos a consultar para la grilla.
func RelevantYears(periodType string, year int) []int {
	if periodType != entity.PeriodAnnual {
		return []int{year}
	}
	years := make([]int, AnnualPeriodCount)
	for i := range years {
		years[i] = year + i
	}
	return years
}

// ValidPeriodType indica si t es MONTHLY o ANNUAL.
func ValidPeriodType(t string) bool {
	return t == entity.PeriodMonthly || t == entity.PeriodAnnual
}

// PeriodLabel "MM/YYYY" para mensalidades, "YYYY" para anuidades.
func PeriodLabel(year int, month *int) string {
	if month == nil || *month == 0 {
		return strconv.Itoa(year)
	}
	return fmt.Sprintf("%02d/%d", *month, year)
}
