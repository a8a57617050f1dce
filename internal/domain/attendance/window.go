package attendance

import (
	"fmt"
	"time"
)

var monthNamesPT = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthWindow devuelve [primer instante del mes, último instante del mes] en loc.
// El fin es el día 0 del mes siguiente a las 23:59:59.999.
func MonthWindow(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := time.Date(year, month+1, 0, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

// MonthLabel etiqueta pt-BR, ej. "outubro de 2026".
func MonthLabel(year int, month time.Month) string {
	if month < time.January || month > time.December {
		return fmt.Sprintf("%d", year)
	}
	return fmt.Sprintf("%s de %d", monthNamesPT[month-1], year)
}

// Counts totales agrupados por estado.
type Counts struct {
	Presentes    int
	Faltas       int
	Justificadas int
}

// Ausentes FALTA + JUSTIFICADA.
func (c Counts) Ausentes() int { return c.Faltas + c.Justificadas }

// ParseDate acepta RFC 3339, "YYYY-MM-DDTHH:MM" (hora local de loc) o "YYYY-MM-DD".
// Una fecha sin hora toma el inicio del día, o el último instante si endOfDay.
func ParseDate(s string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", s, loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		y, m, d := t.Date()
		t = time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
	}
	return t, nil
}
