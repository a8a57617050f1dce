// Package attendance reglas puras de presença: elegibilidad de una sessão y ventana mensual.
package attendance

import "time"

// BlockedCode código devuelto cuando la sessão aún no ocurrió.
const BlockedCode = "SESSION_NOT_HAPPENED_YET"

// fallbackZone se usa solo si el tenant no tiene zona configurada.
var fallbackZone = time.FixedZone("UTC-3", -3*60*60)

// CanMarkAttendance permite marcar presença solo si el día calendario de la sessão
// (en la zona del tenant) es anterior o igual al día actual en esa misma zona.
func CanMarkAttendance(sessionDate, now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = fallbackZone
	}
	return !startOfDay(sessionDate, loc).After(startOfDay(now, loc))
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// LoadLocation resuelve la zona IANA del tenant; si está vacía o es inválida usa def.
func LoadLocation(name string, def *time.Location) *time.Location {
	if name == "" {
		return def
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return def
	}
	return loc
}
