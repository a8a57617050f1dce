// Package role define el enum canónico de roles y los predicados de permiso.
// Todos los predicados son funciones puras de pertenencia a conjunto.
package role

import "strings"

// Role rol de un usuario.
type Role string

const (
	SysAdmin      Role = "SYS_ADMIN"
	SaasAdmin     Role = "SAAS_ADMIN"
	PotenciaAdmin Role = "POTENCIA_ADMIN"
	LodgeAdmin    Role = "LODGE_ADMIN"
	Secretary     Role = "SECRETARY"
	Treasurer     Role = "TREASURER"
	Member        Role = "MEMBER"
)

// All lista todos los roles válidos.
var All = []Role{SysAdmin, SaasAdmin, PotenciaAdmin, LodgeAdmin, Secretary, Treasurer, Member}

// legacy nombres antiguos aún presentes en datos importados.
var legacy = map[string]Role{
	"ADMIN_SAAS":      SaasAdmin,
	"ADMIN_POT":       PotenciaAdmin,
	"ADMIN_LOJA":      LodgeAdmin,
	"ADMIN":           LodgeAdmin,
	"SECRETARIO_LOJA": Secretary,
	"TESOUREIRO":      Treasurer,
	"FINANCE":         Treasurer,
}

// LegacyMapping copia del mapeo de nombres antiguos al enum canónico.
func LegacyMapping() map[string]Role {
	out := make(map[string]Role, len(legacy))
	for k, v := range legacy {
		out[k] = v
	}
	return out
}

// Parse normaliza un string (canónico o legacy) a Role. ok=false si no se reconoce.
func Parse(s string) (Role, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	r := Role(s)
	if r.Valid() {
		return r, true
	}
	if mapped, found := legacy[s]; found {
		return mapped, true
	}
	return "", false
}

// Valid indica si r es un rol canónico.
func (r Role) Valid() bool {
	switch r {
	case SysAdmin, SaasAdmin, PotenciaAdmin, LodgeAdmin, Secretary, Treasurer, Member:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

func IsSaasAdmin(r Role) bool     { return r == SysAdmin || r == SaasAdmin }
func IsSysAdmin(r Role) bool      { return r == SysAdmin }
func IsPotenciaAdmin(r Role) bool { return r == PotenciaAdmin }
func IsLodgeAdmin(r Role) bool    { return r == LodgeAdmin }
func IsSecretary(r Role) bool     { return r == Secretary }
func IsTreasurer(r Role) bool     { return r == Treasurer }
func IsMember(r Role) bool        { return r == Member }

// IsAdmin administradores con acceso a operaciones sensibles (SaaS o loja).
func IsAdmin(r Role) bool { return IsSaasAdmin(r) || IsLodgeAdmin(r) }

func CanManageMembers(r Role) bool { return IsLodgeAdmin(r) || IsSecretary(r) }
func CanDeleteMembers(r Role) bool { return IsLodgeAdmin(r) || IsSecretary(r) }

func CanViewMembers(r Role) bool {
	return IsSaasAdmin(r) || IsPotenciaAdmin(r) || IsLodgeAdmin(r) ||
		IsSecretary(r) || IsTreasurer(r) || IsMember(r)
}

func CanAccessFinance(r Role) bool {
	return IsSaasAdmin(r) || IsLodgeAdmin(r) || IsTreasurer(r)
}

func CanAccessPresence(r Role) bool {
	return IsSaasAdmin(r) || IsLodgeAdmin(r) || IsSecretary(r)
}

func CanManageInventory(r Role) bool {
	return IsSaasAdmin(r) || IsLodgeAdmin(r) || IsSecretary(r) || IsTreasurer(r)
}

// NeedsLojaScope roles cuyas consultas se restringen a su propia loja.
func NeedsLojaScope(r Role) bool { return IsLodgeAdmin(r) || IsSecretary(r) }
