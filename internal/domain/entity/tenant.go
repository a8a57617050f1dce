package entity

import "time"

// Tenant frontera de aislamiento; toda otra entidad lleva TenantID.
type Tenant struct {
	ID        string
	Name      string
	Timezone  string // zona IANA, ej. America/Sao_Paulo
	CreatedAt time.Time
}
