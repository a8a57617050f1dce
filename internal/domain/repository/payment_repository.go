package repository

import (
	"context"

	"github.com/esferaordo/ordo-api/internal/domain/entity"
)

// PaymentRepository puerto de persistencia para pagamentos de membros.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.MemberPayment) error
	ListForGrid(ctx context.Context, tenantID string, memberIDs []string, paymentType string, years []int) ([]entity.MemberPayment, error)
	ExistsConfirmed(ctx context.Context, tenantID, memberID, paymentType string, year int, month *int) (bool, error)
	// ListByMember pagamentos con valor positivo, del más reciente al más antiguo.
	ListByMember(ctx context.Context, tenantID, memberID string) ([]entity.MemberPayment, error)
}

// ChargeRepository puerto de persistencia para cobranzas (dues charges).
type ChargeRepository interface {
	ListForSummary(ctx context.Context, tenantID, lojaID, periodType string, year int) ([]entity.DuesCharge, error)
	// UpsertPaid crea o actualiza la cobranza del período con estado PAID.
	UpsertPaid(ctx context.Context, c *entity.DuesCharge) error
}
