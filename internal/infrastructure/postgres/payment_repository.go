package postgres

import (
	"context"
	"fmt"

	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
)

var (
	_ repository.PaymentRepository = (*PaymentRepo)(nil)
	_ repository.ChargeRepository  = (*ChargeRepo)(nil)
)

// PaymentRepo persistencia de pagamentos.
type PaymentRepo struct {
	db Querier
}

func NewPaymentRepository(db Querier) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.MemberPayment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO member_payments (id, tenant_id, loja_id, member_id, payment_type, reference_year, reference_month,
			amount, method, payment_date, status, beneficiary, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.ID, p.TenantID, p.LojaID, p.MemberID, p.PaymentType, p.ReferenceYear, p.ReferenceMonth,
		p.Amount, p.Method, p.PaymentDate, p.Status, p.Beneficiary, p.Description, nullIfEmpty(p.CreatedBy), p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && constraintName(err) == "ux_payments_confirmed_period" {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListForGrid pagamentos confirmados de los membros indicados para los años relevantes.
func (r *PaymentRepo) ListForGrid(ctx context.Context, tenantID string, memberIDs []string, paymentType string, years []int) ([]entity.MemberPayment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, tenant_id, loja_id, member_id, payment_type, reference_year, reference_month,
			amount, method, payment_date, status, beneficiary, description, created_at
		FROM member_payments
		WHERE tenant_id = $1 AND member_id = ANY($2::uuid[]) AND payment_type = $3
			AND reference_year = ANY($4::int[]) AND status = $5`,
		tenantID, memberIDs, paymentType, years, entity.PaymentStatusConfirmed,
	)
	if err != nil {
		return nil, fmt.Errorf("list payments for grid: %w", err)
	}
	defer rows.Close()

	var list []entity.MemberPayment
	for rows.Next() {
		var p entity.MemberPayment
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.LojaID, &p.MemberID, &p.PaymentType, &p.ReferenceYear, &p.ReferenceMonth,
			&p.Amount, &p.Method, &p.PaymentDate, &p.Status, &p.Beneficiary, &p.Description, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PaymentRepo) ExistsConfirmed(ctx context.Context, tenantID, memberID, paymentType string, year int, month *int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM member_payments
			WHERE tenant_id = $1 AND member_id = $2 AND payment_type = $3 AND reference_year = $4
				AND COALESCE(reference_month, 0) = COALESCE($5::int, 0) AND status = $6
		)`,
		tenantID, memberID, paymentType, year, month, entity.PaymentStatusConfirmed,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists payment: %w", err)
	}
	return exists, nil
}

func (r *PaymentRepo) ListByMember(ctx context.Context, tenantID, memberID string) ([]entity.MemberPayment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, tenant_id, loja_id, member_id, payment_type, reference_year, reference_month,
			amount, method, payment_date, status, beneficiary, description, created_at
		FROM member_payments
		WHERE tenant_id = $1 AND member_id = $2 AND amount > 0
		ORDER BY payment_date DESC`,
		tenantID, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list payments by member: %w", err)
	}
	defer rows.Close()

	var list []entity.MemberPayment
	for rows.Next() {
		var p entity.MemberPayment
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.LojaID, &p.MemberID, &p.PaymentType, &p.ReferenceYear, &p.ReferenceMonth,
			&p.Amount, &p.Method, &p.PaymentDate, &p.Status, &p.Beneficiary, &p.Description, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ChargeRepo persistencia de cobranzas.
type ChargeRepo struct {
	db Querier
}

func NewChargeRepository(db Querier) *ChargeRepo {
	return &ChargeRepo{db: db}
}

func (r *ChargeRepo) ListForSummary(ctx context.Context, tenantID, lojaID, periodType string, year int) ([]entity.DuesCharge, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, tenant_id, loja_id, member_id, type, year, month, expected_amount, status, payment_id, created_at, updated_at
		FROM dues_charges
		WHERE tenant_id = $1 AND loja_id = $2 AND type = $3 AND year = $4`,
		tenantID, lojaID, periodType, year,
	)
	if err != nil {
		return nil, fmt.Errorf("list charges: %w", err)
	}
	defer rows.Close()

	var list []entity.DuesCharge
	for rows.Next() {
		var c entity.DuesCharge
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.LojaID, &c.MemberID, &c.Type, &c.Year, &c.Month,
			&c.ExpectedAmount, &c.Status, &c.PaymentID, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan charge: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// UpsertPaid crea la cobranza del período ya PAID o marca como PAID la existente
// conservando su valor esperado.
func (r *ChargeRepo) UpsertPaid(ctx context.Context, c *entity.DuesCharge) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO dues_charges (id, tenant_id, loja_id, member_id, type, year, month, expected_amount, status, payment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (tenant_id, member_id, type, year, (COALESCE(month, 0)))
		DO UPDATE SET status = EXCLUDED.status, payment_id = EXCLUDED.payment_id, updated_at = EXCLUDED.updated_at`,
		c.ID, c.TenantID, c.LojaID, c.MemberID, c.Type, c.Year, c.Month,
		c.ExpectedAmount, entity.ChargeStatusPaid, c.PaymentID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert charge: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
