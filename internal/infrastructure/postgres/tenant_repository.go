package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
)

var (
	_ repository.TenantRepository = (*TenantRepo)(nil)
	_ repository.LojaRepository   = (*LojaRepo)(nil)
)

// TenantRepo lectura de tenants.
type TenantRepo struct {
	db Querier
}

func NewTenantRepository(db Querier) *TenantRepo {
	return &TenantRepo{db: db}
}

func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	var t entity.Tenant
	err := r.db.QueryRow(ctx,
		`SELECT id, name, timezone, created_at FROM tenants WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Timezone, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// LojaRepo persistencia de lojas.
type LojaRepo struct {
	db Querier
}

func NewLojaRepository(db Querier) *LojaRepo {
	return &LojaRepo{db: db}
}

const lojaColumns = `id, tenant_id, potencia_id, name, numero, situacao,
	valor_mensalidade, mensalidade_regular, mensalidade_filiado, mensalidade_remido, valor_anuidade, created_at`

func scanLoja(row pgx.Row) (*entity.Loja, error) {
	var l entity.Loja
	err := row.Scan(
		&l.ID, &l.TenantID, &l.PotenciaID, &l.Name, &l.Numero, &l.Situacao,
		&l.ValorMensalidade, &l.MensalidadeRegular, &l.MensalidadeFiliado, &l.MensalidadeRemido, &l.ValorAnuidade, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LojaRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Loja, error) {
	l, err := scanLoja(r.db.QueryRow(ctx,
		`SELECT `+lojaColumns+` FROM lojas WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loja: %w", err)
	}
	return l, nil
}

func (r *LojaRepo) FirstByTenant(ctx context.Context, tenantID string) (*entity.Loja, error) {
	l, err := scanLoja(r.db.QueryRow(ctx,
		`SELECT `+lojaColumns+` FROM lojas WHERE tenant_id = $1 ORDER BY name LIMIT 1`, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("first loja: %w", err)
	}
	return l, nil
}

func (r *LojaRepo) ListByTenant(ctx context.Context, tenantID string) ([]entity.Loja, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+lojaColumns+` FROM lojas WHERE tenant_id = $1 ORDER BY name`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list lojas: %w", err)
	}
	defer rows.Close()

	var list []entity.Loja
	for rows.Next() {
		l, err := scanLoja(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loja: %w", err)
		}
		list = append(list, *l)
	}
	return list, rows.Err()
}

func (r *LojaRepo) Create(ctx context.Context, l *entity.Loja) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO lojas (`+lojaColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		l.ID, l.TenantID, l.PotenciaID, l.Name, l.Numero, l.Situacao,
		l.ValorMensalidade, l.MensalidadeRegular, l.MensalidadeFiliado, l.MensalidadeRemido, l.ValorAnuidade, l.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert loja: %w", err)
	}
	return nil
}

func (r *LojaRepo) Update(ctx context.Context, l *entity.Loja) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE lojas SET potencia_id = $3, name = $4, numero = $5, situacao = $6,
			valor_mensalidade = $7, mensalidade_regular = $8, mensalidade_filiado = $9,
			mensalidade_remido = $10, valor_anuidade = $11
		WHERE tenant_id = $1 AND id = $2`,
		l.TenantID, l.ID, l.PotenciaID, l.Name, l.Numero, l.Situacao,
		l.ValorMensalidade, l.MensalidadeRegular, l.MensalidadeFiliado, l.MensalidadeRemido, l.ValorAnuidade,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update loja: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
