package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
)

var _ repository.MemberRepository = (*MemberRepo)(nil)

// MemberRepo persistencia de membros.
type MemberRepo struct {
	db Querier
}

// NewMemberRepository construye el adaptador.
func NewMemberRepository(db Querier) *MemberRepo {
	return &MemberRepo{db: db}
}

const memberColumns = `m.id, m.tenant_id, m.loja_id, m.user_id, m.nome_completo, m.email, m.class,
	m.situacao, m.condicao_mensalidade, m.created_at`

func scanMember(row pgx.Row) (*entity.Member, error) {
	var m entity.Member
	if err := row.Scan(
		&m.ID, &m.TenantID, &m.LojaID, &m.UserID, &m.NomeCompleto, &m.Email, &m.Class,
		&m.Situacao, &m.CondicaoMensalidade, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepo) Create(ctx context.Context, m *entity.Member) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO members (id, tenant_id, loja_id, user_id, nome_completo, email, class, situacao, condicao_mensalidade, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.TenantID, m.LojaID, m.UserID, m.NomeCompleto, m.Email, m.Class,
		m.Situacao, m.CondicaoMensalidade, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// List aplica los filtros no nulos; ordenado por nome_completo.
func (r *MemberRepo) List(ctx context.Context, f repository.MemberFilter) ([]entity.Member, error) {
	var (
		where = []string{"m.tenant_id = $1"}
		args  = []any{f.TenantID}
		join  string
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.LojaID != nil {
		add("m.loja_id = $%d", *f.LojaID)
	}
	if f.PotenciaID != nil {
		join = " JOIN lojas l ON l.id = m.loja_id"
		add("l.potencia_id = $%d", *f.PotenciaID)
	}
	if f.Situacao != nil {
		add("m.situacao = $%d", *f.Situacao)
	}
	if f.OnlyID != nil {
		add("m.id = $%d", *f.OnlyID)
	}

	query := `SELECT ` + memberColumns + ` FROM members m` + join +
		` WHERE ` + strings.Join(where, " AND ") + ` ORDER BY m.nome_completo`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var list []entity.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		list = append(list, *m)
	}
	return list, rows.Err()
}

func (r *MemberRepo) one(ctx context.Context, op, cond string, args ...any) (*entity.Member, error) {
	m, err := scanMember(r.db.QueryRow(ctx, `SELECT `+memberColumns+` FROM members m WHERE `+cond+` LIMIT 1`, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

func (r *MemberRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Member, error) {
	return r.one(ctx, "get member", "m.tenant_id = $1 AND m.id = $2", tenantID, id)
}

func (r *MemberRepo) GetByUserID(ctx context.Context, tenantID, userID string) (*entity.Member, error) {
	return r.one(ctx, "get member by user", "m.tenant_id = $1 AND m.user_id = $2", tenantID, userID)
}

func (r *MemberRepo) GetByEmail(ctx context.Context, tenantID, email string) (*entity.Member, error) {
	return r.one(ctx, "get member by email",
		"m.tenant_id = $1 AND m.email <> '' AND lower(m.email) = lower($2) ORDER BY m.created_at", tenantID, email)
}

// LinkUser enlaza el membro con el usuario solo si aún no tiene uno.
func (r *MemberRepo) LinkUser(ctx context.Context, memberID, userID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE members SET user_id = $2 WHERE id = $1 AND user_id IS NULL`, memberID, userID)
	if err != nil {
		return fmt.Errorf("link member user: %w", err)
	}
	return nil
}

func (r *MemberRepo) Update(ctx context.Context, m *entity.Member) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE members SET nome_completo = $3, email = $4, class = $5, situacao = $6, condicao_mensalidade = $7
		WHERE tenant_id = $1 AND id = $2`,
		m.TenantID, m.ID, m.NomeCompleto, m.Email, m.Class, m.Situacao, m.CondicaoMensalidade,
	)
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// Delete borrado físico; con pagamentos o presenças la FK lo impide y devuelve ErrConflict.
func (r *MemberRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM members WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepo) CountActive(ctx context.Context, tenantID, lojaID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM members WHERE tenant_id = $1 AND loja_id = $2 AND situacao = $3`,
		tenantID, lojaID, entity.MemberSituacaoAtivo,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active members: %w", err)
	}
	return n, nil
}
