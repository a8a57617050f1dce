package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esferaordo/ordo-api/internal/application/billing"
	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/role"
	"github.com/esferaordo/ordo-api/internal/testutil/memstore"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

const (
	tenant = "t1"
	lojaA  = "loja-a"
	lojaB  = "loja-b"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func seed() *memstore.Store {
	s := memstore.New()
	regular := decimal.NewFromInt(120)
	s.Lojas[lojaA] = &entity.Loja{ID: lojaA, TenantID: tenant, Name: "A", Situacao: entity.LojaSituacaoAtiva, MensalidadeRegular: &regular}
	s.Lojas[lojaB] = &entity.Loja{ID: lojaB, TenantID: tenant, Name: "B", Situacao: entity.LojaSituacaoAtiva}

	s.Members["m1"] = &entity.Member{ID: "m1", TenantID: tenant, LojaID: lojaA, NomeCompleto: "Bruno", Email: "bruno@loja.org", Situacao: entity.MemberSituacaoAtivo}
	s.Members["m2"] = &entity.Member{ID: "m2", TenantID: tenant, LojaID: lojaA, NomeCompleto: "Alberto", Email: "alberto@loja.org", Situacao: entity.MemberSituacaoAtivo, UserID: strPtr("u-alberto")}
	s.Members["m3"] = &entity.Member{ID: "m3", TenantID: tenant, LojaID: lojaB, NomeCompleto: "Carlos", Email: "carlos@loja.org", Situacao: entity.MemberSituacaoAtivo}
	s.Members["m4"] = &entity.Member{ID: "m4", TenantID: tenant, LojaID: lojaA, NomeCompleto: "Davi", Situacao: "IRREGULAR"}

	paid := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	s.Payments = append(s.Payments,
		&entity.MemberPayment{ID: "p1", TenantID: tenant, MemberID: "m1", PaymentType: entity.PaymentTypeMensalidadeLoja, ReferenceYear: 2025, ReferenceMonth: intPtr(2), Amount: decimal.NewFromInt(120), PaymentDate: paid, Status: entity.PaymentStatusConfirmed},
		&entity.MemberPayment{ID: "p2", TenantID: tenant, MemberID: "m3", PaymentType: entity.PaymentTypeMensalidadeLoja, ReferenceYear: 2025, ReferenceMonth: intPtr(2), Amount: decimal.NewFromInt(150), PaymentDate: paid, Status: entity.PaymentStatusConfirmed},
	)
	s.Charges = append(s.Charges,
		&entity.DuesCharge{TenantID: tenant, LojaID: lojaA, MemberID: "m1", Type: entity.PeriodMonthly, Year: 2025, Month: intPtr(1), ExpectedAmount: decimal.NewFromInt(120), Status: entity.ChargeStatusPaid},
		&entity.DuesCharge{TenantID: tenant, LojaID: lojaA, MemberID: "m2", Type: entity.PeriodMonthly, Year: 2025, Month: intPtr(1), ExpectedAmount: decimal.NewFromInt(120), Status: entity.ChargeStatusOpen},
	)
	return s
}

func newUC(s *memstore.Store) *billing.BillingUseCase {
	return billing.NewBillingUseCase(
		memstore.NewMemberRepo(s), memstore.NewLojaRepo(s), memstore.NewPaymentRepo(s), memstore.NewChargeRepo(s),
		memstore.TxRunner{S: s}, logger.Nop(),
	)
}

func memberIDs(g *dto.PaymentGridResponse) []string {
	out := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		out = append(out, m.ID)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen
// ──────────────────────────────────────────────────────────────────────────────

func TestSummary_UsaLojaDelUsuario(t *testing.T) {
	uc := newUC(seed())
	user := &entity.User{ID: "u", TenantID: tenant, Role: role.Treasurer, LojaID: strPtr(lojaA)}

	out, err := uc.Summary(context.Background(), user, dto.BillingSummaryQuery{Year: 2025, Type: entity.PeriodMonthly})
	require.NoError(t, err)
	assert.Equal(t, lojaA, out.LojaID)
	assert.True(t, decimal.NewFromInt(240).Equal(out.ExpectedAmount))
	assert.True(t, decimal.NewFromInt(120).Equal(out.OpenAmount))
	assert.Equal(t, 2, out.MembersActive)
	assert.Equal(t, 1, out.PaidMembers)
	assert.Equal(t, 1, out.DelinquentMembers)
}

func TestSummary_SinLoja(t *testing.T) {
	uc := newUC(memstore.New())
	_, err := uc.Summary(context.Background(), &entity.User{TenantID: "vacio", Role: role.SaasAdmin}, dto.BillingSummaryQuery{Year: 2025, Type: entity.PeriodAnnual})
	assert.ErrorIs(t, err, domain.ErrNoLoja)
}

// ──────────────────────────────────────────────────────────────────────────────
// Grilla
// ──────────────────────────────────────────────────────────────────────────────

func TestPaymentGrid_TipoInvalido(t *testing.T) {
	_, err := newUC(seed()).PaymentGrid(context.Background(), &entity.User{TenantID: tenant, Role: role.SaasAdmin}, billing.GridQuery{Type: "WEEKLY"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPaymentGrid_LodgeAdminVeSuLoja(t *testing.T) {
	uc := newUC(seed())
	user := &entity.User{ID: "adm", TenantID: tenant, Role: role.LodgeAdmin, LojaID: strPtr(lojaA)}

	g, err := uc.PaymentGrid(context.Background(), user, billing.GridQuery{Type: entity.PeriodMonthly, Year: 2025, LojaID: strPtr(lojaB)})
	require.NoError(t, err)
	assert.Equal(t, []string{"m2", "m1"}, memberIDs(g), "solo miembros activos de su loja, ordenados por nombre")
	assert.Len(t, g.Periods, 12)
	assert.Len(t, g.Statuses, 24)
	assert.True(t, g.Statuses["m1-2025-02"].IsPaid)
	assert.False(t, g.Statuses["m2-2025-02"].IsPaid)
	assert.True(t, decimal.NewFromInt(120).Equal(g.Members[0].MensalidadeValor))
}

func TestPaymentGrid_SaasAdminFiltraPorLoja(t *testing.T) {
	uc := newUC(seed())
	user := &entity.User{ID: "root", TenantID: tenant, Role: role.SaasAdmin}

	g, err := uc.PaymentGrid(context.Background(), user, billing.GridQuery{Type: entity.PeriodMonthly, Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, []string{"m2", "m1", "m3"}, memberIDs(g))

	g, err = uc.PaymentGrid(context.Background(), user, billing.GridQuery{Type: entity.PeriodMonthly, Year: 2025, LojaID: strPtr(lojaB)})
	require.NoError(t, err)
	assert.Equal(t, []string{"m3"}, memberIDs(g))
	assert.True(t, decimal.NewFromInt(150).Equal(g.Members[0].MensalidadeValor), "loja sin valores usa el valor por defecto")
}

func TestPaymentGrid_MemberSoloSuFila(t *testing.T) {
	uc := newUC(seed())
	user := &entity.User{ID: "u-alberto", TenantID: tenant, Role: role.Member, Email: "alberto@loja.org"}

	g, err := uc.PaymentGrid(context.Background(), user, billing.GridQuery{Type: entity.PeriodAnnual, Year: 2025, LojaID: strPtr(lojaB)})
	require.NoError(t, err)
	assert.Equal(t, []string{"m2"}, memberIDs(g))
	assert.Len(t, g.Periods, 6)
	for key := range g.Statuses {
		assert.Contains(t, key, "m2-")
	}
}

func TestPaymentGrid_MemberPorEmailQuedaEnlazado(t *testing.T) {
	s := seed()
	uc := newUC(s)
	user := &entity.User{ID: "u-bruno", TenantID: tenant, Role: role.Member, Email: "BRUNO@loja.org"}

	g, err := uc.PaymentGrid(context.Background(), user, billing.GridQuery{Type: entity.PeriodMonthly, Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, memberIDs(g))
	require.NotNil(t, s.Members["m1"].UserID)
	assert.Equal(t, "u-bruno", *s.Members["m1"].UserID)
}

func TestPaymentGrid_MemberSinRegistro(t *testing.T) {
	uc := newUC(seed())
	user := &entity.User{ID: "u-x", TenantID: tenant, Role: role.Member, Email: "nadie@loja.org"}
	_, err := uc.PaymentGrid(context.Background(), user, billing.GridQuery{Type: entity.PeriodMonthly})
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de pagamento
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterPayment(t *testing.T) {
	s := seed()
	uc := newUC(s)
	user := &entity.User{ID: "tes", TenantID: tenant, Role: role.Treasurer, LojaID: strPtr(lojaA)}
	in := dto.RegisterPaymentRequest{MemberID: "m2", Type: entity.PeriodMonthly, Year: 2025, Month: intPtr(1), Amount: decimal.NewFromInt(120), Method: entity.PaymentMethodPix}

	out, err := uc.RegisterPayment(context.Background(), user, in)
	require.NoError(t, err)
	assert.Equal(t, entity.BeneficiaryLodge, out.Beneficiary)
	assert.Equal(t, entity.PaymentTypeMensalidadeLoja, out.PaymentType)

	for _, c := range s.Charges {
		if c.MemberID == "m2" {
			assert.Equal(t, entity.ChargeStatusPaid, c.Status)
		}
	}

	_, err = uc.RegisterPayment(context.Background(), user, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterPayment_Anual(t *testing.T) {
	s := seed()
	uc := newUC(s)
	user := &entity.User{ID: "adm", TenantID: tenant, Role: role.SaasAdmin}

	out, err := uc.RegisterPayment(context.Background(), user, dto.RegisterPaymentRequest{
		MemberID: "m3", Type: entity.PeriodAnnual, Year: 2026, Amount: decimal.NewFromInt(300), Method: entity.PaymentMethodBoleto,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BeneficiaryPotency, out.Beneficiary)
	assert.Len(t, s.Charges, 3, "debe crear la cobranza anual")
}

func TestRegisterPayment_Validaciones(t *testing.T) {
	uc := newUC(seed())
	ctx := context.Background()
	adm := &entity.User{ID: "adm", TenantID: tenant, Role: role.LodgeAdmin, LojaID: strPtr(lojaA)}

	_, err := uc.RegisterPayment(ctx, adm, dto.RegisterPaymentRequest{MemberID: "m1", Type: entity.PeriodMonthly, Year: 2025, Amount: decimal.NewFromInt(1), Method: "PIX"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "mensal sin mes")

	_, err = uc.RegisterPayment(ctx, adm, dto.RegisterPaymentRequest{MemberID: "m1", Type: entity.PeriodAnnual, Year: 2025, Month: intPtr(3), Amount: decimal.NewFromInt(1), Method: "PIX"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "anual con mes")

	_, err = uc.RegisterPayment(ctx, adm, dto.RegisterPaymentRequest{MemberID: "m1", Type: entity.PeriodMonthly, Year: 2025, Month: intPtr(3), Amount: decimal.Zero, Method: "PIX"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto cero")

	_, err = uc.RegisterPayment(ctx, adm, dto.RegisterPaymentRequest{MemberID: "m3", Type: entity.PeriodMonthly, Year: 2025, Month: intPtr(3), Amount: decimal.NewFromInt(1), Method: "PIX"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "miembro de otra loja")

	_, err = uc.RegisterPayment(ctx, adm, dto.RegisterPaymentRequest{MemberID: "zz", Type: entity.PeriodMonthly, Year: 2025, Month: intPtr(3), Amount: decimal.NewFromInt(1), Method: "PIX"})
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)

	member := &entity.User{ID: "x", TenantID: tenant, Role: role.Member}
	_, err = uc.RegisterPayment(ctx, member, dto.RegisterPaymentRequest{MemberID: "m1", Type: entity.PeriodMonthly, Year: 2025, Month: intPtr(3), Amount: decimal.NewFromInt(1), Method: "PIX"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial
// ──────────────────────────────────────────────────────────────────────────────

func TestHistory_TesoureiroDeLaLoja(t *testing.T) {
	s := seed()
	s.Payments = append(s.Payments,
		&entity.MemberPayment{ID: "p3", TenantID: tenant, MemberID: "m1", PaymentType: entity.PaymentTypeAnuidadePriorado, ReferenceYear: 2025, Amount: decimal.NewFromInt(500), Method: entity.PaymentMethodBoleto, Description: "anuidade", PaymentDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		&entity.MemberPayment{ID: "p4", TenantID: tenant, MemberID: "m1", PaymentType: entity.PaymentTypeMensalidadeLoja, ReferenceYear: 2025, ReferenceMonth: intPtr(3), Amount: decimal.Zero, PaymentDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
	)
	uc := newUC(s)

	out, err := uc.History(context.Background(), &entity.User{TenantID: tenant, Role: role.Treasurer, LojaID: strPtr(lojaA)}, "m1")
	require.NoError(t, err)
	require.Len(t, out, 2, "valores cero no entran")

	assert.Equal(t, "p3", out[0].ID)
	assert.Equal(t, "2025", out[0].Periodo.Label)
	assert.Nil(t, out[0].Periodo.Month)
	require.NotNil(t, out[0].Observacoes)
	assert.Equal(t, entity.PaymentMethodBoleto, out[0].MetodoPagamento)

	assert.Equal(t, "p1", out[1].ID)
	assert.Equal(t, "02/2025", out[1].Periodo.Label)
	assert.Equal(t, entity.PaymentMethodPix, out[1].MetodoPagamento, "sin método registrado")
	assert.Nil(t, out[1].Observacoes)
}

func TestHistory_Alcance(t *testing.T) {
	uc := newUC(seed())
	ctx := context.Background()

	_, err := uc.History(ctx, &entity.User{TenantID: tenant, Role: role.Treasurer, LojaID: strPtr(lojaA)}, "m3")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.History(ctx, &entity.User{TenantID: tenant, Role: role.SaasAdmin}, "m3")
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = uc.History(ctx, &entity.User{TenantID: tenant, Role: role.SaasAdmin}, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)

	_, err = uc.History(ctx, &entity.User{TenantID: tenant, Role: role.Secretary, LojaID: strPtr(lojaA)}, "m1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestHistory_MemberSoloElPropio(t *testing.T) {
	uc := newUC(seed())
	ctx := context.Background()
	alberto := &entity.User{ID: "u-alberto", TenantID: tenant, Role: role.Member, Email: "alberto@loja.org"}

	out, err := uc.History(ctx, alberto, "m2")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = uc.History(ctx, alberto, "m1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
