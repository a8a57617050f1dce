package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esferaordo/ordo-api/internal/application/auth"
	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/application/inventory"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/role"
	"github.com/esferaordo/ordo-api/internal/testutil/memstore"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

type fakeReports struct {
	last *inventory.ReportData
}

func (f *fakeReports) GenerateInventoryReport(_ context.Context, data inventory.ReportData) ([]byte, error) {
	f.last = &data
	return []byte("%PDF-fake"), nil
}

func d(v string) decimal.Decimal   { return decimal.RequireFromString(v) }
func dp(v string) *decimal.Decimal { x := d(v); return &x }
func strPtr(s string) *string      { return &s }

func setup(t *testing.T) (*inventory.InventoryUseCase, *memstore.Store, *fakeReports, *entity.User) {
	t.Helper()
	s := memstore.New()
	s.Lojas["la"] = &entity.Loja{ID: "la", TenantID: "t1", Name: "Loja Acácia"}
	hash, err := auth.HashPassword("segredo123")
	require.NoError(t, err)
	user := &entity.User{ID: "u1", TenantID: "t1", Email: "tes@loja.org", Role: role.Treasurer, LojaID: strPtr("la"), PasswordHash: hash}
	reports := &fakeReports{}
	uc := inventory.NewInventoryUseCase(memstore.NewInventoryRepo(s), memstore.NewLojaRepo(s), memstore.TxRunner{S: s}, reports, logger.Nop())
	return uc, s, reports, user
}

func createItem(t *testing.T, uc *inventory.InventoryUseCase, user *entity.User, name, minQty, reorder string) *dto.ItemResponse {
	t.Helper()
	out, err := uc.CreateItem(context.Background(), user, dto.CreateItemRequest{Name: name, MinQty: dp(minQty), ReorderPoint: dp(reorder)})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Items
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateItem_LojaDelUsuario(t *testing.T) {
	uc, s, _, user := setup(t)
	out, err := uc.CreateItem(context.Background(), user, dto.CreateItemRequest{
		Name: "Velas", MinQty: dp("10"), ReorderPoint: dp("20"), LojaID: strPtr("otra"),
	})
	require.NoError(t, err)
	assert.Equal(t, "un", out.Unit)
	assert.True(t, out.BelowMinimum)
	require.NotNil(t, s.Items[out.ID].LojaID)
	assert.Equal(t, "la", *s.Items[out.ID].LojaID)
}

func TestCreateItem_Validaciones(t *testing.T) {
	uc, _, _, user := setup(t)
	_, err := uc.CreateItem(context.Background(), user, dto.CreateItemRequest{Name: "V", MinQty: dp("1"), ReorderPoint: dp("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateItem(context.Background(), user, dto.CreateItemRequest{Name: "Velas", MinQty: dp("10"), ReorderPoint: dp("5")})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "reorderPoint", ve.Field)
}

func TestInventario_MemberSinAcceso(t *testing.T) {
	uc, _, _, _ := setup(t)
	member := &entity.User{ID: "m", TenantID: "t1", Role: role.Member, LojaID: strPtr("la")}
	_, err := uc.ListItems(context.Background(), member, nil, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.CreateItem(context.Background(), member, dto.CreateItemRequest{Name: "Velas", MinQty: dp("1"), ReorderPoint: dp("1")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_CostoPromedio(t *testing.T) {
	uc, _, _, user := setup(t)
	ctx := context.Background()
	item := createItem(t, uc, user, "Velas", "5", "10")

	_, err := uc.RegisterMovement(ctx, user, item.ID, dto.MovementRequest{Type: entity.MovementTypeIN, Qty: d("10"), UnitCost: dp("2")})
	require.NoError(t, err)
	out, err := uc.RegisterMovement(ctx, user, item.ID, dto.MovementRequest{Type: entity.MovementTypeIN, Qty: d("10"), UnitCost: dp("4")})
	require.NoError(t, err)
	assert.True(t, d("20").Equal(out.QtyOnHand))
	assert.True(t, d("3").Equal(out.AvgCost))

	out, err = uc.RegisterMovement(ctx, user, item.ID, dto.MovementRequest{Type: entity.MovementTypeOUT, Qty: d("5")})
	require.NoError(t, err)
	assert.True(t, d("-5").Equal(out.Qty))
	assert.True(t, d("15").Equal(out.QtyOnHand))
	assert.True(t, d("3").Equal(out.AvgCost), "la salida no cambia el costo promedio")

	out, err = uc.RegisterMovement(ctx, user, item.ID, dto.MovementRequest{Type: entity.MovementTypeADJUST, Qty: d("-2"), Reason: "contagem"})
	require.NoError(t, err)
	assert.True(t, d("13").Equal(out.QtyOnHand))

	list, err := uc.ListItems(ctx, user, nil, "vel")
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.True(t, d("39").Equal(list.TotalValue))

	movs, err := uc.ListMovements(ctx, user, item.ID, 0)
	require.NoError(t, err)
	require.Len(t, movs, 4)
	assert.Equal(t, entity.MovementTypeADJUST, movs[0].Type)
}

func TestRegisterMovement_StockInsuficiente(t *testing.T) {
	uc, s, _, user := setup(t)
	item := createItem(t, uc, user, "Aventais", "1", "2")

	_, err := uc.RegisterMovement(context.Background(), user, item.ID, dto.MovementRequest{Type: entity.MovementTypeOUT, Qty: d("1")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, s.Movements)
	assert.True(t, s.Items[item.ID].QtyOnHand.IsZero())
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	uc, _, _, user := setup(t)
	ctx := context.Background()
	item := createItem(t, uc, user, "Aventais", "1", "2")

	cases := []dto.MovementRequest{
		{Type: "TRANSFER", Qty: d("1")},
		{Type: entity.MovementTypeIN, Qty: d("1")},
		{Type: entity.MovementTypeOUT, Qty: d("0")},
		{Type: entity.MovementTypeADJUST, Qty: d("1")},
		{Type: entity.MovementTypeARCHIVE, Qty: d("1")},
	}
	for _, in := range cases {
		_, err := uc.RegisterMovement(ctx, user, item.ID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, in.Type)
	}

	_, err := uc.RegisterMovement(ctx, user, "nope", dto.MovementRequest{Type: entity.MovementTypeOUT, Qty: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Baja
// ──────────────────────────────────────────────────────────────────────────────

func TestArchive(t *testing.T) {
	uc, s, _, user := setup(t)
	ctx := context.Background()
	item := createItem(t, uc, user, "Estandarte", "0", "0")
	_, err := uc.RegisterMovement(ctx, user, item.ID, dto.MovementRequest{Type: entity.MovementTypeIN, Qty: d("2"), UnitCost: dp("100")})
	require.NoError(t, err)

	_, err = uc.Archive(ctx, user, item.ID, dto.ArchiveItemRequest{Password: "errada", Reason: "Danificado na mudança"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Archive(ctx, user, item.ID, dto.ArchiveItemRequest{Password: "segredo123", Reason: "curto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Archive(ctx, user, item.ID, dto.ArchiveItemRequest{Password: "segredo123", Reason: "Danificado na mudança"})
	require.NoError(t, err)
	require.NotNil(t, out.ArchivedAt)
	assert.True(t, out.QtyOnHand.IsZero())

	last := s.Movements[len(s.Movements)-1]
	assert.Equal(t, entity.MovementTypeARCHIVE, last.Type)
	assert.True(t, d("-2").Equal(last.Qty))

	list, err := uc.ListItems(ctx, user, nil, "")
	require.NoError(t, err)
	assert.Zero(t, list.Total, "los items archivados no se listan")

	_, err = uc.Archive(ctx, user, item.ID, dto.ArchiveItemRequest{Password: "segredo123", Reason: "Danificado na mudança"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reposición y relatório
// ──────────────────────────────────────────────────────────────────────────────

func TestReorderList(t *testing.T) {
	uc, _, _, user := setup(t)
	ctx := context.Background()
	a := createItem(t, uc, user, "Velas", "5", "10")
	b := createItem(t, uc, user, "Incenso", "2", "4")
	c := createItem(t, uc, user, "Toalhas", "1", "2")

	_, err := uc.RegisterMovement(ctx, user, a.ID, dto.MovementRequest{Type: entity.MovementTypeIN, Qty: d("7"), UnitCost: dp("3")})
	require.NoError(t, err)
	_, err = uc.RegisterMovement(ctx, user, c.ID, dto.MovementRequest{Type: entity.MovementTypeIN, Qty: d("10"), UnitCost: dp("8")})
	require.NoError(t, err)

	list, err := uc.ReorderList(ctx, user, nil)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, b.ID, list[0].ItemID, "bajo el mínimo va primero")
	assert.Equal(t, 1, list[0].Priority)
	assert.True(t, d("6").Equal(list[0].SuggestedQty))

	assert.Equal(t, a.ID, list[1].ItemID)
	assert.True(t, d("8").Equal(list[1].SuggestedQty))
	assert.True(t, d("24").Equal(list[1].EstimatedCost))
}

func TestExport(t *testing.T) {
	uc, _, reports, user := setup(t)
	createItem(t, uc, user, "Velas", "5", "10")

	pdf, err := uc.Export(context.Background(), user, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	require.NotNil(t, reports.last)
	assert.Equal(t, "Loja Acácia", reports.last.LojaName)
	assert.Equal(t, 1, reports.last.BelowMinimum)
	assert.Len(t, reports.last.Items, 1)
	assert.Equal(t, "tes@loja.org", reports.last.GeneratedBy)
}
