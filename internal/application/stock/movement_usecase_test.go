package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianrc/panaderia-api/internal/application/dto"
	"github.com/julianrc/panaderia-api/internal/application/stock"
	"github.com/julianrc/panaderia-api/internal/domain"
	"github.com/julianrc/panaderia-api/internal/domain/entity"
)

const testUser = "00000000-0000-0000-0000-0000000000aa"

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// newMovementFixture arma el caso de uso con fakes y un insumo ya creado.
func newMovementFixture(t *testing.T, initialQty string, threshold *decimal.Decimal) (*stock.MovementUseCase, *fakeItemRepo, *fakeMovementRepo, *entity.StockItem) {
	t.Helper()
	itemRepo := &fakeItemRepo{}
	movRepo := &fakeMovementRepo{}
	runner := &fakeTxRunner{movRepo: movRepo, itemRepo: itemRepo}

	item := &entity.StockItem{
		ID:               "00000000-0000-0000-0000-000000000001",
		Name:             "Harina de trigo",
		UnitOfMeasure:    "kg",
		CurrentQuantity:  dec(initialQty),
		ReorderThreshold: threshold,
		Status:           entity.StockStatusOutOfStock,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	require.NoError(t, itemRepo.Create(item))

	return stock.NewMovementUseCase(runner, itemRepo, movRepo), itemRepo, movRepo, item
}

// Ciclo completo de la harina: 0 → +50 → -45 (orden) → rechazo -10 → -5 ajuste → 0.
// El ledger queda con 3 movimientos cuya suma de deltas es cero.
func TestMovementUseCase_CicloCompletoDeInventario(t *testing.T) {
	uc, _, movRepo, item := newMovementFixture(t, "0", decPtr("10"))
	ctx := context.Background()

	// Recepción de 50 kg
	recv, err := uc.Receive(ctx, item.ID, dec("50"), "", testUser)
	require.NoError(t, err)
	assert.True(t, recv.PreviousQuantity.Equal(dec("0")))
	assert.True(t, recv.NewQuantity.Equal(dec("50")))
	assert.True(t, item.CurrentQuantity.Equal(dec("50")), "la proyección debe reflejar el ledger")
	assert.Equal(t, entity.StockStatusAvailable, item.Status)

	// Consumo de 45 kg ligado a una orden de producción
	used, err := uc.Consume(ctx, item.ID, dec("45"), "order", "orden-123", testUser)
	require.NoError(t, err)
	assert.True(t, used.Quantity.Equal(dec("-45")), "USED guarda el delta con signo negativo")
	assert.Equal(t, "order", used.ReferenceType)
	assert.Equal(t, "orden-123", used.ReferenceID)
	assert.True(t, item.CurrentQuantity.Equal(dec("5")))
	assert.Equal(t, entity.StockStatusLowStock, item.Status, "5 <= punto de reorden 10")

	// Consumo de 10 kg con solo 5 disponibles: rechazado sin tocar nada
	_, err = uc.Consume(ctx, item.ID, dec("10"), "", "", testUser)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, item.CurrentQuantity.Equal(dec("5")), "el rechazo no debe mutar la cantidad")
	assert.Len(t, movRepo.movements, 2, "el rechazo no debe dejar movimiento en el ledger")

	// Ajuste de -5 kg por conteo físico
	adj, err := uc.Adjust(ctx, item.ID, dec("-5"), "conteo físico de fin de mes", testUser)
	require.NoError(t, err)
	assert.True(t, adj.NewQuantity.Equal(dec("0")))
	assert.True(t, item.CurrentQuantity.Equal(dec("0")))
	assert.Equal(t, entity.StockStatusOutOfStock, item.Status)

	// El ledger conserva la historia completa y la suma de deltas es cero
	require.Len(t, movRepo.movements, 3)
	sum := decimal.Zero
	for _, m := range movRepo.movements {
		sum = sum.Add(m.Quantity)
	}
	assert.True(t, sum.IsZero(), "suma de deltas esperada 0, obtenida %s", sum)
	for _, m := range movRepo.movements {
		assert.True(t, m.NewQuantity.Equal(m.PreviousQuantity.Add(m.Quantity)),
			"cada movimiento debe cumplir new = previous + delta")
	}
}

func TestMovementUseCase_RecepcionCantidadNoPositivaFalla(t *testing.T) {
	uc, _, _, item := newMovementFixture(t, "0", nil)

	_, err := uc.Receive(context.Background(), item.ID, dec("0"), "", testUser)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Receive(context.Background(), item.ID, dec("-3"), "", testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementUseCase_AjusteSinMotivoFalla(t *testing.T) {
	uc, _, movRepo, item := newMovementFixture(t, "10", nil)

	_, err := uc.Adjust(context.Background(), item.ID, dec("-2"), "  ", testUser)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, movRepo.movements)
}

func TestMovementUseCase_AjusteACantidadNegativaEsErrorDeValidacion(t *testing.T) {
	// Un ajuste que dejaría negativo es un error de validación del cliente,
	// no stock insuficiente: el conteo físico nunca puede dar negativo.
	uc, _, _, item := newMovementFixture(t, "3", nil)

	_, err := uc.Adjust(context.Background(), item.ID, dec("-5"), "conteo", testUser)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestMovementUseCase_PerdidaSinMotivoFalla(t *testing.T) {
	uc, _, _, item := newMovementFixture(t, "10", nil)

	for _, typ := range []string{entity.MovementTypeDAMAGED, entity.MovementTypeEXPIRED} {
		_, err := uc.RegisterLoss(context.Background(), item.ID, typ, dec("1"), "", testUser)
		require.Error(t, err, "el tipo %s exige motivo", typ)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestMovementUseCase_PerdidaDescuentaStock(t *testing.T) {
	uc, _, _, item := newMovementFixture(t, "10", nil)

	out, err := uc.RegisterLoss(context.Background(), item.ID, entity.MovementTypeDAMAGED, dec("2.5"), "bolsa rota en bodega", testUser)
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(dec("-2.5")))
	assert.True(t, item.CurrentQuantity.Equal(dec("7.5")))
}

func TestMovementUseCase_InsumoBorradoNoAdmiteMovimientos(t *testing.T) {
	uc, itemRepo, _, item := newMovementFixture(t, "10", nil)
	require.NoError(t, itemRepo.SoftDelete(item.ID, time.Now()))

	_, err := uc.Receive(context.Background(), item.ID, dec("1"), "", testUser)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementUseCase_InsumoInexistenteRetornaNotFound(t *testing.T) {
	uc, _, _, _ := newMovementFixture(t, "0", nil)

	_, err := uc.Receive(context.Background(), "no-existe", dec("1"), "", testUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementUseCase_ListadoMasRecientePrimeroYFiltroPorTipo(t *testing.T) {
	uc, _, _, item := newMovementFixture(t, "0", nil)
	ctx := context.Background()

	_, err := uc.Receive(ctx, item.ID, dec("20"), "", testUser)
	require.NoError(t, err)
	_, err = uc.Consume(ctx, item.ID, dec("5"), "", "", testUser)
	require.NoError(t, err)
	_, err = uc.Receive(ctx, item.ID, dec("8"), "", testUser)
	require.NoError(t, err)

	all, err := uc.ListMovements(dto.ListMovementsRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, 3, all.Page.Total)
	assert.Equal(t, entity.MovementTypeRECEIVED, all.Items[0].Type, "el último registrado va primero")
	assert.True(t, all.Items[0].Quantity.Equal(dec("8")))

	received, err := uc.ListMovements(dto.ListMovementsRequest{Type: entity.MovementTypeRECEIVED})
	require.NoError(t, err)
	assert.Len(t, received.Items, 2)
	assert.Equal(t, 2, received.Page.Total)
}

func TestMovementUseCase_GetMovementByID(t *testing.T) {
	uc, _, _, item := newMovementFixture(t, "0", nil)

	created, err := uc.Receive(context.Background(), item.ID, dec("3"), "", testUser)
	require.NoError(t, err)

	got, err := uc.GetMovementByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, testUser, got.CreatedBy)

	_, err = uc.GetMovementByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementUseCase_RegisterMovementFromRequest(t *testing.T) {
	uc, _, _, item := newMovementFixture(t, "0", nil)

	out, err := uc.RegisterMovementFromRequest(context.Background(), testUser, dto.RegisterMovementRequest{
		StockItemID: item.ID,
		Type:        entity.MovementTypeRECEIVED,
		Quantity:    dec("12"),
	})
	require.NoError(t, err)
	assert.Equal(t, testUser, out.CreatedBy, "el usuario del token queda como autor del movimiento")
	assert.True(t, out.NewQuantity.Equal(dec("12")))
}

// Solo los movimientos confirmados llegan al contador; los rechazados no.
func TestMovementUseCase_ContadorSoloCuentaMovimientosConfirmados(t *testing.T) {
	uc, _, _, item := newMovementFixture(t, "0", nil)
	rec := &fakeRecorder{}
	uc.WithRecorder(rec)
	ctx := context.Background()

	_, err := uc.Receive(ctx, item.ID, dec("10"), "", testUser)
	require.NoError(t, err)
	_, err = uc.Consume(ctx, item.ID, dec("4"), "", "", testUser)
	require.NoError(t, err)

	// Rechazado por stock insuficiente: no debe contarse
	_, err = uc.Consume(ctx, item.ID, dec("100"), "", "", testUser)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 1, rec.byType[entity.MovementTypeRECEIVED])
	assert.Equal(t, 1, rec.byType[entity.MovementTypeUSED])
	assert.Equal(t, 2, len(rec.byType))
}

func TestMovementUseCase_TipoDesconocidoFalla(t *testing.T) {
	uc, _, _, item := newMovementFixture(t, "0", nil)

	_, err := uc.RegisterMovement(context.Background(), stock.MovementInput{
		StockItemID: item.ID,
		Type:        "TRANSFERRED",
		Quantity:    dec("1"),
		UserID:      testUser,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
