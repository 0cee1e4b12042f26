package stock_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianrc/panaderia-api/internal/domain"
	"github.com/julianrc/panaderia-api/internal/domain/entity"
	"github.com/julianrc/panaderia-api/internal/domain/stock"
)

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

// ──────────────────────────────────────────────────────────────────────────────
// ComputeStatus — derivación de estado por cantidad y punto de reorden
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeStatus_DerivaEstadoSegunCantidadYReorden(t *testing.T) {
	cases := []struct {
		name      string
		quantity  string
		threshold *decimal.Decimal
		want      string
	}{
		{"cantidad cero sin reorden", "0", nil, entity.StockStatusOutOfStock},
		{"cantidad cero con reorden", "0", decPtr("10"), entity.StockStatusOutOfStock},
		{"por debajo del punto de reorden", "5", decPtr("10"), entity.StockStatusLowStock},
		{"exactamente en el punto de reorden", "10", decPtr("10"), entity.StockStatusLowStock},
		{"por encima del punto de reorden", "10.001", decPtr("10"), entity.StockStatusAvailable},
		{"sin punto de reorden y con stock", "0.001", nil, entity.StockStatusAvailable},
		{"reorden en cero no marca LOW_STOCK con stock", "3", decPtr("0"), entity.StockStatusAvailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := stock.ComputeStatus(dec(tc.quantity), tc.threshold)
			assert.Equal(t, tc.want, got)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateMovement — invariantes del ledger
// ──────────────────────────────────────────────────────────────────────────────

func movement(typ, qty, prev, next, reason string) *entity.StockMovement {
	return &entity.StockMovement{
		ID:               "m-1",
		StockItemID:      "i-1",
		Type:             typ,
		Quantity:         dec(qty),
		PreviousQuantity: dec(prev),
		NewQuantity:      dec(next),
		Reason:           reason,
	}
}

func TestValidateMovement_MovimientoValidoPasa(t *testing.T) {
	err := stock.ValidateMovement(movement(entity.MovementTypeRECEIVED, "50", "0", "50", ""))
	assert.NoError(t, err)
}

func TestValidateMovement_TipoDesconocidoFalla(t *testing.T) {
	err := stock.ValidateMovement(movement("STOLEN", "1", "0", "1", ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido debe ser error de validación")
}

func TestValidateMovement_DeltaCeroFalla(t *testing.T) {
	err := stock.ValidateMovement(movement(entity.MovementTypeADJUSTED, "0", "10", "10", "conteo"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateMovement_InconsistenciaAritmeticaFalla(t *testing.T) {
	// 10 + 5 != 16: fuera de la tolerancia de 0.001
	err := stock.ValidateMovement(movement(entity.MovementTypeRECEIVED, "5", "10", "16", ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateMovement_DentroDeToleranciaPasa(t *testing.T) {
	// Diferencia exacta de 0.001: dentro de la tolerancia
	err := stock.ValidateMovement(movement(entity.MovementTypeRECEIVED, "5", "10", "15.001", ""))
	assert.NoError(t, err)
}

func TestValidateMovement_CantidadNegativaResultanteFalla(t *testing.T) {
	err := stock.ValidateMovement(movement(entity.MovementTypeUSED, "-20", "10", "-10", ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestValidateMovement_MotivoObligatorioSegunTipo(t *testing.T) {
	// ADJUSTED, DAMAGED y EXPIRED exigen motivo; RECEIVED y USED no.
	cases := []struct {
		typ      string
		requires bool
	}{
		{entity.MovementTypeRECEIVED, false},
		{entity.MovementTypeUSED, false},
		{entity.MovementTypeADJUSTED, true},
		{entity.MovementTypeDAMAGED, true},
		{entity.MovementTypeEXPIRED, true},
	}
	for _, tc := range cases {
		t.Run(tc.typ, func(t *testing.T) {
			qty, next := "5", "15"
			if tc.typ != entity.MovementTypeRECEIVED && tc.typ != entity.MovementTypeADJUSTED {
				qty, next = "-5", "5"
			}
			err := stock.ValidateMovement(movement(tc.typ, qty, "10", next, ""))
			if tc.requires {
				assert.Error(t, err, "el tipo %s debe exigir motivo", tc.typ)
			} else {
				assert.NoError(t, err, "el tipo %s no debe exigir motivo", tc.typ)
			}
		})
	}
}

func TestValidateMovement_MotivoSoloEspaciosNoCuenta(t *testing.T) {
	err := stock.ValidateMovement(movement(entity.MovementTypeADJUSTED, "-1", "10", "9", "   "))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateMovement_MotivoDemasiadoLargoFalla(t *testing.T) {
	longReason := strings.Repeat("x", stock.MaxReasonLength+1)
	err := stock.ValidateMovement(movement(entity.MovementTypeDAMAGED, "-1", "10", "9", longReason))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRequiresReason_TiposConMotivoObligatorio(t *testing.T) {
	assert.True(t, entity.RequiresReason(entity.MovementTypeADJUSTED))
	assert.True(t, entity.RequiresReason(entity.MovementTypeDAMAGED))
	assert.True(t, entity.RequiresReason(entity.MovementTypeEXPIRED))
	assert.False(t, entity.RequiresReason(entity.MovementTypeRECEIVED))
	assert.False(t, entity.RequiresReason(entity.MovementTypeUSED))
}
