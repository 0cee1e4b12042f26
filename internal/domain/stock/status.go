package stock

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/julianrc/panaderia-api/internal/domain"
	"github.com/julianrc/panaderia-api/internal/domain/entity"
)

// Tolerancia para la verificación aritmética de movimientos
// (las cantidades manejan 3 decimales).
var arithmeticTolerance = decimal.NewFromFloat(0.001)

// MaxReasonLength longitud máxima del motivo de un movimiento.
const MaxReasonLength = 500

// ComputeStatus deriva el estado de un insumo a partir de su cantidad y punto
// de reorden (función pura; llamar siempre antes de persistir):
//   - cantidad == 0            -> OUT_OF_STOCK
//   - cantidad <= punto reorden -> LOW_STOCK (si hay punto de reorden)
//   - en otro caso             -> AVAILABLE
func ComputeStatus(quantity decimal.Decimal, reorderThreshold *decimal.Decimal) string {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return entity.StockStatusOutOfStock
	}
	if reorderThreshold != nil && quantity.LessThanOrEqual(*reorderThreshold) {
		return entity.StockStatusLowStock
	}
	return entity.StockStatusAvailable
}

// ValidateMovement verifica los invariantes de un movimiento antes de
// cualquier escritura:
//   - delta distinto de cero
//   - NewQuantity == PreviousQuantity + Quantity (tolerancia 0.001)
//   - NewQuantity no negativa
//   - motivo obligatorio para ADJUSTED/DAMAGED/EXPIRED, máx. 500 caracteres
func ValidateMovement(m *entity.StockMovement) error {
	switch m.Type {
	case entity.MovementTypeRECEIVED, entity.MovementTypeUSED,
		entity.MovementTypeADJUSTED, entity.MovementTypeDAMAGED, entity.MovementTypeEXPIRED:
	default:
		return domain.Validation("type", "tipo de movimiento desconocido: "+m.Type)
	}
	if m.Quantity.IsZero() {
		return domain.Validation("quantity", "el delta del movimiento no puede ser cero")
	}
	diff := m.NewQuantity.Sub(m.PreviousQuantity.Add(m.Quantity)).Abs()
	if diff.GreaterThan(arithmeticTolerance) {
		return domain.Validation("newQuantity", "inconsistencia aritmética: newQuantity != previousQuantity + quantity")
	}
	if m.NewQuantity.LessThan(decimal.Zero) {
		return domain.ErrInsufficientStock
	}
	reason := strings.TrimSpace(m.Reason)
	if entity.RequiresReason(m.Type) && reason == "" {
		return domain.Validation("reason", "el motivo es obligatorio para movimientos "+m.Type)
	}
	if len(reason) > MaxReasonLength {
		return domain.Validation("reason", "el motivo supera los 500 caracteres")
	}
	return nil
}
