package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeRECEIVED = "RECEIVED" // entrada de mercancía
	MovementTypeUSED     = "USED"     // consumo en producción/venta
	MovementTypeADJUSTED = "ADJUSTED" // ajuste manual (requiere motivo)
	MovementTypeDAMAGED  = "DAMAGED"  // pérdida por daño (requiere motivo)
	MovementTypeEXPIRED  = "EXPIRED"  // pérdida por vencimiento (requiere motivo)
)

// StockMovement representa un movimiento de inventario. Es el registro de
// auditoría permanente: nunca se actualiza ni se borra después de creado.
// Invariante: NewQuantity == PreviousQuantity + Quantity (tolerancia 0.001).
type StockMovement struct {
	ID               string
	StockItemID      string
	Type             string
	Quantity         decimal.Decimal // delta con signo, distinto de cero
	PreviousQuantity decimal.Decimal
	NewQuantity      decimal.Decimal
	Reason           string // obligatorio para ADJUSTED/DAMAGED/EXPIRED, máx. 500
	ReferenceType    string // objeto de negocio origen, ej. "order"
	ReferenceID      string
	CreatedBy        string // UserID
	CreatedAt        time.Time
}

// RequiresReason indica si el tipo de movimiento exige un motivo.
func RequiresReason(movementType string) bool {
	switch movementType {
	case MovementTypeADJUSTED, MovementTypeDAMAGED, MovementTypeEXPIRED:
		return true
	}
	return false
}
