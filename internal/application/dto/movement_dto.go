package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest entrada para registrar un movimiento de inventario.
// Para RECEIVED/USED la cantidad es positiva (el signo lo pone el ledger);
// para ADJUSTED es el delta con signo; para DAMAGED/EXPIRED es la pérdida (positiva).
type RegisterMovementRequest struct {
	StockItemID   string          `json:"stock_item_id" validate:"required,uuid4"`
	Type          string          `json:"type" validate:"required,oneof=RECEIVED USED ADJUSTED DAMAGED EXPIRED"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason" validate:"omitempty,max=500"`
	ReferenceType string          `json:"reference_type" validate:"omitempty,max=50"`
	ReferenceID   string          `json:"reference_id" validate:"omitempty,max=100"`
}

// MovementResponse representación de un movimiento en respuestas.
type MovementResponse struct {
	ID               string          `json:"id"`
	StockItemID      string          `json:"stock_item_id"`
	Type             string          `json:"type"`
	Quantity         decimal.Decimal `json:"quantity"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
	Reason           string          `json:"reason,omitempty"`
	ReferenceType    string          `json:"reference_type,omitempty"`
	ReferenceID      string          `json:"reference_id,omitempty"`
	CreatedBy        string          `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ListMovementsRequest filtros de listado (query params ya parseados).
type ListMovementsRequest struct {
	StockItemID string     `query:"stock_item_id" validate:"omitempty,uuid4"`
	Type        string     `query:"type" validate:"omitempty,oneof=RECEIVED USED ADJUSTED DAMAGED EXPIRED"`
	CreatedBy   string     `query:"created_by" validate:"omitempty,uuid4"`
	From        *time.Time `query:"from"`
	To          *time.Time `query:"to"`
	PageRequest
}

// MovementListResponse página de movimientos, más reciente primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
