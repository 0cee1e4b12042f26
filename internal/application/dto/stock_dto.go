package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockItemRequest alta de un insumo. La cantidad inicial por defecto es 0.
type CreateStockItemRequest struct {
	Name             string           `json:"name" validate:"required,min=1,max=255"`
	Description      string           `json:"description" validate:"omitempty,max=1000"`
	UnitOfMeasure    string           `json:"unit_of_measure" validate:"required,min=1,max=50"`
	InitialQuantity  *decimal.Decimal `json:"initial_quantity"`
	ReorderThreshold *decimal.Decimal `json:"reorder_threshold"`
}

// UpdateStockItemRequest actualización parcial. La cantidad NO se actualiza
// aquí: solo vía movimientos.
type UpdateStockItemRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description      *string          `json:"description" validate:"omitempty,max=1000"`
	UnitOfMeasure    *string          `json:"unit_of_measure" validate:"omitempty,min=1,max=50"`
	ReorderThreshold *decimal.Decimal `json:"reorder_threshold"`
}

// StockItemResponse representación de un insumo en respuestas.
type StockItemResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description,omitempty"`
	UnitOfMeasure    string           `json:"unit_of_measure"`
	CurrentQuantity  decimal.Decimal  `json:"current_quantity"`
	ReorderThreshold *decimal.Decimal `json:"reorder_threshold,omitempty"`
	Status           string           `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        *time.Time       `json:"deleted_at,omitempty"`
}

// StockItemListResponse página de insumos.
type StockItemListResponse struct {
	Items []StockItemResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CanDeleteResponse resultado del guard de borrado.
type CanDeleteResponse struct {
	CanDelete    bool `json:"can_delete"`
	ProductCount int  `json:"product_count"`
}
