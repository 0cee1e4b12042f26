package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de un insumo según cantidad y punto de reorden.
const (
	StockStatusAvailable  = "AVAILABLE"
	StockStatusLowStock   = "LOW_STOCK"
	StockStatusOutOfStock = "OUT_OF_STOCK"
)

// StockItem representa un insumo (materia prima) del inventario de la panadería.
// CurrentQuantity solo se modifica vía movimientos; Status siempre se recalcula
// antes de persistir, nunca se asigna de forma independiente.
type StockItem struct {
	ID               string
	Name             string
	Description      string
	UnitOfMeasure    string // "kg", "g", "l", "unidades", etc. (texto libre)
	CurrentQuantity  decimal.Decimal // 3 decimales, nunca negativa
	ReorderThreshold *decimal.Decimal
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time // soft delete
}

// IsDeleted indica si el insumo está marcado como borrado.
func (s *StockItem) IsDeleted() bool {
	return s.DeletedAt != nil
}
