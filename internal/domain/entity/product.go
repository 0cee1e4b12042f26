package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado de la panadería (pan, torta, etc.).
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// ProductStockItem es la receta (lista de materiales): cuánto de un insumo se
// necesita para producir una unidad del producto.
// Invariante: (ProductID, StockItemID) único entre filas activas; Quantity > 0.
type ProductStockItem struct {
	ID               string
	ProductID        string
	StockItemID      string
	Quantity         decimal.Decimal // 3 decimales
	PreferredBrandID *string         // override del precio por marca para esta receta
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}
