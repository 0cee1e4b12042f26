package repository

import (
	"time"

	"github.com/julianrc/panaderia-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string, activeOnly bool) (*entity.Product, error)
	Update(product *entity.Product) error
	List(activeOnly bool, limit, offset int) ([]*entity.Product, error)
	Count(activeOnly bool) (int, error)
	SoftDelete(id string, at time.Time) error
}

// ProductStockItemRepository define el puerto para las filas de receta
// (lista de materiales producto-insumo).
type ProductStockItemRepository interface {
	Create(row *entity.ProductStockItem) error
	Get(productID, stockItemID string, activeOnly bool) (*entity.ProductStockItem, error)
	ListByProduct(productID string, activeOnly bool) ([]*entity.ProductStockItem, error)
	Update(row *entity.ProductStockItem) error
	SoftDelete(productID, stockItemID string, at time.Time) error
	// CountActiveProductsByStockItem cuenta productos distintos con filas de
	// receta activas que referencian el insumo (guard de borrado).
	CountActiveProductsByStockItem(stockItemID string) (int, error)
}
