package repository

import (
	"time"

	"github.com/julianrc/panaderia-api/internal/domain/entity"
)

// BrandRepository define el puerto de persistencia para marcas (DIP).
type BrandRepository interface {
	Create(brand *entity.Brand) error
	GetByID(id string, activeOnly bool) (*entity.Brand, error)
	Update(brand *entity.Brand) error
	List(activeOnly bool, limit, offset int) ([]*entity.Brand, error)
	Count(activeOnly bool) (int, error)
	SoftDelete(id string, at time.Time) error
	Restore(id string) error
}

// StockItemBrandRepository define el puerto para la asociación insumo-marca
// con precios. ClearPreferred/SetPreferred se usan juntos dentro de una tx
// para garantizar a lo sumo una marca preferida por insumo.
type StockItemBrandRepository interface {
	Create(row *entity.StockItemBrand) error
	Get(stockItemID, brandID string, activeOnly bool) (*entity.StockItemBrand, error)
	// GetPreferred devuelve la fila activa marcada como preferida, o nil.
	GetPreferred(stockItemID string) (*entity.StockItemBrand, error)
	ListByStockItem(stockItemID string, activeOnly bool) ([]*entity.StockItemBrand, error)
	Update(row *entity.StockItemBrand) error
	ClearPreferred(stockItemID string) error
	SetPreferred(stockItemID, brandID string) error
	SoftDelete(stockItemID, brandID string, at time.Time) error
}
