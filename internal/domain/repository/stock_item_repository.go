package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/julianrc/panaderia-api/internal/domain/entity"
)

// StockItemRepository define el puerto de persistencia para insumos (DIP).
// activeOnly=true excluye filas con soft delete; el parámetro es explícito en
// cada consulta en lugar de un scope global escondido en el ORM.
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string, activeOnly bool) (*entity.StockItem, error)
	GetByName(name string, activeOnly bool) (*entity.StockItem, error)
	// Update actualiza nombre, descripción, unidad, punto de reorden y estado.
	// La cantidad NO se toca aquí: solo vía UpdateQuantity dentro de la
	// transacción de un movimiento.
	Update(item *entity.StockItem) error
	// UpdateQuantity actualiza cantidad y estado (proyección del ledger).
	UpdateQuantity(id string, quantity decimal.Decimal, status string) error
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar solo dentro de una tx.
	GetForUpdate(id string) (*entity.StockItem, error)
	List(activeOnly bool, limit, offset int) ([]*entity.StockItem, error)
	// Count total de filas para la paginación, con el mismo activeOnly que List.
	Count(activeOnly bool) (int, error)
	SoftDelete(id string, at time.Time) error
	Restore(id string) error
}
