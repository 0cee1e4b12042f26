package repository

import (
	"time"

	"github.com/julianrc/panaderia-api/internal/domain/entity"
)

// MovementFilter filtro tipado para listar movimientos. Campos vacíos/nil no filtran.
type MovementFilter struct {
	StockItemID string
	Type        string
	CreatedBy   string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// StockMovementRepository define el puerto de persistencia para el ledger de
// movimientos. Solo inserción y lectura: los movimientos son inmutables y
// nunca se borran (historial de auditoría).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// List devuelve la página ordenada por created_at DESC, id DESC (más reciente primero).
	List(filter MovementFilter) ([]*entity.StockMovement, error)
	Count(filter MovementFilter) (int, error)
}
