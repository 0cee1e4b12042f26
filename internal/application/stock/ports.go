package stock

import (
	"context"

	"github.com/julianrc/panaderia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el alta del movimiento y la
// actualización de la proyección del insumo se apliquen juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
	) error) error
}

// MovementRecorder recibe cada movimiento confirmado, por tipo. Lo implementa
// el Recorder de métricas; es opcional en el caso de uso.
type MovementRecorder interface {
	MovementRegistered(movementType string)
}
