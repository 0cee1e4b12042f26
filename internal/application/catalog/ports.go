package catalog

import (
	"context"

	"github.com/julianrc/panaderia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio insumo-marca atado a esa tx. Se usa para que la exclusividad de
// la marca preferida (limpiar la anterior + marcar la nueva) sea atómica.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		itemBrandRepo repository.StockItemBrandRepository,
	) error) error
}
