package stock_test

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianrc/panaderia-api/internal/domain/entity"
	"github.com/julianrc/panaderia-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. Respetan el contrato
// observable (activeOnly, orden más reciente primero) sin tocar la BD.

type fakeItemRepo struct {
	items []*entity.StockItem
}

func (f *fakeItemRepo) Create(item *entity.StockItem) error {
	f.items = append(f.items, item)
	return nil
}

func (f *fakeItemRepo) find(id string) *entity.StockItem {
	for _, it := range f.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (f *fakeItemRepo) GetByID(id string, activeOnly bool) (*entity.StockItem, error) {
	it := f.find(id)
	if it == nil || (activeOnly && it.IsDeleted()) {
		return nil, nil
	}
	return it, nil
}

func (f *fakeItemRepo) GetByName(name string, activeOnly bool) (*entity.StockItem, error) {
	for _, it := range f.items {
		if strings.EqualFold(it.Name, name) && !(activeOnly && it.IsDeleted()) {
			return it, nil
		}
	}
	return nil, nil
}

func (f *fakeItemRepo) Update(item *entity.StockItem) error {
	stored := f.find(item.ID)
	if stored == nil {
		return nil
	}
	*stored = *item
	return nil
}

func (f *fakeItemRepo) UpdateQuantity(id string, quantity decimal.Decimal, status string) error {
	it := f.find(id)
	if it != nil {
		it.CurrentQuantity = quantity
		it.Status = status
		it.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	return f.find(id), nil
}

func (f *fakeItemRepo) List(activeOnly bool, limit, offset int) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, it := range f.items {
		if activeOnly && it.IsDeleted() {
			continue
		}
		out = append(out, it)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeItemRepo) Count(activeOnly bool) (int, error) {
	total := 0
	for _, it := range f.items {
		if activeOnly && it.IsDeleted() {
			continue
		}
		total++
	}
	return total, nil
}

func (f *fakeItemRepo) SoftDelete(id string, at time.Time) error {
	if it := f.find(id); it != nil {
		it.DeletedAt = &at
	}
	return nil
}

func (f *fakeItemRepo) Restore(id string) error {
	if it := f.find(id); it != nil {
		it.DeletedAt = nil
	}
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range f.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) filtered(filter repository.MovementFilter) []*entity.StockMovement {
	var out []*entity.StockMovement
	// Más reciente primero (orden de inserción invertido, mismo contrato que
	// created_at DESC, id DESC con el reloj monótono de los tests).
	for i := len(f.movements) - 1; i >= 0; i-- {
		m := f.movements[i]
		if filter.StockItemID != "" && m.StockItemID != filter.StockItemID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.CreatedBy != "" && m.CreatedBy != filter.CreatedBy {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (f *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	out := f.filtered(filter)
	if filter.Offset > len(out) {
		filter.Offset = len(out)
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeMovementRepo) Count(filter repository.MovementFilter) (int, error) {
	return len(f.filtered(filter)), nil
}

// fakeTxRunner ejecuta el callback directamente sobre los fakes: los tests
// verifican la semántica del caso de uso, no el Commit/Rollback de pgx.
type fakeTxRunner struct {
	movRepo  *fakeMovementRepo
	itemRepo *fakeItemRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	itemRepo repository.StockItemRepository,
) error) error {
	return fn(f.movRepo, f.itemRepo)
}

// fakeRecorder acumula los movimientos confirmados por tipo.
type fakeRecorder struct {
	byType map[string]int
}

func (f *fakeRecorder) MovementRegistered(movementType string) {
	if f.byType == nil {
		f.byType = map[string]int{}
	}
	f.byType[movementType]++
}

type fakeRecipeRepo struct {
	countByItem map[string]int
}

func (f *fakeRecipeRepo) Create(*entity.ProductStockItem) error { return nil }
func (f *fakeRecipeRepo) Get(string, string, bool) (*entity.ProductStockItem, error) {
	return nil, nil
}
func (f *fakeRecipeRepo) ListByProduct(string, bool) ([]*entity.ProductStockItem, error) {
	return nil, nil
}
func (f *fakeRecipeRepo) Update(*entity.ProductStockItem) error        { return nil }
func (f *fakeRecipeRepo) SoftDelete(string, string, time.Time) error   { return nil }
func (f *fakeRecipeRepo) CountActiveProductsByStockItem(stockItemID string) (int, error) {
	return f.countByItem[stockItemID], nil
}
