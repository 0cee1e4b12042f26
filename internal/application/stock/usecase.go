package stock

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/julianrc/panaderia-api/internal/application/dto"
	"github.com/julianrc/panaderia-api/internal/domain"
	"github.com/julianrc/panaderia-api/internal/domain/entity"
	"github.com/julianrc/panaderia-api/internal/domain/repository"
	domstock "github.com/julianrc/panaderia-api/internal/domain/stock"
)

// StockItemUseCase CRUD del registro de insumos. La cantidad solo cambia vía
// MovementUseCase; aquí nunca se toca directamente.
type StockItemUseCase struct {
	itemRepo   repository.StockItemRepository
	recipeRepo repository.ProductStockItemRepository
}

// NewStockItemUseCase construye el caso de uso.
func NewStockItemUseCase(
	itemRepo repository.StockItemRepository,
	recipeRepo repository.ProductStockItemRepository,
) *StockItemUseCase {
	return &StockItemUseCase{itemRepo: itemRepo, recipeRepo: recipeRepo}
}

// Create crea un insumo. La cantidad inicial por defecto es 0 y el estado se
// deriva antes de persistir.
func (uc *StockItemUseCase) Create(in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("name", "el nombre es obligatorio")
	}
	if strings.TrimSpace(in.UnitOfMeasure) == "" {
		return nil, domain.Validation("unit_of_measure", "la unidad de medida es obligatoria")
	}
	existing, err := uc.itemRepo.GetByName(name, true)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("ya existe un insumo con el nombre %q", name)
	}

	qty := decimal.Zero
	if in.InitialQuantity != nil {
		if in.InitialQuantity.LessThan(decimal.Zero) {
			return nil, domain.Validation("initial_quantity", "la cantidad inicial no puede ser negativa")
		}
		qty = *in.InitialQuantity
	}
	if in.ReorderThreshold != nil && in.ReorderThreshold.LessThan(decimal.Zero) {
		return nil, domain.Validation("reorder_threshold", "el punto de reorden no puede ser negativo")
	}

	now := time.Now()
	item := &entity.StockItem{
		ID:               uuid.New().String(),
		Name:             name,
		Description:      in.Description,
		UnitOfMeasure:    strings.TrimSpace(in.UnitOfMeasure),
		CurrentQuantity:  qty,
		ReorderThreshold: in.ReorderThreshold,
		Status:           domstock.ComputeStatus(qty, in.ReorderThreshold),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return toStockItemResponse(item), nil
}

// GetByID obtiene un insumo activo por ID.
func (uc *StockItemUseCase) GetByID(id string) (*dto.StockItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toStockItemResponse(item), nil
}

// Update actualiza nombre/descripción/unidad/punto de reorden. La cantidad no
// es actualizable aquí; el estado se recalcula si cambió el punto de reorden.
func (uc *StockItemUseCase) Update(id string, in dto.UpdateStockItemRequest) (*dto.StockItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Validation("name", "el nombre no puede quedar vacío")
		}
		if name != item.Name {
			existing, err := uc.itemRepo.GetByName(name, true)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != item.ID {
				return nil, domain.Conflict("ya existe un insumo con el nombre %q", name)
			}
			item.Name = name
		}
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.UnitOfMeasure != nil {
		uom := strings.TrimSpace(*in.UnitOfMeasure)
		if uom == "" {
			return nil, domain.Validation("unit_of_measure", "la unidad de medida no puede quedar vacía")
		}
		item.UnitOfMeasure = uom
	}
	if in.ReorderThreshold != nil {
		if in.ReorderThreshold.LessThan(decimal.Zero) {
			return nil, domain.Validation("reorder_threshold", "el punto de reorden no puede ser negativo")
		}
		item.ReorderThreshold = in.ReorderThreshold
	}
	item.Status = domstock.ComputeStatus(item.CurrentQuantity, item.ReorderThreshold)
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return toStockItemResponse(item), nil
}

// List lista insumos con paginación.
func (uc *StockItemUseCase) List(page dto.PageRequest, includeDeleted bool) (*dto.StockItemListResponse, error) {
	page.DefaultPage()
	list, err := uc.itemRepo.List(!includeDeleted, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.itemRepo.Count(!includeDeleted)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toStockItemResponse(it))
	}
	return &dto.StockItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// CheckCanDelete informa si el insumo puede borrarse y cuántos productos
// activos lo referencian en sus recetas.
func (uc *StockItemUseCase) CheckCanDelete(id string) (*dto.CanDeleteResponse, error) {
	item, err := uc.itemRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	count, err := uc.recipeRepo.CountActiveProductsByStockItem(id)
	if err != nil {
		return nil, err
	}
	return &dto.CanDeleteResponse{CanDelete: count == 0, ProductCount: count}, nil
}

// SoftDelete marca el insumo como borrado. Rechaza con Conflict si alguna
// receta activa todavía lo referencia.
func (uc *StockItemUseCase) SoftDelete(id string) error {
	check, err := uc.CheckCanDelete(id)
	if err != nil {
		return err
	}
	if !check.CanDelete {
		return domain.Conflict("insumo en uso por %d producto(s)", check.ProductCount)
	}
	return uc.itemRepo.SoftDelete(id, time.Now())
}

// Restore quita la marca de borrado.
func (uc *StockItemUseCase) Restore(id string) error {
	item, err := uc.itemRepo.GetByID(id, false)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if !item.IsDeleted() {
		return nil
	}
	return uc.itemRepo.Restore(id)
}

func toStockItemResponse(s *entity.StockItem) *dto.StockItemResponse {
	if s == nil {
		return nil
	}
	return &dto.StockItemResponse{
		ID:               s.ID,
		Name:             s.Name,
		Description:      s.Description,
		UnitOfMeasure:    s.UnitOfMeasure,
		CurrentQuantity:  s.CurrentQuantity,
		ReorderThreshold: s.ReorderThreshold,
		Status:           s.Status,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
		DeletedAt:        s.DeletedAt,
	}
}
