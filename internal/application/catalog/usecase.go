package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/julianrc/panaderia-api/internal/application/dto"
	"github.com/julianrc/panaderia-api/internal/domain"
	"github.com/julianrc/panaderia-api/internal/domain/entity"
	"github.com/julianrc/panaderia-api/internal/domain/repository"
)

// CatalogUseCase casos de uso para marcas y su asociación con insumos
// (precios por marca, marca preferida).
type CatalogUseCase struct {
	txRunner      TxRunner
	brandRepo     repository.BrandRepository
	itemBrandRepo repository.StockItemBrandRepository
	itemRepo      repository.StockItemRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	txRunner TxRunner,
	brandRepo repository.BrandRepository,
	itemBrandRepo repository.StockItemBrandRepository,
	itemRepo repository.StockItemRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		txRunner:      txRunner,
		brandRepo:     brandRepo,
		itemBrandRepo: itemBrandRepo,
		itemRepo:      itemRepo,
	}
}

// CreateBrand crea una marca. El nombre no se exige único.
func (uc *CatalogUseCase) CreateBrand(in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Validation("name", "el nombre es obligatorio")
	}
	now := time.Now()
	brand := &entity.Brand{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// GetBrandByID obtiene una marca activa por ID.
func (uc *CatalogUseCase) GetBrandByID(id string) (*dto.BrandResponse, error) {
	brand, err := uc.brandRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, domain.ErrNotFound
	}
	return toBrandResponse(brand), nil
}

// UpdateBrand actualización parcial de una marca.
func (uc *CatalogUseCase) UpdateBrand(id string, in dto.UpdateBrandRequest) (*dto.BrandResponse, error) {
	brand, err := uc.brandRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Validation("name", "el nombre no puede quedar vacío")
		}
		brand.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		brand.Description = *in.Description
	}
	if in.Active != nil {
		brand.Active = *in.Active
	}
	brand.UpdatedAt = time.Now()
	if err := uc.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// ListBrands lista marcas con paginación.
func (uc *CatalogUseCase) ListBrands(page dto.PageRequest, includeDeleted bool) (*dto.BrandListResponse, error) {
	page.DefaultPage()
	list, err := uc.brandRepo.List(!includeDeleted, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.brandRepo.Count(!includeDeleted)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBrandResponse(b))
	}
	return &dto.BrandListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// SoftDeleteBrand marca la marca como borrada.
func (uc *CatalogUseCase) SoftDeleteBrand(id string) error {
	brand, err := uc.brandRepo.GetByID(id, true)
	if err != nil {
		return err
	}
	if brand == nil {
		return domain.ErrNotFound
	}
	return uc.brandRepo.SoftDelete(id, time.Now())
}

// RestoreBrand quita la marca de borrado.
func (uc *CatalogUseCase) RestoreBrand(id string) error {
	brand, err := uc.brandRepo.GetByID(id, false)
	if err != nil {
		return err
	}
	if brand == nil {
		return domain.ErrNotFound
	}
	return uc.brandRepo.Restore(id)
}

// AddBrandToStockItem asocia una marca a un insumo con sus precios.
// Invariantes: precio con impuestos >= precio sin impuestos; par
// (insumo, marca) único entre filas activas. Si IsPreferred, la exclusividad
// se garantiza en la misma transacción del alta.
func (uc *CatalogUseCase) AddBrandToStockItem(ctx context.Context, stockItemID string, in dto.AddBrandToStockItemRequest) (*dto.StockItemBrandResponse, error) {
	if in.PriceBeforeTax.LessThan(decimal.Zero) || in.PriceAfterTax.LessThan(decimal.Zero) {
		return nil, domain.Validation("price_before_tax", "los precios no pueden ser negativos")
	}
	if in.PriceAfterTax.LessThan(in.PriceBeforeTax) {
		return nil, domain.Validation("price_after_tax", "el precio con impuestos no puede ser menor que el precio sin impuestos")
	}
	item, err := uc.itemRepo.GetByID(stockItemID, true)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	brand, err := uc.brandRepo.GetByID(in.BrandID, true)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.itemBrandRepo.Get(stockItemID, in.BrandID, true)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("la marca %q ya está asociada al insumo", brand.Name)
	}

	now := time.Now()
	row := &entity.StockItemBrand{
		ID:             uuid.New().String(),
		StockItemID:    stockItemID,
		BrandID:        in.BrandID,
		PriceBeforeTax: in.PriceBeforeTax,
		PriceAfterTax:  in.PriceAfterTax,
		IsPreferred:    in.IsPreferred,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = uc.txRunner.RunCatalog(ctx, func(repo repository.StockItemBrandRepository) error {
		if in.IsPreferred {
			// A lo sumo una fila preferida por insumo.
			if err := repo.ClearPreferred(stockItemID); err != nil {
				return err
			}
		}
		return repo.Create(row)
	})
	if err != nil {
		return nil, err
	}
	resp := toStockItemBrandResponse(row)
	resp.BrandName = brand.Name
	return resp, nil
}

// SetPreferredBrand marca exactamente una fila insumo-marca como preferida,
// desmarcando cualquier anterior, todo en una transacción.
func (uc *CatalogUseCase) SetPreferredBrand(ctx context.Context, stockItemID, brandID string) error {
	row, err := uc.itemBrandRepo.Get(stockItemID, brandID, true)
	if err != nil {
		return err
	}
	if row == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunCatalog(ctx, func(repo repository.StockItemBrandRepository) error {
		if err := repo.ClearPreferred(stockItemID); err != nil {
			return err
		}
		return repo.SetPreferred(stockItemID, brandID)
	})
}

// RemoveBrandFromStockItem quita (soft delete) la asociación insumo-marca.
func (uc *CatalogUseCase) RemoveBrandFromStockItem(stockItemID, brandID string) error {
	row, err := uc.itemBrandRepo.Get(stockItemID, brandID, true)
	if err != nil {
		return err
	}
	if row == nil {
		return domain.ErrNotFound
	}
	return uc.itemBrandRepo.SoftDelete(stockItemID, brandID, time.Now())
}

// ListBrandsForStockItem lista las marcas asociadas a un insumo con precios.
func (uc *CatalogUseCase) ListBrandsForStockItem(stockItemID string) ([]dto.StockItemBrandResponse, error) {
	item, err := uc.itemRepo.GetByID(stockItemID, true)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.itemBrandRepo.ListByStockItem(stockItemID, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemBrandResponse, 0, len(rows))
	for _, r := range rows {
		resp := toStockItemBrandResponse(r)
		if brand, err := uc.brandRepo.GetByID(r.BrandID, false); err == nil && brand != nil {
			resp.BrandName = brand.Name
		}
		out = append(out, *resp)
	}
	return out, nil
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	if b == nil {
		return nil
	}
	return &dto.BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Active:      b.Active,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		DeletedAt:   b.DeletedAt,
	}
}

func toStockItemBrandResponse(r *entity.StockItemBrand) *dto.StockItemBrandResponse {
	if r == nil {
		return nil
	}
	return &dto.StockItemBrandResponse{
		ID:             r.ID,
		StockItemID:    r.StockItemID,
		BrandID:        r.BrandID,
		PriceBeforeTax: r.PriceBeforeTax,
		PriceAfterTax:  r.PriceAfterTax,
		IsPreferred:    r.IsPreferred,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
