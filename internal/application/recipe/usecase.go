package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/julianrc/panaderia-api/internal/application/dto"
	"github.com/julianrc/panaderia-api/internal/domain"
	"github.com/julianrc/panaderia-api/internal/domain/entity"
	domrecipe "github.com/julianrc/panaderia-api/internal/domain/recipe"
	"github.com/julianrc/panaderia-api/internal/domain/repository"
)

// RecipeUseCase casos de uso para productos, sus recetas (lista de
// materiales) y el cálculo de costo de materiales.
type RecipeUseCase struct {
	productRepo   repository.ProductRepository
	recipeRepo    repository.ProductStockItemRepository
	itemRepo      repository.StockItemRepository
	itemBrandRepo repository.StockItemBrandRepository
	brandRepo     repository.BrandRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(
	productRepo repository.ProductRepository,
	recipeRepo repository.ProductStockItemRepository,
	itemRepo repository.StockItemRepository,
	itemBrandRepo repository.StockItemBrandRepository,
	brandRepo repository.BrandRepository,
) *RecipeUseCase {
	return &RecipeUseCase{
		productRepo:   productRepo,
		recipeRepo:    recipeRepo,
		itemRepo:      itemRepo,
		itemBrandRepo: itemBrandRepo,
		brandRepo:     brandRepo,
	}
}

// CreateProduct crea un producto terminado.
func (uc *RecipeUseCase) CreateProduct(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Validation("name", "el nombre es obligatorio")
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.Validation("price", "el precio no puede ser negativo")
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProductByID obtiene un producto activo por ID.
func (uc *RecipeUseCase) GetProductByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// UpdateProduct actualización parcial de producto.
func (uc *RecipeUseCase) UpdateProduct(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Validation("name", "el nombre no puede quedar vacío")
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.Validation("price", "el precio no puede ser negativo")
		}
		product.Price = *in.Price
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListProducts lista productos con paginación.
func (uc *RecipeUseCase) ListProducts(page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.productRepo.List(true, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.productRepo.Count(true)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// SoftDeleteProduct marca el producto como borrado.
func (uc *RecipeUseCase) SoftDeleteProduct(id string) error {
	product, err := uc.productRepo.GetByID(id, true)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.SoftDelete(id, time.Now())
}

// AddIngredient agrega un insumo a la receta del producto.
// Invariantes: cantidad > 0; par (producto, insumo) único entre filas activas.
func (uc *RecipeUseCase) AddIngredient(productID string, in dto.AddIngredientRequest) (*dto.IngredientResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.Validation("quantity", "la cantidad debe ser mayor que cero")
	}
	product, err := uc.productRepo.GetByID(productID, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(in.StockItemID, true)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.PreferredBrandID != nil {
		row, err := uc.itemBrandRepo.Get(in.StockItemID, *in.PreferredBrandID, true)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, domain.Validation("preferred_brand_id", "la marca no está asociada al insumo")
		}
	}
	existing, err := uc.recipeRepo.Get(productID, in.StockItemID, true)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("el insumo %q ya está en la receta", item.Name)
	}

	now := time.Now()
	row := &entity.ProductStockItem{
		ID:               uuid.New().String(),
		ProductID:        productID,
		StockItemID:      in.StockItemID,
		Quantity:         in.Quantity,
		PreferredBrandID: in.PreferredBrandID,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.recipeRepo.Create(row); err != nil {
		return nil, err
	}
	return &dto.IngredientResponse{
		StockItemID:      row.StockItemID,
		StockItemName:    item.Name,
		UnitOfMeasure:    item.UnitOfMeasure,
		Quantity:         row.Quantity,
		PreferredBrandID: row.PreferredBrandID,
		Notes:            row.Notes,
	}, nil
}

// UpdateIngredient actualización parcial de una fila de receta.
func (uc *RecipeUseCase) UpdateIngredient(productID, stockItemID string, in dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	row, err := uc.recipeRepo.Get(productID, stockItemID, true)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	if in.Quantity != nil {
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.Validation("quantity", "la cantidad debe ser mayor que cero")
		}
		row.Quantity = *in.Quantity
	}
	if in.PreferredBrandID != nil {
		if *in.PreferredBrandID == "" {
			row.PreferredBrandID = nil
		} else {
			assoc, err := uc.itemBrandRepo.Get(stockItemID, *in.PreferredBrandID, true)
			if err != nil {
				return nil, err
			}
			if assoc == nil {
				return nil, domain.Validation("preferred_brand_id", "la marca no está asociada al insumo")
			}
			row.PreferredBrandID = in.PreferredBrandID
		}
	}
	if in.Notes != nil {
		row.Notes = *in.Notes
	}
	row.UpdatedAt = time.Now()
	if err := uc.recipeRepo.Update(row); err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.GetByID(stockItemID, false)
	if err != nil {
		return nil, err
	}
	resp := &dto.IngredientResponse{
		StockItemID:      row.StockItemID,
		Quantity:         row.Quantity,
		PreferredBrandID: row.PreferredBrandID,
		Notes:            row.Notes,
	}
	if item != nil {
		resp.StockItemName = item.Name
		resp.UnitOfMeasure = item.UnitOfMeasure
	}
	return resp, nil
}

// RemoveIngredient quita (soft delete) un insumo de la receta.
func (uc *RecipeUseCase) RemoveIngredient(productID, stockItemID string) error {
	row, err := uc.recipeRepo.Get(productID, stockItemID, true)
	if err != nil {
		return err
	}
	if row == nil {
		return domain.ErrNotFound
	}
	return uc.recipeRepo.SoftDelete(productID, stockItemID, time.Now())
}

// GetRecipe devuelve el producto y su lista completa de ingredientes con
// nombre y unidad del insumo resueltos.
func (uc *RecipeUseCase) GetRecipe(productID string) (*dto.RecipeResponse, error) {
	product, err := uc.productRepo.GetByID(productID, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.recipeRepo.ListByProduct(productID, true)
	if err != nil {
		return nil, err
	}
	ingredients := make([]dto.IngredientResponse, 0, len(rows))
	for _, r := range rows {
		ing := dto.IngredientResponse{
			StockItemID:      r.StockItemID,
			Quantity:         r.Quantity,
			PreferredBrandID: r.PreferredBrandID,
			Notes:            r.Notes,
		}
		item, err := uc.itemRepo.GetByID(r.StockItemID, false)
		if err != nil {
			return nil, err
		}
		if item != nil {
			ing.StockItemName = item.Name
			ing.UnitOfMeasure = item.UnitOfMeasure
		}
		ingredients = append(ingredients, ing)
	}
	return &dto.RecipeResponse{
		Product:     *toProductResponse(product),
		Ingredients: ingredients,
	}, nil
}

// GetCost calcula el costo de materiales del producto. Por cada ingrediente
// resuelve el precio unitario: la marca indicada en la fila de receta si
// existe, si no la marca preferida del insumo. Si ninguna resuelve, falla con
// ErrUnpriceable (regla de negocio: no se asume costo cero ni la marca más
// barata).
func (uc *RecipeUseCase) GetCost(productID string) (*dto.ProductCostResponse, error) {
	product, err := uc.productRepo.GetByID(productID, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.recipeRepo.ListByProduct(productID, true)
	if err != nil {
		return nil, err
	}

	lines := make([]domrecipe.CostLine, 0, len(rows))
	for _, r := range rows {
		item, err := uc.itemRepo.GetByID(r.StockItemID, false)
		if err != nil {
			return nil, err
		}
		priced, err := uc.resolvePrice(r)
		if err != nil {
			return nil, err
		}
		line := domrecipe.CostLine{
			StockItemID: r.StockItemID,
			BrandID:     priced.BrandID,
			Quantity:    r.Quantity,
			UnitPrice:   priced.PriceAfterTax,
		}
		if item != nil {
			line.StockItemName = item.Name
			line.UnitOfMeasure = item.UnitOfMeasure
		}
		if brand, err := uc.brandRepo.GetByID(priced.BrandID, false); err == nil && brand != nil {
			line.BrandName = brand.Name
		}
		lines = append(lines, line)
	}

	total, breakdown := domrecipe.ComputeCost(lines)
	out := make([]dto.CostLineResponse, 0, len(breakdown))
	for _, l := range breakdown {
		out = append(out, dto.CostLineResponse{
			StockItemID:   l.StockItemID,
			StockItemName: l.StockItemName,
			UnitOfMeasure: l.UnitOfMeasure,
			BrandID:       l.BrandID,
			BrandName:     l.BrandName,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			LineCost:      l.LineCost,
		})
	}
	return &dto.ProductCostResponse{
		ProductID:   product.ID,
		ProductName: product.Name,
		TotalCost:   total,
		Breakdown:   out,
	}, nil
}

// resolvePrice devuelve la fila insumo-marca efectiva para costear un
// ingrediente: el override de la receta si existe, si no la marca preferida.
func (uc *RecipeUseCase) resolvePrice(r *entity.ProductStockItem) (*entity.StockItemBrand, error) {
	if r.PreferredBrandID != nil {
		row, err := uc.itemBrandRepo.Get(r.StockItemID, *r.PreferredBrandID, true)
		if err != nil {
			return nil, err
		}
		if row != nil {
			return row, nil
		}
		// El override apunta a una asociación ya eliminada: cae a la preferida.
	}
	row, err := uc.itemBrandRepo.GetPreferred(r.StockItemID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrUnpriceable
	}
	return row, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
