package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto terminado.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Description string          `json:"description" validate:"omitempty,max=1000"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest actualización parcial de producto.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price"`
	Active      *bool            `json:"active"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse página de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// AddIngredientRequest agrega un insumo a la receta de un producto.
type AddIngredientRequest struct {
	StockItemID      string          `json:"stock_item_id" validate:"required,uuid4"`
	Quantity         decimal.Decimal `json:"quantity"`
	PreferredBrandID *string         `json:"preferred_brand_id" validate:"omitempty,uuid4"`
	Notes            string          `json:"notes" validate:"omitempty,max=500"`
}

// UpdateIngredientRequest actualización parcial de una fila de receta.
type UpdateIngredientRequest struct {
	Quantity         *decimal.Decimal `json:"quantity"`
	PreferredBrandID *string          `json:"preferred_brand_id" validate:"omitempty,uuid4"`
	Notes            *string          `json:"notes" validate:"omitempty,max=500"`
}

// IngredientResponse fila de receta con datos del insumo resueltos.
type IngredientResponse struct {
	StockItemID      string          `json:"stock_item_id"`
	StockItemName    string          `json:"stock_item_name"`
	UnitOfMeasure    string          `json:"unit_of_measure"`
	Quantity         decimal.Decimal `json:"quantity"`
	PreferredBrandID *string         `json:"preferred_brand_id,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// RecipeResponse producto más su lista completa de ingredientes.
type RecipeResponse struct {
	Product     ProductResponse      `json:"product"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

// CostLineResponse contribución de un ingrediente al costo.
type CostLineResponse struct {
	StockItemID   string          `json:"stock_item_id"`
	StockItemName string          `json:"stock_item_name"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	BrandID       string          `json:"brand_id"`
	BrandName     string          `json:"brand_name,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineCost      decimal.Decimal `json:"line_cost"`
}

// ProductCostResponse costo de materiales del producto con desglose por ingrediente.
type ProductCostResponse struct {
	ProductID   string             `json:"product_id"`
	ProductName string             `json:"product_name"`
	TotalCost   decimal.Decimal    `json:"total_cost"`
	Breakdown   []CostLineResponse `json:"breakdown"`
}
