package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBrandRequest alta de marca.
type CreateBrandRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// UpdateBrandRequest actualización parcial de marca.
type UpdateBrandRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Active      *bool   `json:"active"`
}

// BrandResponse representación de una marca.
type BrandResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// BrandListResponse página de marcas.
type BrandListResponse struct {
	Items []BrandResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// AddBrandToStockItemRequest asocia una marca a un insumo con precios.
type AddBrandToStockItemRequest struct {
	BrandID        string          `json:"brand_id" validate:"required,uuid4"`
	PriceBeforeTax decimal.Decimal `json:"price_before_tax"`
	PriceAfterTax  decimal.Decimal `json:"price_after_tax"`
	IsPreferred    bool            `json:"is_preferred"`
}

// StockItemBrandResponse fila insumo-marca con precios.
type StockItemBrandResponse struct {
	ID             string          `json:"id"`
	StockItemID    string          `json:"stock_item_id"`
	BrandID        string          `json:"brand_id"`
	BrandName      string          `json:"brand_name,omitempty"`
	PriceBeforeTax decimal.Decimal `json:"price_before_tax"`
	PriceAfterTax  decimal.Decimal `json:"price_after_tax"`
	IsPreferred    bool            `json:"is_preferred"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
