package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Brand representa una marca/proveedor de insumos.
type Brand struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// StockItemBrand asocia un insumo con una marca y sus precios (tabla intermedia).
// Invariantes: PriceAfterTax >= PriceBeforeTax; a lo sumo una fila preferida
// por insumo; (StockItemID, BrandID) único entre filas activas.
type StockItemBrand struct {
	ID             string
	StockItemID    string
	BrandID        string
	PriceBeforeTax decimal.Decimal
	PriceAfterTax  decimal.Decimal
	IsPreferred    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}
