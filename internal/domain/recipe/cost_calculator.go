package recipe

import "github.com/shopspring/decimal"

// CostLine contribución de un insumo al costo del producto.
// UnitPrice es el precio con impuestos de la marca resuelta para ese insumo.
type CostLine struct {
	StockItemID   string
	StockItemName string
	UnitOfMeasure string
	BrandID       string
	BrandName     string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	LineCost      decimal.Decimal
}

// ComputeCost suma el costo de materiales de una receta (servicio de dominio).
// CostoLinea = PrecioUnitario * Cantidad; CostoTotal = suma de las líneas.
func ComputeCost(lines []CostLine) (decimal.Decimal, []CostLine) {
	total := decimal.Zero
	out := make([]CostLine, 0, len(lines))
	for _, l := range lines {
		l.LineCost = l.UnitPrice.Mul(l.Quantity)
		total = total.Add(l.LineCost)
		out = append(out, l)
	}
	return total, out
}
