package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/julianrc/panaderia-api/internal/domain/entity"
	"github.com/julianrc/panaderia-api/internal/domain/repository"
)

// NameResolver resuelve el nombre de un insumo para el reporte.
type NameResolver struct {
	itemRepo repository.StockItemRepository
	cache    map[string]string
}

// NewNameResolver construye el resolver con caché por ejecución del reporte.
func NewNameResolver(itemRepo repository.StockItemRepository) *NameResolver {
	return &NameResolver{itemRepo: itemRepo, cache: map[string]string{}}
}

func (r *NameResolver) name(stockItemID string) string {
	if n, ok := r.cache[stockItemID]; ok {
		return n
	}
	n := stockItemID
	if item, err := r.itemRepo.GetByID(stockItemID, false); err == nil && item != nil {
		n = item.Name
	}
	r.cache[stockItemID] = n
	return n
}

// MovementsXLSX genera un libro Excel con el ledger de movimientos filtrado,
// una fila por movimiento, más reciente primero.
func MovementsXLSX(movements []*entity.StockMovement, resolver *NameResolver) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"fecha",
		"insumo",
		"tipo",
		"delta",
		"cantidad_anterior",
		"cantidad_nueva",
		"motivo",
		"referencia",
		"usuario",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("reporte movimientos: encabezado: %w", err)
	}

	row := 2
	for _, m := range movements {
		reference := ""
		if m.ReferenceType != "" {
			reference = m.ReferenceType + ":" + m.ReferenceID
		}
		excelRow := []interface{}{
			m.CreatedAt.Format("2006-01-02 15:04:05"),
			resolver.name(m.StockItemID),
			m.Type,
			m.Quantity.StringFixed(3),
			m.PreviousQuantity.StringFixed(3),
			m.NewQuantity.StringFixed(3),
			m.Reason,
			reference,
			m.CreatedBy,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("reporte movimientos: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("reporte movimientos: fila %d: %w", row, err)
		}
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("reporte movimientos: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
