package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/julianrc/panaderia-api/internal/domain"
	"github.com/julianrc/panaderia-api/internal/domain/entity"
	"github.com/julianrc/panaderia-api/internal/domain/repository"
)

var _ repository.ProductStockItemRepository = (*ProductStockItemRepo)(nil)

const productStockItemColumns = `id, product_id, stock_item_id, quantity, preferred_brand_id, notes, created_at, updated_at, deleted_at`

// ProductStockItemRepo implementación de las filas de receta sobre PostgreSQL
// (usable con pool o tx).
type ProductStockItemRepo struct {
	q Querier
}

// NewProductStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductStockItemRepository(q Querier) *ProductStockItemRepo {
	return &ProductStockItemRepo{q: q}
}

// Create persiste una fila de receta.
func (r *ProductStockItemRepo) Create(row *entity.ProductStockItem) error {
	query := `
		INSERT INTO product_stock_items (` + productStockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL)`
	notes := nullable(row.Notes)
	_, err := r.q.Exec(context.Background(), query,
		row.ID, row.ProductID, row.StockItemID, row.Quantity,
		row.PreferredBrandID, notes, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product stock item: %w", err)
	}
	return nil
}

// Get obtiene la fila por par (producto, insumo).
func (r *ProductStockItemRepo) Get(productID, stockItemID string, activeOnly bool) (*entity.ProductStockItem, error) {
	query := `SELECT ` + productStockItemColumns + ` FROM product_stock_items WHERE product_id = $1 AND stock_item_id = $2`
	if activeOnly {
		query += ` AND deleted_at IS NULL`
	}
	row, err := scanProductStockItem(r.q.QueryRow(context.Background(), query, productID, stockItemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// ListByProduct lista la receta de un producto.
func (r *ProductStockItemRepo) ListByProduct(productID string, activeOnly bool) ([]*entity.ProductStockItem, error) {
	query := `SELECT ` + productStockItemColumns + ` FROM product_stock_items WHERE product_id = $1`
	if activeOnly {
		query += ` AND deleted_at IS NULL`
	}
	query += ` ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductStockItem
	for rows.Next() {
		row, err := scanProductStockItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Update actualiza cantidad, marca preferida y notas de una fila.
func (r *ProductStockItemRepo) Update(row *entity.ProductStockItem) error {
	query := `
		UPDATE product_stock_items
		SET quantity = $2, preferred_brand_id = $3, notes = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL`
	notes := nullable(row.Notes)
	tag, err := r.q.Exec(context.Background(), query,
		row.ID, row.Quantity, row.PreferredBrandID, notes, row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca la fila como borrada.
func (r *ProductStockItemRepo) SoftDelete(productID, stockItemID string, at time.Time) error {
	query := `
		UPDATE product_stock_items SET deleted_at = $3, updated_at = $3
		WHERE product_id = $1 AND stock_item_id = $2 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, productID, stockItemID, at)
	if err != nil {
		return fmt.Errorf("soft delete product stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountActiveProductsByStockItem cuenta productos activos distintos cuyas
// recetas activas referencian el insumo (guard de borrado).
func (r *ProductStockItemRepo) CountActiveProductsByStockItem(stockItemID string) (int, error) {
	query := `
		SELECT count(DISTINCT psi.product_id)
		FROM product_stock_items psi
		JOIN products p ON p.id = psi.product_id AND p.deleted_at IS NULL
		WHERE psi.stock_item_id = $1 AND psi.deleted_at IS NULL`
	var count int
	if err := r.q.QueryRow(context.Background(), query, stockItemID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products by stock item: %w", err)
	}
	return count, nil
}

func scanProductStockItem(row rowScanner) (*entity.ProductStockItem, error) {
	var p entity.ProductStockItem
	var notes *string
	err := row.Scan(
		&p.ID, &p.ProductID, &p.StockItemID, &p.Quantity,
		&p.PreferredBrandID, &notes, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product stock item: %w", err)
	}
	if notes != nil {
		p.Notes = *notes
	}
	return &p, nil
}
