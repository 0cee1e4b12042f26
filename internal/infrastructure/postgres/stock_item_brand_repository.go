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

var _ repository.StockItemBrandRepository = (*StockItemBrandRepo)(nil)

const stockItemBrandColumns = `id, stock_item_id, brand_id, price_before_tax, price_after_tax, is_preferred, created_at, updated_at, deleted_at`

// StockItemBrandRepo implementación de la asociación insumo-marca sobre
// PostgreSQL (usable con pool o tx).
type StockItemBrandRepo struct {
	q Querier
}

// NewStockItemBrandRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemBrandRepository(q Querier) *StockItemBrandRepo {
	return &StockItemBrandRepo{q: q}
}

// Create persiste una fila insumo-marca.
func (r *StockItemBrandRepo) Create(row *entity.StockItemBrand) error {
	query := `
		INSERT INTO stock_item_brands (` + stockItemBrandColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL)`
	_, err := r.q.Exec(context.Background(), query,
		row.ID, row.StockItemID, row.BrandID,
		row.PriceBeforeTax, row.PriceAfterTax, row.IsPreferred,
		row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock item brand: %w", err)
	}
	return nil
}

// Get obtiene la fila por par (insumo, marca).
func (r *StockItemBrandRepo) Get(stockItemID, brandID string, activeOnly bool) (*entity.StockItemBrand, error) {
	query := `SELECT ` + stockItemBrandColumns + ` FROM stock_item_brands WHERE stock_item_id = $1 AND brand_id = $2`
	if activeOnly {
		query += ` AND deleted_at IS NULL`
	}
	row, err := scanStockItemBrand(r.q.QueryRow(context.Background(), query, stockItemID, brandID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// GetPreferred devuelve la fila activa marcada como preferida, o nil.
func (r *StockItemBrandRepo) GetPreferred(stockItemID string) (*entity.StockItemBrand, error) {
	query := `
		SELECT ` + stockItemBrandColumns + `
		FROM stock_item_brands
		WHERE stock_item_id = $1 AND is_preferred AND deleted_at IS NULL
		LIMIT 1`
	row, err := scanStockItemBrand(r.q.QueryRow(context.Background(), query, stockItemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// ListByStockItem lista las marcas asociadas a un insumo.
func (r *StockItemBrandRepo) ListByStockItem(stockItemID string, activeOnly bool) ([]*entity.StockItemBrand, error) {
	query := `SELECT ` + stockItemBrandColumns + ` FROM stock_item_brands WHERE stock_item_id = $1`
	if activeOnly {
		query += ` AND deleted_at IS NULL`
	}
	query += ` ORDER BY is_preferred DESC, created_at`
	rows, err := r.q.Query(context.Background(), query, stockItemID)
	if err != nil {
		return nil, fmt.Errorf("list stock item brands: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItemBrand
	for rows.Next() {
		row, err := scanStockItemBrand(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Update actualiza precios y flag de preferida de una fila.
func (r *StockItemBrandRepo) Update(row *entity.StockItemBrand) error {
	query := `
		UPDATE stock_item_brands
		SET price_before_tax = $2, price_after_tax = $3, is_preferred = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query,
		row.ID, row.PriceBeforeTax, row.PriceAfterTax, row.IsPreferred, row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClearPreferred desmarca cualquier fila preferida del insumo. Usar dentro de
// una tx junto a SetPreferred para mantener la exclusividad.
func (r *StockItemBrandRepo) ClearPreferred(stockItemID string) error {
	query := `
		UPDATE stock_item_brands SET is_preferred = false, updated_at = now()
		WHERE stock_item_id = $1 AND is_preferred AND deleted_at IS NULL`
	if _, err := r.q.Exec(context.Background(), query, stockItemID); err != nil {
		return fmt.Errorf("clear preferred brand: %w", err)
	}
	return nil
}

// SetPreferred marca la fila (insumo, marca) como preferida.
func (r *StockItemBrandRepo) SetPreferred(stockItemID, brandID string) error {
	query := `
		UPDATE stock_item_brands SET is_preferred = true, updated_at = now()
		WHERE stock_item_id = $1 AND brand_id = $2 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, stockItemID, brandID)
	if err != nil {
		return fmt.Errorf("set preferred brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca la asociación como borrada.
func (r *StockItemBrandRepo) SoftDelete(stockItemID, brandID string, at time.Time) error {
	query := `
		UPDATE stock_item_brands SET deleted_at = $3, updated_at = $3
		WHERE stock_item_id = $1 AND brand_id = $2 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, stockItemID, brandID, at)
	if err != nil {
		return fmt.Errorf("soft delete stock item brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanStockItemBrand(row rowScanner) (*entity.StockItemBrand, error) {
	var b entity.StockItemBrand
	err := row.Scan(
		&b.ID, &b.StockItemID, &b.BrandID,
		&b.PriceBeforeTax, &b.PriceAfterTax, &b.IsPreferred,
		&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock item brand: %w", err)
	}
	return &b, nil
}
