package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/julianrc/panaderia-api/internal/domain"
	"github.com/julianrc/panaderia-api/internal/domain/entity"
	"github.com/julianrc/panaderia-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

const stockItemColumns = `id, name, description, unit_of_measure, current_quantity, reorder_threshold, status, created_at, updated_at, deleted_at`

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL
// (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

// Create persiste un nuevo insumo.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULL)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.UnitOfMeasure,
		item.CurrentQuantity, item.ReorderThreshold, item.Status,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID. activeOnly=true excluye soft-deleted.
func (r *StockItemRepo) GetByID(id string, activeOnly bool) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	if activeOnly {
		query += ` AND deleted_at IS NULL`
	}
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByName obtiene un insumo por nombre exacto.
func (r *StockItemRepo) GetByName(name string, activeOnly bool) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE name = $1`
	if activeOnly {
		query += ` AND deleted_at IS NULL`
	}
	return r.scanOne(r.q.QueryRow(context.Background(), query, name))
}

// GetForUpdate obtiene el insumo y bloquea la fila (SELECT FOR UPDATE).
// Usar solo dentro de una tx.
func (r *StockItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza los campos editables del insumo (la cantidad no: esa va
// por UpdateQuantity dentro de la transacción de un movimiento).
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	query := `
		UPDATE stock_items
		SET name = $2, description = $3, unit_of_measure = $4,
		    reorder_threshold = $5, status = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.UnitOfMeasure,
		item.ReorderThreshold, item.Status, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity actualiza cantidad y estado (proyección del ledger).
func (r *StockItemRepo) UpdateQuantity(id string, quantity decimal.Decimal, status string) error {
	query := `
		UPDATE stock_items
		SET current_quantity = $2, status = $3, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id, quantity, status)
	if err != nil {
		return fmt.Errorf("update stock item quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista insumos ordenados por nombre.
func (r *StockItemRepo) List(activeOnly bool, limit, offset int) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items`
	if activeOnly {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Count cuenta insumos con el mismo criterio activeOnly que List.
func (r *StockItemRepo) Count(activeOnly bool) (int, error) {
	query := `SELECT count(*) FROM stock_items`
	if activeOnly {
		query += ` WHERE deleted_at IS NULL`
	}
	var total int
	if err := r.q.QueryRow(context.Background(), query).Scan(&total); err != nil {
		return 0, fmt.Errorf("count stock items: %w", err)
	}
	return total, nil
}

// SoftDelete marca el insumo como borrado.
func (r *StockItemRepo) SoftDelete(id string, at time.Time) error {
	query := `UPDATE stock_items SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("soft delete stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore quita la marca de borrado.
func (r *StockItemRepo) Restore(id string) error {
	query := `UPDATE stock_items SET deleted_at = NULL, updated_at = now() WHERE id = $1 AND deleted_at IS NOT NULL`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		// El nombre pudo ser reutilizado por un insumo activo más nuevo.
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("restore stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockItemRepo) scanOne(row pgx.Row) (*entity.StockItem, error) {
	item, err := scanStockItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStockItem(row rowScanner) (*entity.StockItem, error) {
	var s entity.StockItem
	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.UnitOfMeasure,
		&s.CurrentQuantity, &s.ReorderThreshold, &s.Status,
		&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock item: %w", err)
	}
	return &s, nil
}
