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

var _ repository.BrandRepository = (*BrandRepo)(nil)

const brandColumns = `id, name, description, active, created_at, updated_at, deleted_at`

// BrandRepo implementación de BrandRepository sobre PostgreSQL (usable con
// pool o tx).
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

// Create persiste una nueva marca.
func (r *BrandRepo) Create(brand *entity.Brand) error {
	query := `
		INSERT INTO brands (` + brandColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, NULL)`
	_, err := r.q.Exec(context.Background(), query,
		brand.ID, brand.Name, brand.Description, brand.Active,
		brand.CreatedAt, brand.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create brand: %w", err)
	}
	return nil
}

// GetByID obtiene una marca por ID. activeOnly=true excluye soft-deleted.
func (r *BrandRepo) GetByID(id string, activeOnly bool) (*entity.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE id = $1`
	if activeOnly {
		query += ` AND deleted_at IS NULL`
	}
	b, err := scanBrand(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// Update actualiza una marca.
func (r *BrandRepo) Update(brand *entity.Brand) error {
	query := `
		UPDATE brands SET name = $2, description = $3, active = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query,
		brand.ID, brand.Name, brand.Description, brand.Active, brand.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista marcas ordenadas por nombre.
func (r *BrandRepo) List(activeOnly bool, limit, offset int) ([]*entity.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands`
	if activeOnly {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()
	var list []*entity.Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Count cuenta marcas con el mismo criterio activeOnly que List.
func (r *BrandRepo) Count(activeOnly bool) (int, error) {
	query := `SELECT count(*) FROM brands`
	if activeOnly {
		query += ` WHERE deleted_at IS NULL`
	}
	var total int
	if err := r.q.QueryRow(context.Background(), query).Scan(&total); err != nil {
		return 0, fmt.Errorf("count brands: %w", err)
	}
	return total, nil
}

// SoftDelete marca la marca como borrada.
func (r *BrandRepo) SoftDelete(id string, at time.Time) error {
	query := `UPDATE brands SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("soft delete brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore quita la marca de borrado.
func (r *BrandRepo) Restore(id string) error {
	query := `UPDATE brands SET deleted_at = NULL, updated_at = now() WHERE id = $1 AND deleted_at IS NOT NULL`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("restore brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBrand(row rowScanner) (*entity.Brand, error) {
	var b entity.Brand
	err := row.Scan(
		&b.ID, &b.Name, &b.Description, &b.Active,
		&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan brand: %w", err)
	}
	return &b, nil
}
