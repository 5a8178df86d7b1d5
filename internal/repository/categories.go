package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealhive/dealhive/internal/domain"
)

// CategoriesRepository provides persistence helpers for category entities.
type CategoriesRepository struct {
	pool *pgxpool.Pool
}

const categoryColumns = `
    id,
    title,
    slug,
    image_path,
    created_at,
    updated_at
`

// CategoryCreateParams bundles the fields required to create a category.
type CategoryCreateParams struct {
	Title     string
	Slug      string
	ImagePath string
}

// CategoryUpdateParams carries the optional fields of a partial update.
// Nil fields keep their stored values.
type CategoryUpdateParams struct {
	Title     *string
	Slug      *string
	ImagePath *string
}

// Create inserts a new category row and returns the stored entity.
// A slug collision maps to ErrConflict.
func (r *CategoriesRepository) Create(ctx context.Context, params CategoryCreateParams) (domain.Category, error) {
	query := fmt.Sprintf(`
        INSERT INTO categories (title, slug, image_path)
        VALUES ($1,$2,$3)
        RETURNING %s
    `, categoryColumns)

	row := r.pool.QueryRow(ctx, query, params.Title, params.Slug, params.ImagePath)
	category, err := scanCategory(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Category{}, ErrConflict
		}
		return domain.Category{}, err
	}
	return category, nil
}

// List returns all categories, newest first.
func (r *CategoriesRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories ORDER BY created_at DESC, id DESC`, categoryColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID fetches a category by its identifier.
func (r *CategoriesRepository) GetByID(ctx context.Context, id string) (domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id = $1`, categoryColumns)
	row := r.pool.QueryRow(ctx, query, id)
	category, err := scanCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Category{}, ErrNotFound
		}
		return domain.Category{}, err
	}
	return category, nil
}

// Exists reports whether a category with the given id is present.
func (r *CategoriesRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Update applies a partial update and returns the stored entity.
func (r *CategoriesRepository) Update(ctx context.Context, id string, params CategoryUpdateParams) (domain.Category, error) {
	query := fmt.Sprintf(`
        UPDATE categories
        SET title = COALESCE($2, title),
            slug = COALESCE($3, slug),
            image_path = COALESCE($4, image_path),
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, categoryColumns)

	row := r.pool.QueryRow(ctx, query, id, params.Title, params.Slug, params.ImagePath)
	category, err := scanCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Category{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.Category{}, ErrConflict
		}
		return domain.Category{}, err
	}
	return category, nil
}

// Delete removes a category. Historical ratings are kept on purpose.
func (r *CategoriesRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (domain.Category, error) {
	var category domain.Category
	err := row.Scan(
		&category.ID,
		&category.Title,
		&category.Slug,
		&category.ImagePath,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return domain.Category{}, err
	}
	return category, nil
}
