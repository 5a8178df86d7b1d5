package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealhive/dealhive/internal/domain"
)

// CouponsRepository provides persistence helpers for coupon entities.
type CouponsRepository struct {
	pool *pgxpool.Pool
}

const couponColumns = `
    c.id,
    c.title,
    c.description,
    c.code,
    c.url,
    c.category_id,
    c.created_at,
    c.updated_at,
    cat.id,
    cat.title,
    cat.slug,
    cat.image_path,
    cat.created_at,
    cat.updated_at
`

const couponFrom = `FROM coupons c LEFT JOIN categories cat ON cat.id = c.category_id`

// CouponCreateParams bundles the fields required to create a coupon.
type CouponCreateParams struct {
	Title       string
	Description *string
	Code        string
	URL         *string
	CategoryID  *string
}

// CouponUpdateParams carries the optional fields of a partial update.
type CouponUpdateParams struct {
	Title       *string
	Description *string
	Code        *string
	URL         *string
	CategoryID  *string
}

// CouponListFilters encapsulates pagination options.
type CouponListFilters struct {
	Limit  int
	Cursor *CouponCursor
}

// CouponCursor allows stable pagination by created_at/id.
type CouponCursor struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
}

// CouponListResult returns the paginated payload.
type CouponListResult struct {
	Items      []domain.Coupon
	NextCursor *string
}

// Create inserts a new coupon row and returns the stored entity with its
// category joined in.
func (r *CouponsRepository) Create(ctx context.Context, params CouponCreateParams) (domain.Coupon, error) {
	const query = `
        INSERT INTO coupons (title, description, code, url, category_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id
    `
	var id string
	err := r.pool.QueryRow(ctx, query, params.Title, params.Description, params.Code, params.URL, params.CategoryID).Scan(&id)
	if err != nil {
		return domain.Coupon{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a coupon by its identifier.
func (r *CouponsRepository) GetByID(ctx context.Context, id string) (domain.Coupon, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE c.id = $1`, couponColumns, couponFrom)
	row := r.pool.QueryRow(ctx, query, id)
	coupon, err := scanCoupon(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Coupon{}, ErrNotFound
		}
		return domain.Coupon{}, err
	}
	return coupon, nil
}

// List returns coupons newest first with keyset pagination.
func (r *CouponsRepository) List(ctx context.Context, filters CouponListFilters) (CouponListResult, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	} else if filters.Limit > 200 {
		filters.Limit = 200
	}

	query := fmt.Sprintf(`SELECT %s %s`, couponColumns, couponFrom)
	args := make([]interface{}, 0, 2)
	if filters.Cursor != nil {
		query += ` WHERE (c.created_at, c.id) < ($1, $2)`
		args = append(args, filters.Cursor.CreatedAt, filters.Cursor.ID)
	}
	query += fmt.Sprintf(` ORDER BY c.created_at DESC, c.id DESC LIMIT %d`, filters.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return CouponListResult{}, err
	}
	defer rows.Close()

	items := make([]domain.Coupon, 0)
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return CouponListResult{}, err
		}
		items = append(items, coupon)
	}
	if err := rows.Err(); err != nil {
		return CouponListResult{}, err
	}

	var nextCursor *string
	if len(items) == filters.Limit {
		last := items[len(items)-1]
		token, err := encodeCouponCursor(CouponCursor{CreatedAt: last.CreatedAt, ID: last.ID})
		if err != nil {
			return CouponListResult{}, err
		}
		nextCursor = &token
	}

	return CouponListResult{Items: items, NextCursor: nextCursor}, nil
}

// Update applies a partial update and returns the stored entity.
func (r *CouponsRepository) Update(ctx context.Context, id string, params CouponUpdateParams) (domain.Coupon, error) {
	const query = `
        UPDATE coupons
        SET title = COALESCE($2, title),
            description = COALESCE($3, description),
            code = COALESCE($4, code),
            url = COALESCE($5, url),
            category_id = COALESCE($6, category_id),
            updated_at = now()
        WHERE id = $1
        RETURNING id
    `
	var updatedID string
	err := r.pool.QueryRow(ctx, query, id, params.Title, params.Description, params.Code, params.URL, params.CategoryID).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Coupon{}, ErrNotFound
		}
		return domain.Coupon{}, err
	}
	return r.GetByID(ctx, updatedID)
}

// Delete removes a coupon.
func (r *CouponsRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCoupon(row pgx.Row) (domain.Coupon, error) {
	var (
		coupon       domain.Coupon
		catID        *string
		catTitle     *string
		catSlug      *string
		catImagePath *string
		catCreatedAt *time.Time
		catUpdatedAt *time.Time
	)

	err := row.Scan(
		&coupon.ID,
		&coupon.Title,
		&coupon.Description,
		&coupon.Code,
		&coupon.URL,
		&coupon.CategoryID,
		&coupon.CreatedAt,
		&coupon.UpdatedAt,
		&catID,
		&catTitle,
		&catSlug,
		&catImagePath,
		&catCreatedAt,
		&catUpdatedAt,
	)
	if err != nil {
		return domain.Coupon{}, err
	}

	if catID != nil {
		coupon.Category = &domain.Category{
			ID:        *catID,
			Title:     *catTitle,
			Slug:      *catSlug,
			ImagePath: *catImagePath,
			CreatedAt: *catCreatedAt,
			UpdatedAt: *catUpdatedAt,
		}
	}
	return coupon, nil
}

func encodeCouponCursor(c CouponCursor) (string, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// DecodeCouponCursor parses a cursor token into a CouponCursor.
func DecodeCouponCursor(token string) (*CouponCursor, error) {
	if token == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}
	var cursor CouponCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, fmt.Errorf("invalid cursor payload: %w", err)
	}
	return &cursor, nil
}
