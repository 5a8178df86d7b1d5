package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealhive/dealhive/internal/domain"
)

// AdminsRepository provides persistence helpers for dashboard accounts.
type AdminsRepository struct {
	pool *pgxpool.Pool
}

// GetByEmail fetches an admin account by email.
func (r *AdminsRepository) GetByEmail(ctx context.Context, email string) (domain.Admin, error) {
	const query = `
        SELECT id, email, password_hash, created_at, updated_at
        FROM admins
        WHERE email = $1
    `
	var admin domain.Admin
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Admin{}, ErrNotFound
		}
		return domain.Admin{}, err
	}
	return admin, nil
}

// Seed creates the admin account if it does not exist yet. Reports whether
// a row was inserted.
func (r *AdminsRepository) Seed(ctx context.Context, email, passwordHash string) (bool, error) {
	const query = `
        INSERT INTO admins (email, password_hash)
        VALUES ($1,$2)
        ON CONFLICT (email) DO NOTHING
    `
	tag, err := r.pool.Exec(ctx, query, email, passwordHash)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
