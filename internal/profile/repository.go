package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for reading profiles from storage.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByExternalID(ctx context.Context, externalID string) (*Profile, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByExternalID(ctx context.Context, externalID string) (*Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"external_id": externalID})
}

func (r *pgxRepository) getOne(ctx context.Context, where squirrel.Eq) (*Profile, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "external_id", "name", "email", "is_trainer", "created_at", "updated_at",
	).
		From("public.profiles").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get profile query failed: %w", err)
	}

	var p Profile
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.ExternalID, &p.Name, &p.Email, &p.IsTrainer, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return &p, nil
}
