package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/trainer-booking-backend/internal/booking"
)

// Repository defines methods for persisting reviews.
type Repository interface {
	// Create attaches r to the client's most recent completed booking with
	// the trainer that has no review yet.
	Create(ctx context.Context, r *Review) error
	ListByTrainer(ctx context.Context, trainerID string) ([]*Review, error)
	// HasUnreviewedBooking reports whether Create would find a booking.
	HasUnreviewedBooking(ctx context.Context, trainerID, clientID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rv *Review) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	// Placeholders are numbered once by the outer builder.
	eligible := squirrel.Select("b.id").
		Column("?::smallint", rv.Rating).
		Column("?::text", rv.Comment).
		From("public.bookings b").
		Where(squirrel.Eq{
			"b.trainer_id": rv.TrainerID,
			"b.client_id":  rv.ClientID,
			"b.status":     string(booking.StatusCompleted),
		}).
		Where("NOT EXISTS (SELECT 1 FROM public.reviews r WHERE r.booking_id = b.id)").
		OrderBy("b.date DESC", "b.created_at DESC").
		Limit(1)

	query, args, err := psql.Insert("public.reviews").
		Columns("booking_id", "rating", "comment").
		Select(eligible).
		Suffix("RETURNING id, booking_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create review query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&rv.ID, &rv.BookingID, &rv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNoEligibleBooking
		}
		// A concurrent review took the same booking.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNoEligibleBooking
		}
		return fmt.Errorf("create review failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListByTrainer(ctx context.Context, trainerID string) ([]*Review, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"r.id", "r.booking_id", "b.trainer_id", "b.client_id", "r.rating", "r.comment",
		"r.created_at", "b.date", "c.name",
	).
		From("public.reviews r").
		Join("public.bookings b ON r.booking_id = b.id").
		Join("public.profiles c ON b.client_id = c.id").
		Where(squirrel.Eq{"b.trainer_id": trainerID}).
		OrderBy("r.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reviews query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews failed: %w", err)
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID, &rv.BookingID, &rv.TrainerID, &rv.ClientID, &rv.Rating, &rv.Comment,
			&rv.CreatedAt, &rv.SessionDate, &rv.ClientName,
		); err != nil {
			return nil, fmt.Errorf("scan review failed: %w", err)
		}
		reviews = append(reviews, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews failed: %w", err)
	}
	return reviews, nil
}

func (r *pgxRepository) HasUnreviewedBooking(ctx context.Context, trainerID, clientID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	inner, args, err := psql.Select("1").
		From("public.bookings b").
		Where(squirrel.Eq{
			"b.trainer_id": trainerID,
			"b.client_id":  clientID,
			"b.status":     string(booking.StatusCompleted),
		}).
		Where("NOT EXISTS (SELECT 1 FROM public.reviews r WHERE r.booking_id = b.id)").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build completed booking query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+inner+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check completed booking failed: %w", err)
	}
	return exists, nil
}
