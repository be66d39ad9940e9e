package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Update writes the mutable fields of a booking if its version still
	// matches, and bumps the version. A stale version yields ErrVersionConflict.
	Update(ctx context.Context, booking *Booking) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"b.id", "b.trainer_id", "t.name", "t.email", "b.client_id", "c.name", "c.email",
	"b.session_type", "b.duration", "b.date", "b.start_time", "b.end_time",
	"b.status", "b.notes", "b.trainer_notes", "b.price", "b.is_paid",
	"b.version", "b.created_at", "b.updated_at",
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	notes, err := encodeNotes(b.TrainerNotes)
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"trainer_id", "client_id", "session_type", "duration", "date",
			"start_time", "end_time", "status", "notes", "trainer_notes", "price", "is_paid",
		).
		Values(
			b.TrainerID, b.ClientID, b.SessionType, b.Duration, b.Date,
			b.StartTime, b.EndTime, b.Status, b.Notes, notes, b.Price, b.IsPaid,
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrProfileNotFound
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) selectBookings() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(bookingColumns...).
		From("public.bookings b").
		Join("public.profiles t ON b.trainer_id = t.id").
		Join("public.profiles c ON b.client_id = c.id")
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := r.selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	query := r.selectBookings().Column("count(*) OVER() AS total_count")

	if filter.TrainerID != "" {
		query = query.Where(squirrel.Eq{"b.trainer_id": filter.TrainerID})
	}
	if filter.ClientID != "" {
		query = query.Where(squirrel.Eq{"b.client_id": filter.ClientID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	query = query.OrderBy("b.date ASC", "b.created_at ASC")

	if filter.PageSize > 0 {
		if filter.Page < 1 {
			filter.Page = 1
		}
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	notes, err := encodeNotes(b.TrainerNotes)
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("date", b.Date).
		Set("start_time", b.StartTime).
		Set("end_time", b.EndTime).
		Set("status", b.Status).
		Set("trainer_notes", notes).
		Set("is_paid", b.IsPaid).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID, "version": b.Version}).
		Suffix("RETURNING version, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&b.Version, &b.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update booking failed: %w", err)
	}

	var exists bool
	err = r.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM public.bookings WHERE id = $1)", b.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check booking exists failed: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrVersionConflict
}

func encodeNotes(n Notes) ([]byte, error) {
	if n == nil {
		n = Notes{}
	}
	b, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("encode trainer notes failed: %w", err)
	}
	return b, nil
}

// scanBooking reads one row selected with bookingColumns, plus any trailing
// columns passed in extra.
func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var (
		b     Booking
		notes []byte
	)
	dest := []any{
		&b.ID, &b.TrainerID, &b.TrainerName, &b.TrainerEmail, &b.ClientID, &b.ClientName, &b.ClientEmail,
		&b.SessionType, &b.Duration, &b.Date, &b.StartTime, &b.EndTime,
		&b.Status, &b.Notes, &notes, &b.Price, &b.IsPaid,
		&b.Version, &b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if len(notes) > 0 {
		if err := json.Unmarshal(notes, &b.TrainerNotes); err != nil {
			return nil, fmt.Errorf("decode trainer notes failed: %w", err)
		}
	}
	return &b, nil
}
