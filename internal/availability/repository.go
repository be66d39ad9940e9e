package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ListByTrainer(ctx context.Context, trainerID string) ([]DayAvailability, error)
	// ReplaceAll deletes every day of the trainer and inserts days in one transaction.
	ReplaceAll(ctx context.Context, trainerID string, days []DayAvailability) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// dayOrder sorts weekday names Monday first.
const dayOrder = `array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'], a.day)`

func (r *pgxRepository) ListByTrainer(ctx context.Context, trainerID string) ([]DayAvailability, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"a.id", "a.trainer_id", "a.day", "tr.id", "tr.start_time", "tr.end_time",
	).
		From("public.availabilities a").
		LeftJoin("public.time_ranges tr ON tr.availability_id = a.id").
		Where(squirrel.Eq{"a.trainer_id": trainerID}).
		OrderBy(dayOrder, "tr.position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list availability query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list availability failed: %w", err)
	}
	defer rows.Close()

	var days []DayAvailability
	for rows.Next() {
		var (
			d                   DayAvailability
			rangeID, start, end *string
		)
		if err := rows.Scan(&d.ID, &d.TrainerID, &d.Day, &rangeID, &start, &end); err != nil {
			return nil, fmt.Errorf("scan availability failed: %w", err)
		}

		if n := len(days); n == 0 || days[n-1].ID != d.ID {
			d.TimeRanges = []TimeRange{}
			days = append(days, d)
		}
		if rangeID != nil {
			last := &days[len(days)-1]
			last.TimeRanges = append(last.TimeRanges, TimeRange{ID: *rangeID, StartTime: *start, EndTime: *end})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list availability failed: %w", err)
	}
	return days, nil
}

func (r *pgxRepository) ReplaceAll(ctx context.Context, trainerID string, days []DayAvailability) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin availability tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Delete("public.availabilities").
		Where(squirrel.Eq{"trainer_id": trainerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete availability query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete availability failed: %w", err)
	}

	for _, d := range days {
		query, args, err := psql.Insert("public.availabilities").
			Columns("id", "trainer_id", "day").
			Values(d.ID, trainerID, d.Day).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert availability query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrDuplicateDay
			}
			return fmt.Errorf("insert availability failed: %w", err)
		}

		if len(d.TimeRanges) == 0 {
			continue
		}
		insert := psql.Insert("public.time_ranges").
			Columns("id", "availability_id", "position", "start_time", "end_time")
		for i, tr := range d.TimeRanges {
			insert = insert.Values(tr.ID, d.ID, i, tr.StartTime, tr.EndTime)
		}
		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert time ranges query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert time ranges failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit availability tx failed: %w", err)
	}
	return nil
}
