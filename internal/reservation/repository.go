package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoteldesk/hotel-booking-backend/internal/interval"
)

type Repository interface {
	// TryReserve atomically checks for conflicts and inserts the reservation.
	// For a fixed room, calls are linearized: of two racing reservations with
	// overlapping stays exactly one succeeds and the other gets ErrConflict.
	// Reservations on different rooms never block each other.
	TryReserve(ctx context.Context, res *Reservation) error

	// FindConflicts returns all reservations on the room whose stay overlaps
	// the given range. The single authority for the overlap predicate; search
	// results derived from it are advisory, only TryReserve grants a room.
	FindConflicts(ctx context.Context, roomID string, stay interval.Range) ([]*Reservation, error)

	GetByID(ctx context.Context, id string) (*Reservation, error)

	// Cancel removes the reservation if present. A second cancel of the same
	// id reports ErrNotFound.
	Cancel(ctx context.Context, id string) error

	ListByCustomer(ctx context.Context, customerID string) ([]*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// TryReserve relies on the reservations_no_overlap exclusion constraint
// (GiST on room_id + daterange): the insert itself is the linearization
// point, so no check-then-write window exists. A constraint violation is
// reported as ErrConflict and leaves nothing behind.
func (r *pgxRepository) TryReserve(ctx context.Context, res *Reservation) error {
	const query = `
		INSERT INTO public.reservations (customer_id, room_id, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, res.CustomerID, res.RoomID, res.Stay.Start, res.Stay.End).
		Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) {
			switch e.Code {
			case pgerrcode.ExclusionViolation:
				return ErrConflict
			case pgerrcode.ForeignKeyViolation:
				return ErrRoomNotFound
			}
		}
		return fmt.Errorf("reserve failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) FindConflicts(ctx context.Context, roomID string, stay interval.Range) ([]*Reservation, error) {
	// Half-open overlap: existing.start < new.end AND existing.end > new.start
	const query = `
		SELECT res.id, res.customer_id, res.room_id, rm.room_number, rm.room_type, rm.price_cents,
		       res.start_date, res.end_date, res.created_at
		FROM public.reservations res
		JOIN public.rooms rm ON res.room_id = rm.id
		WHERE res.room_id = $1
		  AND res.start_date < $3
		  AND res.end_date > $2
		ORDER BY res.start_date ASC
	`
	rows, err := r.pool.Query(ctx, query, roomID, stay.Start, stay.End)
	if err != nil {
		return nil, fmt.Errorf("find conflicts failed: %w", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	const query = `
		SELECT res.id, res.customer_id, res.room_id, rm.room_number, rm.room_type, rm.price_cents,
		       res.start_date, res.end_date, res.created_at
		FROM public.reservations res
		JOIN public.rooms rm ON res.room_id = rm.id
		WHERE res.id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) Cancel(ctx context.Context, id string) error {
	const query = `DELETE FROM public.reservations WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("cancel reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByCustomer(ctx context.Context, customerID string) ([]*Reservation, error) {
	const query = `
		SELECT res.id, res.customer_id, res.room_id, rm.room_number, rm.room_type, rm.price_cents,
		       res.start_date, res.end_date, res.created_at
		FROM public.reservations res
		JOIN public.rooms rm ON res.room_id = rm.id
		WHERE res.customer_id = $1
		ORDER BY res.created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list reservations by customer failed: %w", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"res.id", "res.customer_id", "res.room_id", "rm.room_number", "rm.room_type", "rm.price_cents",
		"res.start_date", "res.end_date", "res.created_at",
		"count(*) OVER() as total_count",
	).
		From("public.reservations res").
		Join("public.rooms rm ON res.room_id = rm.id")

	if filter.CustomerID != "" {
		query = query.Where(squirrel.Eq{"res.customer_id": filter.CustomerID})
	}
	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"res.room_id": filter.RoomID})
	}

	query = query.OrderBy("res.created_at ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	var total int

	for rows.Next() {
		var res Reservation
		if err := rows.Scan(
			&res.ID, &res.CustomerID, &res.RoomID, &res.RoomNumber, &res.RoomType, &res.PriceCents,
			&res.Stay.Start, &res.Stay.End, &res.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, &res)
	}

	return reservations, total, nil
}

func scanReservation(row pgx.Row) (*Reservation, error) {
	var res Reservation
	if err := row.Scan(
		&res.ID, &res.CustomerID, &res.RoomID, &res.RoomNumber, &res.RoomType, &res.PriceCents,
		&res.Stay.Start, &res.Stay.End, &res.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &res, nil
}

func scanReservations(rows pgx.Rows) ([]*Reservation, error) {
	var reservations []*Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, nil
}
