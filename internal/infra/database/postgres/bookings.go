package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

const bookingCols = "id, room_id, guest_full_name, guest_email, adults, children, total_guests, check_in, check_out, confirmation_code"

func scanBooking(row pgx.Row) (domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.RoomID, &b.GuestFullName, &b.GuestEmail,
		&b.Adults, &b.Children, &b.TotalGuests,
		&b.CheckIn, &b.CheckOut, &b.ConfirmationCode,
	)
	return b, err
}

func (r *PGRepo) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	q := r.qb().Select(bookingCols).
		From(r.tbl("bookings")).
		OrderBy("id")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ListBookings", sqlStr, args)

	return r.queryBookings(ctx, "ListBookings", sqlStr, args)
}

func (r *PGRepo) BookingByConfirmationCode(ctx context.Context, code string) (domain.Booking, error) {
	q := r.qb().Select(bookingCols).
		From(r.tbl("bookings")).
		Where(sq.Eq{"confirmation_code": code})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("BookingByConfirmationCode", sqlStr, args)

	b, err := scanBooking(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, err
	}
	return b, nil
}

func (r *PGRepo) BookingsByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	q := r.qb().Select(bookingCols).
		From(r.tbl("bookings")).
		Where(sq.Eq{"guest_email": email}).
		OrderBy("id")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("BookingsByEmail", sqlStr, args)

	return r.queryBookings(ctx, "BookingsByEmail", sqlStr, args)
}

func (r *PGRepo) BookingsByRoom(ctx context.Context, roomID domain.RoomID) ([]domain.Booking, error) {
	q := r.qb().Select(bookingCols).
		From(r.tbl("bookings")).
		Where(sq.Eq{"room_id": roomID}).
		OrderBy("id")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("BookingsByRoom", sqlStr, args)

	return r.queryBookings(ctx, "BookingsByRoom", sqlStr, args)
}

func (r *PGRepo) DeleteBooking(ctx context.Context, id domain.BookingID) error {
	q := r.qb().Delete(r.tbl("bookings")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteBooking", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking is not found with this id %d: %w", id, domain.ErrBookingNotFound)
	}
	return nil
}

// CreateBooking выполняет проверку доступности и вставку в одной
// транзакции. Строка комнаты берётся FOR UPDATE: два конкурентных
// бронирования одной комнаты сериализуются, проверка не видит
// устаревший снимок.
func (r *PGRepo) CreateBooking(ctx context.Context, b domain.Booking, availCheck func(existing []domain.Booking) error) (domain.Booking, error) {
	start := time.Now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// блокировка строки комнаты (заодно проверка существования)
	q := r.qb().Select("id").
		From(r.tbl("rooms")).
		Where(sq.Eq{"id": b.RoomID}).
		Suffix("FOR UPDATE")
	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateBooking.lock", sqlStr, args)

	var roomID domain.RoomID
	if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&roomID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, fmt.Errorf("room is not found: %w", domain.ErrRoomNotFound)
		}
		return domain.Booking{}, err
	}

	// существующие брони комнаты под блокировкой
	q = r.qb().Select(bookingCols).
		From(r.tbl("bookings")).
		Where(sq.Eq{"room_id": b.RoomID}).
		OrderBy("id")
	sqlStr, args, _ = q.ToSql()
	r.logSQL("CreateBooking.existing", sqlStr, args)

	rows, err := tx.Query(ctx, sqlStr, args...)
	if err != nil {
		return domain.Booking{}, err
	}
	var existing []domain.Booking
	for rows.Next() {
		eb, err := scanBooking(rows)
		if err != nil {
			rows.Close()
			return domain.Booking{}, err
		}
		existing = append(existing, eb)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return domain.Booking{}, err
	}

	if err := availCheck(existing); err != nil {
		return domain.Booking{}, err
	}

	ins := r.qb().Insert(r.tbl("bookings")).
		Columns("room_id", "guest_full_name", "guest_email", "adults", "children", "total_guests", "check_in", "check_out", "confirmation_code").
		Values(b.RoomID, b.GuestFullName, b.GuestEmail, b.Adults, b.Children, b.TotalGuests, b.CheckIn, b.CheckOut, b.ConfirmationCode).
		Suffix("RETURNING " + bookingCols)
	sqlStr, args, _ = ins.ToSql()
	r.logSQL("CreateBooking.insert", sqlStr, args)

	saved, err := scanBooking(tx.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreateBooking insert error after %s: %v", time.Since(start), err)
		return domain.Booking{}, err
	}

	upd := r.qb().Update(r.tbl("rooms")).
		Set("is_booked", true).
		Where(sq.Eq{"id": b.RoomID})
	sqlStr, args, _ = upd.ToSql()
	r.logSQL("CreateBooking.mark", sqlStr, args)

	if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
		return domain.Booking{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Booking{}, fmt.Errorf("commit tx: %w", err)
	}

	r.logger.Printf("CreateBooking ok in %s id=%d room=%d code=%s",
		time.Since(start), saved.ID, saved.RoomID, saved.ConfirmationCode)
	return saved, nil
}

func (r *PGRepo) queryBookings(ctx context.Context, op, sqlStr string, args []any) ([]domain.Booking, error) {
	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("%s query error after %s: %v", op, time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			r.logger.Printf("%s scan error: %v", op, err)
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("%s ok in %s count=%d", op, time.Since(start), len(out))
	return out, nil
}
