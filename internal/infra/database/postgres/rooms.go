package postgres

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

const roomCols = "id, room_type, room_price::text, is_booked, photo_key"

func (r *PGRepo) CreateRoom(ctx context.Context, room domain.Room) (domain.Room, error) {
	q := r.qb().Insert(r.tbl("rooms")).
		Columns("room_type", "room_price", "photo_key").
		Values(room.Type, sq.Expr("?::numeric", room.Price), room.PhotoKey).
		Suffix("RETURNING " + roomCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateRoom", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.Room
	if err := row.Scan(&out.ID, &out.Type, &out.Price, &out.IsBooked, &out.PhotoKey); err != nil {
		r.logger.Printf("CreateRoom scan error after %s: %v", time.Since(start), err)
		return domain.Room{}, err
	}
	r.logger.Printf("CreateRoom ok in %s id=%d type=%s", time.Since(start), out.ID, out.Type)
	return out, nil
}

func (r *PGRepo) RoomByID(ctx context.Context, id domain.RoomID) (domain.Room, error) {
	q := r.qb().Select(roomCols).
		From(r.tbl("rooms")).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("RoomByID", sqlStr, args)

	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.Room
	if err := row.Scan(&out.ID, &out.Type, &out.Price, &out.IsBooked, &out.PhotoKey); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Room{}, domain.ErrRoomNotFound
		}
		return domain.Room{}, err
	}
	return out, nil
}

func (r *PGRepo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	q := r.qb().Select(roomCols).
		From(r.tbl("rooms")).
		OrderBy("id")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ListRooms", sqlStr, args)

	return r.queryRooms(ctx, "ListRooms", sqlStr, args)
}

func (r *PGRepo) UpdateRoom(ctx context.Context, room domain.Room) (domain.Room, error) {
	q := r.qb().Update(r.tbl("rooms")).
		Set("room_type", room.Type).
		Set("room_price", sq.Expr("?::numeric", room.Price)).
		Set("photo_key", room.PhotoKey).
		Where(sq.Eq{"id": room.ID}).
		Suffix("RETURNING " + roomCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateRoom", sqlStr, args)

	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.Room
	if err := row.Scan(&out.ID, &out.Type, &out.Price, &out.IsBooked, &out.PhotoKey); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Room{}, domain.ErrRoomNotFound
		}
		return domain.Room{}, err
	}
	return out, nil
}

func (r *PGRepo) DeleteRoom(ctx context.Context, id domain.RoomID) error {
	q := r.qb().Delete(r.tbl("rooms")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteRoom", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (r *PGRepo) RoomTypes(ctx context.Context) ([]string, error) {
	q := r.qb().Select("DISTINCT room_type").
		From(r.tbl("rooms")).
		OrderBy("room_type")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("RoomTypes", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// AvailableRooms: номера заданного типа, у которых нет броней,
// пересекающих [checkIn, checkOut] (грубый диапазонный фильтр;
// точный набор правил конфликта применяется при создании брони).
func (r *PGRepo) AvailableRooms(ctx context.Context, checkIn, checkOut domain.Date, roomType string) ([]domain.Room, error) {
	q := r.qb().Select(roomCols).
		From(r.tbl("rooms")).
		Where(sq.Like{"room_type": "%" + roomType + "%"}).
		Where(sq.Expr(
			"id NOT IN (SELECT b.room_id FROM "+r.tbl("bookings")+" b WHERE b.check_in <= ? AND b.check_out >= ?)",
			checkOut, checkIn,
		)).
		OrderBy("id")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("AvailableRooms", sqlStr, args)

	return r.queryRooms(ctx, "AvailableRooms", sqlStr, args)
}

func (r *PGRepo) queryRooms(ctx context.Context, op, sqlStr string, args []any) ([]domain.Room, error) {
	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("%s query error after %s: %v", op, time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Type, &room.Price, &room.IsBooked, &room.PhotoKey); err != nil {
			r.logger.Printf("%s scan error: %v", op, err)
			return nil, err
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("%s ok in %s count=%d", op, time.Since(start), len(out))
	return out, nil
}
