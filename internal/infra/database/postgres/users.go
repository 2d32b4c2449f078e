package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *PGRepo) CreateUser(ctx context.Context, email string, passHash []byte, roles []string) (domain.User, error) {
	q := r.qb().Insert(r.tbl("users")).
		Columns("email", "pass_hash").
		Values(email, passHash).
		Suffix("RETURNING id, email, pass_hash, created_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateUser", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PassHash, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			r.logger.Printf("CreateUser conflict email=%s", email)
			return domain.User{}, fmt.Errorf("%s already exists: %w", email, domain.ErrUserExists)
		}
		r.logger.Printf("CreateUser scan error after %s: %v", time.Since(start), err)
		return domain.User{}, err
	}

	// роли: создаём отсутствующие и привязываем
	for _, name := range roles {
		ins := r.qb().Insert(r.tbl("roles")).Columns("name").Values(name).
			Suffix("ON CONFLICT (name) DO NOTHING")
		sqlStr, args, _ = ins.ToSql()
		r.logSQL("CreateUser.role", sqlStr, args)
		if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
			return domain.User{}, err
		}

		link := r.qb().Insert(r.tbl("user_roles")).Columns("user_id", "role_id").
			Select(sq.Select(fmt.Sprint(u.ID), "id").From(r.tbl("roles")).Where(sq.Eq{"name": name})).
			Suffix("ON CONFLICT DO NOTHING")
		sqlStr, args, _ = link.ToSql()
		r.logSQL("CreateUser.link", sqlStr, args)
		if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
			return domain.User{}, err
		}
	}
	u.Roles = roles

	r.logger.Printf("CreateUser ok in %s id=%d email=%s", time.Since(start), u.ID, u.Email)
	return u, nil
}

func (r *PGRepo) userBy(ctx context.Context, op string, cond sq.Eq) (domain.User, error) {
	q := r.qb().Select(
		"u.id", "u.email", "u.pass_hash", "u.created_at",
		"COALESCE(array_agg(ro.name) FILTER (WHERE ro.name IS NOT NULL), '{}')",
	).
		From(r.tbl("users") + " u").
		LeftJoin(r.tbl("user_roles") + " ur ON ur.user_id = u.id").
		LeftJoin(r.tbl("roles") + " ro ON ro.id = ur.role_id").
		Where(cond).
		GroupBy("u.id", "u.email", "u.pass_hash", "u.created_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PassHash, &u.CreatedAt, &u.Roles); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		r.logger.Printf("%s scan error after %s: %v", op, time.Since(start), err)
		return domain.User{}, err
	}
	r.logger.Printf("%s ok in %s id=%d", op, time.Since(start), u.ID)
	return u, nil
}

func (r *PGRepo) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.userBy(ctx, "UserByEmail", sq.Eq{"u.email": email})
}

func (r *PGRepo) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	return r.userBy(ctx, "UserByID", sq.Eq{"u.id": id})
}

// PrincipalByEmail — загрузчик принципала для фильтра аутентификации
func (r *PGRepo) PrincipalByEmail(ctx context.Context, email string) (domain.Principal, error) {
	u, err := r.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Principal{}, domain.ErrIdentityNotFound
		}
		return domain.Principal{}, err
	}
	return domain.Principal{ID: u.ID, Email: u.Email, Roles: u.Roles}, nil
}

func (r *PGRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	q := r.qb().Select(
		"u.id", "u.email", "u.pass_hash", "u.created_at",
		"COALESCE(array_agg(ro.name) FILTER (WHERE ro.name IS NOT NULL), '{}')",
	).
		From(r.tbl("users") + " u").
		LeftJoin(r.tbl("user_roles") + " ur ON ur.user_id = u.id").
		LeftJoin(r.tbl("roles") + " ro ON ro.id = ur.role_id").
		GroupBy("u.id", "u.email", "u.pass_hash", "u.created_at").
		OrderBy("u.id")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ListUsers", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("ListUsers query error after %s: %v", time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PassHash, &u.CreatedAt, &u.Roles); err != nil {
			r.logger.Printf("ListUsers scan error: %v", err)
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("ListUsers ok in %s count=%d", time.Since(start), len(out))
	return out, nil
}

func (r *PGRepo) DeleteUser(ctx context.Context, id domain.UserID) error {
	q := r.qb().Delete(r.tbl("users")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteUser", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
