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

func (r *PGRepo) CreateRole(ctx context.Context, name string) (domain.Role, error) {
	q := r.qb().Insert(r.tbl("roles")).
		Columns("name").
		Values(name).
		Suffix("RETURNING id, name")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateRole", sqlStr, args)

	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var role domain.Role
	if err := row.Scan(&role.ID, &role.Name); err != nil {
		if isUniqueViolation(err) {
			return domain.Role{}, fmt.Errorf("%s already exists: %w", name, domain.ErrRoleExists)
		}
		return domain.Role{}, err
	}
	return role, nil
}

func (r *PGRepo) RoleByID(ctx context.Context, id domain.RoleID) (domain.Role, error) {
	q := r.qb().Select("id", "name").
		From(r.tbl("roles")).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("RoleByID", sqlStr, args)

	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var role domain.Role
	if err := row.Scan(&role.ID, &role.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Role{}, domain.ErrRoleNotFound
		}
		return domain.Role{}, err
	}
	return role, nil
}

func (r *PGRepo) ListRoles(ctx context.Context) ([]domain.Role, error) {
	q := r.qb().Select("id", "name").
		From(r.tbl("roles")).
		OrderBy("id")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ListRoles", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("ListRoles ok in %s count=%d", time.Since(start), len(out))
	return out, nil
}

func (r *PGRepo) DeleteRole(ctx context.Context, id domain.RoleID) error {
	q := r.qb().Delete(r.tbl("roles")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteRole", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

func (r *PGRepo) AssignRole(ctx context.Context, userID domain.UserID, roleID domain.RoleID) error {
	q := r.qb().Insert(r.tbl("user_roles")).
		Columns("user_id", "role_id").
		Values(userID, roleID).
		Suffix("ON CONFLICT DO NOTHING")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("AssignRole", sqlStr, args)

	_, err := r.pool.Exec(ctx, sqlStr, args...)
	return err
}

func (r *PGRepo) UnassignRole(ctx context.Context, userID domain.UserID, roleID domain.RoleID) error {
	q := r.qb().Delete(r.tbl("user_roles")).
		Where(sq.Eq{"user_id": userID, "role_id": roleID})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UnassignRole", sqlStr, args)

	_, err := r.pool.Exec(ctx, sqlStr, args...)
	return err
}
