package userrepo

import (
	"context"
	"database/sql"

	"shareit/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (name, email)
VALUES ($1,$2)
RETURNING id`
	return r.db.QueryRowContext(ctx, q, u.Name, u.Email).Scan(&u.ID)
}

func (r *repo) Update(ctx context.Context, u *model.User) error {
	const q = `
UPDATE users
SET name = $2, email = $3
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, u.ID, u.Name, u.Email)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `
SELECT id, name, email
FROM users
WHERE id = $1`
	var u model.User
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Name, &u.Email); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	const q = `
SELECT id, name, email
FROM users
ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, id).Scan(&ok)
	return ok, err
}
