package itemrepo

import (
	"context"
	"database/sql"

	"shareit/model"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	Update(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	ByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Item, error)
	IDsByOwner(ctx context.Context, ownerID int64) ([]int64, error)
	Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error)
	ByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, it *model.Item) error {
	const q = `
INSERT INTO items (name, description, available, owner_id, request_id)
VALUES ($1,$2,$3,$4,$5)
RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		it.Name, it.Description, it.Available, it.OwnerID, it.RequestID,
	).Scan(&it.ID)
}

func (r *repo) Update(ctx context.Context, it *model.Item) error {
	const q = `
UPDATE items
SET name = $2, description = $3, available = $4
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, it.ID, it.Name, it.Description, it.Available)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE id = $1`
	var it model.Item
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID,
	); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repo) ByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Item, error) {
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE owner_id = $1
ORDER BY id
LIMIT $2 OFFSET $3`
	return r.queryItems(ctx, q, ownerID, limit, offset)
}

func (r *repo) IDsByOwner(ctx context.Context, ownerID int64) ([]int64, error) {
	const q = `
SELECT id
FROM items
WHERE owner_id = $1
ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Search matches available items whose name or description contains the
// already-lowercased text.
func (r *repo) Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error) {
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE available
  AND (LOWER(name) LIKE '%' || $1 || '%' OR LOWER(description) LIKE '%' || $1 || '%')
ORDER BY id
LIMIT $2 OFFSET $3`
	return r.queryItems(ctx, q, text, limit, offset)
}

func (r *repo) ByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE request_id = $1
ORDER BY id`
	return r.queryItems(ctx, q, requestID)
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM items WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) queryItems(ctx context.Context, q string, args ...any) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
