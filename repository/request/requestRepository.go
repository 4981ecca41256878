package requestrepo

import (
	"context"
	"database/sql"

	"shareit/model"
)

type Repo interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, excludeUserID int64, limit, offset int) ([]model.ItemRequest, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, req *model.ItemRequest) error {
	const q = `
INSERT INTO requests (description, requestor_id, created)
VALUES ($1,$2,$3)
RETURNING id`
	return r.db.QueryRowContext(ctx, q, req.Description, req.RequestorID, req.Created).Scan(&req.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	const q = `
SELECT id, description, requestor_id, created
FROM requests
WHERE id = $1`
	var req model.ItemRequest
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&req.ID, &req.Description, &req.RequestorID, &req.Created,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repo) ByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error) {
	const q = `
SELECT id, description, requestor_id, created
FROM requests
WHERE requestor_id = $1
ORDER BY created DESC`
	return r.queryRequests(ctx, q, requestorID)
}

// ListOthers pages through requests from everyone but the caller, oldest
// first. The ascending order is the historical contract of GET /requests/all.
func (r *repo) ListOthers(ctx context.Context, excludeUserID int64, limit, offset int) ([]model.ItemRequest, error) {
	const q = `
SELECT id, description, requestor_id, created
FROM requests
WHERE requestor_id <> $1
ORDER BY created
LIMIT $2 OFFSET $3`
	return r.queryRequests(ctx, q, excludeUserID, limit, offset)
}

func (r *repo) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM requests WHERE id = $1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, id).Scan(&ok)
	return ok, err
}

func (r *repo) queryRequests(ctx context.Context, q string, args ...any) ([]model.ItemRequest, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ItemRequest
	for rows.Next() {
		var req model.ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
