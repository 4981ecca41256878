package commentrepo

import (
	"context"
	"database/sql"

	"shareit/model"
)

type Repo interface {
	Create(ctx context.Context, cm *model.Comment) error
	ByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, cm *model.Comment) error {
	const q = `
INSERT INTO comments (text, item_id, author_id, created)
VALUES ($1,$2,$3,$4)
RETURNING id`
	return r.db.QueryRowContext(ctx, q, cm.Text, cm.ItemID, cm.AuthorID, cm.Created).Scan(&cm.ID)
}

func (r *repo) ByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	const q = `
SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.item_id = $1
ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, q, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var cm model.Comment
		if err := rows.Scan(&cm.ID, &cm.Text, &cm.ItemID, &cm.AuthorID, &cm.AuthorName, &cm.Created); err != nil {
			return nil, err
		}
		out = append(out, cm)
	}
	return out, rows.Err()
}
