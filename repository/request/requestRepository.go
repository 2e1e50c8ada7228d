package requestrepo

import (
	"context"
	"database/sql"
	"fmt"

	"shareit/model"
)

type Repo interface {
	Insert(ctx context.Context, req *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, viewerID int64, page *model.Page) ([]model.ItemRequest, error)
	ItemsByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
	UserExists(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const selectRequest = `SELECT id, description, requester_id, created FROM requests`

func (r *repo) Insert(ctx context.Context, req *model.ItemRequest) error {
	const q = `
INSERT INTO requests (description, requester_id)
VALUES ($1,$2)
RETURNING id, created`
	return r.db.QueryRowContext(ctx, q, req.Description, req.RequesterID).Scan(&req.ID, &req.Created)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	var req model.ItemRequest
	if err := r.db.QueryRowContext(ctx, selectRequest+` WHERE id = $1`, id).Scan(
		&req.ID, &req.Description, &req.RequesterID, &req.Created,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repo) scan(rows *sql.Rows) ([]model.ItemRequest, error) {
	defer rows.Close()
	var out []model.ItemRequest
	for rows.Next() {
		var req model.ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *repo) ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	rows, err := r.db.QueryContext(ctx, selectRequest+` WHERE requester_id = $1 ORDER BY created DESC, id DESC`, requesterID)
	if err != nil {
		return nil, err
	}
	return r.scan(rows)
}

func (r *repo) ListOthers(ctx context.Context, viewerID int64, page *model.Page) ([]model.ItemRequest, error) {
	q := selectRequest + ` WHERE requester_id <> $1 ORDER BY created DESC, id DESC`
	args := []any{viewerID}
	if page != nil {
		q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, page.Size, page.From)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return r.scan(rows)
}

func (r *repo) ItemsByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE request_id = $1
ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *repo) UserExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}
