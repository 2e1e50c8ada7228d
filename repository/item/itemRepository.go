package itemrepo

import (
	"context"
	"database/sql"
	"fmt"

	"shareit/model"
)

type Repo interface {
	Insert(ctx context.Context, it *model.Item) error
	Update(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	ListByOwner(ctx context.Context, ownerID int64, page *model.Page) ([]model.Item, error)
	Search(ctx context.Context, text string, page *model.Page) ([]model.Item, error)

	InsertComment(ctx context.Context, c *model.Comment) error
	CommentsByItem(ctx context.Context, itemID int64) ([]model.Comment, error)

	UserByID(ctx context.Context, id int64) (*model.User, error)
	RequestByID(ctx context.Context, id int64) (*model.ItemRequest, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const selectItem = `SELECT id, name, description, available, owner_id, request_id FROM items`

func (r *repo) Insert(ctx context.Context, it *model.Item) error {
	const q = `
INSERT INTO items (name, description, available, owner_id, request_id)
VALUES ($1,$2,$3,$4,$5)
RETURNING id`
	return r.db.QueryRowContext(ctx, q, it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).Scan(&it.ID)
}

func (r *repo) Update(ctx context.Context, it *model.Item) error {
	const q = `UPDATE items SET name = $2, description = $3, available = $4 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, it.ID, it.Name, it.Description, it.Available)
	return err
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	if err := r.db.QueryRowContext(ctx, selectItem+` WHERE id = $1`, id).Scan(
		&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID,
	); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repo) scanItems(rows *sql.Rows) ([]model.Item, error) {
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

func paged(q string, args []any, page *model.Page) (string, []any) {
	if page == nil {
		return q, args
	}
	q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	return q, append(args, page.Size, page.From)
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, page *model.Page) ([]model.Item, error) {
	q, args := paged(selectItem+` WHERE owner_id = $1 ORDER BY id`, []any{ownerID}, page)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return r.scanItems(rows)
}

func (r *repo) Search(ctx context.Context, text string, page *model.Page) ([]model.Item, error) {
	const base = selectItem + `
 WHERE available
   AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
 ORDER BY id`
	q, args := paged(base, []any{text}, page)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return r.scanItems(rows)
}

func (r *repo) InsertComment(ctx context.Context, c *model.Comment) error {
	const q = `
INSERT INTO comments (text, item_id, author_id)
VALUES ($1,$2,$3)
RETURNING id, created`
	return r.db.QueryRowContext(ctx, q, c.Text, c.ItemID, c.AuthorID).Scan(&c.ID, &c.Created)
}

func (r *repo) CommentsByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
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
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) UserByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.db.QueryRowContext(ctx, `SELECT id, name, email FROM users WHERE id = $1`, id).Scan(&u.ID, &u.Name, &u.Email); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) RequestByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	const q = `SELECT id, description, requester_id, created FROM requests WHERE id = $1`
	var req model.ItemRequest
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
		return nil, err
	}
	return &req, nil
}
