package bookingrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/model"
)

type Repo interface {
	Insert(ctx context.Context, itemID, bookerID int64, start, end time.Time, status model.BookingStatus) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Booking, error)

	// Transition locks the booking row, lets decide pick the next status and
	// persists it, all in one transaction. Concurrent calls on the same id
	// serialize on the row lock.
	Transition(ctx context.Context, id int64, decide func(b *model.Booking) (model.BookingStatus, error)) (*model.Booking, error)

	ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, page *model.Page) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, page *model.Page) ([]model.Booking, error)

	LastForItem(ctx context.Context, itemID int64, asOf time.Time) (*model.Booking, error)
	NextForItem(ctx context.Context, itemID int64, asOf time.Time) (*model.Booking, error)
	HasFinishedBooking(ctx context.Context, bookerID, itemID int64, asOf time.Time) (bool, error)

	ItemByID(ctx context.Context, id int64) (*model.Item, error)
	UserExists(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const selectBooking = `
SELECT b.id, b.start_date, b.end_date, b.status,
       i.id, i.name, i.description, i.available, i.owner_id, i.request_id,
       u.id, u.name, u.email
FROM bookings b
JOIN items i ON i.id = b.item_id
JOIN users u ON u.id = b.booker_id`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	if err := row.Scan(
		&b.ID, &b.Start, &b.End, &b.Status,
		&b.Item.ID, &b.Item.Name, &b.Item.Description, &b.Item.Available, &b.Item.OwnerID, &b.Item.RequestID,
		&b.Booker.ID, &b.Booker.Name, &b.Booker.Email,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) Insert(ctx context.Context, itemID, bookerID int64, start, end time.Time, status model.BookingStatus) (int64, error) {
	const q = `
INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
VALUES ($1,$2,$3,$4,$5)
RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, start, end, itemID, bookerID, status).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx, selectBooking+` WHERE b.id = $1`, id))
}

func (r *repo) Transition(ctx context.Context, id int64, decide func(b *model.Booking) (model.BookingStatus, error)) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var b *model.Booking
	b, err = scanBooking(tx.QueryRowContext(ctx, selectBooking+` WHERE b.id = $1 FOR UPDATE OF b`, id))
	if err != nil {
		return nil, err
	}

	var status model.BookingStatus
	status, err = decide(b)
	if err != nil {
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, `UPDATE bookings SET status = $2 WHERE id = $1`, id, status); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	b.Status = status
	return b, nil
}

// stateClause returns the WHERE fragment for a list state. withNow reports
// whether the fragment references the "now" argument at position arg.
func stateClause(state model.BookingState, arg int) (cond string, withNow bool) {
	n := fmt.Sprintf("$%d", arg)
	switch state {
	case model.StateCurrent:
		return "b.start_date <= " + n + " AND b.end_date > " + n, true
	case model.StatePast:
		return "b.status = 'APPROVED' AND b.end_date < " + n, true
	case model.StateFuture:
		return "b.start_date > " + n, true
	case model.StateWaiting:
		return "b.status = 'WAITING'", false
	case model.StateRejected:
		return "b.status = 'REJECTED'", false
	default: // ALL
		return "", false
	}
}

func (r *repo) list(ctx context.Context, scope string, scopeID int64, state model.BookingState, now time.Time, page *model.Page) ([]model.Booking, error) {
	q := selectBooking + " WHERE " + scope
	args := []any{scopeID}
	if cond, withNow := stateClause(state, len(args)+1); cond != "" {
		q += " AND " + cond
		if withNow {
			args = append(args, now)
		}
	}
	q += " ORDER BY b.start_date DESC, b.id DESC"
	if page != nil {
		q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, page.Size, page.From)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *repo) ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, page *model.Page) ([]model.Booking, error) {
	return r.list(ctx, "b.booker_id = $1", bookerID, state, now, page)
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, page *model.Page) ([]model.Booking, error) {
	return r.list(ctx, "i.owner_id = $1", ownerID, state, now, page)
}

func (r *repo) LastForItem(ctx context.Context, itemID int64, asOf time.Time) (*model.Booking, error) {
	const tail = ` WHERE b.item_id = $1 AND b.end_date < $2 ORDER BY b.end_date DESC LIMIT 1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, selectBooking+tail, itemID, asOf))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *repo) NextForItem(ctx context.Context, itemID int64, asOf time.Time) (*model.Booking, error) {
	const tail = ` WHERE b.item_id = $1 AND b.start_date > $2 ORDER BY b.start_date ASC LIMIT 1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, selectBooking+tail, itemID, asOf))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *repo) HasFinishedBooking(ctx context.Context, bookerID, itemID int64, asOf time.Time) (bool, error) {
	const q = `
SELECT EXISTS (
  SELECT 1 FROM bookings
  WHERE booker_id = $1 AND item_id = $2 AND status = 'APPROVED' AND end_date < $3
)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, bookerID, itemID, asOf).Scan(&ok)
	return ok, err
}

func (r *repo) ItemByID(ctx context.Context, id int64) (*model.Item, error) {
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

func (r *repo) UserExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}
