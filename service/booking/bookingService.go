package bookingsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/model"
	"shareit/util/apperr"
)

type Repo interface {
	Insert(ctx context.Context, itemID, bookerID int64, start, end time.Time, status model.BookingStatus) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Booking, error)

	// Transition runs decide against the booking inside one transaction with
	// the row locked, then persists the returned status. Two concurrent
	// transitions on the same id cannot both see WAITING.
	Transition(ctx context.Context, id int64, decide func(b *model.Booking) (model.BookingStatus, error)) (*model.Booking, error)

	ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, page *model.Page) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, page *model.Page) ([]model.Booking, error)
	ItemByID(ctx context.Context, id int64) (*model.Item, error)
	UserExists(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	// Create places a WAITING booking for the viewer on an item.
	Create(ctx context.Context, viewerID, itemID int64, start, end time.Time) (*model.Booking, error)

	// SetApproval moves a WAITING booking to APPROVED or REJECTED. Only the
	// item owner may call it, and only once per booking.
	SetApproval(ctx context.Context, viewerID, bookingID int64, approve bool) (*model.Booking, error)

	// Get returns the booking to its booker or the item owner; everyone else
	// gets a not-found, never a forbidden.
	Get(ctx context.Context, viewerID, bookingID int64) (*model.Booking, error)

	ListForBooker(ctx context.Context, viewerID int64, state model.BookingState, page *model.Page) ([]model.Booking, error)
	ListForOwner(ctx context.Context, viewerID int64, state model.BookingState, page *model.Page) ([]model.Booking, error)
}

type service struct {
	r   Repo
	now func() time.Time
}

func New(r Repo) Service { return &service{r: r, now: time.Now} }

func (s *service) Create(ctx context.Context, viewerID, itemID int64, start, end time.Time) (*model.Booking, error) {
	now := s.now().UTC()
	if start.Before(now) {
		return nil, apperr.Validation("start must not be in the past")
	}
	if !end.After(start) {
		return nil, apperr.Validation("end must be after start")
	}

	if err := s.checkUser(ctx, viewerID); err != nil {
		return nil, err
	}

	it, err := s.r.ItemByID(ctx, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(fmt.Sprintf("item %d not found", itemID))
	}
	if err != nil {
		return nil, err
	}
	if it.OwnerID == viewerID {
		// Owners cannot book their own items. Answer as if the item did not
		// exist rather than confirm it does.
		return nil, apperr.NotFound(fmt.Sprintf("item %d not found", itemID))
	}
	if !it.Available {
		return nil, apperr.Validation(fmt.Sprintf("item %d is not available for booking", itemID))
	}

	id, err := s.r.Insert(ctx, itemID, viewerID, start, end, model.StatusWaiting)
	if err != nil {
		return nil, err
	}
	return s.r.ByID(ctx, id)
}

func (s *service) SetApproval(ctx context.Context, viewerID, bookingID int64, approve bool) (*model.Booking, error) {
	b, err := s.r.Transition(ctx, bookingID, func(b *model.Booking) (model.BookingStatus, error) {
		if b.Item.OwnerID != viewerID {
			return "", apperr.Forbidden("only the item owner can approve or reject a booking")
		}
		if b.Status != model.StatusWaiting {
			// APPROVED and REJECTED are both terminal.
			return "", apperr.Validation(fmt.Sprintf("booking %d is already %s", bookingID, b.Status))
		}
		if approve {
			return model.StatusApproved, nil
		}
		return model.StatusRejected, nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(fmt.Sprintf("booking %d not found", bookingID))
	}
	return b, err
}

func (s *service) Get(ctx context.Context, viewerID, bookingID int64) (*model.Booking, error) {
	b, err := s.r.ByID(ctx, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(fmt.Sprintf("booking %d not found", bookingID))
	}
	if err != nil {
		return nil, err
	}
	if viewerID != b.Booker.ID && viewerID != b.Item.OwnerID {
		// Unrelated viewers must not learn the booking exists.
		return nil, apperr.NotFound(fmt.Sprintf("booking %d not found", bookingID))
	}
	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, viewerID int64, state model.BookingState, page *model.Page) ([]model.Booking, error) {
	if err := s.checkUser(ctx, viewerID); err != nil {
		return nil, err
	}
	return s.r.ListByBooker(ctx, viewerID, state, s.now().UTC(), page)
}

func (s *service) ListForOwner(ctx context.Context, viewerID int64, state model.BookingState, page *model.Page) ([]model.Booking, error) {
	if err := s.checkUser(ctx, viewerID); err != nil {
		return nil, err
	}
	return s.r.ListByOwner(ctx, viewerID, state, s.now().UTC(), page)
}

func (s *service) checkUser(ctx context.Context, id int64) error {
	ok, err := s.r.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound(fmt.Sprintf("user %d not found", id))
	}
	return nil
}
