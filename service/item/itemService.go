package itemsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/model"
	"shareit/util/apperr"
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

// BookingReader is the slice of the booking store the item views need.
type BookingReader interface {
	LastForItem(ctx context.Context, itemID int64, asOf time.Time) (*model.Booking, error)
	NextForItem(ctx context.Context, itemID int64, asOf time.Time) (*model.Booking, error)
	HasFinishedBooking(ctx context.Context, bookerID, itemID int64, asOf time.Time) (bool, error)
}

// BookingRef is the owner-only booking annotation on an item view.
type BookingRef struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// Detail is an item with its comments and, for the owner, the most recently
// concluded and the soonest upcoming booking.
type Detail struct {
	model.Item
	LastBooking *BookingRef     `json:"lastBooking"`
	NextBooking *BookingRef     `json:"nextBooking"`
	Comments    []model.Comment `json:"comments"`
}

type UpdatePatch struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID int64, name, description string, available bool, requestID *int64) (*model.Item, error)
	Update(ctx context.Context, viewerID, itemID int64, patch UpdatePatch) (*model.Item, error)
	Get(ctx context.Context, viewerID, itemID int64) (*Detail, error)
	ListByOwner(ctx context.Context, ownerID int64, page *model.Page) ([]Detail, error)
	Search(ctx context.Context, text string, page *model.Page) ([]model.Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*model.Comment, error)
}

type service struct {
	r   Repo
	b   BookingReader
	now func() time.Time
}

func New(r Repo, b BookingReader) Service {
	return &service{r: r, b: b, now: time.Now}
}

func (s *service) Create(ctx context.Context, ownerID int64, name, description string, available bool, requestID *int64) (*model.Item, error) {
	if _, err := s.user(ctx, ownerID); err != nil {
		return nil, err
	}

	if requestID != nil {
		req, err := s.r.RequestByID(ctx, *requestID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("request %d not found", *requestID))
		}
		if err != nil {
			return nil, err
		}
		if req.RequesterID == ownerID {
			return nil, apperr.Validation("cannot list an item against your own request")
		}
	}

	it := &model.Item{
		Name:        name,
		Description: description,
		Available:   available,
		OwnerID:     ownerID,
		RequestID:   requestID,
	}
	if err := s.r.Insert(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, viewerID, itemID int64, patch UpdatePatch) (*model.Item, error) {
	it, err := s.item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != viewerID {
		return nil, apperr.Forbidden(fmt.Sprintf("user %d does not own item %d", viewerID, itemID))
	}

	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Available != nil {
		it.Available = *patch.Available
	}
	if err := s.r.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Get(ctx context.Context, viewerID, itemID int64) (*Detail, error) {
	it, err := s.item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, viewerID, *it)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, page *model.Page) ([]Detail, error) {
	if _, err := s.user(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.r.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	out := make([]Detail, 0, len(items))
	for _, it := range items {
		d, err := s.detail(ctx, ownerID, it)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (s *service) Search(ctx context.Context, text string, page *model.Page) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	return s.r.Search(ctx, text, page)
}

func (s *service) AddComment(ctx context.Context, authorID, itemID int64, text string) (*model.Comment, error) {
	author, err := s.user(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.item(ctx, itemID); err != nil {
		return nil, err
	}

	ok, err := s.b.HasFinishedBooking(ctx, authorID, itemID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("user %d has no finished booking of item %d", authorID, itemID))
	}

	c := &model.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
	}
	if err := s.r.InsertComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// detail annotates an item with comments and, when the viewer owns it, the
// last and next booking. Non-owners always get both fields null.
func (s *service) detail(ctx context.Context, viewerID int64, it model.Item) (*Detail, error) {
	comments, err := s.r.CommentsByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.Comment{}
	}

	d := &Detail{Item: it, Comments: comments}
	if it.OwnerID != viewerID {
		return d, nil
	}

	asOf := s.now().UTC()
	last, err := s.b.LastForItem(ctx, it.ID, asOf)
	if err != nil {
		return nil, err
	}
	next, err := s.b.NextForItem(ctx, it.ID, asOf)
	if err != nil {
		return nil, err
	}
	d.LastBooking = ref(last)
	d.NextBooking = ref(next)
	return d, nil
}

func ref(b *model.Booking) *BookingRef {
	if b == nil {
		return nil
	}
	return &BookingRef{ID: b.ID, BookerID: b.Booker.ID, Start: b.Start, End: b.End}
}

func (s *service) user(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.r.UserByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(fmt.Sprintf("user %d not found", id))
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) item(ctx context.Context, id int64) (*model.Item, error) {
	it, err := s.r.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(fmt.Sprintf("item %d not found", id))
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}
