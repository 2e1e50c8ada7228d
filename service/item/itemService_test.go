package itemsvc

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shareit/model"
	"shareit/util/apperr"
)

type repoMock struct {
	users    map[int64]model.User
	items    map[int64]model.Item
	requests map[int64]model.ItemRequest
	comments map[int64][]model.Comment
	nextID   int64
}

func newRepoMock() *repoMock {
	return &repoMock{
		users:    map[int64]model.User{},
		items:    map[int64]model.Item{},
		requests: map[int64]model.ItemRequest{},
		comments: map[int64][]model.Comment{},
	}
}

func (m *repoMock) Insert(ctx context.Context, it *model.Item) error {
	m.nextID++
	it.ID = m.nextID
	m.items[it.ID] = *it
	return nil
}

func (m *repoMock) Update(ctx context.Context, it *model.Item) error {
	m.items[it.ID] = *it
	return nil
}

func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Item, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &it, nil
}

func (m *repoMock) ListByOwner(ctx context.Context, ownerID int64, page *model.Page) ([]model.Item, error) {
	var out []model.Item
	for id := int64(1); id <= m.nextID; id++ {
		if it, ok := m.items[id]; ok && it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *repoMock) Search(ctx context.Context, text string, page *model.Page) ([]model.Item, error) {
	var out []model.Item
	for id := int64(1); id <= m.nextID; id++ {
		if it, ok := m.items[id]; ok && it.Available {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *repoMock) InsertComment(ctx context.Context, c *model.Comment) error {
	m.nextID++
	c.ID = m.nextID
	c.Created = time.Now()
	m.comments[c.ItemID] = append(m.comments[c.ItemID], *c)
	return nil
}

func (m *repoMock) CommentsByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	return m.comments[itemID], nil
}

func (m *repoMock) UserByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (m *repoMock) RequestByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &r, nil
}

type bookingsMock struct {
	lastFn     func(itemID int64, asOf time.Time) (*model.Booking, error)
	nextFn     func(itemID int64, asOf time.Time) (*model.Booking, error)
	finishedFn func(bookerID, itemID int64, asOf time.Time) (bool, error)
}

func (m *bookingsMock) LastForItem(ctx context.Context, itemID int64, asOf time.Time) (*model.Booking, error) {
	if m.lastFn == nil {
		return nil, nil
	}
	return m.lastFn(itemID, asOf)
}

func (m *bookingsMock) NextForItem(ctx context.Context, itemID int64, asOf time.Time) (*model.Booking, error) {
	if m.nextFn == nil {
		return nil, nil
	}
	return m.nextFn(itemID, asOf)
}

func (m *bookingsMock) HasFinishedBooking(ctx context.Context, bookerID, itemID int64, asOf time.Time) (bool, error) {
	if m.finishedFn == nil {
		return false, nil
	}
	return m.finishedFn(bookerID, itemID, asOf)
}

var now = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, b *bookingsMock) (*service, *repoMock) {
	t.Helper()
	m := newRepoMock()
	m.users[1] = model.User{ID: 1, Name: "owner"}
	m.users[2] = model.User{ID: 2, Name: "booker"}
	m.items[100] = model.Item{ID: 100, Name: "drill", Description: "power drill", Available: true, OwnerID: 1}
	m.nextID = 100
	if b == nil {
		b = &bookingsMock{}
	}
	s := New(m, b).(*service)
	s.now = func() time.Time { return now }
	return s, m
}

func TestGet_OwnerSeesLastAndNext(t *testing.T) {
	ctx := context.Background()
	last := &model.Booking{ID: 7, Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour), Booker: model.User{ID: 2}}
	next := &model.Booking{ID: 8, Start: now.Add(24 * time.Hour), End: now.Add(48 * time.Hour), Booker: model.User{ID: 2}}
	s, _ := newTestService(t, &bookingsMock{
		lastFn: func(itemID int64, asOf time.Time) (*model.Booking, error) { return last, nil },
		nextFn: func(itemID int64, asOf time.Time) (*model.Booking, error) { return next, nil },
	})

	d, err := s.Get(ctx, 1, 100)
	require.NoError(t, err)
	require.NotNil(t, d.LastBooking)
	require.NotNil(t, d.NextBooking)
	require.Equal(t, int64(7), d.LastBooking.ID)
	require.Equal(t, int64(2), d.LastBooking.BookerID)
	require.Equal(t, int64(8), d.NextBooking.ID)
}

func TestGet_NonOwnerNeverSeesBookings(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, &bookingsMock{
		lastFn: func(itemID int64, asOf time.Time) (*model.Booking, error) {
			t.Fatal("booking summary must not be queried for non-owners")
			return nil, nil
		},
	})

	d, err := s.Get(ctx, 2, 100)
	require.NoError(t, err)
	require.Nil(t, d.LastBooking)
	require.Nil(t, d.NextBooking)
}

func TestGet_NotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, nil)

	_, err := s.Get(ctx, 1, 999)
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestCreate_AgainstOwnRequest(t *testing.T) {
	ctx := context.Background()
	s, m := newTestService(t, nil)
	m.requests[5] = model.ItemRequest{ID: 5, Description: "need a drill", RequesterID: 1}

	reqID := int64(5)
	_, err := s.Create(ctx, 1, "drill", "power drill", true, &reqID)
	require.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	// someone else's request is fine
	it, err := s.Create(ctx, 2, "drill", "power drill", true, &reqID)
	require.NoError(t, err)
	require.Equal(t, reqID, *it.RequestID)
}

func TestCreate_MissingRequest(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, nil)

	reqID := int64(999)
	_, err := s.Create(ctx, 1, "drill", "power drill", true, &reqID)
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestUpdate_OnlyOwner(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, nil)

	name := "hammer drill"
	_, err := s.Update(ctx, 2, 100, UpdatePatch{Name: &name})
	require.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	avail := false
	it, err := s.Update(ctx, 1, 100, UpdatePatch{Name: &name, Available: &avail})
	require.NoError(t, err)
	require.Equal(t, "hammer drill", it.Name)
	require.False(t, it.Available)
	require.Equal(t, "power drill", it.Description)
}

func TestSearch_BlankTextIsEmpty(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, nil)

	out, err := s.Search(ctx, "   ", nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestAddComment_RequiresFinishedBooking(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, &bookingsMock{
		finishedFn: func(bookerID, itemID int64, asOf time.Time) (bool, error) { return false, nil },
	})

	_, err := s.AddComment(ctx, 2, 100, "great drill")
	require.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestAddComment_Success(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, &bookingsMock{
		finishedFn: func(bookerID, itemID int64, asOf time.Time) (bool, error) {
			require.Equal(t, int64(2), bookerID)
			require.Equal(t, int64(100), itemID)
			require.Equal(t, now, asOf)
			return true, nil
		},
	})

	cm, err := s.AddComment(ctx, 2, 100, "great drill")
	require.NoError(t, err)
	require.Equal(t, "great drill", cm.Text)
	require.Equal(t, "booker", cm.AuthorName)
}
