package requestsvc

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
	requests map[int64]model.ItemRequest
	items    map[int64][]model.Item
	users    map[int64]bool
	nextID   int64
}

func newRepoMock() *repoMock {
	return &repoMock{
		requests: map[int64]model.ItemRequest{},
		items:    map[int64][]model.Item{},
		users:    map[int64]bool{1: true, 2: true},
	}
}

func (m *repoMock) Insert(ctx context.Context, req *model.ItemRequest) error {
	m.nextID++
	req.ID = m.nextID
	req.Created = time.Now()
	m.requests[req.ID] = *req
	return nil
}

func (m *repoMock) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &r, nil
}

func (m *repoMock) ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	var out []model.ItemRequest
	for id := m.nextID; id >= 1; id-- {
		if r, ok := m.requests[id]; ok && r.RequesterID == requesterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *repoMock) ListOthers(ctx context.Context, viewerID int64, page *model.Page) ([]model.ItemRequest, error) {
	var out []model.ItemRequest
	for id := m.nextID; id >= 1; id-- {
		if r, ok := m.requests[id]; ok && r.RequesterID != viewerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *repoMock) ItemsByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	return m.items[requestID], nil
}

func (m *repoMock) UserExists(ctx context.Context, id int64) (bool, error) {
	return m.users[id], nil
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	s := New(newRepoMock())

	req, err := s.Create(ctx, 1, "looking for a ladder")
	require.NoError(t, err)
	require.NotZero(t, req.ID)
	require.False(t, req.Created.IsZero())
}

func TestCreate_UnknownUser(t *testing.T) {
	ctx := context.Background()
	s := New(newRepoMock())

	_, err := s.Create(ctx, 99, "looking for a ladder")
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestListOwnAndAll(t *testing.T) {
	ctx := context.Background()
	m := newRepoMock()
	s := New(m)

	mine, err := s.Create(ctx, 1, "ladder")
	require.NoError(t, err)
	theirs, err := s.Create(ctx, 2, "drill")
	require.NoError(t, err)
	m.items[theirs.ID] = []model.Item{{ID: 10, Name: "drill", OwnerID: 1, RequestID: &theirs.ID}}

	own, err := s.ListOwn(ctx, 1)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, mine.ID, own[0].ID)
	require.Empty(t, own[0].Items)

	all, err := s.ListAll(ctx, 1, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, theirs.ID, all[0].ID)
	require.Len(t, all[0].Items, 1)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	m := newRepoMock()
	s := New(m)

	req, err := s.Create(ctx, 1, "ladder")
	require.NoError(t, err)

	got, err := s.Get(ctx, 2, req.ID)
	require.NoError(t, err)
	require.Equal(t, req.ID, got.ID)

	_, err = s.Get(ctx, 2, 999)
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))

	_, err = s.Get(ctx, 99, req.ID)
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}
