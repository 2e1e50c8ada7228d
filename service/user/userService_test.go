package usersvc

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"shareit/model"
	"shareit/util/apperr"
)

type repoMock struct {
	createFn func(ctx context.Context, u *model.User) error
	updateFn func(ctx context.Context, u *model.User) error
	byIDFn   func(ctx context.Context, id int64) (*model.User, error)
	listFn   func(ctx context.Context) ([]model.User, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *repoMock) Create(ctx context.Context, u *model.User) error { return m.createFn(ctx, u) }
func (m *repoMock) Update(ctx context.Context, u *model.User) error { return m.updateFn(ctx, u) }
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context) ([]model.User, error) { return m.listFn(ctx) }
func (m *repoMock) Delete(ctx context.Context, id int64) error     { return m.deleteFn(ctx, id) }

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	s := New(m)

	u, err := s.Create(context.Background(), "Alice", "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "alice@example.com", u.Email)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
		},
	}
	s := New(m)

	_, err := s.Create(context.Background(), "Alice", "alice@example.com")
	require.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))
}

func TestUpdate_PartialPatch(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
		},
		updateFn: func(ctx context.Context, u *model.User) error { return nil },
	}
	s := New(m)

	name := "Alice B"
	u, err := s.Update(context.Background(), 1, UpdatePatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Alice B", u.Name)
	require.Equal(t, "alice@example.com", u.Email)
}

func TestGet_NotFound(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) { return nil, sql.ErrNoRows },
	}
	s := New(m)

	_, err := s.Get(context.Background(), 99)
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestDelete_NotFound(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id int64) error { return sql.ErrNoRows },
	}
	s := New(m)

	err := s.Delete(context.Background(), 99)
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestMapDuplicateEmail_PassthroughOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	require.Equal(t, boom, mapDuplicateEmail(boom, "a@b.c"))

	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	require.Equal(t, error(fk), mapDuplicateEmail(fk, "a@b.c"))
}
