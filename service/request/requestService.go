package requestsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shareit/model"
	"shareit/util/apperr"
)

type Repo interface {
	Insert(ctx context.Context, req *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, viewerID int64, page *model.Page) ([]model.ItemRequest, error)
	ItemsByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
	UserExists(ctx context.Context, id int64) (bool, error)
}

// Detail is a request together with the items listed in answer to it.
type Detail struct {
	model.ItemRequest
	Items []model.Item `json:"items"`
}

type Service interface {
	Create(ctx context.Context, requesterID int64, description string) (*model.ItemRequest, error)
	ListOwn(ctx context.Context, viewerID int64) ([]Detail, error)
	ListAll(ctx context.Context, viewerID int64, page *model.Page) ([]Detail, error)
	Get(ctx context.Context, viewerID, requestID int64) (*Detail, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r} }

func (s *service) Create(ctx context.Context, requesterID int64, description string) (*model.ItemRequest, error) {
	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}
	req := &model.ItemRequest{Description: description, RequesterID: requesterID}
	if err := s.r.Insert(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, viewerID int64) ([]Detail, error) {
	if err := s.checkUser(ctx, viewerID); err != nil {
		return nil, err
	}
	reqs, err := s.r.ListByRequester(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, reqs)
}

func (s *service) ListAll(ctx context.Context, viewerID int64, page *model.Page) ([]Detail, error) {
	if err := s.checkUser(ctx, viewerID); err != nil {
		return nil, err
	}
	reqs, err := s.r.ListOthers(ctx, viewerID, page)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, reqs)
}

func (s *service) Get(ctx context.Context, viewerID, requestID int64) (*Detail, error) {
	if err := s.checkUser(ctx, viewerID); err != nil {
		return nil, err
	}
	req, err := s.r.ByID(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(fmt.Sprintf("request %d not found", requestID))
	}
	if err != nil {
		return nil, err
	}
	d, err := s.detail(ctx, *req)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) details(ctx context.Context, reqs []model.ItemRequest) ([]Detail, error) {
	out := make([]Detail, 0, len(reqs))
	for _, req := range reqs {
		d, err := s.detail(ctx, req)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (s *service) detail(ctx context.Context, req model.ItemRequest) (*Detail, error) {
	items, err := s.r.ItemsByRequest(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return &Detail{ItemRequest: req, Items: items}, nil
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
