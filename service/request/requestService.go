// Package requestsvc composes item requests with the items that were created
// to fulfill them.
package requestsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"shareit/model"
	"shareit/util/apperr"
)

type Repo interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, excludeUserID int64, limit, offset int) ([]model.ItemRequest, error)
}

type UserRepo interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type ItemRepo interface {
	ByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
}

type Service interface {
	Create(ctx context.Context, requestorID int64, description string) (*model.ItemRequest, error)
	GetByID(ctx context.Context, callerID, requestID int64) (*model.ItemRequest, error)
	ListMine(ctx context.Context, requestorID int64) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, callerID int64, from, size int) ([]model.ItemRequest, error)
}

type service struct {
	r     Repo
	users UserRepo
	items ItemRepo
}

func New(r Repo, users UserRepo, items ItemRepo) Service {
	return &service{r: r, users: users, items: items}
}

func (s *service) Create(ctx context.Context, requestorID int64, description string) (*model.ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Invalid("request description is required")
	}
	if err := s.requireUser(ctx, requestorID); err != nil {
		return nil, err
	}

	req := &model.ItemRequest{
		Description: description,
		RequestorID: requestorID,
		Created:     time.Now(),
	}
	if err := s.r.Create(ctx, req); err != nil {
		return nil, err
	}
	req.Items = []model.Item{}
	return req, nil
}

func (s *service) GetByID(ctx context.Context, callerID, requestID int64) (*model.ItemRequest, error) {
	if err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}
	req, err := s.r.ByID(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("request %d not found", requestID)
	}
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListMine(ctx context.Context, requestorID int64) ([]model.ItemRequest, error) {
	if err := s.requireUser(ctx, requestorID); err != nil {
		return nil, err
	}
	reqs, err := s.r.ByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.attachAll(ctx, reqs)
}

func (s *service) ListOthers(ctx context.Context, callerID int64, from, size int) ([]model.ItemRequest, error) {
	if err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}
	reqs, err := s.r.ListOthers(ctx, callerID, size, (from/size)*size)
	if err != nil {
		return nil, err
	}
	return s.attachAll(ctx, reqs)
}

func (s *service) requireUser(ctx context.Context, userID int64) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("user %d not found", userID)
	}
	return nil
}

func (s *service) attachAll(ctx context.Context, reqs []model.ItemRequest) ([]model.ItemRequest, error) {
	for i := range reqs {
		if err := s.attachItems(ctx, &reqs[i]); err != nil {
			return nil, err
		}
	}
	return reqs, nil
}

func (s *service) attachItems(ctx context.Context, req *model.ItemRequest) error {
	items, err := s.items.ByRequest(ctx, req.ID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []model.Item{}
	}
	req.Items = items
	return nil
}
