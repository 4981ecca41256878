// service/request/request_service_test.go
package requestsvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shareit/model"
	requestsvc "shareit/service/request"
	"shareit/util/apperr"
)

type repoMock struct {
	createFn      func(ctx context.Context, req *model.ItemRequest) error
	byIDFn        func(ctx context.Context, id int64) (*model.ItemRequest, error)
	byRequestorFn func(ctx context.Context, requestorID int64) ([]model.ItemRequest, error)
	listOthersFn  func(ctx context.Context, excludeUserID int64, limit, offset int) ([]model.ItemRequest, error)
}

var _ requestsvc.Repo = (*repoMock)(nil)

func (m *repoMock) Create(ctx context.Context, req *model.ItemRequest) error {
	if m.createFn == nil {
		req.ID = 1
		return nil
	}
	return m.createFn(ctx, req)
}

func (m *repoMock) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	if m.byIDFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func (m *repoMock) ByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error) {
	if m.byRequestorFn == nil {
		return nil, nil
	}
	return m.byRequestorFn(ctx, requestorID)
}

func (m *repoMock) ListOthers(ctx context.Context, excludeUserID int64, limit, offset int) ([]model.ItemRequest, error) {
	if m.listOthersFn == nil {
		return nil, nil
	}
	return m.listOthersFn(ctx, excludeUserID, limit, offset)
}

type userMock struct {
	existsFn func(ctx context.Context, id int64) (bool, error)
}

func (m *userMock) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn == nil {
		return true, nil
	}
	return m.existsFn(ctx, id)
}

type itemMock struct {
	byRequestFn func(ctx context.Context, requestID int64) ([]model.Item, error)
}

func (m *itemMock) ByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	if m.byRequestFn == nil {
		return nil, nil
	}
	return m.byRequestFn(ctx, requestID)
}

func TestCreate_BlankDescription(t *testing.T) {
	ctx := context.Background()
	svc := requestsvc.New(&repoMock{}, &userMock{}, &itemMock{})

	_, err := svc.Create(ctx, 1, "   ")
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestCreate_UnknownUser(t *testing.T) {
	ctx := context.Background()
	u := &userMock{existsFn: func(ctx context.Context, id int64) (bool, error) {
		return false, nil
	}}
	svc := requestsvc.New(&repoMock{}, u, &itemMock{})

	_, err := svc.Create(ctx, 42, "need a ladder")
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreate_SetsCreatedAndEmptyItems(t *testing.T) {
	ctx := context.Background()
	svc := requestsvc.New(&repoMock{}, &userMock{}, &itemMock{})

	before := time.Now()
	req, err := svc.Create(ctx, 1, "need a ladder")
	require.NoError(t, err)
	require.False(t, req.Created.Before(before))
	require.NotNil(t, req.Items)
	require.Empty(t, req.Items)
}

func TestGetByID_AttachesItems(t *testing.T) {
	ctx := context.Background()
	r := &repoMock{byIDFn: func(ctx context.Context, id int64) (*model.ItemRequest, error) {
		return &model.ItemRequest{ID: id, Description: "need a ladder", RequestorID: 2}, nil
	}}
	im := &itemMock{byRequestFn: func(ctx context.Context, requestID int64) ([]model.Item, error) {
		return []model.Item{{ID: 7, Name: "ladder"}}, nil
	}}
	svc := requestsvc.New(r, &userMock{}, im)

	req, err := svc.GetByID(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, req.Items, 1)
	require.Equal(t, int64(7), req.Items[0].ID)
}

func TestGetByID_Missing(t *testing.T) {
	ctx := context.Background()
	svc := requestsvc.New(&repoMock{}, &userMock{}, &itemMock{})

	_, err := svc.GetByID(ctx, 1, 5)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListMine_ItemsNeverNil(t *testing.T) {
	ctx := context.Background()
	r := &repoMock{byRequestorFn: func(ctx context.Context, requestorID int64) ([]model.ItemRequest, error) {
		return []model.ItemRequest{{ID: 1, RequestorID: requestorID}}, nil
	}}
	svc := requestsvc.New(r, &userMock{}, &itemMock{})

	reqs, err := svc.ListMine(ctx, 2)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	require.NotNil(t, reqs[0].Items)
}

func TestListOthers_ExcludesCallerAndPages(t *testing.T) {
	ctx := context.Background()
	var gotExclude int64
	var gotLimit, gotOffset int
	r := &repoMock{listOthersFn: func(ctx context.Context, excludeUserID int64, limit, offset int) ([]model.ItemRequest, error) {
		gotExclude, gotLimit, gotOffset = excludeUserID, limit, offset
		return nil, nil
	}}
	svc := requestsvc.New(r, &userMock{}, &itemMock{})

	_, err := svc.ListOthers(ctx, 3, 25, 10)
	require.NoError(t, err)
	require.Equal(t, int64(3), gotExclude)
	require.Equal(t, 10, gotLimit)
	require.Equal(t, 20, gotOffset)
}
