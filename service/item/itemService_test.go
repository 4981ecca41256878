// service/item/item_service_test.go
package itemsvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shareit/model"
	itemsvc "shareit/service/item"
	"shareit/util/apperr"
)

type repoMock struct {
	createFn  func(ctx context.Context, it *model.Item) error
	updateFn  func(ctx context.Context, it *model.Item) error
	byIDFn    func(ctx context.Context, id int64) (*model.Item, error)
	byOwnerFn func(ctx context.Context, ownerID int64, limit, offset int) ([]model.Item, error)
	searchFn  func(ctx context.Context, text string, limit, offset int) ([]model.Item, error)
	deleteFn  func(ctx context.Context, id int64) error
}

var _ itemsvc.Repo = (*repoMock)(nil)

func (m *repoMock) Create(ctx context.Context, it *model.Item) error {
	if m.createFn == nil {
		it.ID = 1
		return nil
	}
	return m.createFn(ctx, it)
}

func (m *repoMock) Update(ctx context.Context, it *model.Item) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, it)
}

func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Item, error) {
	if m.byIDFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func (m *repoMock) ByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Item, error) {
	if m.byOwnerFn == nil {
		return nil, nil
	}
	return m.byOwnerFn(ctx, ownerID, limit, offset)
}

func (m *repoMock) Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error) {
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(ctx, text, limit, offset)
}

func (m *repoMock) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

type userMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *userMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return &model.User{ID: id, Name: "user"}, nil
	}
	return m.byIDFn(ctx, id)
}

func (m *userMock) Exists(ctx context.Context, id int64) (bool, error) { return true, nil }

type commentMock struct {
	createFn func(ctx context.Context, cm *model.Comment) error
	byItemFn func(ctx context.Context, itemID int64) ([]model.Comment, error)
}

func (m *commentMock) Create(ctx context.Context, cm *model.Comment) error {
	if m.createFn == nil {
		cm.ID = 1
		return nil
	}
	return m.createFn(ctx, cm)
}

func (m *commentMock) ByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	if m.byItemFn == nil {
		return nil, nil
	}
	return m.byItemFn(ctx, itemID)
}

type requestMock struct {
	existsFn func(ctx context.Context, id int64) (bool, error)
}

func (m *requestMock) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn == nil {
		return true, nil
	}
	return m.existsFn(ctx, id)
}

type bookingsMock struct {
	lastFn func(ctx context.Context, itemID int64) (*model.BookingInfo, error)
	nextFn func(ctx context.Context, itemID int64) (*model.BookingInfo, error)
	hasFn  func(ctx context.Context, userID, itemID int64) (bool, error)
}

func (m *bookingsMock) LastForItem(ctx context.Context, itemID int64) (*model.BookingInfo, error) {
	if m.lastFn == nil {
		return nil, nil
	}
	return m.lastFn(ctx, itemID)
}

func (m *bookingsMock) NextForItem(ctx context.Context, itemID int64) (*model.BookingInfo, error) {
	if m.nextFn == nil {
		return nil, nil
	}
	return m.nextFn(ctx, itemID)
}

func (m *bookingsMock) HasCompletedApproved(ctx context.Context, userID, itemID int64) (bool, error) {
	if m.hasFn == nil {
		return false, nil
	}
	return m.hasFn(ctx, userID, itemID)
}

func newService(r *repoMock, u *userMock, cm *commentMock, rq *requestMock, b *bookingsMock) itemsvc.Service {
	return itemsvc.New(r, u, cm, rq, b)
}

func storedItem() *model.Item {
	return &model.Item{ID: 3, Name: "drill", Description: "cordless drill", Available: true, OwnerID: 1}
}

func TestCreate_UnknownRequest(t *testing.T) {
	ctx := context.Background()
	rq := &requestMock{existsFn: func(ctx context.Context, id int64) (bool, error) {
		return false, nil
	}}
	svc := newService(&repoMock{}, &userMock{}, &commentMock{}, rq, &bookingsMock{})

	reqID := int64(44)
	_, err := svc.Create(ctx, 1, "drill", "cordless drill", true, &reqID)
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdate_AvailableOnlyPatch(t *testing.T) {
	ctx := context.Background()
	var saved *model.Item
	r := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return storedItem(), nil
		},
		updateFn: func(ctx context.Context, it *model.Item) error {
			saved = it
			return nil
		},
	}
	svc := newService(r, &userMock{}, &commentMock{}, &requestMock{}, &bookingsMock{})

	off := false
	it, err := svc.Update(ctx, 1, 3, itemsvc.Patch{Available: &off})
	require.NoError(t, err)
	require.Equal(t, "drill", it.Name)
	require.Equal(t, "cordless drill", it.Description)
	require.False(t, it.Available)
	require.False(t, saved.Available)
}

func TestUpdate_BlankStringsKeepValues(t *testing.T) {
	ctx := context.Background()
	r := &repoMock{byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
		return storedItem(), nil
	}}
	svc := newService(r, &userMock{}, &commentMock{}, &requestMock{}, &bookingsMock{})

	it, err := svc.Update(ctx, 1, 3, itemsvc.Patch{Name: "  ", Description: ""})
	require.NoError(t, err)
	require.Equal(t, "drill", it.Name)
	require.Equal(t, "cordless drill", it.Description)
}

func TestUpdate_NotOwner(t *testing.T) {
	ctx := context.Background()
	r := &repoMock{byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
		return storedItem(), nil
	}}
	svc := newService(r, &userMock{}, &commentMock{}, &requestMock{}, &bookingsMock{})

	_, err := svc.Update(ctx, 2, 3, itemsvc.Patch{Name: "mine now"})
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGetByID_HidesScheduleFromNonOwner(t *testing.T) {
	ctx := context.Background()
	r := &repoMock{byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
		return storedItem(), nil
	}}
	b := &bookingsMock{
		lastFn: func(ctx context.Context, itemID int64) (*model.BookingInfo, error) {
			return &model.BookingInfo{ID: 10, BookerID: 2}, nil
		},
		nextFn: func(ctx context.Context, itemID int64) (*model.BookingInfo, error) {
			return &model.BookingInfo{ID: 11, BookerID: 2}, nil
		},
	}
	svc := newService(r, &userMock{}, &commentMock{}, &requestMock{}, b)

	it, err := svc.GetByID(ctx, 1, 3) // owner
	require.NoError(t, err)
	require.NotNil(t, it.LastBooking)
	require.NotNil(t, it.NextBooking)

	it, err = svc.GetByID(ctx, 2, 3) // not the owner
	require.NoError(t, err)
	require.Nil(t, it.LastBooking)
	require.Nil(t, it.NextBooking)
	require.NotNil(t, it.Comments)
}

func TestSearch_BlankReturnsEmptyWithoutQuery(t *testing.T) {
	ctx := context.Background()
	r := &repoMock{searchFn: func(ctx context.Context, text string, limit, offset int) ([]model.Item, error) {
		t.Fatal("repo must not be queried for a blank search")
		return nil, nil
	}}
	svc := newService(r, &userMock{}, &commentMock{}, &requestMock{}, &bookingsMock{})

	items, err := svc.Search(ctx, "   ", 0, 20)
	require.NoError(t, err)
	require.Empty(t, items)
	require.NotNil(t, items)
}

func TestSearch_LowercasesQuery(t *testing.T) {
	ctx := context.Background()
	var got string
	r := &repoMock{searchFn: func(ctx context.Context, text string, limit, offset int) ([]model.Item, error) {
		got = text
		return []model.Item{*storedItem()}, nil
	}}
	svc := newService(r, &userMock{}, &commentMock{}, &requestMock{}, &bookingsMock{})

	_, err := svc.Search(ctx, "DRiLL", 0, 20)
	require.NoError(t, err)
	require.Equal(t, "drill", got)
}

func TestAddComment_RequiresCompletedApprovedBooking(t *testing.T) {
	ctx := context.Background()
	r := &repoMock{byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
		return storedItem(), nil
	}}
	b := &bookingsMock{hasFn: func(ctx context.Context, userID, itemID int64) (bool, error) {
		return false, nil
	}}
	svc := newService(r, &userMock{}, &commentMock{}, &requestMock{}, b)

	_, err := svc.AddComment(ctx, 2, 3, "great drill")
	require.Error(t, err)
	require.Equal(t, apperr.KindNotAvailable, apperr.KindOf(err))
}

func TestAddComment_Success(t *testing.T) {
	ctx := context.Background()
	r := &repoMock{byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
		return storedItem(), nil
	}}
	u := &userMock{byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
		return &model.User{ID: id, Name: "Bob"}, nil
	}}
	b := &bookingsMock{hasFn: func(ctx context.Context, userID, itemID int64) (bool, error) {
		return true, nil
	}}
	svc := newService(r, u, &commentMock{}, &requestMock{}, b)

	before := time.Now()
	cm, err := svc.AddComment(ctx, 2, 3, "great drill")
	require.NoError(t, err)
	require.Equal(t, "great drill", cm.Text)
	require.Equal(t, "Bob", cm.AuthorName)
	require.False(t, cm.Created.Before(before))
}
