// Package bookingsvc implements the booking lifecycle: a booking is created
// WAITING and the item owner moves it to APPROVED or REJECTED. It also answers
// the temporal listing categories and the last/next-per-item queries used by
// the item views.
package bookingsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	"shareit/util/apperr"
)

type State = bookingrepo.State

// ParseState maps the ?state= query value to a listing category. Blank means
// ALL; anything unrecognized is an unsupported-state error with the message
// the API contract promises.
func ParseState(s string) (State, error) {
	if strings.TrimSpace(s) == "" {
		return bookingrepo.StateAll, nil
	}
	st := State(strings.ToUpper(s))
	switch st {
	case bookingrepo.StateAll, bookingrepo.StateCurrent, bookingrepo.StatePast,
		bookingrepo.StateFuture, bookingrepo.StateWaiting, bookingrepo.StateRejected:
		return st, nil
	}
	return "", apperr.UnsupportedState("Unknown state: %s", s)
}

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
	ListByBooker(ctx context.Context, bookerID int64, st State, now time.Time, limit, offset int) ([]model.Booking, error)
	ListByItem(ctx context.Context, itemID int64, st State, now time.Time, limit, offset int) ([]model.Booking, error)
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	HasCompletedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type UserRepo interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type ItemRepo interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
	IDsByOwner(ctx context.Context, ownerID int64) ([]int64, error)
}

type Service interface {
	Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*model.Booking, error)
	Confirm(ctx context.Context, ownerID, bookingID int64, approved bool) (*model.Booking, error)
	GetByID(ctx context.Context, callerID, bookingID int64) (*model.Booking, error)
	ListForBooker(ctx context.Context, bookerID int64, st State, from, size int) ([]model.Booking, error)
	ListForOwner(ctx context.Context, ownerID int64, st State, from, size int) ([]model.Booking, error)
	LastForItem(ctx context.Context, itemID int64) (*model.BookingInfo, error)
	NextForItem(ctx context.Context, itemID int64) (*model.BookingInfo, error)
	HasCompletedApproved(ctx context.Context, userID, itemID int64) (bool, error)
}

type service struct {
	r     Repo
	users UserRepo
	items ItemRepo
}

func New(r Repo, users UserRepo, items ItemRepo) Service {
	return &service{r: r, users: users, items: items}
}

func (s *service) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*model.Booking, error) {
	now := time.Now()
	if !start.Before(end) {
		return nil, apperr.Invalid("booking start must be before its end")
	}
	if !start.After(now) || !end.After(now) {
		return nil, apperr.Invalid("booking period must be in the future")
	}

	item, err := s.items.ByID(ctx, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("item %d not found", itemID)
	}
	if err != nil {
		return nil, err
	}
	if item.OwnerID == bookerID {
		return nil, apperr.NotFound("user %d cannot book their own item %d", bookerID, itemID)
	}
	if !item.Available {
		return nil, apperr.NotAvailable("item %d is not available", itemID)
	}

	ok, err := s.users.Exists(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user %d not found", bookerID)
	}

	b := &model.Booking{
		Start:  start,
		End:    end,
		Status: model.BookingWaiting,
		Booker: &model.User{ID: bookerID},
		Item:   &model.ItemRef{ID: itemID, Name: item.Name, OwnerID: item.OwnerID},
	}
	if err := s.r.Create(ctx, b); err != nil {
		return nil, err
	}
	// Reload to return the booking with the full booker view.
	return s.r.ByID(ctx, b.ID)
}

func (s *service) Confirm(ctx context.Context, ownerID, bookingID int64, approved bool) (*model.Booking, error) {
	b, err := s.byID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	// Only APPROVED is guarded; a rejected booking may be confirmed again.
	if b.Status == model.BookingApproved {
		return nil, apperr.NotAvailable("cannot change an already approved booking")
	}
	if b.Item.OwnerID != ownerID {
		return nil, apperr.NotFound("user %d does not own item %d", ownerID, b.Item.ID)
	}

	status := model.BookingRejected
	if approved {
		status = model.BookingApproved
	}
	if err := s.r.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

func (s *service) GetByID(ctx context.Context, callerID, bookingID int64) (*model.Booking, error) {
	b, err := s.byID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Booker.ID != callerID && b.Item.OwnerID != callerID {
		return nil, apperr.NotFound("booking %d is not visible to user %d", bookingID, callerID)
	}
	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, bookerID int64, st State, from, size int) ([]model.Booking, error) {
	ok, err := s.users.Exists(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user %d not found", bookerID)
	}

	limit, offset := window(from, size)
	rows, err := s.r.ListByBooker(ctx, bookerID, st, time.Now(), limit, offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, noMatches(st, bookerID)
	}
	return rows, nil
}

// ListForOwner filters per owned item and concatenates the results in item
// order; the page window applies to each item's query, not to the union.
func (s *service) ListForOwner(ctx context.Context, ownerID int64, st State, from, size int) ([]model.Booking, error) {
	ok, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user %d not found", ownerID)
	}

	itemIDs, err := s.items.IDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		return nil, apperr.NotFound("user %d does not own any items", ownerID)
	}

	limit, offset := window(from, size)
	now := time.Now()
	var out []model.Booking
	for _, itemID := range itemIDs {
		rows, err := s.r.ListByItem(ctx, itemID, st, now, limit, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	if len(out) == 0 {
		return nil, noMatches(st, ownerID)
	}
	return out, nil
}

func (s *service) LastForItem(ctx context.Context, itemID int64) (*model.BookingInfo, error) {
	b, err := s.r.LastForItem(ctx, itemID, time.Now())
	return toInfo(b, err)
}

func (s *service) NextForItem(ctx context.Context, itemID int64) (*model.BookingInfo, error) {
	b, err := s.r.NextForItem(ctx, itemID, time.Now())
	return toInfo(b, err)
}

func (s *service) HasCompletedApproved(ctx context.Context, userID, itemID int64) (bool, error) {
	return s.r.HasCompletedApproved(ctx, userID, itemID, time.Now())
}

func (s *service) byID(ctx context.Context, bookingID int64) (*model.Booking, error) {
	b, err := s.r.ByID(ctx, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("booking %d not found", bookingID)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// window turns from/size into a page-aligned LIMIT/OFFSET: page = from/size.
func window(from, size int) (limit, offset int) {
	return size, (from / size) * size
}

func noMatches(st State, userID int64) error {
	if st == bookingrepo.StateAll {
		return apperr.NotFound("bookings for user %d not found", userID)
	}
	return apperr.NotFound("%s bookings for user %d not found", strings.ToLower(string(st)), userID)
}

func toInfo(b *model.Booking, err error) (*model.BookingInfo, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &model.BookingInfo{ID: b.ID, BookerID: b.Booker.ID, Start: b.Start, End: b.End}, nil
}
