// Package itemsvc owns the item rules: ownership-gated mutation with merge
// semantics, the aggregated read views (comments plus owner-only last/next
// booking), text search and comment eligibility.
package itemsvc

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
	Create(ctx context.Context, it *model.Item) error
	Update(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	ByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Item, error)
	Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error)
	Delete(ctx context.Context, id int64) error
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type CommentRepo interface {
	Create(ctx context.Context, cm *model.Comment) error
	ByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
}

type RequestRepo interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Bookings is the slice of the booking service the item views need.
type Bookings interface {
	LastForItem(ctx context.Context, itemID int64) (*model.BookingInfo, error)
	NextForItem(ctx context.Context, itemID int64) (*model.BookingInfo, error)
	HasCompletedApproved(ctx context.Context, userID, itemID int64) (bool, error)
}

// Patch carries the merge-update fields. Blank strings leave the stored value
// untouched; Available is tri-state via the pointer.
type Patch struct {
	Name        string
	Description string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID int64, name, description string, available bool, requestID *int64) (*model.Item, error)
	Update(ctx context.Context, callerID, itemID int64, patch Patch) (*model.Item, error)
	GetByID(ctx context.Context, callerID, itemID int64) (*model.Item, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.Item, error)
	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
	Delete(ctx context.Context, callerID, itemID int64) error
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*model.Comment, error)
}

type service struct {
	r        Repo
	users    UserRepo
	comments CommentRepo
	requests RequestRepo
	bookings Bookings
}

func New(r Repo, users UserRepo, comments CommentRepo, requests RequestRepo, bookings Bookings) Service {
	return &service{r: r, users: users, comments: comments, requests: requests, bookings: bookings}
}

func (s *service) Create(ctx context.Context, ownerID int64, name, description string, available bool, requestID *int64) (*model.Item, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(description) == "" {
		return nil, apperr.Invalid("item name and description are required")
	}
	ok, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user %d not found", ownerID)
	}
	if requestID != nil {
		ok, err := s.requests.Exists(ctx, *requestID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.NotFound("request %d not found", *requestID)
		}
	}

	it := &model.Item{
		Name:        name,
		Description: description,
		Available:   available,
		OwnerID:     ownerID,
		RequestID:   requestID,
	}
	if err := s.r.Create(ctx, it); err != nil {
		return nil, err
	}
	it.Comments = []model.Comment{}
	return it, nil
}

func (s *service) Update(ctx context.Context, callerID, itemID int64, patch Patch) (*model.Item, error) {
	ok, err := s.users.Exists(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user %d not found", callerID)
	}
	it, err := s.ownedItem(ctx, callerID, itemID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(patch.Name) != "" {
		it.Name = patch.Name
	}
	if strings.TrimSpace(patch.Description) != "" {
		it.Description = patch.Description
	}
	if patch.Available != nil {
		it.Available = *patch.Available
	}

	if err := s.r.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, callerID, itemID int64) (*model.Item, error) {
	it, err := s.byID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.aggregate(ctx, it); err != nil {
		return nil, err
	}
	// The booking schedule is private to the owner.
	if it.OwnerID != callerID {
		it.LastBooking = nil
		it.NextBooking = nil
	}
	return it, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.Item, error) {
	ok, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user %d not found", ownerID)
	}

	items, err := s.r.ByOwner(ctx, ownerID, size, (from/size)*size)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if err := s.aggregate(ctx, &items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	return s.r.Search(ctx, strings.ToLower(text), size, (from/size)*size)
}

func (s *service) Delete(ctx context.Context, callerID, itemID int64) error {
	if _, err := s.ownedItem(ctx, callerID, itemID); err != nil {
		return err
	}
	return s.r.Delete(ctx, itemID)
}

func (s *service) AddComment(ctx context.Context, authorID, itemID int64, text string) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Invalid("comment text is required")
	}
	ok, err := s.bookings.HasCompletedApproved(ctx, authorID, itemID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotAvailable("user %d has no booking for item %d", authorID, itemID)
	}

	author, err := s.users.ByID(ctx, authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user %d not found", authorID)
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.byID(ctx, itemID); err != nil {
		return nil, err
	}

	cm := &model.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Created:    time.Now(),
	}
	if err := s.comments.Create(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

func (s *service) byID(ctx context.Context, itemID int64) (*model.Item, error) {
	it, err := s.r.ByID(ctx, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("item %d not found", itemID)
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) ownedItem(ctx context.Context, callerID, itemID int64) (*model.Item, error) {
	it, err := s.byID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	// Ownership failures surface as not-found, same as a missing item.
	if it.OwnerID != callerID {
		return nil, apperr.NotFound("user %d does not own item %d", callerID, itemID)
	}
	return it, nil
}

func (s *service) aggregate(ctx context.Context, it *model.Item) error {
	comments, err := s.comments.ByItem(ctx, it.ID)
	if err != nil {
		return err
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	it.Comments = comments

	if it.LastBooking, err = s.bookings.LastForItem(ctx, it.ID); err != nil {
		return err
	}
	if it.NextBooking, err = s.bookings.NextForItem(ctx, it.ID); err != nil {
		return err
	}
	return nil
}
