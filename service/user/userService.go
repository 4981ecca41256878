// Package usersvc is thin CRUD over the user repository. The interesting
// rules are the partial-update merge (name and email independently settable,
// invalid values skipped) and email uniqueness, enforced by the database
// constraint and surfaced as a conflict.
package usersvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"shareit/model"
	"shareit/util/apperr"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	Create(ctx context.Context, name, email string) (*model.User, error)
	Update(ctx context.Context, id int64, name, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetAll(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name, email string) (*model.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Invalid("user name is required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperr.Invalid("email must contain @")
	}

	u := &model.User{Name: name, Email: email}
	if err := s.r.Create(ctx, u); err != nil {
		if cerr := mapConflict(err); cerr != nil {
			return nil, cerr
		}
		return nil, err
	}
	return u, nil
}

// Update merges name and email into the stored user. Blank values are
// skipped, and an email without "@" is ignored rather than rejected.
func (s *service) Update(ctx context.Context, id int64, name, email string) (*model.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) != "" {
		u.Name = name
	}
	if strings.TrimSpace(email) != "" && strings.Contains(email, "@") {
		u.Email = email
	}

	if err := s.r.Update(ctx, u); err != nil {
		if cerr := mapConflict(err); cerr != nil {
			return nil, cerr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.r.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetAll(ctx context.Context) ([]model.User, error) {
	return s.r.List(ctx)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.r.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("user %d not found", id)
	}
	return err
}

func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict("email already in use")
	}
	return nil
}
