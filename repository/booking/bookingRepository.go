// Package bookingrepo holds the booking queries. The state-category filters
// compose predicates at runtime, so this package builds its SQL with goqu
// instead of the fixed query consts used by the other repositories.
package bookingrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"shareit/model"
)

// State is a booking listing category. WAITING and REJECTED match the stored
// status; the rest are temporal windows evaluated against "now".
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

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

var dialect = goqu.Dialect("postgres")

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	q, args, err := dialect.Insert("bookings").Prepared(true).
		Rows(goqu.Record{
			"booker_id":  b.Booker.ID,
			"item_id":    b.Item.ID,
			"start_date": b.Start,
			"end_date":   b.End,
			"status":     string(b.Status),
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, q, args...).Scan(&b.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	q, args, err := r.base().Where(goqu.I("b.id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	return scanBooking(r.db.QueryRowContext(ctx, q, args...))
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	q, args, err := dialect.Update("bookings").Prepared(true).
		Set(goqu.Record{"status": string(status)}).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) ListByBooker(ctx context.Context, bookerID int64, st State, now time.Time, limit, offset int) ([]model.Booking, error) {
	ds := r.base().
		Where(goqu.I("b.booker_id").Eq(bookerID)).
		Where(stateExprs(st, now)...).
		Order(goqu.I("b.start_date").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset))
	return r.queryBookings(ctx, ds)
}

func (r *repo) ListByItem(ctx context.Context, itemID int64, st State, now time.Time, limit, offset int) ([]model.Booking, error) {
	ds := r.base().
		Where(goqu.I("b.item_id").Eq(itemID)).
		Where(stateExprs(st, now)...).
		Order(goqu.I("b.start_date").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset))
	return r.queryBookings(ctx, ds)
}

func (r *repo) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	q, args, err := r.base().
		Where(goqu.I("b.item_id").Eq(itemID), goqu.I("b.end_date").Lt(now)).
		Order(goqu.I("b.end_date").Desc()).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}
	return scanBooking(r.db.QueryRowContext(ctx, q, args...))
}

func (r *repo) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	q, args, err := r.base().
		Where(goqu.I("b.item_id").Eq(itemID), goqu.I("b.start_date").Gt(now)).
		Order(goqu.I("b.start_date").Asc()).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}
	return scanBooking(r.db.QueryRowContext(ctx, q, args...))
}

func (r *repo) HasCompletedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	q, args, err := dialect.From("bookings").Prepared(true).
		Select(goqu.L("1")).
		Where(
			goqu.C("booker_id").Eq(bookerID),
			goqu.C("item_id").Eq(itemID),
			goqu.C("status").Eq(string(model.BookingApproved)),
			goqu.C("end_date").Lt(now),
		).
		ToSQL()
	if err != nil {
		return false, err
	}
	var ok bool
	if err := r.db.QueryRowContext(ctx, "SELECT EXISTS("+q+")", args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *repo) base() *goqu.SelectDataset {
	return dialect.From(goqu.T("bookings").As("b")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.booker_id")))).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Select(
			goqu.I("b.id"), goqu.I("b.start_date"), goqu.I("b.end_date"), goqu.I("b.status"),
			goqu.I("u.id"), goqu.I("u.name"), goqu.I("u.email"),
			goqu.I("i.id"), goqu.I("i.name"), goqu.I("i.owner_id"),
		)
}

func stateExprs(st State, now time.Time) []exp.Expression {
	switch st {
	case StateCurrent:
		return []exp.Expression{goqu.I("b.start_date").Lt(now), goqu.I("b.end_date").Gt(now)}
	case StatePast:
		return []exp.Expression{goqu.I("b.end_date").Lt(now)}
	case StateFuture:
		return []exp.Expression{goqu.I("b.start_date").Gt(now)}
	case StateWaiting, StateRejected:
		return []exp.Expression{goqu.I("b.status").Eq(string(st))}
	default: // ALL
		return nil
	}
}

func (r *repo) queryBookings(ctx context.Context, ds *goqu.SelectDataset) ([]model.Booking, error) {
	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner) (*model.Booking, error) {
	var (
		b  model.Booking
		u  model.User
		it model.ItemRef
	)
	if err := s.Scan(
		&b.ID, &b.Start, &b.End, &b.Status,
		&u.ID, &u.Name, &u.Email,
		&it.ID, &it.Name, &it.OwnerID,
	); err != nil {
		return nil, err
	}
	b.Booker = &u
	b.Item = &it
	return &b, nil
}
