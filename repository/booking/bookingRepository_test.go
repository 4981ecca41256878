// repository/booking/booking_repository_test.go
package bookingrepo_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
)

var bookingCols = []string{
	"id", "start_date", "end_date", "status",
	"u_id", "u_name", "u_email",
	"i_id", "i_name", "i_owner_id",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCreate_ScansReturnedID(t *testing.T) {
	db, mock := newMock(t)
	r := bookingrepo.New(db)

	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	b := &model.Booking{
		Start:  start,
		End:    end,
		Status: model.BookingWaiting,
		Booker: &model.User{ID: 2},
		Item:   &model.ItemRef{ID: 3},
	}
	require.NoError(t, r.Create(context.Background(), b))
	require.Equal(t, int64(5), b.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByBooker_CurrentState(t *testing.T) {
	db, mock := newMock(t)
	r := bookingrepo.New(db)

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(bookingCols).
		AddRow(int64(1), now.Add(-time.Hour), now.Add(time.Hour), "APPROVED",
			int64(2), "Bob", "bob@example.com",
			int64(3), "drill", int64(4))

	// CURRENT pins "now" on both sides of the interval.
	mock.ExpectQuery(`SELECT .+ FROM "bookings" AS "b" INNER JOIN "users"`).
		WithArgs(int64(2), now, now, 10, 20).
		WillReturnRows(rows)

	got, err := r.ListByBooker(context.Background(), 2, bookingrepo.StateCurrent, now, 10, 20)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, "Bob", got[0].Booker.Name)
	require.Equal(t, int64(4), got[0].Item.OwnerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_MissingRow(t *testing.T) {
	db, mock := newMock(t)
	r := bookingrepo.New(db)

	mock.ExpectExec(`UPDATE "bookings" SET "status"`).
		WithArgs("REJECTED", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.UpdateStatus(context.Background(), 9, model.BookingRejected)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLastForItem_NoRows(t *testing.T) {
	db, mock := newMock(t)
	r := bookingrepo.New(db)

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM "bookings" AS "b"`).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	_, err := r.LastForItem(context.Background(), 3, now)
	require.True(t, errors.Is(err, sql.ErrNoRows))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHasCompletedApproved(t *testing.T) {
	db, mock := newMock(t)
	r := bookingrepo.New(db)

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT EXISTS\(SELECT`).
		WithArgs(int64(2), int64(3), "APPROVED", now).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := r.HasCompletedApproved(context.Background(), 2, 3, now)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
