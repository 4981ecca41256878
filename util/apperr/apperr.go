// Package apperr carries a coded error kind from the services up to the HTTP
// layer, which maps each kind to a status. Services wrap everything they
// detect themselves; anything else bubbles up uncoded and turns into a 500.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindConflict
	KindNotAvailable
	KindUnsupportedState
)

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Kind() Kind    { return e.kind }

func newf(k Kind, format string, args ...any) error {
	return &Error{kind: k, msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return newf(KindNotFound, format, args...)
}

func Invalid(format string, args ...any) error {
	return newf(KindInvalid, format, args...)
}

func Conflict(format string, args ...any) error {
	return newf(KindConflict, format, args...)
}

// NotAvailable covers domain-rule rejections: unavailable item, already
// approved booking, comment without a qualifying booking.
func NotAvailable(format string, args ...any) error {
	return newf(KindNotAvailable, format, args...)
}

func UnsupportedState(format string, args ...any) error {
	return newf(KindUnsupportedState, format, args...)
}

// KindOf extracts the kind, KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.kind
	}
	return KindUnknown
}
