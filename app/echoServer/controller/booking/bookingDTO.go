package booking

import "time"

// CreateBookingReq is the booking submission payload. Timestamps are RFC 3339.
// swagger:model CreateBookingReq
type CreateBookingReq struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}
