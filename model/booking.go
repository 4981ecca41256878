// model/booking.go
package model

import "time"

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

type Booking struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status BookingStatus `json:"status"`
	Booker *User         `json:"booker,omitempty"`
	Item   *ItemRef      `json:"item,omitempty"`
}

// ItemRef is the shallow item view nested inside a booking response.
type ItemRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

// BookingInfo is the last/next booking view embedded in an item.
// Only the item owner sees it.
type BookingInfo struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}
