// model/item.go
package model

import "time"

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`

	// View fields attached at read time, never persisted.
	Comments    []Comment    `json:"comments,omitempty"`
	LastBooking *BookingInfo `json:"lastBooking,omitempty"`
	NextBooking *BookingInfo `json:"nextBooking,omitempty"`
}

type Comment struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	ItemID     int64     `json:"itemId"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}
