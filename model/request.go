// model/request.go
package model

import "time"

type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestorId"`
	Created     time.Time `json:"created"`

	// Items created against this request, attached at read time.
	Items []Item `json:"items"`
}
