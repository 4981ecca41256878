package item

// CreateItemReq is the item creation payload. RequestID links the item to the
// item request it fulfills, when there is one.
// swagger:model CreateItemReq
type CreateItemReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemReq is a partial update; blank strings and a missing available
// flag keep the stored values.
// swagger:model UpdateItemReq
type UpdateItemReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

// CommentReq is the comment payload.
// swagger:model CommentReq
type CommentReq struct {
	Text string `json:"text" validate:"required"`
}
