package request

// CreateRequestReq is the item-request payload.
// swagger:model CreateRequestReq
type CreateRequestReq struct {
	Description string `json:"description" validate:"required"`
}
