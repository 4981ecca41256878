package user

// CreateUserReq is the signup payload.
// swagger:model CreateUserReq
type CreateUserReq struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateUserReq is a partial update; blank fields keep the stored value.
// swagger:model UpdateUserReq
type UpdateUserReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
