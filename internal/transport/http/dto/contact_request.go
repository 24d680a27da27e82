package dto

type CreateContactRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Favorite *bool  `json:"favorite"`
}

func (r *CreateContactRequest) Validate() error {
	return Check(r)
}

// UpdateContactRequest carries a partial update. Pointer fields
// distinguish "absent" from "set to zero value".
type UpdateContactRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Favorite *bool   `json:"favorite"`
}

func (r *UpdateContactRequest) Validate() error {
	return Check(r)
}

type FavoriteRequest struct {
	Favorite *bool `json:"favorite" validate:"required"`
}

func (r *FavoriteRequest) Validate() error {
	return Check(r)
}
