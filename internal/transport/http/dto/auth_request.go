package dto

import "strings"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return Check(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return Check(r)
}

// ResendVerifyRequest asks for the verification mail to be sent again.
type ResendVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ResendVerifyRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return Check(r)
}
