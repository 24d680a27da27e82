package dto

import "github.com/baechuer/contactbook/internal/domain"

// UserView is the user payload embedded in register and login responses.
type UserView struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

func NewUserView(u domain.User) UserView {
	return UserView{Email: u.Email, Subscription: string(u.Subscription)}
}

// RegisterResponse is flat, unlike the login payload, and carries the
// placeholder avatar assigned at creation.
type RegisterResponse struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
	AvatarURL    string `json:"avatarURL"`
}

func NewRegisterResponse(u domain.User) RegisterResponse {
	return RegisterResponse{
		Email:        u.Email,
		Subscription: string(u.Subscription),
		AvatarURL:    u.AvatarURL,
	}
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// CurrentResponse is returned by GET /api/users/current.
type CurrentResponse struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatarURL"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
