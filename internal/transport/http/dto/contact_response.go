package dto

import "github.com/baechuer/contactbook/internal/domain"

type ContactView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Favorite bool   `json:"favorite"`
}

func NewContactView(c domain.Contact) ContactView {
	return ContactView{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Favorite: c.Favorite,
	}
}

func NewContactViews(cs []domain.Contact) []ContactView {
	out := make([]ContactView, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewContactView(c))
	}
	return out
}
