package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/contactbook/internal/application/contacts"
	"github.com/baechuer/contactbook/internal/domain"
	"github.com/baechuer/contactbook/internal/transport/http/dto"
	"github.com/baechuer/contactbook/internal/transport/http/middleware"
	"github.com/baechuer/contactbook/internal/transport/http/response"
)

type ContactsHandler struct {
	svc *contacts.Service
}

func NewContactsHandler(svc *contacts.Service) *ContactsHandler {
	return &ContactsHandler{svc: svc}
}

func actor(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrNotAuthorized())
	}
	return u, ok
}

func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	u, ok := actor(w, r)
	if !ok {
		return
	}

	cs, err := h.svc.List(r.Context(), u.ID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewContactViews(cs))
}

func (h *ContactsHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, ok := actor(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), u.ID, chi.URLParam(r, "contactID"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewContactView(c))
}

func (h *ContactsHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.CreateContactRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	cmd := contacts.CreateCmd{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if req.Favorite != nil {
		cmd.Favorite = *req.Favorite
	}

	c, err := h.svc.Create(r.Context(), u.ID, cmd)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Created(w, dto.NewContactView(c))
}

func (h *ContactsHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.UpdateContactRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	cmd := contacts.UpdateCmd{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Favorite: req.Favorite,
	}

	c, err := h.svc.Update(r.Context(), u.ID, chi.URLParam(r, "contactID"), cmd)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewContactView(c))
}

func (h *ContactsHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	u, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.FavoriteRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	c, err := h.svc.SetFavorite(r.Context(), u.ID, chi.URLParam(r, "contactID"), *req.Favorite)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewContactView(c))
}

func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, ok := actor(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), u.ID, chi.URLParam(r, "contactID")); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MessageResponse{Message: "contact deleted"})
}
