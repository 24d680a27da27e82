package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/contactbook/internal/application/auth"
	"github.com/baechuer/contactbook/internal/domain"
	"github.com/baechuer/contactbook/internal/logger"
	"github.com/baechuer/contactbook/internal/transport/http/dto"
	"github.com/baechuer/contactbook/internal/transport/http/middleware"
	"github.com/baechuer/contactbook/internal/transport/http/response"
)

type AuthHandler struct {
	svc       *auth.Service
	maxUpload int64
}

func NewAuthHandler(svc *auth.Service, maxUpload int64) *AuthHandler {
	return &AuthHandler{svc: svc, maxUpload: maxUpload}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	middleware.RegistrationsTotal.Inc()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_registered")

	response.Created(w, dto.NewRegisterResponse(res.User))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case domain.Is(err, "invalid_credentials"):
			middleware.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		case domain.Is(err, "email_not_verified"):
			middleware.LoginAttemptsTotal.WithLabelValues("not_verified").Inc()
		}
		response.WriteError(w, r, err)
		return
	}

	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OK(w, dto.LoginResponse{Token: res.Token, User: dto.NewUserView(res.User)})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrNotAuthorized())
		return
	}

	if err := h.svc.Logout(r.Context(), u.ID); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.NoContent(w)
}

func (h *AuthHandler) Current(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrNotAuthorized())
		return
	}

	response.OK(w, dto.CurrentResponse{
		Email:        u.Email,
		Subscription: string(u.Subscription),
	})
}

// VerifyToken handles GET /api/users/verify/{verificationToken}.
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "verificationToken")

	if err := h.svc.Verify(r.Context(), token); err != nil {
		response.WriteError(w, r, err)
		return
	}

	middleware.EmailVerificationsTotal.Inc()
	response.OK(w, dto.MessageResponse{Message: "Verification successful"})
}

// ResendVerify handles POST /api/users/verify.
func (h *AuthHandler) ResendVerify(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendVerifyRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ResendVerification(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MessageResponse{Message: "Verification email sent"})
}

// UploadAvatar handles PATCH /api/users/avatars (multipart, field "avatar").
func (h *AuthHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrNotAuthorized())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		response.WriteError(w, r, domain.ErrFileNotUploaded())
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		response.WriteError(w, r, domain.ErrFileNotUploaded())
		return
	}
	defer file.Close()

	url, err := h.svc.UpdateAvatar(r.Context(), u.ID, header.Filename, file)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.AvatarResponse{AvatarURL: url})
}
