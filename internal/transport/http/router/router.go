package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baechuer/contactbook/internal/transport/http/middleware"
	"github.com/baechuer/contactbook/internal/transport/http/response"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Current(w http.ResponseWriter, r *http.Request)
	UploadAvatar(w http.ResponseWriter, r *http.Request)
	VerifyToken(w http.ResponseWriter, r *http.Request)
	ResendVerify(w http.ResponseWriter, r *http.Request)
}

type ContactsHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	SetFavorite(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health   HealthHandler
	Auth     AuthHandler
	Contacts ContactsHandler

	SessionMW func(http.Handler) http.Handler
	// Optional per-route throttles; nil means no limit.
	LoginRateMW    func(http.Handler) http.Handler
	RegisterRateMW func(http.Handler) http.Handler
	ResendRateMW   func(http.Handler) http.Handler

	// Filesystem directory served under /avatars.
	AvatarsDir string

	// When false the verification endpoints are not mounted and every
	// registered account is born verified.
	VerificationEnabled bool
	AvatarsEnabled      bool
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Contacts == nil {
		return nil, fmt.Errorf("nil Contacts handler")
	}
	if deps.SessionMW == nil {
		return nil, fmt.Errorf("nil Session middleware")
	}

	maybe := func(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
		if mw == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return mw
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.WriteJSON(w, http.StatusNotFound, response.ErrorBody{Message: "Route not found"})
	})

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/users", func(r chi.Router) {
		r.With(maybe(deps.RegisterRateMW)).Post("/register", deps.Auth.Register)
		r.With(maybe(deps.LoginRateMW)).Post("/login", deps.Auth.Login)

		if deps.VerificationEnabled {
			r.Get("/verify/{verificationToken}", deps.Auth.VerifyToken)
			r.With(maybe(deps.ResendRateMW)).Post("/verify", deps.Auth.ResendVerify)
		}

		r.Group(func(r chi.Router) {
			r.Use(deps.SessionMW)
			r.Post("/logout", deps.Auth.Logout)
			r.Get("/current", deps.Auth.Current)
			if deps.AvatarsEnabled {
				r.Patch("/avatars", deps.Auth.UploadAvatar)
			}
		})
	})

	r.Route("/api/contacts", func(r chi.Router) {
		r.Use(deps.SessionMW)

		r.Get("/", deps.Contacts.List)
		r.Post("/", deps.Contacts.Create)
		r.Get("/{contactID}", deps.Contacts.Get)
		r.Put("/{contactID}", deps.Contacts.Update)
		r.Patch("/{contactID}", deps.Contacts.Update)
		r.Patch("/{contactID}/favorite", deps.Contacts.SetFavorite)
		r.Delete("/{contactID}", deps.Contacts.Delete)
	})

	if deps.AvatarsEnabled && deps.AvatarsDir != "" {
		fs := http.StripPrefix("/avatars/", http.FileServer(http.Dir(deps.AvatarsDir)))
		r.Get("/avatars/*", fs.ServeHTTP)
	}

	return r, nil
}
