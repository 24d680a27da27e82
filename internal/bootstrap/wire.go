package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/baechuer/contactbook/internal/application/auth"
	"github.com/baechuer/contactbook/internal/application/contacts"
	"github.com/baechuer/contactbook/internal/config"
	"github.com/baechuer/contactbook/internal/infrastructure/avatars"
	"github.com/baechuer/contactbook/internal/infrastructure/db/postgres"
	"github.com/baechuer/contactbook/internal/infrastructure/memory"
	"github.com/baechuer/contactbook/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/contactbook/internal/infrastructure/redis"
	"github.com/baechuer/contactbook/internal/infrastructure/security"
	"github.com/baechuer/contactbook/internal/logger"
	http_handlers "github.com/baechuer/contactbook/internal/transport/http/handlers"
	"github.com/baechuer/contactbook/internal/transport/http/middleware"
	"github.com/baechuer/contactbook/internal/transport/http/response"
	"github.com/baechuer/contactbook/internal/transport/http/router"
)

// NewServer wires the production dependency graph.
func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string) (DBCloser, error)

	NewRedis func(addr string) RedisClient

	NewMailer func(url, from string) (auth.Mailer, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

func newServer(deps Deps) (*http.Server, func(), error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	db, err := deps.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	if cfg.DBAutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := postgres.EnsureSchema(ctx, sqlDB)
		cancel()
		if err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}

	userRepo := postgres.NewUserRepo(sqlDB)
	contactRepo := postgres.NewContactRepo(sqlDB)

	// redis (best-effort; the rate limiter fails open without it)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; rate limiting disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// mailer
	var mailer auth.Mailer
	if cfg.EmailVerificationEnabled {
		m, err := deps.NewMailer(cfg.RabbitURL, cfg.MailFrom)
		if err != nil {
			if cfg.Env == "dev" {
				logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop mailer")
				m = memory.NewNoopMailer()
			} else {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
		}
		mailer = m
		if c, ok := m.(interface{ Close() error }); ok {
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	} else {
		mailer = memory.NewNoopMailer()
	}

	// avatar storage
	var avatarStore auth.AvatarStore
	if cfg.AvatarUploadEnabled {
		store, err := avatars.NewLocalStore(cfg.UploadTmpDir, cfg.AvatarsDir, cfg.MaxUploadSize)
		if err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
		avatarStore = store
	}

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, "contactbook")
	vtok := security.NewOpaqueTokens()

	authSvc := auth.NewService(userRepo, hasher, signer, vtok, mailer, avatarStore, auth.Config{
		SessionTTL:               cfg.SessionTokenTTL,
		BaseURL:                  cfg.BaseURL,
		MailFrom:                 cfg.MailFrom,
		EmailVerificationEnabled: cfg.EmailVerificationEnabled,
		AvatarUploadEnabled:      cfg.AvatarUploadEnabled,
	})

	authSvc = authSvc.WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	})

	contactSvc := contacts.NewService(contactRepo)

	authH := http_handlers.NewAuthHandler(authSvc, cfg.MaxUploadSize)
	contactsH := http_handlers.NewContactsHandler(contactSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	sessionMW := middleware.Session(signer, userRepo, response.WriteError)

	var fwLimiter *redis.FixedWindowLimiter
	if redisCli != nil {
		if c, ok := redisCli.(*redis.Client); ok {
			fwLimiter = redis.NewFixedWindowLimiter(c)
		}
	}

	rl := func(key string, limit int, window time.Duration) func(http.Handler) http.Handler {
		if fwLimiter == nil {
			return nil
		}
		return middleware.RateLimitFixedWindow(
			fwLimiter,
			middleware.FixedWindowConfig{RouteKey: key, Limit: limit, Window: window},
			response.WriteError,
		)
	}

	mux, err := deps.NewRouter(router.Deps{
		Health:   healthH,
		Auth:     authH,
		Contacts: contactsH,

		SessionMW:      sessionMW,
		LoginRateMW:    rl("users.login", 10, time.Minute),
		RegisterRateMW: rl("users.register", 5, time.Minute),
		ResendRateMW:   rl("users.verify.resend", 3, time.Minute),

		AvatarsDir:          cfg.AvatarsDir,
		VerificationEnabled: cfg.EmailVerificationEnabled,
		AvatarsEnabled:      cfg.AvatarUploadEnabled,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string) (DBCloser, error) {
			return postgres.Open(addr)
		},
		NewRedis: func(addr string) RedisClient {
			return redis.New(addr, "", 0)
		},
		NewMailer: func(url, from string) (auth.Mailer, error) {
			return rabbitmq.NewMailer(url, from)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
