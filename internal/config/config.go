package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Auth / Security
	JWTSecret       string
	SessionTokenTTL time.Duration
	BcryptCost      int

	// Feature flags. One orchestrator serves both the verifying and the
	// non-verifying deployment; tests flip these independently.
	EmailVerificationEnabled bool
	AvatarUploadEnabled      bool

	// Infrastructure
	DBAddr        string
	DBAutoMigrate bool
	RedisAddr     string
	RabbitURL     string

	// Outbound email
	BaseURL  string // public origin used in verification links
	MailFrom string

	// Avatar upload
	UploadTmpDir  string
	AvatarsDir    string // files land here under /avatars
	MaxUploadSize int64
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":3000"),
	}

	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}
	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	migrate, err := getBool("DB_AUTO_MIGRATE", false)
	if err != nil {
		return nil, err
	}
	cfg.DBAutoMigrate = migrate

	ttl, err := getDuration("SESSION_TOKEN_TTL", 23*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTokenTTL = ttl

	cost, err := getInt("BCRYPT_COST", 10)
	if err != nil {
		return nil, err
	}
	cfg.BcryptCost = cost

	verify, err := getBool("EMAIL_VERIFICATION_ENABLED", true)
	if err != nil {
		return nil, err
	}
	cfg.EmailVerificationEnabled = verify

	avatars, err := getBool("AVATAR_UPLOAD_ENABLED", true)
	if err != nil {
		return nil, err
	}
	cfg.AvatarUploadEnabled = avatars

	// BASE_URL goes into verification links, so it is only required when
	// the verification flow is on.
	cfg.BaseURL = os.Getenv("BASE_URL")
	if cfg.EmailVerificationEnabled && cfg.BaseURL == "" {
		return nil, fmt.Errorf("missing required env var: BASE_URL")
	}
	cfg.MailFrom = getEnv("MAIL_FROM", "no-reply@contactbook.local")

	// Optional backing services; bootstrap degrades to in-process
	// fallbacks when these are absent in dev.
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RabbitURL = os.Getenv("RABBIT_URL")

	cfg.UploadTmpDir = getEnv("UPLOAD_TMP_DIR", "tmp")
	cfg.AvatarsDir = getEnv("AVATARS_DIR", "public/avatars")

	maxUpload, err := getInt("MAX_UPLOAD_SIZE", 10<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadSize = int64(maxUpload)

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for %s: %q: %w", key, v, err)
	}
	return b, nil
}
